// Package selection holds the shared selection state between the map
// view and the point list. Both views observe the same model instead
// of referencing each other, so neither widget depends on the other.
package selection

import "sort"

// Model tracks the set of currently selected point indices. Observers
// are notified synchronously on every change, before the next UI event
// is processed. The model is single-threaded by design: it is only
// touched from the event loop.
type Model struct {
	current   map[int]struct{}
	observers []func(indices []int)
}

func NewModel() *Model {
	return &Model{current: make(map[int]struct{})}
}

// Subscribe registers an observer for selection changes. Observers run
// in registration order.
func (m *Model) Subscribe(fn func(indices []int)) {
	m.observers = append(m.observers, fn)
}

// Select replaces the current selection. Selecting the identical set
// again does not notify.
func (m *Model) Select(indices ...int) {
	next := make(map[int]struct{}, len(indices))
	for _, idx := range indices {
		next[idx] = struct{}{}
	}
	if equalSets(m.current, next) {
		return
	}
	m.current = next
	m.notify()
}

// Clear empties the selection. Clearing an already-empty selection is
// a no-op.
func (m *Model) Clear() {
	if len(m.current) == 0 {
		return
	}
	m.current = make(map[int]struct{})
	m.notify()
}

// Current returns the selected indices in ascending order.
func (m *Model) Current() []int {
	out := make([]int, 0, len(m.current))
	for idx := range m.current {
		out = append(out, idx)
	}
	sort.Ints(out)
	return out
}

// Contains reports whether idx is selected.
func (m *Model) Contains(idx int) bool {
	_, ok := m.current[idx]
	return ok
}

// IsEmpty reports whether nothing is selected.
func (m *Model) IsEmpty() bool {
	return len(m.current) == 0
}

// Single returns the selected index when exactly one point is
// selected, and -1 otherwise.
func (m *Model) Single() int {
	if len(m.current) != 1 {
		return -1
	}
	for idx := range m.current {
		return idx
	}
	return -1
}

// Restrict drops every index at or beyond size, keeping the invariant
// that the selection only holds valid store positions. Observers are
// notified when anything was dropped.
func (m *Model) Restrict(size int) {
	changed := false
	for idx := range m.current {
		if idx < 0 || idx >= size {
			delete(m.current, idx)
			changed = true
		}
	}
	if changed {
		m.notify()
	}
}

func (m *Model) notify() {
	indices := m.Current()
	for _, fn := range m.observers {
		fn(indices)
	}
}

func equalSets(a, b map[int]struct{}) bool {
	if len(a) != len(b) {
		return false
	}
	for idx := range a {
		if _, ok := b[idx]; !ok {
			return false
		}
	}
	return true
}
