package track

import (
	"fmt"
	"sort"
)

// DefaultTrackName is written when a track is saved without a name.
const DefaultTrackName = "GPX Track"

// removed keeps one deleted point together with the index it occupied,
// so an undo can put it back exactly where it was.
type removed struct {
	index int
	point Point
}

// Store is the ordered, canonical sequence of track points. Insertion
// order equals track order. All mutation goes through the controller;
// views only see read-only projections via Points and At.
//
// Every delete operation records one journal entry, so deletions undo
// in reverse order one operation at a time.
type Store struct {
	points []Point
	name   string
	undo   [][]removed
}

// NewStore builds a store over the given points. The slice is owned by
// the store afterwards.
func NewStore(points []Point, name string) *Store {
	return &Store{points: points, name: name}
}

func (s *Store) Len() int {
	return len(s.points)
}

// At returns the point at index i. The index must be valid.
func (s *Store) At(i int) Point {
	return s.points[i]
}

// Points returns a copy of the point sequence.
func (s *Store) Points() []Point {
	out := make([]Point, len(s.points))
	copy(out, s.points)
	return out
}

func (s *Store) Name() string {
	return s.name
}

func (s *Store) SetName(name string) {
	s.name = name
}

// Delete removes the points at the given positions, keeping the
// relative order of the survivors. Duplicate indices are collapsed,
// out-of-range indices are rejected. An empty index set is a no-op.
func (s *Store) Delete(indices ...int) error {
	if len(indices) == 0 {
		return nil
	}

	distinct := make(map[int]struct{}, len(indices))
	for _, idx := range indices {
		if idx < 0 || idx >= len(s.points) {
			return fmt.Errorf("delete index %d out of range [0,%d)", idx, len(s.points))
		}
		distinct[idx] = struct{}{}
	}

	ordered := make([]int, 0, len(distinct))
	for idx := range distinct {
		ordered = append(ordered, idx)
	}
	sort.Ints(ordered)

	entry := make([]removed, 0, len(ordered))
	for _, idx := range ordered {
		entry = append(entry, removed{index: idx, point: s.points[idx]})
	}

	kept := s.points[:0]
	for i, p := range s.points {
		if _, gone := distinct[i]; !gone {
			kept = append(kept, p)
		}
	}
	s.points = kept
	s.undo = append(s.undo, entry)

	return nil
}

// DeleteBefore removes every point strictly before idx.
func (s *Store) DeleteBefore(idx int) error {
	if idx <= 0 || idx >= len(s.points) {
		return fmt.Errorf("delete-before index %d out of range (0,%d)", idx, len(s.points))
	}
	indices := make([]int, idx)
	for i := range indices {
		indices[i] = i
	}
	return s.Delete(indices...)
}

// DeleteAfter removes every point strictly after idx.
func (s *Store) DeleteAfter(idx int) error {
	if idx < 0 || idx >= len(s.points)-1 {
		return fmt.Errorf("delete-after index %d out of range [0,%d)", idx, len(s.points)-1)
	}
	indices := make([]int, 0, len(s.points)-idx-1)
	for i := idx + 1; i < len(s.points); i++ {
		indices = append(indices, i)
	}
	return s.Delete(indices...)
}

// Undo restores the points removed by the most recent delete operation
// at their original indices. It returns the restored indices and
// reports whether anything was undone.
func (s *Store) Undo() ([]int, bool) {
	if len(s.undo) == 0 {
		return nil, false
	}

	entry := s.undo[len(s.undo)-1]
	s.undo = s.undo[:len(s.undo)-1]

	// Entries are stored in ascending index order, so inserting front to
	// back lands every point on its original position.
	indices := make([]int, 0, len(entry))
	for _, r := range entry {
		idx := r.index
		if idx > len(s.points) {
			idx = len(s.points)
		}
		s.points = append(s.points, Point{})
		copy(s.points[idx+1:], s.points[idx:])
		s.points[idx] = r.point
		indices = append(indices, idx)
	}
	return indices, true
}

// CanUndo reports whether an undo entry exists.
func (s *Store) CanUndo() bool {
	return len(s.undo) > 0
}

// UndoDepth returns how many delete operations can be undone.
func (s *Store) UndoDepth() int {
	return len(s.undo)
}
