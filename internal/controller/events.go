package controller

// Event is the closed set of notifications views emit toward the
// controller. Views never mutate the store themselves.
type Event interface {
	isEvent()
}

// SelectionChanged reports a user picking a point in any view. An
// Index of -1 clears the selection.
type SelectionChanged struct {
	Index int
}

// DeleteRequested asks for the removal of the given store positions.
type DeleteRequested struct {
	Indices []int
}

func (SelectionChanged) isEvent() {}
func (DeleteRequested) isEvent()  {}
