package pageloader

import "fmt"

// State is the observable snapshot of a loader. The loader replaces it
// wholesale on every transition; callers must treat Elements as read-only.
type State[T any] struct {
	// Elements loaded so far, in collection order.
	Elements []T
	// NextPageState status of the forward direction.
	NextPageState PageState
	// PreviousPageState status of the backward direction.
	PreviousPageState PageState
}

// NewState builds a State. Nil page states default to HasMore.
func NewState[T any](elements []T, next, previous PageState) State[T] {
	return State[T]{
		Elements:          elements,
		NextPageState:     next,
		PreviousPageState: previous,
	}.normalized()
}

// PageState returns the status of the given direction.
func (s State[T]) PageState(d Direction) PageState {
	switch d {
	case DirectionNext:
		return s.NextPageState
	case DirectionPrevious:
		return s.PreviousPageState
	default:
		panic(fmt.Errorf("unknown direction '%s'", d))
	}
}

// withPageState returns a copy of s with the given direction's status replaced.
func (s State[T]) withPageState(d Direction, ps PageState) State[T] {
	switch d {
	case DirectionNext:
		s.NextPageState = ps
	case DirectionPrevious:
		s.PreviousPageState = ps
	default:
		panic(fmt.Errorf("unknown direction '%s'", d))
	}

	return s
}

func (s State[T]) normalized() State[T] {
	if s.NextPageState == nil {
		s.NextPageState = HasMore{}
	}
	if s.PreviousPageState == nil {
		s.PreviousPageState = HasMore{}
	}

	return s
}
