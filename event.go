package pageloader

import "fmt"

// EventKind names the variant held by an Event.
type EventKind string

const (
	EventCurrent             EventKind = "current"
	EventNextPageLoading     EventKind = "next_page_loading"
	EventPreviousPageLoading EventKind = "previous_page_loading"
	EventNextPageLoaded      EventKind = "next_page_loaded"
	EventPreviousPageLoaded  EventKind = "previous_page_loaded"
	EventNextPageFailed      EventKind = "next_page_failed"
	EventPreviousPageFailed  EventKind = "previous_page_failed"
)

// Event is a published loader transition. The set of implementations is
// closed: Current, NextPageLoading, PreviousPageLoading, NextPageLoaded,
// PreviousPageLoaded, NextPageFailed and PreviousPageFailed.
type Event[T any] interface {
	Kind() EventKind
	// LoaderState returns the state immediately after the transition.
	LoaderState() State[T]

	event()
}

type (
	// Current primes a new subscriber with the state at attachment time.
	Current[T any] struct {
		State State[T]
	}

	NextPageLoading[T any] struct {
		State         State[T]
		PreviousState State[T]
	}

	PreviousPageLoading[T any] struct {
		State         State[T]
		PreviousState State[T]
	}

	NextPageLoaded[T any] struct {
		State         State[T]
		PreviousState State[T]
		// NewElements is the raw page returned by the fetcher.
		NewElements []T
	}

	PreviousPageLoaded[T any] struct {
		State         State[T]
		PreviousState State[T]
		// NewElements is the raw page returned by the fetcher.
		NewElements []T
	}

	NextPageFailed[T any] struct {
		State         State[T]
		PreviousState State[T]
	}

	PreviousPageFailed[T any] struct {
		State         State[T]
		PreviousState State[T]
	}
)

func (Current[T]) Kind() EventKind             { return EventCurrent }
func (NextPageLoading[T]) Kind() EventKind     { return EventNextPageLoading }
func (PreviousPageLoading[T]) Kind() EventKind { return EventPreviousPageLoading }
func (NextPageLoaded[T]) Kind() EventKind      { return EventNextPageLoaded }
func (PreviousPageLoaded[T]) Kind() EventKind  { return EventPreviousPageLoaded }
func (NextPageFailed[T]) Kind() EventKind      { return EventNextPageFailed }
func (PreviousPageFailed[T]) Kind() EventKind  { return EventPreviousPageFailed }

func (e Current[T]) LoaderState() State[T]             { return e.State }
func (e NextPageLoading[T]) LoaderState() State[T]     { return e.State }
func (e PreviousPageLoading[T]) LoaderState() State[T] { return e.State }
func (e NextPageLoaded[T]) LoaderState() State[T]      { return e.State }
func (e PreviousPageLoaded[T]) LoaderState() State[T]  { return e.State }
func (e NextPageFailed[T]) LoaderState() State[T]      { return e.State }
func (e PreviousPageFailed[T]) LoaderState() State[T]  { return e.State }

func (Current[T]) event()             {}
func (NextPageLoading[T]) event()     {}
func (PreviousPageLoading[T]) event() {}
func (NextPageLoaded[T]) event()      {}
func (PreviousPageLoaded[T]) event()  {}
func (NextPageFailed[T]) event()      {}
func (PreviousPageFailed[T]) event()  {}

func loadingEvent[T any](d Direction, state, previous State[T]) Event[T] {
	switch d {
	case DirectionNext:
		return NextPageLoading[T]{State: state, PreviousState: previous}
	case DirectionPrevious:
		return PreviousPageLoading[T]{State: state, PreviousState: previous}
	default:
		panic(fmt.Errorf("unknown direction '%s'", d))
	}
}

func loadedEvent[T any](d Direction, state, previous State[T], page []T) Event[T] {
	switch d {
	case DirectionNext:
		return NextPageLoaded[T]{State: state, PreviousState: previous, NewElements: page}
	case DirectionPrevious:
		return PreviousPageLoaded[T]{State: state, PreviousState: previous, NewElements: page}
	default:
		panic(fmt.Errorf("unknown direction '%s'", d))
	}
}

func failedEvent[T any](d Direction, state, previous State[T]) Event[T] {
	switch d {
	case DirectionNext:
		return NextPageFailed[T]{State: state, PreviousState: previous}
	case DirectionPrevious:
		return PreviousPageFailed[T]{State: state, PreviousState: previous}
	default:
		panic(fmt.Errorf("unknown direction '%s'", d))
	}
}

// MapEvent converts an event's states with mapState and its raw page with
// mapPage, keeping the variant.
func MapEvent[T, U any](e Event[T], mapState func(State[T]) State[U], mapPage func([]T) []U) Event[U] {
	switch ev := e.(type) {
	case Current[T]:
		return Current[U]{State: mapState(ev.State)}
	case NextPageLoading[T]:
		return NextPageLoading[U]{State: mapState(ev.State), PreviousState: mapState(ev.PreviousState)}
	case PreviousPageLoading[T]:
		return PreviousPageLoading[U]{State: mapState(ev.State), PreviousState: mapState(ev.PreviousState)}
	case NextPageLoaded[T]:
		return NextPageLoaded[U]{
			State:         mapState(ev.State),
			PreviousState: mapState(ev.PreviousState),
			NewElements:   mapPage(ev.NewElements),
		}
	case PreviousPageLoaded[T]:
		return PreviousPageLoaded[U]{
			State:         mapState(ev.State),
			PreviousState: mapState(ev.PreviousState),
			NewElements:   mapPage(ev.NewElements),
		}
	case NextPageFailed[T]:
		return NextPageFailed[U]{State: mapState(ev.State), PreviousState: mapState(ev.PreviousState)}
	case PreviousPageFailed[T]:
		return PreviousPageFailed[U]{State: mapState(ev.State), PreviousState: mapState(ev.PreviousState)}
	default:
		panic(fmt.Errorf("unknown event type %T", e))
	}
}
