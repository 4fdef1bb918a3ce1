package pageloader

import (
	"context"

	"github.com/samber/lo"
)

// Collection is the Info-erased surface of a loader. *Loader satisfies it for
// any Info type.
type Collection[T any] interface {
	State() State[T]
	Subscribe(ctx context.Context) <-chan Event[T]
	LoadNext()
	LoadPrevious()
}

var _ Collection[int] = (*Loader[int, NoInfo])(nil)

// mapped forwards to an upstream collection, converting every observed state
// and event. It keeps no state of its own.
type mapped[T, U any] struct {
	up       Collection[T]
	mapState func(State[T]) State[U]
	mapPage  func([]T) []U
}

// MapElements returns a view of c whose elements are converted by fn. fn is
// applied on every observation, so it should be cheap and pure.
func MapElements[T, U any](c Collection[T], fn func(T) U) Collection[U] {
	mapPage := func(page []T) []U {
		if page == nil {
			return nil
		}

		return lo.Map(page, func(item T, _ int) U { return fn(item) })
	}

	return &mapped[T, U]{
		up:      c,
		mapPage: mapPage,
		mapState: func(s State[T]) State[U] {
			return State[U]{
				Elements:          mapPage(s.Elements),
				NextPageState:     s.NextPageState,
				PreviousPageState: s.PreviousPageState,
			}
		},
	}
}

// MapErrors returns a view of c whose Failed errors are converted by fn.
func MapErrors[T any](c Collection[T], fn func(error) error) Collection[T] {
	return &mapped[T, T]{
		up:      c,
		mapPage: func(page []T) []T { return page },
		mapState: func(s State[T]) State[T] {
			return State[T]{
				Elements:          s.Elements,
				NextPageState:     MapPageStateError(s.NextPageState, fn),
				PreviousPageState: MapPageStateError(s.PreviousPageState, fn),
			}
		},
	}
}

func (m *mapped[T, U]) State() State[U] {
	return m.mapState(m.up.State())
}

func (m *mapped[T, U]) Subscribe(ctx context.Context) <-chan Event[U] {
	in := m.up.Subscribe(ctx)
	out := make(chan Event[U])

	// Events wait in pending so that the end of the upstream stream is seen
	// even while the reader is not receiving.
	go func() {
		defer close(out)

		var pending []Event[U]
		for {
			var (
				send chan Event[U]
				head Event[U]
			)
			if len(pending) > 0 {
				send, head = out, pending[0]
			}

			select {
			case e, ok := <-in:
				if !ok {
					return
				}
				pending = append(pending, MapEvent(e, m.mapState, m.mapPage))
			case send <- head:
				pending[0] = nil
				pending = pending[1:]
			case <-ctx.Done():
				return
			}
		}
	}()

	return out
}

func (m *mapped[T, U]) LoadNext() {
	m.up.LoadNext()
}

func (m *mapped[T, U]) LoadPrevious() {
	m.up.LoadPrevious()
}
