package pageloader

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const testTimeout = 2 * time.Second

// recv reads the next event or fails the test.
func recv[T any](t *testing.T, events <-chan Event[T]) Event[T] {
	t.Helper()

	select {
	case e, ok := <-events:
		require.True(t, ok, "event stream closed")
		return e
	case <-time.After(testTimeout):
		t.Fatal("timed out waiting for event")
		return nil
	}
}

// recvKinds reads len(kinds) events and checks their kinds in order.
func recvKinds[T any](t *testing.T, events <-chan Event[T], kinds ...EventKind) []Event[T] {
	t.Helper()

	ret := make([]Event[T], 0, len(kinds))
	for _, kind := range kinds {
		e := recv(t, events)
		require.Equal(t, kind, e.Kind())
		ret = append(ret, e)
	}

	return ret
}

func requireNoEvent[T any](t *testing.T, events <-chan Event[T]) {
	t.Helper()

	select {
	case e, ok := <-events:
		if ok {
			t.Fatalf("unexpected event %s", e.Kind())
		}
	case <-time.After(50 * time.Millisecond):
	}
}

// waitIdle blocks until no direction of c is Loading.
func waitIdle[T any](t *testing.T, c Collection[T]) State[T] {
	t.Helper()

	require.Eventually(t, func() bool {
		s := c.State()
		return !IsLoading(s.NextPageState) && !IsLoading(s.PreviousPageState)
	}, testTimeout, time.Millisecond)

	return c.State()
}

// gatedFetcher answers each direction only when the test sends an outcome for
// it, so the test controls completion order.
type gatedFetcher[T any] struct {
	next     chan Outcome[T, NoInfo]
	previous chan Outcome[T, NoInfo]
}

func newGatedFetcher[T any]() *gatedFetcher[T] {
	return &gatedFetcher[T]{
		next:     make(chan Outcome[T, NoInfo]),
		previous: make(chan Outcome[T, NoInfo]),
	}
}

func (g *gatedFetcher[T]) Fetch(ctx context.Context, req LoadRequest[T, NoInfo]) (LoadResult[T, NoInfo], error) {
	gate := g.next
	if req.Direction == DirectionPrevious {
		gate = g.previous
	}

	select {
	case o := <-gate:
		return o.Result, o.Err
	case <-ctx.Done():
		return LoadResult[T, NoInfo]{}, ctx.Err()
	}
}

func (g *gatedFetcher[T]) release(t *testing.T, d Direction, o Outcome[T, NoInfo]) {
	t.Helper()

	gate := g.next
	if d == DirectionPrevious {
		gate = g.previous
	}

	select {
	case gate <- o:
	case <-time.After(testTimeout):
		t.Fatalf("no %s fetch waiting", d)
	}
}
