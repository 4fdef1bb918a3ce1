package pageloader

import (
	"context"
	"sync"
)

// hub fans loader events out to subscribers. publish never blocks: every
// subscriber owns an unbounded FIFO drained by its own goroutine, so a slow
// reader delays only itself and never loses or reorders events. Closing the
// hub ends every stream; events a reader has not taken by then are dropped.
type hub[T any] struct {
	mu          sync.Mutex
	subscribers map[*subscriber[T]]struct{}
	closed      bool
}

func newHub[T any]() *hub[T] {
	return &hub[T]{subscribers: make(map[*subscriber[T]]struct{})}
}

// subscribe registers a subscriber whose queue starts with prime. On a closed
// hub the returned channel holds prime and is already closed.
func (h *hub[T]) subscribe(ctx context.Context, prime Event[T]) <-chan Event[T] {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		out := make(chan Event[T], 1)
		out <- prime
		close(out)

		return out
	}

	s := &subscriber[T]{
		queue: []Event[T]{prime},
		wake:  make(chan struct{}, 1),
		done:  make(chan struct{}),
		out:   make(chan Event[T]),
	}
	h.subscribers[s] = struct{}{}

	go s.run(ctx, func() { h.detach(s) })

	return s.out
}

func (h *hub[T]) publish(e Event[T]) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for s := range h.subscribers {
		s.push(e)
	}
}

// close terminates every subscriber.
func (h *hub[T]) close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.closed = true

	for s := range h.subscribers {
		close(s.done)
	}
	clear(h.subscribers)
}

func (h *hub[T]) detach(s *subscriber[T]) {
	h.mu.Lock()
	defer h.mu.Unlock()

	delete(h.subscribers, s)
}

func (h *hub[T]) len() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	return len(h.subscribers)
}

type subscriber[T any] struct {
	mu    sync.Mutex
	queue []Event[T]

	wake chan struct{}
	// done is closed by the hub, at most once.
	done chan struct{}
	out  chan Event[T]
}

func (s *subscriber[T]) push(e Event[T]) {
	s.mu.Lock()
	s.queue = append(s.queue, e)
	s.mu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// next pops the head of the queue. ok is false when the queue is empty.
func (s *subscriber[T]) next() (Event[T], bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.queue) == 0 {
		return nil, false
	}

	e := s.queue[0]
	s.queue[0] = nil
	s.queue = s.queue[1:]

	return e, true
}

func (s *subscriber[T]) run(ctx context.Context, detach func()) {
	defer close(s.out)

	for {
		select {
		case <-s.done:
			return
		default:
		}

		e, ok := s.next()
		if !ok {
			select {
			case <-s.wake:
			case <-s.done:
				return
			case <-ctx.Done():
				detach()
				return
			}

			continue
		}

		select {
		case s.out <- e:
		case <-s.done:
			return
		case <-ctx.Done():
			detach()
			return
		}
	}
}
