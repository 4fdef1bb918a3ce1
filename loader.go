package pageloader

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/go-logr/logr"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/Alp4ka/pageloader"

// ErrFetchPanic wraps a panic raised by a Fetcher. The panic is contained to
// the direction being loaded, which becomes Failed.
var ErrFetchPanic = errors.New("fetcher panicked")

// Loader is the pagination engine. It owns the current State, one Info value
// per direction, the Fetcher and the merge functions, and publishes every
// transition to its subscribers.
//
// Configure a Loader with the With* methods before the first load. LoadNext,
// LoadPrevious, State, Infos, Subscribe and Close are safe for concurrent use.
type Loader[T, Info any] struct {
	mu           sync.Mutex
	state        State[T]
	nextInfo     Info
	previousInfo Info
	closed       bool

	fetcher         Fetcher[T, Info]
	combineNext     CombineFunc[T]
	combinePrevious CombineFunc[T]
	hub             *hub[T]

	logger logr.Logger
	tracer trace.Tracer

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewLoader creates a Loader with no elements, both directions HasMore, and the
// given initial Info values.
func NewLoader[T, Info any](fetcher Fetcher[T, Info], nextInfo, previousInfo Info) *Loader[T, Info] {
	ctx, cancel := context.WithCancel(context.Background())

	return &Loader[T, Info]{
		state:           NewState[T](nil, HasMore{}, HasMore{}),
		nextInfo:        nextInfo,
		previousInfo:    previousInfo,
		fetcher:         fetcher,
		combineNext:     AppendPage[T],
		combinePrevious: PrependPage[T],
		hub:             newHub[T](),
		logger:          logr.Discard(),
		tracer:          otel.Tracer(tracerName),
		ctx:             ctx,
		cancel:          cancel,
	}
}

// WithCombineNext replaces the forward merge. Nil restores AppendPage.
func (l *Loader[T, Info]) WithCombineNext(fn CombineFunc[T]) *Loader[T, Info] {
	if fn == nil {
		fn = AppendPage[T]
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.combineNext = fn

	return l
}

// WithCombinePrevious replaces the backward merge. Nil restores PrependPage.
func (l *Loader[T, Info]) WithCombinePrevious(fn CombineFunc[T]) *Loader[T, Info] {
	if fn == nil {
		fn = PrependPage[T]
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.combinePrevious = fn

	return l
}

// WithInitialState replaces the starting state, e.g. to start with a direction
// already Completed. Nil page states default to HasMore.
func (l *Loader[T, Info]) WithInitialState(state State[T]) *Loader[T, Info] {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.state = state.normalized()

	return l
}

// WithLogger sets the logger. Transitions are logged at V(1), fetch failures
// as errors.
func (l *Loader[T, Info]) WithLogger(logger logr.Logger) *Loader[T, Info] {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.logger = logger

	return l
}

// WithTracerProvider sets the provider used to trace fetches. Nil restores the
// global provider.
func (l *Loader[T, Info]) WithTracerProvider(tp trace.TracerProvider) *Loader[T, Info] {
	if tp == nil {
		tp = otel.GetTracerProvider()
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.tracer = tp.Tracer(tracerName)

	return l
}

// State returns the current snapshot.
func (l *Loader[T, Info]) State() State[T] {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.state
}

// Infos returns the current Info of both directions.
func (l *Loader[T, Info]) Infos() (next, previous Info) {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.nextInfo, l.previousInfo
}

// Subscribe attaches an observer. The returned channel first yields Current
// with the state at attachment time, then every transition in the order the
// loader produced it. It is closed when ctx is done or the loader is closed.
func (l *Loader[T, Info]) Subscribe(ctx context.Context) <-chan Event[T] {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.hub.subscribe(ctx, Current[T]{State: l.state})
}

// LoadNext fetches the next page unless the forward direction is Loading or
// Completed. It never blocks.
func (l *Loader[T, Info]) LoadNext() {
	l.load(DirectionNext)
}

// LoadPrevious fetches the previous page unless the backward direction is
// Loading or Completed. It never blocks.
func (l *Loader[T, Info]) LoadPrevious() {
	l.load(DirectionPrevious)
}

// Close cancels in-flight fetches of both directions, terminates every event
// stream and waits for fetch goroutines to return. Results arriving after
// Close are discarded, as are events a subscriber has not received yet. Close
// is idempotent.
//
// A Fetcher must not call Close on the loader that invoked it: Close would wait
// for the very fetch that is calling it. Return ctx.Err() or an error instead.
func (l *Loader[T, Info]) Close() {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.closed = true
	l.cancel()
	l.hub.close()
	l.mu.Unlock()

	l.wg.Wait()
}

func (l *Loader[T, Info]) load(d Direction) {
	l.mu.Lock()

	logger := l.logger
	current := l.state.PageState(d)
	if closed := l.closed; closed || !eligible(current) {
		l.mu.Unlock()
		logger.V(1).Info("load skipped", "direction", d, "pageState", current.Kind(), "closed", closed)

		return
	}

	before := l.state
	l.state = before.withPageState(d, Loading{})
	req := LoadRequest[T, Info]{
		Direction: d,
		Elements:  before.Elements,
		Info:      l.info(d),
	}
	l.hub.publish(loadingEvent(d, l.state, before))

	l.wg.Add(1)
	ctx, tracer := l.ctx, l.tracer
	l.mu.Unlock()

	logger.V(1).Info("page loading", "direction", d, "elements", len(req.Elements))

	go l.fetch(ctx, tracer, req)
}

func (l *Loader[T, Info]) fetch(ctx context.Context, tracer trace.Tracer, req LoadRequest[T, Info]) {
	defer l.wg.Done()

	ctx, span := tracer.Start(ctx, "pageloader.fetch", trace.WithAttributes(
		attribute.String("direction", req.Direction.String()),
		attribute.Int("elements", len(req.Elements)),
	))
	defer span.End()

	res, err := l.invoke(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		l.fail(req.Direction, err)

		return
	}

	span.SetAttributes(attribute.Int("page.size", len(res.Elements)))
	l.complete(req.Direction, res)
}

// invoke calls the fetcher, turning a panic into an error.
func (l *Loader[T, Info]) invoke(ctx context.Context, req LoadRequest[T, Info]) (res LoadResult[T, Info], err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrFetchPanic, r)
		}
	}()

	return l.fetcher.Fetch(ctx, req)
}

func (l *Loader[T, Info]) complete(d Direction, res LoadResult[T, Info]) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		l.logger.V(1).Info("page discarded after close", "direction", d)
		return
	}

	before := l.state
	after := mergeResult(d, merged[T, Info]{
		state:        before,
		nextInfo:     l.nextInfo,
		previousInfo: l.previousInfo,
	}, res, l.combine(d))

	l.state = after.state
	l.nextInfo = after.nextInfo
	l.previousInfo = after.previousInfo
	l.hub.publish(loadedEvent(d, l.state, before, res.Elements))

	l.logger.V(1).Info("page loaded",
		"direction", d,
		"page", len(res.Elements),
		"elements", len(l.state.Elements),
		"next", l.state.NextPageState.Kind(),
		"previous", l.state.PreviousPageState.Kind(),
	)
}

func (l *Loader[T, Info]) fail(d Direction, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		l.logger.V(1).Info("failure discarded after close", "direction", d, "error", err.Error())
		return
	}

	before := l.state
	l.state = before.withPageState(d, Failed{Err: err})
	l.hub.publish(failedEvent(d, l.state, before))

	l.logger.Error(err, "page fetch failed", "direction", d)
}

func (l *Loader[T, Info]) info(d Direction) Info {
	if d == DirectionNext {
		return l.nextInfo
	}

	return l.previousInfo
}

func (l *Loader[T, Info]) combine(d Direction) CombineFunc[T] {
	if d == DirectionNext {
		return l.combineNext
	}

	return l.combinePrevious
}
