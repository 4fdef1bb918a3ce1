package pageloader

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/samber/lo"
)

// ErrScriptExhausted is returned by a ScriptedFetcher called more times than it
// has outcomes.
var ErrScriptExhausted = errors.New("scripted fetcher has no outcomes left")

// NoInfo is the Info type of loaders that need no per-direction context.
type NoInfo = struct{}

// NewLoaderNoInfo creates a Loader whose fetcher needs no per-direction
// context.
func NewLoaderNoInfo[T any](fetcher Fetcher[T, NoInfo]) *Loader[T, NoInfo] {
	return NewLoader[T, NoInfo](fetcher, NoInfo{}, NoInfo{})
}

// NewStatic presents elements as a single, already loaded page. Both
// directions are Completed, so loads are no-ops and the fetcher is never
// called.
func NewStatic[T any](elements []T) *Loader[T, NoInfo] {
	fetcher := FetchFunc[T, NoInfo](func(context.Context, LoadRequest[T, NoInfo]) (LoadResult[T, NoInfo], error) {
		return LoadResult[T, NoInfo]{}, fmt.Errorf("static collection has no pages to fetch")
	})

	return NewLoaderNoInfo[T](fetcher).
		WithInitialState(NewState(elements, Completed{}, Completed{}))
}

// SliceFetcher pages over a fixed slice. Info is an index into items: for the
// next direction the first index not loaded yet, for the previous direction the
// first index already loaded.
type SliceFetcher[T any] struct {
	items    []T
	pageSize int
}

func NewSliceFetcher[T any](items []T, pageSize int) *SliceFetcher[T] {
	return &SliceFetcher[T]{
		items:    items,
		pageSize: NormalizePageSize(pageSize),
	}
}

// Fetch - implements Fetcher.
func (f *SliceFetcher[T]) Fetch(_ context.Context, req LoadRequest[T, int]) (LoadResult[T, int], error) {
	switch req.Direction {
	case DirectionNext:
		begin := lo.Clamp(req.Info, 0, len(f.items))
		end := min(begin+f.pageSize, len(f.items))

		return LoadResult[T, int]{
			Elements:        f.items[begin:end:end],
			NextPageHasMore: Replace(end < len(f.items)),
			NextPageInfo:    Replace(end),
		}, nil
	case DirectionPrevious:
		end := lo.Clamp(req.Info, 0, len(f.items))
		begin := max(end-f.pageSize, 0)

		return LoadResult[T, int]{
			Elements:            f.items[begin:end:end],
			PreviousPageHasMore: Replace(begin > 0),
			PreviousPageInfo:    Replace(begin),
		}, nil
	default:
		return LoadResult[T, int]{}, fmt.Errorf("unknown direction '%s'", req.Direction)
	}
}

// NewSliceLoader creates a Loader paging over items in pages of pageSize,
// starting at index start. A direction that has nothing to load from start is
// Completed from the beginning.
func NewSliceLoader[T any](items []T, pageSize int, start int) *Loader[T, int] {
	start = lo.Clamp(start, 0, len(items))

	return NewLoader[T, int](NewSliceFetcher(items, pageSize), start, start).
		WithInitialState(NewState[T](
			nil,
			pageStateFromHasMore(start < len(items)),
			pageStateFromHasMore(start > 0),
		))
}

// Outcome is one canned answer of a ScriptedFetcher.
type Outcome[T, Info any] struct {
	Result LoadResult[T, Info]
	Err    error
}

func Succeed[T, Info any](result LoadResult[T, Info]) Outcome[T, Info] {
	return Outcome[T, Info]{Result: result}
}

func Fail[T, Info any](err error) Outcome[T, Info] {
	return Outcome[T, Info]{Err: err}
}

// ScriptedFetcher answers requests with prepared outcomes in order, whatever
// the direction. Requests are recorded for inspection.
type ScriptedFetcher[T, Info any] struct {
	mu       sync.Mutex
	outcomes []Outcome[T, Info]
	requests []LoadRequest[T, Info]
}

func NewScriptedFetcher[T, Info any](outcomes ...Outcome[T, Info]) *ScriptedFetcher[T, Info] {
	return &ScriptedFetcher[T, Info]{outcomes: outcomes}
}

// Fetch - implements Fetcher.
func (f *ScriptedFetcher[T, Info]) Fetch(_ context.Context, req LoadRequest[T, Info]) (LoadResult[T, Info], error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.requests = append(f.requests, req)
	if len(f.outcomes) == 0 {
		return LoadResult[T, Info]{}, ErrScriptExhausted
	}

	next := f.outcomes[0]
	f.outcomes = f.outcomes[1:]

	return next.Result, next.Err
}

// Requests returns the requests received so far.
func (f *ScriptedFetcher[T, Info]) Requests() []LoadRequest[T, Info] {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]LoadRequest[T, Info](nil), f.requests...)
}

// NewScriptedLoader creates a Loader answering loads with outcomes in order.
func NewScriptedLoader[T any](outcomes ...Outcome[T, NoInfo]) *Loader[T, NoInfo] {
	return NewLoaderNoInfo[T](NewScriptedFetcher(outcomes...))
}
