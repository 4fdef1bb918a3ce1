package pageloader

import (
	"fmt"

	"github.com/samber/lo"
)

// CombineFunc merges a freshly fetched page into the loaded elements. It must
// return a new slice and leave both arguments untouched.
type CombineFunc[T any] func(current, page []T) []T

// AppendPage is the default forward merge: current followed by page.
func AppendPage[T any](current, page []T) []T {
	return lo.Flatten([][]T{current, page})
}

// PrependPage is the default backward merge: page followed by current.
func PrependPage[T any](current, page []T) []T {
	return lo.Flatten([][]T{page, current})
}

// merged is the outcome of applying a LoadResult to the loader's current
// values.
type merged[T, Info any] struct {
	state        State[T]
	nextInfo     Info
	previousInfo Info
}

// mergeResult applies res, fetched for direction d, on top of the current
// values. The loaded direction defaults to HasMore when the result says
// nothing about it; the other direction defaults to its current status. While
// the other direction is Loading its fetch owns it, so overrides for it (status
// and info) are ignored.
func mergeResult[T, Info any](
	d Direction,
	current merged[T, Info],
	res LoadResult[T, Info],
	combine CombineFunc[T],
) merged[T, Info] {
	var (
		next     = current.state.NextPageState
		previous = current.state.PreviousPageState
	)

	var (
		nextInfo     = res.NextPageInfo.Or(current.nextInfo)
		previousInfo = res.PreviousPageInfo.Or(current.previousInfo)
	)

	switch d {
	case DirectionNext:
		next = pageStateFromHasMore(res.NextPageHasMore.Or(true))
		if IsLoading(previous) {
			previousInfo = current.previousInfo
		} else if hasMore, ok := res.PreviousPageHasMore.Value(); ok {
			previous = pageStateFromHasMore(hasMore)
		}
	case DirectionPrevious:
		previous = pageStateFromHasMore(res.PreviousPageHasMore.Or(true))
		if IsLoading(next) {
			nextInfo = current.nextInfo
		} else if hasMore, ok := res.NextPageHasMore.Value(); ok {
			next = pageStateFromHasMore(hasMore)
		}
	default:
		panic(fmt.Errorf("unknown direction '%s'", d))
	}

	return merged[T, Info]{
		state: State[T]{
			Elements:          combine(current.state.Elements, res.Elements),
			NextPageState:     next,
			PreviousPageState: previous,
		},
		nextInfo:     nextInfo,
		previousInfo: previousInfo,
	}
}
