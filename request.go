package pageloader

import "context"

// LoadRequest is passed to a Fetcher. It reflects the loader at the moment the
// load was issued.
type LoadRequest[T, Info any] struct {
	// Direction being loaded.
	Direction Direction
	// Elements loaded when the request was issued.
	Elements []T
	// Info of the requested direction when the request was issued.
	Info Info
}

// LoadResult is produced by a Fetcher.
type LoadResult[T, Info any] struct {
	// Elements newly fetched page, not merged yet.
	Elements []T
	// NextPageHasMore overrides the forward "has more" flag.
	NextPageHasMore Mutation[bool]
	// PreviousPageHasMore overrides the backward "has more" flag.
	PreviousPageHasMore Mutation[bool]
	// NextPageInfo overrides the forward info.
	NextPageInfo Mutation[Info]
	// PreviousPageInfo overrides the backward info.
	PreviousPageInfo Mutation[Info]
}

// Fetcher loads one page for a request. Fetch is called on its own goroutine;
// ctx is cancelled when the loader is closed. Fetch must not close the loader
// that called it.
type Fetcher[T, Info any] interface {
	Fetch(ctx context.Context, req LoadRequest[T, Info]) (LoadResult[T, Info], error)
}

// FetchFunc adapts a plain function to Fetcher.
type FetchFunc[T, Info any] func(ctx context.Context, req LoadRequest[T, Info]) (LoadResult[T, Info], error)

func (f FetchFunc[T, Info]) Fetch(ctx context.Context, req LoadRequest[T, Info]) (LoadResult[T, Info], error) {
	return f(ctx, req)
}
