// Package pageloader provides an incremental, bidirectional collection loader.
//
// Overview
//
// A Loader grows an ordered sequence of elements by fetching pages from a
// caller-supplied Fetcher, either forward (LoadNext, appending) or backward
// (LoadPrevious, prepending). Each direction tracks its own PageState:
//   - HasMore: another page may exist, the direction is eligible to load.
//   - Loading: a fetch is in flight, further calls are ignored.
//   - Completed: the direction is exhausted for good.
//   - Failed: the last fetch failed, calling the load again retries it.
//
// Key concepts
//   - State: immutable snapshot of elements plus both page states.
//   - LoadResult: a fetched page together with optional Mutation overrides for
//     either direction's "has more" flag and opaque Info (e.g. a cursor token).
//   - Event: every transition is published to subscribers in order. A new
//     subscriber first receives Current with the state at attachment time.
//   - Collection: Info-erased view of a loader, composable with MapElements and
//     MapErrors.
//
// The gormsource sub-package provides keyset and offset fetchers for GORM.
// See examples/ for runnable programs.
package pageloader
