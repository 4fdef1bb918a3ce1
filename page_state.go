package pageloader

import (
	"fmt"

	"github.com/samber/lo"
)

// PageStateKind names the variant held by a PageState.
type PageStateKind string

const (
	PageStateHasMore   PageStateKind = "has_more"
	PageStateCompleted PageStateKind = "completed"
	PageStateLoading   PageStateKind = "loading"
	PageStateFailed    PageStateKind = "failed"
)

// PageState is the lifecycle of one direction's pagination cursor. It is a
// closed set: HasMore, Completed, Loading and Failed are the only
// implementations.
type PageState interface {
	Kind() PageStateKind
	fmt.Stringer

	pageState()
}

type (
	// HasMore means at least one further page may exist.
	HasMore struct{}
	// Completed is terminal: no further page exists in this direction.
	Completed struct{}
	// Loading means a fetch for this direction is in flight.
	Loading struct{}
	// Failed holds the error of the last fetch for this direction.
	Failed struct {
		Err error
	}
)

func (HasMore) Kind() PageStateKind   { return PageStateHasMore }
func (Completed) Kind() PageStateKind { return PageStateCompleted }
func (Loading) Kind() PageStateKind   { return PageStateLoading }
func (Failed) Kind() PageStateKind    { return PageStateFailed }

func (HasMore) String() string   { return string(PageStateHasMore) }
func (Completed) String() string { return string(PageStateCompleted) }
func (Loading) String() string   { return string(PageStateLoading) }
func (f Failed) String() string  { return fmt.Sprintf("%s(%v)", PageStateFailed, f.Err) }

func (HasMore) pageState()   {}
func (Completed) pageState() {}
func (Loading) pageState()   {}
func (Failed) pageState()    {}

var (
	_ PageState = HasMore{}
	_ PageState = Completed{}
	_ PageState = Loading{}
	_ PageState = Failed{}
)

func IsHasMore(s PageState) bool {
	_, ok := s.(HasMore)
	return ok
}

func IsCompleted(s PageState) bool {
	_, ok := s.(Completed)
	return ok
}

func IsLoading(s PageState) bool {
	_, ok := s.(Loading)
	return ok
}

func IsFailed(s PageState) bool {
	_, ok := s.(Failed)
	return ok
}

// PageStateErr returns the error carried by Failed, nil for any other state.
func PageStateErr(s PageState) error {
	if f, ok := s.(Failed); ok {
		return f.Err
	}

	return nil
}

// MapPageStateError applies fn to the error of a Failed state. Other states are
// returned unchanged.
func MapPageStateError(s PageState, fn func(error) error) PageState {
	if f, ok := s.(Failed); ok {
		return Failed{Err: fn(f.Err)}
	}

	return s
}

// eligible reports whether a load may start from s. Failed is eligible so the
// caller can retry.
func eligible(s PageState) bool {
	switch s.(type) {
	case HasMore, Failed:
		return true
	default:
		return false
	}
}

func pageStateFromHasMore(hasMore bool) PageState {
	return lo.Ternary[PageState](hasMore, HasMore{}, Completed{})
}
