package pageloader

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_AppendPage_PrependPage(t *testing.T) {
	current := []int{3, 4}
	page := []int{1, 2}

	require.Equal(t, []int{3, 4, 1, 2}, AppendPage(current, page))
	require.Equal(t, []int{1, 2, 3, 4}, PrependPage(current, page))
	require.Equal(t, []int{3, 4}, current, "inputs must stay untouched")
	require.Equal(t, []int{1, 2}, page, "inputs must stay untouched")
}

func Test_mergeResult(t *testing.T) {
	someErr := errors.New("boom")
	current := merged[string, string]{
		state:        NewState([]string{"m"}, Loading{}, Failed{Err: someErr}),
		nextInfo:     "next-0",
		previousInfo: "prev-0",
	}

	tests := []struct {
		name    string
		dir     Direction
		current merged[string, string]
		res     LoadResult[string, string]
		want    merged[string, string]
	}{
		{
			name:    "next without overrides",
			dir:     DirectionNext,
			current: current,
			res:     LoadResult[string, string]{Elements: []string{"n"}},
			want: merged[string, string]{
				state:        NewState([]string{"m", "n"}, HasMore{}, Failed{Err: someErr}),
				nextInfo:     "next-0",
				previousInfo: "prev-0",
			},
		},
		{
			name:    "next with all overrides",
			dir:     DirectionNext,
			current: current,
			res: LoadResult[string, string]{
				Elements:            []string{"n"},
				NextPageHasMore:     Replace(false),
				PreviousPageHasMore: Replace(true),
				NextPageInfo:        Replace("next-1"),
				PreviousPageInfo:    Replace("prev-1"),
			},
			want: merged[string, string]{
				state:        NewState([]string{"m", "n"}, Completed{}, HasMore{}),
				nextInfo:     "next-1",
				previousInfo: "prev-1",
			},
		},
		{
			name: "previous without overrides keeps next",
			dir:  DirectionPrevious,
			current: merged[string, string]{
				state:        NewState([]string{"m"}, Completed{}, Loading{}),
				nextInfo:     "next-0",
				previousInfo: "prev-0",
			},
			res: LoadResult[string, string]{Elements: []string{"p"}},
			want: merged[string, string]{
				state:        NewState([]string{"p", "m"}, Completed{}, HasMore{}),
				nextInfo:     "next-0",
				previousInfo: "prev-0",
			},
		},
		{
			name: "previous overriding an idle next direction",
			dir:  DirectionPrevious,
			current: merged[string, string]{
				state: NewState[string](nil, HasMore{}, Loading{}),
			},
			res: LoadResult[string, string]{
				Elements:            []string{"p"},
				PreviousPageHasMore: Replace(false),
				NextPageHasMore:     Replace(false),
				NextPageInfo:        Replace("after-p"),
			},
			want: merged[string, string]{
				state:    NewState([]string{"p"}, Completed{}, Completed{}),
				nextInfo: "after-p",
			},
		},
		{
			name: "next leaves an in-flight previous alone",
			dir:  DirectionNext,
			current: merged[string, string]{
				state:        NewState([]string{"m"}, Loading{}, Loading{}),
				nextInfo:     "next-0",
				previousInfo: "prev-0",
			},
			res: LoadResult[string, string]{
				Elements:            []string{"n"},
				PreviousPageHasMore: Replace(true),
				PreviousPageInfo:    Replace("prev-1"),
			},
			want: merged[string, string]{
				state:        NewState([]string{"m", "n"}, HasMore{}, Loading{}),
				nextInfo:     "next-0",
				previousInfo: "prev-0",
			},
		},
		{
			name: "previous leaves an in-flight next alone",
			dir:  DirectionPrevious,
			current: merged[string, string]{
				state:        NewState([]string{"m"}, Loading{}, Loading{}),
				nextInfo:     "next-0",
				previousInfo: "prev-0",
			},
			res: LoadResult[string, string]{
				Elements:            []string{"p"},
				PreviousPageHasMore: Replace(false),
				NextPageHasMore:     Replace(false),
				NextPageInfo:        Replace("next-1"),
			},
			want: merged[string, string]{
				state:        NewState([]string{"p", "m"}, Loading{}, Completed{}),
				nextInfo:     "next-0",
				previousInfo: "prev-0",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			combine := AppendPage[string]
			if tt.dir == DirectionPrevious {
				combine = PrependPage[string]
			}

			got := mergeResult(tt.dir, tt.current, tt.res, combine)
			require.Equal(t, tt.want, got)
		})
	}
}
