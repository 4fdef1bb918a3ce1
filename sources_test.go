package pageloader

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_SliceFetcher_Fetch(t *testing.T) {
	items := []int{0, 1, 2, 3, 4}
	f := NewSliceFetcher(items, 2)

	tests := []struct {
		name string
		req  LoadRequest[int, int]
		want LoadResult[int, int]
	}{
		{
			name: "next from start",
			req:  LoadRequest[int, int]{Direction: DirectionNext, Info: 0},
			want: LoadResult[int, int]{
				Elements:        []int{0, 1},
				NextPageHasMore: Replace(true),
				NextPageInfo:    Replace(2),
			},
		},
		{
			name: "next last short page",
			req:  LoadRequest[int, int]{Direction: DirectionNext, Info: 4},
			want: LoadResult[int, int]{
				Elements:        []int{4},
				NextPageHasMore: Replace(false),
				NextPageInfo:    Replace(5),
			},
		},
		{
			name: "previous from middle",
			req:  LoadRequest[int, int]{Direction: DirectionPrevious, Info: 3},
			want: LoadResult[int, int]{
				Elements:            []int{1, 2},
				PreviousPageHasMore: Replace(true),
				PreviousPageInfo:    Replace(1),
			},
		},
		{
			name: "previous reaching start",
			req:  LoadRequest[int, int]{Direction: DirectionPrevious, Info: 1},
			want: LoadResult[int, int]{
				Elements:            []int{0},
				PreviousPageHasMore: Replace(false),
				PreviousPageInfo:    Replace(0),
			},
		},
		{
			name: "next out of range info is clamped",
			req:  LoadRequest[int, int]{Direction: DirectionNext, Info: 42},
			want: LoadResult[int, int]{
				Elements:        []int{},
				NextPageHasMore: Replace(false),
				NextPageInfo:    Replace(5),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := f.Fetch(context.Background(), tt.req)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}

	_, err := f.Fetch(context.Background(), LoadRequest[int, int]{Direction: "sideways"})
	require.Error(t, err)
}

func Test_NewSliceLoader_InitialState(t *testing.T) {
	tests := []struct {
		name     string
		items    []int
		start    int
		next     PageState
		previous PageState
	}{
		{"start at head", []int{1, 2}, 0, HasMore{}, Completed{}},
		{"start in middle", []int{1, 2}, 1, HasMore{}, HasMore{}},
		{"start at tail", []int{1, 2}, 2, Completed{}, HasMore{}},
		{"start beyond tail is clamped", []int{1, 2}, 9, Completed{}, HasMore{}},
		{"empty items", nil, 0, Completed{}, Completed{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewSliceLoader(tt.items, 1, tt.start)
			t.Cleanup(l.Close)

			s := l.State()
			require.Empty(t, s.Elements)
			require.Equal(t, tt.next, s.NextPageState)
			require.Equal(t, tt.previous, s.PreviousPageState)
		})
	}
}

func Test_NewSliceLoader_Bidirectional(t *testing.T) {
	l := NewSliceLoader([]string{"a", "b", "c", "d", "e"}, 2, 3)
	t.Cleanup(l.Close)

	l.LoadPrevious()
	waitIdle[string](t, l)
	l.LoadNext()
	waitIdle[string](t, l)
	l.LoadPrevious()
	s := waitIdle[string](t, l)

	require.Equal(t, []string{"a", "b", "c", "d", "e"}, s.Elements)
	require.Equal(t, Completed{}, s.NextPageState)
	require.Equal(t, Completed{}, s.PreviousPageState)

	next, previous := l.Infos()
	require.Equal(t, 5, next)
	require.Equal(t, 0, previous)
}

func Test_ScriptedFetcher_Exhausted(t *testing.T) {
	l := NewScriptedLoader(Succeed(LoadResult[int, NoInfo]{Elements: []int{1}}))
	t.Cleanup(l.Close)

	l.LoadNext()
	waitIdle[int](t, l)
	l.LoadNext()
	s := waitIdle[int](t, l)

	require.ErrorIs(t, PageStateErr(s.NextPageState), ErrScriptExhausted)
	require.Equal(t, []int{1}, s.Elements)
}
