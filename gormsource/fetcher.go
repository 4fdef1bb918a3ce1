package gormsource

import (
	"context"
	"fmt"
	"slices"

	"gorm.io/gorm"

	"github.com/Alp4ka/pageloader"
)

// QueryFunc returns the base query of the paged dataset, e.g.
//
//	func(ctx context.Context) *gorm.DB {
//		return db.WithContext(ctx).Model(&User{}).Where("active")
//	}
//
// It must return a fresh statement on every call.
type QueryFunc func(ctx context.Context) *gorm.DB

// KeysetFetcher pages a query by keyset. Its Info is the boundary Cursor of
// each direction; a nil cursor reads from the dataset edge the direction starts
// at. Build loaders over it with NewKeysetLoader or NewKeysetLoaderFromTail,
// which never leave both directions at an edge.
type KeysetFetcher[T any] struct {
	query     QueryFunc
	orderings Orderings
	getters   Getters[T]
	pageSize  int
}

// NewKeysetFetcher validates the orderings and getters. pageSize is
// normalized with pageloader.NormalizePageSize.
func NewKeysetFetcher[T any](query QueryFunc, orderings Orderings, getters Getters[T], pageSize int) (*KeysetFetcher[T], error) {
	if err := orderings.validate(); err != nil {
		return nil, fmt.Errorf("cannot build keyset fetcher: %w", err)
	}
	if err := getters.validate(orderings); err != nil {
		return nil, fmt.Errorf("cannot build keyset fetcher: %w", err)
	}

	return &KeysetFetcher[T]{
		query:     query,
		orderings: orderings,
		getters:   getters,
		pageSize:  pageloader.NormalizePageSize(pageSize),
	}, nil
}

// NewKeysetLoader creates a loader over f positioned at anchor: forward loads
// read the rows past it, backward loads the anchor row and the rows before it.
// A nil anchor positions the loader at the head of the dataset, with the
// previous direction Completed.
func NewKeysetLoader[T any](f *KeysetFetcher[T], anchor *Cursor) *pageloader.Loader[T, *Cursor] {
	if anchor.IsEmpty() {
		return pageloader.NewLoader[T, *Cursor](f, nil, nil).
			WithInitialState(pageloader.NewState[T](nil, pageloader.HasMore{}, pageloader.Completed{}))
	}

	return pageloader.NewLoader[T, *Cursor](f, anchor, anchor.Complement())
}

// NewKeysetLoaderFromTail creates a loader over f positioned at the tail of the
// dataset, with the next direction Completed.
func NewKeysetLoaderFromTail[T any](f *KeysetFetcher[T]) *pageloader.Loader[T, *Cursor] {
	return pageloader.NewLoader[T, *Cursor](f, nil, nil).
		WithInitialState(pageloader.NewState[T](nil, pageloader.Completed{}, pageloader.HasMore{}))
}

// Fetch - implements pageloader.Fetcher.
//
// A forward read applies the next cursor with the orderings; a backward read
// applies the previous cursor with the reversed orderings and flips the page
// back into collection order. One extra row is requested to tell whether
// another page exists. A read without a cursor starts at an edge, so nothing
// lies beyond it in the opposite direction.
func (f *KeysetFetcher[T]) Fetch(
	ctx context.Context,
	req pageloader.LoadRequest[T, *Cursor],
) (pageloader.LoadResult[T, *Cursor], error) {
	var res pageloader.LoadResult[T, *Cursor]

	if !req.Direction.Valid() {
		return res, fmt.Errorf("unknown direction '%s'", req.Direction)
	}

	backward := req.Direction == pageloader.DirectionPrevious
	orderings := f.orderings
	if backward {
		orderings = orderings.Reverse()
	}

	if err := req.Info.validate(orderings); err != nil {
		return res, fmt.Errorf("cannot fetch %s page: %w", req.Direction, err)
	}

	db := req.Info.Apply(orderings.Apply(f.query(ctx))).Limit(f.pageSize + 1)

	var rows []T
	if err := db.Find(&rows).Error; err != nil {
		return res, fmt.Errorf("cannot fetch %s page: %w", req.Direction, err)
	}

	hasMore := len(rows) > f.pageSize
	if hasMore {
		rows = rows[:f.pageSize]
	}
	if backward {
		slices.Reverse(rows)
	}

	res.Elements = rows
	fromEdge := req.Info.IsEmpty()

	if backward {
		res.PreviousPageHasMore = pageloader.Replace(hasMore)
		if len(rows) > 0 {
			res.PreviousPageInfo = pageloader.Replace(f.getters.boundary(orderings, rows[0]))
		}
		if fromEdge {
			res.NextPageHasMore = pageloader.Replace(false)
		}

		return res, nil
	}

	res.NextPageHasMore = pageloader.Replace(hasMore)
	if len(rows) > 0 {
		res.NextPageInfo = pageloader.Replace(f.getters.boundary(orderings, rows[len(rows)-1]))
	}
	if fromEdge {
		res.PreviousPageHasMore = pageloader.Replace(false)
	}

	return res, nil
}

// OffsetFetcher pages a query by LIMIT/OFFSET. Its Info is an OffsetCursor per
// direction.
type OffsetFetcher[T any] struct {
	query     QueryFunc
	orderings Orderings
	pageSize  int
}

func NewOffsetFetcher[T any](query QueryFunc, orderings Orderings, pageSize int) (*OffsetFetcher[T], error) {
	if err := orderings.validate(); err != nil {
		return nil, fmt.Errorf("cannot build offset fetcher: %w", err)
	}

	return &OffsetFetcher[T]{
		query:     query,
		orderings: orderings,
		pageSize:  pageloader.NormalizePageSize(pageSize),
	}, nil
}

// NewOffsetLoader creates a loader over f positioned at row start. The
// previous direction is Completed when start is the head of the dataset.
func NewOffsetLoader[T any](f *OffsetFetcher[T], start int) *pageloader.Loader[T, *OffsetCursor] {
	cursor := NewOffsetCursor(start)

	return pageloader.NewLoader[T, *OffsetCursor](f, cursor, cursor).
		WithInitialState(pageloader.NewState[T](nil, pageloader.HasMore{}, previousAt(cursor)))
}

func previousAt(c *OffsetCursor) pageloader.PageState {
	if c.IsEmpty() {
		return pageloader.Completed{}
	}

	return pageloader.HasMore{}
}

// Fetch - implements pageloader.Fetcher.
func (f *OffsetFetcher[T]) Fetch(
	ctx context.Context,
	req pageloader.LoadRequest[T, *OffsetCursor],
) (pageloader.LoadResult[T, *OffsetCursor], error) {
	var res pageloader.LoadResult[T, *OffsetCursor]

	switch req.Direction {
	case pageloader.DirectionNext:
		offset := req.Info.Offset()

		rows, err := f.read(ctx, offset, f.pageSize+1)
		if err != nil {
			return res, fmt.Errorf("cannot fetch %s page: %w", req.Direction, err)
		}

		hasMore := len(rows) > f.pageSize
		if hasMore {
			rows = rows[:f.pageSize]
		}

		res.Elements = rows
		res.NextPageHasMore = pageloader.Replace(hasMore)
		res.NextPageInfo = pageloader.Replace(NewOffsetCursor(offset + len(rows)))
	case pageloader.DirectionPrevious:
		end := req.Info.Offset()
		begin := max(end-f.pageSize, 0)

		var rows []T
		if end > begin {
			var err error
			if rows, err = f.read(ctx, begin, end-begin); err != nil {
				return res, fmt.Errorf("cannot fetch %s page: %w", req.Direction, err)
			}
		}

		res.Elements = rows
		res.PreviousPageHasMore = pageloader.Replace(begin > 0)
		res.PreviousPageInfo = pageloader.Replace(NewOffsetCursor(begin))
	default:
		return res, fmt.Errorf("unknown direction '%s'", req.Direction)
	}

	return res, nil
}

func (f *OffsetFetcher[T]) read(ctx context.Context, offset, limit int) ([]T, error) {
	var rows []T

	err := f.orderings.Apply(f.query(ctx)).Offset(offset).Limit(limit).Find(&rows).Error
	if err != nil {
		return nil, err
	}

	return rows, nil
}
