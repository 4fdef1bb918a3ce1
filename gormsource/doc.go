// Package gormsource provides pageloader fetchers that page a GORM query.
//
// Overview
//
// Two strategies are implemented:
//   - KeysetFetcher: keyset pagination relative to the boundary elements of the
//     loaded collection. Forward reads filter strictly after the last element,
//     backward reads strictly before the first one using the reversed ordering.
//     This scales well on large datasets and requires a deterministic ordering
//     with at least one unique column.
//   - OffsetFetcher: a LIMIT/OFFSET window growing in both directions, for
//     datasets without a usable unique ordering.
//
// Key concepts
//   - Orderings: multi-column ordering with explicit directions.
//   - Cursor: keyset boundary used as the loader's per-direction Info. It can be
//     serialized with Cursor.String and restored with DecodeCursor.
//   - Getters: maps model fields to values for building boundary cursors.
package gormsource
