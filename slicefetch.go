package hxtable

import (
	"context"
	"sort"
)

// Comparator orders two rows for the given sort column. Return a negative
// number when a sorts before b, zero when equal, positive otherwise.
// Descending order is applied by the fetcher; comparators always express
// ascending order.
type Comparator[T any] func(a, b T, columnID string) int

// SliceFetcher adapts an in-memory slice to the fetch contract: it sorts a
// copy with the comparator, slices out the requested page, and reports the
// total row count. Handy for demos, tests, and small datasets that fit in
// memory.
//
// The source slice is read on every call, so mutations between calls are
// picked up by the next fetch (pair with Coordinator.Invalidate).
func SliceFetcher[T any](rows *[]T, cmp Comparator[T]) FetchFunc[T] {
	return func(ctx context.Context, page PageState, sortState SortState) (FetchResult[T], error) {
		if err := ctx.Err(); err != nil {
			return FetchResult[T]{}, err
		}

		src := *rows
		ordered := src
		if sortState.Column != "" && cmp != nil {
			ordered = make([]T, len(src))
			copy(ordered, src)
			sort.SliceStable(ordered, func(i, j int) bool {
				c := cmp(ordered[i], ordered[j], sortState.Column)
				if sortState.Desc {
					return c > 0
				}
				return c < 0
			})
		}

		start := page.Offset()
		if start > len(ordered) {
			start = len(ordered)
		}
		end := start + page.Size
		if end > len(ordered) {
			end = len(ordered)
		}

		return FetchResult[T]{Rows: ordered[start:end], RowCount: len(src)}, nil
	}
}

// StaticFetcher is SliceFetcher over a fixed snapshot of rows, without
// sorting. Useful in tests that only exercise paging.
func StaticFetcher[T any](rows []T) FetchFunc[T] {
	fixed := rows
	return SliceFetcher(&fixed, nil)
}
