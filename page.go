package hxtable

// RowCountUnknown marks the total row count as not yet known (no fetch has
// completed). Validation then applies only the lower bound of zero to the
// page index.
const RowCountUnknown = -1

// PageState is the current page index and page size.
//
// Index is zero-based. Size must belong to the configured page size options;
// ValidatePageState coerces it there before the state is committed.
type PageState struct {
	Index int
	Size  int
}

// Offset returns the absolute index of the first row on this page.
func (p PageState) Offset() int {
	return p.Index * p.Size
}

// Equal reports field-wise equality. Committing logic uses this to suppress
// no-op updates.
func (p PageState) Equal(o PageState) bool {
	return p.Index == o.Index && p.Size == o.Size
}

// PageCount returns the number of pages needed for rowCount rows at the
// given size. A row count of zero still occupies one (empty) page.
func PageCount(rowCount, size int) int {
	if rowCount <= 0 || size <= 0 {
		return 1
	}
	return (rowCount + size - 1) / size
}

// ValidatePageState resolves a requested page state to the nearest valid one.
//
// The requested size is coerced to allowedSizes[0] when it is not a member of
// allowedSizes. The index is clamped to [0, PageCount-1] for the resolved
// size; when rowCount is RowCountUnknown only the lower bound applies.
//
// Validation is idempotent: applying it to an already-valid state returns
// that state unchanged.
func ValidatePageState(requested PageState, allowedSizes []int, rowCount int) PageState {
	size := requested.Size
	if !containsSize(allowedSizes, size) {
		size = allowedSizes[0]
	}

	index := requested.Index
	if index < 0 {
		index = 0
	}
	if rowCount != RowCountUnknown {
		if max := PageCount(rowCount, size) - 1; index > max {
			index = max
		}
	}

	return PageState{Index: index, Size: size}
}
