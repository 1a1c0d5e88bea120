package hxtable

import "sync"

// PaginationUpdater computes the next page state from the current one.
// Literal moves ignore the argument; relative moves derive from it.
type PaginationUpdater func(current PageState) PageState

// GoToPage returns an updater selecting an absolute page index.
func GoToPage(index int) PaginationUpdater {
	return func(p PageState) PageState {
		p.Index = index
		return p
	}
}

// NextPage returns an updater advancing one page. The controller clamps the
// result against the known row count.
func NextPage() PaginationUpdater {
	return func(p PageState) PageState {
		p.Index++
		return p
	}
}

// PrevPage returns an updater moving back one page, stopping at the first.
func PrevPage() PaginationUpdater {
	return func(p PageState) PageState {
		p.Index--
		return p
	}
}

// FirstPage returns an updater selecting the first page.
func FirstPage() PaginationUpdater {
	return GoToPage(0)
}

// WithPageSize returns an updater changing the page size while preserving
// the absolute row offset: the first row visible before the resize is still
// on the resulting page. Clamping alone would keep the index, not the row.
func WithPageSize(size int) PaginationUpdater {
	return func(p PageState) PageState {
		if size > 0 {
			p.Index = p.Index * p.Size / size
		}
		p.Size = size
		return p
	}
}

// Controller is the single authority translating requested table state into
// committed state. Every request is validated and clamped (see
// ValidatePageState and ToggleSort) before it is committed, and a request
// that resolves to the current state is dropped without side effects - no
// callback fires, no fetch or history entry is triggered.
//
// A Controller runs in one of two modes:
//   - self-owned (default): the controller stores the committed state.
//   - controlled: an external owner stores the state. Commits are delivered
//     through the OnPaginationChange / OnSortChange callbacks and the owner
//     pushes the accepted state back via SetState. Exactly one of the two
//     mechanisms applies per commit, never both.
//
// Both modes clamp identically; the mode only decides who stores the result.
type Controller struct {
	mu sync.Mutex

	cfg      Config
	page     PageState
	sort     SortState
	rowCount int

	controlled   bool
	onPagination func(PageState)
	onSort       func(SortState)
}

// ControllerOption configures a Controller.
type ControllerOption func(*Controller)

// WithExternalState puts the controller in controlled mode: committed states
// are delivered to the given callbacks instead of being stored. Either
// callback may be nil if the owner does not care about that half of the
// state. The owner must feed accepted state back with SetState.
func WithExternalState(onPagination func(PageState), onSort func(SortState)) ControllerOption {
	return func(c *Controller) {
		c.controlled = true
		c.onPagination = onPagination
		c.onSort = onSort
	}
}

// WithInitialState seeds the controller's current state. The state is
// validated the same way a request would be.
func WithInitialState(page PageState, sort SortState) ControllerOption {
	return func(c *Controller) {
		c.page = ValidatePageState(page, c.cfg.PageSizeOptions, c.rowCount)
		c.sort = sort
	}
}

// NewController creates a controller for the given configuration.
// Panics if the configuration is invalid.
func NewController(cfg Config, opts ...ControllerOption) *Controller {
	cfg = cfg.normalize()
	c := &Controller{
		cfg:      cfg,
		page:     cfg.DefaultPage(),
		sort:     cfg.DefaultSort,
		rowCount: RowCountUnknown,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Page returns the current committed page state.
func (c *Controller) Page() PageState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.page
}

// Sort returns the current committed sort state.
func (c *Controller) Sort() SortState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sort
}

// State returns both halves of the committed state.
func (c *Controller) State() (PageState, SortState) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.page, c.sort
}

// SetRowCount records the total row count reported by the latest fetch.
// Subsequent requests clamp against it. If the current page index has become
// unreachable (rows were removed), the state is re-clamped and committed
// through the usual path.
func (c *Controller) SetRowCount(rowCount int) {
	c.mu.Lock()
	c.rowCount = rowCount
	page := ValidatePageState(c.page, c.cfg.PageSizeOptions, c.rowCount)
	c.mu.Unlock()

	if rowCount != RowCountUnknown {
		c.commitPage(page)
	}
}

// RowCount returns the last known total row count, or RowCountUnknown.
func (c *Controller) RowCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rowCount
}

// SetState mirrors externally-owned state into the controller. Used in
// controlled mode when the owner accepts a commit, and by URL-synced tables
// that re-derive state from the request. The state passes through the same
// validation as any request.
func (c *Controller) SetState(page PageState, sort SortState) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.page = ValidatePageState(page, c.cfg.PageSizeOptions, c.rowCount)
	c.sort = sort
}

// RequestPagination resolves the updater's result against the current page
// state and commits it. No-op requests are suppressed.
func (c *Controller) RequestPagination(updater PaginationUpdater) {
	c.mu.Lock()
	requested := updater(c.page)
	resolved := ValidatePageState(requested, c.cfg.PageSizeOptions, c.rowCount)
	c.mu.Unlock()

	c.commitPage(resolved)
}

// RequestPageSize changes the page size, preserving the absolute row offset
// (see WithPageSize).
func (c *Controller) RequestPageSize(size int) {
	c.RequestPagination(WithPageSize(size))
}

// Next advances one page, clamped to the last known page.
func (c *Controller) Next() { c.RequestPagination(NextPage()) }

// Prev moves back one page, stopping at the first.
func (c *Controller) Prev() { c.RequestPagination(PrevPage()) }

// First moves to the first page.
func (c *Controller) First() { c.RequestPagination(FirstPage()) }

// Last moves to the last known page. When the row count is unknown, no
// request is made.
func (c *Controller) Last() {
	c.mu.Lock()
	rowCount := c.rowCount
	c.mu.Unlock()
	if rowCount == RowCountUnknown {
		return
	}
	c.RequestPagination(func(p PageState) PageState {
		p.Index = PageCount(rowCount, p.Size) - 1
		return p
	})
}

// RequestSort activates sorting on the given column, toggling the direction
// when the column is already the active sort. No-op requests are suppressed.
func (c *Controller) RequestSort(columnID string) {
	c.mu.Lock()
	resolved := ToggleSort(c.sort, columnID)
	c.mu.Unlock()

	c.commitSort(resolved)
}

// commitPage applies a resolved page state: stored in self-owned mode,
// forwarded to the owner in controlled mode. Equal states are dropped.
func (c *Controller) commitPage(resolved PageState) {
	c.mu.Lock()
	if resolved.Equal(c.page) {
		c.mu.Unlock()
		return
	}
	controlled := c.controlled
	if !controlled {
		c.page = resolved
	}
	notify := c.onPagination
	c.mu.Unlock()

	if controlled && notify != nil {
		notify(resolved)
	}
}

func (c *Controller) commitSort(resolved SortState) {
	c.mu.Lock()
	if resolved.Equal(c.sort) {
		c.mu.Unlock()
		return
	}
	controlled := c.controlled
	if !controlled {
		c.sort = resolved
	}
	notify := c.onSort
	c.mu.Unlock()

	if controlled && notify != nil {
		notify(resolved)
	}
}
