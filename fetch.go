package hxtable

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// FetchResult is the outcome of one fetch invocation: the rows for the
// requested page plus the total logical row count across all pages.
// len(Rows) need not equal the page size (e.g. the last page).
type FetchResult[T any] struct {
	Rows     []T
	RowCount int
}

// FetchFunc retrieves one page of data for the given state. It must be an
// idempotent read: safe to call repeatedly with identical arguments. Errors
// are reported by return value; they surface in the coordinator's snapshot
// and are never rethrown elsewhere.
type FetchFunc[T any] func(ctx context.Context, page PageState, sort SortState) (FetchResult[T], error)

// QueryKey identifies the logical dataset behind a coordinator. Two states
// with different query keys never share a cached result.
type QueryKey string

// KeyOf builds a QueryKey from a sequence of parts (strings, numbers, ...).
//
//	hxtable.KeyOf("people", orgID)
func KeyOf(parts ...any) QueryKey {
	strs := make([]string, len(parts))
	for i, p := range parts {
		strs[i] = fmt.Sprint(p)
	}
	return QueryKey(strings.Join(strs, "/"))
}

// Snapshot is the coordinator's consumer-facing status surface. Exactly one
// of the following holds: Loading, Err != nil, Empty(), or data is present.
type Snapshot[T any] struct {
	Rows     []T
	RowCount int

	// Loading is true from issuance until resolution of the current (latest
	// issued) request. A superseded request resolving does not clear it.
	Loading bool

	// Err is the failure of the current request, nil otherwise. There is no
	// automatic retry; a state change or Invalidate re-triggers the fetch.
	Err error
}

// Empty reports a settled, successful fetch that found no rows. It is
// distinct from Loading and from Err and is typically rendered as an
// empty-state message.
func (s Snapshot[T]) Empty() bool {
	return !s.Loading && s.Err == nil && s.RowCount == 0 && len(s.Rows) == 0
}

// Ready reports a settled, successful fetch with at least one row.
func (s Snapshot[T]) Ready() bool {
	return !s.Loading && s.Err == nil && !s.Empty()
}

// fetchKey is the full identity of one logical fetch.
type fetchKey struct {
	query QueryKey
	page  PageState
	sort  SortState
}

// inflight tracks the currently issued request. Its channel closes when the
// request either resolves or is superseded by a newer one.
type inflight struct {
	gen uint64
	ch  chan struct{}
}

// Coordinator binds (QueryKey, PageState, SortState) to at most one current
// asynchronous fetch.
//
// Requests are generation-numbered; when the state tuple changes a new
// generation is issued and any previous in-flight request is superseded. A
// superseded request's late result is compared against the current
// generation under the lock and silently discarded, so the snapshot always
// ends up reflecting the latest requested state (last request wins)
// regardless of completion order.
//
// Results for the current tuple are reused until the tuple changes or
// Invalidate forces a refetch, so repeated rendering does not re-issue
// identical fetches.
type Coordinator[T any] struct {
	mu    sync.Mutex
	fetch FetchFunc[T]

	key     fetchKey
	gen     uint64
	settled bool // a result (or error) for key is committed
	snap    Snapshot[T]
	fl      *inflight

	onChange func(Snapshot[T])
}

// NewCoordinator creates a coordinator around the given fetch function.
// Panics if fetch is nil.
func NewCoordinator[T any](fetch FetchFunc[T]) *Coordinator[T] {
	if fetch == nil {
		panic("hxtable: fetch function must not be nil")
	}
	return &Coordinator[T]{fetch: fetch}
}

// OnChange registers a notifier invoked (without the lock held) each time a
// result or error is committed. Discarded stale results do not notify.
func (c *Coordinator[T]) OnChange(fn func(Snapshot[T])) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onChange = fn
}

// Snapshot returns the current status without triggering a fetch.
func (c *Coordinator[T]) Snapshot() Snapshot[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snap
}

// RowCount returns the last committed total row count, or RowCountUnknown
// when no fetch has completed for the current tuple yet. An error state also
// reports RowCountUnknown: the count is unavailable, not zero.
func (c *Coordinator[T]) RowCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.settled || c.snap.Err != nil {
		return RowCountUnknown
	}
	return c.snap.RowCount
}

// Load ensures a fetch is in flight (or already settled) for the given state
// tuple and returns the current snapshot immediately. When the tuple matches
// the current one and a result is settled or in flight, no new fetch is
// issued. Completion is observable via OnChange or Wait.
func (c *Coordinator[T]) Load(ctx context.Context, query QueryKey, page PageState, sort SortState) Snapshot[T] {
	c.mu.Lock()
	gen, issued := c.issueLocked(query, page, sort)
	snap := c.snap
	c.mu.Unlock()

	if issued {
		go func() {
			res, err := c.runFetch(ctx, page, sort)
			c.commit(gen, res, err)
		}()
	}
	return snap
}

// Resolve is the blocking form of Load: it performs the fetch for the given
// tuple on the calling goroutine and returns the settled snapshot. If the
// tuple was superseded while fetching, the snapshot of the newer request is
// returned instead (which may still be loading).
func (c *Coordinator[T]) Resolve(ctx context.Context, query QueryKey, page PageState, sort SortState) Snapshot[T] {
	c.mu.Lock()
	gen, issued := c.issueLocked(query, page, sort)
	snap := c.snap
	c.mu.Unlock()

	if !issued {
		return snap
	}

	res, err := c.runFetch(ctx, page, sort)
	return c.commit(gen, res, err)
}

// Invalidate marks the current result stale without changing state. The next
// Load or Resolve for the same tuple re-issues the fetch. Use when an
// external side effect changed the underlying dataset.
func (c *Coordinator[T]) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.settled = false
}

// Wait blocks until the current request resolves (or ctx is done) and
// returns the snapshot. If nothing is loading it returns immediately.
func (c *Coordinator[T]) Wait(ctx context.Context) Snapshot[T] {
	for {
		c.mu.Lock()
		if !c.snap.Loading || c.fl == nil {
			snap := c.snap
			c.mu.Unlock()
			return snap
		}
		ch := c.fl.ch
		c.mu.Unlock()

		select {
		case <-ch:
		case <-ctx.Done():
			return c.Snapshot()
		}
	}
}

// issueLocked decides whether the tuple requires a new fetch and, if so,
// starts a new generation. The caller must hold c.mu.
func (c *Coordinator[T]) issueLocked(query QueryKey, page PageState, sort SortState) (gen uint64, issued bool) {
	k := fetchKey{query: query, page: page, sort: sort}
	if k == c.key && (c.settled || c.snap.Loading) {
		return 0, false
	}

	c.key = k
	c.gen++
	c.settled = false
	c.snap.Loading = true
	c.snap.Err = nil

	// Supersede any in-flight request; its waiters re-check and move to the
	// new generation's channel.
	if c.fl != nil {
		close(c.fl.ch)
	}
	c.fl = &inflight{gen: c.gen, ch: make(chan struct{})}
	return c.gen, true
}

// runFetch invokes the fetch function, converting a panic into an error so a
// misbehaving fetcher degrades to a visible error state instead of taking
// down the caller.
func (c *Coordinator[T]) runFetch(ctx context.Context, page PageState, sort SortState) (res FetchResult[T], err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("hxtable: fetch panicked: %v", r)
		}
	}()
	return c.fetch(ctx, page, sort)
}

// commit applies a completed fetch if its generation is still current;
// otherwise the result is discarded. Returns the snapshot after the
// decision.
func (c *Coordinator[T]) commit(gen uint64, res FetchResult[T], err error) Snapshot[T] {
	c.mu.Lock()
	if gen != c.gen {
		// Stale: a newer request owns the state now.
		snap := c.snap
		c.mu.Unlock()
		return snap
	}

	if err != nil {
		c.snap = Snapshot[T]{Err: err}
	} else {
		c.snap = Snapshot[T]{Rows: res.Rows, RowCount: res.RowCount}
	}
	c.settled = true
	if c.fl != nil && c.fl.gen == gen {
		close(c.fl.ch)
		c.fl = nil
	}
	snap := c.snap
	notify := c.onChange
	c.mu.Unlock()

	if notify != nil {
		notify(snap)
	}
	return snap
}
