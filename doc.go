// Package hxtable provides composable, server-rendered data tables for Go
// web applications using Templ templates and HTMX.
//
// hxtable separates table state coordination (pagination and single-column
// sorting) from rendering. A caller supplies a fetch function and column
// metadata; hxtable validates and clamps requested state, issues exactly one
// logical fetch per state combination, and renders the result as either a
// tabular list or a card grid with paginator controls.
//
// # Core Concepts
//
// State is two small value types:
//   - PageState: the current page index and page size
//   - SortState: the active sort column and direction
//
// Both are validated before being committed. Page sizes are coerced into a
// configured set of allowed options, page indexes are clamped against the
// known row count, and a request that resolves to the current state is a
// no-op (no callback fires, no fetch is issued).
//
// # Fetching
//
// Data access is a single function:
//
//	func(ctx context.Context, page hxtable.PageState, sort hxtable.SortState) (hxtable.FetchResult[T], error)
//
// The Coordinator keys each fetch on (query key, page, sort). When the tuple
// changes, the previous in-flight fetch is superseded and its late result is
// discarded - the snapshot always reflects the latest requested state.
// SliceFetcher adapts an in-memory slice for demos and tests.
//
// # State Persistence
//
// Two interchangeable strategies:
//   - Self-owned: the table holds its own state between requests.
//   - URL sync: state round-trips through query parameters (pageIndex,
//     pageSize, sortId, sortDesc). Fields equal to their defaults are
//     omitted, keeping URLs minimal, and malformed values decode to
//     defaults rather than erroring.
//
// For opaque persistence (hidden form fields, external stores), lib/statetoken
// packs the same fields into an HMAC-signed or AES-GCM-encrypted token.
//
// # Registration and Routing
//
// Tables are registered explicitly with a Registry:
//
//	reg := hxtable.NewRegistry()
//	reg.Add(people)
//	http.Handle("/_t/", reg.Handler())
//
// Each table receives a unique URL prefix based on its name and source
// location hash. Paginator controls and sortable column headers emit hx-get
// requests against that prefix; the handler re-renders the table fragment
// for the requested state. A POST refresh action forces a refetch of the
// current state without changing it.
//
// # Design Rationale
//
// The system favors explicitness over magic:
//   - Explicit registration (no init() side effects)
//   - Explicit fetch contract (one function, idempotent reads)
//   - Explicit state ownership (self-owned or caller-owned, never both)
//   - Fail-fast configuration (invalid page size options panic at setup)
package hxtable
