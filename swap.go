package hxtable

// SwapMode defines how a re-rendered table fragment replaces its target in
// the DOM. Each mode corresponds to an HTMX hx-swap value.
//
// The default used by generated paginator and sort links is SwapOuter: the
// whole table wrapper (including its id) is replaced, so subsequent requests
// keep targeting the same element.
type SwapMode string

const (
	// SwapOuter replaces the entire target element (outerHTML). Default.
	SwapOuter SwapMode = "outerHTML"

	// SwapInner replaces only the target's contents (innerHTML). Use when a
	// surrounding shell (filters, toolbars) must survive the swap.
	SwapInner SwapMode = "innerHTML"

	// SwapBeforeEnd appends the response inside the target. Used by
	// load-more style composition rather than classic paging.
	SwapBeforeEnd SwapMode = "beforeend"

	// SwapNone discards the response. Useful for fire-and-forget actions
	// whose effect arrives via a later refresh.
	SwapNone SwapMode = "none"
)
