package hxtable

import "fmt"

// DefaultPageSizeOptions is the page size set used when none is configured.
var DefaultPageSizeOptions = []int{10, 20, 30, 40, 50}

// Config holds the table-wide pagination and sorting defaults.
//
// A zero Config is usable: normalize fills in DefaultPageSizeOptions and
// derives DefaultPageSize from the first option. Invalid configurations
// (an empty option set, non-positive sizes, a default size outside the set)
// are programming errors and panic at construction time rather than being
// papered over per request.
type Config struct {
	// PageSizeOptions is the set of selectable page sizes. Requested sizes
	// outside this set are coerced to the first option.
	PageSizeOptions []int

	// DefaultPageSize is the size used when none is persisted. Must be a
	// member of PageSizeOptions. Zero means PageSizeOptions[0].
	DefaultPageSize int

	// DefaultSort is the sort applied absent any explicit state. The zero
	// value means unsorted.
	DefaultSort SortState

	// EmptyMessage is shown when a fetch returns zero rows. Presentation
	// only; it never affects state resolution.
	EmptyMessage string
}

// DefaultConfig returns the standard configuration: page sizes 10-50,
// default size 10, no default sort.
func DefaultConfig() Config {
	return Config{
		PageSizeOptions: DefaultPageSizeOptions,
		DefaultPageSize: DefaultPageSizeOptions[0],
		EmptyMessage:    "No results.",
	}
}

// normalize fills zero-valued fields with defaults and validates the result.
// Panics on invalid configuration.
func (c Config) normalize() Config {
	if c.PageSizeOptions == nil {
		c.PageSizeOptions = DefaultPageSizeOptions
	}
	if len(c.PageSizeOptions) == 0 {
		panic("hxtable: PageSizeOptions must not be empty")
	}
	for _, s := range c.PageSizeOptions {
		if s <= 0 {
			panic(fmt.Sprintf("hxtable: invalid page size option %d: must be positive", s))
		}
	}
	if c.DefaultPageSize == 0 {
		c.DefaultPageSize = c.PageSizeOptions[0]
	}
	if !containsSize(c.PageSizeOptions, c.DefaultPageSize) {
		panic(fmt.Sprintf("hxtable: DefaultPageSize %d is not in PageSizeOptions %v", c.DefaultPageSize, c.PageSizeOptions))
	}
	if c.EmptyMessage == "" {
		c.EmptyMessage = "No results."
	}
	return c
}

// DefaultPage returns the page state used absent any persisted state.
func (c Config) DefaultPage() PageState {
	return PageState{Index: 0, Size: c.DefaultPageSize}
}

func containsSize(options []int, size int) bool {
	for _, s := range options {
		if s == size {
			return true
		}
	}
	return false
}
