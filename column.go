package hxtable

import "strings"

// Column describes one table column: a display title, an optional stable ID,
// a cell accessor, and a sortability flag.
//
// Columns carry no rendering detail beyond the cell text; layout is decided
// by the composed view (list or cards).
type Column[T any] struct {
	// ID identifies the column in sort state and persisted URLs. When empty,
	// an ID is derived from Title (lowercased, spaces to dashes). A column
	// with neither ID nor Title cannot be sorted.
	ID string

	// Title is the display label for headers and card field names.
	Title string

	// Cell extracts the display text for a row.
	Cell func(row T) string

	// NoSort disables sorting for this column. Columns are sortable by
	// default as long as they have a resolvable ID.
	NoSort bool
}

// ColumnID returns the explicit ID, or one derived from the title.
func (c Column[T]) ColumnID() string {
	if c.ID != "" {
		return c.ID
	}
	return deriveColumnID(c.Title)
}

// Sortable reports whether this column may be used as a sort target.
func (c Column[T]) Sortable() bool {
	return !c.NoSort && c.ColumnID() != ""
}

// deriveColumnID turns a display title into a stable identifier:
// "Created At" -> "created-at". Characters other than letters, digits,
// dashes, and underscores are dropped.
func deriveColumnID(title string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(title)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			sb.WriteRune(r)
		case r == ' ':
			sb.WriteRune('-')
		}
	}
	return sb.String()
}

// SortableColumnIDs returns the IDs of the columns eligible as sort targets,
// in declaration order.
func SortableColumnIDs[T any](columns []Column[T]) []string {
	var ids []string
	for _, c := range columns {
		if c.Sortable() {
			ids = append(ids, c.ColumnID())
		}
	}
	return ids
}

func isSortableColumn[T any](columns []Column[T], id string) bool {
	if id == "" {
		return false
	}
	for _, c := range columns {
		if c.Sortable() && c.ColumnID() == id {
			return true
		}
	}
	return false
}
