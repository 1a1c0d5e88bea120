package hxtable

// SortState is the active single-column sort. The zero value means unsorted.
type SortState struct {
	// Column is the ID of the sorted column (see Column.ColumnID).
	Column string

	// Desc sorts descending when true.
	Desc bool
}

// Equal reports structural equality: both the column and the direction must
// match. Committing logic uses this to suppress no-op updates.
func (s SortState) Equal(o SortState) bool {
	return s.Column == o.Column && s.Desc == o.Desc
}

// IsZero reports whether no sort is active.
func (s SortState) IsZero() bool {
	return s.Column == "" && !s.Desc
}

// ToggleSort returns the sort state after activating columnID.
//
// Activating the column that is already sorted flips the direction;
// activating any other column sorts it ascending.
func ToggleSort(current SortState, columnID string) SortState {
	if current.Column == columnID {
		return SortState{Column: columnID, Desc: !current.Desc}
	}
	return SortState{Column: columnID}
}
