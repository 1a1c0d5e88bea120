package hxtable

import (
	"fmt"
	"io"
)

// writePaginator renders the navigation controls for the current state:
// first/prev/next/last moves, the page indicator, and the page size
// selector. Every control is an hx-get link targeting the state it would
// commit; controls that would be no-ops render disabled.
func (t *Table[T]) writePaginator(w io.Writer, page PageState, sort SortState, snap Snapshot[T]) {
	pages := PageCount(snap.RowCount, page.Size)
	last := pages - 1

	io.WriteString(w, `<nav class="hxtable-paginator">`)

	t.writeMove(w, "&laquo;", PageState{Index: 0, Size: page.Size}, sort, page.Index > 0)
	t.writeMove(w, "&lsaquo;", PageState{Index: page.Index - 1, Size: page.Size}, sort, page.Index > 0)

	fmt.Fprintf(w, `<span class="hxtable-page">Page %d of %d</span>`, page.Index+1, pages)

	t.writeMove(w, "&rsaquo;", PageState{Index: page.Index + 1, Size: page.Size}, sort, page.Index < last)
	t.writeMove(w, "&raquo;", PageState{Index: last, Size: page.Size}, sort, page.Index < last)

	io.WriteString(w, `<span class="hxtable-sizes">`)
	for _, size := range t.cfg.PageSizeOptions {
		if size == page.Size {
			fmt.Fprintf(w, `<span class="hxtable-size hxtable-size-active">%d</span>`, size)
			continue
		}
		// Preserve the absolute row offset across the resize so the first
		// visible row stays in view.
		target := WithPageSize(size)(page)
		fmt.Fprintf(w, `<a href="#" class="hxtable-size" %s>%d</a>`,
			t.wire("get", t.fragmentURL(target, sort)), size)
	}
	io.WriteString(w, `</span>`)

	io.WriteString(w, `</nav>`)
}

// writeMove emits one navigation control. label is trusted markup (entity
// arrows), never user input.
func (t *Table[T]) writeMove(w io.Writer, label string, target PageState, sort SortState, enabled bool) {
	if !enabled {
		fmt.Fprintf(w, `<span class="hxtable-move hxtable-move-disabled">%s</span>`, label)
		return
	}
	fmt.Fprintf(w, `<a href="#" class="hxtable-move" %s>%s</a>`,
		t.wire("get", t.fragmentURL(target, sort)), label)
}
