package hxtable

import (
	"context"
	"fmt"
	"html"
	"io"

	"github.com/a-h/templ"
)

// fragment renders the full table fragment: the wrapper div, the view for
// the snapshot's status (rows, empty, error, loading), and the paginator
// controls. The wrapper carries the table's DOM id so every wired request
// can target and replace it as a unit.
func (t *Table[T]) fragment(page PageState, sort SortState, snap Snapshot[T]) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		fmt.Fprintf(w, `<div id="%s" class="hxtable hxtable-%s">`, html.EscapeString(t.domID()), t.view)

		switch {
		case snap.Err != nil:
			fmt.Fprintf(w, `<div class="hxtable-error">Failed to load data. %s</div>`, t.refreshButton(page, sort))
		case snap.Loading:
			io.WriteString(w, `<div class="hxtable-loading">Loading&hellip;</div>`)
		case snap.Empty():
			fmt.Fprintf(w, `<div class="hxtable-empty">%s</div>`, html.EscapeString(t.cfg.EmptyMessage))
		case t.view == ViewCards:
			t.writeCards(w, page, sort, snap)
		default:
			t.writeList(w, page, sort, snap)
		}

		if snap.Err == nil && !snap.Loading {
			t.writePaginator(w, page, sort, snap)
		}

		io.WriteString(w, `</div>`)
		return nil
	})
}

// writeList renders the tabular view: sortable column headers and one row
// per record.
func (t *Table[T]) writeList(w io.Writer, page PageState, sort SortState, snap Snapshot[T]) {
	io.WriteString(w, `<table class="hxtable-list"><thead><tr>`)
	for _, col := range t.columns {
		t.writeHeader(w, col, page, sort)
	}
	io.WriteString(w, `</tr></thead><tbody>`)

	for _, row := range snap.Rows {
		io.WriteString(w, `<tr>`)
		for _, col := range t.columns {
			fmt.Fprintf(w, `<td>%s</td>`, html.EscapeString(cellText(col, row)))
		}
		io.WriteString(w, `</tr>`)
	}
	io.WriteString(w, `</tbody></table>`)
}

// writeCards renders the card grid view. Sort links move into a toolbar
// since there are no column headers.
func (t *Table[T]) writeCards(w io.Writer, page PageState, sort SortState, snap Snapshot[T]) {
	io.WriteString(w, `<div class="hxtable-toolbar">`)
	for _, col := range t.columns {
		if !col.Sortable() {
			continue
		}
		t.writeSortLink(w, col, page, sort)
	}
	io.WriteString(w, `</div><div class="hxtable-cards">`)

	for _, row := range snap.Rows {
		io.WriteString(w, `<div class="hxtable-card">`)
		for _, col := range t.columns {
			fmt.Fprintf(w, `<div class="hxtable-field"><span class="hxtable-field-name">%s</span><span class="hxtable-field-value">%s</span></div>`,
				html.EscapeString(col.Title), html.EscapeString(cellText(col, row)))
		}
		io.WriteString(w, `</div>`)
	}
	io.WriteString(w, `</div>`)
}

func (t *Table[T]) writeHeader(w io.Writer, col Column[T], page PageState, sort SortState) {
	if !col.Sortable() {
		fmt.Fprintf(w, `<th>%s</th>`, html.EscapeString(col.Title))
		return
	}
	io.WriteString(w, `<th class="hxtable-sortable">`)
	t.writeSortLink(w, col, page, sort)
	io.WriteString(w, `</th>`)
}

// writeSortLink emits the hx-get link activating sort on col. The link
// carries the already-toggled target state, so the server commits exactly
// what the user saw advertised.
func (t *Table[T]) writeSortLink(w io.Writer, col Column[T], page PageState, sort SortState) {
	id := col.ColumnID()
	next := ToggleSort(sort, id)

	marker := ""
	if sort.Column == id {
		if sort.Desc {
			marker = ` <span class="hxtable-dir">&darr;</span>`
		} else {
			marker = ` <span class="hxtable-dir">&uarr;</span>`
		}
	}

	fmt.Fprintf(w, `<a href="#" %s>%s%s</a>`,
		t.wire("get", t.fragmentURL(page, next)),
		html.EscapeString(col.Title), marker)
}

// refreshButton emits the POST action that invalidates the current result
// and re-renders the unchanged state.
func (t *Table[T]) refreshButton(page PageState, sort SortState) string {
	u := t.prefix + "/refresh"
	if enc := t.codec.Encode(page, sort).Encode(); enc != "" {
		u += "?" + enc
	}
	return fmt.Sprintf(`<button type="button" class="hxtable-refresh" %s>Retry</button>`, t.wire("post", u))
}

// wire builds the HTMX attributes for a request that replaces this table's
// fragment.
func (t *Table[T]) wire(method, u string) string {
	return fmt.Sprintf(`hx-%s="%s" hx-target="#%s" hx-swap="%s"`,
		method, html.EscapeString(u), html.EscapeString(t.domID()), SwapOuter)
}

func cellText[T any](col Column[T], row T) string {
	if col.Cell == nil {
		return ""
	}
	return col.Cell(row)
}
