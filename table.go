package hxtable

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/url"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/a-h/templ"
)

// ViewMode selects how fetched rows are presented.
type ViewMode string

const (
	// ViewList renders rows as a tabular list with sortable headers.
	ViewList ViewMode = "list"

	// ViewCards renders rows as a card grid; sort links move into a toolbar.
	ViewCards ViewMode = "cards"
)

// Table is a registered, server-rendered data table.
//
// A Table owns a Controller (state), a Coordinator (fetching), and a
// ParamCodec (persistence), and renders their combined output as an HTMX
// fragment. Paginator controls and sortable headers emit hx-get requests
// back to the table's own prefix carrying the target state as query
// parameters; the handler validates, fetches, and re-renders.
//
// By default a table is self-owned: it keeps its committed state between
// requests and the browser URL is untouched. SyncURL switches to URL
// persistence: state is re-derived from the request on every render and the
// canonical encoding is pushed into browser history.
type Table[T any] struct {
	name    string
	prefix  string
	cfg     Config
	columns []Column[T]

	codec ParamCodec
	ctrl  *Controller
	coord *Coordinator[T]
	query QueryKey

	view     ViewMode
	syncURL  bool
	pushPath string
}

// New creates a table with the given name, configuration, fetch function,
// and columns. Panics on invalid configuration or a nil fetch function.
//
// The table's URL prefix is derived from the name and source location
// (file:line where New is called), ensuring different instances get unique
// routes even with the same name.
func New[T any](name string, cfg Config, fetch FetchFunc[T], columns ...Column[T]) *Table[T] {
	cfg = cfg.normalize()
	return &Table[T]{
		name:    name,
		prefix:  "/_t/" + name + "-" + tableHash(name, 1),
		cfg:     cfg,
		columns: columns,
		codec:   NewParamCodec(cfg),
		ctrl:    NewController(cfg),
		coord:   NewCoordinator(fetch),
		query:   QueryKey(name),
		view:    ViewList,
	}
}

// Cards switches the table to the card grid view.
func (t *Table[T]) Cards() *Table[T] {
	t.view = ViewCards
	return t
}

// SyncURL switches the table to URL persistence: state is decoded from
// request query parameters on every render and the canonical encoding is
// pushed into browser history. path is the page URL state is pushed onto
// (e.g. "/people"); empty means a relative "?query" push.
func (t *Table[T]) SyncURL(path string) *Table[T] {
	t.syncURL = true
	t.pushPath = path
	return t
}

// Query sets the query key identifying the logical dataset. Defaults to the
// table name. Change it when the same table serves different datasets (per
// tenant, per filter) so results are never shared across them.
func (t *Table[T]) Query(parts ...any) *Table[T] {
	t.query = KeyOf(parts...)
	return t
}

// Name returns the table's name.
func (t *Table[T]) Name() string {
	return t.name
}

// Controller exposes the table's state controller for in-process callers
// (tests, non-HTTP drivers).
func (t *Table[T]) Controller() *Controller {
	return t.ctrl
}

// Coordinator exposes the table's fetch coordinator, mainly for Invalidate
// after external mutations.
func (t *Table[T]) Coordinator() *Coordinator[T] {
	return t.coord
}

// HXPrefix returns the unique URL prefix this table is mounted under.
func (t *Table[T]) HXPrefix() string {
	return t.prefix
}

// HXServeHTTP routes fragment requests for this table: GET renders the
// requested state, POST refresh invalidates and re-renders the current one.
func (t *Table[T]) HXServeHTTP(w http.ResponseWriter, r *http.Request) {
	action := strings.Trim(strings.TrimPrefix(r.URL.Path, t.prefix), "/")

	switch {
	case action == "" && r.Method == http.MethodGet:
		t.handleRender(w, r)
	case action == "refresh" && r.Method == http.MethodPost:
		t.handleRefresh(w, r)
	case action == "" || action == "refresh":
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	default:
		http.Error(w, "Not found", http.StatusNotFound)
	}
}

// Component returns the table fragment for embedding in a page. State comes
// from the request when present (always, for URL-synced tables), otherwise
// from the table's own state.
func (t *Table[T]) Component(r *http.Request) templ.Component {
	page, sort := t.resolveRequestState(r)
	snap := t.coord.Resolve(r.Context(), t.query, page, sort)
	page, sort, snap = t.reclamp(r, page, sort, snap)
	return t.fragment(page, sort, snap)
}

func (t *Table[T]) handleRender(w http.ResponseWriter, r *http.Request) {
	page, sort := t.resolveRequestState(r)
	snap := t.coord.Resolve(r.Context(), t.query, page, sort)
	page, sort, snap = t.reclamp(r, page, sort, snap)

	if t.syncURL && IsHTMX(r) {
		PushURL(w, t.pushURL(page, sort))
	}
	if err := Render(w, r, t.fragment(page, sort, snap)); err != nil {
		http.Error(w, "Internal error", http.StatusInternalServerError)
	}
}

func (t *Table[T]) handleRefresh(w http.ResponseWriter, r *http.Request) {
	t.coord.Invalidate()
	t.handleRender(w, r)
}

// resolveRequestState derives the state to render from the request and
// commits it. Requests without state parameters on a self-owned table keep
// the current state (initial embeds, refresh actions).
func (t *Table[T]) resolveRequestState(r *http.Request) (PageState, SortState) {
	q := r.URL.Query()
	if t.syncURL || hasStateParams(q) {
		page, sort := t.codec.Decode(q)
		// A persisted sort column that no longer resolves to a sortable
		// column falls back to the default, like any other invalid field.
		if !sort.Equal(t.cfg.DefaultSort) && !isSortableColumn(t.columns, sort.Column) {
			sort = t.cfg.DefaultSort
		}
		t.ctrl.SetState(page, sort)
	}
	return t.ctrl.State()
}

// reclamp feeds the fetched row count back into the controller and, when the
// requested page turned out to be past the end of the dataset, re-resolves
// on the clamped page.
func (t *Table[T]) reclamp(r *http.Request, page PageState, sort SortState, snap Snapshot[T]) (PageState, SortState, Snapshot[T]) {
	if snap.Loading || snap.Err != nil {
		return page, sort, snap
	}
	t.ctrl.SetRowCount(snap.RowCount)
	if clamped := t.ctrl.Page(); !clamped.Equal(page) {
		page = clamped
		snap = t.coord.Resolve(r.Context(), t.query, page, sort)
	}
	return page, sort, snap
}

// fragmentURL builds the hx-get URL targeting the given state.
func (t *Table[T]) fragmentURL(page PageState, sort SortState) string {
	v := t.codec.Encode(page, sort)
	u := t.prefix + "/"
	if enc := v.Encode(); enc != "" {
		u += "?" + enc
	}
	return u
}

// pushURL builds the history entry for URL-synced tables: the page path with
// the canonical state encoding merged over its existing query.
func (t *Table[T]) pushURL(page PageState, sort SortState) string {
	v := url.Values{}
	if t.pushPath != "" {
		if u, err := url.Parse(t.pushPath); err == nil {
			v = u.Query()
		}
	}
	t.codec.EncodeInto(v, page, sort)

	path := t.pushPath
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	if enc := v.Encode(); enc != "" {
		return path + "?" + enc
	}
	if path == "" {
		return "?"
	}
	return path
}

func (t *Table[T]) domID() string {
	return "hxtable-" + t.name
}

func hasStateParams(v url.Values) bool {
	for _, key := range []string{ParamPageIndex, ParamPageSize, ParamSortID, ParamSortDesc} {
		if v.Has(key) {
			return true
		}
	}
	return false
}

// tableHash generates a deterministic hash based on table name and source
// location, so two tables with the same name still mount on unique prefixes.
func tableHash(name string, skip int) string {
	_, file, line, ok := runtime.Caller(skip + 1)
	var input string
	if ok {
		// Base filename only, for portability across build environments.
		input = fmt.Sprintf("%s:%d:%s", filepath.Base(file), line, name)
	} else {
		input = name
	}
	h := sha256.Sum256([]byte(input))
	return hex.EncodeToString(h[:4])
}
