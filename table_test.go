package hxtable

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func peopleRows(n int) []person {
	rows := make([]person, n)
	for i := range rows {
		rows[i] = person{
			Name:  fmt.Sprintf("user-%02d", i),
			Email: fmt.Sprintf("user-%02d@example.com", i),
		}
	}
	return rows
}

func newPeopleTable(rows *[]person) *Table[person] {
	return New("people", DefaultConfig(), SliceFetcher(rows, personComparator),
		Column[person]{Title: "Name", Cell: func(p person) string { return p.Name }},
		Column[person]{Title: "Email", Cell: func(p person) string { return p.Email }},
	)
}

func TestTableRendersFirstPage(t *testing.T) {
	rows := peopleRows(95)
	tbl := newPeopleTable(&rows)

	res := TestGet(tbl, nil)

	if !res.IsOK() {
		t.Fatalf("status = %d", res.StatusCode)
	}
	if !res.HTMLContains("user-00") {
		t.Error("first page should contain the first row")
	}
	if res.HTMLContains("user-10") {
		t.Error("first page should not contain rows from the second page")
	}
	if !res.HTMLContains("Page 1 of 10") {
		t.Errorf("paginator missing or wrong: %s", res.HTML)
	}
}

func TestTableClampsOutOfRangePage(t *testing.T) {
	rows := peopleRows(95)
	tbl := newPeopleTable(&rows)

	res := TestGet(tbl, url.Values{ParamPageIndex: {"50"}})

	if !res.HTMLContains("Page 10 of 10") {
		t.Error("out-of-range page index should clamp to the last page")
	}
	if !res.HTMLContains("user-90") {
		t.Error("last page should contain the final rows")
	}
}

func TestTablePageSizeFallback(t *testing.T) {
	rows := peopleRows(95)
	tbl := newPeopleTable(&rows)

	res := TestGet(tbl, url.Values{ParamPageSize: {"7"}})

	if !res.HTMLContains("Page 1 of 10") {
		t.Error("invalid page size should fall back to the default of 10")
	}
}

func TestTableSortParams(t *testing.T) {
	rows := peopleRows(20)
	tbl := newPeopleTable(&rows)

	res := TestGet(tbl, url.Values{ParamSortID: {"name"}, ParamSortDesc: {"true"}})

	if !res.HTMLContains("user-19") {
		t.Error("descending sort should put the last user on the first page")
	}
	if res.HTMLContains("user-00") {
		t.Error("descending first page should not contain the first user")
	}
	if !res.HTMLContains("&darr;") {
		t.Error("active descending sort should render a direction marker")
	}
}

func TestTableInvalidSortColumnFallsBack(t *testing.T) {
	var seen SortState
	fetch := func(ctx context.Context, page PageState, sort SortState) (FetchResult[person], error) {
		seen = sort
		return FetchResult[person]{Rows: peopleRows(3), RowCount: 3}, nil
	}
	tbl := New("capture", DefaultConfig(), fetch,
		Column[person]{Title: "Name", Cell: func(p person) string { return p.Name }},
	)

	TestGet(tbl, url.Values{ParamSortID: {"bogus"}})

	if !seen.Equal(SortState{}) {
		t.Errorf("unsortable column reached the fetcher: %+v", seen)
	}
}

func TestTableEmptyState(t *testing.T) {
	rows := []person{}
	tbl := newPeopleTable(&rows)

	res := TestGet(tbl, nil)

	if !res.HTMLContains("No results.") {
		t.Error("empty dataset should render the empty message")
	}
	if res.HTMLContains("hxtable-error") {
		t.Error("empty dataset must not render as an error")
	}
}

func TestTableErrorState(t *testing.T) {
	fetch := func(ctx context.Context, page PageState, sort SortState) (FetchResult[person], error) {
		return FetchResult[person]{}, fmt.Errorf("backend down")
	}
	tbl := New("failing", DefaultConfig(), fetch,
		Column[person]{Title: "Name", Cell: func(p person) string { return p.Name }},
	)

	res := TestGet(tbl, nil)

	if !res.HTMLContains("hxtable-error") {
		t.Error("fetch failure should render the error state")
	}
	if !res.HTMLContains("Retry") {
		t.Error("error state should offer a retry action")
	}
	if res.HTMLContains("No results.") {
		t.Error("error state must be distinct from the empty state")
	}
}

func TestTableCachesUntilRefresh(t *testing.T) {
	rows := []person{{Name: "alice", Email: "old@example.com"}}
	tbl := newPeopleTable(&rows)

	res := TestGet(tbl, nil)
	if !res.HTMLContains("old@example.com") {
		t.Fatal("first render missing row data")
	}

	// The dataset changes behind the table's back; an identical request is
	// served from the committed result.
	rows[0].Email = "new@example.com"
	res = TestGet(tbl, nil)
	if !res.HTMLContains("old@example.com") {
		t.Error("unchanged state tuple should reuse the committed result")
	}

	// The refresh action invalidates and refetches the same tuple.
	res = TestRefresh(tbl, nil)
	if !res.HTMLContains("new@example.com") {
		t.Error("refresh should refetch and pick up the mutation")
	}
}

func TestTableSyncURLPushesCanonicalState(t *testing.T) {
	rows := peopleRows(95)
	tbl := newPeopleTable(&rows).SyncURL("/people")

	res := TestGet(tbl, url.Values{ParamPageIndex: {"2"}})
	if got := res.PushedURL(); got != "/people?pageIndex=2" {
		t.Errorf("pushed URL = %q, want /people?pageIndex=2", got)
	}

	// Default state pushes the bare path: default-valued fields are elided.
	res = TestGet(tbl, nil)
	if got := res.PushedURL(); got != "/people" {
		t.Errorf("pushed URL for default state = %q, want /people", got)
	}
}

func TestTableCardsView(t *testing.T) {
	rows := peopleRows(5)
	tbl := newPeopleTable(&rows).Cards()

	res := TestGet(tbl, nil)

	if !res.HTMLContains("hxtable-cards") {
		t.Error("cards view should render the card grid")
	}
	if res.HTMLContains("<table") {
		t.Error("cards view should not render a table element")
	}
	if !res.HTMLContains("user-00") {
		t.Error("cards should contain row data")
	}
}

func TestTableMethodRouting(t *testing.T) {
	rows := peopleRows(5)
	tbl := newPeopleTable(&rows)

	tests := []struct {
		name   string
		method string
		path   string
		expect int
	}{
		{"render accepts GET", http.MethodGet, "/", http.StatusOK},
		{"render rejects DELETE", http.MethodDelete, "/", http.StatusMethodNotAllowed},
		{"refresh rejects GET", http.MethodGet, "/refresh", http.StatusMethodNotAllowed},
		{"unknown action", http.MethodGet, "/nonsense", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tbl.HXPrefix()+tt.path, nil)
			rec := httptest.NewRecorder()
			tbl.HXServeHTTP(rec, req)
			if rec.Code != tt.expect {
				t.Errorf("%s %s = %d, want %d", tt.method, tt.path, rec.Code, tt.expect)
			}
		})
	}
}

func TestTableComponentEmbeds(t *testing.T) {
	rows := peopleRows(5)
	tbl := newPeopleTable(&rows)

	req := httptest.NewRequest(http.MethodGet, "/people", nil)
	html, err := TestRenderComponent(req.Context(), tbl.Component(req))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(html, "user-00") || !strings.Contains(html, tbl.Name()) {
		t.Errorf("embedded component missing content: %s", html)
	}
}

func TestTableQueryKey(t *testing.T) {
	rows := peopleRows(1)
	tbl := newPeopleTable(&rows).Query("tenants", 7)

	if tbl.query != "tenants/7" {
		t.Errorf("query key = %q, want tenants/7", tbl.query)
	}
}
