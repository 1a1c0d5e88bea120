package hxtableecho

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/pthm/hxtable"
)

type item struct {
	Name string
}

func newItemsTable() *hxtable.Table[item] {
	rows := []item{{Name: "alpha"}, {Name: "beta"}}
	return hxtable.New("items", hxtable.DefaultConfig(), hxtable.StaticFetcher(rows),
		hxtable.Column[item]{Title: "Name", Cell: func(i item) string { return i.Name }},
	)
}

func TestMountRoutesFragmentRequests(t *testing.T) {
	e := echo.New()
	reg := Mount(e)
	tbl := newItemsTable()
	reg.Add(tbl)

	req := httptest.NewRequest(http.MethodGet, tbl.HXPrefix()+"/", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "alpha") {
		t.Errorf("fragment missing row data: %s", rec.Body.String())
	}
}

func TestMountGroupInheritsPrefix(t *testing.T) {
	e := echo.New()
	g := e.Group("/app")
	reg := MountGroup(g)
	tbl := newItemsTable()
	reg.Add(tbl)

	req := httptest.NewRequest(http.MethodGet, "/app"+tbl.HXPrefix()+"/", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestRenderWritesHTML(t *testing.T) {
	e := echo.New()
	tbl := newItemsTable()
	e.GET("/", func(c echo.Context) error {
		return Render(c, tbl.Component(c.Request()))
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := rec.Header().Get(echo.HeaderContentType); got != echo.MIMETextHTMLCharsetUTF8 {
		t.Errorf("Content-Type = %q", got)
	}
	if !strings.Contains(rec.Body.String(), "beta") {
		t.Errorf("page missing table content: %s", rec.Body.String())
	}
}
