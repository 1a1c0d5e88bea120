package hxtable

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"

	"github.com/a-h/templ"
)

// TestResult holds the rendered output of a table request for testing.
type TestResult struct {
	HTML       string
	StatusCode int
	Headers    http.Header
}

// HTMLContains reports whether the rendered output contains the substring.
func (tr *TestResult) HTMLContains(sub string) bool {
	return strings.Contains(tr.HTML, sub)
}

// IsOK reports whether the request succeeded.
func (tr *TestResult) IsOK() bool {
	return tr.StatusCode >= 200 && tr.StatusCode < 300
}

// PushedURL returns the HX-Push-Url header, if any.
func (tr *TestResult) PushedURL() string {
	return tr.Headers.Get("HX-Push-Url")
}

// TestRenderComponent renders any templ component to a string.
func TestRenderComponent(ctx context.Context, component templ.Component) (string, error) {
	var buf bytes.Buffer
	if err := component.Render(ctx, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// TestGet performs a fragment GET against a mounted table with the given
// state parameters, bypassing any outer router. Use it to test the full
// request lifecycle: decoding, clamping, fetching, and rendering.
//
//	res := hxtable.TestGet(people, url.Values{"pageIndex": {"2"}})
//	if !res.HTMLContains("Page 3 of") {
//	    t.Fatal("wrong page rendered")
//	}
func TestGet(tbl Mountable, params url.Values) *TestResult {
	target := tbl.HXPrefix() + "/"
	if enc := params.Encode(); enc != "" {
		target += "?" + enc
	}
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.Header.Set("HX-Request", "true")
	return record(tbl, req)
}

// TestRefresh performs the POST refresh action against a mounted table,
// carrying the given state parameters.
func TestRefresh(tbl Mountable, params url.Values) *TestResult {
	target := tbl.HXPrefix() + "/refresh"
	if enc := params.Encode(); enc != "" {
		target += "?" + enc
	}
	req := httptest.NewRequest(http.MethodPost, target, nil)
	req.Header.Set("HX-Request", "true")
	return record(tbl, req)
}

func record(tbl Mountable, req *http.Request) *TestResult {
	rec := httptest.NewRecorder()
	tbl.HXServeHTTP(rec, req)
	return &TestResult{
		HTML:       rec.Body.String(),
		StatusCode: rec.Code,
		Headers:    rec.Result().Header,
	}
}
