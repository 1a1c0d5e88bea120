package hxtable

import (
	"context"
	"io"
	"testing"

	"github.com/a-h/templ"
)

func TestTestResultHelpers(t *testing.T) {
	tr := &TestResult{HTML: "<div>hello</div>", StatusCode: 200}

	if !tr.HTMLContains("hello") {
		t.Error("HTMLContains should find substring")
	}
	if tr.HTMLContains("goodbye") {
		t.Error("HTMLContains found missing substring")
	}
	if !tr.IsOK() {
		t.Error("200 should be OK")
	}

	tr.StatusCode = 404
	if tr.IsOK() {
		t.Error("404 should not be OK")
	}
}

func TestTestRenderComponent(t *testing.T) {
	component := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, "<span>x</span>")
		return err
	})

	html, err := TestRenderComponent(context.Background(), component)
	if err != nil {
		t.Fatalf("TestRenderComponent: %v", err)
	}
	if html != "<span>x</span>" {
		t.Errorf("html = %q", html)
	}
}
