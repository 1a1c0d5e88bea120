package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"math/rand"
	"strconv"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pthm/hxtable"
	hxtableecho "github.com/pthm/hxtable/adapters/echo"
)

func main() {
	e := echo.New()

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	store := NewStore(95)

	columns := []hxtable.Column[Person]{
		{Title: "Name", Cell: func(p Person) string { return p.Name }},
		{Title: "Email", Cell: func(p Person) string { return p.Email }},
		{Title: "Version", Cell: func(p Person) string { return strconv.Itoa(p.Version) }},
		{ID: "id", Title: "#", NoSort: true, Cell: func(p Person) string { return strconv.Itoa(p.ID) }},
	}

	// URL-synced list table: paging and sorting survive reloads and
	// back/forward navigation.
	people := hxtable.New("people", hxtable.DefaultConfig(), store.Fetch, columns...).
		SyncURL("/")

	// Self-owned cards view over the same dataset.
	cards := hxtable.New("people-cards", hxtable.DefaultConfig(), store.Fetch, columns...).
		Cards()

	// Mount hxtable fragment routes
	reg := hxtableecho.Mount(e)
	reg.Add(people)
	reg.Add(cards)

	// Page routes
	e.GET("/", func(c echo.Context) error {
		return hxtableecho.Render(c, page("People", people.Component(c.Request())))
	})
	e.GET("/cards", func(c echo.Context) error {
		return hxtableecho.Render(c, page("People (cards)", cards.Component(c.Request())))
	})

	// Simulate an external write: bump a random row's version, then
	// invalidate both tables so the next render refetches.
	e.POST("/bump", func(c echo.Context) error {
		store.Bump(rand.Intn(95) + 1)
		people.Coordinator().Invalidate()
		cards.Coordinator().Invalidate()
		return hxtableecho.Render(c, people.Component(c.Request()))
	})

	log.Fatal(e.Start(":8080"))
}

// page wraps a table in a minimal HTML document with htmx loaded.
func page(title string, table templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<!DOCTYPE html>
<html>
<head>
<title>%s</title>
<script src="https://unpkg.com/htmx.org@2.0.4"></script>
</head>
<body>
<h1>%s</h1>
<nav><a href="/">List</a> | <a href="/cards">Cards</a></nav>
<button hx-post="/bump" hx-target="#hxtable-people" hx-swap="outerHTML">Bump a random row</button>
`, title, title); err != nil {
			return err
		}
		if err := table.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, "\n</body>\n</html>\n")
		return err
	})
}
