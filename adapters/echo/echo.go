// Package hxtableecho provides Echo framework integration for hxtable.
//
// Mount tables onto an Echo instance or group:
//
//	e := echo.New()
//	reg := hxtableecho.Mount(e)
//	reg.Add(peopleTable)
//
// Or mount on a group with middleware:
//
//	g := e.Group("/app", authMiddleware)
//	reg := hxtableecho.MountGroup(g)
//	reg.Add(peopleTable)
package hxtableecho

import (
	"strings"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"github.com/pthm/hxtable"
)

// Option configures the Mount and MountGroup functions.
type Option func(*options)

type options struct {
	path string
}

// WithPath sets the URL path prefix for table routes.
// Defaults to "/_t/".
func WithPath(path string) Option {
	return func(o *options) {
		o.path = path
	}
}

// Mount creates a registry and mounts the table handler on an Echo instance.
//
//	e := echo.New()
//	reg := hxtableecho.Mount(e)
//	reg.Add(peopleTable)
func Mount(e *echo.Echo, opts ...Option) *hxtable.Registry {
	reg, path := newRegistry(opts)
	e.Any(path+"*", wrap(reg, path))
	return reg
}

// MountGroup creates a registry and mounts the table handler on an Echo
// group, inheriting the group's middleware (auth, logging, etc.).
func MountGroup(g *echo.Group, opts ...Option) *hxtable.Registry {
	reg, path := newRegistry(opts)
	g.Any(path+"*", wrap(reg, path))
	return reg
}

// Render writes a templ component as the response for an Echo handler.
//
//	e.GET("/", func(c echo.Context) error {
//	    return hxtableecho.Render(c, page(peopleTable.Component(c.Request())))
//	})
func Render(c echo.Context, component templ.Component) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	return component.Render(c.Request().Context(), c.Response().Writer)
}

// wrap adapts the registry handler to Echo, trimming any group prefix ahead
// of the mount path so table prefixes resolve regardless of where the
// registry is mounted.
func wrap(reg *hxtable.Registry, path string) echo.HandlerFunc {
	h := reg.Handler()
	return func(c echo.Context) error {
		r := c.Request()
		if i := strings.Index(r.URL.Path, path); i > 0 {
			r = r.Clone(r.Context())
			r.URL.Path = r.URL.Path[i:]
		}
		h.ServeHTTP(c.Response(), r)
		return nil
	}
}

func newRegistry(opts []Option) (*hxtable.Registry, string) {
	o := &options{path: "/_t/"}
	for _, opt := range opts {
		opt(o)
	}
	return hxtable.NewRegistry(), o.path
}
