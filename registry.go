package hxtable

import (
	"fmt"
	"net/http"
	"sync"
)

// Mountable is implemented by tables (and any custom fragment component)
// that the registry can route to.
//
// HXPrefix returns the unique URL prefix for the component instance.
// HXServeHTTP handles all HTTP requests under that prefix.
type Mountable interface {
	HXPrefix() string
	HXServeHTTP(w http.ResponseWriter, r *http.Request)
}

// Registry manages table registration and routing.
type Registry struct {
	mu     sync.RWMutex
	mux    *http.ServeMux
	tables map[string]Mountable

	// OnError is called for requests that cannot be routed. Customize this
	// to handle errors appropriately for your application.
	OnError func(http.ResponseWriter, *http.Request, error)
}

// NewRegistry creates a new table registry.
func NewRegistry() *Registry {
	reg := &Registry{
		mux:    http.NewServeMux(),
		tables: make(map[string]Mountable),
	}

	// Default error handler
	reg.OnError = func(w http.ResponseWriter, r *http.Request, err error) {
		if IsTableNotFound(err) {
			http.Error(w, "Not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Internal error", http.StatusInternalServerError)
	}

	return reg
}

// Add registers tables with the registry.
// Panics on a prefix collision - two tables constructed at the same source
// location with the same name cannot be told apart by URL.
func (reg *Registry) Add(tables ...Mountable) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	for _, tbl := range tables {
		prefix := tbl.HXPrefix()
		if _, exists := reg.tables[prefix]; exists {
			panic(fmt.Sprintf("hxtable: prefix collision for %q", prefix))
		}
		reg.tables[prefix] = tbl

		pattern := prefix + "/"
		handler := tbl
		reg.mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
			handler.HXServeHTTP(w, r)
		})
	}
}

// Handler returns the HTTP handler for table routes.
// Mount this at "/_t/" in your application.
func (reg *Registry) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// CSRF protection: mutating methods require the HX-Request header
		// that HTMX sends, preventing cross-origin form posts.
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			if !IsHTMX(r) {
				http.Error(w, "Forbidden: HTMX request required", http.StatusForbidden)
				return
			}
		}

		reg.mu.RLock()
		_, known := reg.routeFor(r.URL.Path)
		reg.mu.RUnlock()
		if !known {
			reg.OnError(w, r, ErrTableNotFound)
			return
		}

		reg.mux.ServeHTTP(w, r)
	})
}

// routeFor finds the registered table whose prefix owns path.
// Caller must hold reg.mu.
func (reg *Registry) routeFor(path string) (Mountable, bool) {
	for prefix, tbl := range reg.tables {
		if len(path) >= len(prefix) && path[:len(prefix)] == prefix {
			return tbl, true
		}
	}
	return nil, false
}
