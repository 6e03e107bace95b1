package gateway

import (
	"net/http"
)

// Middleware wraps a handler
type Middleware func(http.Handler) http.Handler

// Router serves the volume host routes through a middleware chain
type Router struct {
	mux      *http.ServeMux
	patterns []string
	chain    []Middleware
}

// NewRouter creates a router with no routes and no middleware
func NewRouter() *Router {
	return &Router{mux: http.NewServeMux()}
}

// Use appends middleware. The first one added is the outermost.
func (r *Router) Use(mw ...Middleware) {
	r.chain = append(r.chain, mw...)
}

// Handle registers handler for pattern
func (r *Router) Handle(pattern string, handler http.Handler) {
	r.mux.Handle(pattern, handler)
	r.patterns = append(r.patterns, pattern)
}

// HandleFunc registers a handler function for pattern
func (r *Router) HandleFunc(pattern string, handler http.HandlerFunc) {
	r.Handle(pattern, handler)
}

// Patterns lists registered patterns in registration order
func (r *Router) Patterns() []string {
	return append([]string(nil), r.patterns...)
}

// Handler returns the mux wrapped in the middleware chain
func (r *Router) Handler() http.Handler {
	var h http.Handler = r.mux
	for i := len(r.chain) - 1; i >= 0; i-- {
		h = r.chain[i](h)
	}
	return h
}
