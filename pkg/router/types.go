package router

import (
	"net/http"

	"github.com/TheOfficialSeb/Styrene/pkg/pathpattern"
)

// Route is a registered (method, template, handler) tuple.
type Route struct {
	// Method is the HTTP method, or empty for routes registered with Any.
	Method string

	// Template is the route template as registered.
	Template string

	// Handler serves requests matching the route.
	Handler http.Handler

	matcher *pathpattern.Matcher
}

// Matcher returns the compiled template.
func (rt *Route) Matcher() *pathpattern.Matcher {
	return rt.matcher
}

// Match is the result of resolving a request against the router.
type Match struct {
	// Route is the matched route.
	Route *Route

	// Path is the matched part of the request path.
	Path string

	// Params are the decoded captures.
	Params pathpattern.Params
}

// Middleware wraps a handler. It has the same shape as chi and net/http
// middleware.
type Middleware = func(http.Handler) http.Handler
