package router

import (
	"context"
	"net/http"
)

type matchKey struct{}

// WithMatch returns a copy of ctx carrying m.
func WithMatch(ctx context.Context, m *Match) context.Context {
	return context.WithValue(ctx, matchKey{}, m)
}

// FromContext returns the route match stored by the router, or nil when
// the request did not match a route.
func FromContext(ctx context.Context) *Match {
	m, _ := ctx.Value(matchKey{}).(*Match)
	return m
}

// Template returns the template of the matched route, or "" if the
// request did not match.
func Template(r *http.Request) string {
	if m := FromContext(r.Context()); m != nil {
		return m.Route.Template
	}
	return ""
}

// Param returns a decoded param capture. Wildcard captures are joined
// with "/". It returns "" when the capture is absent.
func Param(r *http.Request, name string) string {
	m := FromContext(r.Context())
	if m == nil {
		return ""
	}
	v, _ := m.Params.Get(name)
	return v
}

// Wildcard returns the decoded segments of a wildcard capture, or nil
// when the capture is absent.
func Wildcard(r *http.Request, name string) []string {
	m := FromContext(r.Context())
	if m == nil {
		return nil
	}
	v, _ := m.Params.Segments(name)
	return v
}
