package router

import (
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"sync"

	"github.com/TheOfficialSeb/Styrene/pkg/pathpattern"
)

// Router manages route matching and handler dispatch.
type Router struct {
	mu         sync.RWMutex
	routes     map[string][]*Route // method -> routes in registration order
	anyRoutes  []*Route
	fallbacks  []*Route // tried after every other route
	middleware []Middleware

	notFound         http.Handler
	methodNotAllowed http.Handler
	patternOpts      []pathpattern.Option
	logger           *slog.Logger
}

// Option configures a Router.
type Option func(*Router)

// WithLogger sets the logger used for registration diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Router) {
		r.logger = logger
	}
}

// WithPatternOptions sets the options every template is compiled with.
//
// Example:
//
//	r := router.New(router.WithPatternOptions(pathpattern.WithSensitive(true)))
func WithPatternOptions(opts ...pathpattern.Option) Option {
	return func(r *Router) {
		r.patternOpts = append(r.patternOpts, opts...)
	}
}

// WithNotFound sets the handler for requests no route matches.
func WithNotFound(h http.Handler) Option {
	return func(r *Router) {
		r.notFound = h
	}
}

// WithMethodNotAllowed sets the handler for requests whose path matches
// only routes of other methods. The Allow header is set before it runs.
func WithMethodNotAllowed(h http.Handler) Option {
	return func(r *Router) {
		r.methodNotAllowed = h
	}
}

// New creates a new router.
func New(opts ...Option) *Router {
	r := &Router{
		routes: make(map[string][]*Route),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	if r.notFound == nil {
		r.notFound = http.NotFoundHandler()
	}
	if r.methodNotAllowed == nil {
		r.methodNotAllowed = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		})
	}
	return r
}

// Handle registers a handler for a method and template. The template is
// compiled immediately; a template error is returned and the route is
// not added. An empty method registers the route for every method.
func (r *Router) Handle(method, template string, h http.Handler) error {
	return r.add(method, template, h, false)
}

// Fallback registers a handler that is tried only after every
// method-specific and Any route, regardless of registration order.
// Static file mounts use it so user handlers always win.
func (r *Router) Fallback(method, template string, h http.Handler) error {
	return r.add(method, template, h, true)
}

func (r *Router) add(method, template string, h http.Handler, fallback bool) error {
	if h == nil {
		return fmt.Errorf("router: nil handler for %s %q", method, template)
	}

	m, err := pathpattern.Compile(template, r.patternOpts...)
	if err != nil {
		r.logger.Error("route rejected",
			slog.String("method", method),
			slog.String("template", template),
			slog.Any("error", err))
		return fmt.Errorf("router: %s %q: %w", method, template, err)
	}

	method = strings.ToUpper(method)
	route := &Route{
		Method:   method,
		Template: template,
		Handler:  h,
		matcher:  m,
	}

	r.mu.Lock()
	switch {
	case fallback:
		r.fallbacks = append(r.fallbacks, route)
	case method == "":
		r.anyRoutes = append(r.anyRoutes, route)
	default:
		r.routes[method] = append(r.routes[method], route)
	}
	r.mu.Unlock()

	r.logger.Debug("route registered",
		slog.String("method", displayMethod(method)),
		slog.String("template", template),
		slog.Bool("fallback", fallback))
	return nil
}

// HandleFunc registers a handler function for a method and template.
func (r *Router) HandleFunc(method, template string, h http.HandlerFunc) error {
	return r.Handle(method, template, h)
}

// MustHandle is like Handle but panics if the template is invalid.
func (r *Router) MustHandle(method, template string, h http.Handler) {
	if err := r.Handle(method, template, h); err != nil {
		panic(err)
	}
}

// Get registers a GET handler.
func (r *Router) Get(template string, h http.HandlerFunc) error {
	return r.Handle(http.MethodGet, template, h)
}

// Head registers a HEAD handler.
func (r *Router) Head(template string, h http.HandlerFunc) error {
	return r.Handle(http.MethodHead, template, h)
}

// Post registers a POST handler.
func (r *Router) Post(template string, h http.HandlerFunc) error {
	return r.Handle(http.MethodPost, template, h)
}

// Put registers a PUT handler.
func (r *Router) Put(template string, h http.HandlerFunc) error {
	return r.Handle(http.MethodPut, template, h)
}

// Patch registers a PATCH handler.
func (r *Router) Patch(template string, h http.HandlerFunc) error {
	return r.Handle(http.MethodPatch, template, h)
}

// Delete registers a DELETE handler.
func (r *Router) Delete(template string, h http.HandlerFunc) error {
	return r.Handle(http.MethodDelete, template, h)
}

// Any registers a handler for every method. Any routes are tried after
// the method-specific routes.
func (r *Router) Any(template string, h http.HandlerFunc) error {
	return r.Handle("", template, h)
}

// Use appends middleware. Middleware runs first to last, after the
// route has been resolved.
func (r *Router) Use(mw ...Middleware) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.middleware = append(r.middleware, mw...)
}

// Routes returns every registered route, method-specific routes first
// (methods in lexical order), then Any routes, then fallbacks.
func (r *Router) Routes() []*Route {
	r.mu.RLock()
	defer r.mu.RUnlock()

	methods := make([]string, 0, len(r.routes))
	for method := range r.routes {
		methods = append(methods, method)
	}
	slices.Sort(methods)

	var out []*Route
	for _, method := range methods {
		out = append(out, r.routes[method]...)
	}
	out = append(out, r.anyRoutes...)
	return append(out, r.fallbacks...)
}

// Match finds the route for a method and path.
func (r *Router) Match(method, path string) (*Match, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	method = strings.ToUpper(method)
	if m, ok := firstMatch(r.routes[method], path); ok {
		return m, true
	}
	if method == http.MethodHead {
		if m, ok := firstMatch(r.routes[http.MethodGet], path); ok {
			return m, true
		}
	}
	if m, ok := firstMatch(r.anyRoutes, path); ok {
		return m, true
	}
	return r.matchFallback(method, path)
}

// matchFallback tries fallback routes in registration order. A GET
// fallback also serves HEAD.
func (r *Router) matchFallback(method, path string) (*Match, bool) {
	for _, route := range r.fallbacks {
		if !methodAccepts(route.Method, method) {
			continue
		}
		if m, ok := firstMatch([]*Route{route}, path); ok {
			return m, true
		}
	}
	return nil, false
}

func methodAccepts(routeMethod, method string) bool {
	return routeMethod == "" || routeMethod == method ||
		(method == http.MethodHead && routeMethod == http.MethodGet)
}

// firstMatch tries routes in registration order.
func firstMatch(routes []*Route, path string) (*Match, bool) {
	for _, route := range routes {
		if res, ok := route.matcher.Match(path); ok {
			return &Match{Route: route, Path: res.Path, Params: res.Params}, true
		}
	}
	return nil, false
}

// allowed returns the methods with a route matching path.
func (r *Router) allowed(path string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var methods []string
	for method, routes := range r.routes {
		if _, ok := firstMatch(routes, path); ok {
			methods = append(methods, method)
		}
	}
	for _, route := range r.fallbacks {
		if route.Method == "" || slices.Contains(methods, route.Method) {
			continue
		}
		if _, ok := firstMatch([]*Route{route}, path); ok {
			methods = append(methods, route.Method)
		}
	}
	if slices.Contains(methods, http.MethodGet) && !slices.Contains(methods, http.MethodHead) {
		methods = append(methods, http.MethodHead)
	}
	slices.Sort(methods)
	return methods
}

// ServeHTTP implements http.Handler.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	path := req.URL.EscapedPath()

	var final http.Handler
	if m, ok := r.Match(req.Method, path); ok {
		req = req.WithContext(WithMatch(req.Context(), m))
		final = m.Route.Handler
	} else if methods := r.allowed(path); len(methods) > 0 {
		w.Header().Set("Allow", strings.Join(methods, ", "))
		final = r.methodNotAllowed
	} else {
		final = r.notFound
	}

	r.mu.RLock()
	mw := r.middleware
	r.mu.RUnlock()

	compose(mw, final).ServeHTTP(w, req)
}

func displayMethod(method string) string {
	if method == "" {
		return "*"
	}
	return method
}
