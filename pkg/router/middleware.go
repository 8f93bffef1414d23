package router

import "net/http"

// compose wraps handler with mw so that mw[0] runs first.
func compose(mw []Middleware, handler http.Handler) http.Handler {
	if len(mw) == 0 {
		return handler
	}

	// Build chain from end to start
	chain := handler
	for i := len(mw) - 1; i >= 0; i-- {
		chain = mw[i](chain)
	}
	return chain
}

// Chain combines multiple middleware into one, preserving order.
func Chain(middleware ...Middleware) Middleware {
	return func(next http.Handler) http.Handler {
		return compose(middleware, next)
	}
}

// Skip bypasses mw for requests where condition is true.
func Skip(condition func(r *http.Request) bool, mw Middleware) Middleware {
	return func(next http.Handler) http.Handler {
		wrapped := mw(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if condition(r) {
				next.ServeHTTP(w, r)
				return
			}
			wrapped.ServeHTTP(w, r)
		})
	}
}

// Only runs mw only for requests where condition is true.
func Only(condition func(r *http.Request) bool, mw Middleware) Middleware {
	return Skip(func(r *http.Request) bool { return !condition(r) }, mw)
}
