// Package router dispatches HTTP requests to handlers registered with
// route templates.
//
// Templates use the pathpattern grammar:
//
//	r := router.New()
//	r.Get("/", home)
//	r.Get("/users/:id", showUser)
//	r.Get("/files/*path", serveFile)
//	r.Get("/blog{/:year{/:month}}", archive)
//
// Each template is compiled once, when it is registered. A request is
// dispatched to the first route registered for its method whose
// template matches the path; routes registered with Any are tried after
// the method-specific ones, and HEAD requests fall back to GET routes.
// When only other methods match, the router answers 405 with an Allow
// header.
//
// # Parameters
//
// Handlers read captured values from the request context:
//
//	func showUser(w http.ResponseWriter, r *http.Request) {
//	    id := router.Param(r, "id")
//	    ...
//	}
//
// Wildcard captures are returned as segments by router.Wildcard, and a
// struct with `param` tags can be filled with router.DecodeParams.
//
// # Middleware
//
// Middleware registered with Use has the standard
// func(http.Handler) http.Handler shape and runs after route
// resolution, so it can inspect the matched route via FromContext.
package router
