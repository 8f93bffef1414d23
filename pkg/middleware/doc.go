// Package middleware provides HTTP middleware for Styrene applications.
//
// Every middleware has the router.Middleware shape and is meant to be
// installed with Router.Use, so it runs after the route is resolved and
// can label requests with the matched template rather than the raw path:
//
//	r := router.New()
//	r.Use(
//	    middleware.Logger(logger),
//	    middleware.Metrics(middleware.WithNamespace("myapp")),
//	    middleware.Tracing(),
//	)
//
// CanonicalPath is the exception: it rewrites nothing and redirects
// non-canonical paths, so it belongs in front of the router:
//
//	http.ListenAndServe(":8080", middleware.CanonicalPath(r))
//
// # Prometheus Metrics
//
//   - styrene_requests_total{method,route,status}
//   - styrene_request_duration_seconds{method,route}
//   - styrene_route_misses_total{method}
//
// Requests that matched no route are labelled route="unmatched". Expose
// the metrics with promhttp:
//
//	http.Handle("/metrics", promhttp.Handler())
//
// # OpenTelemetry
//
// Tracing starts one server span per request named "METHOD template".
// The tracer comes from the global provider unless WithTracerProvider
// is given.
package middleware
