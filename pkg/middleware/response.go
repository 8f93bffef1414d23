package middleware

import (
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/TheOfficialSeb/Styrene/pkg/router"
)

// unmatchedRoute labels requests no route matched.
const unmatchedRoute = "unmatched"

// wrap returns a writer that records status and size.
func wrap(w http.ResponseWriter, r *http.Request) chimw.WrapResponseWriter {
	return chimw.NewWrapResponseWriter(w, r.ProtoMajor)
}

// status returns the recorded status, defaulting to 200 for handlers
// that never called WriteHeader.
func status(ww chimw.WrapResponseWriter) int {
	if code := ww.Status(); code != 0 {
		return code
	}
	return http.StatusOK
}

// routeLabel returns the matched template, or unmatchedRoute.
func routeLabel(r *http.Request) (string, bool) {
	if t := router.Template(r); t != "" {
		return t, true
	}
	return unmatchedRoute, false
}
