package middleware

import (
	"net/http"

	"github.com/TheOfficialSeb/Styrene/pkg/routepath"
)

// CanonicalPath redirects requests for non-canonical paths such as
// "/docs//intro" or "/a/./b" to their canonical form before routing.
// GET and HEAD get 301; other methods get 308 so the body is resent.
// Malformed paths are rejected with 400.
func CanonicalPath(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		res, err := routepath.Canonicalize(r.URL.EscapedPath())
		if err != nil {
			http.Error(w, "Bad Request", http.StatusBadRequest)
			return
		}
		if !res.Changed {
			next.ServeHTTP(w, r)
			return
		}

		target := res.Path
		if r.URL.RawQuery != "" {
			target += "?" + r.URL.RawQuery
		}
		code := http.StatusPermanentRedirect
		if r.Method == http.MethodGet || r.Method == http.MethodHead {
			code = http.StatusMovedPermanently
		}
		http.Redirect(w, r, target, code)
	})
}
