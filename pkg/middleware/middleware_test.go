package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/TheOfficialSeb/Styrene/pkg/router"
)

// newTestRouter returns a router with a few routes and the given
// middleware installed.
func newTestRouter(t *testing.T, mw ...router.Middleware) *router.Router {
	t.Helper()

	r := router.New(router.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	r.Use(mw...)

	routes := map[string]http.HandlerFunc{
		"/users/:id": func(w http.ResponseWriter, _ *http.Request) {
			io.WriteString(w, "user")
		},
		"/boom": func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		},
	}
	for template, h := range routes {
		if err := r.Get(template, h); err != nil {
			t.Fatalf("Get(%q): %v", template, err)
		}
	}
	return r
}

func serve(h http.Handler, method, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	r := newTestRouter(t, Logger(logger))

	tests := []struct {
		target string
		route  string
		status int
		level  string
	}{
		{"/users/7", "/users/:id", 200, "INFO"},
		{"/nowhere", "unmatched", 404, "WARN"},
		{"/boom", "/boom", 500, "ERROR"},
	}

	for _, tt := range tests {
		buf.Reset()
		serve(chimw.RequestID(r), http.MethodGet, tt.target)

		var rec map[string]any
		if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
			t.Fatalf("GET %s: invalid log line %q: %v", tt.target, buf.String(), err)
		}
		if rec["route"] != tt.route {
			t.Errorf("GET %s route = %v, want %q", tt.target, rec["route"], tt.route)
		}
		if rec["status"] != float64(tt.status) {
			t.Errorf("GET %s status = %v, want %d", tt.target, rec["status"], tt.status)
		}
		if rec["level"] != tt.level {
			t.Errorf("GET %s level = %v, want %s", tt.target, rec["level"], tt.level)
		}
		if rec["path"] != tt.target {
			t.Errorf("GET %s path = %v", tt.target, rec["path"])
		}
		if id, _ := rec["request_id"].(string); id == "" {
			t.Errorf("GET %s missing request_id", tt.target)
		}
	}
}

func TestLoggerCountsBytes(t *testing.T) {
	var buf bytes.Buffer
	r := newTestRouter(t, Logger(slog.New(slog.NewJSONHandler(&buf, nil))))

	serve(r, http.MethodGet, "/users/1")

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatal(err)
	}
	if rec["bytes"] != float64(len("user")) {
		t.Errorf("bytes = %v, want %d", rec["bytes"], len("user"))
	}
}
