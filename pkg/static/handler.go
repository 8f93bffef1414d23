package static

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"path"
	"strconv"
	"strings"

	"github.com/TheOfficialSeb/Styrene/pkg/router"
)

// CacheStrategy determines caching behavior for served files.
type CacheStrategy int

const (
	// CacheOff adds no caching headers.
	CacheOff CacheStrategy = iota

	// CacheNoStore disables client caching. Useful in development.
	CacheNoStore

	// CacheProduction caches fingerprinted files (e.g. app.a1b2c3d4.js)
	// for a year and everything else for an hour with revalidation.
	CacheProduction
)

// ParseCacheStrategy maps a configuration value to a CacheStrategy.
func ParseCacheStrategy(s string) (CacheStrategy, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "off":
		return CacheOff, true
	case "none", "no-store":
		return CacheNoStore, true
	case "production", "prod":
		return CacheProduction, true
	}
	return CacheOff, false
}

// Config configures a Handler.
type Config struct {
	// Source provides the files. Required.
	Source Source

	// Prefix is the URL path the handler is mounted at. It is only used
	// when the request carries no router match.
	Prefix string

	// Param is the wildcard capture holding the relative file path.
	// Default: "path".
	Param string

	// Index is served for directory requests. Default: "index.html".
	Index string

	// Fallback is served with status 200 for misses from clients that
	// accept HTML. Empty disables the fallback.
	Fallback string

	CacheControl CacheStrategy

	// Headers are set on every successful response.
	Headers map[string]string

	// Inject is inserted before </body> in HTML responses.
	Inject []byte

	Logger *slog.Logger
}

// Handler serves files from a Source.
type Handler struct {
	config Config
	logger *slog.Logger
}

// New creates a static file handler.
func New(cfg Config) *Handler {
	if cfg.Param == "" {
		cfg.Param = "path"
	}
	if cfg.Index == "" {
		cfg.Index = "index.html"
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		config: cfg,
		logger: logger.With(slog.String("component", "static")),
	}
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	rel, ok := h.requestPath(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	name, dir, ok := relPath(rel)
	if !ok {
		http.NotFound(w, r)
		return
	}
	if name == "" {
		dir = strings.HasSuffix(r.URL.Path, "/")
	}

	ctx := r.Context()
	info, err := h.config.Source.Stat(ctx, name)
	switch {
	case errors.Is(err, ErrNotExist):
		h.miss(w, r)
		return
	case err != nil:
		h.fail(w, name, err)
		return
	}

	if info.IsDir {
		if !dir {
			h.redirectToDir(w, r)
			return
		}
		name = path.Join(name, h.config.Index)
	} else if dir {
		h.miss(w, r)
		return
	}

	h.serveFile(w, r, name, true)
}

// requestPath returns the path relative to the mount point, preferring
// the router's wildcard capture.
func (h *Handler) requestPath(r *http.Request) (string, bool) {
	if m := router.FromContext(r.Context()); m != nil {
		segs, ok := m.Params.Segments(h.config.Param)
		if !ok {
			return "", true
		}
		return strings.Join(segs, "/"), true
	}
	return stripPrefix(r.URL.Path, h.config.Prefix)
}

func (h *Handler) redirectToDir(w http.ResponseWriter, r *http.Request) {
	target := r.URL.EscapedPath() + "/"
	if r.URL.RawQuery != "" {
		target += "?" + r.URL.RawQuery
	}
	http.Redirect(w, r, target, http.StatusMovedPermanently)
}

// miss serves the fallback file to HTML clients, or 404.
func (h *Handler) miss(w http.ResponseWriter, r *http.Request) {
	if h.config.Fallback != "" && acceptsHTML(r) {
		h.serveFile(w, r, h.config.Fallback, false)
		return
	}
	http.NotFound(w, r)
}

func (h *Handler) serveFile(w http.ResponseWriter, r *http.Request, name string, allowFallback bool) {
	f, err := h.config.Source.Open(r.Context(), name)
	if err != nil {
		if errors.Is(err, ErrNotExist) || errors.Is(err, ErrIsDir) {
			if allowFallback {
				h.miss(w, r)
			} else {
				http.NotFound(w, r)
			}
			return
		}
		h.fail(w, name, err)
		return
	}
	defer f.Body.Close()

	contentType := f.ContentType
	if contentType == "" {
		contentType = ContentType(name)
	}

	header := w.Header()
	header.Set("Content-Type", contentType)
	h.applyCacheHeaders(header, name)
	for key, value := range h.config.Headers {
		header.Set(key, value)
	}

	if len(h.config.Inject) > 0 && isHTML(contentType) {
		h.serveInjected(w, r, f)
		return
	}

	if f.ETag != "" {
		header.Set("ETag", f.ETag)
	}

	if rs, ok := f.Body.(io.ReadSeeker); ok {
		http.ServeContent(w, r, name, f.ModTime, rs)
		return
	}

	// Streaming sources cannot serve ranges; answer conditionals on the
	// ETag only.
	if f.ETag != "" && etagMatch(r.Header.Get("If-None-Match"), f.ETag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	if !f.ModTime.IsZero() {
		header.Set("Last-Modified", f.ModTime.UTC().Format(http.TimeFormat))
	}
	if f.Size > 0 {
		header.Set("Content-Length", strconv.FormatInt(f.Size, 10))
	}
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	if _, err := io.Copy(w, f.Body); err != nil {
		h.logger.Debug("copy interrupted", slog.String("file", name), slog.Any("error", err))
	}
}

func (h *Handler) serveInjected(w http.ResponseWriter, r *http.Request, f *File) {
	body, err := io.ReadAll(f.Body)
	if err != nil {
		h.fail(w, f.Name, err)
		return
	}
	body = inject(body, h.config.Inject)

	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(http.StatusOK)
	if r.Method != http.MethodHead {
		w.Write(body)
	}
}

func (h *Handler) fail(w http.ResponseWriter, name string, err error) {
	h.logger.Error("source error", slog.String("file", name), slog.Any("error", err))
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}

func (h *Handler) applyCacheHeaders(header http.Header, name string) {
	switch h.config.CacheControl {
	case CacheNoStore:
		header.Set("Cache-Control", "no-store, no-cache, must-revalidate")
	case CacheProduction:
		if isFingerprinted(name) {
			header.Set("Cache-Control", "public, max-age=31536000, immutable")
		} else {
			header.Set("Cache-Control", "public, max-age=3600, must-revalidate")
		}
	}
}

// inject inserts snippet before the last </body>, or appends it.
func inject(body, snippet []byte) []byte {
	idx := bytes.LastIndex(bytes.ToLower(body), []byte("</body>"))
	if idx == -1 {
		return append(body, snippet...)
	}
	out := make([]byte, 0, len(body)+len(snippet))
	out = append(out, body[:idx]...)
	out = append(out, snippet...)
	return append(out, body[idx:]...)
}

func acceptsHTML(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "text/html")
}

func etagMatch(ifNoneMatch, etag string) bool {
	if ifNoneMatch == "" {
		return false
	}
	if strings.TrimSpace(ifNoneMatch) == "*" {
		return true
	}
	etag = strings.TrimPrefix(etag, "W/")
	for _, candidate := range strings.Split(ifNoneMatch, ",") {
		if strings.TrimPrefix(strings.TrimSpace(candidate), "W/") == etag {
			return true
		}
	}
	return false
}
