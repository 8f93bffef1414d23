package static

import (
	"path"
	"path/filepath"
	"strings"
)

// relPath returns a sanitized source name for a request path relative
// to the mount point. dir reports whether the request named a directory
// (trailing slash). Traversal and absolute-path tricks are rejected so
// a request can never escape the source root.
func relPath(rel string) (name string, dir bool, ok bool) {
	// Reject NUL early (can appear via %00).
	if strings.IndexByte(rel, 0) != -1 {
		return "", false, false
	}

	// Reject platform-dependent separators.
	if strings.Contains(rel, "\\") {
		return "", false, false
	}

	// After prefix stripping, a leading "/" is an absolute-path attempt
	// (e.g. "/static//etc/passwd" => "/etc/passwd").
	if strings.HasPrefix(rel, "/") {
		return "", false, false
	}

	if rel == "" {
		return "", true, true
	}

	dir = strings.HasSuffix(rel, "/")
	rel = strings.TrimSuffix(rel, "/")

	for _, seg := range strings.Split(rel, "/") {
		if seg == "" || seg == "." || seg == ".." {
			return "", false, false
		}
	}

	clean := path.Clean(rel)
	if clean != rel {
		return "", false, false
	}

	osPath := filepath.FromSlash(clean)
	if filepath.IsAbs(osPath) || filepath.VolumeName(osPath) != "" {
		return "", false, false
	}

	return clean, dir, true
}

// stripPrefix removes the mount prefix from a URL path. ok is false when
// the path is outside the mount.
func stripPrefix(urlPath, prefix string) (string, bool) {
	prefix = strings.TrimSuffix(prefix, "/")
	if prefix == "" {
		return strings.TrimPrefix(urlPath, "/"), strings.HasPrefix(urlPath, "/")
	}
	if urlPath == prefix {
		return "", true
	}
	if !strings.HasPrefix(urlPath, prefix+"/") {
		return "", false
	}
	return urlPath[len(prefix)+1:], true
}

// isFingerprinted reports whether a file name carries a content hash,
// e.g. "app.a1b2c3d4.css".
func isFingerprinted(name string) bool {
	parts := strings.Split(path.Base(name), ".")
	if len(parts) < 3 {
		return false
	}

	hash := parts[len(parts)-2]
	if len(hash) < 8 {
		return false
	}
	for _, c := range hash {
		if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')) {
			return false
		}
	}
	return true
}
