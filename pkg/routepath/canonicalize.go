// Package routepath normalizes request paths before they are matched
// against route templates.
package routepath

import (
	"errors"
	"strings"
)

// Result contains the result of path canonicalization.
type Result struct {
	// Path is the canonical escaped path.
	Path string

	// Changed indicates if the path was modified during canonicalization.
	Changed bool
}

// Path canonicalization errors.
var (
	ErrBackslashInPath      = errors.New("path contains backslash")
	ErrNullByteInPath       = errors.New("path contains null byte")
	ErrInvalidPercentEscape = errors.New("invalid percent escape sequence")
	ErrPathEscapesRoot      = errors.New("path escapes root via ..")
)

// Canonicalize normalizes an escaped URL path:
//   - Collapse multiple slashes (/blog//post → /blog/post)
//   - Remove "." segments (/blog/./post → /blog/post)
//   - Resolve ".." segments (/blog/../other → /other)
//
// A trailing slash is kept, since templates can tell "/docs" and
// "/docs/" apart. Percent-escapes are validated but not decoded, so an
// encoded "%2F" stays inside its segment.
//
// The following inputs are rejected with an error:
//   - Paths containing backslash (\)
//   - Paths containing NUL byte (%00)
//   - Invalid percent-escapes (e.g., %GG, %2)
//   - ".." that would escape root (e.g., /../secret)
func Canonicalize(escaped string) (Result, error) {
	if escaped == "" {
		return Result{Path: "/", Changed: true}, nil
	}

	if strings.Contains(escaped, "\\") {
		return Result{}, ErrBackslashInPath
	}
	if strings.Contains(escaped, "\x00") || strings.Contains(strings.ToUpper(escaped), "%00") {
		return Result{}, ErrNullByteInPath
	}
	if strings.Contains(escaped, "%") {
		if err := validatePercentEscapes(escaped); err != nil {
			return Result{}, err
		}
	}

	segments := strings.Split(strings.TrimPrefix(escaped, "/"), "/")
	result := make([]string, 0, len(segments))
	trailing := false

	for _, seg := range segments {
		trailing = false
		switch seg {
		case "":
			trailing = true
		case ".":
			trailing = true
		case "..":
			if len(result) == 0 {
				return Result{}, ErrPathEscapesRoot
			}
			result = result[:len(result)-1]
			trailing = true
		default:
			result = append(result, seg)
		}
	}

	path := "/" + strings.Join(result, "/")
	if trailing && len(result) > 0 && strings.HasSuffix(escaped, "/") {
		path += "/"
	}

	return Result{
		Path:    path,
		Changed: path != escaped,
	}, nil
}

// validatePercentEscapes checks that all percent-escapes are valid.
// Valid escapes are %XX where X is a hex digit (0-9, a-f, A-F).
func validatePercentEscapes(path string) error {
	for i := 0; i < len(path); i++ {
		if path[i] != '%' {
			continue
		}
		if i+2 >= len(path) || !isHexDigit(path[i+1]) || !isHexDigit(path[i+2]) {
			return ErrInvalidPercentEscape
		}
		i += 2
	}
	return nil
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
