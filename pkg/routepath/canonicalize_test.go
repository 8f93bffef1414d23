package routepath

import (
	"errors"
	"testing"
)

func TestCanonicalize(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantPath    string
		wantChanged bool
	}{
		{"root", "/", "/", false},
		{"empty string", "", "/", true},
		{"no leading slash", "about", "/about", true},
		{"clean", "/blog/post", "/blog/post", false},
		{"trailing slash kept", "/docs/", "/docs/", false},
		{"collapse slashes", "/blog//post", "/blog/post", true},
		{"collapse leading slashes", "//blog", "/blog", true},
		{"collapse trailing slashes", "/docs//", "/docs/", true},
		{"single dot", "/blog/./post", "/blog/post", true},
		{"trailing single dot", "/blog/./", "/blog/", true},
		{"double dot", "/blog/posts/../other", "/blog/other", true},
		{"double dot to root", "/blog/../", "/", true},
		{"double dot without slash", "/a/b/..", "/a", true},
		{"encoded slash kept", "/files/a%2Fb", "/files/a%2Fb", false},
		{"encoded dots kept", "/a/%2E%2E/b", "/a/%2E%2E/b", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Canonicalize(tt.input)
			if err != nil {
				t.Fatalf("Canonicalize(%q) error: %v", tt.input, err)
			}
			if got.Path != tt.wantPath {
				t.Errorf("Path = %q, want %q", got.Path, tt.wantPath)
			}
			if got.Changed != tt.wantChanged {
				t.Errorf("Changed = %v, want %v", got.Changed, tt.wantChanged)
			}
		})
	}
}

func TestCanonicalizeErrors(t *testing.T) {
	tests := []struct {
		input string
		want  error
	}{
		{`/a\b`, ErrBackslashInPath},
		{"/a%00b", ErrNullByteInPath},
		{"/a\x00b", ErrNullByteInPath},
		{"/a%GG", ErrInvalidPercentEscape},
		{"/a%2", ErrInvalidPercentEscape},
		{"/../secret", ErrPathEscapesRoot},
		{"/a/../../secret", ErrPathEscapesRoot},
	}

	for _, tt := range tests {
		_, err := Canonicalize(tt.input)
		if !errors.Is(err, tt.want) {
			t.Errorf("Canonicalize(%q) error = %v, want %v", tt.input, err, tt.want)
		}
	}
}
