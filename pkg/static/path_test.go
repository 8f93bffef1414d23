package static

import "testing"

func TestRelPath(t *testing.T) {
	tests := []struct {
		in   string
		name string
		dir  bool
		ok   bool
	}{
		{"", "", true, true},
		{"app.js", "app.js", false, true},
		{"docs/", "docs", true, true},
		{"docs/guide.txt", "docs/guide.txt", false, true},
		{"/etc/passwd", "", false, false},
		{"../secret", "", false, false},
		{"docs/./guide.txt", "", false, false},
		{"docs//guide.txt", "", false, false},
		{"docs\\guide.txt", "", false, false},
		{"a\x00b", "", false, false},
	}

	for _, tt := range tests {
		name, dir, ok := relPath(tt.in)
		if name != tt.name || dir != tt.dir || ok != tt.ok {
			t.Errorf("relPath(%q) = %q, %v, %v; want %q, %v, %v", tt.in, name, dir, ok, tt.name, tt.dir, tt.ok)
		}
	}
}

func TestStripPrefix(t *testing.T) {
	tests := []struct {
		path   string
		prefix string
		want   string
		ok     bool
	}{
		{"/app.js", "", "app.js", true},
		{"/app.js", "/", "app.js", true},
		{"/static/app.js", "/static", "app.js", true},
		{"/static/app.js", "/static/", "app.js", true},
		{"/static", "/static", "", true},
		{"/staticx/app.js", "/static", "", false},
	}
	for _, tt := range tests {
		got, ok := stripPrefix(tt.path, tt.prefix)
		if got != tt.want || ok != tt.ok {
			t.Errorf("stripPrefix(%q, %q) = %q, %v; want %q, %v", tt.path, tt.prefix, got, ok, tt.want, tt.ok)
		}
	}
}

func TestIsFingerprinted(t *testing.T) {
	tests := map[string]bool{
		"app.a1b2c3d4.css":     true,
		"js/app.DEADBEEF99.js": true,
		"app.css":              false,
		"app.v1.css":           false,
		"app.zzzzzzzz.css":     false,
	}
	for name, want := range tests {
		if got := isFingerprinted(name); got != want {
			t.Errorf("isFingerprinted(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestContentType(t *testing.T) {
	tests := map[string]string{
		"index.html":  "text/html; charset=utf-8",
		"APP.JS":      "text/javascript; charset=utf-8",
		"font.woff2":  "font/woff2",
		"module.wasm": "application/wasm",
		"README":      "application/octet-stream",
		"blob.zzqq":   "application/octet-stream",
	}
	for name, want := range tests {
		if got := ContentType(name); got != want {
			t.Errorf("ContentType(%q) = %q, want %q", name, got, want)
		}
	}
}
