package pathpattern

import (
	"strings"

	"github.com/dlclark/regexp2"
)

// Matcher tests paths against a compiled template. It is immutable and
// safe for concurrent use by multiple goroutines.
type Matcher struct {
	template string
	pattern  string
	re       *regexp2.Regexp
	keys     []Key
	decoders []decoder
}

// decoder turns a captured run into its parameter value.
type decoder func(raw string) any

func newDecoder(kind KeyKind, o options) decoder {
	decode := o.decode
	if decode == nil {
		decode = func(s string) string { return s }
	}
	if kind == KeyWildcard {
		delimiter := o.delimiter
		return func(raw string) any {
			parts := strings.Split(raw, delimiter)
			for i, p := range parts {
				parts[i] = decode(p)
			}
			return parts
		}
	}
	return func(raw string) any {
		return decode(raw)
	}
}

// MatchResult is a successful match.
type MatchResult struct {
	// Path is the whole matched input, including an accepted trailing
	// delimiter.
	Path string

	// Params holds one entry per capture that took part in the match.
	Params Params
}

// Params maps capture names to values: a string for a param, a
// []string for a wildcard. Captures inside an omitted group are absent.
type Params map[string]any

// Get returns a param value. Wildcard values are joined with "/".
func (p Params) Get(name string) (string, bool) {
	switch v := p[name].(type) {
	case string:
		return v, true
	case []string:
		return strings.Join(v, "/"), true
	}
	return "", false
}

// Segments returns a wildcard value. A param value is returned as a
// single segment.
func (p Params) Segments(name string) ([]string, bool) {
	switch v := p[name].(type) {
	case []string:
		return v, true
	case string:
		return []string{v}, true
	}
	return nil, false
}

// Match reports whether input matches and returns the decoded captures.
// A match that exceeds the match timeout reports false.
func (m *Matcher) Match(input string) (*MatchResult, bool) {
	res, err := m.re.FindStringMatch(input)
	if err != nil || res == nil {
		return nil, false
	}

	params := make(Params, len(m.keys))
	for i, key := range m.keys {
		g := res.GroupByNumber(i + 1)
		if g == nil || len(g.Captures) == 0 {
			continue
		}
		params[key.Name] = m.decoders[i](g.String())
	}

	return &MatchResult{Path: res.String(), Params: params}, true
}

// Template returns the template the matcher was compiled from.
func (m *Matcher) Template() string {
	return m.template
}

// Pattern returns the generated regular expression source.
func (m *Matcher) Pattern() string {
	return m.pattern
}

// Keys returns the capture keys in capturing group order.
func (m *Matcher) Keys() []Key {
	keys := make([]Key, len(m.keys))
	copy(keys, m.keys)
	return keys
}
