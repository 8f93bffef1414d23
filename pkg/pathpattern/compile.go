package pathpattern

import (
	"fmt"
	"strings"

	"github.com/dlclark/regexp2"
)

// KeyKind distinguishes the two capture forms.
type KeyKind uint8

const (
	// KeyParam captures a single segment (":name").
	KeyParam KeyKind = iota
	// KeyWildcard captures one or more segments ("*name").
	KeyWildcard
)

// String returns "param" or "wildcard".
func (k KeyKind) String() string {
	if k == KeyWildcard {
		return "wildcard"
	}
	return "param"
}

// Key describes one capturing group of a compiled pattern. Keys are
// listed in capturing group order, so a name repeated across
// alternatives appears once per alternative.
type Key struct {
	Name string
	Kind KeyKind
}

// Compile parses template and compiles it into a Matcher.
func Compile(template string, opts ...Option) (*Matcher, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	tpl, err := Parse(template)
	if err != nil {
		return nil, err
	}

	c := &sequenceCompiler{template: template, delimiter: o.delimiter}
	var sources []string
	for seq := range tpl.Flatten() {
		src, err := c.compile(seq)
		if err != nil {
			return nil, err
		}
		sources = append(sources, src)
	}

	pattern := wrapPattern(sources, o)

	flags := regexp2.None
	if !o.sensitive {
		flags |= regexp2.IgnoreCase
	}
	re, err := regexp2.Compile(pattern, flags)
	if err != nil {
		return nil, fmt.Errorf("pathpattern: compiling %q as %q: %w", template, pattern, err)
	}
	if o.timeout > 0 {
		re.MatchTimeout = o.timeout
	}

	decoders := make([]decoder, len(c.keys))
	for i, key := range c.keys {
		decoders[i] = newDecoder(key.Kind, o)
	}

	return &Matcher{
		template: template,
		pattern:  pattern,
		re:       re,
		keys:     c.keys,
		decoders: decoders,
	}, nil
}

// MustCompile is like Compile but panics if the template is invalid.
func MustCompile(template string, opts ...Option) *Matcher {
	m, err := Compile(template, opts...)
	if err != nil {
		panic("pathpattern: MustCompile: " + err.Error())
	}
	return m
}

// wrapPattern joins the alternatives and anchors them.
func wrapPattern(sources []string, o options) string {
	delim := regexp2.Escape(o.delimiter)

	var b strings.Builder
	b.WriteString("^(?:")
	b.WriteString(strings.Join(sources, "|"))
	b.WriteString(")")
	if o.trailing {
		b.WriteString("(?:" + delim + `\z)?`)
	}
	if o.end {
		b.WriteString(`\z`)
	} else {
		b.WriteString("(?=" + delim + `|\z)`)
	}
	return b.String()
}

// sequenceCompiler turns flattened sequences into pattern fragments and
// collects their keys across all alternatives.
type sequenceCompiler struct {
	template  string
	delimiter string
	keys      []Key
}

// compile builds the fragment for one flattened sequence.
//
// backtrack holds the literal text since the previous capture. A
// capture is segment-safe when it is the first of its sequence or the
// delimiter occurs in backtrack; otherwise it must not run into the
// backtrack text, which would make the split between the two captures
// ambiguous.
func (c *sequenceCompiler) compile(seq []Node) (string, error) {
	var b strings.Builder
	backtrack := ""
	safe := true

	for _, n := range seq {
		switch n := n.(type) {
		case Text:
			b.WriteString(regexp2.Escape(n.Value))
			backtrack += n.Value
			if strings.Contains(n.Value, c.delimiter) {
				safe = true
			}

		case Param:
			if !safe && backtrack == "" {
				return "", c.missingText(n.Name, n.Index)
			}
			bound := backtrack
			if safe {
				bound = ""
			}
			b.WriteString("(" + c.negate(bound) + "+)")
			c.keys = append(c.keys, Key{Name: n.Name, Kind: KeyParam})
			backtrack, safe = "", false

		case Wildcard:
			if !safe && backtrack == "" {
				return "", c.missingText(n.Name, n.Index)
			}
			b.WriteString(`([\s\S]+)`)
			c.keys = append(c.keys, Key{Name: n.Name, Kind: KeyWildcard})
			backtrack, safe = "", false
		}
	}
	return b.String(), nil
}

func (c *sequenceCompiler) missingText(name string, index int) error {
	return newSyntaxError(ErrMissingText, c.template, index,
		"missing text after %q at %d", name, index)
}

// negate returns an atom matching one code point that is not the
// delimiter and does not start bound.
func (c *sequenceCompiler) negate(bound string) string {
	delim := []rune(c.delimiter)
	text := []rune(bound)

	if len(text) < 2 {
		if len(delim) < 2 {
			return "[^" + escapeClass(c.delimiter+bound) + "]"
		}
		if len(text) == 0 {
			return "(?:(?!" + regexp2.Escape(c.delimiter) + `)[\s\S])`
		}
		return "(?:(?!" + regexp2.Escape(c.delimiter) + ")[^" + escapeClass(bound) + "])"
	}
	if len(delim) < 2 {
		return "(?:(?!" + regexp2.Escape(bound) + ")[^" + escapeClass(c.delimiter) + "])"
	}
	return "(?:(?!" + regexp2.Escape(bound) + "|" + regexp2.Escape(c.delimiter) + `)[\s\S])`
}

// escapeClass escapes s for use inside a character class.
func escapeClass(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '\\', ']', '[', '^', '-':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
