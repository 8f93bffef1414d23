package pathpattern

import (
	"strings"
)

// Node is an element of a parsed template: Text, Param, Wildcard or Group.
type Node interface {
	node()
}

// Text is literal text, already unescaped.
type Text struct {
	Value string
}

// Param captures text up to the next delimiter.
type Param struct {
	Name string

	// Index is the code point offset of the ':' in the template.
	Index int
}

// Wildcard captures one or more delimited segments.
type Wildcard struct {
	Name string

	// Index is the code point offset of the '*' in the template.
	Index int
}

// Group is an optional sub-sequence, matched entirely or not at all.
type Group struct {
	Nodes []Node
}

func (Text) node()     {}
func (Param) node()    {}
func (Wildcard) node() {}
func (Group) node()    {}

// Template is a parsed route template.
type Template struct {
	// Source is the template as written.
	Source string

	// Nodes is the root sequence.
	Nodes []Node
}

// String renders the template in canonical form. Literal text is
// escaped where needed and names are quoted when they are not plain
// identifiers.
func (t *Template) String() string {
	var b strings.Builder
	writeNodes(&b, t.Nodes)
	return b.String()
}

func writeNodes(b *strings.Builder, nodes []Node) {
	for i, n := range nodes {
		switch n := n.(type) {
		case Text:
			b.WriteString(Escape(n.Value))
		case Param:
			b.WriteByte(':')
			writeName(b, n.Name, continuesName(nodes, i+1))
		case Wildcard:
			b.WriteByte('*')
			writeName(b, n.Name, continuesName(nodes, i+1))
		case Group:
			b.WriteByte('{')
			writeNodes(b, n.Nodes)
			b.WriteByte('}')
		}
	}
}

// continuesName reports whether nodes[i] is text that would be read as
// part of a preceding unquoted name.
func continuesName(nodes []Node, i int) bool {
	if i >= len(nodes) {
		return false
	}
	text, ok := nodes[i].(Text)
	if !ok || text.Value == "" {
		return false
	}
	return isIDContinue([]rune(text.Value)[0])
}

func writeName(b *strings.Builder, name string, forceQuote bool) {
	if !forceQuote && isIdentifier(name) {
		b.WriteString(name)
		return
	}
	b.WriteByte('"')
	for _, r := range name {
		if r == '"' || r == '\\' {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	b.WriteByte('"')
}

// Escape escapes every character of text that has meaning in a
// template, so the result matches text literally.
func Escape(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		switch r {
		case '{', '}', '(', ')', '[', ']', '+', '?', '!', ':', '*', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
