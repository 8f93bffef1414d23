package pathpattern

import (
	"unicode"
)

// tokenKind is the category of a template token.
type tokenKind uint8

const (
	// tokenChar is a code point without syntactic meaning.
	tokenChar tokenKind = iota
	// tokenEscaped is a code point escaped with a backslash.
	tokenEscaped
	// tokenParam is ":name" or `:"quoted name"`.
	tokenParam
	// tokenWildcard is "*name" or `*"quoted name"`.
	tokenWildcard
	// tokenOpen is "{".
	tokenOpen
	// tokenClose is "}".
	tokenClose
	// tokenReserved is one of ( ) [ ] + ? !, currently matched literally.
	tokenReserved
	// tokenEnd marks the end of the template.
	tokenEnd
)

// String returns the name used for the kind in error messages.
func (k tokenKind) String() string {
	switch k {
	case tokenChar:
		return "CHAR"
	case tokenEscaped:
		return "ESCAPED"
	case tokenParam:
		return "PARAM"
	case tokenWildcard:
		return "WILDCARD"
	case tokenOpen:
		return "{"
	case tokenClose:
		return "}"
	case tokenReserved:
		return "RESERVED"
	case tokenEnd:
		return "END"
	default:
		return "UNKNOWN"
	}
}

// token is a single lexical unit of a template.
type token struct {
	kind tokenKind

	// index is the code point offset of the token in the template.
	index int

	// text is the literal code point, or the capture name.
	text string
}

// describe names the token for "unexpected" errors. Reserved tokens
// report their own character.
func (t token) describe() string {
	if t.kind == tokenReserved {
		return t.text
	}
	return t.kind.String()
}

// isReserved reports whether r is a structural character with no
// assigned syntax yet.
func isReserved(r rune) bool {
	switch r {
	case '(', ')', '[', ']', '+', '?', '!':
		return true
	}
	return false
}

const (
	zwnj = '\u200c'
	zwj  = '\u200d'
)

// isIDStart reports whether r may begin an unquoted name.
func isIDStart(r rune) bool {
	if r == '$' || r == '_' {
		return true
	}
	if unicode.In(r, unicode.Pattern_Syntax, unicode.Pattern_White_Space) {
		return false
	}
	return unicode.In(r, unicode.L, unicode.Nl, unicode.Other_ID_Start)
}

// isIDContinue reports whether r may continue an unquoted name.
func isIDContinue(r rune) bool {
	if r == '$' || r == zwnj || r == zwj {
		return true
	}
	if isIDStart(r) {
		return true
	}
	if unicode.In(r, unicode.Pattern_Syntax, unicode.Pattern_White_Space) {
		return false
	}
	return unicode.In(r, unicode.Mn, unicode.Mc, unicode.Nd, unicode.Pc, unicode.Other_ID_Continue)
}

// isIdentifier reports whether name can be written without quotes.
func isIdentifier(name string) bool {
	for i, r := range []rune(name) {
		if i == 0 && !isIDStart(r) {
			return false
		}
		if i > 0 && !isIDContinue(r) {
			return false
		}
	}
	return name != ""
}
