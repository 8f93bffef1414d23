package pathpattern

// lexer produces template tokens one at a time. It works on code points
// so names and error offsets never split a multi-byte character.
type lexer struct {
	template string
	chars    []rune
	pos      int
}

func newLexer(template string) *lexer {
	return &lexer{
		template: template,
		chars:    []rune(template),
	}
}

// next returns the next token. After the END token has been returned it
// keeps returning END.
func (lx *lexer) next() (token, error) {
	if lx.pos >= len(lx.chars) {
		return token{kind: tokenEnd, index: len(lx.chars)}, nil
	}

	start := lx.pos
	r := lx.chars[lx.pos]
	lx.pos++

	switch {
	case r == '{':
		return token{kind: tokenOpen, index: start, text: "{"}, nil
	case r == '}':
		return token{kind: tokenClose, index: start, text: "}"}, nil
	case isReserved(r):
		return token{kind: tokenReserved, index: start, text: string(r)}, nil
	case r == '\\':
		if lx.pos >= len(lx.chars) {
			return token{}, newSyntaxError(ErrTrailingEscape, lx.template, start,
				"unexpected end after escape at %d", start)
		}
		c := lx.chars[lx.pos]
		lx.pos++
		return token{kind: tokenEscaped, index: start, text: string(c)}, nil
	case r == ':' || r == '*':
		name, err := lx.name()
		if err != nil {
			return token{}, err
		}
		kind := tokenParam
		if r == '*' {
			kind = tokenWildcard
		}
		return token{kind: kind, index: start, text: name}, nil
	default:
		return token{kind: tokenChar, index: start, text: string(r)}, nil
	}
}

// name reads a capture name following ':' or '*'.
func (lx *lexer) name() (string, error) {
	var value []rune

	switch {
	case lx.pos < len(lx.chars) && isIDStart(lx.chars[lx.pos]):
		value = append(value, lx.chars[lx.pos])
		lx.pos++
		for lx.pos < len(lx.chars) && isIDContinue(lx.chars[lx.pos]) {
			value = append(value, lx.chars[lx.pos])
			lx.pos++
		}

	case lx.pos < len(lx.chars) && lx.chars[lx.pos] == '"':
		quote := lx.pos
		lx.pos++
		closed := false
		for lx.pos < len(lx.chars) {
			c := lx.chars[lx.pos]
			lx.pos++
			if c == '"' {
				closed = true
				break
			}
			if c == '\\' {
				if lx.pos >= len(lx.chars) {
					break
				}
				c = lx.chars[lx.pos]
				lx.pos++
			}
			value = append(value, c)
		}
		if !closed {
			return "", newSyntaxError(ErrUnterminatedQuote, lx.template, quote,
				"unterminated quote at %d", quote)
		}
	}

	if len(value) == 0 {
		return "", newSyntaxError(ErrMissingName, lx.template, lx.pos,
			"missing parameter name at %d", lx.pos)
	}
	return string(value), nil
}
