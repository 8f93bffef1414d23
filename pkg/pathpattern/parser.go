package pathpattern

import (
	"strings"
)

// parser is a recursive-descent parser with one token of lookahead.
type parser struct {
	lx     *lexer
	peeked *token
}

// Parse parses a template into its node tree without compiling it.
func Parse(template string) (*Template, error) {
	p := &parser{lx: newLexer(template)}
	nodes, err := p.sequence(tokenEnd)
	if err != nil {
		return nil, err
	}
	return &Template{Source: template, Nodes: nodes}, nil
}

// peek returns the next token without consuming it.
func (p *parser) peek() (token, error) {
	if p.peeked == nil {
		tok, err := p.lx.next()
		if err != nil {
			return token{}, err
		}
		p.peeked = &tok
	}
	return *p.peeked, nil
}

// tryConsume consumes the next token if it has one of the given kinds.
func (p *parser) tryConsume(kinds ...tokenKind) (token, bool, error) {
	tok, err := p.peek()
	if err != nil {
		return token{}, false, err
	}
	for _, k := range kinds {
		if tok.kind == k {
			p.peeked = nil
			return tok, true, nil
		}
	}
	return token{}, false, nil
}

// consume consumes a token of the given kind or fails.
func (p *parser) consume(kind tokenKind) (token, error) {
	tok, ok, err := p.tryConsume(kind)
	if err != nil {
		return token{}, err
	}
	if !ok {
		next, _ := p.peek()
		return token{}, newSyntaxError(ErrUnexpectedToken, p.lx.template, next.index,
			"unexpected %s at %d, expected %s", next.describe(), next.index, kind)
	}
	return tok, nil
}

// text concatenates a run of literal tokens. Reserved characters have
// no syntax of their own yet and are read as literals.
func (p *parser) text() (string, error) {
	var b strings.Builder
	for {
		tok, ok, err := p.tryConsume(tokenChar, tokenEscaped, tokenReserved)
		if err != nil {
			return "", err
		}
		if !ok {
			return b.String(), nil
		}
		b.WriteString(tok.text)
	}
}

// sequence parses nodes until the end token. Groups recurse with "}"
// as their end token.
func (p *parser) sequence(end tokenKind) ([]Node, error) {
	var nodes []Node
	for {
		text, err := p.text()
		if err != nil {
			return nil, err
		}
		if text != "" {
			nodes = append(nodes, Text{Value: text})
		}

		tok, ok, err := p.tryConsume(tokenParam, tokenWildcard, tokenOpen)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}

		switch tok.kind {
		case tokenParam:
			nodes = append(nodes, Param{Name: tok.text, Index: tok.index})
		case tokenWildcard:
			nodes = append(nodes, Wildcard{Name: tok.text, Index: tok.index})
		case tokenOpen:
			children, err := p.sequence(tokenClose)
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, Group{Nodes: children})
		}
	}

	if _, err := p.consume(end); err != nil {
		return nil, err
	}
	return nodes, nil
}
