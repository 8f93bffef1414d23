package pathpattern

import (
	"errors"
	"fmt"
)

// Syntax error kinds. A *SyntaxError unwraps to one of these, so callers
// can test with errors.Is.
var (
	ErrUnterminatedQuote = errors.New("unterminated quote")
	ErrMissingName       = errors.New("missing parameter name")
	ErrUnexpectedToken   = errors.New("unexpected token")
	ErrTrailingEscape    = errors.New("unexpected end after escape")
	ErrMissingText       = errors.New("missing text between captures")
)

// SyntaxError reports a template that cannot be compiled.
type SyntaxError struct {
	// Kind is one of the Err* sentinels above.
	Kind error

	// Message describes the problem, including the code point index.
	Message string

	// Index is the code point offset in Template where the problem was found.
	Index int

	// Template is the template being compiled.
	Template string
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s in template %q", e.Message, e.Template)
}

// Unwrap returns the error kind for errors.Is support.
func (e *SyntaxError) Unwrap() error {
	return e.Kind
}

func newSyntaxError(kind error, template string, index int, format string, args ...any) *SyntaxError {
	return &SyntaxError{
		Kind:     kind,
		Message:  fmt.Sprintf(format, args...),
		Index:    index,
		Template: template,
	}
}
