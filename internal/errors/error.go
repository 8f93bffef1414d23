package errors

import (
	stderrors "errors"
	"fmt"

	"github.com/TheOfficialSeb/Styrene/pkg/pathpattern"
)

// Category represents the type of error.
type Category string

const (
	CategoryPattern Category = "pattern"
	CategoryConfig  Category = "config"
	CategoryServer  Category = "server"
	CategoryCLI     Category = "cli"
)

// StyreneError is a structured error with an optional template position
// and a fix suggestion.
type StyreneError struct {
	// Code is a unique error identifier (e.g., "P001").
	Code string

	// Category is the error type (pattern, config, etc.).
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Template is the path template the error refers to, if any.
	Template string

	// Index is the codepoint index into Template, or -1.
	Index int

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *StyreneError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return e.Message
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *StyreneError) Unwrap() error {
	return e.Wrapped
}

// WithTemplate points the error at a position in a template.
func (e *StyreneError) WithTemplate(template string, index int) *StyreneError {
	e.Template = template
	e.Index = index
	return e
}

// WithSuggestion adds a fix suggestion to the error.
func (e *StyreneError) WithSuggestion(s string) *StyreneError {
	e.Suggestion = s
	return e
}

// WithDetail adds a detailed explanation to the error.
func (e *StyreneError) WithDetail(d string) *StyreneError {
	e.Detail = d
	return e
}

// Wrap wraps another error.
func (e *StyreneError) Wrap(err error) *StyreneError {
	e.Wrapped = err
	return e
}

// New creates a StyreneError from a registered error code.
func New(code string) *StyreneError {
	template, ok := registry[code]
	if !ok {
		return &StyreneError{
			Code:    code,
			Message: "Unknown error",
			Index:   -1,
		}
	}
	return &StyreneError{
		Code:       code,
		Category:   template.Category,
		Message:    template.Message,
		Detail:     template.Detail,
		Suggestion: template.Suggestion,
		Index:      -1,
	}
}

// Newf creates a new StyreneError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *StyreneError {
	return &StyreneError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
		Index:    -1,
	}
}

// FromError wraps a standard error in a StyreneError. Errors that are
// already structured, or that wrap a template syntax error, keep their
// own code.
func FromError(err error, code string) *StyreneError {
	if err == nil {
		return nil
	}
	var se *StyreneError
	if stderrors.As(err, &se) {
		return se
	}
	if pe := FromSyntax(err); pe != nil {
		return pe
	}
	return New(code).Wrap(err)
}

// syntaxCodes maps template syntax error kinds to codes.
var syntaxCodes = []struct {
	kind error
	code string
}{
	{pathpattern.ErrUnterminatedQuote, "P001"},
	{pathpattern.ErrMissingName, "P002"},
	{pathpattern.ErrUnexpectedToken, "P003"},
	{pathpattern.ErrTrailingEscape, "P004"},
	{pathpattern.ErrMissingText, "P005"},
}

// FromSyntax converts a template syntax error into a coded error
// pointing at the offending codepoint. It returns nil if err does not
// wrap a *pathpattern.SyntaxError.
func FromSyntax(err error) *StyreneError {
	var se *pathpattern.SyntaxError
	if !stderrors.As(err, &se) {
		return nil
	}

	code := "P003"
	for _, sc := range syntaxCodes {
		if stderrors.Is(se.Kind, sc.kind) {
			code = sc.code
			break
		}
	}

	return New(code).
		WithDetail(se.Message).
		WithTemplate(se.Template, se.Index).
		Wrap(err)
}
