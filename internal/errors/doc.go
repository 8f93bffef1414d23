// Package errors provides structured, actionable error messages for the
// styrene command.
//
// Each error has a code that maps to a short message and an
// explanation. Pattern errors additionally carry the offending template
// and the codepoint index of the problem, which Format renders with a
// caret:
//
//	err := errors.FromSyntax(compileErr)
//	fmt.Print(err.Format())
//	// Output:
//	// ERROR P005: Missing text between captures
//	//
//	//   /:a:b
//	//      ^
//	//
//	//   missing text after "b" at 3
//	//
//	//   Hint: Put literal text such as "/" or "-" between the captures
//
// # Error Codes
//
//   - P001-P005: template syntax
//   - C001-C003: configuration
//   - S001: server
package errors
