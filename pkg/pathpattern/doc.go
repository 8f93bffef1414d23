// Package pathpattern compiles route templates into path matchers.
//
// A template is literal text mixed with captures and optional groups:
//
//	/users/:id              → one path segment named "id"
//	/users/:"user id"       → quoted names may contain any character
//	/files/*path            → one or more segments, decoded as []string
//	/posts{/:slug}          → the braced part is optional as a whole
//	/price\:usd             → a backslash escapes the next character
//
// The characters ( ) [ ] + ? ! are reserved by the tokenizer but are
// matched as ordinary literal text.
//
// # Compilation
//
// Compile runs the template through four stages: tokenizer, parser,
// group flattener and sequence compiler. Every optional group doubles
// the number of concrete alternatives; alternatives that include a
// group are tried before those that omit it, so the most specific
// alternative wins.
//
// Two captures must be separated by literal text, and unless that text
// contains the delimiter it bounds the following capture:
//
//	/:from-:to     → ok, "to" cannot contain "-"
//	/:a:b          → error: missing text after "b"
//
// All syntax errors are reported by Compile as *SyntaxError. Matching
// never fails; a path that does not fit is simply not a match.
//
// # Usage
//
//	m, err := pathpattern.Compile("/projects/:id{/*rest}")
//	if err != nil {
//	    return err
//	}
//
//	res, ok := m.Match("/projects/42/files/a%20b")
//	// ok == true
//	// res.Params["id"] == "42"
//	// res.Params["rest"] == []string{"files", "a b"}
//
// A Matcher is immutable and safe for concurrent use.
package pathpattern
