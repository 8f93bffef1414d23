package pathpattern

import (
	"net/url"
	"time"
	"unicode/utf8"
)

// DefaultDelimiter separates path segments.
const DefaultDelimiter = "/"

// DefaultMatchTimeout bounds a single Match call. Templates with several
// wildcards can otherwise backtrack for a long time on inputs that do
// not match.
const DefaultMatchTimeout = 100 * time.Millisecond

// Option configures Compile.
type Option func(*options)

type options struct {
	delimiter string
	sensitive bool
	trailing  bool
	end       bool
	decode    func(string) string
	timeout   time.Duration
}

func defaultOptions() options {
	return options{
		delimiter: DefaultDelimiter,
		sensitive: false,
		trailing:  true,
		end:       true,
		decode:    DecodeComponent,
		timeout:   DefaultMatchTimeout,
	}
}

// WithDelimiter sets the segment delimiter. An empty delimiter keeps
// the default.
func WithDelimiter(delimiter string) Option {
	return func(o *options) {
		if delimiter != "" {
			o.delimiter = delimiter
		}
	}
}

// WithSensitive makes literal text match case-sensitively.
func WithSensitive(sensitive bool) Option {
	return func(o *options) {
		o.sensitive = sensitive
	}
}

// WithTrailing controls whether one trailing delimiter is accepted
// after the path. Enabled by default.
func WithTrailing(trailing bool) Option {
	return func(o *options) {
		o.trailing = trailing
	}
}

// WithEnd controls whether the pattern must match the whole input.
// With end disabled the pattern matches a prefix that stops at a
// delimiter or at the end of the input.
func WithEnd(end bool) Option {
	return func(o *options) {
		o.end = end
	}
}

// WithMatchTimeout sets how long a single Match may run before it
// reports no match. Zero or a negative value removes the bound.
func WithMatchTimeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = d
	}
}

// WithDecode sets the function applied to every captured value (and to
// every segment of a wildcard).
func WithDecode(decode func(string) string) Option {
	return func(o *options) {
		o.decode = decode
	}
}

// WithoutDecode returns captured values exactly as they appear in the
// input.
func WithoutDecode() Option {
	return WithDecode(nil)
}

// DecodeComponent percent-decodes s. Input with a malformed escape, or
// whose escapes do not decode to valid UTF-8, is returned unchanged.
func DecodeComponent(s string) string {
	decoded, err := url.PathUnescape(s)
	if err != nil || !utf8.ValidString(decoded) {
		return s
	}
	return decoded
}
