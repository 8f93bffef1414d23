package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category   Category
	Message    string
	Detail     string
	Suggestion string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Template Errors (P001-P099)
	// ============================================

	"P001": {
		Category:   CategoryPattern,
		Message:    "Unterminated quoted name",
		Detail:     `A quoted parameter name was opened with " but never closed.`,
		Suggestion: `Close the name with a matching ", e.g. :"user id"`,
	},
	"P002": {
		Category:   CategoryPattern,
		Message:    "Missing parameter name",
		Detail:     `":" and "*" must be followed by a name.`,
		Suggestion: `Add a name, or escape the character as \: or \*`,
	},
	"P003": {
		Category:   CategoryPattern,
		Message:    "Unexpected token",
		Detail:     "The template has an unbalanced brace.",
		Suggestion: `Escape literal braces as \{ and \}`,
	},
	"P004": {
		Category:   CategoryPattern,
		Message:    "Trailing escape",
		Detail:     `The template ends with a "\" that escapes nothing.`,
		Suggestion: `Remove the trailing "\" or write "\\" for a literal backslash`,
	},
	"P005": {
		Category:   CategoryPattern,
		Message:    "Missing text between captures",
		Detail:     "Two captures are adjacent in at least one alternative, so the split between them is ambiguous.",
		Suggestion: `Put literal text such as "/" or "-" between the captures`,
	},

	// ============================================
	// Configuration Errors (C001-C099)
	// ============================================

	"C001": {
		Category:   CategoryConfig,
		Message:    "Config file not found",
		Detail:     "No styrene.json or styrene.toml was found in the directory or its parents.",
		Suggestion: "Pass --config or run from the site directory",
	},
	"C002": {
		Category: CategoryConfig,
		Message:  "Config parse error",
		Detail:   "The config file is not valid JSON or TOML.",
	},
	"C003": {
		Category: CategoryConfig,
		Message:  "Invalid config value",
		Detail:   "A config field has a value outside its allowed range.",
	},

	// ============================================
	// Server Errors (S001-S099)
	// ============================================

	"S001": {
		Category:   CategoryServer,
		Message:    "Server failed",
		Detail:     "The HTTP server stopped with an error.",
		Suggestion: "Check that the port is free and the static source is reachable",
	},
}

// GetAllCodes returns all registered error codes.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}

// Register adds a new error template to the registry.
func Register(code string, template ErrorTemplate) {
	registry[code] = template
}
