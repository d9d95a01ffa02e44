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
	// Pattern errors (W001-W009)

	"W001": {
		Category:   CategoryPattern,
		Message:    "Invalid route pattern",
		Suggestion: "Patterns are slash-separated segments: static text, :name parameters, or a terminal * wildcard.",
	},
	"W002": {
		Category:   CategoryPattern,
		Message:    "Duplicate view in route tree",
		Suggestion: "Give each route a distinct view id, or drop the duplicate-view check.",
	},

	// Manifest errors (W010-W019)

	"W010": {
		Category:   CategoryManifest,
		Message:    "Manifest declares no routes",
		Suggestion: "Add at least one [[route]] table (TOML) or routes entry (JSON).",
	},
	"W011": {
		Category:   CategoryManifest,
		Message:    "Incomplete route declaration",
		Suggestion: "Every route needs both a pattern and a view.",
	},
	"W012": {
		Category:   CategoryManifest,
		Message:    "Unknown manifest file extension",
		Suggestion: "Manifests are loaded by extension: use .toml or .json.",
	},
	"W013": {
		Category:   CategoryManifest,
		Message:    "Invalid history depth",
		Suggestion: "history_depth must be a positive integer; omit it to use the default.",
	},

	// Path errors (W020-W029)

	"W020": {
		Category:   CategoryPath,
		Message:    "Invalid navigation path",
		Suggestion: "Paths must be absolute, without backslashes, NUL bytes, or malformed percent escapes.",
	},
}
