package errors

import "sort"

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// Tree files (E100-E199)
	"E100": {
		Category: CategoryTree,
		Message:  "Tree file not found",
		Detail:   "The tree file given on the command line does not exist or cannot be read.",
	},
	"E101": {
		Category: CategoryTree,
		Message:  "Tree file is not valid YAML or JSON",
		Detail:   "The document could not be decoded. Field names must be one of sel, key, ns, text, attrs, props, class, style, dataset and children.",
	},
	"E102": {
		Category: CategoryTree,
		Message:  "Invalid tree structure",
		Detail:   "The document decoded but describes a tree that cannot be rendered, such as an element with both text and children.",
	},
	"E103": {
		Category: CategoryTree,
		Message:  "HTML input has no element",
		Detail:   "Conversion needs at least one element at the top level of the HTML input.",
	},

	// Configuration (E200-E299)
	"E200": {
		Category: CategoryConfig,
		Message:  "Invalid vtree.json",
		Detail:   "The configuration file exists but is not valid JSON.",
	},
	"E201": {
		Category: CategoryConfig,
		Message:  "Unknown module",
		Detail:   "The modules list names a module vtree does not provide.",
	},
	"E202": {
		Category: CategoryConfig,
		Message:  "Invalid configuration value",
		Detail:   "A configuration field has a value outside its allowed set.",
	},
	"E203": {
		Category: CategoryConfig,
		Message:  "Configuration file not found",
	},

	// Command line (E300-E399)
	"E300": {
		Category: CategoryCLI,
		Message:  "Invalid arguments",
	},
	"E301": {
		Category: CategoryCLI,
		Message:  "Cannot write output",
	},

	// Live server (E400-E499)
	"E400": {
		Category: CategoryLive,
		Message:  "Cannot start live server",
		Detail:   "The listen address may be in use or not permitted.",
	},
	"E401": {
		Category: CategoryLive,
		Message:  "Cannot watch tree file",
	},
	"E402": {
		Category: CategoryLive,
		Message:  "Tree file reload failed",
		Detail:   "The previous tree stays on screen until the file is fixed.",
	},
}

// GetAllCodes returns all registered error codes in order.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// GetTemplate returns the template for a code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}
