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
	// Binding errors (E1xx)
	"E101": {
		Category: CategoryBinding,
		Message:  "Path does not resolve",
		Detail:   "A segment of the binding path does not exist on the value it indexes into. Watchers resolve such paths to undefined; writes through them fail.",
	},
	"E102": {
		Category: CategoryBinding,
		Message:  "Computed property is read-only",
		Detail:   "Computed properties are derived from other properties on every read and cannot be assigned.",
	},
	"E103": {
		Category: CategoryBinding,
		Message:  "Unknown property",
		Detail:   "The view model only exposes the top-level properties of its data and its computed properties.",
	},
	"E104": {
		Category: CategoryBinding,
		Message:  "Computed property shadows a data property",
		Detail:   "A computed property may not have the same name as a top-level data property.",
	},

	// Template errors (E2xx)
	"E201": {
		Category: CategoryTemplate,
		Message:  "Template could not be parsed",
		Detail:   "The template must be an HTML fragment.",
	},
	"E202": {
		Category: CategoryTemplate,
		Message:  "Empty binding expression",
		Detail:   "An interpolation or directive names no property path.",
	},
	"E203": {
		Category: CategoryTemplate,
		Message:  "Node has no two-way binding",
		Detail:   "Input was sent to a node that carries no v-model directive.",
	},

	// Data, config and CLI errors (E3xx)
	"E301": {
		Category: CategoryData,
		Message:  "Data file could not be decoded",
		Detail:   "Data files are YAML or JSON documents whose root is a mapping.",
	},
	"E302": {
		Category: CategoryConfig,
		Message:  "Invalid configuration",
	},
	"E303": {
		Category: CategoryCLI,
		Message:  "Invalid --set assignment",
		Detail:   "Assignments have the form path=value, where value is a YAML scalar or flow collection.",
	},
}

// GetAllCodes returns all registered error codes, sorted.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}
