package diag

// Registered diagnostic codes.
const (
	CodeMissingComponent = "E101"
	CodeMalformedOptions = "E102"
	CodeUnknownComponent = "E103"
	CodeConstructFailed  = "E104"
	CodeHookPanic        = "E105"
	CodeMalformedCommand = "E110"
	CodeHostUnavailable  = "E111"
	CodeInvalidConfig    = "E120"
)

// template defines a registered diagnostic.
type template struct {
	Category   Category
	Message    string
	Suggestion string
}

// registry maps codes to their templates.
var registry = map[string]template{
	CodeMissingComponent: {
		Category:   CategoryAttach,
		Message:    "Component element is missing its component type",
		Suggestion: `Add a component attribute to the widget root, e.g. data-component="select"`,
	},
	CodeMalformedOptions: {
		Category:   CategoryOptions,
		Message:    "Error updating component options",
		Suggestion: "The options attribute must hold a JSON object; the widget was rebuilt instead",
	},
	CodeUnknownComponent: {
		Category:   CategoryRegistry,
		Message:    "Unknown component type",
		Suggestion: "Register a constructor for this type before mounting it",
	},
	CodeConstructFailed: {
		Category: CategoryRegistry,
		Message:  "Widget construction failed",
	},
	CodeHookPanic: {
		Category: CategoryHook,
		Message:  "Widget hook panicked",
	},
	CodeMalformedCommand: {
		Category:   CategoryCommand,
		Message:    "Malformed command envelope",
		Suggestion: `Send {"command": "...", "params": {...}, "target": "..."}`,
	},
	CodeHostUnavailable: {
		Category:   CategoryCommand,
		Message:    "Command could not be processed",
		Suggestion: "The host is closed or its event queue is full; retry later",
	},
	CodeInvalidConfig: {
		Category: CategoryConfig,
		Message:  "Invalid configuration",
	},
}

// Lookup reports the category and message registered for code.
func Lookup(code string) (Category, string, bool) {
	t, ok := registry[code]
	return t.Category, t.Message, ok
}
