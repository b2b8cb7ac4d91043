package diag

import "fmt"

// Category represents the type of failure.
type Category string

const (
	CategoryAttach   Category = "attach"
	CategoryOptions  Category = "options"
	CategoryRegistry Category = "registry"
	CategoryHook     Category = "hook"
	CategoryCommand  Category = "command"
	CategoryConfig   Category = "config"
)

// Diagnostic is a structured, category-tagged failure report.
type Diagnostic struct {
	// Code is a unique diagnostic identifier (e.g., "E101").
	Code string

	// Category is the failure type.
	Category Category

	// Message is a short description.
	Message string

	// Detail is a longer explanation.
	Detail string

	// Suggestion is a hint on how to fix the markup or setup.
	Suggestion string

	// ElementID is the id of the widget root the failure belongs to.
	ElementID string

	// Component is the component type involved, if known.
	Component string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (d *Diagnostic) Error() string {
	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("%s: %s", d.Code, d.Message)
	}
	if d.Wrapped != nil {
		msg += ": " + d.Wrapped.Error()
	}
	return msg
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (d *Diagnostic) Unwrap() error {
	return d.Wrapped
}

// WithDetail adds a detailed explanation.
func (d *Diagnostic) WithDetail(detail string) *Diagnostic {
	d.Detail = detail
	return d
}

// WithSuggestion adds a fix suggestion.
func (d *Diagnostic) WithSuggestion(s string) *Diagnostic {
	d.Suggestion = s
	return d
}

// WithElement tags the diagnostic with the widget root's id.
func (d *Diagnostic) WithElement(id string) *Diagnostic {
	d.ElementID = id
	return d
}

// WithComponent tags the diagnostic with a component type.
func (d *Diagnostic) WithComponent(componentType string) *Diagnostic {
	d.Component = componentType
	return d
}

// Wrap wraps another error.
func (d *Diagnostic) Wrap(err error) *Diagnostic {
	d.Wrapped = err
	return d
}

// New creates a Diagnostic from a registered code.
func New(code string) *Diagnostic {
	template, ok := registry[code]
	if !ok {
		return &Diagnostic{
			Code:    code,
			Message: "Unknown diagnostic",
		}
	}
	return &Diagnostic{
		Code:       code,
		Category:   template.Category,
		Message:    template.Message,
		Suggestion: template.Suggestion,
	}
}

// Newf creates a Diagnostic with a formatted message and no code.
func Newf(category Category, format string, args ...any) *Diagnostic {
	return &Diagnostic{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps err in a Diagnostic with the given code.
// An err that already is a *Diagnostic is returned unchanged.
func FromError(err error, code string) *Diagnostic {
	if err == nil {
		return nil
	}
	if d, ok := err.(*Diagnostic); ok {
		return d
	}
	return New(code).Wrap(err)
}
