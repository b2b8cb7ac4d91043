package vdom

import "encoding/json"

// WidgetAttributes names the attributes a widget root and its parts are read from.
type WidgetAttributes struct {
	// Component carries the component-type tag on the root.
	Component string
	// PreserveState opts a render out of structural rebuilds when "true".
	PreserveState string
	// Options carries the serialized configuration payload on the root.
	Options string
	// Part labels a structural sub-piece of the widget.
	Part string
	// Value is the declared value of a labeled part.
	Value string
}

// DefaultWidgetAttributes returns the data-* attribute names used by default.
func DefaultWidgetAttributes() WidgetAttributes {
	return WidgetAttributes{
		Component:     "data-component",
		PreserveState: "data-preserve-state",
		Options:       "data-options",
		Part:          "data-part",
		Value:         "data-value",
	}
}

// WithDefaults fills empty names from DefaultWidgetAttributes.
func (a WidgetAttributes) WithDefaults() WidgetAttributes {
	d := DefaultWidgetAttributes()
	if a.Component == "" {
		a.Component = d.Component
	}
	if a.PreserveState == "" {
		a.PreserveState = d.PreserveState
	}
	if a.Options == "" {
		a.Options = d.Options
	}
	if a.Part == "" {
		a.Part = d.Part
	}
	if a.Value == "" {
		a.Value = d.Value
	}
	return a
}

// Component marks an element as the root of a widget of the given type.
func Component(name string) Attr { return Data("component", name) }

// Part labels a structural sub-piece of a widget.
func Part(label string) Attr { return Data("part", label) }

// PartValue sets the declared value of a labeled part.
func PartValue(value string) Attr { return Data("value", value) }

// PreserveState asks the controller to keep the live instance across this render.
func PreserveState() Attr { return Data("preserve-state", "true") }

// Options serializes a configuration mapping into the options attribute.
// The mapping is marshaled immediately so the attribute always holds valid JSON.
func Options(config map[string]any) Attr {
	b, err := json.Marshal(config)
	if err != nil {
		return Attr{}
	}
	return Data("options", string(b))
}

// RawOptions sets the options attribute verbatim, without validation.
func RawOptions(payload string) Attr { return Data("options", payload) }
