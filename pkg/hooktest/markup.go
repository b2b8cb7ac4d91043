package hooktest

import "github.com/vango-dev/widgethook/pkg/vdom"

// PartSpec describes one labeled part of a widget tree.
type PartSpec struct {
	Label    string
	Value    string
	HasValue bool
}

// P is a labeled part with a declared value.
func P(label, value string) PartSpec {
	return PartSpec{Label: label, Value: value, HasValue: true}
}

// Bare is a labeled part without a declared value.
func Bare(label string) PartSpec {
	return PartSpec{Label: label}
}

// Widget builds a widget root with the given id and component type (omitted
// when empty) and one child element per part, in order.
func Widget(id, componentType string, parts ...PartSpec) *vdom.VNode {
	args := []any{vdom.ID(id)}
	if componentType != "" {
		args = append(args, vdom.Component(componentType))
	}
	for _, p := range parts {
		args = append(args, partNode(p))
	}
	return vdom.Div(args...)
}

func partNode(p PartSpec) *vdom.VNode {
	args := []any{vdom.Part(p.Label)}
	if p.HasValue {
		args = append(args, vdom.PartValue(p.Value))
	}
	return vdom.Div(args...)
}

// WithAttr returns a copy of root with an extra attribute on the root element.
func WithAttr(root *vdom.VNode, a vdom.Attr) *vdom.VNode {
	clone := root.Clone()
	if clone.Props == nil {
		clone.Props = vdom.Props{}
	}
	clone.Props[a.Key] = a.Value
	return clone
}

// Preserved returns a copy of root carrying the preserve-state flag.
func Preserved(root *vdom.VNode) *vdom.VNode {
	return WithAttr(root, vdom.PreserveState())
}

// WithOptions returns a copy of root carrying a raw options payload.
func WithOptions(root *vdom.VNode, payload string) *vdom.VNode {
	return WithAttr(root, vdom.RawOptions(payload))
}
