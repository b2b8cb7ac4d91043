// Package fingerprint derives a cheap structural signature from a widget's
// element tree: the labeled parts below the root and their declared values,
// sorted by label so reordering siblings does not count as a change.
package fingerprint

import (
	"sort"
	"strings"

	"github.com/vango-dev/widgethook/pkg/vdom"
)

// Part is one labeled sub-piece of a widget.
type Part struct {
	Label string
	// Value is the declared value; only meaningful when HasValue is true.
	Value    string
	HasValue bool
}

// String renders the part as label=value, or just label when it has no value.
func (p Part) String() string {
	if !p.HasValue {
		return p.Label
	}
	return p.Label + "=" + p.Value
}

// Signature is the label-sorted list of parts found under a root.
type Signature []Part

// Extract computes the signature of root using the default attribute names.
func Extract(root *vdom.VNode) Signature {
	return ExtractWith(root, vdom.DefaultWidgetAttributes())
}

// ExtractWith computes the signature of root reading the part label and value
// from the given attribute names. The root itself is never a part.
func ExtractWith(root *vdom.VNode, attrs vdom.WidgetAttributes) Signature {
	attrs = attrs.WithDefaults()
	nodes := vdom.QueryAll(root, attrs.Part)
	sig := make(Signature, 0, len(nodes))
	for _, n := range nodes {
		label, _ := n.GetAttr(attrs.Part)
		value, ok := n.GetAttr(attrs.Value)
		sig = append(sig, Part{Label: label, Value: value, HasValue: ok})
	}
	// Stable so parts sharing a label keep document order.
	sort.SliceStable(sig, func(i, j int) bool {
		return sig[i].Label < sig[j].Label
	})
	return sig
}

// Equal reports whether both signatures hold the same parts in the same order.
// A part without a value never equals a part with an empty value.
func (s Signature) Equal(other Signature) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// String renders the signature for logs, e.g. "[list=hidden trigger=closed]".
func (s Signature) String() string {
	parts := make([]string, len(s))
	for i, p := range s {
		parts[i] = p.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}
