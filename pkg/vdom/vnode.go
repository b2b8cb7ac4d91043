package vdom

// VKind is the node type discriminator.
type VKind uint8

const (
	KindElement  VKind = iota // <div>, <button>, etc.
	KindText                  // Plain text node
	KindFragment              // Grouping without wrapper
)

// String returns the string representation of the VKind.
func (k VKind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	case KindFragment:
		return "Fragment"
	default:
		return "Unknown"
	}
}

// VNode is a node of the rendered element tree.
type VNode struct {
	Kind     VKind    // Node type
	Tag      string   // Element tag name (e.g., "div")
	Props    Props    // Attributes
	Children []*VNode // Child nodes
	Key      string   // Reconciliation key
	Text     string   // For KindText
}

// Props holds attributes.
type Props map[string]any

// Attr represents a single attribute.
type Attr struct {
	Key   string
	Value any
}

// IsEmpty returns true if this is an empty/nil attribute.
func (a Attr) IsEmpty() bool {
	return a.Key == ""
}

// Clone returns a deep copy of the tree rooted at v.
// Prop values are copied shallowly.
func (v *VNode) Clone() *VNode {
	if v == nil {
		return nil
	}
	clone := &VNode{
		Kind: v.Kind,
		Tag:  v.Tag,
		Key:  v.Key,
		Text: v.Text,
	}
	if v.Props != nil {
		clone.Props = make(Props, len(v.Props))
		for k, val := range v.Props {
			clone.Props[k] = val
		}
	}
	if v.Children != nil {
		clone.Children = make([]*VNode, len(v.Children))
		for i, child := range v.Children {
			clone.Children[i] = child.Clone()
		}
	}
	return clone
}
