package vdom

// Text creates a text node.
func Text(content string) *VNode {
	return &VNode{Kind: KindText, Text: content}
}

// Fragment groups children without a wrapper element. Queries walk through
// fragments as if their children were attached to the fragment's parent.
func Fragment(children ...any) *VNode {
	node := createElement("", children)
	node.Kind = KindFragment
	node.Props = nil
	return node
}
