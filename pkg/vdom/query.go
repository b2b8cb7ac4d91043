package vdom

import (
	"fmt"
	"strconv"
)

// GetAttr returns the rendered string form of an attribute.
// A missing or nil attribute reports false. Booleans render as "true"/"false".
func (v *VNode) GetAttr(name string) (string, bool) {
	if v == nil || v.Props == nil {
		return "", false
	}
	raw, ok := v.Props[name]
	if !ok || raw == nil {
		return "", false
	}
	switch val := raw.(type) {
	case string:
		return val, true
	case bool:
		return strconv.FormatBool(val), true
	case int:
		return strconv.Itoa(val), true
	case int64:
		return strconv.FormatInt(val, 10), true
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), true
	case fmt.Stringer:
		return val.String(), true
	default:
		return fmt.Sprint(val), true
	}
}

// ID returns the element's id attribute, or "" when it has none.
func (v *VNode) ID() string {
	id, _ := v.GetAttr("id")
	return id
}

// Walk visits root and its descendants depth-first in document order.
// Fragments are traversed transparently. Returning false from fn stops the walk.
func Walk(root *VNode, fn func(n *VNode) bool) bool {
	if root == nil {
		return true
	}
	if !fn(root) {
		return false
	}
	for _, child := range root.Children {
		if !Walk(child, fn) {
			return false
		}
	}
	return true
}

// QueryAll returns every descendant element of root that carries the attribute,
// in document order. The root itself is never included.
func QueryAll(root *VNode, name string) []*VNode {
	if root == nil {
		return nil
	}
	var found []*VNode
	for _, child := range root.Children {
		Walk(child, func(n *VNode) bool {
			if n.Kind == KindElement {
				if _, ok := n.GetAttr(name); ok {
					found = append(found, n)
				}
			}
			return true
		})
	}
	return found
}
