package vdom

import "strings"

// A creates an arbitrary attribute.
func A(key string, value any) Attr { return Attr{Key: key, Value: value} }

// Key sets the reconciliation key. It is kept on the node, not in Props.
func Key(key string) Attr { return A("key", key) }

// ID sets the id attribute. A widget root's id names its controller.
func ID(id string) Attr { return A("id", id) }

// Class sets the class attribute, joining multiple classes with spaces.
func Class(classes ...string) Attr { return A("class", strings.Join(classes, " ")) }

// Data creates a data-* attribute.
// Example: Data("part", "trigger") → data-part="trigger"
func Data(key, value string) Attr { return A("data-"+key, value) }
