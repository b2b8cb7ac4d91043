// Package vdom provides the element tree that server-driven pages are rendered to.
//
// A VNode tree is what the host hands to a widget controller on mount and on every
// re-render. The controller only reads it: the component-type, preserve-state and
// options attributes on the root, and the labeled parts below it.
//
// # Element API
//
// Elements are created using variadic factory functions:
//
//	Div(ID("country"), Component("select"), Options(map[string]any{"value": "pt"}),
//	    Button(Part("trigger"), PartValue("closed"), Text("Portugal")),
//	    Ul(Part("list"), PartValue("hidden"),
//	        Li(Part("item"), PartValue("pt"), Text("Portugal")),
//	    ),
//	)
//
// # Queries
//
// Walk visits a tree depth-first in document order and QueryAll collects the
// elements carrying a given attribute. GetAttr reads an attribute in its
// rendered string form.
package vdom
