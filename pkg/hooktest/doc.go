// Package hooktest provides fakes for testing code that drives widget
// controllers: an instance implementing every optional capability and
// recording each call, a registry that records what it built, and builders
// for widget markup.
//
// Example:
//
//	reg := hooktest.NewRegistry()
//	root := hooktest.Widget("country", "select",
//	    hooktest.P("trigger", "closed"),
//	    hooktest.P("list", "hidden"),
//	)
//	c := hook.New(root, reg)
//	c.Attach()
//	inst := reg.Last()
package hooktest
