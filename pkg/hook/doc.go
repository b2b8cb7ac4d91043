// Package hook attaches a stateful widget instance to a server-rendered element
// and keeps it in step with re-renders.
//
// A Controller receives four kinds of events from its host: Attach, Update (a
// re-render of the widget root), Dispatch (a command for the widget) and Detach.
// On every Update it decides, without diffing the tree, whether the live
// instance survives:
//
//	preserve-state set          → reconfigure (unless the component type changed)
//	component type changed      → rebuild
//	first render since attach   → no change, signature becomes the baseline
//	signature unchanged         → no change
//	signature changed           → rebuild
//
// A surviving instance gets the root's options payload merged in. A payload
// that fails to parse is reported and the instance is rebuilt instead.
//
// Failures never escape a Controller: they are reported to its diag.Sink and
// resolved by staying detached or rebuilding.
//
// A Controller is not safe for concurrent use. The host must deliver its
// events one at a time, each to completion.
package hook
