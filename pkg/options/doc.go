// Package options parses a widget's serialized options payload and merges it
// into a live instance.
//
// The payload is the JSON object carried by the root's options attribute.
// Merge is a shallow merge: top-level keys in the payload replace the
// instance's, keys the payload does not mention are kept. After merging, the
// instance's optional refresh hooks run in a fixed order:
//
//	collection.SetValues      only when the payload has "value"
//	UpdateValueDisplay        \ only after SetValues
//	SyncHiddenInputs          /
//	UpdateUI
//	UpdatePartsVisibility
//
// A payload that is not a JSON object is reported as a *ParseError and leaves
// the instance untouched. A hook that panics is reported as a *widget.HookError.
package options
