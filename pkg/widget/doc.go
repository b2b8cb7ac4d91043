// Package widget defines the contract between a widget controller and the widgets
// it manages.
//
// A widget instance only has to be destroyable. Everything else is an optional
// capability that the controller discovers with a type assertion each time it
// needs it:
//
//	Configurable             live options mapping
//	CommandHandler           receives forwarded commands
//	UIRefresher              refreshes after an options merge
//	PartsVisibilityRefresher re-evaluates which parts are shown
//	ValueCollectionHolder    exposes the selected-value collection
//	ValueDisplaySyncer       redraws the visible value
//	HiddenInputSyncer        mirrors the value into form inputs
//	PositionAware            owns a positioned overlay element
//	Opener                   reports whether the overlay is open
//	ElementBinder            sees the new root when kept across a re-render
//
// Instances are created by a Registry from a component-type string and the
// widget's root element.
package widget
