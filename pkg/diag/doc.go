// Package diag provides category-tagged diagnostics for widget lifecycle failures.
//
// Every failure a widget controller contains (a missing component type, a
// malformed options payload, a registry that cannot build a widget, a hook that
// panicked) is described by a Diagnostic and handed to a Sink. Sinks are an
// observability channel only: reporting never changes what the controller does.
//
// # Error Codes
//
// Each diagnostic carries a code that maps to a category and a short message:
//
//	E101  attach    Component type missing
//	E102  options   Malformed options payload
//	E103  registry  Unknown component type
//	E104  registry  Widget construction failed
//	E105  hook      Widget hook panicked
//	E110  command   Malformed command envelope
//	E111  command   Host unavailable
//	E120  config    Invalid configuration
//
// # Usage
//
//	d := diag.New(diag.CodeMalformedOptions).
//	    WithElement("country").
//	    WithDetail(`payload: {"value":`).
//	    Wrap(err)
//	sink.Report(d)
package diag
