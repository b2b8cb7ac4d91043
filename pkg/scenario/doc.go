// Package scenario replays recorded render sequences against a widget
// controller.
//
// A scenario is a YAML document naming a sequence of lifecycle events for one
// widget root. Each step may state the outcome it expects:
//
//	name: select gains an item
//	steps:
//	  - op: attach
//	    tree:
//	      tag: div
//	      attrs: {id: country, data-component: select}
//	      children:
//	        - {tag: div, attrs: {data-part: item, data-value: fr}}
//	    expect: attached
//	  - op: render
//	    expect: no_change
//	  - op: render
//	    tree: ...
//	    expect: rebuild(structure_changed)
//	  - op: command
//	    command: open
//	    expect: delivered
//	  - op: detach
//
// A render expectation is either a verdict (no_change, reconfigure, rebuild)
// or a full decision such as reconfigure(preserved). A render step without a
// tree re-renders the previous one.
//
// Scenarios are read from local files or from S3 (s3://bucket/key) and run by
// a Runner, which reports every step and every expectation mismatch.
package scenario
