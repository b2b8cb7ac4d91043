// Package standard provides stock widgets for the common interactive
// components: select, dropdown-menu, collapsible and tooltip.
//
// Register binds them to a widget.MapRegistry:
//
//	reg := widget.NewMapRegistry()
//	standard.Register(reg)
//
// Each widget reads its initial options from the root's options attribute when
// it is constructed. A payload that does not parse is logged and the widget
// starts from its defaults. The markup helpers (SelectOptions, DropdownOptions,
// ...) produce that attribute from a typed config.
package standard
