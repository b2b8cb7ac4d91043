package standard

import (
	"github.com/vango-dev/widgethook/pkg/vdom"
	"github.com/vango-dev/widgethook/pkg/widget"
)

// TypeDropdownMenu is the component type of DropdownMenu.
const TypeDropdownMenu = "dropdown-menu"

// DropdownConfig configures the dropdown-menu widget.
type DropdownConfig struct {
	CloseOnEscape bool   `json:"closeOnEscape,omitempty"`
	CloseOnSelect bool   `json:"closeOnSelect,omitempty"`
	Side          string `json:"side,omitempty"`
	Align         string `json:"align,omitempty"`
}

// DropdownOptions creates the options attribute for a dropdown-menu root.
func DropdownOptions(config DropdownConfig) vdom.Attr {
	m := map[string]any{
		"closeOnEscape": config.CloseOnEscape,
		"closeOnSelect": config.CloseOnSelect,
	}
	if config.Side != "" {
		m["side"] = config.Side
	}
	if config.Align != "" {
		m["align"] = config.Align
	}
	return vdom.Options(m)
}

// DropdownMenu is a menu of actions in a popover.
//
// Parts: "trigger", "content", and one "item" per action.
type DropdownMenu struct {
	base

	popover  *overlay
	open     bool
	selected string
}

// NewDropdownMenu builds a DropdownMenu for el.
func NewDropdownMenu(el *vdom.VNode, host widget.Host) (*DropdownMenu, error) {
	d := &DropdownMenu{}
	d.init(TypeDropdownMenu, el, host, widget.Options{
		"closeOnEscape": true,
		"closeOnSelect": true,
		"side":          "bottom",
		"align":         "start",
	})
	d.popover = newOverlay(d.opts.String("side"), d.opts.String("align"))
	return d, nil
}

// UpdateUI implements widget.UIRefresher.
func (d *DropdownMenu) UpdateUI() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.popover.configure(d.opts.String("side"), d.opts.String("align"))
}

// HandleCommand implements widget.CommandHandler.
//
// Commands: open, close, toggle, escape, select {value}.
func (d *DropdownMenu) HandleCommand(name string, params map[string]any) {
	d.mu.Lock()
	defer d.mu.Unlock()

	switch name {
	case "open", "close", "toggle":
		d.open = nextOpen(name, d.open, false)
	case "escape":
		if d.opts.Bool("closeOnEscape") {
			d.open = false
		}
	case "select":
		value, _ := params["value"].(string)
		if !d.hasItem(value) {
			d.logger.Debug("select of unknown item", "value", value)
			return
		}
		d.selected = value
		if d.opts.Bool("closeOnSelect") {
			d.open = false
		}
	default:
		d.logger.Debug("unknown command", "command", name)
	}
}

// hasItem reports whether an item part declares value. Must be called with mu
// held.
func (d *DropdownMenu) hasItem(value string) bool {
	for _, v := range d.partValues("item") {
		if v == value {
			return true
		}
	}
	return false
}

// IsOpen implements widget.Opener.
func (d *DropdownMenu) IsOpen() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.open
}

// PositionedElement implements widget.PositionAware.
func (d *DropdownMenu) PositionedElement() widget.Positioner {
	return d.popover
}

// Selected returns the value of the last selected item.
func (d *DropdownMenu) Selected() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.selected
}

// Placement returns the popover placement.
func (d *DropdownMenu) Placement() string { return d.popover.Placement() }

// Repositions returns how many times the popover was repositioned.
func (d *DropdownMenu) Repositions() int { return d.popover.Updates() }
