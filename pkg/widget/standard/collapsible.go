package standard

import (
	"github.com/vango-dev/widgethook/pkg/vdom"
	"github.com/vango-dev/widgethook/pkg/widget"
)

// TypeCollapsible is the component type of Collapsible.
const TypeCollapsible = "collapsible"

// CollapsibleConfig configures the collapsible widget.
type CollapsibleConfig struct {
	Open     bool `json:"open,omitempty"`
	Disabled bool `json:"disabled,omitempty"`
}

// CollapsibleOptions creates the options attribute for a collapsible root.
func CollapsibleOptions(config CollapsibleConfig) vdom.Attr {
	return vdom.Options(map[string]any{
		"open":     config.Open,
		"disabled": config.Disabled,
	})
}

// Collapsible shows or hides its "content" parts. Every other part is always
// visible.
type Collapsible struct {
	base

	open     bool
	disabled bool
	visible  map[string]bool
}

// NewCollapsible builds a Collapsible for el.
func NewCollapsible(el *vdom.VNode, host widget.Host) (*Collapsible, error) {
	c := &Collapsible{}
	c.init(TypeCollapsible, el, host, widget.Options{
		"open":     false,
		"disabled": false,
	})
	c.open = c.opts.Bool("open")
	c.disabled = c.opts.Bool("disabled")
	c.UpdatePartsVisibility()
	return c, nil
}

// UpdateUI implements widget.UIRefresher. The open option, when present,
// overrides the current state.
func (c *Collapsible) UpdateUI() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.disabled = c.opts.Bool("disabled")
	if _, ok := c.opts["open"]; ok {
		c.open = c.opts.Bool("open")
	}
}

// UpdatePartsVisibility implements widget.PartsVisibilityRefresher.
func (c *Collapsible) UpdatePartsVisibility() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.visible = make(map[string]bool)
	for _, n := range vdom.QueryAll(c.el, c.attrs.Part) {
		label, _ := n.GetAttr(c.attrs.Part)
		c.visible[label] = label != "content" || c.open
	}
}

// HandleCommand implements widget.CommandHandler.
//
// Commands: open, close, toggle. A disabled collapsible ignores them.
func (c *Collapsible) HandleCommand(name string, params map[string]any) {
	c.mu.Lock()
	if c.disabled {
		c.mu.Unlock()
		return
	}
	switch name {
	case "open", "close", "toggle":
		c.open = nextOpen(name, c.open, false)
		c.opts["open"] = c.open
	default:
		c.mu.Unlock()
		c.logger.Debug("unknown command", "command", name)
		return
	}
	c.mu.Unlock()
	c.UpdatePartsVisibility()
}

// IsOpen implements widget.Opener.
func (c *Collapsible) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.open
}

// Visible reports whether parts labeled label are shown.
func (c *Collapsible) Visible(label string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.visible[label]
}
