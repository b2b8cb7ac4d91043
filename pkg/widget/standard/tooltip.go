package standard

import (
	"time"

	"github.com/vango-dev/widgethook/pkg/vdom"
	"github.com/vango-dev/widgethook/pkg/widget"
)

// TypeTooltip is the component type of Tooltip.
const TypeTooltip = "tooltip"

// DefaultTooltipDelay is the show delay used when none is configured.
const DefaultTooltipDelay = 700 * time.Millisecond

// TooltipConfig configures the tooltip widget.
type TooltipConfig struct {
	Content string `json:"content,omitempty"`
	Side    string `json:"side,omitempty"`
	Delay   int    `json:"delay,omitempty"` // milliseconds
}

// TooltipOptions creates the options attribute for a tooltip root.
func TooltipOptions(config TooltipConfig) vdom.Attr {
	m := map[string]any{
		"content": config.Content,
	}
	if config.Side != "" {
		m["side"] = config.Side
	}
	if config.Delay > 0 {
		m["delay"] = config.Delay
	}
	return vdom.Options(m)
}

// Tooltip is a positioned hint shown next to its trigger.
type Tooltip struct {
	base

	popover *overlay
	open    bool
}

// NewTooltip builds a Tooltip for el.
func NewTooltip(el *vdom.VNode, host widget.Host) (*Tooltip, error) {
	t := &Tooltip{}
	t.init(TypeTooltip, el, host, widget.Options{
		"content": "",
		"side":    "top",
		"delay":   int(DefaultTooltipDelay / time.Millisecond),
	})
	t.popover = newOverlay(t.opts.String("side"), "")
	return t, nil
}

// UpdateUI implements widget.UIRefresher.
func (t *Tooltip) UpdateUI() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.popover.configure(t.opts.String("side"), "")
}

// HandleCommand implements widget.CommandHandler.
//
// Commands: show, hide, toggle.
func (t *Tooltip) HandleCommand(name string, params map[string]any) {
	t.mu.Lock()
	defer t.mu.Unlock()
	switch name {
	case "show", "hide", "toggle":
		t.open = nextOpen(name, t.open, false)
	default:
		t.logger.Debug("unknown command", "command", name)
	}
}

// IsOpen implements widget.Opener.
func (t *Tooltip) IsOpen() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.open
}

// PositionedElement implements widget.PositionAware.
func (t *Tooltip) PositionedElement() widget.Positioner {
	return t.popover
}

// Delay returns the configured show delay.
func (t *Tooltip) Delay() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return time.Duration(t.opts.Int("delay")) * time.Millisecond
}

// Content returns the tooltip text.
func (t *Tooltip) Content() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.opts.String("content")
}

// Placement returns the popover placement.
func (t *Tooltip) Placement() string { return t.popover.Placement() }

// Repositions returns how many times the tooltip was repositioned.
func (t *Tooltip) Repositions() int { return t.popover.Updates() }
