package standard

import (
	"log/slog"
	"sync"

	"github.com/vango-dev/widgethook/pkg/options"
	"github.com/vango-dev/widgethook/pkg/vdom"
	"github.com/vango-dev/widgethook/pkg/widget"
)

// base holds what every stock widget shares: its root, its options and the
// host it was attached by.
type base struct {
	mu sync.Mutex

	componentType string
	id            string
	el            *vdom.VNode
	attrs         vdom.WidgetAttributes
	logger        *slog.Logger
	opts          widget.Options
	destroyed     bool
}

// init fills b for a widget of componentType built on el. Options missing from
// the root's payload take their value from defaults.
func (b *base) init(componentType string, el *vdom.VNode, host widget.Host, defaults widget.Options) {
	b.componentType = componentType
	b.el = el
	b.attrs = vdom.DefaultWidgetAttributes()
	b.logger = slog.Default()
	if host != nil {
		b.id = host.ID()
		b.attrs = host.Attributes().WithDefaults()
		b.logger = host.Logger()
	}
	b.logger = b.logger.With("component", componentType)

	payload, _ := el.GetAttr(b.attrs.Options)
	parsed, err := options.Parse(payload)
	if err != nil {
		b.logger.Warn("ignoring initial options", "error", err)
		parsed = widget.Options{}
	}
	b.opts = options.ShallowMerge(defaults, parsed)
}

// Destroy implements widget.Instance.
func (b *base) Destroy() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.destroyed = true
	b.logger.Debug("widget destroyed")
}

// Destroyed reports whether Destroy was called.
func (b *base) Destroyed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.destroyed
}

// ComponentType implements widget.Typed.
func (b *base) ComponentType() string { return b.componentType }

// ID returns the root's element id.
func (b *base) ID() string { return b.id }

// Options implements widget.Configurable.
func (b *base) Options() widget.Options {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.opts.Clone()
}

// SetOptions implements widget.Configurable.
func (b *base) SetOptions(o widget.Options) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.opts = o
}

// BindElement implements widget.ElementBinder.
func (b *base) BindElement(el *vdom.VNode) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.el = el
}

// Element returns the root the widget currently reads from.
func (b *base) Element() *vdom.VNode {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.el
}

// parts returns the labeled parts of the current root with the given label.
// Must be called with mu held.
func (b *base) parts(label string) []*vdom.VNode {
	var out []*vdom.VNode
	for _, n := range vdom.QueryAll(b.el, b.attrs.Part) {
		if l, _ := n.GetAttr(b.attrs.Part); l == label {
			out = append(out, n)
		}
	}
	return out
}

// partValues returns the declared values of the parts with the given label.
// Must be called with mu held.
func (b *base) partValues(label string) []string {
	var out []string
	for _, n := range b.parts(label) {
		if v, ok := n.GetAttr(b.attrs.Value); ok {
			out = append(out, v)
		}
	}
	return out
}

// overlay is a positioned popover. Update recomputes its placement from the
// side and align options of its widget.
type overlay struct {
	mu        sync.Mutex
	side      string
	align     string
	placement string
	updates   int
}

func newOverlay(side, align string) *overlay {
	o := &overlay{side: side, align: align}
	o.placement = o.compute()
	return o
}

func (o *overlay) compute() string {
	if o.align == "" || o.align == "center" {
		return o.side
	}
	return o.side + "-" + o.align
}

// Update implements widget.Positioner.
func (o *overlay) Update() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.updates++
	o.placement = o.compute()
}

func (o *overlay) configure(side, align string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.side = side
	o.align = align
}

// Placement returns the last computed placement, e.g. "bottom-start".
func (o *overlay) Placement() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.placement
}

// Updates returns how many times the placement was recomputed.
func (o *overlay) Updates() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.updates
}
