package standard

import (
	"errors"
	"strings"

	"github.com/vango-dev/widgethook/pkg/vdom"
	"github.com/vango-dev/widgethook/pkg/widget"
)

// TypeSelect is the component type of Select.
const TypeSelect = "select"

// ErrNoTrigger is returned when a select root has no trigger part.
var ErrNoTrigger = errors.New("standard: select has no trigger part")

// SelectConfig configures the select widget.
type SelectConfig struct {
	Name        string   `json:"name,omitempty"`
	Placeholder string   `json:"placeholder,omitempty"`
	Multiple    bool     `json:"multiple,omitempty"`
	Disabled    bool     `json:"disabled,omitempty"`
	Value       []string `json:"value,omitempty"`
	Side        string   `json:"side,omitempty"`
	Align       string   `json:"align,omitempty"`
}

// SelectOptions creates the options attribute for a select root.
func SelectOptions(config SelectConfig) vdom.Attr {
	m := map[string]any{
		"name":        config.Name,
		"placeholder": config.Placeholder,
		"multiple":    config.Multiple,
		"disabled":    config.Disabled,
	}
	if config.Side != "" {
		m["side"] = config.Side
	}
	if config.Align != "" {
		m["align"] = config.Align
	}
	switch {
	case config.Multiple:
		m["value"] = config.Value
	case len(config.Value) > 0:
		m["value"] = config.Value[0]
	}
	return vdom.Options(m)
}

// HiddenInput is a form input mirroring one selected value.
type HiddenInput struct {
	Name  string
	Value string
}

// Select is a single or multiple choice list in a popover.
//
// Parts: "trigger" (required), "list", and one "item" per choice whose value
// is the choice value and whose text is its label.
type Select struct {
	base

	collection *valueCollection
	popover    *overlay
	open       bool
	disabled   bool
	display    string
	hidden     []HiddenInput
}

// NewSelect builds a Select for el.
func NewSelect(el *vdom.VNode, host widget.Host) (*Select, error) {
	s := &Select{}
	s.init(TypeSelect, el, host, widget.Options{
		"placeholder": "",
		"multiple":    false,
		"side":        "bottom",
		"align":       "start",
	})
	if len(s.parts("trigger")) == 0 {
		return nil, ErrNoTrigger
	}

	s.collection = &valueCollection{multiple: s.opts.Bool("multiple")}
	if v, ok := s.opts["value"]; ok {
		s.collection.SetValues(v)
	}
	s.popover = newOverlay(s.opts.String("side"), s.opts.String("align"))
	s.disabled = s.opts.Bool("disabled")
	s.UpdateValueDisplay()
	s.SyncHiddenInputs()
	return s, nil
}

// SetOptions implements widget.Configurable.
func (s *Select) SetOptions(o widget.Options) {
	s.base.SetOptions(o)
	s.collection.setMultiple(o.Bool("multiple"))
}

// Collection implements widget.ValueCollectionHolder.
func (s *Select) Collection() widget.ValueCollection {
	return s.collection
}

// UpdateValueDisplay implements widget.ValueDisplaySyncer. The display shows
// the labels of the selected items, or the placeholder.
func (s *Select) UpdateValueDisplay() {
	s.mu.Lock()
	defer s.mu.Unlock()

	values := s.collection.Values()
	if len(values) == 0 {
		s.display = s.opts.String("placeholder")
		return
	}
	labels := s.itemLabels()
	shown := make([]string, len(values))
	for i, v := range values {
		if l, ok := labels[v]; ok && l != "" {
			shown[i] = l
		} else {
			shown[i] = v
		}
	}
	s.display = strings.Join(shown, ", ")
}

// itemLabels maps item values to their text. Must be called with mu held.
func (s *Select) itemLabels() map[string]string {
	labels := make(map[string]string)
	for _, n := range s.parts("item") {
		v, ok := n.GetAttr(s.attrs.Value)
		if !ok {
			continue
		}
		labels[v] = textContent(n)
	}
	return labels
}

// SyncHiddenInputs implements widget.HiddenInputSyncer.
func (s *Select) SyncHiddenInputs() {
	s.mu.Lock()
	defer s.mu.Unlock()

	name := s.opts.String("name")
	if name == "" {
		s.hidden = nil
		return
	}
	if s.opts.Bool("multiple") {
		name += "[]"
	}
	values := s.collection.Values()
	s.hidden = make([]HiddenInput, len(values))
	for i, v := range values {
		s.hidden[i] = HiddenInput{Name: name, Value: v}
	}
}

// UpdateUI implements widget.UIRefresher.
func (s *Select) UpdateUI() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.disabled = s.opts.Bool("disabled")
	if s.disabled {
		s.open = false
	}
	s.popover.configure(s.opts.String("side"), s.opts.String("align"))
}

// HandleCommand implements widget.CommandHandler.
//
// Commands: open, close, toggle, set_value {value}, clear.
func (s *Select) HandleCommand(name string, params map[string]any) {
	switch name {
	case "open", "close", "toggle":
		s.mu.Lock()
		s.open = nextOpen(name, s.open, s.disabled)
		s.mu.Unlock()
	case "set_value":
		s.collection.SetValues(params["value"])
		s.UpdateValueDisplay()
		s.SyncHiddenInputs()
	case "clear":
		s.collection.SetValues(nil)
		s.UpdateValueDisplay()
		s.SyncHiddenInputs()
	default:
		s.logger.Debug("unknown command", "command", name)
	}
}

// IsOpen implements widget.Opener.
func (s *Select) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.open
}

// PositionedElement implements widget.PositionAware.
func (s *Select) PositionedElement() widget.Positioner {
	return s.popover
}

// Values returns the selected values.
func (s *Select) Values() []string {
	return s.collection.Values()
}

// Display returns the text shown in the trigger.
func (s *Select) Display() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.display
}

// HiddenInputs returns the form inputs mirroring the selection.
func (s *Select) HiddenInputs() []HiddenInput {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]HiddenInput, len(s.hidden))
	copy(out, s.hidden)
	return out
}

// Placement returns the popover placement, e.g. "bottom-start".
func (s *Select) Placement() string { return s.popover.Placement() }

// Repositions returns how many times the popover was repositioned.
func (s *Select) Repositions() int { return s.popover.Updates() }

// nextOpen applies an open/close/toggle command. A disabled widget stays closed.
func nextOpen(command string, open, disabled bool) bool {
	if disabled {
		return false
	}
	switch command {
	case "open", "show":
		return true
	case "close", "hide":
		return false
	case "toggle":
		return !open
	}
	return open
}

// textContent concatenates the text below n.
func textContent(n *vdom.VNode) string {
	var b strings.Builder
	vdom.Walk(n, func(c *vdom.VNode) bool {
		if c.Kind == vdom.KindText {
			b.WriteString(c.Text)
		}
		return true
	})
	return strings.TrimSpace(b.String())
}
