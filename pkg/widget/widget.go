package widget

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/vango-dev/widgethook/pkg/vdom"
)

// Instance is a live widget. Destroy releases everything the widget holds and is
// called exactly once by its owner.
type Instance interface {
	Destroy()
}

// ElementBinder receives the freshly rendered root each time the instance is
// kept across a re-render.
type ElementBinder interface {
	BindElement(el *vdom.VNode)
}

// Typed reports the component type an instance was built for.
type Typed interface {
	ComponentType() string
}

// Configurable exposes the instance's live options.
type Configurable interface {
	Options() Options
	SetOptions(Options)
}

// CommandHandler receives commands forwarded by the controller.
type CommandHandler interface {
	HandleCommand(name string, params map[string]any)
}

// UIRefresher redraws the widget after its options change.
type UIRefresher interface {
	UpdateUI()
}

// PartsVisibilityRefresher re-evaluates which labeled parts are visible.
type PartsVisibilityRefresher interface {
	UpdatePartsVisibility()
}

// ValueCollection holds the widget's selected values.
type ValueCollection interface {
	SetValues(value any)
}

// ValueCollectionHolder exposes a value collection. A nil collection means the
// instance has none right now.
type ValueCollectionHolder interface {
	Collection() ValueCollection
}

// ValueDisplaySyncer redraws the displayed value.
type ValueDisplaySyncer interface {
	UpdateValueDisplay()
}

// HiddenInputSyncer mirrors the value into hidden form inputs.
type HiddenInputSyncer interface {
	SyncHiddenInputs()
}

// Positioner is a positioned overlay element that can recompute its placement.
type Positioner interface {
	Update()
}

// PositionAware is implemented by widgets owning a positioned overlay.
// PositionedElement returns nil when there is nothing to position.
type PositionAware interface {
	PositionedElement() Positioner
}

// Opener reports whether an overlay widget is currently open.
type Opener interface {
	IsOpen() bool
}

// Host is the controller a widget is attached to.
type Host interface {
	// ID returns the widget root's element id.
	ID() string
	// Logger returns the controller's logger.
	Logger() *slog.Logger
	// Attributes returns the attribute names the root and its parts use.
	Attributes() vdom.WidgetAttributes
}

// Options is a widget configuration mapping.
type Options map[string]any

// Clone returns a shallow copy. A nil mapping clones to an empty one.
func (o Options) Clone() Options {
	out := make(Options, len(o))
	for k, v := range o {
		out[k] = v
	}
	return out
}

// String returns the option as a string.
func (o Options) String(key string) string {
	if v, ok := o[key]; ok && v != nil {
		if s, ok := v.(string); ok {
			return s
		}
		return fmt.Sprintf("%v", v)
	}
	return ""
}

// Bool returns the option as a boolean; strings are parsed.
func (o Options) Bool(key string) bool {
	if v, ok := o[key]; ok {
		switch val := v.(type) {
		case bool:
			return val
		case string:
			b, _ := strconv.ParseBool(val)
			return b
		}
	}
	return false
}

// Int returns the option as an int; JSON numbers arrive as float64.
func (o Options) Int(key string) int {
	if v, ok := o[key]; ok {
		switch val := v.(type) {
		case int:
			return val
		case int64:
			return int(val)
		case float64:
			return int(val)
		case string:
			i, _ := strconv.Atoi(val)
			return i
		}
	}
	return 0
}

// Strings returns the option as a string slice. A single string becomes a
// one-element slice.
func (o Options) Strings(key string) []string {
	v, ok := o[key]
	if !ok || v == nil {
		return nil
	}
	switch val := v.(type) {
	case []string:
		return val
	case []any:
		strs := make([]string, len(val))
		for i, item := range val {
			strs[i] = fmt.Sprintf("%v", item)
		}
		return strs
	case string:
		return []string{val}
	default:
		return []string{fmt.Sprintf("%v", val)}
	}
}

// Constructor builds an instance for a root element.
type Constructor func(el *vdom.VNode, host Host) (Instance, error)
