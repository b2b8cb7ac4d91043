package standard

import (
	"fmt"
	"sync"
)

// valueCollection is the selected-values store of a select.
type valueCollection struct {
	mu       sync.Mutex
	multiple bool
	values   []string
}

// SetValues implements widget.ValueCollection. A single-value collection keeps
// only the first value.
func (c *valueCollection) SetValues(value any) {
	values := normalizeValues(value)
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.multiple && len(values) > 1 {
		values = values[:1]
	}
	c.values = values
}

func (c *valueCollection) setMultiple(multiple bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.multiple = multiple
	if !multiple && len(c.values) > 1 {
		c.values = c.values[:1]
	}
}

// Values returns a copy of the selected values.
func (c *valueCollection) Values() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.values))
	copy(out, c.values)
	return out
}

// normalizeValues turns a decoded option value into a list of strings. nil and
// "" clear the selection.
func normalizeValues(value any) []string {
	switch v := value.(type) {
	case nil:
		return nil
	case string:
		if v == "" {
			return nil
		}
		return []string{v}
	case []string:
		out := make([]string, 0, len(v))
		for _, s := range v {
			if s != "" {
				out = append(out, s)
			}
		}
		return out
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if item == nil {
				continue
			}
			if s := fmt.Sprint(item); s != "" {
				out = append(out, s)
			}
		}
		return out
	default:
		return []string{fmt.Sprint(v)}
	}
}
