package hooktest

import (
	"fmt"
	"sync"

	"github.com/vango-dev/widgethook/pkg/vdom"
	"github.com/vango-dev/widgethook/pkg/widget"
)

// CommandCall is one command received by a FakeInstance.
type CommandCall struct {
	Name   string
	Params map[string]any
}

// FakeInstance implements widget.Instance and every optional capability.
// Every hook invocation is appended to Calls. Safe for concurrent use.
type FakeInstance struct {
	mu sync.Mutex

	Type    string
	Element *vdom.VNode
	HostID  string
	Seq     int

	opts       widget.Options
	collection *FakeCollection
	positioner *FakePositioner
	open       bool
	calls      []string
	commands   []CommandCall
	destroyed  int

	// PanicOn makes the named hook panic (e.g. "UpdateUI", "Destroy").
	PanicOn map[string]bool
}

// NewFakeInstance creates a FakeInstance with a collection and a positioner.
func NewFakeInstance(componentType string) *FakeInstance {
	return &FakeInstance{
		Type:       componentType,
		opts:       widget.Options{},
		collection: &FakeCollection{},
		positioner: &FakePositioner{},
		PanicOn:    map[string]bool{},
	}
}

func (f *FakeInstance) record(call string) {
	f.mu.Lock()
	f.calls = append(f.calls, call)
	panicking := f.PanicOn[call]
	f.mu.Unlock()
	if panicking {
		panic(fmt.Sprintf("hooktest: %s panicked", call))
	}
}

// Destroy implements widget.Instance.
func (f *FakeInstance) Destroy() {
	f.mu.Lock()
	f.destroyed++
	f.mu.Unlock()
	f.record("Destroy")
}

// BindElement implements widget.ElementBinder.
func (f *FakeInstance) BindElement(el *vdom.VNode) {
	f.mu.Lock()
	f.Element = el
	f.mu.Unlock()
	f.record("BindElement")
}

// ComponentType implements widget.Typed.
func (f *FakeInstance) ComponentType() string { return f.Type }

// Options implements widget.Configurable.
func (f *FakeInstance) Options() widget.Options {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.opts.Clone()
}

// SetOptions implements widget.Configurable.
func (f *FakeInstance) SetOptions(o widget.Options) {
	f.mu.Lock()
	f.opts = o
	f.mu.Unlock()
	f.record("SetOptions")
}

// HandleCommand implements widget.CommandHandler.
func (f *FakeInstance) HandleCommand(name string, params map[string]any) {
	f.mu.Lock()
	f.commands = append(f.commands, CommandCall{Name: name, Params: params})
	f.mu.Unlock()
	f.record("HandleCommand")
}

// UpdateUI implements widget.UIRefresher.
func (f *FakeInstance) UpdateUI() { f.record("UpdateUI") }

// UpdatePartsVisibility implements widget.PartsVisibilityRefresher.
func (f *FakeInstance) UpdatePartsVisibility() { f.record("UpdatePartsVisibility") }

// Collection implements widget.ValueCollectionHolder.
func (f *FakeInstance) Collection() widget.ValueCollection {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.collection == nil {
		return nil
	}
	return f.collection
}

// UpdateValueDisplay implements widget.ValueDisplaySyncer.
func (f *FakeInstance) UpdateValueDisplay() { f.record("UpdateValueDisplay") }

// SyncHiddenInputs implements widget.HiddenInputSyncer.
func (f *FakeInstance) SyncHiddenInputs() { f.record("SyncHiddenInputs") }

// PositionedElement implements widget.PositionAware.
func (f *FakeInstance) PositionedElement() widget.Positioner {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.positioner == nil {
		return nil
	}
	return f.positioner
}

// IsOpen implements widget.Opener.
func (f *FakeInstance) IsOpen() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.open
}

// SetOpen sets what IsOpen reports.
func (f *FakeInstance) SetOpen(open bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.open = open
}

// DropCollection makes Collection return nil.
func (f *FakeInstance) DropCollection() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.collection = nil
}

// DropPositioner makes PositionedElement return nil.
func (f *FakeInstance) DropPositioner() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.positioner = nil
}

// Calls returns the hook calls in order.
func (f *FakeInstance) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.calls))
	copy(out, f.calls)
	return out
}

// CallCount returns how many times hook was called.
func (f *FakeInstance) CallCount(hook string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c == hook {
			n++
		}
	}
	return n
}

// ResetCalls clears the call log.
func (f *FakeInstance) ResetCalls() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = nil
}

// Commands returns the commands received.
func (f *FakeInstance) Commands() []CommandCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]CommandCall, len(f.commands))
	copy(out, f.commands)
	return out
}

// Destroyed returns how many times Destroy was called.
func (f *FakeInstance) Destroyed() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.destroyed
}

// Values returns the collection's values.
func (f *FakeInstance) Values() []any {
	f.mu.Lock()
	c := f.collection
	f.mu.Unlock()
	if c == nil {
		return nil
	}
	return c.Values()
}

// Repositions returns how many times the positioner was updated.
func (f *FakeInstance) Repositions() int {
	f.mu.Lock()
	p := f.positioner
	f.mu.Unlock()
	if p == nil {
		return 0
	}
	return p.Updates()
}

// FakeCollection records every SetValues call.
type FakeCollection struct {
	mu     sync.Mutex
	values []any
}

// SetValues implements widget.ValueCollection.
func (c *FakeCollection) SetValues(value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values = append(c.values, value)
}

// Values returns the values set so far.
func (c *FakeCollection) Values() []any {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]any, len(c.values))
	copy(out, c.values)
	return out
}

// FakePositioner counts Update calls.
type FakePositioner struct {
	mu      sync.Mutex
	updates int
}

// Update implements widget.Positioner.
func (p *FakePositioner) Update() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.updates++
}

// Updates returns the number of Update calls.
func (p *FakePositioner) Updates() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.updates
}

// MinimalInstance implements only widget.Instance.
type MinimalInstance struct {
	mu        sync.Mutex
	destroyed int
}

// Destroy implements widget.Instance.
func (m *MinimalInstance) Destroy() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.destroyed++
}

// Destroyed returns how many times Destroy was called.
func (m *MinimalInstance) Destroyed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.destroyed
}
