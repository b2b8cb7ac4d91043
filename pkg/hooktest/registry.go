package hooktest

import (
	"sync"

	"github.com/vango-dev/widgethook/pkg/vdom"
	"github.com/vango-dev/widgethook/pkg/widget"
)

// Registry is a widget.Registry that builds FakeInstances for any component
// type and remembers them in creation order. Safe for concurrent use.
type Registry struct {
	mu      sync.Mutex
	created []*FakeInstance
	failing map[string]error
	setup   func(*FakeInstance)

	// Known restricts the accepted types when non-empty; others fail with
	// *widget.UnknownComponentError.
	Known map[string]bool
}

// NewRegistry creates a Registry accepting every component type.
func NewRegistry() *Registry {
	return &Registry{failing: make(map[string]error)}
}

// Fail makes Create return err for componentType. A nil err clears it.
func (r *Registry) Fail(componentType string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err == nil {
		delete(r.failing, componentType)
		return
	}
	r.failing[componentType] = err
}

// OnCreate registers a function run on each new instance before it is returned.
func (r *Registry) OnCreate(fn func(*FakeInstance)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.setup = fn
}

// Create implements widget.Registry.
func (r *Registry) Create(componentType string, el *vdom.VNode, host widget.Host) (widget.Instance, error) {
	r.mu.Lock()
	if err, ok := r.failing[componentType]; ok {
		r.mu.Unlock()
		return nil, err
	}
	if len(r.Known) > 0 && !r.Known[componentType] {
		r.mu.Unlock()
		return nil, &widget.UnknownComponentError{ComponentType: componentType}
	}
	inst := NewFakeInstance(componentType)
	inst.Element = el
	if host != nil {
		inst.HostID = host.ID()
	}
	inst.Seq = len(r.created) + 1
	setup := r.setup
	r.created = append(r.created, inst)
	r.mu.Unlock()

	if setup != nil {
		setup(inst)
	}
	return inst, nil
}

// Created returns every instance built so far.
func (r *Registry) Created() []*FakeInstance {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*FakeInstance, len(r.created))
	copy(out, r.created)
	return out
}

// Count returns how many instances were built.
func (r *Registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.created)
}

// Last returns the most recently built instance, or nil.
func (r *Registry) Last() *FakeInstance {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.created) == 0 {
		return nil
	}
	return r.created[len(r.created)-1]
}
