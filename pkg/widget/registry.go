package widget

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/vango-dev/widgethook/pkg/vdom"
)

// ErrUnknownComponent is wrapped by errors for component types nobody registered.
var ErrUnknownComponent = errors.New("widget: unknown component type")

// UnknownComponentError reports the component type that could not be resolved.
type UnknownComponentError struct {
	ComponentType string
}

func (e *UnknownComponentError) Error() string {
	return fmt.Sprintf("widget: unknown component type %q", e.ComponentType)
}

// Unwrap returns ErrUnknownComponent.
func (e *UnknownComponentError) Unwrap() error {
	return ErrUnknownComponent
}

// Registry builds widget instances from a component type.
type Registry interface {
	Create(componentType string, el *vdom.VNode, host Host) (Instance, error)
}

// RegistryFunc adapts a function to a Registry.
type RegistryFunc func(componentType string, el *vdom.VNode, host Host) (Instance, error)

// Create implements Registry.
func (f RegistryFunc) Create(componentType string, el *vdom.VNode, host Host) (Instance, error) {
	return f(componentType, el, host)
}

// MapRegistry is a Registry backed by a name → Constructor map.
// Safe for concurrent use.
type MapRegistry struct {
	mu           sync.RWMutex
	constructors map[string]Constructor
}

// NewMapRegistry creates an empty MapRegistry.
func NewMapRegistry() *MapRegistry {
	return &MapRegistry{constructors: make(map[string]Constructor)}
}

// Register binds a component type to a constructor, replacing any previous one.
func (r *MapRegistry) Register(componentType string, ctor Constructor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.constructors[componentType] = ctor
}

// Create implements Registry. A constructor returning a nil instance without an
// error is reported as a construction failure.
func (r *MapRegistry) Create(componentType string, el *vdom.VNode, host Host) (Instance, error) {
	r.mu.RLock()
	ctor, ok := r.constructors[componentType]
	r.mu.RUnlock()
	if !ok {
		return nil, &UnknownComponentError{ComponentType: componentType}
	}
	inst, err := ctor(el, host)
	if err != nil {
		return nil, err
	}
	if inst == nil {
		return nil, fmt.Errorf("widget: constructor for %q returned no instance", componentType)
	}
	return inst, nil
}

// Types returns the registered component types in sorted order.
func (r *MapRegistry) Types() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	types := make([]string, 0, len(r.constructors))
	for t := range r.constructors {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}
