package standard

import (
	"github.com/vango-dev/widgethook/pkg/vdom"
	"github.com/vango-dev/widgethook/pkg/widget"
)

// Register binds every stock widget to reg.
func Register(reg *widget.MapRegistry) {
	reg.Register(TypeSelect, constructor(NewSelect))
	reg.Register(TypeDropdownMenu, constructor(NewDropdownMenu))
	reg.Register(TypeCollapsible, constructor(NewCollapsible))
	reg.Register(TypeTooltip, constructor(NewTooltip))
}

// Registry returns a new registry holding the stock widgets.
func Registry() *widget.MapRegistry {
	reg := widget.NewMapRegistry()
	Register(reg)
	return reg
}

// constructor adapts a typed constructor to widget.Constructor. A failed
// construction yields a nil Instance.
func constructor[T widget.Instance](fn func(*vdom.VNode, widget.Host) (T, error)) widget.Constructor {
	return func(el *vdom.VNode, host widget.Host) (widget.Instance, error) {
		inst, err := fn(el, host)
		if err != nil {
			return nil, err
		}
		return inst, nil
	}
}
