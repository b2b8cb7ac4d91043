package telemetry

import (
	"github.com/vango-dev/widgethook/pkg/hook"
	"github.com/vango-dev/widgethook/pkg/reconcile"
)

type multiObserver []hook.Observer

// Multi fans observer calls out in order. Nil observers are skipped.
func Multi(observers ...hook.Observer) hook.Observer {
	out := make(multiObserver, 0, len(observers))
	for _, o := range observers {
		if o != nil {
			out = append(out, o)
		}
	}
	return out
}

func (m multiObserver) InstanceAttached(elementID, componentType string) {
	for _, o := range m {
		o.InstanceAttached(elementID, componentType)
	}
}

func (m multiObserver) AttachFailed(elementID, componentType, code string) {
	for _, o := range m {
		o.AttachFailed(elementID, componentType, code)
	}
}

func (m multiObserver) InstanceDestroyed(elementID, componentType string) {
	for _, o := range m {
		o.InstanceDestroyed(elementID, componentType)
	}
}

func (m multiObserver) Decided(elementID, componentType string, d reconcile.Decision) {
	for _, o := range m {
		o.Decided(elementID, componentType, d)
	}
}

func (m multiObserver) CommandDispatched(elementID, command string, result hook.DispatchResult) {
	for _, o := range m {
		o.CommandDispatched(elementID, command, result)
	}
}
