package hook

import "github.com/vango-dev/widgethook/pkg/reconcile"

// Observer is notified of controller lifecycle events. Calls happen on the
// goroutine driving the controller and must not block.
type Observer interface {
	// InstanceAttached is called after an instance was created and stored.
	InstanceAttached(elementID, componentType string)
	// AttachFailed is called when no instance could be created; code is the
	// diagnostic code reported for the failure.
	AttachFailed(elementID, componentType, code string)
	// InstanceDestroyed is called after an instance was destroyed.
	InstanceDestroyed(elementID, componentType string)
	// Decided is called once per Update with the final decision.
	Decided(elementID, componentType string, d reconcile.Decision)
	// CommandDispatched is called once per Dispatch.
	CommandDispatched(elementID, command string, result DispatchResult)
}

// NopObserver ignores every notification. Embed it to implement only some
// Observer methods.
type NopObserver struct{}

func (NopObserver) InstanceAttached(string, string)                  {}
func (NopObserver) AttachFailed(string, string, string)              {}
func (NopObserver) InstanceDestroyed(string, string)                 {}
func (NopObserver) Decided(string, string, reconcile.Decision)       {}
func (NopObserver) CommandDispatched(string, string, DispatchResult) {}
