package hook

// State is the lifecycle state of a Controller.
type State uint8

const (
	// StateDetached: no live instance. Initial state, and the state after a
	// failed attach.
	StateDetached State = iota
	// StateAttached: an instance is live.
	StateAttached
	// StateReconfiguring: options are being merged into the live instance.
	StateReconfiguring
	// StateRebuilding: the instance is being destroyed and re-created.
	StateRebuilding
	// StateClosed: detached for good, every further event is ignored.
	StateClosed
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateDetached:
		return "detached"
	case StateAttached:
		return "attached"
	case StateReconfiguring:
		return "reconfiguring"
	case StateRebuilding:
		return "rebuilding"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// DispatchResult is what happened to a dispatched command.
type DispatchResult uint8

const (
	// Delivered: the live instance received the command.
	Delivered DispatchResult = iota
	// Ignored: the command targets another element.
	Ignored
	// Dropped: no live instance could take the command.
	Dropped
)

// String returns the string representation of the result.
func (r DispatchResult) String() string {
	switch r {
	case Delivered:
		return "delivered"
	case Ignored:
		return "ignored"
	case Dropped:
		return "dropped"
	default:
		return "unknown"
	}
}
