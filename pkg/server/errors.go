package server

import "errors"

// Sentinel errors returned by the Host.
var (
	// ErrHostClosed is returned when the host loop has stopped.
	ErrHostClosed = errors.New("server: host closed")

	// ErrHostRunning is returned when Run is called on a running host.
	ErrHostRunning = errors.New("server: host already running")

	// ErrEventQueueFull is returned when the request queue is full and the event is dropped.
	ErrEventQueueFull = errors.New("server: event queue full")

	// ErrNotMounted is returned when no controller is mounted for an element id.
	ErrNotMounted = errors.New("server: element not mounted")

	// ErrDuplicate is returned when mounting an element id that is already mounted.
	ErrDuplicate = errors.New("server: element already mounted")

	// ErrMissingID is returned when mounting a root without an id.
	ErrMissingID = errors.New("server: root has no id")
)
