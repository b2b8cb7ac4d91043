package widget

import (
	"fmt"
	"runtime/debug"
)

// HookError reports an instance hook that panicked.
type HookError struct {
	Hook  string
	Panic any
	Stack []byte
}

func (e *HookError) Error() string {
	return fmt.Sprintf("widget: hook %s panicked: %v", e.Hook, e.Panic)
}

// Call runs an instance hook, converting a panic into a *HookError so a
// misbehaving widget cannot abort the host's render cycle.
func Call(hook string, fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &HookError{Hook: hook, Panic: r, Stack: debug.Stack()}
		}
	}()
	fn()
	return nil
}
