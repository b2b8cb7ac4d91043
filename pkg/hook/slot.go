package hook

import "github.com/vango-dev/widgethook/pkg/widget"

// slot owns the controller's single live instance. Replacing or clearing it
// always destroys the previous occupant first.
type slot struct {
	inst widget.Instance
	// destroy is called with the outgoing instance; it must not panic.
	destroy func(widget.Instance)
}

func (s *slot) current() widget.Instance {
	return s.inst
}

func (s *slot) occupied() bool {
	return s.inst != nil
}

// attach fills an empty slot. A non-empty slot is replaced.
func (s *slot) attach(inst widget.Instance) {
	if s.inst != nil {
		s.replace(inst)
		return
	}
	s.inst = inst
}

// replace destroys the current instance and stores inst, which may be nil.
func (s *slot) replace(inst widget.Instance) {
	old := s.inst
	s.inst = nil
	if old != nil {
		s.destroy(old)
	}
	s.inst = inst
}

// clear destroys the current instance, if any, and leaves the slot empty.
func (s *slot) clear() {
	s.replace(nil)
}
