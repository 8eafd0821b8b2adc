package task

import "sync"

// A Slot holds at most one in-flight Handle. Storing a new handle cancels
// the previous one, so the slot can never refer to two live units of work.
//
// Unlike a state cell, a Slot is safe for concurrent use: an external
// Cancel may race with the controller replacing the handle.
type Slot struct {
	mu sync.Mutex
	h  *Handle
}

// Replace stores h as the slot's handle, cancelling any previous one.
func (s *Slot) Replace(h *Handle) {
	s.mu.Lock()
	old := s.h
	s.h = h
	s.mu.Unlock()

	if old != nil {
		old.Cancel()
	}
}

// Cancel cancels and clears the current handle. It is idempotent.
func (s *Slot) Cancel() {
	s.mu.Lock()
	old := s.h
	s.h = nil
	s.mu.Unlock()

	if old != nil {
		old.Cancel()
	}
}

// Release clears the slot only if it still holds h, reporting whether it
// did. A false return means the run owning h has been superseded or
// cancelled.
func (s *Slot) Release(h *Handle) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.h != h {
		return false
	}
	s.h = nil
	return true
}

// Holds reports whether the slot currently holds h.
func (s *Slot) Holds(h *Handle) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.h == h
}

// Empty reports whether the slot holds no handle.
func (s *Slot) Empty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.h == nil
}
