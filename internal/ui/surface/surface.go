// Package surface is the in-memory render surface: an ordered stack of
// overlays and a list of toasts, drawn by the terminal UI.
package surface

import (
	"sync"
)

// Overlay is anything that can be inserted on top of the page.
type Overlay interface {
	OverlayID() string
}

// ToastKind selects the toast styling.
type ToastKind string

const (
	ToastSuccess ToastKind = "success"
	ToastError   ToastKind = "error"
)

// Toast is a transient notification.
type Toast struct {
	ID      string
	Message string
	Kind    ToastKind
	Leaving bool
}

// Surface holds what is currently drawn. Overlays are appended in insertion
// order; the last one is on top.
type Surface struct {
	mu       sync.Mutex
	overlays []Overlay
	toasts   []Toast

	// OnChange, when set, is called after every mutation.
	OnChange func()
}

// New creates an empty surface.
func New() *Surface {
	return &Surface{}
}

// Append inserts an overlay on top.
func (s *Surface) Append(o Overlay) {
	s.mu.Lock()
	s.overlays = append(s.overlays, o)
	s.mu.Unlock()
	s.changed()
}

// Remove detaches the overlay with the given id. It reports whether it was present.
func (s *Surface) Remove(id string) bool {
	s.mu.Lock()
	removed := false
	for i, o := range s.overlays {
		if o.OverlayID() == id {
			s.overlays = append(s.overlays[:i], s.overlays[i+1:]...)
			removed = true
			break
		}
	}
	s.mu.Unlock()
	if removed {
		s.changed()
	}
	return removed
}

// Contains reports whether an overlay with id is attached.
func (s *Surface) Contains(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range s.overlays {
		if o.OverlayID() == id {
			return true
		}
	}
	return false
}

// Overlays returns the attached overlays, bottom first.
func (s *Surface) Overlays() []Overlay {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Overlay(nil), s.overlays...)
}

// Len returns the number of attached overlays.
func (s *Surface) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.overlays)
}

// Top returns the topmost overlay, or nil.
func (s *Surface) Top() Overlay {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.overlays) == 0 {
		return nil
	}
	return s.overlays[len(s.overlays)-1]
}

// AddToast shows a toast.
func (s *Surface) AddToast(t Toast) {
	s.mu.Lock()
	s.toasts = append(s.toasts, t)
	s.mu.Unlock()
	s.changed()
}

// MarkToastLeaving starts the exit transition of a toast.
func (s *Surface) MarkToastLeaving(id string) bool {
	s.mu.Lock()
	found := false
	for i := range s.toasts {
		if s.toasts[i].ID == id {
			s.toasts[i].Leaving = true
			found = true
			break
		}
	}
	s.mu.Unlock()
	if found {
		s.changed()
	}
	return found
}

// RemoveToast detaches a toast.
func (s *Surface) RemoveToast(id string) bool {
	s.mu.Lock()
	removed := false
	for i, t := range s.toasts {
		if t.ID == id {
			s.toasts = append(s.toasts[:i], s.toasts[i+1:]...)
			removed = true
			break
		}
	}
	s.mu.Unlock()
	if removed {
		s.changed()
	}
	return removed
}

// Toasts returns the visible toasts, oldest first.
func (s *Surface) Toasts() []Toast {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Toast(nil), s.toasts...)
}

// Touch reports an in-place change of an attached overlay or toast.
func (s *Surface) Touch() {
	s.changed()
}

func (s *Surface) changed() {
	if s.OnChange != nil {
		s.OnChange()
	}
}
