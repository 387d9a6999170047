// Package notify shows transient toasts on the render surface.
package notify

import (
	"time"

	"github.com/google/uuid"

	"github.com/dingolabs/dingo/internal/ui/clock"
	"github.com/dingolabs/dingo/internal/ui/surface"
)

const (
	// DefaultDuration is how long a toast stays fully visible.
	DefaultDuration = 3 * time.Second
	// DefaultExit is the length of the exit transition.
	DefaultExit = 300 * time.Millisecond
)

// Notifier posts toasts and removes them after their display time.
type Notifier struct {
	Surface  *surface.Surface
	Clock    clock.Scheduler
	Duration time.Duration
	Exit     time.Duration
}

// New creates a notifier with the default timings.
func New(s *surface.Surface, c clock.Scheduler) *Notifier {
	return &Notifier{
		Surface:  s,
		Clock:    c,
		Duration: DefaultDuration,
		Exit:     DefaultExit,
	}
}

// Notify shows message as a toast of the given kind (success when empty)
// and returns its id.
func (n *Notifier) Notify(message string, kind surface.ToastKind) string {
	if kind == "" {
		kind = surface.ToastSuccess
	}
	id := uuid.NewString()
	n.Surface.AddToast(surface.Toast{ID: id, Message: message, Kind: kind})

	n.Clock.AfterFunc(n.Duration, func() {
		n.Surface.MarkToastLeaving(id)
		n.Clock.AfterFunc(n.Exit, func() {
			n.Surface.RemoveToast(id)
		})
	})
	return id
}

// Success is shorthand for a success toast.
func (n *Notifier) Success(message string) string {
	return n.Notify(message, surface.ToastSuccess)
}

// Error is shorthand for an error toast.
func (n *Notifier) Error(message string) string {
	return n.Notify(message, surface.ToastError)
}
