// Package clock schedules delayed UI transitions. Realtime fires on wall-clock
// timers; Manual is a virtual clock advanced explicitly by tests.
package clock

import (
	"sort"
	"sync"
	"time"
)

// Timer is a scheduled callback that can be cancelled.
type Timer interface {
	// Stop prevents the callback from firing. It reports whether the call
	// stopped the timer.
	Stop() bool
}

// Scheduler runs callbacks after a delay.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Timer
}

// Realtime schedules on wall-clock timers. When Dispatch is set the callback
// is handed to it instead of running on the timer goroutine, so it can be
// posted back onto an event loop.
type Realtime struct {
	Dispatch func(fn func())
}

// AfterFunc schedules fn after d.
func (r *Realtime) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, func() {
		if r.Dispatch != nil {
			r.Dispatch(fn)
			return
		}
		fn()
	})
}

// Manual is a virtual clock. Callbacks run synchronously from Advance, in
// deadline order, with ties fired in scheduling order.
type Manual struct {
	mu      sync.Mutex
	now     time.Duration
	seq     int
	pending []*manualTimer
}

type manualTimer struct {
	clock    *Manual
	deadline time.Duration
	seq      int
	fn       func()
	stopped  bool
}

// NewManual creates a virtual clock at time zero.
func NewManual() *Manual {
	return &Manual{}
}

// AfterFunc schedules fn to run once the clock has advanced by d.
func (m *Manual) AfterFunc(d time.Duration, fn func()) Timer {
	m.mu.Lock()
	defer m.mu.Unlock()

	if d < 0 {
		d = 0
	}
	m.seq++
	t := &manualTimer{clock: m, deadline: m.now + d, seq: m.seq, fn: fn}
	m.pending = append(m.pending, t)
	return t
}

// Advance moves the clock forward by d and fires every timer that comes due,
// including timers scheduled by callbacks within the window.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now + d

	for {
		next := m.popDue(target)
		if next == nil {
			break
		}
		m.now = next.deadline
		m.mu.Unlock()
		next.fn()
		m.mu.Lock()
	}

	m.now = target
	m.mu.Unlock()
}

// Elapsed returns the virtual time since the clock was created.
func (m *Manual) Elapsed() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Pending returns the number of timers that have not fired or been stopped.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pending)
}

// popDue removes and returns the earliest timer due at or before target.
// Callers hold m.mu.
func (m *Manual) popDue(target time.Duration) *manualTimer {
	if len(m.pending) == 0 {
		return nil
	}
	sort.SliceStable(m.pending, func(i, j int) bool {
		a, b := m.pending[i], m.pending[j]
		if a.deadline != b.deadline {
			return a.deadline < b.deadline
		}
		return a.seq < b.seq
	})
	first := m.pending[0]
	if first.deadline > target {
		return nil
	}
	m.pending = m.pending[1:]
	return first
}

func (t *manualTimer) Stop() bool {
	m := t.clock
	m.mu.Lock()
	defer m.mu.Unlock()

	if t.stopped {
		return false
	}
	for i, p := range m.pending {
		if p == t {
			m.pending = append(m.pending[:i], m.pending[i+1:]...)
			t.stopped = true
			return true
		}
	}
	return false
}
