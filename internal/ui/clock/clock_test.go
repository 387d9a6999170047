package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestManualFiresInDeadlineOrder(t *testing.T) {
	c := NewManual()
	var fired []string

	c.AfterFunc(300*time.Millisecond, func() { fired = append(fired, "close") })
	c.AfterFunc(10*time.Millisecond, func() { fired = append(fired, "show") })
	c.AfterFunc(10*time.Millisecond, func() { fired = append(fired, "show-2") })

	c.Advance(9 * time.Millisecond)
	require.Empty(t, fired)

	c.Advance(time.Millisecond)
	require.Equal(t, []string{"show", "show-2"}, fired)
	require.Equal(t, 1, c.Pending())

	c.Advance(time.Second)
	require.Equal(t, []string{"show", "show-2", "close"}, fired)
	require.Equal(t, 1010*time.Millisecond, c.Elapsed())
	require.Zero(t, c.Pending())
}

func TestManualChainedTimersWithinWindow(t *testing.T) {
	c := NewManual()
	var at []time.Duration

	c.AfterFunc(3*time.Second, func() {
		at = append(at, c.Elapsed())
		c.AfterFunc(300*time.Millisecond, func() {
			at = append(at, c.Elapsed())
		})
	})

	c.Advance(4 * time.Second)
	require.Equal(t, []time.Duration{3 * time.Second, 3300 * time.Millisecond}, at)
}

func TestManualStop(t *testing.T) {
	c := NewManual()
	fired := false
	timer := c.AfterFunc(time.Second, func() { fired = true })

	require.True(t, timer.Stop())
	require.False(t, timer.Stop())

	c.Advance(2 * time.Second)
	require.False(t, fired)
}

func TestRealtimeDispatch(t *testing.T) {
	dispatched := make(chan func(), 1)
	r := &Realtime{Dispatch: func(fn func()) { dispatched <- fn }}

	ran := false
	r.AfterFunc(time.Millisecond, func() { ran = true })

	select {
	case fn := <-dispatched:
		require.False(t, ran)
		fn()
		require.True(t, ran)
	case <-time.After(2 * time.Second):
		t.Fatal("timer never dispatched")
	}
}

func TestRealtimeStop(t *testing.T) {
	r := &Realtime{}
	fired := make(chan struct{}, 1)
	timer := r.AfterFunc(time.Hour, func() { fired <- struct{}{} })
	require.True(t, timer.Stop())
}
