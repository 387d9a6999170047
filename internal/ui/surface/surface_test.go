package surface

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type overlay string

func (o overlay) OverlayID() string { return string(o) }

func TestOverlayStack(t *testing.T) {
	changes := 0
	s := New()
	s.OnChange = func() { changes++ }

	require.Nil(t, s.Top())

	s.Append(overlay("a"))
	s.Append(overlay("b"))
	require.Equal(t, 2, s.Len())
	require.Equal(t, overlay("b"), s.Top())
	require.True(t, s.Contains("a"))

	require.True(t, s.Remove("a"))
	require.False(t, s.Remove("a"))
	require.Equal(t, []Overlay{overlay("b")}, s.Overlays())
	require.Equal(t, 3, changes)
}

func TestToasts(t *testing.T) {
	s := New()
	s.AddToast(Toast{ID: "t1", Message: "Copied to clipboard", Kind: ToastSuccess})
	s.AddToast(Toast{ID: "t2", Message: "boom", Kind: ToastError})

	require.True(t, s.MarkToastLeaving("t1"))
	require.False(t, s.MarkToastLeaving("missing"))

	toasts := s.Toasts()
	require.Len(t, toasts, 2)
	require.True(t, toasts[0].Leaving)
	require.False(t, toasts[1].Leaving)

	require.True(t, s.RemoveToast("t1"))
	require.Len(t, s.Toasts(), 1)
}
