package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Palette
var (
	colorPrimary = lipgloss.AdaptiveColor{Light: "#1F3A68", Dark: "#7AA2F7"}
	colorMuted   = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}
	colorBorder  = lipgloss.AdaptiveColor{Light: "#D1D5DB", Dark: "#3B4261"}
	colorSuccess = lipgloss.Color("#22C55E")
	colorDanger  = lipgloss.Color("#EF4444")
	colorWarning = lipgloss.Color("#F59E0B")
)

// Styles holds the styled components of the console.
type Styles struct {
	Header lipgloss.Style
	Footer lipgloss.Style
	Muted  lipgloss.Style

	MenuItem     lipgloss.Style
	MenuSelected lipgloss.Style

	Modal        lipgloss.Style
	ModalClosing lipgloss.Style
	ModalTitle   lipgloss.Style
	Label        lipgloss.Style
	LabelFocused lipgloss.Style
	Invalid      lipgloss.Style
	Problem      lipgloss.Style
	Button       lipgloss.Style
	ButtonFocus  lipgloss.Style
	ButtonBusy   lipgloss.Style

	BadgeOperational lipgloss.Style
	BadgeOffline     lipgloss.Style
	BadgeUnknown     lipgloss.Style

	ToastSuccess lipgloss.Style
	ToastError   lipgloss.Style
	ToastLeaving lipgloss.Style
}

// DefaultStyles returns the console styles.
func DefaultStyles() Styles {
	badge := lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(lipgloss.Color("#FFFFFF"))
	toast := lipgloss.NewStyle().Padding(0, 1).Border(lipgloss.RoundedBorder())
	button := lipgloss.NewStyle().Padding(0, 2).Border(lipgloss.NormalBorder()).BorderForeground(colorBorder)

	return Styles{
		Header: lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Padding(0, 1),
		Footer: lipgloss.NewStyle().Foreground(colorMuted).Padding(0, 1),
		Muted:  lipgloss.NewStyle().Foreground(colorMuted),

		MenuItem:     lipgloss.NewStyle().PaddingLeft(2),
		MenuSelected: lipgloss.NewStyle().PaddingLeft(1).Foreground(colorPrimary).Bold(true),

		Modal: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorPrimary).
			Padding(1, 2),
		ModalClosing: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Foreground(colorMuted).
			Padding(1, 2),
		ModalTitle:   lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).MarginBottom(1),
		Label:        lipgloss.NewStyle().Bold(true),
		LabelFocused: lipgloss.NewStyle().Bold(true).Foreground(colorPrimary),
		Invalid:      lipgloss.NewStyle().Bold(true).Foreground(colorDanger),
		Problem:      lipgloss.NewStyle().Foreground(colorDanger).MarginTop(1),
		Button:       button,
		ButtonFocus:  button.BorderForeground(colorPrimary).Foreground(colorPrimary).Bold(true),
		ButtonBusy:   button.Foreground(colorWarning),

		BadgeOperational: badge.Background(colorSuccess),
		BadgeOffline:     badge.Background(colorDanger),
		BadgeUnknown:     badge.Background(colorMuted),

		ToastSuccess: toast.BorderForeground(colorSuccess),
		ToastError:   toast.BorderForeground(colorDanger),
		ToastLeaving: toast.BorderForeground(colorBorder).Foreground(colorMuted),
	}
}
