package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dingolabs/dingo/internal/core/catalog"
	"github.com/dingolabs/dingo/internal/status"
	"github.com/dingolabs/dingo/internal/ui/modal"
	"github.com/dingolabs/dingo/internal/ui/surface"
)

// Title heads the console.
const Title = "Dingo Marketing Console"

// View renders the console.
func (m *Model) View() string {
	parts := []string{m.headerView(), ""}

	top, behind := m.topModal()
	if top == nil {
		parts = append(parts, m.menuView())
	} else {
		parts = append(parts, m.modalView(top))
		if behind > 0 {
			parts = append(parts, m.styles.Muted.Render(fmt.Sprintf("%d more behind", behind)))
		}
	}

	if toasts := m.toastsView(); toasts != "" {
		parts = append(parts, "", toasts)
	}
	parts = append(parts, "", m.footerView(top))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m *Model) headerView() string {
	var badge string
	switch m.badge {
	case status.BadgeOperational:
		badge = m.styles.BadgeOperational.Render(string(m.badge))
	case status.BadgeOffline:
		badge = m.styles.BadgeOffline.Render(string(m.badge))
	default:
		badge = m.styles.BadgeUnknown.Render("Checking")
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, m.styles.Header.Render(Title), " ", badge)
}

func (m *Model) menuView() string {
	lines := make([]string, len(m.operations))
	for i, op := range m.operations {
		label := fmt.Sprintf("%d. %s", i+1, catalog.SchemaFor(op).Title)
		if i == m.cursor {
			lines[i] = m.styles.MenuSelected.Render("› " + label)
		} else {
			lines[i] = m.styles.MenuItem.Render(label)
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// topModal returns the topmost modal and how many overlays sit under it.
func (m *Model) topModal() (*modal.Modal, int) {
	overlays := m.surface.Overlays()
	if len(overlays) == 0 {
		return nil, 0
	}
	top, _ := overlays[len(overlays)-1].(*modal.Modal)
	return top, len(overlays) - 1
}

func (m *Model) modalView(md *modal.Modal) string {
	frame := m.styles.Modal
	if md.State == modal.StateClosing || md.State == modal.StateDisposed {
		frame = m.styles.ModalClosing
	}
	frame = frame.Width(max(30, m.width-4))

	var body string
	switch md.Kind {
	case modal.KindForm:
		body = m.formFor(md).view(m.styles)
	case modal.KindPlaceholder:
		body = md.Text()
	case modal.KindResult, modal.KindError:
		body = m.viewport.View()
	}
	return frame.Render(lipgloss.JoinVertical(lipgloss.Left, m.styles.ModalTitle.Render(md.Title), body))
}

func (m *Model) toastsView() string {
	toasts := m.surface.Toasts()
	if len(toasts) == 0 {
		return ""
	}
	lines := make([]string, len(toasts))
	for i, t := range toasts {
		style := m.styles.ToastSuccess
		switch {
		case t.Leaving:
			style = m.styles.ToastLeaving
		case t.Kind == surface.ToastError:
			style = m.styles.ToastError
		}
		lines[i] = style.Render(t.Message)
	}
	return lipgloss.JoinVertical(lipgloss.Right, lines...)
}

func (m *Model) footerView(top *modal.Modal) string {
	var hints []string
	switch {
	case top == nil:
		hints = []string{"↑/↓ select", "enter open", "1-5 jump", "r refresh status", "q quit"}
	case top.Kind == modal.KindForm:
		hints = []string{"tab/↑/↓ field", "←/→ option", "space toggle", "ctrl+s submit", "alt+1-5 open", "esc close"}
	case top.Kind == modal.KindResult || top.Kind == modal.KindError:
		hints = []string{"↑/↓ scroll", "c copy", "esc close"}
	default:
		hints = []string{"esc close"}
	}
	return m.styles.Footer.Render(strings.Join(hints, " • "))
}
