package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dingolabs/dingo/internal/core/catalog"
	"github.com/dingolabs/dingo/internal/ui/modal"
)

// form edits the values of one form modal. Free-text fields are backed by
// text inputs; select fields keep an option cursor. Every edit is written
// straight into the modal values.
type form struct {
	modal   *modal.Modal
	focus   int
	inputs  map[string]*textinput.Model
	cursors map[string]int
}

func newForm(m *modal.Modal) *form {
	f := &form{
		modal:   m,
		inputs:  make(map[string]*textinput.Model),
		cursors: make(map[string]int),
	}
	for _, field := range m.Schema.Fields {
		switch field.Kind {
		case catalog.KindSelect, catalog.KindMultiSelect:
			f.cursors[field.Name] = optionIndex(field, m.Values.Get(field.Name))
		default:
			ti := textinput.New()
			ti.Prompt = "> "
			ti.Placeholder = field.Placeholder
			ti.SetValue(m.Values.Get(field.Name))
			f.inputs[field.Name] = &ti
		}
	}
	f.setFocus(0)
	return f
}

func (f *form) fields() []catalog.FieldSpec {
	return f.modal.Schema.Fields
}

// onSubmit reports whether the submit control has focus.
func (f *form) onSubmit() bool {
	return f.focus >= len(f.fields())
}

func (f *form) focused() (catalog.FieldSpec, bool) {
	if f.onSubmit() {
		return catalog.FieldSpec{}, false
	}
	return f.fields()[f.focus], true
}

func (f *form) setFocus(i int) {
	n := len(f.fields()) + 1
	f.focus = ((i % n) + n) % n

	for name, in := range f.inputs {
		if field, ok := f.focused(); ok && field.Name == name {
			in.Focus()
		} else {
			in.Blur()
		}
	}
}

func (f *form) next() { f.setFocus(f.focus + 1) }
func (f *form) prev() { f.setFocus(f.focus - 1) }

// update applies a key to the focused field.
func (f *form) update(msg tea.KeyMsg) tea.Cmd {
	field, ok := f.focused()
	if !ok {
		return nil
	}

	switch field.Kind {
	case catalog.KindSelect:
		delta := 0
		switch msg.String() {
		case "left", "h":
			delta = -1
		case "right", "l", " ":
			delta = 1
		default:
			return nil
		}
		// The first key on an unset select picks the option under the cursor.
		if f.modal.Values.Get(field.Name) != "" {
			f.moveOption(field, delta)
		}
		if len(field.Options) > 0 {
			f.modal.SetValue(field.Name, field.Options[f.cursors[field.Name]].Value)
		}
		return nil
	case catalog.KindMultiSelect:
		switch msg.String() {
		case "left", "h":
			f.moveOption(field, -1)
		case "right", "l":
			f.moveOption(field, 1)
		case " ", "x":
			if len(field.Options) > 0 {
				f.modal.Toggle(field.Name, field.Options[f.cursors[field.Name]].Value)
			}
		}
		return nil
	}

	in := f.inputs[field.Name]
	if in == nil {
		return nil
	}
	updated, cmd := in.Update(msg)
	*in = updated
	if value := in.Value(); strings.TrimSpace(value) == "" {
		f.modal.SetValue(field.Name)
	} else {
		f.modal.SetValue(field.Name, value)
	}
	return cmd
}

func (f *form) moveOption(field catalog.FieldSpec, delta int) {
	n := len(field.Options)
	if n == 0 {
		return
	}
	f.cursors[field.Name] = ((f.cursors[field.Name]+delta)%n + n) % n
}

func (f *form) view(st Styles) string {
	m := f.modal
	var sb strings.Builder

	for i, field := range f.fields() {
		label := field.Label
		if field.Required {
			label += " *"
		}
		switch {
		case m.Invalid(field.Name):
			label = st.Invalid.Render(label)
		case i == f.focus:
			label = st.LabelFocused.Render(label)
		default:
			label = st.Label.Render(label)
		}
		sb.WriteString(label)
		sb.WriteString("\n")
		sb.WriteString(f.fieldView(field, i == f.focus, st))
		sb.WriteString("\n")
		if field.Help != "" {
			sb.WriteString(st.Muted.Render(field.Help))
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	button := st.Button
	switch {
	case m.Busy():
		button = st.ButtonBusy
	case f.onSubmit():
		button = st.ButtonFocus
	}
	sb.WriteString(button.Render(m.SubmitLabel()))

	if m.Problem != "" {
		sb.WriteString("\n")
		sb.WriteString(st.Problem.Render(m.Problem))
	}
	return sb.String()
}

func (f *form) fieldView(field catalog.FieldSpec, focused bool, st Styles) string {
	m := f.modal
	switch field.Kind {
	case catalog.KindSelect:
		label := st.Muted.Render("(choose)")
		if v := m.Values.Get(field.Name); v != "" {
			label = optionLabel(field, v)
		}
		if focused {
			return fmt.Sprintf("‹ %s ›", label)
		}
		return "  " + label
	case catalog.KindMultiSelect:
		opts := make([]string, len(field.Options))
		for i, opt := range field.Options {
			mark := "[ ]"
			if m.Selected(field.Name, opt.Value) {
				mark = "[x]"
			}
			item := mark + " " + opt.Label
			if focused && i == f.cursors[field.Name] {
				item = st.LabelFocused.Render(item)
			}
			opts[i] = item
		}
		return lipgloss.JoinVertical(lipgloss.Left, opts...)
	}
	if in := f.inputs[field.Name]; in != nil {
		return in.View()
	}
	return ""
}

func optionIndex(field catalog.FieldSpec, value string) int {
	for i, opt := range field.Options {
		if opt.Value == value {
			return i
		}
	}
	return 0
}

func optionLabel(field catalog.FieldSpec, value string) string {
	for _, opt := range field.Options {
		if opt.Value == value {
			return opt.Label
		}
	}
	return value
}
