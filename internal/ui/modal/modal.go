// Package modal owns the modal lifecycle: which overlay is current, how it
// transitions between states, and what happens when a form is submitted.
package modal

import (
	"net/url"
	"strings"
	"sync/atomic"

	"github.com/dingolabs/dingo/internal/api"
	"github.com/dingolabs/dingo/internal/core"
	"github.com/dingolabs/dingo/internal/core/catalog"
	"github.com/dingolabs/dingo/internal/output"
)

// Kind is what a modal presents.
type Kind string

const (
	KindForm        Kind = "form"
	KindPlaceholder Kind = "placeholder"
	KindResult      Kind = "result"
	KindError       Kind = "error"
)

// State is a step of the modal lifecycle:
// opening -> visible -> closing -> disposed.
type State string

const (
	StateOpening  State = "opening"
	StateVisible  State = "visible"
	StateClosing  State = "closing"
	StateDisposed State = "disposed"
)

// ProcessingLabel replaces the submit label while a request is in flight.
const ProcessingLabel = "Processing..."

// Modal is one overlay on the render surface.
type Modal struct {
	ID        string
	Kind      Kind
	Title     string
	Operation core.Operation
	State     State

	// Form and placeholder modals.
	Schema        catalog.FormSchema
	Values        url.Values
	Problem       string
	InvalidFields []string

	// Result and error modals.
	View     output.View
	Response *api.Response
	Message  string

	busy     atomic.Bool
	inFlight bool
}

// OverlayID identifies the modal on the surface.
func (m *Modal) OverlayID() string {
	return m.ID
}

// SetBusy toggles the submitting state. It is safe to call from the
// goroutine running the request.
func (m *Modal) SetBusy(busy bool) {
	m.busy.Store(busy)
}

// Busy reports whether a submission is in flight.
func (m *Modal) Busy() bool {
	return m.busy.Load()
}

// SubmitLabel is the caption of the submit control.
func (m *Modal) SubmitLabel() string {
	if m.Busy() {
		return ProcessingLabel
	}
	return m.Schema.SubmitLabel
}

// Interactive reports whether the modal accepts input.
func (m *Modal) Interactive() bool {
	return m.State == StateOpening || m.State == StateVisible
}

// Submittable reports whether the modal is a form that can be submitted now.
func (m *Modal) Submittable() bool {
	return m.Kind == KindForm && m.Interactive() && !m.inFlight && !m.Busy()
}

// SetValue replaces the values of a field.
func (m *Modal) SetValue(name string, values ...string) {
	if m.Values == nil {
		m.Values = url.Values{}
	}
	if len(values) == 0 {
		m.Values.Del(name)
		return
	}
	m.Values[name] = append([]string(nil), values...)
}

// Toggle adds or removes one option of a multiselect field.
func (m *Modal) Toggle(name, option string) {
	if m.Values == nil {
		m.Values = url.Values{}
	}
	current := m.Values[name]
	for i, v := range current {
		if v == option {
			m.Values[name] = append(current[:i:i], current[i+1:]...)
			if len(m.Values[name]) == 0 {
				m.Values.Del(name)
			}
			return
		}
	}
	m.Values[name] = append(current, option)
}

// Selected reports whether option is chosen for a field.
func (m *Modal) Selected(name, option string) bool {
	for _, v := range m.Values[name] {
		if v == option {
			return true
		}
	}
	return false
}

// Invalid reports whether the last submit attempt flagged the field.
func (m *Modal) Invalid(name string) bool {
	for _, f := range m.InvalidFields {
		if f == name {
			return true
		}
	}
	return false
}

// Text renders the modal body as Markdown, the form used for Copy Result.
func (m *Modal) Text() string {
	switch m.Kind {
	case KindResult, KindError:
		rendered, err := (&output.MarkdownFormatter{}).FormatView(m.View)
		if err != nil {
			return m.Message
		}
		return strings.TrimSpace(rendered)
	default:
		return m.Schema.Body
	}
}
