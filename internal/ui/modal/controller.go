package modal

import (
	"context"
	"errors"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/dingolabs/dingo/internal/api"
	"github.com/dingolabs/dingo/internal/core"
	"github.com/dingolabs/dingo/internal/core/catalog"
	"github.com/dingolabs/dingo/internal/core/pipeline"
	"github.com/dingolabs/dingo/internal/core/result"
	"github.com/dingolabs/dingo/internal/metrics"
	"github.com/dingolabs/dingo/internal/ui/clock"
	"github.com/dingolabs/dingo/internal/ui/surface"
)

const (
	// DefaultShowDelay is the delay before a new modal becomes visible.
	DefaultShowDelay = 10 * time.Millisecond
	// DefaultTransitionDelay is the closing transition before disposal.
	DefaultTransitionDelay = 300 * time.Millisecond
)

// StackPolicy decides what happens to the current modal when another opens.
type StackPolicy int

const (
	// StackPolicyReplace closes the current modal before opening a form, so
	// exactly one overlay is interactive at a time.
	StackPolicyReplace StackPolicy = iota
	// StackPolicyLegacy leaves earlier forms attached; only the newest is
	// tracked as current.
	StackPolicyLegacy
)

// Trigger is a user action that dismisses the current modal.
type Trigger string

const (
	TriggerCloseControl Trigger = "close"
	TriggerBackdrop     Trigger = "backdrop"
	TriggerCancelKey    Trigger = "cancel"
)

// ErrNothingToSubmit is returned when there is no submittable form.
var ErrNothingToSubmit = errors.New("no form ready to submit")

// Submitter runs a form submission.
type Submitter interface {
	Submit(ctx context.Context, op core.Operation, values url.Values, busy pipeline.BusyControl) (*api.Response, error)
}

// Controller tracks the current modal and drives its lifecycle on a surface.
// It is not safe for concurrent use; every method runs on the UI loop.
type Controller struct {
	Surface         *surface.Surface
	Clock           clock.Scheduler
	Pipeline        Submitter
	Policy          StackPolicy
	ShowDelay       time.Duration
	TransitionDelay time.Duration

	current *Modal
}

// NewController creates a controller with the default delays and the
// replace policy.
func NewController(s *surface.Surface, c clock.Scheduler, p Submitter) *Controller {
	return &Controller{
		Surface:         s,
		Clock:           c,
		Pipeline:        p,
		ShowDelay:       DefaultShowDelay,
		TransitionDelay: DefaultTransitionDelay,
	}
}

// Current returns the modal tracked as current, or nil.
func (c *Controller) Current() *Modal {
	return c.current
}

// Open shows the form for op. Unknown operations get the placeholder form.
func (c *Controller) Open(op core.Operation) *Modal {
	if c.Policy == StackPolicyReplace {
		c.Close()
	}

	schema := catalog.SchemaFor(op)
	kind := KindForm
	if schema.Placeholder() {
		kind = KindPlaceholder
	}

	m := &Modal{
		Kind:      kind,
		Title:     schema.Title,
		Operation: op,
		Schema:    schema,
		Values:    catalog.Defaults(schema),
	}
	c.insert(m)
	return m
}

// Close starts the closing transition of the current modal and clears the
// current reference. It is a no-op without a current modal.
func (c *Controller) Close() {
	m := c.current
	if m == nil {
		return
	}
	c.current = nil
	c.dismiss(m)
}

// Dismiss routes every dismissal trigger to Close.
func (c *Controller) Dismiss(Trigger) {
	c.Close()
}

// OpenResult closes the current modal and shows the rendered result.
func (c *Controller) OpenResult(resp *api.Response, op core.Operation) *Modal {
	c.Close()

	var body any
	if resp != nil {
		body = resp.Body
	}
	m := &Modal{
		Kind:      KindResult,
		Title:     result.SuccessTitle,
		Operation: op,
		View:      result.RenderBody(op, body),
		Response:  resp,
	}
	c.insert(m)
	return m
}

// OpenError closes the current modal and shows message as plain text.
func (c *Controller) OpenError(message string) *Modal {
	c.Close()

	m := &Modal{
		Kind:    KindError,
		Title:   result.FailureTitle,
		View:    result.ErrorView(message),
		Message: message,
	}
	c.insert(m)
	return m
}

// BeginSubmit claims the current form for a submission. The caller runs the
// pipeline (possibly off the UI loop) and hands the outcome to Resolve.
func (c *Controller) BeginSubmit() (*Modal, bool) {
	m := c.current
	if m == nil || !m.Submittable() {
		return nil, false
	}
	m.inFlight = true
	m.Problem = ""
	m.InvalidFields = nil
	return m, true
}

// Resolve applies a submission outcome. Validation failures keep the form
// open with the offending fields flagged; any other error opens the error
// modal; success opens the result modal.
func (c *Controller) Resolve(m *Modal, resp *api.Response, err error) *Modal {
	if m != nil {
		m.inFlight = false
	}

	if err != nil {
		classified := core.AsError(err)
		if classified.Kind == core.ErrorValidation && m != nil && m == c.current {
			m.Problem = classified.Message
			m.InvalidFields = classified.Fields
			c.Surface.Touch()
			return m
		}
		return c.OpenError(classified.Message)
	}

	op := core.OperationUnknown
	if m != nil {
		op = m.Operation
	}
	return c.OpenResult(resp, op)
}

// Submit runs the pipeline for the current form and applies the outcome.
func (c *Controller) Submit(ctx context.Context) (*Modal, error) {
	m, ok := c.BeginSubmit()
	if !ok {
		return nil, ErrNothingToSubmit
	}
	resp, err := c.Pipeline.Submit(ctx, m.Operation, m.Values, m)
	return c.Resolve(m, resp, err), nil
}

func (c *Controller) insert(m *Modal) {
	m.ID = uuid.NewString()
	m.State = StateOpening
	c.Surface.Append(m)
	c.current = m
	metrics.SetOpenModals(c.Surface.Len())

	c.Clock.AfterFunc(c.ShowDelay, func() {
		if m.State != StateOpening {
			return
		}
		m.State = StateVisible
		c.Surface.Touch()
	})
}

// dismiss closes m specifically. The delayed removal is bound to m, never to
// whichever modal is current when the timer fires.
func (c *Controller) dismiss(m *Modal) {
	if m.State == StateClosing || m.State == StateDisposed {
		return
	}
	m.State = StateClosing
	c.Surface.Touch()

	c.Clock.AfterFunc(c.TransitionDelay, func() {
		m.State = StateDisposed
		c.Surface.Remove(m.ID)
		metrics.SetOpenModals(c.Surface.Len())
	})
}
