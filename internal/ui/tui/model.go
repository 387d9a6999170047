// Package tui is the interactive console: a bubbletea program that drives the
// modal controller, renders the surface and shows the backend status badge.
package tui

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dingolabs/dingo/internal/api"
	"github.com/dingolabs/dingo/internal/core"
	"github.com/dingolabs/dingo/internal/output"
	"github.com/dingolabs/dingo/internal/status"
	"github.com/dingolabs/dingo/internal/ui/clock"
	"github.com/dingolabs/dingo/internal/ui/modal"
	"github.com/dingolabs/dingo/internal/ui/notify"
	"github.com/dingolabs/dingo/internal/ui/surface"
)

// Toast messages.
const (
	CopiedMessage     = "Copied to clipboard"
	CopyFailedMessage = "Copy failed"
	ReloadedMessage   = "Configuration reloaded"
)

// Timings are the adjustable delays of the console.
type Timings struct {
	ShowDelay            time.Duration
	TransitionDelay      time.Duration
	NotificationDuration time.Duration
	NotificationExit     time.Duration
	StatusInterval       time.Duration
}

// Options configures a console model.
type Options struct {
	Pipeline modal.Submitter
	Prober   status.Prober
	Clock    clock.Scheduler
	Policy   modal.StackPolicy
	Timings  Timings

	// MarkdownStyle is the glamour style for result bodies.
	MarkdownStyle string

	// Copy writes to the system clipboard; defaults to clipboard.WriteAll.
	Copy func(text string) error
}

// dispatchMsg carries a scheduler callback onto the update loop.
type dispatchMsg struct {
	fn func()
}

// submittedMsg is the outcome of a submission started from the form.
type submittedMsg struct {
	modal *modal.Modal
	resp  *api.Response
	err   error
}

// statusMsg is the outcome of a status probe.
type statusMsg struct {
	badge status.Badge
}

// ReloadMsg applies new timings after the config file changed.
type ReloadMsg struct {
	Timings Timings
	Err     error
}

// Model is the console state. All fields are owned by the update loop.
type Model struct {
	ctx context.Context

	surface    *surface.Surface
	controller *modal.Controller
	notifier   *notify.Notifier
	pipeline   modal.Submitter
	prober     status.Prober
	interval   time.Duration
	copy       func(string) error

	styles        Styles
	markdownStyle string

	operations []core.Operation
	cursor     int
	badge      status.Badge

	form     *form
	viewport viewport.Model
	shown    string

	width  int
	height int
}

// New creates a console model.
func New(ctx context.Context, opts Options) *Model {
	if ctx == nil {
		ctx = context.Background()
	}
	sched := opts.Clock
	if sched == nil {
		sched = &clock.Realtime{}
	}
	copyFn := opts.Copy
	if copyFn == nil {
		copyFn = clipboard.WriteAll
	}

	s := surface.New()
	controller := modal.NewController(s, sched, opts.Pipeline)
	controller.Policy = opts.Policy

	m := &Model{
		ctx:           ctx,
		surface:       s,
		controller:    controller,
		notifier:      notify.New(s, sched),
		pipeline:      opts.Pipeline,
		prober:        opts.Prober,
		copy:          copyFn,
		styles:        DefaultStyles(),
		markdownStyle: opts.MarkdownStyle,
		operations:    core.Operations(),
		viewport:      viewport.New(76, 16),
		width:         80,
		height:        24,
	}
	m.applyTimings(opts.Timings)
	return m
}

// Controller exposes the modal controller.
func (m *Model) Controller() *modal.Controller {
	return m.controller
}

// Surface exposes the render surface.
func (m *Model) Surface() *surface.Surface {
	return m.surface
}

// Badge returns the last status badge, empty before the first probe.
func (m *Model) Badge() status.Badge {
	return m.badge
}

func (m *Model) applyTimings(t Timings) {
	if t.ShowDelay > 0 {
		m.controller.ShowDelay = t.ShowDelay
	}
	if t.TransitionDelay > 0 {
		m.controller.TransitionDelay = t.TransitionDelay
	}
	if t.NotificationDuration > 0 {
		m.notifier.Duration = t.NotificationDuration
	}
	if t.NotificationExit > 0 {
		m.notifier.Exit = t.NotificationExit
	}
	m.interval = t.StatusInterval
}

// Init starts the status probe.
func (m *Model) Init() tea.Cmd {
	return m.probe(0)
}

func (m *Model) probe(after time.Duration) tea.Cmd {
	if m.prober == nil {
		return nil
	}
	run := func() tea.Msg {
		return statusMsg{badge: status.Check(m.ctx, m.prober)}
	}
	if after <= 0 {
		return run
	}
	return tea.Tick(after, func(time.Time) tea.Msg { return run() })
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := m.update(msg)
	if current := m.controller.Current(); current != nil &&
		(current.Kind == modal.KindResult || current.Kind == modal.KindError) {
		m.syncViewport(current)
	}
	return m, cmd
}

func (m *Model) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.viewport.Width = max(20, msg.Width-8)
		m.viewport.Height = max(5, msg.Height-12)
		m.shown = ""
		return nil

	case dispatchMsg:
		msg.fn()
		return nil

	case statusMsg:
		m.badge = msg.badge
		if m.interval > 0 {
			return m.probe(m.interval)
		}
		return nil

	case submittedMsg:
		m.controller.Resolve(msg.modal, msg.resp, msg.err)
		return nil

	case ReloadMsg:
		if msg.Err != nil {
			m.notifier.Error(msg.Err.Error())
			return nil
		}
		m.applyTimings(msg.Timings)
		m.notifier.Success(ReloadedMessage)
		return nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return tea.Quit
		}
		return m.handleKey(msg)
	}
	return nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	current := m.controller.Current()
	if current == nil {
		return m.handleMenuKey(msg)
	}

	switch msg.String() {
	case "esc":
		m.controller.Dismiss(modal.TriggerCancelKey)
		return nil
	case "ctrl+w":
		m.controller.Dismiss(modal.TriggerCloseControl)
		return nil
	}
	// Plain digits belong to form fields, so alt+digit opens an operation
	// over a modal.
	if key := msg.String(); strings.HasPrefix(key, "alt+") && m.openHotkey(strings.TrimPrefix(key, "alt+")) {
		return nil
	}

	switch current.Kind {
	case modal.KindForm:
		return m.handleFormKey(current, msg)
	case modal.KindPlaceholder:
		if msg.String() == "enter" || msg.String() == "q" {
			m.controller.Dismiss(modal.TriggerCloseControl)
		}
	case modal.KindResult, modal.KindError:
		switch msg.String() {
		case "enter", "q":
			m.controller.Dismiss(modal.TriggerCloseControl)
		case "c", "y":
			m.copyResult(current)
		default:
			m.syncViewport(current)
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return cmd
		}
	}
	return nil
}

func (m *Model) handleMenuKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q":
		return tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.operations)-1 {
			m.cursor++
		}
	case "enter":
		m.open(m.operations[m.cursor])
	case "r":
		return m.probe(0)
	default:
		m.openHotkey(strings.TrimPrefix(msg.String(), "alt+"))
	}
	return nil
}

// openHotkey opens the operation numbered by key ("1".."9") and reports
// whether key named one.
func (m *Model) openHotkey(key string) bool {
	if len(key) != 1 || key[0] < '1' || key[0] > '9' {
		return false
	}
	i := int(key[0] - '1')
	if i >= len(m.operations) {
		return false
	}
	m.cursor = i
	m.open(m.operations[i])
	return true
}

// Open shows the form of op, as a menu selection would.
func (m *Model) Open(op core.Operation) *modal.Modal {
	return m.open(op)
}

func (m *Model) open(op core.Operation) *modal.Modal {
	opened := m.controller.Open(op)
	m.form = nil
	if opened.Kind == modal.KindForm {
		m.form = newForm(opened)
	}
	return opened
}

func (m *Model) handleFormKey(current *modal.Modal, msg tea.KeyMsg) tea.Cmd {
	f := m.formFor(current)
	if current.Busy() || !current.Interactive() {
		return nil
	}

	switch msg.String() {
	case "tab", "down":
		f.next()
		return nil
	case "shift+tab", "up":
		f.prev()
		return nil
	case "ctrl+s":
		return m.submit()
	case "enter":
		if f.onSubmit() {
			return m.submit()
		}
		f.next()
		return nil
	}
	return f.update(msg)
}

func (m *Model) formFor(current *modal.Modal) *form {
	if m.form == nil || m.form.modal != current {
		m.form = newForm(current)
	}
	return m.form
}

// submit claims the current form and runs the pipeline off the update loop.
func (m *Model) submit() tea.Cmd {
	target, ok := m.controller.BeginSubmit()
	if !ok {
		return nil
	}
	op := target.Operation
	values := cloneValues(target.Values)

	ctx, pipeline := m.ctx, m.pipeline
	return func() tea.Msg {
		resp, err := pipeline.Submit(ctx, op, values, target)
		return submittedMsg{modal: target, resp: resp, err: err}
	}
}

func (m *Model) copyResult(current *modal.Modal) {
	if err := m.copy(current.Text()); err != nil {
		m.notifier.Error(CopyFailedMessage + ": " + err.Error())
		return
	}
	m.notifier.Success(CopiedMessage)
}

// syncViewport loads the body of a result or error modal once per modal.
func (m *Model) syncViewport(current *modal.Modal) {
	if m.shown == current.ID {
		return
	}
	m.shown = current.ID

	body := current.Text()
	if rendered, err := output.RenderMarkdown(body, m.markdownStyle, m.viewport.Width); err == nil {
		body = rendered
	}
	m.viewport.SetContent(body)
	m.viewport.GotoTop()
}

func cloneValues(values url.Values) url.Values {
	out := make(url.Values, len(values))
	for k, v := range values {
		out[k] = append([]string(nil), v...)
	}
	return out
}
