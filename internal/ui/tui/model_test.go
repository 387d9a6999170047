package tui

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/dingolabs/dingo/internal/api"
	"github.com/dingolabs/dingo/internal/core"
	"github.com/dingolabs/dingo/internal/core/payload"
	"github.com/dingolabs/dingo/internal/core/pipeline"
	"github.com/dingolabs/dingo/internal/status"
	"github.com/dingolabs/dingo/internal/ui/clock"
	"github.com/dingolabs/dingo/internal/ui/modal"
	"github.com/dingolabs/dingo/internal/ui/surface"
)

type fakeClient struct {
	mu       sync.Mutex
	payloads []payload.Payload
	resp     *api.Response
	err      error
}

func (f *fakeClient) Submit(_ context.Context, _ core.Operation, body any) (*api.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p, ok := body.(payload.Payload); ok {
		f.payloads = append(f.payloads, p)
	}
	return f.resp, f.err
}

type fakeProber struct {
	state string
	err   error
}

func (f fakeProber) Status(context.Context) (*api.Response, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &api.Response{StatusCode: 200, Body: map[string]any{"status": f.state}}, nil
}

type harness struct {
	model  *Model
	clock  *clock.Manual
	client *fakeClient
	copied []string
}

func newHarness(t *testing.T, client *fakeClient) *harness {
	t.Helper()
	h := &harness{clock: clock.NewManual(), client: client}
	h.model = New(context.Background(), Options{
		Pipeline:      pipeline.New(client),
		Prober:        fakeProber{state: "operational"},
		Clock:         h.clock,
		MarkdownStyle: "notty",
		Copy: func(text string) error {
			h.copied = append(h.copied, text)
			return nil
		},
	})
	return h
}

// send applies msg and runs any resulting command to completion, feeding
// its message back, as the bubbletea loop would.
func (h *harness) send(msg tea.Msg) {
	_, cmd := h.model.Update(msg)
	for cmd != nil {
		next := cmd()
		if next == nil {
			return
		}
		if _, quit := next.(tea.QuitMsg); quit {
			return
		}
		_, cmd = h.model.Update(next)
	}
}

func (h *harness) key(keys ...string) {
	for _, k := range keys {
		switch k {
		case "enter":
			h.send(tea.KeyMsg{Type: tea.KeyEnter})
		case "esc":
			h.send(tea.KeyMsg{Type: tea.KeyEsc})
		case "tab":
			h.send(tea.KeyMsg{Type: tea.KeyTab})
		case "down":
			h.send(tea.KeyMsg{Type: tea.KeyDown})
		case "space":
			h.send(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
		case "right":
			h.send(tea.KeyMsg{Type: tea.KeyRight})
		case "ctrl+s":
			h.send(tea.KeyMsg{Type: tea.KeyCtrlS})
		case "ctrl+w":
			h.send(tea.KeyMsg{Type: tea.KeyCtrlW})
		case "alt+1", "alt+2", "alt+3", "alt+4", "alt+5":
			h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k[len("alt+"):]), Alt: true})
		default:
			h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)})
		}
	}
}

func successClient() *fakeClient {
	return &fakeClient{resp: &api.Response{StatusCode: 200, Body: map[string]any{
		"task_id": "t-1",
		"status":  "completed",
		"content": "# Draft",
	}}}
}

func TestMenuOpensSelectedForm(t *testing.T) {
	h := newHarness(t, successClient())

	h.key("down", "enter")

	current := h.model.Controller().Current()
	require.NotNil(t, current)
	require.Equal(t, core.OperationGenerate, current.Operation)
	require.Equal(t, modal.KindForm, current.Kind)
	require.Equal(t, 1, h.model.Surface().Len())

	h.clock.Advance(modal.DefaultShowDelay)
	require.Equal(t, modal.StateVisible, current.State)
	require.Contains(t, h.model.View(), "AI Content Generation")
}

func TestNumberShortcutOpensForm(t *testing.T) {
	h := newHarness(t, successClient())

	h.key("5")
	require.Equal(t, core.OperationResearch, h.model.Controller().Current().Operation)
}

func TestEscapeClosesFormAfterTransition(t *testing.T) {
	h := newHarness(t, successClient())
	h.key("enter")
	form := h.model.Controller().Current()

	h.key("esc")
	require.Nil(t, h.model.Controller().Current())
	require.Equal(t, modal.StateClosing, form.State)
	require.Equal(t, 1, h.model.Surface().Len())

	h.clock.Advance(modal.DefaultTransitionDelay)
	require.Equal(t, 0, h.model.Surface().Len())
	require.Contains(t, h.model.View(), "1. User Analysis")
}

func TestCloseControlKey(t *testing.T) {
	h := newHarness(t, successClient())
	h.key("enter", "ctrl+w")
	require.Nil(t, h.model.Controller().Current())
}

func TestTypingAndSubmitOpensResult(t *testing.T) {
	client := &fakeClient{resp: &api.Response{StatusCode: 200, Body: map[string]any{
		"task_id":  "t-9",
		"status":   "completed",
		"insights": map[string]any{"total_users": 1.0},
	}}}
	h := newHarness(t, client)

	h.key("enter", "octocat", "ctrl+s")

	require.Len(t, client.payloads, 1)
	require.Equal(t, []string{"octocat"}, client.payloads[0]["user_list"])
	require.Equal(t, "basic", client.payloads[0]["analysis_depth"])

	current := h.model.Controller().Current()
	require.Equal(t, modal.KindResult, current.Kind)
	require.Equal(t, "Operation Successful", current.Title)
	require.Contains(t, h.model.View(), "Operation Successful")
}

func TestSubmitFromButton(t *testing.T) {
	h := newHarness(t, successClient())

	// analyze: username, depth, language, then the submit control
	h.key("enter", "octocat", "tab", "tab", "tab")
	require.True(t, h.model.form.onSubmit())

	h.key("enter")
	require.Equal(t, modal.KindResult, h.model.Controller().Current().Kind)
}

func TestSelectFieldPicksOption(t *testing.T) {
	h := newHarness(t, successClient())
	h.key("enter", "tab")

	form := h.model.Controller().Current()
	require.Equal(t, "basic", form.Values.Get("depth"))

	h.key("right")
	require.Equal(t, "deep", form.Values.Get("depth"))
	h.key("right")
	require.Equal(t, "basic", form.Values.Get("depth"))
}

func TestUnsetSelectTakesOptionUnderCursor(t *testing.T) {
	h := newHarness(t, successClient())
	h.key("2")

	form := h.model.Controller().Current()
	require.Empty(t, form.Values.Get("content_type"))

	h.key("right")
	require.Equal(t, "blog_post", form.Values.Get("content_type"))
}

func TestMultiSelectToggles(t *testing.T) {
	h := newHarness(t, successClient())
	h.key("3", "tab")

	form := h.model.Controller().Current()
	h.key("space", "right", "space")
	require.Equal(t, []string{"star", "follow"}, form.Values["interaction_types"])

	h.key("space")
	require.Equal(t, []string{"star"}, form.Values["interaction_types"])
}

func TestValidationKeepsFormOpen(t *testing.T) {
	client := successClient()
	h := newHarness(t, client)

	h.key("enter", "ctrl+s")

	current := h.model.Controller().Current()
	require.Equal(t, modal.KindForm, current.Kind)
	require.Equal(t, "GitHub Username is required", current.Problem)
	require.True(t, current.Invalid("username"))
	require.Empty(t, client.payloads)
	require.Contains(t, h.model.View(), "GitHub Username is required")
}

func TestBackendFailureOpensErrorModal(t *testing.T) {
	client := &fakeClient{err: &core.Error{Kind: core.ErrorHTTP, StatusCode: 401, Message: "bad token"}}
	h := newHarness(t, client)

	h.key("enter", "octocat", "ctrl+s")

	current := h.model.Controller().Current()
	require.Equal(t, modal.KindError, current.Kind)
	require.Equal(t, "bad token", current.Message)
	require.Contains(t, h.model.View(), "bad token")
}

func TestBusyFormIgnoresSubmit(t *testing.T) {
	h := newHarness(t, successClient())
	h.key("enter", "octocat")

	form := h.model.Controller().Current()
	form.SetBusy(true)

	_, cmd := h.model.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	require.Nil(t, cmd)
	require.Same(t, form, h.model.Controller().Current())
	require.Contains(t, h.model.View(), modal.ProcessingLabel)
}

func TestCopyResultShowsToast(t *testing.T) {
	h := newHarness(t, successClient())
	h.key("enter", "octocat", "ctrl+s", "c")

	require.Len(t, h.copied, 1)
	require.Contains(t, h.copied[0], "Operation Successful")
	require.Contains(t, h.copied[0], "# Draft")

	toasts := h.model.Surface().Toasts()
	require.Len(t, toasts, 1)
	require.Equal(t, CopiedMessage, toasts[0].Message)
	require.Equal(t, surface.ToastSuccess, toasts[0].Kind)

	h.clock.Advance(3*time.Second + 300*time.Millisecond)
	require.Empty(t, h.model.Surface().Toasts())
}

func TestCopyFailureShowsErrorToast(t *testing.T) {
	h := newHarness(t, successClient())
	h.model.copy = func(string) error { return errors.New("no clipboard") }

	h.key("enter", "octocat", "ctrl+s", "c")

	toasts := h.model.Surface().Toasts()
	require.Len(t, toasts, 1)
	require.Equal(t, surface.ToastError, toasts[0].Kind)
	require.True(t, strings.HasPrefix(toasts[0].Message, CopyFailedMessage))
}

func TestInitProbesStatus(t *testing.T) {
	h := newHarness(t, successClient())
	require.Contains(t, h.model.View(), "Checking")

	h.send(h.model.Init()())
	require.Equal(t, status.BadgeOperational, h.model.Badge())
	require.Contains(t, h.model.View(), "Operational")
}

func TestOfflineBadge(t *testing.T) {
	h := newHarness(t, successClient())
	h.model.prober = fakeProber{err: errors.New("connection refused")}

	h.key("r")
	require.Equal(t, status.BadgeOffline, h.model.Badge())
}

func TestDispatchRunsCallbackOnLoop(t *testing.T) {
	h := newHarness(t, successClient())

	ran := false
	h.send(dispatchMsg{fn: func() { ran = true }})
	require.True(t, ran)
}

func TestReloadAppliesTimings(t *testing.T) {
	h := newHarness(t, successClient())

	h.send(ReloadMsg{Timings: Timings{TransitionDelay: 50 * time.Millisecond}})
	require.Equal(t, 50*time.Millisecond, h.model.Controller().TransitionDelay)

	toasts := h.model.Surface().Toasts()
	require.Len(t, toasts, 1)
	require.Equal(t, ReloadedMessage, toasts[0].Message)
}

func TestReloadFailureShowsError(t *testing.T) {
	h := newHarness(t, successClient())

	h.send(ReloadMsg{Err: errors.New("config reload failed: bad")})

	toasts := h.model.Surface().Toasts()
	require.Len(t, toasts, 1)
	require.Equal(t, surface.ToastError, toasts[0].Kind)
}

func TestLegacyPolicyStacksForms(t *testing.T) {
	h := newHarness(t, successClient())
	h.model.Controller().Policy = modal.StackPolicyLegacy

	h.model.Open(core.OperationAnalyze)
	second := h.model.Open(core.OperationCampaign)

	require.Equal(t, 2, h.model.Surface().Len())
	require.Same(t, second, h.model.Controller().Current())
	require.Contains(t, h.model.View(), "1 more behind")
}

func TestAltDigitStacksFormUnderLegacyPolicy(t *testing.T) {
	h := newHarness(t, successClient())
	h.model.Controller().Policy = modal.StackPolicyLegacy

	h.key("1", "23")
	first := h.model.Controller().Current()
	require.Equal(t, "23", first.Values.Get("username"))

	h.key("alt+4")
	current := h.model.Controller().Current()
	require.Equal(t, core.OperationCampaign, current.Operation)
	require.Equal(t, 2, h.model.Surface().Len())
	require.Equal(t, "23", first.Values.Get("username"))

	h.clock.Advance(modal.DefaultShowDelay)
	require.Contains(t, h.model.View(), "1 more behind")
}

func TestAltDigitReplacesFormByDefault(t *testing.T) {
	h := newHarness(t, successClient())

	h.key("1", "alt+5")
	require.Equal(t, core.OperationResearch, h.model.Controller().Current().Operation)

	h.clock.Advance(modal.DefaultTransitionDelay + modal.DefaultShowDelay)
	require.Equal(t, 1, h.model.Surface().Len())
}

func TestAltDigitOpensFromMenu(t *testing.T) {
	h := newHarness(t, successClient())

	h.key("alt+2")
	require.Equal(t, core.OperationGenerate, h.model.Controller().Current().Operation)
}

func TestCloneValuesIsIndependent(t *testing.T) {
	in := url.Values{"goals": {"engagement"}}
	out := cloneValues(in)
	out["goals"][0] = "changed"
	require.Equal(t, "engagement", in.Get("goals"))
}
