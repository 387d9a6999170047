package pipeline

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/dingolabs/dingo/internal/api"
	"github.com/dingolabs/dingo/internal/core"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// busyRecorder records every busy transition and whether busy was set while
// the request was in flight.
type busyRecorder struct {
	mu          sync.Mutex
	transitions []bool
	current     bool
}

func (b *busyRecorder) SetBusy(busy bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.transitions = append(b.transitions, busy)
	b.current = busy
}

func (b *busyRecorder) Busy() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.current
}

func newPipeline(t *testing.T, handler http.HandlerFunc) *Pipeline {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return New(&api.Client{BaseURL: server.URL + "/api/v1", HTTPClient: server.Client()})
}

func analyzeValues() url.Values {
	return url.Values{"username": {" octocat "}, "depth": {"deep"}, "language": {"en"}}
}

func TestSubmitSuccessPostsTransformedPayload(t *testing.T) {
	busy := &busyRecorder{}
	var sawBusy bool
	var got map[string]any

	p := newPipeline(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/v1/github/analyze", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		sawBusy = busy.Busy()
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"task_id":"t-1","insights":{"total_users":1}}`))
	})

	resp, err := p.Submit(context.Background(), core.OperationAnalyze, analyzeValues(), busy)
	require.NoError(t, err)
	require.Equal(t, "t-1", resp.Object()["task_id"])

	require.True(t, sawBusy, "busy must be set while the request is in flight")
	require.False(t, busy.Busy())
	require.Equal(t, []bool{true, false}, busy.transitions)

	require.Equal(t, map[string]any{
		"user_list":      []any{"octocat"},
		"analysis_depth": "deep",
		"language":       "en",
	}, got)
}

func TestSubmitHTTPFailureRestoresBusy(t *testing.T) {
	busy := &busyRecorder{}
	var sawBusy bool

	p := newPipeline(t, func(w http.ResponseWriter, r *http.Request) {
		sawBusy = busy.Busy()
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":"bad token"}`))
	})

	_, err := p.Submit(context.Background(), core.OperationAnalyze, analyzeValues(), busy)
	require.Error(t, err)

	classified := core.AsError(err)
	require.Equal(t, core.ErrorHTTP, classified.Kind)
	require.Equal(t, "bad token", classified.Message)
	require.Equal(t, http.StatusUnauthorized, classified.StatusCode)

	require.True(t, sawBusy)
	require.Equal(t, []bool{true, false}, busy.transitions)
}

func TestSubmitNetworkFailureRestoresBusy(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	base := server.URL
	server.Close()

	busy := &busyRecorder{}
	p := New(&api.Client{BaseURL: base})

	_, err := p.Submit(context.Background(), core.OperationGenerate, url.Values{
		"content_type": {"blog_post"},
		"topic":        {"Go"},
	}, busy)
	require.Error(t, err)
	require.Equal(t, core.ErrorNetwork, core.KindOf(err))
	require.Equal(t, []bool{true, false}, busy.transitions)
}

func TestSubmitUnknownOperationMakesNoCall(t *testing.T) {
	called := false
	p := newPipeline(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	busy := &busyRecorder{}
	_, err := p.Submit(context.Background(), core.Operation("deploy"), url.Values{}, busy)
	require.Error(t, err)
	require.Equal(t, core.ErrorUnknownOperation, core.KindOf(err))
	require.Equal(t, "Unknown operation type", err.Error())
	require.False(t, called)
	require.Empty(t, busy.transitions)
}

func TestSubmitValidationFailureMakesNoCall(t *testing.T) {
	called := false
	p := newPipeline(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	busy := &busyRecorder{}
	_, err := p.Submit(context.Background(), core.OperationAnalyze, url.Values{"username": {"  "}}, busy)
	require.Error(t, err)
	require.Equal(t, core.ErrorValidation, core.KindOf(err))
	require.Equal(t, []string{"username"}, core.AsError(err).Fields)
	require.False(t, called)
	require.Empty(t, busy.transitions)
}

func TestSubmitWithoutBusyControl(t *testing.T) {
	p := newPipeline(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"content":"hello"}`))
	})

	resp, err := p.Submit(context.Background(), core.OperationGenerate, url.Values{
		"content_type": {"email"},
		"topic":        {"launch"},
		"keywords":     {"go, cli"},
	}, nil)
	require.NoError(t, err)
	require.Equal(t, "hello", resp.Object()["content"])
}

func TestBusyFunc(t *testing.T) {
	var states []bool
	p := newPipeline(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})

	_, err := p.Submit(context.Background(), core.OperationCampaign, url.Values{"campaign_name": {"Launch"}},
		BusyFunc(func(busy bool) { states = append(states, busy) }))
	require.NoError(t, err)
	require.Equal(t, []bool{true, false}, states)
}
