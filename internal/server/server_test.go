package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dingolabs/dingo/internal/api"
	"github.com/dingolabs/dingo/internal/core"
	"github.com/dingolabs/dingo/internal/core/pipeline"
	"github.com/dingolabs/dingo/internal/core/result"
	apperrors "github.com/dingolabs/dingo/internal/errors"
	"github.com/dingolabs/dingo/internal/server/handlers"
	"github.com/dingolabs/dingo/internal/server/middleware"
	"github.com/dingolabs/dingo/internal/status"
)

func newTestBackend(t *testing.T) *api.Client {
	t.Helper()
	srv := New(Options{Host: "127.0.0.1", Version: "test"})
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return &api.Client{BaseURL: ts.URL + "/api/v1", HTTPClient: ts.Client()}
}

func TestServerUsesStandardErrorHandlers(t *testing.T) {
	srv := New(Options{Host: "127.0.0.1"})

	req := httptest.NewRequest(http.MethodGet, "/does-not-exist", nil)
	rec := httptest.NewRecorder()

	srv.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusNotFound, rec.Code)

	var body apperrors.HTTPErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Equal(t, "NOT_FOUND", body.Error.Code)
}

func TestServerRecoversFromHandlerPanic(t *testing.T) {
	srv := New(Options{Host: "127.0.0.1"})
	srv.router.Get("/boom", func(http.ResponseWriter, *http.Request) { panic("nil template") })

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var body apperrors.HTTPErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Equal(t, apperrors.CodeInternal, body.Error.Code)
	require.True(t, strings.HasPrefix(body.Error.RequestID, "req-"))
	require.Equal(t, body.Error.RequestID, rec.Header().Get(middleware.RequestIDHeader))
	require.NotContains(t, body.Error.Message, "nil template")
}

func TestServerHealthRoutes(t *testing.T) {
	hm := handlers.InitHealthManager("test")
	hm.RegisterChecker("operations", handlers.OperationsChecker())
	srv := New(Options{Host: "127.0.0.1"})

	for _, path := range []string{"/health", "/health/live", "/health/ready", "/health/startup", "/version"} {
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, http.StatusOK, rec.Code, path)
	}
}

func TestServerRejectsWrongMethod(t *testing.T) {
	srv := New(Options{Host: "127.0.0.1"})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/content/generate", nil)
	rec := httptest.NewRecorder()

	srv.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestBackendStatusIsOperational(t *testing.T) {
	client := newTestBackend(t)
	require.Equal(t, status.BadgeOperational, status.Check(context.Background(), client))
}

func TestBackendAnswersEveryOperationWithItsResultShape(t *testing.T) {
	client := newTestBackend(t)
	p := pipeline.New(client)

	tests := []struct {
		op     core.Operation
		values url.Values
		kind   result.Kind
	}{
		{
			op:     core.OperationAnalyze,
			values: url.Values{"username": {"octocat"}, "depth": {"deep"}, "language": {"zh"}},
			kind:   result.KindAnalysis,
		},
		{
			op:     core.OperationGenerate,
			values: url.Values{"content_type": {"blog_post"}, "topic": {"Go"}},
			kind:   result.KindContent,
		},
		{
			op:     core.OperationCommunity,
			values: url.Values{"repository": {"octo/repo"}, "interaction_types": {"star", "follow"}, "lookback_days": {"14"}},
			kind:   result.KindEngagement,
		},
		{
			op:     core.OperationCampaign,
			values: url.Values{"campaign_name": {"Launch"}},
			kind:   result.KindGeneric,
		},
		{
			op:     core.OperationResearch,
			values: url.Values{"research_type": {"competitor"}, "target": {"acme"}},
			kind:   result.KindResearch,
		},
	}

	for _, tt := range tests {
		t.Run(string(tt.op), func(t *testing.T) {
			resp, err := p.Submit(context.Background(), tt.op, tt.values, nil)
			require.NoError(t, err)

			r := result.Classify(tt.op, resp.Body)
			require.Equal(t, tt.kind, r.Kind)
			require.NotEmpty(t, r.Common.TaskID)

			status, ok := result.Render(r).HeaderValue("Status")
			require.True(t, ok)
			require.Equal(t, "completed", status)
		})
	}
}

func TestBackendEchoesEngagementConfig(t *testing.T) {
	client := newTestBackend(t)

	resp, err := pipeline.New(client).Submit(context.Background(), core.OperationCommunity,
		url.Values{"repository": {"octo/repo"}, "interaction_types": {"star", "follow"}, "lookback_days": {"14"}}, nil)
	require.NoError(t, err)

	view := result.RenderBody(core.OperationCommunity, resp.Body)
	summary, ok := view.Section("Engagement Summary")
	require.True(t, ok)

	for label, want := range map[string]string{
		"Target Repository": "octo/repo",
		"Interaction Types": "star, follow",
		"Lookback Period":   "14 days",
	} {
		got, _ := summary.Value(label)
		require.Equal(t, want, got, label)
	}
}

func TestBackendRejectsMissingFieldsWithDetail(t *testing.T) {
	client := newTestBackend(t)

	_, err := client.Submit(context.Background(), core.OperationGenerate, map[string]any{"topic": "Go"})
	require.Error(t, err)

	classified := core.AsError(err)
	require.Equal(t, core.ErrorHTTP, classified.Kind)
	require.Equal(t, http.StatusUnprocessableEntity, classified.StatusCode)
	require.Equal(t, "Field required: content_type", classified.Message)
}

func TestBackendRejectsInvalidJSON(t *testing.T) {
	srv := New(Options{Host: "127.0.0.1"})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/github/analyze", bytes.NewBufferString("{"))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var body map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Equal(t, "Invalid JSON body", body["detail"])
}
