package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dingolabs/dingo/internal/core"
	"github.com/dingolabs/dingo/internal/metrics"
	"github.com/dingolabs/dingo/internal/observability"
)

// APIBasePath is where the backend API is mounted.
const APIBasePath = core.APIRoot

// DetailResponse is the error body of the backend API: a single detail string.
type DetailResponse struct {
	Detail string `json:"detail"`
}

// StatusResponse answers the status probe.
type StatusResponse struct {
	Status    string `json:"status"`
	Version   string `json:"version"`
	Timestamp string `json:"timestamp"`
}

// API is the demo backend. It answers every operation with a canned body of
// the shape the real backend returns, so the console can be exercised without
// the marketing automation stack.
type API struct {
	Version string

	// Latency delays every operation response, to make the busy state visible.
	Latency time.Duration

	// Now stamps responses; defaults to time.Now.
	Now func() time.Time
}

// NewAPI creates the demo backend handlers.
func NewAPI(version string, latency time.Duration) *API {
	return &API{Version: version, Latency: latency, Now: time.Now}
}

// required lists the request fields each operation rejects when missing.
var required = map[core.Operation][]string{
	core.OperationAnalyze:   {"user_list"},
	core.OperationGenerate:  {"content_type", "topic"},
	core.OperationCommunity: {"repository"},
	core.OperationCampaign:  {"campaign_name"},
	core.OperationResearch:  {"research_type", "target"},
}

// StatusHandler reports the backend as operational.
func (a *API) StatusHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, StatusResponse{
		Status:    "operational",
		Version:   a.Version,
		Timestamp: a.now().UTC().Format(time.RFC3339),
	})
}

// OperationHandler returns the handler serving op.
func (a *API) OperationHandler(op core.Operation) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req map[string]any
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			a.reject(w, op, "Invalid JSON body")
			return
		}

		for _, field := range required[op] {
			if isBlank(req[field]) {
				a.reject(w, op, fmt.Sprintf("Field required: %s", field))
				return
			}
		}

		if a.Latency > 0 {
			select {
			case <-time.After(a.Latency):
			case <-r.Context().Done():
				return
			}
		}

		if observability.ServerLogger != nil {
			observability.ServerLogger.Debug("Operation accepted",
				zap.String("operation", string(op)),
				zap.Int("fields", len(req)))
		}

		metrics.RecordBackendRequest(string(op), http.StatusOK)
		writeJSON(w, http.StatusOK, a.respond(op, req))
	}
}

func (a *API) reject(w http.ResponseWriter, op core.Operation, detail string) {
	metrics.RecordBackendRequest(string(op), http.StatusUnprocessableEntity)
	writeJSON(w, http.StatusUnprocessableEntity, DetailResponse{Detail: detail})
}

func (a *API) respond(op core.Operation, req map[string]any) map[string]any {
	body := map[string]any{
		"task_id": uuid.NewString(),
		"status":  "completed",
	}

	switch op {
	case core.OperationAnalyze:
		users, _ := req["user_list"].([]any)
		body["message"] = "Analysis finished"
		body["insights"] = map[string]any{
			"total_users":     len(users),
			"analysis_depth":  stringOr(req["analysis_depth"], "basic"),
			"language":        stringOr(req["language"], "en"),
			"completion_time": a.now().UTC().Format(time.RFC3339),
			"analysis_results": []any{
				map[string]any{
					"username":       firstString(users),
					"primary_skills": []any{"Go", "TypeScript"},
					"activity_level": "high",
				},
			},
		}
	case core.OperationGenerate:
		body["content"] = fmt.Sprintf("# %s\n\nA %s draft for %s.",
			stringOr(req["topic"], "Untitled"),
			strings.ReplaceAll(stringOr(req["content_type"], "content"), "_", " "),
			stringOr(req["target_audience"], "a general audience"))
	case core.OperationCommunity:
		body["insights"] = "Most active contributors respond to issues within a day."
		body["recommendations"] = []any{
			"Star repositories of frequent contributors",
			"Follow up on open issues weekly",
		}
		body["engagement_result"] = map[string]any{
			"config": map[string]any{
				"repository":        req["repository"],
				"interaction_types": req["interaction_types"],
				"lookback_days":     numberOr(req["lookback_days"], 30),
				"target_count":      10,
			},
			"engagement_result": map[string]any{
				"raw": "Engaged with 10 community members.",
				"tasks_output": []any{
					map[string]any{
						"agent":           "Community Analyst",
						"expected_output": "List of candidate users",
						"raw":             "Found 10 candidates.",
					},
					map[string]any{
						"agent":           "Engagement Specialist",
						"expected_output": "Interaction log",
						"raw":             "Completed 10 interactions.",
					},
				},
				"token_usage": map[string]any{
					"total_tokens":        15342,
					"successful_requests": 12,
					"prompt_tokens":       11020,
					"completion_tokens":   4322,
				},
			},
		}
	case core.OperationCampaign:
		body["message"] = "Campaign created"
		body["campaign"] = map[string]any{
			"name":     req["campaign_name"],
			"goals":    req["goals"],
			"budget":   stringOr(req["budget"], "low"),
			"channels": []any{"github", "blog", "social_media"},
		}
	case core.OperationResearch:
		body["research_id"] = uuid.NewString()
		body["research_type"] = req["research_type"]
		body["target"] = req["target"]
		body["result"] = fmt.Sprintf("## %s research: %s\n\nNo significant risks found.",
			stringOr(req["research_type"], "market"), stringOr(req["target"], "unknown"))
		body["metadata"] = map[string]any{
			"depth":   stringOr(req["depth"], "shallow"),
			"sources": 3,
		}
	}
	return body
}

// Endpoint describes one route of the backend API.
type Endpoint struct {
	Operation string `json:"operation"`
	Method    string `json:"method"`
	Path      string `json:"path"`
}

// Endpoints lists the status probe followed by the operation routes in menu
// order.
func Endpoints() []Endpoint {
	endpoints := []Endpoint{{Operation: "status", Method: http.MethodGet, Path: APIBasePath + core.StatusPath}}
	for _, op := range core.Operations() {
		path, _ := op.Endpoint()
		endpoints = append(endpoints, Endpoint{Operation: op.String(), Method: http.MethodPost, Path: APIBasePath + path})
	}
	return endpoints
}

func (a *API) now() time.Time {
	if a.Now == nil {
		return time.Now()
	}
	return a.Now()
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func isBlank(v any) bool {
	switch value := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(value) == ""
	case []any:
		return len(value) == 0
	default:
		return false
	}
}

func stringOr(v any, fallback string) string {
	if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
		return s
	}
	return fallback
}

func numberOr(v any, fallback float64) float64 {
	if n, ok := v.(float64); ok {
		return n
	}
	return fallback
}

func firstString(values []any) string {
	if len(values) == 0 {
		return ""
	}
	s, _ := values[0].(string)
	return s
}
