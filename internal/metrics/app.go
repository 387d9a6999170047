package metrics

import (
	"time"

	"github.com/dingolabs/dingo/internal/observability"
)

// Application-level metrics following Prometheus conventions
var (
	// Submission metrics
	SubmissionsTotal   = "app_submissions_total"
	SubmissionDuration = "app_submission_duration_ms"

	// Status probe metrics
	StatusProbesTotal = "app_status_probes_total"

	// UI metrics
	OpenModals = "app_open_modals"

	// Demo backend metrics
	BackendRequestsTotal = "app_backend_requests_total"

	// Server lifecycle metrics
	ServerStartTime = "app_server_start_time_seconds"
)

// RecordSubmission records a form submission and its outcome. outcome is
// "success" or the error kind.
func RecordSubmission(operation string, outcome string, duration time.Duration) {
	if observability.TelemetrySystem == nil {
		return
	}

	_ = observability.TelemetrySystem.Counter(
		SubmissionsTotal,
		1,
		map[string]string{
			"operation": operation,
			"outcome":   outcome,
		},
	)

	if duration > 0 {
		_ = observability.TelemetrySystem.Histogram(
			SubmissionDuration,
			duration,
			map[string]string{
				"operation": operation,
			},
		)
	}
}

// RecordStatusProbe records a backend health probe.
func RecordStatusProbe(operational bool) {
	status := "operational"
	if !operational {
		status = "offline"
	}

	if observability.TelemetrySystem != nil {
		_ = observability.TelemetrySystem.Counter(
			StatusProbesTotal,
			1,
			map[string]string{
				"status": status,
			},
		)
	}
}

// SetOpenModals sets the number of overlays currently on the surface.
func SetOpenModals(count int) {
	if observability.TelemetrySystem != nil {
		_ = observability.TelemetrySystem.Gauge(
			OpenModals,
			float64(count),
			nil,
		)
	}
}

// RecordBackendRequest records a request answered by the demo backend.
func RecordBackendRequest(operation string, status int) {
	if observability.TelemetrySystem != nil {
		_ = observability.TelemetrySystem.Counter(
			BackendRequestsTotal,
			1,
			map[string]string{
				"operation": operation,
				"status":    statusClass(status),
			},
		)
	}
}

// SetServerStartTime records the server start time (Unix timestamp)
func SetServerStartTime(timestamp int64) {
	if observability.TelemetrySystem != nil {
		_ = observability.TelemetrySystem.Gauge(
			ServerStartTime,
			float64(timestamp),
			nil,
		)
	}
}

func statusClass(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	default:
		return "2xx"
	}
}
