package metrics

import (
	"strconv"

	"github.com/dingolabs/dingo/internal/observability"
)

// Error metrics emitted by the demo backend's error responder and panic
// recovery.
var (
	BackendErrorsTotal = "app_backend_errors_total"
	BackendPanicsTotal = "app_backend_panics_total"
)

// RecordError counts an error response by error code, HTTP status and route.
func RecordError(errorCode string, httpStatus int, route string) {
	count(BackendErrorsTotal, map[string]string{
		"error_code":  errorCode,
		"http_status": strconv.Itoa(httpStatus),
		"route":       route,
	})
}

// RecordPanic counts a recovered handler panic on route.
func RecordPanic(route string) {
	count(BackendPanicsTotal, map[string]string{"route": route})
}

func count(name string, labels map[string]string) {
	if observability.TelemetrySystem == nil {
		return
	}
	_ = observability.TelemetrySystem.Counter(name, 1, labels)
}
