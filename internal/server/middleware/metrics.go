package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/dingolabs/dingo/internal/core"
	"github.com/dingolabs/dingo/internal/observability"
)

// statusRecorder remembers what the wrapped handler wrote.
type statusRecorder struct {
	http.ResponseWriter
	status  int
	written int64
}

func (s *statusRecorder) WriteHeader(code int) {
	if s.status == 0 {
		s.status = code
	}
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Write(b []byte) (int, error) {
	if s.status == 0 {
		s.status = http.StatusOK
	}
	n, err := s.ResponseWriter.Write(b)
	s.written += int64(n)
	return n, err
}

func (s *statusRecorder) code() int {
	if s.status == 0 {
		return http.StatusOK
	}
	return s.status
}

// RouteLabel names the route a request hit without leaking raw paths into
// metric labels. Matched chi patterns win; otherwise known backend paths are
// folded into a fixed set.
func RouteLabel(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}

	path := strings.TrimSuffix(r.URL.Path, "/")
	if rest, ok := strings.CutPrefix(path, core.APIRoot); ok {
		if rest == core.StatusPath || operationFor(rest) != core.OperationUnknown {
			return path
		}
		return core.APIRoot + "/*"
	}

	switch {
	case path == "":
		return "/"
	case path == "/health" || strings.HasPrefix(path, "/health/"):
		return "/health/*"
	case path == "/version", path == "/metrics", path == "/admin/signal":
		return path
	}
	return "/unknown"
}

// operationLabel is the operation a request submits, "status" for the
// health probe, or "none".
func operationLabel(r *http.Request) string {
	rest, ok := strings.CutPrefix(strings.TrimSuffix(r.URL.Path, "/"), core.APIRoot)
	if !ok {
		return "none"
	}
	if rest == core.StatusPath {
		return "status"
	}
	if op := operationFor(rest); op != core.OperationUnknown {
		return op.String()
	}
	return "none"
}

func operationFor(path string) core.Operation {
	for _, op := range core.Operations() {
		if endpoint, _ := op.Endpoint(); endpoint == path {
			return op
		}
	}
	return core.OperationUnknown
}

// quietRoute reports routes polled often enough that their access log goes
// to debug.
func quietRoute(route string) bool {
	return strings.HasPrefix(route, "/health") || route == "/metrics" || route == core.APIRoot+core.StatusPath
}

// RequestMetrics emits request counters, latency and payload sizes for every
// request and writes one access log line per request.
func RequestMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}

		next.ServeHTTP(rec, r)

		elapsed := time.Since(start)
		route := RouteLabel(r)
		status := rec.code()

		emitRequestMetrics(r, route, status, rec.written, elapsed)
		logRequest(r, route, status, rec.written, elapsed)
	})
}

func emitRequestMetrics(r *http.Request, route string, status int, written int64, elapsed time.Duration) {
	sys := observability.TelemetrySystem
	if sys == nil {
		return
	}

	labels := map[string]string{
		"method":    r.Method,
		"endpoint":  route,
		"operation": operationLabel(r),
		"status":    strconv.Itoa(status),
	}
	_ = sys.Counter("http_requests_total", 1, labels)
	_ = sys.Histogram("http_request_duration_ms", elapsed, labels)

	sizeLabels := map[string]string{"method": r.Method, "endpoint": route}
	if r.ContentLength > 0 {
		_ = sys.Gauge("http_request_size_bytes", float64(r.ContentLength), sizeLabels)
	}
	_ = sys.Gauge("http_response_size_bytes", float64(written), sizeLabels)

	if status < http.StatusBadRequest {
		return
	}
	errorType := "client_error"
	if status >= http.StatusInternalServerError {
		errorType = "server_error"
	}
	_ = sys.Counter("http_errors_total", 1, map[string]string{
		"method":     r.Method,
		"endpoint":   route,
		"operation":  labels["operation"],
		"status":     labels["status"],
		"error_type": errorType,
	})
}

func logRequest(r *http.Request, route string, status int, written int64, elapsed time.Duration) {
	logger := observability.ServerLogger
	if logger == nil {
		return
	}

	fields := []zap.Field{
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.String("endpoint", route),
		zap.Int("status", status),
		zap.Duration("duration", elapsed),
		zap.Int64("response_size", written),
		zap.String("request_id", RequestIDFrom(r.Context())),
	}
	if op := operationLabel(r); op != "none" {
		fields = append(fields, zap.String("operation", op))
	}

	if quietRoute(route) && status < http.StatusBadRequest {
		logger.Debug("HTTP request completed", fields...)
		return
	}
	logger.Info("HTTP request completed", fields...)
}
