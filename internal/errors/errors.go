// Package errors holds the error codes shared by the CLI and the demo
// backend, builds gofulmen envelopes for them and writes the backend's JSON
// error responses.
package errors

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/fulmenhq/gofulmen/errors"
	"go.uber.org/zap"

	"github.com/dingolabs/dingo/internal/metrics"
	"github.com/dingolabs/dingo/internal/observability"
	"github.com/dingolabs/dingo/internal/server/middleware"
)

// Error codes used across the CLI and the demo backend.
const (
	CodeInvalidInput       = "INVALID_INPUT"
	CodeNotFound           = "NOT_FOUND"
	CodeMethodNotAllowed   = "METHOD_NOT_ALLOWED"
	CodeValidationFailed   = "VALIDATION_FAILED"
	CodeInternal           = "INTERNAL_ERROR"
	CodeExternalService    = "EXTERNAL_SERVICE_ERROR"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
	CodeDataProcessing     = "DATA_PROCESSING_ERROR"
	CodeConfigInvalid      = "CONFIG_INVALID"
)

var codeStatus = map[string]int{
	CodeInvalidInput:       http.StatusBadRequest,
	CodeValidationFailed:   http.StatusBadRequest,
	CodeNotFound:           http.StatusNotFound,
	CodeMethodNotAllowed:   http.StatusMethodNotAllowed,
	CodeExternalService:    http.StatusBadGateway,
	CodeServiceUnavailable: http.StatusServiceUnavailable,
}

// New returns an envelope with code and message.
func New(code, message string) *errors.ErrorEnvelope {
	return errors.NewErrorEnvelope(code, message)
}

func NewNotFoundError(message string) *errors.ErrorEnvelope {
	return New(CodeNotFound, message)
}

func NewMethodNotAllowedError(message string) *errors.ErrorEnvelope {
	return New(CodeMethodNotAllowed, message)
}

func NewExternalServiceError(message string) *errors.ErrorEnvelope {
	return New(CodeExternalService, message)
}

func NewConfigInvalidError(message string) *errors.ErrorEnvelope {
	return New(CodeConfigInvalid, message)
}

// Wrap builds an envelope for err tagged with the request ID of ctx. There is
// no tracing yet, so the trace ID repeats the correlation ID.
func Wrap(ctx context.Context, code string, err error, message string) *errors.ErrorEnvelope {
	id := correlationID(ctx)
	envelope := New(code, message).WithCorrelationID(id).WithTraceID(id)
	return withWrappedError(envelope, err)
}

// correlationID is the request ID carried by ctx, or a fresh one.
func correlationID(ctx context.Context) string {
	if id := middleware.RequestIDFrom(ctx); id != "" {
		return id
	}
	return errors.GenerateCorrelationID()
}

// EnsureEnvelope normalizes any error into an envelope. Plain errors become
// INTERNAL_ERROR with the original text kept in the context.
func EnsureEnvelope(err error) *errors.ErrorEnvelope {
	if envelope, ok := err.(*errors.ErrorEnvelope); ok && envelope != nil {
		return envelope
	}

	severity := errors.SeverityHigh
	envelope := New(CodeInternal, "unexpected error")
	if err == nil {
		envelope = New(CodeInternal, "unexpected nil error")
		severity = errors.SeverityCritical
	} else {
		envelope = withWrappedError(envelope, err)
	}
	envelope, _ = envelope.WithSeverity(severity)
	return envelope
}

// HTTPStatusFromEnvelope resolves the HTTP status of an envelope.
func HTTPStatusFromEnvelope(envelope *errors.ErrorEnvelope) int {
	if envelope == nil {
		return http.StatusInternalServerError
	}
	return HTTPStatusFromCode(envelope.Code)
}

// HTTPStatusFromCode resolves the HTTP status of an error code. Unknown codes
// are server errors.
func HTTPStatusFromCode(code string) int {
	if status, ok := codeStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

func withWrappedError(envelope *errors.ErrorEnvelope, err error) *errors.ErrorEnvelope {
	if envelope == nil || err == nil {
		return envelope
	}
	if updated, updateErr := envelope.WithContext(map[string]interface{}{
		"wrapped_error": err.Error(),
	}); updateErr == nil {
		return updated
	}
	return envelope
}

// ResponseDetails merges envelope details and context for the response body.
// Details win on key collisions.
func ResponseDetails(envelope *errors.ErrorEnvelope) map[string]interface{} {
	if envelope == nil || len(envelope.Details)+len(envelope.Context) == 0 {
		return nil
	}

	details := make(map[string]interface{}, len(envelope.Details)+len(envelope.Context))
	for key, value := range envelope.Context {
		details[key] = value
	}
	for key, value := range envelope.Details {
		details[key] = value
	}
	return details
}

// HTTPErrorDetail is the error body returned by non-API endpoints.
type HTTPErrorDetail struct {
	Code      string                 `json:"code"`
	Message   string                 `json:"message"`
	Details   map[string]interface{} `json:"details,omitempty"`
	RequestID string                 `json:"request_id,omitempty"`
}

// HTTPErrorResponse wraps HTTPErrorDetail.
type HTTPErrorResponse struct {
	Error HTTPErrorDetail `json:"error"`
}

// RespondWithError writes err as a JSON error response, logging it and
// counting it against the route.
func RespondWithError(w http.ResponseWriter, r *http.Request, err error) {
	if w == nil {
		return
	}

	envelope := EnsureEnvelope(err)
	if envelope.CorrelationID == "" {
		var ctx context.Context
		if r != nil {
			ctx = r.Context()
		}
		envelope = envelope.WithCorrelationID(correlationID(ctx))
	}
	status := HTTPStatusFromEnvelope(envelope)

	route := ""
	if r != nil {
		route = middleware.RouteLabel(r)
	}
	logHTTPError(envelope, status, route)
	metrics.RecordError(envelope.Code, status, route)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(HTTPErrorResponse{Error: HTTPErrorDetail{
		Code:      envelope.Code,
		Message:   envelope.Message,
		Details:   ResponseDetails(envelope),
		RequestID: envelope.CorrelationID,
	}})
}

func logHTTPError(envelope *errors.ErrorEnvelope, status int, route string) {
	logger := observability.ServerLogger
	if logger == nil {
		return
	}

	fields := []zap.Field{
		zap.String("error_code", envelope.Code),
		zap.Int("http_status", status),
		zap.String("route", route),
		zap.String("request_id", envelope.CorrelationID),
	}
	if envelope.Severity != "" {
		fields = append(fields, zap.String("severity", string(envelope.Severity)))
	}
	for key, value := range envelope.Context {
		fields = append(fields, zap.Any(key, value))
	}

	switch {
	case envelope.Severity == errors.SeverityCritical, envelope.Severity == errors.SeverityHigh:
		logger.Error(envelope.Message, fields...)
	case status >= http.StatusInternalServerError, envelope.Severity == errors.SeverityMedium:
		logger.Warn(envelope.Message, fields...)
	default:
		logger.Info(envelope.Message, fields...)
	}
}
