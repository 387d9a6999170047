package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/fulmenhq/gofulmen/errors"
	"go.uber.org/zap"

	"github.com/dingolabs/dingo/internal/metrics"
	"github.com/dingolabs/dingo/internal/observability"
)

// panicCode matches the internal error code of the backend's error responder.
const panicCode = "INTERNAL_ERROR"

// Responder writes the error response for a failed request.
type Responder func(w http.ResponseWriter, r *http.Request, err error)

// Recover converts a handler panic into a critical error envelope handed to
// respond. The panic value and stack only reach the server log.
func Recover(respond Responder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				route := RouteLabel(r)
				requestID := RequestIDFrom(r.Context())
				metrics.RecordPanic(route)
				if observability.ServerLogger != nil {
					observability.ServerLogger.Error("Handler panicked",
						zap.String("route", route),
						zap.String("request_id", requestID),
						zap.String("panic", fmt.Sprint(rec)),
						zap.ByteString("stack", debug.Stack()))
				}

				envelope := errors.NewErrorEnvelope(panicCode, "The backend failed to handle the request").
					WithCorrelationID(requestID)
				envelope, _ = envelope.WithSeverity(errors.SeverityCritical)
				respond(w, r, envelope)
			}()

			next.ServeHTTP(w, r)
		})
	}
}
