package server

import (
	"context"
	"net/http"
	"os"
	"strings"

	"github.com/fulmenhq/gofulmen/signals"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/dingolabs/dingo/internal/appid"
	"github.com/dingolabs/dingo/internal/core"
	"github.com/dingolabs/dingo/internal/observability"
	"github.com/dingolabs/dingo/internal/server/handlers"
)

const (
	adminSignalPath = "/admin/signal"
	adminRateLimit  = 10 // requests per minute
	adminRateBurst  = 5
)

func (s *Server) registerRoutes() {
	s.router.Route(handlers.APIBasePath, func(r chi.Router) {
		for _, ep := range handlers.Endpoints() {
			path := strings.TrimPrefix(ep.Path, handlers.APIBasePath)
			if ep.Method == http.MethodGet {
				r.Get(path, s.api.StatusHandler)
				continue
			}
			r.Post(path, s.api.OperationHandler(core.Operation(ep.Operation)))
		}
	})

	s.router.Route("/health", func(r chi.Router) {
		r.Get("/", handlers.HealthHandler)
		r.Get("/live", handlers.LivenessHandler)
		r.Get("/ready", handlers.ReadinessHandler)
		r.Get("/startup", handlers.StartupHandler)
	})
	s.router.Get("/version", handlers.VersionHandler)
	s.router.Get("/metrics", MetricsHandler)

	if token := adminToken(); token != "" {
		s.router.Post(adminSignalPath, signals.NewHTTPHandler(signals.HTTPConfig{
			TokenAuth: token,
			RateLimit: adminRateLimit,
			RateBurst: adminRateBurst,
		}).ServeHTTP)
		if observability.ServerLogger != nil {
			observability.ServerLogger.Info("Admin signal endpoint enabled",
				zap.String("path", adminSignalPath),
				zap.Int("rate_per_minute", adminRateLimit))
		}
	}
}

// adminToken is the bearer token guarding the signal endpoint. The endpoint
// stays unregistered without one.
func adminToken() string {
	name := appid.EnvPrefix(context.Background()) + "ADMIN_TOKEN"
	token := strings.TrimSpace(os.Getenv(name))
	if token == "" && observability.ServerLogger != nil {
		observability.ServerLogger.Debug("Admin signal endpoint disabled", zap.String("env", name))
	}
	return token
}
