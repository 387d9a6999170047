package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/fulmenhq/gofulmen/errors"
	"golang.org/x/sync/errgroup"

	"github.com/dingolabs/dingo/internal/core"
)

// CheckStatus is the outcome of one health check or of a whole probe.
type CheckStatus string

const (
	StatusHealthy   CheckStatus = "healthy"
	StatusDegraded  CheckStatus = "degraded"
	StatusUnhealthy CheckStatus = "unhealthy"
	StatusTimeout   CheckStatus = "timeout"
	StatusUnknown   CheckStatus = "unknown"
)

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status    CheckStatus            `json:"status"`
	Version   string                 `json:"version"`
	Timestamp string                 `json:"timestamp"`
	Checks    map[string]CheckStatus `json:"checks,omitempty"`
}

// ProbeResponse is the body of the live, ready and startup probes.
type ProbeResponse struct {
	Status    CheckStatus `json:"status"`
	Timestamp time.Time   `json:"timestamp"`
}

// HealthChecker is a component the health probes consult.
type HealthChecker interface {
	CheckHealth(ctx context.Context) error
}

// HealthCheckFunc adapts a function to HealthChecker.
type HealthCheckFunc func(ctx context.Context) error

// CheckHealth calls f.
func (f HealthCheckFunc) CheckHealth(ctx context.Context) error {
	return f(ctx)
}

type probe struct {
	name    string
	timeout time.Duration
}

var (
	probeAggregate = probe{name: "aggregate", timeout: 5 * time.Second}
	probeLive      = probe{name: "live", timeout: 2 * time.Second}
	probeReady     = probe{name: "ready", timeout: 5 * time.Second}
	probeStartup   = probe{name: "startup", timeout: 3 * time.Second}
)

// HealthManager runs the registered checks behind the health endpoints.
type HealthManager struct {
	checkers map[string]HealthChecker
	version  string
	now      func() time.Time
}

// NewHealthManager returns a manager with no checks; it reports healthy.
func NewHealthManager(version string) *HealthManager {
	return &HealthManager{
		checkers: make(map[string]HealthChecker),
		version:  version,
		now:      time.Now,
	}
}

// RegisterChecker adds or replaces the check called name.
func (hm *HealthManager) RegisterChecker(name string, checker HealthChecker) {
	hm.checkers[name] = checker
}

// runHealthChecks runs every check concurrently under ctx. A check that has
// not answered when ctx expires is reported as timed out.
func (hm *HealthManager) runHealthChecks(ctx context.Context) map[string]CheckStatus {
	names := make([]string, 0, len(hm.checkers))
	for name := range hm.checkers {
		names = append(names, name)
	}
	sort.Strings(names)

	results := make([]CheckStatus, len(names))
	var g errgroup.Group
	for i, name := range names {
		checker := hm.checkers[name]
		g.Go(func() error {
			done := make(chan error, 1)
			go func() { done <- checker.CheckHealth(ctx) }()
			select {
			case err := <-done:
				results[i] = StatusHealthy
				if err != nil {
					results[i] = StatusUnhealthy
				}
			case <-ctx.Done():
				results[i] = StatusTimeout
			}
			return nil
		})
	}
	_ = g.Wait()

	checks := make(map[string]CheckStatus, len(names))
	for i, name := range names {
		checks[name] = results[i]
	}
	return checks
}

// overallStatus folds check results: any unhealthy check wins, then any
// degraded or timed out one.
func overallStatus(checks map[string]CheckStatus) CheckStatus {
	status := StatusHealthy
	for _, check := range checks {
		switch check {
		case StatusUnhealthy:
			return StatusUnhealthy
		case StatusDegraded, StatusTimeout:
			status = StatusDegraded
		}
	}
	return status
}

func (hm *HealthManager) serve(w http.ResponseWriter, r *http.Request, p probe) {
	ctx, cancel := context.WithTimeout(r.Context(), p.timeout)
	defer cancel()

	checks := hm.runHealthChecks(ctx)
	status := overallStatus(checks)
	if status == StatusUnhealthy {
		respondWithError(w, r, healthFailure(p.name+" health check failed", p.name, status, checks))
		return
	}

	now := hm.now().UTC()
	var body any = ProbeResponse{Status: status, Timestamp: now}
	if p == probeAggregate {
		body = HealthResponse{
			Status:    status,
			Version:   hm.version,
			Timestamp: now.Format(time.RFC3339),
			Checks:    checks,
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(body)
}

// HealthHandler serves the aggregate report with every check's result.
func (hm *HealthManager) HealthHandler(w http.ResponseWriter, r *http.Request) {
	hm.serve(w, r, probeAggregate)
}

func (hm *HealthManager) LivenessHandler(w http.ResponseWriter, r *http.Request) {
	hm.serve(w, r, probeLive)
}

func (hm *HealthManager) ReadinessHandler(w http.ResponseWriter, r *http.Request) {
	hm.serve(w, r, probeReady)
}

func (hm *HealthManager) StartupHandler(w http.ResponseWriter, r *http.Request) {
	hm.serve(w, r, probeStartup)
}

// healthFailure builds the SERVICE_UNAVAILABLE envelope for a failed probe.
// Details carry every result, context lists the failing checks.
func healthFailure(message, probe string, status CheckStatus, checks map[string]CheckStatus) *errors.ErrorEnvelope {
	details := map[string]interface{}{"probe": probe, "status": string(status)}
	if len(checks) > 0 {
		details["checks"] = checks
	}
	envelope := errors.NewErrorEnvelope("SERVICE_UNAVAILABLE", message).WithDetails(details)

	var failing []string
	for name, result := range checks {
		if result != StatusHealthy {
			failing = append(failing, name)
		}
	}
	if len(failing) == 0 {
		return envelope
	}
	sort.Strings(failing)
	if withContext, err := envelope.WithContext(map[string]interface{}{"unhealthy_checks": failing}); err == nil {
		envelope = withContext
	}
	return envelope
}

// OperationsChecker fails when an operation lacks a backend endpoint or a
// required-field rule, which would leave part of the console unanswered.
func OperationsChecker() HealthChecker {
	return HealthCheckFunc(func(ctx context.Context) error {
		for _, op := range core.Operations() {
			if _, ok := op.Endpoint(); !ok {
				return fmt.Errorf("operation %s has no endpoint", op)
			}
			if _, ok := required[op]; !ok {
				return fmt.Errorf("operation %s has no request rules", op)
			}
		}
		return nil
	})
}

var globalHealthManager *HealthManager

// InitHealthManager replaces the manager behind the package-level handlers.
func InitHealthManager(version string) *HealthManager {
	globalHealthManager = NewHealthManager(version)
	return globalHealthManager
}

// GetHealthManager returns the manager behind the package-level handlers.
func GetHealthManager() *HealthManager {
	return globalHealthManager
}

func withGlobalManager(p probe) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if globalHealthManager == nil {
			respondWithError(w, r, healthFailure("health manager not initialized", p.name, StatusUnknown, nil))
			return
		}
		globalHealthManager.serve(w, r, p)
	}
}

// Handlers backed by the manager installed with InitHealthManager.
var (
	HealthHandler    = withGlobalManager(probeAggregate)
	LivenessHandler  = withGlobalManager(probeLive)
	ReadinessHandler = withGlobalManager(probeReady)
	StartupHandler   = withGlobalManager(probeStartup)
)
