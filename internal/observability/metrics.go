package observability

import (
	"fmt"
	"net"
	"strconv"

	"github.com/fulmenhq/gofulmen/telemetry"
	"github.com/fulmenhq/gofulmen/telemetry/exporters"
)

// fallbackMetricsPort is reported when the exporter was asked for a random
// port and its bound address cannot be read back.
const fallbackMetricsPort = 9090

var (
	// TelemetrySystem receives every counter, gauge and histogram the
	// console and the demo backend emit. Nil disables emission.
	TelemetrySystem *telemetry.System

	// PrometheusExporter serves TelemetrySystem in Prometheus text format.
	PrometheusExporter *exporters.PrometheusExporter

	metricsPort int
)

// InitMetrics starts a Prometheus exporter on port (0 picks a free one) and
// routes TelemetrySystem into it. Metric names are prefixed with namespace,
// or with serviceName when namespace is empty. A previous exporter is
// stopped first.
func InitMetrics(serviceName string, port int, namespace ...string) error {
	StopMetrics()

	prefix := serviceName
	if len(namespace) > 0 && namespace[0] != "" {
		prefix = namespace[0]
	}
	if port < 0 {
		port = 0
	}

	exporter := exporters.NewPrometheusExporter(prefix, fmt.Sprintf(":%d", port))
	if err := exporter.Start(); err != nil {
		return fmt.Errorf("start prometheus exporter on :%d: %w", port, err)
	}

	sys, err := telemetry.NewSystem(&telemetry.Config{Enabled: true, Emitter: exporter})
	if err != nil {
		_ = exporter.Stop()
		return fmt.Errorf("create telemetry system: %w", err)
	}

	metricsPort = port
	if bound, err := portOf(exporter.GetAddr()); err == nil && bound > 0 {
		metricsPort = bound
	} else if port == 0 {
		metricsPort = fallbackMetricsPort
	}
	PrometheusExporter = exporter
	TelemetrySystem = sys
	return nil
}

// StopMetrics stops the exporter and disables emission. It is safe to call
// when metrics were never started.
func StopMetrics() {
	if PrometheusExporter != nil {
		_ = PrometheusExporter.Stop()
	}
	PrometheusExporter = nil
	TelemetrySystem = nil
	metricsPort = 0
}

// MetricsPort is the port the exporter listens on, or 0 when stopped.
func MetricsPort() int {
	return metricsPort
}

func portOf(addr string) (int, error) {
	_, port, err := net.SplitHostPort(addr)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(port)
}
