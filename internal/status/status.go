// Package status probes the backend health endpoint and maps the answer to a
// badge shown on the main screen.
package status

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/dingolabs/dingo/internal/api"
	"github.com/dingolabs/dingo/internal/metrics"
	"github.com/dingolabs/dingo/internal/observability"
)

// Badge is the displayed backend state.
type Badge string

const (
	BadgeOperational Badge = "Operational"
	BadgeOffline     Badge = "Offline"
)

// Operational reports whether the badge shows a healthy backend.
func (b Badge) Operational() bool {
	return b == BadgeOperational
}

// Prober fetches the status document.
type Prober interface {
	Status(ctx context.Context) (*api.Response, error)
}

// Check probes once. Any failure, including an unexpected body, is Offline.
func Check(ctx context.Context, p Prober) Badge {
	badge := check(ctx, p)
	metrics.RecordStatusProbe(badge.Operational())
	return badge
}

func check(ctx context.Context, p Prober) Badge {
	resp, err := p.Status(ctx)
	if err != nil {
		if observability.CLILogger != nil {
			observability.CLILogger.Debug("Status probe failed", zap.Error(err))
		}
		return BadgeOffline
	}

	state, _ := resp.Object()["status"].(string)
	switch strings.ToLower(strings.TrimSpace(state)) {
	case "operational", "healthy":
		return BadgeOperational
	default:
		return BadgeOffline
	}
}

// Run probes immediately and then every interval until ctx is done, passing
// each badge to fn. A non-positive interval probes once.
func Run(ctx context.Context, p Prober, interval time.Duration, fn func(Badge)) {
	fn(Check(ctx, p))
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			fn(Check(ctx, p))
		}
	}
}
