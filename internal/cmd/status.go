package cmd

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fulmenhq/gofulmen/ascii"
	"github.com/fulmenhq/gofulmen/foundry"
	"github.com/spf13/cobra"

	"github.com/dingolabs/dingo/internal/status"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check whether the backend is operational",
	Long: `Probe the backend status endpoint and print the badge shown in the console.

With --watch the probe repeats every --interval until interrupted.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		watch, _ := cmd.Flags().GetBool("watch")
		interval, _ := cmd.Flags().GetDuration("interval")
		if !watch {
			interval = 0
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		client := newClient(cfg)
		var last status.Badge
		status.Run(ctx, client, interval, func(badge status.Badge) {
			last = badge
			writeBadge(cmd.OutOrStdout(), client.BaseURL, badge, time.Now())
		})

		if !watch && !last.Operational() {
			osExit(int(foundry.ExitExternalServiceUnavailable))
		}
		return nil
	},
}

func init() {
	statusCmd.Flags().Bool("watch", false, "keep probing until interrupted")
	statusCmd.Flags().Duration("interval", 10*time.Second, "probe interval with --watch")
	rootCmd.AddCommand(statusCmd)
}

func writeBadge(w io.Writer, baseURL string, badge status.Badge, at time.Time) {
	lines := []string{
		fmt.Sprintf("Backend: %s", baseURL),
		fmt.Sprintf("Status:  %s", badge),
		"Checked: " + at.Format(time.TimeOnly),
	}
	_, _ = fmt.Fprint(w, ascii.DrawBox(strings.Join(lines, "\n"), 0))
}

// probeOnce is the single-shot check used by health reporting.
func probeOnce(ctx context.Context, p status.Prober, timeout time.Duration) status.Badge {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return status.Check(ctx, p)
}
