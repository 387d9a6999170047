package cmd

import (
	"github.com/fulmenhq/gofulmen/foundry"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	apperrors "github.com/dingolabs/dingo/internal/errors"
	"github.com/dingolabs/dingo/internal/observability"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Run self-health check",
	Long: `Run a self-health check to verify the application can start successfully.

With --backend the configured backend is probed as well.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if observability.CLILogger == nil {
			ExitWithCodeStderr(foundry.ExitConfigInvalid, "Logger not initialized", apperrors.NewConfigInvalidError("Logger not initialized"))
			return
		}
		log := observability.CLILogger
		log.Info("Running health check...")

		if versionInfo.Version == "" {
			ExitWithCode(log, foundry.ExitConfigInvalid, "Version information missing", apperrors.NewConfigInvalidError("Version information missing"))
			return
		}
		log.Debug("Version check passed", zap.String("version", versionInfo.Version))
		log.Info("✅ Version information available")
		log.Info("✅ Logger initialized")

		cfg := loadConfig()
		log.Info("✅ Configuration valid")

		if backend, _ := cmd.Flags().GetBool("backend"); backend {
			client := newClient(cfg)
			badge := probeOnce(cmd.Context(), client, cfg.API.Timeout)
			if !badge.Operational() {
				ExitWithCode(log, foundry.ExitExternalServiceUnavailable, "Backend is offline",
					apperrors.NewExternalServiceError("backend at "+client.BaseURL+" is not operational"))
				return
			}
			log.Info("✅ Backend operational", zap.String("api_base_url", client.BaseURL))
		}

		log.Info("")
		log.Info("✅ All health checks passed")
	},
}

func init() {
	healthCmd.Flags().Bool("backend", false, "also probe the backend status endpoint")
	rootCmd.AddCommand(healthCmd)
}
