package cmd

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/fulmenhq/gofulmen/signals"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/dingolabs/dingo/internal/config"
	apperrors "github.com/dingolabs/dingo/internal/errors"
	"github.com/dingolabs/dingo/internal/metrics"
	"github.com/dingolabs/dingo/internal/observability"
	"github.com/dingolabs/dingo/internal/server"
	"github.com/dingolabs/dingo/internal/server/handlers"
)

// telemetryHealthChecker ensures telemetry system and exporter are available
type telemetryHealthChecker struct{}

func (telemetryHealthChecker) CheckHealth(ctx context.Context) error {
	if observability.TelemetrySystem == nil || observability.PrometheusExporter == nil {
		return apperrors.NewExternalServiceError("telemetry system not initialized")
	}
	return nil
}

// identityHealthChecker validates app identity metadata
type identityHealthChecker struct {
	binaryName string
	envPrefix  string
	configName string
}

func (i identityHealthChecker) CheckHealth(ctx context.Context) error {
	switch {
	case i.binaryName == "":
		return apperrors.NewConfigInvalidError("app identity missing binary name")
	case i.envPrefix == "":
		return apperrors.NewConfigInvalidError("app identity missing env prefix")
	case i.configName == "":
		return apperrors.NewConfigInvalidError("app identity missing config name")
	}
	return nil
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the demo backend",
	Long: `Run a local backend that answers the console's API with canned results.

The demo backend serves /api/v1/status and the five operation endpoints so the
console and one-shot commands can be exercised without the real service.

Signal Handling:
  • Ctrl+C (SIGINT) or SIGTERM: Graceful shutdown
  • Ctrl+C twice within 2s: Force quit
  • SIGHUP: Config reload`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		identity := GetAppIdentity()
		namespace := identity.TelemetryNamespace()

		observability.InitServerLogger(identity.BinaryName, cfg.Logging.Level, namespace)

		if cfg.Metrics.Enabled {
			if err := observability.InitMetrics(identity.BinaryName, cfg.Metrics.Port, namespace); err != nil {
				observability.ServerLogger.Error("Failed to initialize metrics", zap.Error(err))
				return apperrors.Wrap(cmd.Context(), apperrors.CodeInternal, err, "metrics initialization failed")
			}
		}
		metrics.SetServerStartTime(time.Now().Unix())

		latency, _ := cmd.Flags().GetDuration("latency")

		observability.ServerLogger.Info("Initializing demo backend",
			zap.String("service", identity.BinaryName),
			zap.String("namespace", namespace),
			zap.String("version", versionInfo.Version),
			zap.String("host", cfg.Server.Host),
			zap.Int("port", cfg.Server.Port),
			zap.Bool("metrics", cfg.Metrics.Enabled),
			zap.Duration("latency", latency))

		hm := handlers.InitHealthManager(versionInfo.Version)
		hm.RegisterChecker("app_identity", identityHealthChecker{
			binaryName: identity.BinaryName,
			envPrefix:  identity.EnvPrefix,
			configName: identity.ConfigName,
		})
		hm.RegisterChecker("operations", handlers.OperationsChecker())
		if cfg.Metrics.Enabled {
			hm.RegisterChecker("telemetry", telemetryHealthChecker{})
		}

		srv := server.New(server.Options{
			Host:         cfg.Server.Host,
			Port:         cfg.Server.Port,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
			IdleTimeout:  cfg.Server.IdleTimeout,
			Version:      versionInfo.Version,
			Latency:      latency,
		})

		shutdownTimeout := cfg.Server.ShutdownTimeout
		if shutdownTimeout == 0 {
			shutdownTimeout = 10 * time.Second
		}

		// LIFO: the HTTP server stops, then the exporter, then the logger flushes.
		signals.OnShutdown(func(ctx context.Context) error {
			if err := observability.ServerLogger.Sync(); err != nil {
				observability.ServerLogger.Warn("Logger sync returned error (may be benign)", zap.Error(err))
			}
			return nil
		})
		signals.OnShutdown(func(ctx context.Context) error {
			observability.StopMetrics()
			return nil
		})
		signals.OnShutdown(func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return apperrors.Wrap(ctx, apperrors.CodeInternal, err, "server shutdown failed")
			}
			observability.ServerLogger.Info("HTTP server stopped gracefully")
			return nil
		})

		signals.OnReload(func(ctx context.Context) error {
			observability.ServerLogger.Info("Received SIGHUP: reloading configuration")
			if err := viper.ReadInConfig(); err != nil {
				var notFound viper.ConfigFileNotFoundError
				if errors.As(err, &notFound) {
					return nil
				}
				return apperrors.Wrap(ctx, apperrors.CodeConfigInvalid, err, "config reload failed")
			}
			if _, err := config.Load(viper.GetViper()); err != nil {
				return apperrors.Wrap(ctx, apperrors.CodeConfigInvalid, err, "config reload failed")
			}
			observability.ServerLogger.Info("Configuration reloaded",
				zap.String("file", viper.ConfigFileUsed()))
			return nil
		})

		if err := signals.EnableDoubleTap(signals.DoubleTapConfig{
			Window:  2 * time.Second,
			Message: "Press Ctrl+C again within 2 seconds to force quit",
		}); err != nil {
			observability.ServerLogger.Warn("Failed to enable double-tap force quit", zap.Error(err))
		}

		g, ctx := errgroup.WithContext(cmd.Context())
		g.Go(func() error {
			if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		g.Go(func() error {
			return signals.Listen(ctx)
		})

		if err := g.Wait(); err != nil {
			return apperrors.Wrap(cmd.Context(), apperrors.CodeInternal, err, "server error")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("host", "127.0.0.1", "server host")
	serveCmd.Flags().IntP("port", "p", 8000, "server port")
	serveCmd.Flags().Duration("latency", 0, "delay every operation response by this long")
	serveCmd.Flags().Bool("metrics", false, "expose Prometheus metrics")

	_ = viper.BindPFlag("server.host", serveCmd.Flags().Lookup("host"))
	_ = viper.BindPFlag("server.port", serveCmd.Flags().Lookup("port"))
	_ = viper.BindPFlag("metrics.enabled", serveCmd.Flags().Lookup("metrics"))
}
