package cmd

import (
	"fmt"
	"runtime"

	"github.com/fulmenhq/gofulmen/crucible"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/dingolabs/dingo/internal/config"
	"github.com/dingolabs/dingo/internal/observability"
)

var envInfoCmd = &cobra.Command{
	Use:   "envinfo",
	Short: "Display environment information",
	Long:  "Display environment, configuration and version information.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		log := observability.CLILogger
		version := crucible.GetVersion()

		log.Info("=== Dingo Environment Information ===")
		log.Info("")

		log.Info("Application:")
		log.Info("  Name:       " + binaryName())
		log.Info("  Version:    " + currentVersion())
		log.Info("  Commit:     " + versionInfo.Commit)
		log.Info("  Built:      " + versionInfo.BuildDate)
		log.Info("")

		log.Info("SSOT:")
		log.Info("  Gofulmen:   "+version.Gofulmen, zap.String("gofulmen_version", version.Gofulmen))
		log.Info("  Crucible:   "+version.Crucible, zap.String("crucible_version", version.Crucible))
		log.Info("")

		log.Info("Runtime:")
		log.Info("  Go Version: "+runtime.Version(), zap.String("go_version", runtime.Version()))
		log.Info("  GOOS:       "+runtime.GOOS, zap.String("goos", runtime.GOOS))
		log.Info("  GOARCH:     "+runtime.GOARCH, zap.String("goarch", runtime.GOARCH))
		log.Info("")

		cfg, err := config.Load(viper.GetViper())
		if err != nil {
			log.Warn("Config load failed", zap.Error(err))
			return
		}

		configFile := viper.ConfigFileUsed()
		if configFile == "" {
			configFile = config.DefaultConfigPath() + " (not found)"
		}

		log.Info("Backend:")
		log.Info("  API URL:        "+cfg.API.BaseURL, zap.String("api_base_url", cfg.API.BaseURL))
		log.Info("  Timeout:        "+cfg.API.Timeout.String(), zap.Duration("api_timeout", cfg.API.Timeout))
		log.Info("  User Agent:     " + newClient(cfg).UserAgent)
		log.Info("")

		log.Info("Console:")
		log.Info("  Show Delay:       " + cfg.UI.ShowDelay.String())
		log.Info("  Transition Delay: " + cfg.UI.TransitionDelay.String())
		log.Info("  Toast Duration:   " + cfg.UI.NotificationDuration.String())
		log.Info(fmt.Sprintf("  Stack Modals:     %t", cfg.UI.StackModals))
		log.Info("  Status Interval:  " + cfg.UI.StatusInterval.String())
		log.Info("  Markdown Style:   " + cfg.UI.MarkdownStyle)
		log.Info("")

		log.Info("Configuration:")
		log.Info("  Output Format:  "+cfg.Output.Format, zap.String("output_format", cfg.Output.Format))
		log.Info("  Log Level:      "+cfg.Logging.Level, zap.String("log_level", cfg.Logging.Level))
		log.Info("  Demo Server:    "+fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port))
		log.Info(fmt.Sprintf("  Metrics:        %t (port %d)", cfg.Metrics.Enabled, cfg.Metrics.Port))
		log.Info("  Config File:    "+configFile, zap.String("config_file", configFile))
		log.Info("")

		log.Info("=== End Environment Information ===")
	},
}

func init() {
	rootCmd.AddCommand(envInfoCmd)
}
