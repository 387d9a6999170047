package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fulmenhq/gofulmen/appidentity"
	gfconfig "github.com/fulmenhq/gofulmen/config"
	"github.com/fulmenhq/gofulmen/foundry"
	"github.com/fulmenhq/gofulmen/telemetry"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/dingolabs/dingo/internal/appid"
	"github.com/dingolabs/dingo/internal/config"
	"github.com/dingolabs/dingo/internal/observability"
	"github.com/dingolabs/dingo/internal/output"
)

var (
	cfgFile string
	envFile string
	verbose bool

	// App identity loaded from the embedded app.yaml (or .fulmen/app.yaml)
	appIdentity *appidentity.Identity

	// Version info set by main package
	versionInfo struct {
		Version   string
		Commit    string
		BuildDate string
	}
)

// SetVersionInfo is called by main package to set version information
func SetVersionInfo(version, commit, buildDate string) {
	versionInfo.Version = version
	versionInfo.Commit = commit
	versionInfo.BuildDate = buildDate
}

// GetAppIdentity returns the loaded app identity (only valid after initConfig)
func GetAppIdentity() *appidentity.Identity {
	return appIdentity
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	// NOTE: initConfig() overwrites these from app identity.
	Use:   filepath.Base(os.Args[0]),
	Short: "Console for the Dingo marketing automation backend",
	Long: `Console for the Dingo marketing automation backend.

Run "ui" for the interactive console, or one of the operation commands
(analyze, generate, community, campaign, research) for a one-shot request.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Disable global telemetry early so config loading does not emit metrics
	// to stdout. serve initializes the Prometheus-backed system later.
	disabledConfig := &telemetry.Config{Enabled: false}
	if sys, err := telemetry.NewSystem(disabledConfig); err == nil {
		telemetry.SetGlobalSystem(sys)
	}

	// Load app identity early for help text (before cobra processes --help)
	if identity, err := appid.Get(context.Background()); err == nil && identity != nil {
		appIdentity = identity
		applyIdentity(identity)
	}

	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $XDG_CONFIG_HOME/dingo/config.yaml)")
	flags.StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading the environment")
	flags.BoolVarP(&verbose, "verbose", "v", false, "verbose output (sets log level to debug)")
	flags.String("api-url", "", "backend API base URL (default "+`"http://localhost:8000/api/v1"`+")")
	flags.Duration("timeout", 0, "request timeout (0 waits indefinitely)")
	flags.StringP("output", "o", "", fmt.Sprintf("output format %v", output.Formats()))

	_ = viper.BindPFlag("verbose", flags.Lookup("verbose"))
	_ = viper.BindPFlag("api.base_url", flags.Lookup("api-url"))
	_ = viper.BindPFlag("api.timeout", flags.Lookup("timeout"))
	_ = viper.BindPFlag("output.format", flags.Lookup("output"))
}

func applyIdentity(identity *appidentity.Identity) {
	if identity.BinaryName != "" {
		rootCmd.Use = identity.BinaryName
	}
	if identity.Description != "" {
		rootCmd.Short = identity.Description
	}
	if f := rootCmd.PersistentFlags().Lookup("config"); f != nil && identity.ConfigName != "" {
		f.Usage = fmt.Sprintf("config file (default is $XDG_CONFIG_HOME/%s/config.yaml)", identity.ConfigName)
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	identity, err := appid.Get(context.Background())
	if err != nil || identity == nil {
		ExitWithCodeStderr(foundry.ExitFileNotFound, "Failed to load app identity", err)
	}
	appIdentity = identity
	applyIdentity(identity)

	observability.InitCLILogger(identity.BinaryName, verbose)

	if err := config.LoadDotEnv(envFile); err != nil {
		observability.CLILogger.Warn("Failed to load dotenv file", zap.String("path", envFile), zap.Error(err))
	}

	config.SetDefaults(viper.GetViper())
	config.BindEnv(viper.GetViper(), appid.EnvPrefix(context.Background()))

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		if dir := gfconfig.GetAppConfigDir(identity.ConfigName); dir != "" {
			viper.AddConfigPath(dir)
		}
		if identity.BinaryName != "" && identity.BinaryName != identity.ConfigName {
			if legacy := gfconfig.GetAppConfigDir(identity.BinaryName); legacy != "" {
				viper.AddConfigPath(legacy)
			}
		}
		viper.AddConfigPath("./config")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound):
			observability.CLILogger.Debug("No config file found, using defaults and environment variables")
		case cfgFile != "":
			ExitWithCode(observability.CLILogger, foundry.ExitConfigInvalid, "Failed to read config file", err)
		default:
			observability.CLILogger.Warn("Error reading config file", zap.Error(err))
		}
	} else {
		observability.CLILogger.Debug("Using config file", zap.String("path", viper.ConfigFileUsed()))
	}

	if level := viper.GetString("logging.level"); !verbose && level != "" {
		observability.InitCLILogger(identity.BinaryName, false, level)
	}
}

// loadConfig decodes the current settings, exiting on invalid configuration.
func loadConfig() *config.Config {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		ExitWithCode(observability.CLILogger, foundry.ExitConfigInvalid, "Invalid configuration", err)
	}
	return cfg
}
