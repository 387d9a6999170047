// Package config provides centralized configuration management for dingo.
// Defaults are registered on a viper instance, overridden by the user config
// file, a .env file, DINGO_* environment variables and bound flags, and then
// decoded into a typed Config.
package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"path/filepath"
	"strings"
	"sync"

	gfconfig "github.com/fulmenhq/gofulmen/config"
	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/dingolabs/dingo/internal/api"
	"github.com/dingolabs/dingo/internal/appid"
	"github.com/dingolabs/dingo/internal/output"
)

var (
	// appConfig holds the current application configuration
	appConfig *Config
	configMu  sync.RWMutex
)

// SetDefaults registers every configuration key with its default value.
// Keys must be registered for environment overrides to reach Load.
func SetDefaults(v *viper.Viper) {
	// API client defaults
	v.SetDefault("api.base_url", api.DefaultBaseURL)
	v.SetDefault("api.timeout", "0s")
	v.SetDefault("api.user_agent", "")

	// Console defaults
	v.SetDefault("ui.show_delay", "10ms")
	v.SetDefault("ui.transition_delay", "300ms")
	v.SetDefault("ui.notification_duration", "3s")
	v.SetDefault("ui.notification_exit", "300ms")
	v.SetDefault("ui.stack_modals", false)
	v.SetDefault("ui.status_interval", "0s")
	v.SetDefault("ui.markdown_style", "auto")

	// Output defaults
	v.SetDefault("output.format", string(output.FormatTable))

	// Demo backend defaults (matches the backend's own launcher)
	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.idle_timeout", "120s")
	v.SetDefault("server.shutdown_timeout", "10s")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.profile", "simple")

	// Metrics defaults
	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.port", 9090)

	// Health check defaults
	v.SetDefault("health.enabled", true)
}

// BindEnv maps configuration keys to environment variables: with prefix
// DINGO_, api.base_url is read from DINGO_API_BASE_URL.
func BindEnv(v *viper.Viper, prefix string) {
	v.SetEnvPrefix(strings.TrimSuffix(prefix, "_"))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// Load decodes the settings of v into a Config, validates it and stores it
// as the current configuration.
//
// This function is safe to call multiple times (e.g., for config reload)
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           cfg,
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create decoder: %w", err)
	}

	if err := decoder.Decode(v.AllSettings()); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	setConfig(cfg)
	return cfg, nil
}

// Validate checks values that would otherwise fail late and obscurely.
func (c *Config) Validate() error {
	var problems []string

	if base := strings.TrimSpace(c.API.BaseURL); base != "" {
		parsed, err := url.Parse(base)
		if err != nil || parsed.Scheme == "" || parsed.Host == "" {
			problems = append(problems, fmt.Sprintf("api.base_url %q is not an absolute URL", base))
		}
	}
	if c.API.Timeout < 0 {
		problems = append(problems, "api.timeout must not be negative")
	}
	if _, err := output.ParseFormat(c.Output.Format); err != nil {
		problems = append(problems, fmt.Sprintf("output.format: %v", err))
	}
	for key, d := range map[string]int64{
		"ui.show_delay":            int64(c.UI.ShowDelay),
		"ui.transition_delay":      int64(c.UI.TransitionDelay),
		"ui.notification_duration": int64(c.UI.NotificationDuration),
		"ui.notification_exit":     int64(c.UI.NotificationExit),
		"ui.status_interval":       int64(c.UI.StatusInterval),
	} {
		if d < 0 {
			problems = append(problems, key+" must not be negative")
		}
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		problems = append(problems, fmt.Sprintf("server.port %d is out of range", c.Server.Port))
	}

	if len(problems) == 0 {
		return nil
	}
	return &InvalidError{Problems: problems}
}

// InvalidError lists every invalid configuration value.
type InvalidError struct {
	Problems []string
}

func (e *InvalidError) Error() string {
	return "invalid configuration: " + strings.Join(e.Problems, "; ")
}

// LoadDotEnv loads KEY=value pairs from the given files (default ".env")
// into the process environment. Missing files are ignored and variables
// already set are not overwritten.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", path, err)
		}
	}
	return nil
}

// GetConfig returns the current application configuration (thread-safe)
func GetConfig() *Config {
	configMu.RLock()
	defer configMu.RUnlock()
	return appConfig
}

// setConfig updates the current configuration (thread-safe)
func setConfig(cfg *Config) {
	configMu.Lock()
	defer configMu.Unlock()
	appConfig = cfg
}

// appNamesForPaths returns the config name and binary name from app identity,
// falling back to "dingo" if not set.
func appNamesForPaths() (configName string, binaryName string) {
	configName = appid.DefaultBinaryName
	binaryName = appid.DefaultBinaryName

	identity, err := appid.Get(context.Background())
	if err != nil || identity == nil {
		return configName, binaryName
	}
	if strings.TrimSpace(identity.ConfigName) != "" {
		configName = identity.ConfigName
	}
	if strings.TrimSpace(identity.BinaryName) != "" {
		binaryName = identity.BinaryName
	}
	return configName, binaryName
}

// UserConfigPaths returns the XDG-compliant config file candidates.
func UserConfigPaths() []string {
	configName, binaryName := appNamesForPaths()
	var legacy []string
	if binaryName != configName {
		legacy = append(legacy, binaryName)
	}
	return gfconfig.GetAppConfigPaths(configName, legacy...)
}

// DefaultConfigDir returns the XDG-compliant config directory.
func DefaultConfigDir() string {
	configName, _ := appNamesForPaths()
	return gfconfig.GetAppConfigDir(configName)
}

// DefaultConfigPath returns the XDG-compliant path to the user config file.
func DefaultConfigPath() string {
	configDir := DefaultConfigDir()
	if strings.TrimSpace(configDir) == "" {
		return ""
	}
	return filepath.Join(configDir, "config.yaml")
}
