package config

import (
	"time"
)

// Config represents the complete application configuration. Values come from,
// in increasing precedence: built-in defaults, the user config file
// ($XDG_CONFIG_HOME/dingo/config.yaml or --config), a .env file, DINGO_*
// environment variables and command-line flags.
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	UI      UIConfig      `mapstructure:"ui"`
	Output  OutputConfig  `mapstructure:"output"`
	Server  ServerConfig  `mapstructure:"server"`
	Logging LoggingConfig `mapstructure:"logging"`
	Metrics MetricsConfig `mapstructure:"metrics"`
	Health  HealthConfig  `mapstructure:"health"`
}

// APIConfig configures the backend client.
type APIConfig struct {
	// BaseURL is the versioned API root, e.g. http://localhost:8000/api/v1
	BaseURL string `mapstructure:"base_url"`

	// Timeout bounds each request. Zero means no client-side deadline.
	Timeout time.Duration `mapstructure:"timeout"`

	// UserAgent overrides the default dingo/<version> agent.
	UserAgent string `mapstructure:"user_agent"`
}

// UIConfig contains the interactive console timings and behavior.
type UIConfig struct {
	ShowDelay            time.Duration `mapstructure:"show_delay"`
	TransitionDelay      time.Duration `mapstructure:"transition_delay"`
	NotificationDuration time.Duration `mapstructure:"notification_duration"`
	NotificationExit     time.Duration `mapstructure:"notification_exit"`

	// StackModals keeps earlier forms attached when another one opens.
	StackModals bool `mapstructure:"stack_modals"`

	// StatusInterval repeats the backend status probe. Zero probes once.
	StatusInterval time.Duration `mapstructure:"status_interval"`

	// MarkdownStyle is a glamour style name or path; "auto" follows the terminal.
	MarkdownStyle string `mapstructure:"markdown_style"`
}

// OutputConfig controls one-shot command output.
type OutputConfig struct {
	// Format: table, markdown, json, yaml or pretty
	Format string `mapstructure:"format"`
}

// ServerConfig contains the demo backend HTTP server configuration
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// LoggingConfig contains logging configuration
// Supports progressive logging profiles:
// - SIMPLE: Console output only, minimal configuration (CLI commands)
// - STRUCTURED: Structured sinks, correlation IDs (demo backend)
// - ENTERPRISE: Multiple sinks, middleware, throttling, policy enforcement
type LoggingConfig struct {
	// Level controls the minimum log level
	// Valid values: trace, debug, info, warn, error
	Level string `mapstructure:"level"`

	// Profile selects the logging complexity level
	// Valid values: SIMPLE, STRUCTURED, ENTERPRISE
	Profile string `mapstructure:"profile"`
}

// MetricsConfig contains Prometheus metrics configuration
type MetricsConfig struct {
	// Enabled controls whether metrics are exposed
	Enabled bool `mapstructure:"enabled"`

	// Port is the dedicated metrics endpoint port (Prometheus format)
	Port int `mapstructure:"port"`
}

// HealthConfig contains health check configuration
type HealthConfig struct {
	// Enabled controls whether health endpoints are exposed
	Enabled bool `mapstructure:"enabled"`
}
