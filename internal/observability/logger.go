package observability

import (
	"fmt"
	"os"
	"strings"

	"github.com/fulmenhq/gofulmen/foundry"
	"github.com/fulmenhq/gofulmen/logging"
)

var (
	// CLILogger backs one-shot commands and the console (SIMPLE profile).
	// It is nil while the console owns the terminal.
	CLILogger *logging.Logger

	// ServerLogger backs the demo backend (STRUCTURED profile, JSON on stderr).
	ServerLogger *logging.Logger
)

// InitCLILogger installs CLILogger. verbose, or a configured level of debug
// or trace, lowers the threshold to DEBUG.
func InitCLILogger(serviceName string, verbose bool, level ...string) {
	logger, err := logging.NewCLI(serviceName)
	if err != nil {
		fatal(foundry.ExitConfigInvalid, "Failed to initialize CLI logger", err)
	}

	debug := verbose
	if len(level) > 0 {
		switch levelName(level[0]) {
		case "TRACE", "DEBUG":
			debug = true
		}
	}
	if debug {
		logger.SetLevel(logging.DEBUG)
	}
	CLILogger = logger
}

// DetachCLILogger clears CLILogger and returns a function restoring it.
func DetachCLILogger() (restore func()) {
	previous := CLILogger
	CLILogger = nil
	return func() { CLILogger = previous }
}

// InitServerLogger installs ServerLogger at logLevel. A non-empty namespace
// is attached to every entry.
func InitServerLogger(serviceName string, logLevel string, namespace ...string) {
	ns := ""
	if len(namespace) > 0 {
		ns = namespace[0]
	}

	logger, err := logging.New(serverLoggerConfig(serviceName, logLevel, ns))
	if err != nil {
		fatal(foundry.ExitConfigInvalid, "Failed to initialize server logger", err)
	}
	ServerLogger = logger
}

func serverLoggerConfig(serviceName, logLevel, namespace string) *logging.LoggerConfig {
	static := map[string]any{"component": "demo-backend"}
	if namespace != "" {
		static["namespace"] = namespace
	}

	return &logging.LoggerConfig{
		Profile:      logging.ProfileStructured,
		DefaultLevel: levelName(logLevel),
		Service:      serviceName,
		Environment:  "production",
		StaticFields: static,
		Middleware: []logging.MiddlewareConfig{
			{Name: "correlation", Enabled: true, Order: 100, Config: map[string]any{}},
		},
		Sinks: []logging.SinkConfig{
			{
				Type:    "console",
				Format:  "json",
				Console: &logging.ConsoleSinkConfig{Stream: "stderr"},
			},
		},
		EnableCaller:     true,
		EnableStacktrace: true,
	}
}

// levelName maps a config level to a gofulmen severity. Unknown levels are
// INFO.
func levelName(level string) string {
	switch l := strings.ToUpper(strings.TrimSpace(level)); l {
	case "TRACE", "DEBUG", "INFO", "WARN", "ERROR":
		return l
	case "WARNING":
		return "WARN"
	default:
		return "INFO"
	}
}

// fatal reports a logger setup failure on stderr and exits. No logger exists
// yet at this point.
func fatal(code foundry.ExitCode, msg string, err error) {
	fmt.Fprintf(os.Stderr, "FATAL: %s: %v\n", msg, err)
	if info, ok := foundry.GetExitCodeInfo(code); ok {
		fmt.Fprintf(os.Stderr, "Exit Code: %d (%s) - %s\n", info.Code, info.Name, info.Description)
		os.Exit(info.Code)
	}
	os.Exit(int(code))
}
