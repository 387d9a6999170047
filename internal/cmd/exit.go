package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fulmenhq/gofulmen/ascii"
	"github.com/fulmenhq/gofulmen/errors"
	"github.com/fulmenhq/gofulmen/foundry"
	"github.com/fulmenhq/gofulmen/logging"
	"go.uber.org/zap"

	apperrors "github.com/dingolabs/dingo/internal/errors"
	"github.com/dingolabs/dingo/internal/observability"
)

// osExit is swapped by tests.
var osExit = os.Exit

// ExitWithCode exits the program with a semantic foundry exit code and logs the error.
//
// Parameters:
//   - logger: The logger to use for error output (can be nil for early failures)
//   - exitCode: The foundry exit code constant (e.g., foundry.ExitConfigInvalid)
//   - msg: Human-readable error message
//   - err: The underlying error (can be nil)
func ExitWithCode(logger *logging.Logger, exitCode foundry.ExitCode, msg string, err error) {
	info, ok := foundry.GetExitCodeInfo(exitCode)
	if !ok {
		fmt.Fprintf(os.Stderr, "FATAL: %s: %v (exit code: %d)\n", msg, err, exitCode)
		osExit(int(exitCode))
		return
	}

	if logger == nil {
		ExitWithCodeStderr(exitCode, msg, err)
		return
	}

	fields := []zap.Field{
		zap.Int("exit_code", info.Code),
		zap.String("exit_name", info.Name),
		zap.String("exit_category", info.Category),
	}
	if envelope, ok := err.(*errors.ErrorEnvelope); ok {
		fields = append(fields,
			zap.String("error_code", envelope.Code),
			zap.String("error_message", envelope.Message),
			zap.String("correlation_id", envelope.CorrelationID),
		)
		if envelope.Details != nil {
			fields = append(fields, zap.Any("error_details", envelope.Details))
		}
		if originalErr, ok := envelope.Original.(error); ok {
			err = originalErr
		}
	}
	fields = append(fields, zap.Error(err))
	logger.Error(msg, fields...)

	osExit(info.Code)
}

// ExitWithCodeStderr is a variant that writes to stderr without a logger.
// Use this for early failures before logger initialization.
func ExitWithCodeStderr(exitCode foundry.ExitCode, msg string, err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: %s: %v\n", msg, err)
	} else {
		fmt.Fprintf(os.Stderr, "FATAL: %s\n", msg)
	}

	info, ok := foundry.GetExitCodeInfo(exitCode)
	if !ok {
		osExit(int(exitCode))
		return
	}
	fmt.Fprintf(os.Stderr, "Exit Code: %d (%s) - %s\n", info.Code, info.Name, info.Description)
	osExit(info.Code)
}

// ExitWithOperationError reports a failed backend operation to stderr and
// exits with the code of its error class.
func ExitWithOperationError(err error) {
	osExit(int(reportOperationError(os.Stderr, err)))
}

// reportOperationError writes the boxed user-facing message for err and
// returns the exit code that matches it.
func reportOperationError(w io.Writer, err error) foundry.ExitCode {
	envelope := apperrors.FromOperationError(err)
	if envelope == nil {
		return 0
	}

	lines := []string{"Error: " + envelope.Message}
	if status, ok := envelope.Details["status_code"]; ok {
		lines = append(lines, fmt.Sprintf("HTTP status: %v", status))
	}
	if fields, ok := envelope.Details["fields"].([]string); ok && len(fields) > 0 {
		lines = append(lines, "Fields: "+strings.Join(fields, ", "))
	}
	_, _ = fmt.Fprint(w, ascii.DrawBox(strings.Join(lines, "\n"), 0))

	if observability.CLILogger != nil {
		observability.CLILogger.Debug("Operation failed",
			zap.String("error_code", envelope.Code),
			zap.Error(err))
	}
	return apperrors.ExitCodeFor(envelope.Code)
}
