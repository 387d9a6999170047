package errors

import (
	stderrors "errors"

	"github.com/fulmenhq/gofulmen/errors"
	"github.com/fulmenhq/gofulmen/foundry"

	"github.com/dingolabs/dingo/internal/core"
)

// ExitInvalidArgument is the foundry catalog code for rejected user input.
const ExitInvalidArgument foundry.ExitCode = 40

// FromOperationError maps a failed submission into an envelope. The envelope
// message is the user-facing message of the classified error.
func FromOperationError(err error) *errors.ErrorEnvelope {
	if err == nil {
		return nil
	}

	var envelope *errors.ErrorEnvelope
	if stderrors.As(err, &envelope) && envelope != nil {
		return envelope
	}

	classified := core.AsError(err)

	code := CodeInternal
	switch classified.Kind {
	case core.ErrorValidation, core.ErrorUnknownOperation:
		code = CodeValidationFailed
	case core.ErrorNetwork:
		code = CodeExternalService
	case core.ErrorHTTP:
		code = CodeExternalService
	case core.ErrorParse:
		code = CodeDataProcessing
	}

	envelope = errors.NewErrorEnvelope(code, classified.Message)

	details := map[string]interface{}{
		"kind": string(classified.Kind),
	}
	if classified.StatusCode != 0 {
		details["status_code"] = classified.StatusCode
	}
	if len(classified.Fields) > 0 {
		details["fields"] = classified.Fields
	}
	envelope = envelope.WithDetails(details)

	if classified.Err != nil {
		envelope = withWrappedError(envelope, classified.Err)
	}
	return envelope
}

// ExitCodeFor picks the process exit code for an envelope code.
func ExitCodeFor(code string) foundry.ExitCode {
	switch code {
	case CodeValidationFailed, CodeInvalidInput:
		return ExitInvalidArgument
	case CodeExternalService, CodeServiceUnavailable:
		return foundry.ExitExternalServiceUnavailable
	case CodeConfigInvalid:
		return foundry.ExitConfigInvalid
	default:
		return foundry.ExitFailure
	}
}
