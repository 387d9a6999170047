package core

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failed submission.
type ErrorKind string

const (
	// ErrorNetwork means no response was obtained.
	ErrorNetwork ErrorKind = "network"
	// ErrorHTTP means a response arrived with a non-success status.
	ErrorHTTP ErrorKind = "http"
	// ErrorParse means a body could not be decoded as JSON.
	ErrorParse ErrorKind = "parse"
	// ErrorValidation means the form failed client-side checks.
	ErrorValidation ErrorKind = "validation"
	// ErrorUnknownOperation means the operation is not in the known set.
	ErrorUnknownOperation ErrorKind = "unknown-operation"
)

// Error is the classified failure surfaced to the user.
type Error struct {
	Kind       ErrorKind
	Message    string
	StatusCode int
	Fields     []string
	Err        error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s error", e.Kind)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewError builds a classified error.
func NewError(kind ErrorKind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// AsError extracts a classified error from err. Unclassified errors are
// reported as network failures since they originate below the HTTP layer.
func AsError(err error) *Error {
	if err == nil {
		return nil
	}
	var classified *Error
	if errors.As(err, &classified) {
		return classified
	}
	return &Error{Kind: ErrorNetwork, Message: err.Error(), Err: err}
}

// KindOf returns the classification of err, or "" when err is nil.
func KindOf(err error) ErrorKind {
	if classified := AsError(err); classified != nil {
		return classified.Kind
	}
	return ""
}
