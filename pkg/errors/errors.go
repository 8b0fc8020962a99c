// Package errors provides structured errors shared by the CLI and the HTTP
// server.
//
// Every error carries a machine-readable [Code]. Codes fall into classes
// ([Code.Class]) that decide how an entry point reports them: input errors
// become a 400 or a usage hint, missing resources a 404, everything else is
// logged as internal.
//
//	err := errors.New(errors.ErrCodeInvalidSequence, "sequence contains %q", r)
//	if errors.Is(err, errors.ErrCodeInvalidSequence) {
//	    // reject the request
//	}
//
//	err = errors.Wrap(errors.ErrCodeFileNotFound, cause, "open %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code is a machine-readable error code.
type Code string

const (
	// Rejected input
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidSequence Code = "INVALID_SEQUENCE"
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"
	ErrCodeInvalidMode     Code = "INVALID_MODE"
	ErrCodeInvalidScoring  Code = "INVALID_SCORING"
	ErrCodeInvalidConfig   Code = "INVALID_CONFIG"
	ErrCodeOutOfRange      Code = "OUT_OF_RANGE" // Matrix index outside its bounds

	// The scoring ties so often that the optimal alignments are too many
	// to enumerate.
	ErrCodeTooManyAlignments Code = "TOO_MANY_ALIGNMENTS"

	// Missing resources
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Backends and environment
	ErrCodeStorage     Code = "STORAGE_ERROR"
	ErrCodeTimeout     Code = "TIMEOUT"
	ErrCodeUnsupported Code = "UNSUPPORTED" // A feature needs a tool that is not installed

	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Class groups codes by how they are reported.
type Class int

const (
	ClassInternal    Class = iota // Bug or unexpected failure
	ClassInput                    // The caller sent something unusable
	ClassMissing                  // The named resource does not exist
	ClassUnavailable              // A backend or tool could not serve the request
)

// Class returns the class of c. Unknown codes are internal.
func (c Code) Class() Class {
	switch c {
	case ErrCodeInvalidInput, ErrCodeInvalidSequence, ErrCodeInvalidFormat,
		ErrCodeInvalidMode, ErrCodeInvalidScoring, ErrCodeInvalidConfig, ErrCodeOutOfRange,
		ErrCodeTooManyAlignments:
		return ClassInput
	case ErrCodeNotFound, ErrCodeFileNotFound:
		return ClassMissing
	case ErrCodeStorage, ErrCodeTimeout, ErrCodeUnsupported:
		return ClassUnavailable
	}
	return ClassInternal
}

// Error is a coded error with an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an error with code and a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap returns an error with code and a formatted message around cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Is reports whether any *Error in err's chain has code.
func Is(err error, code Code) bool {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return false
		}
		if e.Code == code {
			return true
		}
		err = e.Cause
	}
	return false
}

// GetCode returns the code of the outermost *Error in err's chain, or ""
// when there is none.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// ClassOf returns the class of err's code.
func ClassOf(err error) Class { return GetCode(err).Class() }

// UserMessage returns err without code prefixes, suitable for display.
// The message of the outermost *Error is followed by its cause, if any.
func UserMessage(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return err.Error()
	}
	if e.Cause == nil {
		return e.Message
	}
	return e.Message + ": " + UserMessage(e.Cause)
}
