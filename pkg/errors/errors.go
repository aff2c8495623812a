// Package errors defines the coded errors returned by tagplacer.
//
// Every error a caller can act on carries a [Code]. Codes are grouped into
// a [Kind] so the CLI can choose an exit status and the HTTP API a response
// status without enumerating codes:
//
//	err := errors.New(errors.ErrCodeInvalidArgument, "step size must be positive, got %g", step)
//	if errors.KindOf(err) == errors.KindInvalid {
//	    // caller bug, never retried
//	}
//
// The package shadows the standard library name. Import the standard
// package under an alias when both are needed.
package errors

import (
	"errors"
	"fmt"
)

// Code is a machine-readable error code.
type Code string

const (
	ErrCodeInvalidArgument Code = "INVALID_ARGUMENT"
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"
	ErrCodeInvalidConfig   Code = "INVALID_CONFIG"
	ErrCodeInvalidPath     Code = "INVALID_PATH"
	ErrCodeInvalidRegion   Code = "INVALID_REGION"

	ErrCodeDegenerateGeometry Code = "DEGENERATE_GEOMETRY"

	ErrCodeFamilyNotFound Code = "FAMILY_NOT_FOUND"
	ErrCodeSymbolNotFound Code = "SYMBOL_NOT_FOUND"
	ErrCodeFileNotFound   Code = "FILE_NOT_FOUND"

	ErrCodeNetwork  Code = "NETWORK_ERROR"
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Kind groups codes by who has to act on them.
type Kind int

const (
	KindUnknown  Kind = iota // plain errors and unregistered codes
	KindInvalid              // the caller passed something unusable
	KindNotFound             // a named file, family, or symbol is missing
	KindGeometry             // the input is well-formed but the computation is undefined
	KindNetwork              // a shared backend could not be reached
	KindInternal
)

var kinds = map[Code]Kind{
	ErrCodeInvalidArgument:    KindInvalid,
	ErrCodeInvalidInput:       KindInvalid,
	ErrCodeInvalidFormat:      KindInvalid,
	ErrCodeInvalidConfig:      KindInvalid,
	ErrCodeInvalidPath:        KindInvalid,
	ErrCodeInvalidRegion:      KindInvalid,
	ErrCodeDegenerateGeometry: KindGeometry,
	ErrCodeFamilyNotFound:     KindNotFound,
	ErrCodeSymbolNotFound:     KindNotFound,
	ErrCodeFileNotFound:       KindNotFound,
	ErrCodeNetwork:            KindNetwork,
	ErrCodeInternal:           KindInternal,
}

// Kind returns the group c belongs to.
func (c Code) Kind() Kind { return kinds[c] }

// Error is a coded error with an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return string(e.Code) + ": " + e.Message
	}
	return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
}

func (e *Error) Unwrap() error { return e.Cause }

// Is matches another *Error by code, so errors.Is(err, &Error{Code: c})
// works through the standard library.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// New returns an Error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap returns an Error with a formatted message around cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	e := New(code, format, args...)
	e.Cause = cause
	return e
}

// outermost returns the first *Error in err's chain.
func outermost(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

// Is reports whether the outermost coded error in err's chain has code.
func Is(err error, code Code) bool {
	e, ok := outermost(err)
	return ok && e.Code == code
}

// GetCode returns the outermost code in err's chain, or "".
func GetCode(err error) Code {
	if e, ok := outermost(err); ok {
		return e.Code
	}
	return ""
}

// KindOf returns the kind of the outermost code in err's chain.
func KindOf(err error) Kind {
	return GetCode(err).Kind()
}

// UserMessage returns the message of the outermost coded error without its
// code prefix or cause, or err's text for uncoded errors.
func UserMessage(err error) string {
	if e, ok := outermost(err); ok {
		return e.Message
	}
	return err.Error()
}

// IsInvalid reports whether err is a caller error.
func IsInvalid(err error) bool { return KindOf(err) == KindInvalid }
