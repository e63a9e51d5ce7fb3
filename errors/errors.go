// Package errors defines the coded errors reported while encoding, decoding
// and validating bytecode, and while operating the feature flag registry.
//
// Every error produced by this module is an *Error carrying an ErrorCode.
// Callers test for a condition with the standard library's errors.Is against
// one of the sentinel values below; matching is by code, so the message text
// of a particular failure does not matter:
//
//	if errors.Is(err, lbcerrors.ErrVersionRejected) {
//	    // refuse the chunk
//	}
//
// None of these conditions is fatal to the host process. The caller decides
// whether to abandon a single chunk load or escalate.
package errors

import (
	"fmt"
)

// Sentinel errors, one per ErrorCode.
var (
	ErrVersionRejected    = &Error{Code: E1001}
	ErrUnknownOpcode      = &Error{Code: E1002}
	ErrMalformedTag       = &Error{Code: E1003}
	ErrInvalidCaptureKind = &Error{Code: E1004}
	ErrTruncatedChunk     = &Error{Code: E1005}
	ErrInvalidChunk       = &Error{Code: E1006}
	ErrFieldOverflow      = &Error{Code: E2001}
	ErrFlagRedefinition   = &Error{Code: E3001}
	ErrImmutableFlagWrite = &Error{Code: E3002}
	ErrUnknownFlag        = &Error{Code: E3003}
)

// FatalError is an interface for errors that may or may not be fatal.
type FatalError interface {
	Error() string
	IsFatal() bool
}

// Error is a coded error with a human readable message.
type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

// New returns an error with the given code and message.
func New(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf returns an error with the given code and a formatted message.
func Newf(code ErrorCode, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap returns an error with the given code that wraps err.
func Wrap(code ErrorCode, err error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Err: err}
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Code.Description()
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error with the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// IsFatal always returns false. Errors from this module are recoverable.
func (e *Error) IsFatal() bool {
	return false
}

// CodeOf returns the ErrorCode of err if it is an *Error, or an empty code.
func CodeOf(err error) ErrorCode {
	for err != nil {
		if e, ok := err.(*Error); ok {
			return e.Code
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return ""
		}
		err = u.Unwrap()
	}
	return ""
}

// Prefix returns err with a formatted prefix added to its message. An *Error
// keeps its code; any other error is wrapped with fmt.Errorf.
func Prefix(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	prefix := fmt.Sprintf(format, args...)
	if e, ok := err.(*Error); ok {
		msg := e.Message
		if msg == "" {
			msg = e.Code.Description()
		}
		return &Error{Code: e.Code, Message: prefix + ": " + msg, Err: e.Err}
	}
	return fmt.Errorf("%s: %w", prefix, err)
}
