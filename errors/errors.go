// Package errors defines the error taxonomy used across the filesystem
// packages: a small set of sentinel conditions (errno.go) that can pick up
// call-site context without losing their own identity as a message.
//
// This project never inspects the error chain with errors.Is/errors.As --
// every caller either checks a DriverError directly or only cares about its
// message -- so unlike a general-purpose VFS error type, WithMessage never
// has to reconstruct a chain back to the original sentinel. WrapError's
// cause is kept only so a message can reference the concrete underlying
// error (what the device I/O actually said); WithMessage's is left nil,
// since it never wraps anything but adds plain annotation.
package errors

import "fmt"

// DriverError is the error type returned by internal filesystem code: one of
// the FSError sentinels in errno.go, carrying whatever context a call site
// attached to it.
type DriverError interface {
	error
	WithMessage(message string) DriverError
	WrapError(err error) DriverError
	Unwrap() error
}

// -----------------------------------------------------------------------------

// contextualError is a sentinel's message with whatever caused it appended.
// cause is the concrete error WrapError attached (e.g. the I/O error behind
// an ErrIOFailed); it's nil when the error was only ever built by
// WithMessage, which never has an underlying error to point at.
type contextualError struct {
	message string
	cause   error
}

// Error implements the `error` interface.
func (e contextualError) Error() string {
	return e.message
}

func (e contextualError) WithMessage(message string) DriverError {
	return contextualError{
		message: fmt.Sprintf("%s: %s", e.message, message),
		cause:   e.cause,
	}
}

func (e contextualError) WrapError(err error) DriverError {
	return contextualError{
		message: fmt.Sprintf("%s: %s", e.message, err.Error()),
		cause:   err,
	}
}

func (e contextualError) Unwrap() error {
	return e.cause
}
