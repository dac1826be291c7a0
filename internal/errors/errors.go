// Package errors defines the error kinds the credential lifecycle service
// exposes to its callers. Every failure that crosses a service boundary is
// one of these kinds; the transport layer maps kinds to wire status codes.
package errors

import (
	"errors"
	"fmt"
)

// Kind classifies a failure for the caller. The set is closed: handlers
// translate every collaborator error to one of these before returning.
type Kind int

const (
	// KindInvalidArgument marks malformed input the caller can correct and resubmit.
	KindInvalidArgument Kind = iota + 1
	// KindAlreadyExists marks a registration conflict.
	KindAlreadyExists
	// KindUnauthenticated marks bad credentials or a token decode failure.
	KindUnauthenticated
	// KindNotFound marks a referenced user or session that is absent.
	KindNotFound
	// KindInternal marks an unexpected collaborator failure. The message shown
	// to callers is generic; the wrapped cause is for logs only.
	KindInternal
)

func (k Kind) String() string {
	switch k {
	case KindInvalidArgument:
		return "invalid_argument"
	case KindAlreadyExists:
		return "already_exists"
	case KindUnauthenticated:
		return "unauthenticated"
	case KindNotFound:
		return "not_found"
	case KindInternal:
		return "internal"
	}
	return "unknown"
}

// Error is a failure with a caller-visible kind and reason. Err, when set,
// carries the underlying cause and never reaches the caller.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New builds an Error with the given kind and caller-visible message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap builds an Error that keeps err as its hidden cause.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// Internal wraps an unexpected collaborator failure. Callers only ever see
// the generic message; err is preserved for logging.
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: "internal error", Err: err}
}

// KindOf returns the kind carried by err, or KindInternal when err carries
// none. Unclassified errors must never leak detail, so they are internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// MessageOf returns the caller-visible message for err. Errors without a
// kind, and internal errors, yield the generic message.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Kind != KindInternal {
		return e.Message
	}
	return "internal error"
}
