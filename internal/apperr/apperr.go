// Package apperr defines the launcher's error taxonomy. Every failure that
// crosses a component boundary carries a Kind so callers can decide whether
// to absorb it (convenience data) or surface a short message (login,
// download).
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies a failure by where it came from.
type Kind string

const (
	KindTransport       Kind = "transport"
	KindDeserialization Kind = "deserialization"
	KindCredential      Kind = "credential"
	KindStorage         Kind = "storage"
	KindInstall         Kind = "install"
	KindUnknown         Kind = "unknown"
)

// Error is a classified failure. Message is safe to show to a user; Cause
// carries the technical detail for logs.
type Error struct {
	Kind    Kind
	Op      string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s:%s] %s: %v", e.Kind, e.Op, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s:%s] %s", e.Kind, e.Op, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// New returns a classified error without a cause.
func New(kind Kind, op, message string) *Error {
	return &Error{Kind: kind, Op: op, Message: message}
}

// Wrap classifies err. A nil err yields a nil error.
func Wrap(kind Kind, op, message string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Op: op, Message: message, Cause: err}
}

// KindOf returns the kind of the outermost classified error in the chain.
func KindOf(err error) Kind {
	var target *Error
	if errors.As(err, &target) {
		return target.Kind
	}
	return KindUnknown
}

// IsKind reports whether the outermost classified error in the chain has kind.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// UserMessage returns the short text to show for err. Unclassified errors
// get a generic message so internals never leak to the user.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var target *Error
	if errors.As(err, &target) && target.Message != "" {
		return target.Message
	}
	return "something went wrong"
}
