// Package apperrors defines the error taxonomy shared by all use cases.
// Controllers map each error to a stable machine-readable code and an HTTP
// status; use cases return them without knowing about HTTP.
package apperrors

import (
	"errors"
	"fmt"
)

type Error struct {
	Code    string
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.cause }

// Is makes every derived error match its taxonomy sentinel, so callers can
// use errors.Is against the exported values below.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

var (
	// ErrNotFound covers both "does not exist" and "exists but the requester
	// lacks visibility". The two are intentionally indistinguishable.
	ErrNotFound = &Error{Code: "not_found", Message: "resource not found"}

	// ErrUnauthorized means the actor lacks the required relationship
	// (not the owner, not an administrator). Checked before any state
	// machine evaluation.
	ErrUnauthorized = &Error{Code: "unauthorized", Message: "operation not permitted"}

	// ErrInvalidTransition means the requested moderation action does not
	// apply to the listing's current status.
	ErrInvalidTransition = &Error{Code: "invalid_transition", Message: "listing is not in a valid state for this action"}

	// ErrQuotaExceeded means the free standard-listing allowance is spent.
	ErrQuotaExceeded = &Error{Code: "quota_exceeded", Message: "free listing quota exceeded, only premium listings allowed"}

	// ErrValidation covers missing required fields and malformed uploads.
	ErrValidation = &Error{Code: "validation", Message: "invalid request"}

	// ErrDependency covers failures of external collaborators on critical
	// steps (database, object storage).
	ErrDependency = &Error{Code: "dependency", Message: "dependency failure"}
)

// Validation returns a validation error carrying a field-specific message.
func Validation(msg string) error {
	return &Error{Code: ErrValidation.Code, Message: msg}
}

// Dependency wraps err as a dependency failure.
func Dependency(msg string, err error) error {
	return &Error{Code: ErrDependency.Code, Message: msg, cause: err}
}

// Code returns the machine-readable code for err, or "internal" for errors
// outside the taxonomy.
func Code(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return "internal"
}
