// Package apperror defines the application's error taxonomy.
//
// Every failure the services can report falls into one of a small set of
// categories, represented as package-level sentinel errors. Call sites wrap
// them in an AppError that carries the human-readable message, so callers can
// branch with errors.Is() while users still get a sensible string.
package apperror

import (
	"errors"
	"fmt"
)

var (
	// ErrStorage covers an unreadable/unwritable record file or content that
	// cannot be parsed into the expected record shape.
	ErrStorage = errors.New("storage failure")

	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")

	// ErrAuth covers login/credential mismatches and operations attempted
	// without a signed-in user.
	ErrAuth = errors.New("authentication failed")

	// ErrCredentialFormat means a stored password hash is malformed —
	// distinct from ErrAuth, which covers a well-formed hash that simply
	// doesn't match.
	ErrCredentialFormat = errors.New("malformed credential hash")
)

type AppError struct {
	Err     error  // sentinel category (one of the vars above)
	Message string // Human-readable error message
	Field   string // Optional: field causing the error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Storage reports a Record Store failure at the given location.
// The underlying cause is folded into the message; the category stays
// matchable via errors.Is(err, ErrStorage).
func Storage(op, location string, cause error) *AppError {
	return &AppError{
		Err:     ErrStorage,
		Message: fmt.Sprintf("%s %s: %v", op, location, cause),
	}
}

func NotFound(resource, id string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found with id %s", resource, id),
	}
}

func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

func AuthFailed(message string) *AppError {
	return &AppError{
		Err:     ErrAuth,
		Message: message,
	}
}

func CredentialFormat(cause error) *AppError {
	return &AppError{
		Err:     ErrCredentialFormat,
		Message: fmt.Sprintf("malformed password hash: %v", cause),
	}
}
