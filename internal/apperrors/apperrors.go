package apperrors

import (
	"errors"
	"fmt"
)

// Kind classifies an error for callers that need to branch on the failure
// class rather than the exact message.
type Kind string

const (
	// Validation errors
	KindValidation Kind = "VALIDATION"

	// Unique-constraint violations (email, category name)
	KindDuplicate Kind = "DUPLICATE"

	// Operation targets a nonexistent id
	KindNotFound Kind = "NOT_FOUND"

	// Authentication failures
	KindInvalidCredentials Kind = "INVALID_CREDENTIALS"

	// Underlying store write/read failed
	KindPersistence Kind = "PERSISTENCE"

	// Value could not be serialized for the store
	KindSerialization Kind = "SERIALIZATION"

	// Stored data unreadable
	KindDeserialization Kind = "DESERIALIZATION"
)

// Error is a classified error with a human-readable message suitable for
// direct display.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

// Error implements the error interface
func (e *Error) Error() string {
	return e.Message
}

// Unwrap exposes the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a classified error.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap creates a classified error around an underlying cause.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// Validationf creates a validation error with a formatted message.
func Validationf(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// Duplicatef creates a duplicate error with a formatted message.
func Duplicatef(format string, args ...any) *Error {
	return &Error{Kind: KindDuplicate, Message: fmt.Sprintf(format, args...)}
}

// NotFoundf creates a not-found error with a formatted message.
func NotFoundf(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// IsKind reports whether any error in err's chain carries the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// IsValidation reports whether err is a validation error.
func IsValidation(err error) bool { return IsKind(err, KindValidation) }

// IsDuplicate reports whether err is a unique-constraint violation.
func IsDuplicate(err error) bool { return IsKind(err, KindDuplicate) }

// IsNotFound reports whether err targets a nonexistent record.
func IsNotFound(err error) bool { return IsKind(err, KindNotFound) }

// IsInvalidCredentials reports whether err is an authentication failure.
func IsInvalidCredentials(err error) bool { return IsKind(err, KindInvalidCredentials) }

// IsPersistence reports whether err came from the underlying store.
func IsPersistence(err error) bool { return IsKind(err, KindPersistence) }

// IsDeserialization reports whether err means stored data was unreadable.
func IsDeserialization(err error) bool { return IsKind(err, KindDeserialization) }
