package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates that the operation conflicts with the current state of the
// resource, including reference-number contention that survived all retries.
var ErrConflict = errors.New("conflict with current resource state")

// ErrForbidden indicates that the caller is not allowed to perform the operation.
var ErrForbidden = errors.New("operation not permitted")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// Domain rule errors: expected, user-facing business rule violations.
// These carry a human-readable message and are never bugs.
var (
	// ErrLedgerImmutable is returned for any attempt to delete a journal entry,
	// regardless of its status.
	ErrLedgerImmutable = errors.New("ledger is immutable: journal entries cannot be deleted")

	// ErrAlreadyVoided is returned when voiding an entry that is already VOID.
	ErrAlreadyVoided = errors.New("journal entry is already voided")

	// ErrNotPosted is returned when voiding an entry that is not in POSTED status.
	ErrNotPosted = errors.New("only posted journal entries can be voided")

	// ErrSystemTypeImmutable guards system-defined transaction types.
	ErrSystemTypeImmutable = errors.New("system transaction types are immutable")
)

// AppError wraps an underlying error with an application-level code and message.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError with the given code, message and cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that unwraps to ErrNotFound.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}

// NewValidationError creates an AppError that unwraps to ErrValidation.
// The message should name the offending field(s).
func NewValidationError(message string) *AppError {
	return &AppError{Code: 400, Message: message, Err: ErrValidation}
}
