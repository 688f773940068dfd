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

// ErrConflict indicates that the requested operation conflicts with the current
// state of the resource (e.g. reversing a journal that is already a reversal).
var ErrConflict = errors.New("operation conflicts with resource state")

// ErrForbidden indicates the caller is not allowed to perform the operation.
var ErrForbidden = errors.New("forbidden")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// ErrInsufficientFunds indicates a disbursement exceeds the paying ledger's
// available balance. Soft at queue-item creation, hard at confirm.
var ErrInsufficientFunds = errors.New("insufficient funds")

// ErrEntityNotPayable indicates the payee entity cannot receive disbursements.
var ErrEntityNotPayable = errors.New("entity cannot receive disbursements")

// ErrDuplicateCheckNumber indicates the check number is already in use on the
// paying ledger, either by a pending queue item or a registered check.
var ErrDuplicateCheckNumber = errors.New("check number already in use")

// ErrAlreadyRegistered indicates a state transition was attempted on a queue
// item that has already been registered.
var ErrAlreadyRegistered = errors.New("check is already registered")

// ErrCannotDeleteRegistered indicates a delete was attempted on a registered
// queue item; the underlying journal must be reversed instead.
var ErrCannotDeleteRegistered = errors.New("cannot delete a registered check; reverse its journal entry instead")

// AppError wraps an underlying error with an HTTP-ish status code and message.
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

// NewAppError creates a new AppError wrapping the given error.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that unwraps to ErrNotFound.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}
