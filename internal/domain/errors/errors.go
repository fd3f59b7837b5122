package errors

import (
	"errors"
	"fmt"
)

var (
	// Directory errors
	ErrAccountNotFound      = errors.New("account not found")
	ErrBeneficiaryNotFound  = errors.New("beneficiary not found")
	ErrDirectoryUnavailable = errors.New("directory source unavailable")

	// Workflow errors
	ErrWorkflowNotFound       = errors.New("workflow not found")
	ErrInvalidStateTransition = errors.New("invalid state transition")
	ErrAlreadyProcessing      = errors.New("submission already in progress")
	ErrWorkflowFinished       = errors.New("workflow already finished")

	// Rule errors
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrValidationFailed  = errors.New("validation failed")

	// Submission errors
	ErrSubmissionFailed     = errors.New("submission rejected by ledger")
	ErrSubmitterTimeout     = errors.New("ledger request timeout")
	ErrSubmitterUnavailable = errors.New("ledger unavailable")

	// Input errors
	ErrInvalidInput = errors.New("invalid input")
)

// DomainError wraps errors with additional context
type DomainError struct {
	Code    string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// FieldError represents a per-field validation error. Recoverable, surfaced
// inline next to the offending field; never leaves the form step.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
}

// NewFieldError creates a new field error
func NewFieldError(field, message string) *FieldError {
	return &FieldError{
		Field:   field,
		Message: message,
	}
}
