package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *DomainError
		expected string
	}{
		{
			name: "with wrapped error",
			err: &DomainError{
				Code:    "submission_failed",
				Message: "ledger rejected transfer",
				Err:     errors.New("provider timeout"),
			},
			expected: "ledger rejected transfer: provider timeout",
		},
		{
			name: "without wrapped error",
			err: &DomainError{
				Code:    "invalid_state",
				Message: "cannot proceed in current step",
				Err:     nil,
			},
			expected: "cannot proceed in current step",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestDomainError_Unwrap(t *testing.T) {
	wrapped := NewDomainError("test", "test message", ErrSubmissionFailed)

	assert.True(t, errors.Is(wrapped, ErrSubmissionFailed))
	assert.Equal(t, ErrSubmissionFailed, wrapped.Unwrap())
}

func TestFieldError_Error(t *testing.T) {
	err := NewFieldError("amount", "Fondos insuficientes")

	assert.Equal(t, "amount", err.Field)
	assert.Equal(t, "validation failed for field amount: Fondos insuficientes", err.Error())
}
