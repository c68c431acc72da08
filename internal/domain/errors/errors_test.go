package errors

import (
	stdErrors "errors"
	"fmt"
	"testing"
)

func TestSentinelErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
	}{
		{"already exists", ErrAlreadyExists},
		{"not found", ErrNotFound},
		{"invalid credentials", ErrInvalidCredentials},
		{"invalid quantity", ErrInvalidQuantity},
		{"invalid status", ErrInvalidStatus},
		{"empty cart", ErrEmptyCart},
		{"order not payable", ErrOrderNotPayable},
		{"amount mismatch", ErrAmountMismatch},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			wrapped := fmt.Errorf("context: %w", tc.err)
			if !stdErrors.Is(wrapped, tc.err) {
				t.Fatalf("expected wrapped error to match sentinel: %v", tc.err)
			}
		})
	}
}
