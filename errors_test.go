package hxtable

import (
	"errors"
	"fmt"
	"testing"
)

func TestSentinelErrors(t *testing.T) {
	// Verify sentinel errors are distinct
	errs := []error{
		ErrTableNotFound,
		ErrInvalidFormat,
		ErrSignatureInvalid,
		ErrDecryptFailed,
	}

	for i, err1 := range errs {
		for j, err2 := range errs {
			if i != j && errors.Is(err1, err2) {
				t.Errorf("Sentinel errors should be distinct: %v and %v", err1, err2)
			}
		}
	}
}

func TestIsTableNotFound(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		expect bool
	}{
		{"nil error", nil, false},
		{"ErrTableNotFound", ErrTableNotFound, true},
		{"wrapped ErrTableNotFound", fmt.Errorf("wrapped: %w", ErrTableNotFound), true},
		{"other error", errors.New("other error"), false},
		{"ErrInvalidFormat", ErrInvalidFormat, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := IsTableNotFound(tt.err)
			if result != tt.expect {
				t.Errorf("IsTableNotFound(%v) = %v, want %v", tt.err, result, tt.expect)
			}
		})
	}
}

func TestIsTokenError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		expect bool
	}{
		{"nil error", nil, false},
		{"ErrInvalidFormat", ErrInvalidFormat, true},
		{"ErrSignatureInvalid", ErrSignatureInvalid, true},
		{"ErrDecryptFailed", ErrDecryptFailed, true},
		{"wrapped ErrSignatureInvalid", fmt.Errorf("wrapped: %w", ErrSignatureInvalid), true},
		{"ErrTableNotFound", ErrTableNotFound, false},
		{"other error", errors.New("other error"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := IsTokenError(tt.err)
			if result != tt.expect {
				t.Errorf("IsTokenError(%v) = %v, want %v", tt.err, result, tt.expect)
			}
		})
	}
}
