package core

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypedErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
		msg      string
	}{
		{"InvalidK", &ErrInvalidK{K: 0, Max: 5}, ErrInvalidConfiguration, "invalid k: 0 not in [1, 5]"},
		{"Dimension", &ErrDimensionMismatch{Expected: 2, Actual: 3}, ErrInvalidConfiguration, "dimension mismatch: expected 2, got 3"},
		{"UnknownLabel", &ErrUnknownLabel{Label: "x"}, ErrInvalidConfiguration, `unknown label "x"`},
		{"ClassTooSmall", &ErrClassTooSmall{Label: "a", Count: 1, Groups: 2}, ErrInsufficientData, `class "a" has 1 examples, need at least 2`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.msg, tt.err.Error())
			assert.ErrorIs(t, tt.err, tt.sentinel)
			assert.ErrorIs(t, fmt.Errorf("wrapped: %w", tt.err), tt.sentinel)
		})
	}
}

func TestTypedErrors_As(t *testing.T) {
	err := fmt.Errorf("predict: %w", &ErrInvalidK{K: 9, Max: 4})

	var ik *ErrInvalidK
	assert.True(t, errors.As(err, &ik))
	assert.Equal(t, 9, ik.K)
	assert.Equal(t, 4, ik.Max)
	assert.False(t, errors.Is(err, ErrEmptyInput))
}
