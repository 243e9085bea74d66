package core

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfiguration is returned for parameters that can never succeed.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrInsufficientData is returned when the data cannot satisfy a valid request.
	ErrInsufficientData = errors.New("insufficient data")

	// ErrEmptyInput is returned when an operation is undefined on zero elements.
	ErrEmptyInput = errors.New("empty input")
)

// ErrInvalidK indicates a neighbor count outside [1, Max].
type ErrInvalidK struct {
	K   int
	Max int
}

func (e *ErrInvalidK) Error() string {
	return fmt.Sprintf("invalid k: %d not in [1, %d]", e.K, e.Max)
}

func (e *ErrInvalidK) Unwrap() error { return ErrInvalidConfiguration }

// ErrDimensionMismatch indicates a feature vector of the wrong length.
type ErrDimensionMismatch struct {
	Expected int
	Actual   int
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}

func (e *ErrDimensionMismatch) Unwrap() error { return ErrInvalidConfiguration }

// ErrUnknownLabel indicates a label outside the declared class set.
type ErrUnknownLabel struct {
	Label string
}

func (e *ErrUnknownLabel) Error() string {
	return fmt.Sprintf("unknown label %q", e.Label)
}

func (e *ErrUnknownLabel) Unwrap() error { return ErrInvalidConfiguration }

// ErrClassTooSmall indicates a class with fewer examples than requested groups.
type ErrClassTooSmall struct {
	Label  string
	Count  int
	Groups int
}

func (e *ErrClassTooSmall) Error() string {
	return fmt.Sprintf("class %q has %d examples, need at least %d", e.Label, e.Count, e.Groups)
}

func (e *ErrClassTooSmall) Unwrap() error { return ErrInsufficientData }
