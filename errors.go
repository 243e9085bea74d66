package knntune

import "github.com/hupe1980/knntune/core"

var (
	// ErrInvalidConfiguration is returned for parameters that can never succeed:
	// malformed proportions, fewer than 2 folds, k out of range.
	ErrInvalidConfiguration = core.ErrInvalidConfiguration

	// ErrInsufficientData is returned when a class is too small to stratify
	// into the requested number of groups or folds.
	ErrInsufficientData = core.ErrInsufficientData

	// ErrEmptyInput is returned when accuracy or a confusion matrix is
	// requested on zero predictions.
	ErrEmptyInput = core.ErrEmptyInput
)

type (
	// ErrInvalidK indicates a neighbor count outside [1, Max].
	ErrInvalidK = core.ErrInvalidK

	// ErrDimensionMismatch indicates a vector/query dimensionality mismatch.
	ErrDimensionMismatch = core.ErrDimensionMismatch

	// ErrUnknownLabel indicates a label outside the declared class set.
	ErrUnknownLabel = core.ErrUnknownLabel

	// ErrClassTooSmall indicates a class with fewer examples than requested groups.
	ErrClassTooSmall = core.ErrClassTooSmall
)
