package dataset

import (
	"fmt"

	"github.com/hupe1980/knntune/core"
)

// Frame holds feature rows aligned position-by-position with a Group.
// Labels and dataset indices come from the Group; rows usually hold
// standardized features.
type Frame struct {
	group Group
	rows  [][]float64
}

// NewFrame pairs rows with g. There must be exactly one row per member and
// every row must have the same length.
func NewFrame(g Group, rows [][]float64) (Frame, error) {
	if len(rows) != g.Len() {
		return Frame{}, fmt.Errorf("dataset: frame has %d rows for %d members: %w", len(rows), g.Len(), core.ErrInvalidConfiguration)
	}
	for i, r := range rows {
		if len(r) != len(rows[0]) {
			return Frame{}, fmt.Errorf("dataset: frame row %d: %w", i, &core.ErrDimensionMismatch{Expected: len(rows[0]), Actual: len(r)})
		}
	}
	return Frame{group: g, rows: rows}, nil
}

// Len returns the number of rows.
func (f Frame) Len() int { return len(f.rows) }

// Dim returns the row length, or 0 for an empty frame.
func (f Frame) Dim() int {
	if len(f.rows) == 0 {
		return 0
	}
	return len(f.rows[0])
}

// Row returns the i-th row. It must not be modified.
func (f Frame) Row(i int) []float64 { return f.rows[i] }

// Label returns the label of the i-th row.
func (f Frame) Label(i int) string { return f.group.Label(i) }

// ClassID returns the class id of the i-th row.
func (f Frame) ClassID(i int) int { return f.group.ClassID(i) }

// Index returns the dataset index of the i-th row.
func (f Frame) Index(i int) int { return f.group.Index(i) }

// Classes returns the class set.
func (f Frame) Classes() []string { return f.group.Classes() }

// Group returns the Group the frame is aligned with.
func (f Frame) Group() Group { return f.group }
