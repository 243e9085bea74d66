package dataset

import (
	"fmt"
	"slices"

	"github.com/hupe1980/knntune/core"
)

// FoldAssignment maps every position of a Group to exactly one fold id in
// [0, C).
type FoldAssignment struct {
	group   Group
	folds   []int
	members [][]int
}

// NewFoldAssignment validates folds (one id per member of g) and indexes the
// members of each fold.
func NewFoldAssignment(g Group, c int, folds []int) (*FoldAssignment, error) {
	if c < 2 {
		return nil, fmt.Errorf("dataset: %d folds, need at least 2: %w", c, core.ErrInvalidConfiguration)
	}
	if len(folds) != g.Len() {
		return nil, fmt.Errorf("dataset: %d fold ids for %d members: %w", len(folds), g.Len(), core.ErrInvalidConfiguration)
	}
	members := make([][]int, c)
	for pos, f := range folds {
		if f < 0 || f >= c {
			return nil, fmt.Errorf("dataset: fold id %d out of range [0, %d): %w", f, c, core.ErrInvalidConfiguration)
		}
		members[f] = append(members[f], pos)
	}
	return &FoldAssignment{
		group:   g,
		folds:   slices.Clone(folds),
		members: members,
	}, nil
}

// Folds returns the fold count C.
func (fa *FoldAssignment) Folds() int { return len(fa.members) }

// Fold returns the fold id of the member at pos.
func (fa *FoldAssignment) Fold(pos int) int { return fa.folds[pos] }

// Group returns the Group the folds were drawn from.
func (fa *FoldAssignment) Group() Group { return fa.group }

// Sizes returns the number of members per fold.
func (fa *FoldAssignment) Sizes() []int {
	out := make([]int, len(fa.members))
	for f, m := range fa.members {
		out[f] = len(m)
	}
	return out
}

// MinTrainingSize returns the smallest training-group size over all folds.
func (fa *FoldAssignment) MinTrainingSize() int {
	largest := 0
	for _, m := range fa.members {
		largest = max(largest, len(m))
	}
	return fa.group.Len() - largest
}

// Validation returns the members of fold f.
func (fa *FoldAssignment) Validation(f int) (Group, error) {
	if f < 0 || f >= len(fa.members) {
		return Group{}, fmt.Errorf("dataset: fold %d out of range [0, %d): %w", f, len(fa.members), core.ErrInvalidConfiguration)
	}
	return fa.group.Subset(fa.members[f])
}

// Training returns every member not in fold f.
func (fa *FoldAssignment) Training(f int) (Group, error) {
	if f < 0 || f >= len(fa.members) {
		return Group{}, fmt.Errorf("dataset: fold %d out of range [0, %d): %w", f, len(fa.members), core.ErrInvalidConfiguration)
	}
	positions := make([]int, 0, fa.group.Len()-len(fa.members[f]))
	for pos, id := range fa.folds {
		if id != f {
			positions = append(positions, pos)
		}
	}
	return fa.group.Subset(positions)
}
