package dataset

import (
	"fmt"
	"slices"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/knntune/core"
)

// Group is a read-only index set over a Dataset.
// Members are addressed by position in [0, Len()), in ascending dataset-index
// order. The zero Group is empty and belongs to no dataset.
type Group struct {
	ds  *Dataset
	set *roaring.Bitmap
	idx []int
}

func newGroup(ds *Dataset, set *roaring.Bitmap) Group {
	set.RunOptimize()
	arr := set.ToArray()
	idx := make([]int, len(arr))
	for i, v := range arr {
		idx[i] = int(v)
	}
	return Group{ds: ds, set: set, idx: idx}
}

// Len returns the number of members.
func (g Group) Len() int { return len(g.idx) }

// Dim returns the feature dimensionality, or 0 for the zero Group.
func (g Group) Dim() int {
	if g.ds == nil {
		return 0
	}
	return g.ds.Dim()
}

// Classes returns the class set of the underlying dataset.
func (g Group) Classes() []string {
	if g.ds == nil {
		return nil
	}
	return g.ds.Classes()
}

// Index returns the dataset index of the member at pos.
func (g Group) Index(pos int) int { return g.idx[pos] }

// Indices returns a copy of the member dataset indices.
func (g Group) Indices() []int { return slices.Clone(g.idx) }

// Features returns the feature vector of the member at pos.
// The returned slice is shared with the dataset and must not be modified.
func (g Group) Features(pos int) []float64 { return g.ds.features[g.idx[pos]] }

// Label returns the label of the member at pos.
func (g Group) Label(pos int) string { return g.ds.schema.Classes[g.ClassID(pos)] }

// ClassID returns the schema class position of the member at pos.
func (g Group) ClassID(pos int) int { return g.ds.labels[g.idx[pos]] }

// Contains reports whether the dataset index idx is a member.
func (g Group) Contains(idx int) bool {
	if g.set == nil || idx < 0 {
		return false
	}
	return g.set.Contains(uint32(idx))
}

// Bitmap returns a copy of the member index set.
func (g Group) Bitmap() *roaring.Bitmap {
	if g.set == nil {
		return roaring.New()
	}
	return g.set.Clone()
}

// SameDataset reports whether g and o are views over the same Dataset.
func (g Group) SameDataset(o Group) bool { return g.ds != nil && g.ds == o.ds }

// ClassCounts returns the number of members per class label.
// Classes without members are included with a zero count.
func (g Group) ClassCounts() map[string]int {
	if g.ds == nil {
		return map[string]int{}
	}
	counts := make(map[string]int, len(g.ds.schema.Classes))
	for _, c := range g.ds.schema.Classes {
		counts[c] = 0
	}
	for pos := range g.idx {
		counts[g.Label(pos)]++
	}
	return counts
}

// ClassPositions returns member positions grouped by class id in schema
// order. Positions within a class are ascending.
func (g Group) ClassPositions() [][]int {
	if g.ds == nil {
		return nil
	}
	out := make([][]int, len(g.ds.schema.Classes))
	for pos := range g.idx {
		id := g.ClassID(pos)
		out[id] = append(out[id], pos)
	}
	return out
}

// Subset returns the Group formed by the members at the given positions.
func (g Group) Subset(positions []int) (Group, error) {
	set := roaring.New()
	for _, pos := range positions {
		if pos < 0 || pos >= g.Len() {
			return Group{}, fmt.Errorf("dataset: position %d out of range [0, %d): %w", pos, g.Len(), core.ErrInvalidConfiguration)
		}
		set.Add(uint32(g.idx[pos]))
	}
	return newGroup(g.ds, set), nil
}

// Frame returns a Frame over the raw (unstandardized) features of g.
func (g Group) Frame() Frame {
	rows := make([][]float64, g.Len())
	for pos := range rows {
		rows[pos] = g.Features(pos)
	}
	return Frame{group: g, rows: rows}
}
