package dataset

import (
	"fmt"
	"math"
	"slices"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/knntune/core"
)

// Schema names the predictors and declares the class set.
// Class order is significant: it fixes confusion-matrix layout and the order
// in which tied labels are presented to the tie-breaker.
type Schema struct {
	Features []string
	Classes  []string
}

// Dim returns the number of features.
func (s Schema) Dim() int { return len(s.Features) }

func (s Schema) clone() Schema {
	return Schema{
		Features: slices.Clone(s.Features),
		Classes:  slices.Clone(s.Classes),
	}
}

// Example is a feature vector with its class label.
type Example struct {
	Features []float64
	Label    string
}

// Dataset is an immutable, ordered collection of labeled examples.
type Dataset struct {
	schema     Schema
	features   [][]float64
	labels     []int
	classIndex map[string]int
}

// New validates the examples against schema and returns a Dataset holding a
// private copy of them.
func New(schema Schema, examples []Example) (*Dataset, error) {
	if err := validateSchema(schema); err != nil {
		return nil, err
	}
	if len(examples) == 0 {
		return nil, fmt.Errorf("dataset: no examples: %w", core.ErrEmptyInput)
	}
	if int64(len(examples)) > core.MaxExamples {
		return nil, fmt.Errorf("dataset: %d examples exceeds limit: %w", len(examples), core.ErrInvalidConfiguration)
	}

	classIndex := make(map[string]int, len(schema.Classes))
	for i, c := range schema.Classes {
		classIndex[c] = i
	}

	dim := schema.Dim()
	data := make([]float64, len(examples)*dim)
	features := make([][]float64, len(examples))
	labels := make([]int, len(examples))

	for i, ex := range examples {
		if len(ex.Features) != dim {
			return nil, fmt.Errorf("dataset: example %d: %w", i, &core.ErrDimensionMismatch{Expected: dim, Actual: len(ex.Features)})
		}
		for j, v := range ex.Features {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("dataset: example %d feature %d is not finite: %w", i, j, core.ErrInvalidConfiguration)
			}
		}
		id, ok := classIndex[ex.Label]
		if !ok {
			return nil, fmt.Errorf("dataset: example %d: %w", i, &core.ErrUnknownLabel{Label: ex.Label})
		}

		row := data[i*dim : (i+1)*dim : (i+1)*dim]
		copy(row, ex.Features)
		features[i] = row
		labels[i] = id
	}

	return &Dataset{
		schema:     schema.clone(),
		features:   features,
		labels:     labels,
		classIndex: classIndex,
	}, nil
}

func validateSchema(s Schema) error {
	if len(s.Features) == 0 {
		return fmt.Errorf("dataset: schema has no features: %w", core.ErrInvalidConfiguration)
	}
	if len(s.Classes) == 0 {
		return fmt.Errorf("dataset: schema has no classes: %w", core.ErrInvalidConfiguration)
	}
	seen := make(map[string]struct{}, len(s.Classes))
	for _, c := range s.Classes {
		if _, dup := seen[c]; dup {
			return fmt.Errorf("dataset: duplicate class %q: %w", c, core.ErrInvalidConfiguration)
		}
		seen[c] = struct{}{}
	}
	return nil
}

// Len returns the number of examples.
func (d *Dataset) Len() int { return len(d.labels) }

// Dim returns the feature dimensionality.
func (d *Dataset) Dim() int { return d.schema.Dim() }

// Schema returns a copy of the dataset schema.
func (d *Dataset) Schema() Schema { return d.schema.clone() }

// Classes returns the declared class set in schema order.
func (d *Dataset) Classes() []string { return slices.Clone(d.schema.Classes) }

// ClassID returns the schema position of label.
func (d *Dataset) ClassID(label string) (int, bool) {
	id, ok := d.classIndex[label]
	return id, ok
}

// Example returns a copy of the i-th example.
func (d *Dataset) Example(i int) Example {
	return Example{
		Features: slices.Clone(d.features[i]),
		Label:    d.schema.Classes[d.labels[i]],
	}
}

// All returns a Group covering every example.
func (d *Dataset) All() Group {
	set := roaring.New()
	set.AddRange(0, uint64(d.Len()))
	return newGroup(d, set)
}

// Group returns a Group over the given example indices.
// Duplicates collapse; out-of-range indices are rejected.
func (d *Dataset) Group(indices ...int) (Group, error) {
	set := roaring.New()
	for _, idx := range indices {
		if idx < 0 || idx >= d.Len() {
			return Group{}, fmt.Errorf("dataset: index %d out of range [0, %d): %w", idx, d.Len(), core.ErrInvalidConfiguration)
		}
		set.Add(uint32(idx))
	}
	return newGroup(d, set), nil
}
