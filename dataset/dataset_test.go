package dataset

import (
	"math"
	"testing"

	"github.com/hupe1980/knntune/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoClassSchema() Schema {
	return Schema{Features: []string{"x", "y"}, Classes: []string{"a", "b"}}
}

func newEight(t *testing.T) *Dataset {
	t.Helper()
	ds, err := New(twoClassSchema(), []Example{
		{Features: []float64{0, 0}, Label: "a"},
		{Features: []float64{0, 1}, Label: "a"},
		{Features: []float64{1, 0}, Label: "a"},
		{Features: []float64{1, 1}, Label: "a"},
		{Features: []float64{5, 5}, Label: "b"},
		{Features: []float64{5, 6}, Label: "b"},
		{Features: []float64{6, 5}, Label: "b"},
		{Features: []float64{6, 6}, Label: "b"},
	})
	require.NoError(t, err)
	return ds
}

func TestNew(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		ds := newEight(t)
		assert.Equal(t, 8, ds.Len())
		assert.Equal(t, 2, ds.Dim())
		assert.Equal(t, []string{"a", "b"}, ds.Classes())

		id, ok := ds.ClassID("b")
		assert.True(t, ok)
		assert.Equal(t, 1, id)
	})

	tests := []struct {
		name     string
		schema   Schema
		examples []Example
		sentinel error
	}{
		{"NoExamples", twoClassSchema(), nil, core.ErrEmptyInput},
		{"NoFeatures", Schema{Classes: []string{"a"}}, []Example{{Label: "a"}}, core.ErrInvalidConfiguration},
		{"NoClasses", Schema{Features: []string{"x"}}, []Example{{Features: []float64{1}}}, core.ErrInvalidConfiguration},
		{"DuplicateClass", Schema{Features: []string{"x"}, Classes: []string{"a", "a"}}, []Example{{Features: []float64{1}, Label: "a"}}, core.ErrInvalidConfiguration},
		{"UnknownLabel", twoClassSchema(), []Example{{Features: []float64{1, 2}, Label: "z"}}, core.ErrInvalidConfiguration},
		{"WrongDimension", twoClassSchema(), []Example{{Features: []float64{1}, Label: "a"}}, core.ErrInvalidConfiguration},
		{"NaN", twoClassSchema(), []Example{{Features: []float64{1, math.NaN()}, Label: "a"}}, core.ErrInvalidConfiguration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.schema, tt.examples)
			assert.ErrorIs(t, err, tt.sentinel)
		})
	}
}

func TestNew_CopiesInput(t *testing.T) {
	features := []float64{1, 2}
	ds, err := New(twoClassSchema(), []Example{{Features: features, Label: "a"}})
	require.NoError(t, err)

	features[0] = 99
	assert.Equal(t, []float64{1, 2}, ds.Example(0).Features)

	ex := ds.Example(0)
	ex.Features[1] = 42
	assert.Equal(t, []float64{1, 2}, ds.Example(0).Features)
}

func TestDataset_Group(t *testing.T) {
	ds := newEight(t)

	g, err := ds.Group(6, 1, 1, 4)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 4, 6}, g.Indices())
	assert.Equal(t, "a", g.Label(0))
	assert.Equal(t, "b", g.Label(1))
	assert.Equal(t, []float64{6, 5}, g.Features(2))
	assert.True(t, g.Contains(4))
	assert.False(t, g.Contains(5))
	assert.Equal(t, map[string]int{"a": 1, "b": 2}, g.ClassCounts())
	assert.Equal(t, [][]int{{0}, {1, 2}}, g.ClassPositions())

	_, err = ds.Group(8)
	assert.ErrorIs(t, err, core.ErrInvalidConfiguration)
}

func TestGroup_Subset(t *testing.T) {
	ds := newEight(t)
	all := ds.All()
	assert.Equal(t, 8, all.Len())

	sub, err := all.Subset([]int{7, 0})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 7}, sub.Indices())
	assert.True(t, sub.SameDataset(all))

	_, err = all.Subset([]int{-1})
	assert.ErrorIs(t, err, core.ErrInvalidConfiguration)
}

func TestGroup_Zero(t *testing.T) {
	var g Group
	assert.Equal(t, 0, g.Len())
	assert.Equal(t, 0, g.Dim())
	assert.False(t, g.Contains(0))
	assert.Empty(t, g.ClassCounts())
	assert.False(t, g.SameDataset(g))
}

func TestFrame(t *testing.T) {
	ds := newEight(t)
	g, err := ds.Group(0, 5)
	require.NoError(t, err)

	raw := g.Frame()
	assert.Equal(t, 2, raw.Len())
	assert.Equal(t, 2, raw.Dim())
	assert.Equal(t, []float64{5, 6}, raw.Row(1))
	assert.Equal(t, "b", raw.Label(1))
	assert.Equal(t, 5, raw.Index(1))

	f, err := NewFrame(g, [][]float64{{0.1, 0.2}, {0.3, 0.4}})
	require.NoError(t, err)
	assert.Equal(t, []float64{0.3, 0.4}, f.Row(1))
	assert.Equal(t, 1, f.ClassID(1))

	_, err = NewFrame(g, [][]float64{{0.1, 0.2}})
	assert.ErrorIs(t, err, core.ErrInvalidConfiguration)

	_, err = NewFrame(g, [][]float64{{0.1, 0.2}, {0.3}})
	assert.ErrorIs(t, err, core.ErrInvalidConfiguration)
}

func TestPartition(t *testing.T) {
	ds := newEight(t)
	all := ds.All()

	train, err := ds.Group(0, 1, 2, 4, 5, 6)
	require.NoError(t, err)
	test, err := ds.Group(3, 7)
	require.NoError(t, err)

	t.Run("Valid", func(t *testing.T) {
		p, err := NewPartition(all, []string{"train", "test"}, []Group{train, test})
		require.NoError(t, err)
		assert.Equal(t, 2, p.Len())
		assert.Equal(t, []string{"train", "test"}, p.Names())

		g, ok := p.ByName("test")
		require.True(t, ok)
		assert.Equal(t, []int{3, 7}, g.Indices())

		_, ok = p.ByName("missing")
		assert.False(t, ok)
	})

	t.Run("Overlap", func(t *testing.T) {
		overlap, err := ds.Group(3, 7, 0)
		require.NoError(t, err)
		_, err = NewPartition(all, []string{"train", "test"}, []Group{train, overlap})
		assert.ErrorIs(t, err, core.ErrInvalidConfiguration)
	})

	t.Run("NotExhaustive", func(t *testing.T) {
		_, err := NewPartition(all, []string{"train"}, []Group{train})
		assert.ErrorIs(t, err, core.ErrInvalidConfiguration)
	})

	t.Run("DuplicateName", func(t *testing.T) {
		_, err := NewPartition(all, []string{"x", "x"}, []Group{train, test})
		assert.ErrorIs(t, err, core.ErrInvalidConfiguration)
	})
}

func TestFoldAssignment(t *testing.T) {
	ds := newEight(t)
	all := ds.All()

	fa, err := NewFoldAssignment(all, 3, []int{0, 1, 2, 0, 1, 2, 0, 1})
	require.NoError(t, err)
	assert.Equal(t, 3, fa.Folds())
	assert.Equal(t, []int{3, 3, 2}, fa.Sizes())
	assert.Equal(t, 5, fa.MinTrainingSize())

	for f := range fa.Folds() {
		val, err := fa.Validation(f)
		require.NoError(t, err)
		train, err := fa.Training(f)
		require.NoError(t, err)

		assert.Equal(t, all.Len(), val.Len()+train.Len())
		for _, idx := range val.Indices() {
			assert.False(t, train.Contains(idx))
		}
	}

	_, err = fa.Validation(3)
	assert.ErrorIs(t, err, core.ErrInvalidConfiguration)

	_, err = NewFoldAssignment(all, 1, make([]int, 8))
	assert.ErrorIs(t, err, core.ErrInvalidConfiguration)

	_, err = NewFoldAssignment(all, 2, []int{0, 1})
	assert.ErrorIs(t, err, core.ErrInvalidConfiguration)

	_, err = NewFoldAssignment(all, 2, []int{0, 1, 2, 0, 1, 0, 1, 0})
	assert.ErrorIs(t, err, core.ErrInvalidConfiguration)
}
