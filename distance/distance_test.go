package distance

import (
	"math"
	"testing"

	"github.com/hupe1980/knntune/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEuclidean(t *testing.T) {
	tests := []struct {
		name     string
		a, b     []float64
		expected float64
	}{
		{"Simple", []float64{0, 0}, []float64{3, 4}, 5},
		{"Zero", []float64{0, 0, 0}, []float64{0, 0, 0}, 0},
		{"Identical", []float64{1, 2, 3}, []float64{1, 2, 3}, 0},
		{"Mixed", []float64{1, -1}, []float64{-1, 1}, math.Sqrt(8)},
		{"Single", []float64{2}, []float64{-3}, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, Euclidean(tt.a, tt.b), 1e-12)
			assert.InDelta(t, tt.expected*tt.expected, SquaredEuclidean(tt.a, tt.b), 1e-12)
		})
	}
}

func TestManhattanChebyshev(t *testing.T) {
	a := []float64{1, 2, 3}
	b := []float64{4, 0, 3}

	assert.InDelta(t, 5.0, Manhattan(a, b), 1e-12)
	assert.InDelta(t, 3.0, Chebyshev(a, b), 1e-12)
	assert.Equal(t, 0.0, Manhattan(a, a))
	assert.Equal(t, 0.0, Chebyshev(b, b))
}

func TestMetricProperties(t *testing.T) {
	a := []float64{0.5, -1.25, 3}
	b := []float64{2, 0.75, -1}

	for _, m := range []Metric{MetricEuclidean, MetricSquaredEuclidean, MetricManhattan, MetricChebyshev} {
		t.Run(m.String(), func(t *testing.T) {
			f, err := Provider(m)
			require.NoError(t, err)

			assert.Equal(t, f(a, b), f(b, a), "symmetric")
			assert.Greater(t, f(a, b), 0.0, "positive for distinct vectors")
			assert.Equal(t, 0.0, f(a, a), "zero for equal vectors")
		})
	}
}

func TestMetric(t *testing.T) {
	t.Run("String", func(t *testing.T) {
		assert.Equal(t, "Euclidean", MetricEuclidean.String())
		assert.Equal(t, "SquaredEuclidean", MetricSquaredEuclidean.String())
		assert.Equal(t, "Manhattan", MetricManhattan.String())
		assert.Equal(t, "Chebyshev", MetricChebyshev.String())
		assert.Equal(t, "Unknown(99)", Metric(99).String())
	})

	t.Run("Provider", func(t *testing.T) {
		f, err := Provider(MetricEuclidean)
		require.NoError(t, err)
		assert.InDelta(t, 5.0, f([]float64{0, 0}, []float64{3, 4}), 1e-12)

		_, err = Provider(Metric(99))
		assert.ErrorIs(t, err, core.ErrInvalidConfiguration)
	})

	t.Run("Parse", func(t *testing.T) {
		tests := []struct {
			in   string
			want Metric
		}{
			{"euclidean", MetricEuclidean},
			{"L2", MetricEuclidean},
			{" sql2 ", MetricSquaredEuclidean},
			{"Manhattan", MetricManhattan},
			{"linf", MetricChebyshev},
		}
		for _, tt := range tests {
			got, err := ParseMetric(tt.in)
			require.NoError(t, err, tt.in)
			assert.Equal(t, tt.want, got)
		}

		_, err := ParseMetric("cosine")
		assert.ErrorIs(t, err, core.ErrInvalidConfiguration)
	})
}
