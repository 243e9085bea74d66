// Package distance provides the distance metrics used for neighbor search.
//
// Every metric is a pure function of two equal-length vectors that is
// non-negative, symmetric and zero exactly when the vectors are equal.
//
// # Supported Metrics
//
//   - MetricEuclidean: sqrt of the sum of squared differences (reference)
//   - MetricSquaredEuclidean: same neighbor ordering as Euclidean, no sqrt
//   - MetricManhattan: sum of absolute differences
//   - MetricChebyshev: largest absolute difference
//
// # Usage
//
//	fn, err := distance.Provider(distance.MetricEuclidean)
//	d := fn(a, b)
package distance
