package knntune

import (
	"math"
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting evaluation metrics.
// Implement this interface to integrate with monitoring systems like
// Prometheus; see metrics/prometheus for a ready-made one.
type MetricsCollector interface {
	// RecordFold is called after each cross-validation fold.
	// accuracy is meaningful only when err is nil.
	RecordFold(k, fold int, accuracy float64, duration time.Duration, err error)

	// RecordCandidate is called once per tuning candidate.
	RecordCandidate(k int, mean, stderr float64, err error)

	// RecordPrediction is called after each batch prediction.
	// count is the number of classified queries.
	RecordPrediction(count int, duration time.Duration, err error)

	// RecordHoldout is called after each holdout evaluation.
	RecordHoldout(accuracy float64, duration time.Duration, err error)

	// RecordArchive is called after each report upload.
	RecordArchive(bytes int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordFold(int, int, float64, time.Duration, error) {}
func (NoopMetricsCollector) RecordCandidate(int, float64, float64, error)       {}
func (NoopMetricsCollector) RecordPrediction(int, time.Duration, error)         {}
func (NoopMetricsCollector) RecordHoldout(float64, time.Duration, error)        {}
func (NoopMetricsCollector) RecordArchive(int, time.Duration, error)            {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	FoldCount           atomic.Int64
	FoldErrors          atomic.Int64
	FoldTotalNanos      atomic.Int64
	CandidateCount      atomic.Int64
	CandidateFailures   atomic.Int64
	PredictionBatches   atomic.Int64
	PredictionQueries   atomic.Int64
	PredictionErrors    atomic.Int64
	PredictionNanos     atomic.Int64
	HoldoutCount        atomic.Int64
	HoldoutErrors       atomic.Int64
	ArchiveCount        atomic.Int64
	ArchiveBytes        atomic.Int64
	ArchiveErrors       atomic.Int64
	lastHoldoutAccuracy atomic.Uint64
}

// RecordFold implements MetricsCollector.
func (b *BasicMetricsCollector) RecordFold(_, _ int, _ float64, duration time.Duration, err error) {
	b.FoldCount.Add(1)
	b.FoldTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.FoldErrors.Add(1)
	}
}

// RecordCandidate implements MetricsCollector.
func (b *BasicMetricsCollector) RecordCandidate(_ int, _, _ float64, err error) {
	b.CandidateCount.Add(1)
	if err != nil {
		b.CandidateFailures.Add(1)
	}
}

// RecordPrediction implements MetricsCollector.
func (b *BasicMetricsCollector) RecordPrediction(count int, duration time.Duration, err error) {
	b.PredictionBatches.Add(1)
	b.PredictionNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.PredictionErrors.Add(1)
		return
	}
	b.PredictionQueries.Add(int64(count))
}

// RecordHoldout implements MetricsCollector.
func (b *BasicMetricsCollector) RecordHoldout(accuracy float64, _ time.Duration, err error) {
	b.HoldoutCount.Add(1)
	if err != nil {
		b.HoldoutErrors.Add(1)
		return
	}
	b.lastHoldoutAccuracy.Store(math.Float64bits(accuracy))
}

// RecordArchive implements MetricsCollector.
func (b *BasicMetricsCollector) RecordArchive(bytes int, _ time.Duration, err error) {
	b.ArchiveCount.Add(1)
	if err != nil {
		b.ArchiveErrors.Add(1)
		return
	}
	b.ArchiveBytes.Add(int64(bytes))
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		FoldCount:           b.FoldCount.Load(),
		FoldErrors:          b.FoldErrors.Load(),
		FoldAvgNanos:        avg(b.FoldTotalNanos.Load(), b.FoldCount.Load()),
		CandidateCount:      b.CandidateCount.Load(),
		CandidateFailures:   b.CandidateFailures.Load(),
		PredictionBatches:   b.PredictionBatches.Load(),
		PredictionQueries:   b.PredictionQueries.Load(),
		PredictionErrors:    b.PredictionErrors.Load(),
		PredictionAvgNanos:  avg(b.PredictionNanos.Load(), b.PredictionBatches.Load()),
		HoldoutCount:        b.HoldoutCount.Load(),
		HoldoutErrors:       b.HoldoutErrors.Load(),
		ArchiveCount:        b.ArchiveCount.Load(),
		ArchiveBytes:        b.ArchiveBytes.Load(),
		ArchiveErrors:       b.ArchiveErrors.Load(),
		LastHoldoutAccuracy: math.Float64frombits(b.lastHoldoutAccuracy.Load()),
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	FoldCount           int64
	FoldErrors          int64
	FoldAvgNanos        int64
	CandidateCount      int64
	CandidateFailures   int64
	PredictionBatches   int64
	PredictionQueries   int64
	PredictionErrors    int64
	PredictionAvgNanos  int64
	HoldoutCount        int64
	HoldoutErrors       int64
	ArchiveCount        int64
	ArchiveBytes        int64
	ArchiveErrors       int64
	LastHoldoutAccuracy float64
}
