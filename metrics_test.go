package knntune

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBasicMetricsCollector(t *testing.T) {
	mc := &BasicMetricsCollector{}
	boom := errors.New("boom")

	mc.RecordFold(3, 0, 0.9, 10*time.Millisecond, nil)
	mc.RecordFold(3, 1, 0, 30*time.Millisecond, boom)
	mc.RecordCandidate(3, 0.9, 0.01, nil)
	mc.RecordCandidate(99, 0, 0, boom)
	mc.RecordPrediction(20, time.Millisecond, nil)
	mc.RecordPrediction(5, time.Millisecond, boom)
	mc.RecordHoldout(0.75, time.Second, nil)
	mc.RecordHoldout(0, time.Second, boom)
	mc.RecordArchive(512, time.Millisecond, nil)
	mc.RecordArchive(0, time.Millisecond, boom)

	stats := mc.GetStats()
	assert.Equal(t, int64(2), stats.FoldCount)
	assert.Equal(t, int64(1), stats.FoldErrors)
	assert.Equal(t, (20 * time.Millisecond).Nanoseconds(), stats.FoldAvgNanos)
	assert.Equal(t, int64(2), stats.CandidateCount)
	assert.Equal(t, int64(1), stats.CandidateFailures)
	assert.Equal(t, int64(2), stats.PredictionBatches)
	assert.Equal(t, int64(20), stats.PredictionQueries)
	assert.Equal(t, int64(1), stats.PredictionErrors)
	assert.Equal(t, int64(2), stats.HoldoutCount)
	assert.Equal(t, int64(1), stats.HoldoutErrors)
	assert.Equal(t, 0.75, stats.LastHoldoutAccuracy)
	assert.Equal(t, int64(2), stats.ArchiveCount)
	assert.Equal(t, int64(512), stats.ArchiveBytes)
	assert.Equal(t, int64(1), stats.ArchiveErrors)
}

func TestBasicMetricsCollector_Empty(t *testing.T) {
	stats := (&BasicMetricsCollector{}).GetStats()
	assert.Zero(t, stats.FoldAvgNanos)
	assert.Zero(t, stats.PredictionAvgNanos)
}

var (
	_ MetricsCollector = NoopMetricsCollector{}
	_ MetricsCollector = (*BasicMetricsCollector)(nil)
)
