package knntune

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jsonLogger(buf *bytes.Buffer) *Logger {
	return NewLogger(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func lastRecord(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	var rec map[string]any
	require.NoError(t, json.Unmarshal(lines[len(lines)-1], &rec))
	return rec
}

func TestLogger_Fields(t *testing.T) {
	var buf bytes.Buffer
	l := jsonLogger(&buf).WithK(5).WithFold(2).WithSeed(42).WithCount(3)
	l.Info("hello")

	rec := lastRecord(t, &buf)
	assert.Equal(t, "hello", rec["msg"])
	assert.EqualValues(t, 5, rec["k"])
	assert.EqualValues(t, 2, rec["fold"])
	assert.EqualValues(t, 42, rec["seed"])
	assert.EqualValues(t, 3, rec["count"])
}

func TestLogger_Operations(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("boom")

	tests := []struct {
		name  string
		log   func(l *Logger)
		msg   string
		level string
	}{
		{"SplitOK", func(l *Logger) { l.LogSplit(ctx, []string{"train", "test"}, []int{6, 2}, nil) }, "split completed", "DEBUG"},
		{"SplitErr", func(l *Logger) { l.LogSplit(ctx, nil, nil, boom) }, "split failed", "ERROR"},
		{"FoldOK", func(l *Logger) { l.LogFold(ctx, 3, 1, 0.9, nil) }, "fold completed", "DEBUG"},
		{"FoldErr", func(l *Logger) { l.LogFold(ctx, 3, 1, 0, boom) }, "fold failed", "ERROR"},
		{"CandidateOK", func(l *Logger) { l.LogCandidate(ctx, 3, 0.9, 0.01, nil) }, "candidate evaluated", "INFO"},
		{"CandidateErr", func(l *Logger) { l.LogCandidate(ctx, 3, 0, 0, boom) }, "candidate excluded", "WARN"},
		{"HoldoutOK", func(l *Logger) { l.LogHoldout(ctx, 1, 1, nil) }, "holdout completed", "INFO"},
		{"HoldoutErr", func(l *Logger) { l.LogHoldout(ctx, 1, 0, boom) }, "holdout failed", "ERROR"},
		{"ArchiveOK", func(l *Logger) { l.LogArchive(ctx, "exp/run.report", 128, nil) }, "report archived", "INFO"},
		{"ArchiveErr", func(l *Logger) { l.LogArchive(ctx, "exp/run.report", 0, boom) }, "archive failed", "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.log(jsonLogger(&buf))

			rec := lastRecord(t, &buf)
			assert.Equal(t, tt.msg, rec["msg"])
			assert.Equal(t, tt.level, rec["level"])
		})
	}
}

func TestNoopLogger(t *testing.T) {
	l := NoopLogger()
	assert.False(t, l.Enabled(context.Background(), slog.LevelError))
	l.LogHoldout(context.Background(), 1, 1, nil)
}
