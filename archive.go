package knntune

import (
	"context"
	"time"

	"github.com/hupe1980/knntune/archive"
	"github.com/hupe1980/knntune/report"
	"github.com/hupe1980/knntune/tune"
)

// NewReport starts a report for a holdout and/or tuning run. Fill it with
// AddHoldout and AddTuning, then pass it to Archive.
func NewReport(experiment string, seed int64, metric string) (*report.Report, error) {
	return report.New(experiment, report.Config{Seed: seed, Metric: metric})
}

// AddHoldout records a holdout result and its configuration on r.
func AddHoldout(r *report.Report, cfg HoldoutConfig, res *HoldoutResult) {
	r.Config.Proportions = append([]float64(nil), cfg.Proportions...)
	r.Config.K = cfg.K
	r.SetHoldout(res.Accuracy, res.Confusion)
}

// AddTuning records a tuning result on r and selects the smallest k within
// tolerance of the best mean accuracy.
func AddTuning(r *report.Report, c int, candidateKs []int, res *tune.Result, tolerance float64) (tune.Point, error) {
	r.Config.Folds = c
	r.Config.Candidates = append([]int(nil), candidateKs...)
	r.SetCurve(res)

	best, err := tune.Select(res.Points, tolerance)
	if err != nil {
		return tune.Point{}, err
	}
	r.SetSelection(best.K, tolerance)
	return best, nil
}

// Archive stores r through arc and commits it as the experiment's latest run.
func (w *Workflow) Archive(ctx context.Context, arc *archive.Archive, r *report.Report) (archive.Entry, error) {
	start := time.Now()
	e, size, err := arc.Save(ctx, r)
	w.opts.logger.WithSeed(r.Config.Seed).LogArchive(ctx, r.Key(), size, err)
	w.opts.metricsCollector.RecordArchive(size, time.Since(start), err)
	return e, err
}
