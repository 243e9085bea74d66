package knntune

import (
	"context"
	"fmt"
	"time"

	"github.com/hupe1980/knntune/core"
	"github.com/hupe1980/knntune/crossval"
	"github.com/hupe1980/knntune/dataset"
	"github.com/hupe1980/knntune/distance"
	"github.com/hupe1980/knntune/evaluate"
	"github.com/hupe1980/knntune/knn"
	"github.com/hupe1980/knntune/random"
	"github.com/hupe1980/knntune/split"
	"github.com/hupe1980/knntune/standardize"
	"github.com/hupe1980/knntune/tune"
)

// Workflow wires a standardizer, the k-NN classifier and the evaluator into
// holdout evaluation, cross-validation and grid search. It holds no mutable
// state and is safe for concurrent use.
type Workflow struct {
	opts options
}

// New creates a Workflow.
func New(optFns ...Option) *Workflow {
	o := defaultOptions()
	for _, fn := range optFns {
		fn(&o)
	}
	return &Workflow{opts: o}
}

// Metric returns the configured distance metric.
func (w *Workflow) Metric() distance.Metric { return w.opts.metric }

// Logger returns the configured logger.
func (w *Workflow) Logger() *Logger { return w.opts.logger }

// HoldoutConfig parameterizes a holdout evaluation.
type HoldoutConfig struct {
	// Proportions of the stratified split. The first group trains, the last
	// group is evaluated; groups in between (e.g. validation) are returned
	// untouched in the partition.
	Proportions []float64
	// K is the neighbor count.
	K int
	// Seed drives the split and tie-breaking.
	Seed int64
}

// HoldoutResult is the outcome of a holdout evaluation.
type HoldoutResult struct {
	Accuracy    float64
	Confusion   *evaluate.ConfusionMatrix
	Predictions []evaluate.Prediction
	Partition   *dataset.Partition
}

// Train returns the training group of the partition.
func (r *HoldoutResult) Train() dataset.Group { return r.Partition.Group(0) }

// Test returns the evaluated group of the partition.
func (r *HoldoutResult) Test() dataset.Group { return r.Partition.Group(r.Partition.Len() - 1) }

// Holdout splits ds, fits the standardizer on the training group only,
// transforms both groups with that state, fits a classifier on the
// transformed training rows and scores it on the evaluated group.
func (w *Workflow) Holdout(ctx context.Context, ds *dataset.Dataset, cfg HoldoutConfig) (*HoldoutResult, error) {
	start := time.Now()
	res, err := w.holdout(ctx, ds, cfg)

	acc := 0.0
	if res != nil {
		acc = res.Accuracy
	}
	w.opts.logger.WithSeed(cfg.Seed).LogHoldout(ctx, cfg.K, acc, err)
	w.opts.metricsCollector.RecordHoldout(acc, time.Since(start), err)
	return res, err
}

func (w *Workflow) holdout(ctx context.Context, ds *dataset.Dataset, cfg HoldoutConfig) (*HoldoutResult, error) {
	if ds == nil {
		return nil, fmt.Errorf("knntune: holdout: nil dataset: %w", core.ErrEmptyInput)
	}

	p, err := split.Dataset(ds, cfg.Proportions, cfg.Seed)
	w.logSplit(ctx, p, err)
	if err != nil {
		return nil, fmt.Errorf("knntune: holdout: %w", err)
	}

	train := p.Group(0)
	test := p.Group(p.Len() - 1)

	preds, err := w.fitPredict(ctx, train, test, cfg.K, cfg.Seed)
	if err != nil {
		return nil, fmt.Errorf("knntune: holdout: %w", err)
	}

	acc, err := evaluate.Accuracy(preds)
	if err != nil {
		return nil, fmt.Errorf("knntune: holdout: %w", err)
	}
	cm, err := evaluate.NewConfusionMatrix(ds.Classes(), preds)
	if err != nil {
		return nil, fmt.Errorf("knntune: holdout: %w", err)
	}

	return &HoldoutResult{
		Accuracy:    acc,
		Confusion:   cm,
		Predictions: preds,
		Partition:   p,
	}, nil
}

func (w *Workflow) logSplit(ctx context.Context, p *dataset.Partition, err error) {
	if err != nil {
		w.opts.logger.LogSplit(ctx, nil, nil, err)
		return
	}
	sizes := make([]int, p.Len())
	for i := range sizes {
		sizes[i] = p.Group(i).Len()
	}
	w.opts.logger.LogSplit(ctx, p.Names(), sizes, nil)
}

// fitPredict standardizes with state fitted on train only, then classifies
// every member of eval. Ties use seed.
func (w *Workflow) fitPredict(ctx context.Context, train, eval dataset.Group, k int, seed int64) ([]evaluate.Prediction, error) {
	trainFrame, evalFrame, err := standardize.Prepare(w.opts.standardizer, train, eval)
	if err != nil {
		return nil, err
	}

	clf, err := knn.Fit(trainFrame, knn.WithMetric(w.opts.metric), knn.WithWorkers(w.opts.workers))
	if err != nil {
		return nil, err
	}

	start := time.Now()
	preds, err := clf.PredictFrame(ctx, evalFrame, k, seed)
	w.opts.metricsCollector.RecordPrediction(evalFrame.Len(), time.Since(start), err)
	return preds, err
}

// TrainEvaluate returns the per-fold procedure for neighbor count k: fit the
// standardizer on the fold's training group, fit a classifier, and return
// the accuracy on the validation group. Ties in fold f are broken with
// random.DeriveSeed(seed, f).
func (w *Workflow) TrainEvaluate(k int, seed int64) crossval.TrainEvaluateFunc {
	return func(ctx context.Context, fold int, train, validation dataset.Group) (float64, error) {
		start := time.Now()
		acc, err := w.trainEvaluate(ctx, k, fold, train, validation, seed)
		w.opts.logger.LogFold(ctx, k, fold, acc, err)
		w.opts.metricsCollector.RecordFold(k, fold, acc, time.Since(start), err)
		return acc, err
	}
}

func (w *Workflow) trainEvaluate(ctx context.Context, k, fold int, train, validation dataset.Group, seed int64) (float64, error) {
	preds, err := w.fitPredict(ctx, train, validation, k, random.DeriveSeed(seed, uint64(fold)))
	if err != nil {
		return 0, err
	}
	return evaluate.Accuracy(preds)
}

func (w *Workflow) foldOptions() []crossval.Option {
	opts := []crossval.Option{crossval.WithWorkers(w.opts.workers)}
	if w.opts.controller != nil {
		opts = append(opts, crossval.WithLimiter(w.opts.controller))
	}
	return opts
}

// CrossValidate runs C-fold stratified cross-validation of a k-neighbor
// classifier over g.
func (w *Workflow) CrossValidate(ctx context.Context, g dataset.Group, k, c int, seed int64) (crossval.Summary, error) {
	s, err := crossval.Run(ctx, g, c, seed, w.TrainEvaluate(k, seed), w.foldOptions()...)
	w.opts.logger.WithSeed(seed).LogCandidate(ctx, k, s.Mean, s.StdErr, err)
	w.opts.metricsCollector.RecordCandidate(k, s.Mean, s.StdErr, err)
	return s, err
}

// Tune cross-validates every candidate k over the same C folds of g.
// Candidates run concurrently; excluded candidates are listed in
// Result.Failures.
func (w *Workflow) Tune(ctx context.Context, g dataset.Group, candidateKs []int, c int, seed int64) (*tune.Result, error) {
	score := func(ctx context.Context, k, fold int, train, validation dataset.Group) (float64, error) {
		return w.TrainEvaluate(k, seed)(ctx, fold, train, validation)
	}

	tuner := tune.New(score,
		tune.WithWorkers(w.opts.workers),
		tune.WithFoldOptions(w.foldOptions()...),
	)

	res, err := tuner.Tune(ctx, g, candidateKs, c, seed)
	if err != nil {
		w.opts.logger.WithSeed(seed).ErrorContext(ctx, "tuning failed", "error", err)
		return nil, err
	}

	logger := w.opts.logger.WithSeed(seed).WithCount(len(candidateKs))
	for _, p := range res.Points {
		logger.LogCandidate(ctx, p.K, p.Mean, p.StdErr, nil)
		w.opts.metricsCollector.RecordCandidate(p.K, p.Mean, p.StdErr, nil)
	}
	for _, f := range res.Failures {
		logger.LogCandidate(ctx, f.K, 0, 0, f.Err)
		w.opts.metricsCollector.RecordCandidate(f.K, 0, 0, f.Err)
	}
	return res, nil
}
