package crossval

import (
	"context"
	"fmt"
	"math"
	"runtime"

	"github.com/hupe1980/knntune/core"
	"github.com/hupe1980/knntune/dataset"
	"github.com/hupe1980/knntune/random"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// MakeFolds assigns every member of g to one of c folds.
//
// Each class's positions are shuffled with a source seeded by seed (classes
// in schema order, one source per call) and index i of the shuffled list goes
// to fold i mod c.
func MakeFolds(g dataset.Group, c int, seed int64) (*dataset.FoldAssignment, error) {
	if c < 2 {
		return nil, fmt.Errorf("crossval: %d folds, need at least 2: %w", c, core.ErrInvalidConfiguration)
	}
	if g.Len() < c {
		return nil, fmt.Errorf("crossval: %d examples for %d folds: %w", g.Len(), c, core.ErrInsufficientData)
	}

	src := random.New(seed)
	folds := make([]int, g.Len())
	sizes := make([]int, c)
	for _, positions := range g.ClassPositions() {
		src.ShuffleInts(positions)
		for i, pos := range positions {
			folds[pos] = i % c
			sizes[i%c]++
		}
	}

	for f, n := range sizes {
		if n == 0 {
			return nil, fmt.Errorf("crossval: fold %d is empty, largest class is smaller than %d: %w", f, c, core.ErrInsufficientData)
		}
	}

	return dataset.NewFoldAssignment(g, c, folds)
}

// TrainEvaluateFunc fits on train and returns the accuracy on validation.
type TrainEvaluateFunc func(ctx context.Context, fold int, train, validation dataset.Group) (float64, error)

// Limiter bounds concurrent fold evaluations across callers.
type Limiter interface {
	AcquireWorker(ctx context.Context) error
	ReleaseWorker()
}

type options struct {
	workers int
	limiter Limiter
}

// Option configures RunFolds.
type Option func(*options)

// WithWorkers caps the folds evaluated at once by a single RunFolds call.
// Values <= 0 fall back to GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithLimiter makes every fold hold a slot of l while it runs.
func WithLimiter(l Limiter) Option {
	return func(o *options) {
		o.limiter = l
	}
}

// RunFolds invokes fn once per fold and returns the accuracies in fold-id
// order. Folds run concurrently; the first error cancels the rest and is
// returned.
func RunFolds(ctx context.Context, fa *dataset.FoldAssignment, fn TrainEvaluateFunc, opts ...Option) ([]float64, error) {
	o := options{workers: runtime.GOMAXPROCS(0)}
	for _, opt := range opts {
		opt(&o)
	}
	if o.workers <= 0 {
		o.workers = runtime.GOMAXPROCS(0)
	}

	results := make([]float64, fa.Folds())

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(o.workers)
	for f := range fa.Folds() {
		g.Go(func() error {
			if o.limiter != nil {
				if err := o.limiter.AcquireWorker(ctx); err != nil {
					return err
				}
				defer o.limiter.ReleaseWorker()
			}
			if err := ctx.Err(); err != nil {
				return err
			}

			train, err := fa.Training(f)
			if err != nil {
				return err
			}
			validation, err := fa.Validation(f)
			if err != nil {
				return err
			}

			acc, err := fn(ctx, f, train, validation)
			if err != nil {
				return fmt.Errorf("crossval: fold %d: %w", f, err)
			}
			results[f] = acc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Summary is the aggregate of a cross-validation run.
type Summary struct {
	Mean   float64   `json:"mean"`
	StdErr float64   `json:"stderr"`
	Folds  []float64 `json:"folds"`
}

// Aggregate returns the mean and standard error (sample standard deviation
// over sqrt(C)) of the per-fold accuracies.
func Aggregate(accuracies []float64) (Summary, error) {
	if len(accuracies) < 2 {
		return Summary{}, fmt.Errorf("crossval: standard error needs at least 2 folds, got %d: %w", len(accuracies), core.ErrInvalidConfiguration)
	}
	for i, a := range accuracies {
		if math.IsNaN(a) || math.IsInf(a, 0) {
			return Summary{}, fmt.Errorf("crossval: fold %d accuracy is not finite: %w", i, core.ErrInvalidConfiguration)
		}
	}

	lo, hi := floats.Min(accuracies), floats.Max(accuracies)
	s := Summary{Folds: append([]float64(nil), accuracies...)}
	if lo == hi {
		s.Mean = lo
		return s, nil
	}

	s.Mean = math.Min(math.Max(stat.Mean(accuracies, nil), lo), hi)
	s.StdErr = stat.StdDev(accuracies, nil) / math.Sqrt(float64(len(accuracies)))
	return s, nil
}

// Run generates folds over g and aggregates fn's accuracy across them.
func Run(ctx context.Context, g dataset.Group, c int, seed int64, fn TrainEvaluateFunc, opts ...Option) (Summary, error) {
	fa, err := MakeFolds(g, c, seed)
	if err != nil {
		return Summary{}, err
	}
	accs, err := RunFolds(ctx, fa, fn, opts...)
	if err != nil {
		return Summary{}, err
	}
	return Aggregate(accs)
}
