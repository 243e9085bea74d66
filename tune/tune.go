package tune

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"slices"

	"github.com/hupe1980/knntune/core"
	"github.com/hupe1980/knntune/crossval"
	"github.com/hupe1980/knntune/dataset"
	"golang.org/x/sync/errgroup"
)

// ScoreFunc fits a k-neighbor model on train and returns its accuracy on
// validation.
type ScoreFunc func(ctx context.Context, k int, fold int, train, validation dataset.Group) (float64, error)

// Point is one entry of the tuning curve.
type Point struct {
	K      int       `json:"k"`
	Mean   float64   `json:"mean"`
	StdErr float64   `json:"stderr"`
	Folds  []float64 `json:"folds"`
}

// CandidateError records why a candidate k was excluded from the curve.
type CandidateError struct {
	K   int
	Err error
}

func (e *CandidateError) Error() string {
	return fmt.Sprintf("candidate k=%d: %v", e.K, e.Err)
}

func (e *CandidateError) Unwrap() error { return e.Err }

// Result is the outcome of a grid search.
type Result struct {
	// Points holds the successful candidates in input order.
	Points []Point
	// Failures holds the excluded candidates in input order.
	Failures []*CandidateError
	// Folds is the shared fold assignment.
	Folds *dataset.FoldAssignment
}

type options struct {
	workers     int
	foldOptions []crossval.Option
}

// Option configures a GridTuner.
type Option func(*options)

// WithWorkers caps the candidates evaluated at once.
// Values <= 0 fall back to GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithFoldOptions passes options to every crossval.RunFolds call.
func WithFoldOptions(opts ...crossval.Option) Option {
	return func(o *options) {
		o.foldOptions = append(o.foldOptions, opts...)
	}
}

// GridTuner sweeps candidate k values with cross-validation.
type GridTuner struct {
	score ScoreFunc
	opts  options
}

// New creates a GridTuner scoring candidates with score.
func New(score ScoreFunc, opts ...Option) *GridTuner {
	o := options{workers: runtime.GOMAXPROCS(0)}
	for _, fn := range opts {
		fn(&o)
	}
	if o.workers <= 0 {
		o.workers = runtime.GOMAXPROCS(0)
	}
	return &GridTuner{score: score, opts: o}
}

// Tune cross-validates every candidate k over c folds of train.
//
// Fold generation failures abort the sweep. A candidate outside
// [1, smallest fold training size], or one whose evaluation fails, becomes a
// CandidateError. Duplicate candidates are evaluated once.
func (t *GridTuner) Tune(ctx context.Context, train dataset.Group, candidateKs []int, c int, seed int64) (*Result, error) {
	if len(candidateKs) == 0 {
		return nil, fmt.Errorf("tune: no candidate k values: %w", core.ErrInvalidConfiguration)
	}
	if t.score == nil {
		return nil, fmt.Errorf("tune: nil score function: %w", core.ErrInvalidConfiguration)
	}

	fa, err := crossval.MakeFolds(train, c, seed)
	if err != nil {
		return nil, fmt.Errorf("tune: %w", err)
	}

	ks := make([]int, 0, len(candidateKs))
	for _, k := range candidateKs {
		if !slices.Contains(ks, k) {
			ks = append(ks, k)
		}
	}

	maxK := fa.MinTrainingSize()
	points := make([]*Point, len(ks))
	failures := make([]*CandidateError, len(ks))

	var g errgroup.Group
	g.SetLimit(t.opts.workers)
	for i, k := range ks {
		g.Go(func() error {
			if k < 1 || k > maxK {
				failures[i] = &CandidateError{K: k, Err: &core.ErrInvalidK{K: k, Max: maxK}}
				return nil
			}
			p, err := t.evaluate(ctx, fa, k)
			if err != nil {
				failures[i] = &CandidateError{K: k, Err: err}
				return nil
			}
			points[i] = p
			return nil
		})
	}
	// Candidate failures are recorded, not returned, so Wait only reports
	// errors from the group itself.
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res := &Result{Folds: fa}
	for i := range ks {
		if points[i] != nil {
			res.Points = append(res.Points, *points[i])
		}
		if failures[i] != nil {
			res.Failures = append(res.Failures, failures[i])
		}
	}
	return res, nil
}

func (t *GridTuner) evaluate(ctx context.Context, fa *dataset.FoldAssignment, k int) (*Point, error) {
	accs, err := crossval.RunFolds(ctx, fa, func(ctx context.Context, fold int, train, validation dataset.Group) (float64, error) {
		return t.score(ctx, k, fold, train, validation)
	}, t.opts.foldOptions...)
	if err != nil {
		return nil, err
	}
	s, err := crossval.Aggregate(accs)
	if err != nil {
		return nil, err
	}
	return &Point{K: k, Mean: s.Mean, StdErr: s.StdErr, Folds: s.Folds}, nil
}

// Select returns the smallest k whose mean accuracy is within tolerance of
// the best mean on the curve. This is a heuristic trading a little accuracy
// for cheaper, smoother models; it is not an optimality guarantee.
func Select(points []Point, tolerance float64) (Point, error) {
	if len(points) == 0 {
		return Point{}, fmt.Errorf("tune: select: no points: %w", core.ErrEmptyInput)
	}
	if tolerance < 0 || math.IsNaN(tolerance) {
		return Point{}, fmt.Errorf("tune: select: tolerance %v: %w", tolerance, core.ErrInvalidConfiguration)
	}

	best := math.Inf(-1)
	for _, p := range points {
		best = math.Max(best, p.Mean)
	}

	var chosen *Point
	for i := range points {
		p := &points[i]
		if p.Mean >= best-tolerance && (chosen == nil || p.K < chosen.K) {
			chosen = p
		}
	}
	return *chosen, nil
}
