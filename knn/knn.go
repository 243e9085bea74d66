package knn

import (
	"context"
	"fmt"

	"github.com/hupe1980/knntune/core"
	"github.com/hupe1980/knntune/dataset"
	"github.com/hupe1980/knntune/distance"
	"github.com/hupe1980/knntune/evaluate"
	"github.com/hupe1980/knntune/internal/queue"
	"github.com/hupe1980/knntune/random"
	"golang.org/x/sync/errgroup"
)

// Neighbor is one training row returned by Neighbors.
type Neighbor struct {
	// Position is the row position in the training frame.
	Position int
	// Index is the dataset index of the training example.
	Index    int
	Label    string
	Distance float64
}

// Classifier is a fitted k-NN model. It is immutable and safe for concurrent
// use.
type Classifier struct {
	train   dataset.Frame
	metric  distance.Metric
	dist    distance.Func
	workers int
	classes []string
}

// Fit builds a classifier over train. The frame is referenced, not copied.
func Fit(train dataset.Frame, opts ...Option) (*Classifier, error) {
	o := defaultOptions()
	for _, fn := range opts {
		fn(&o)
	}

	if train.Len() == 0 {
		return nil, fmt.Errorf("knn: fit: empty training frame: %w", core.ErrEmptyInput)
	}

	dist, err := distance.Provider(o.metric)
	if err != nil {
		return nil, fmt.Errorf("knn: fit: %w", err)
	}

	return &Classifier{
		train:   train,
		metric:  o.metric,
		dist:    dist,
		workers: o.workers,
		classes: train.Classes(),
	}, nil
}

// Len returns the number of training rows.
func (c *Classifier) Len() int { return c.train.Len() }

// Dim returns the feature dimensionality expected by queries.
func (c *Classifier) Dim() int { return c.train.Dim() }

// Metric returns the configured distance metric.
func (c *Classifier) Metric() distance.Metric { return c.metric }

func (c *Classifier) validate(query []float64, k int) error {
	if k < 1 || k > c.train.Len() {
		return &core.ErrInvalidK{K: k, Max: c.train.Len()}
	}
	if len(query) != c.train.Dim() {
		return &core.ErrDimensionMismatch{Expected: c.train.Dim(), Actual: len(query)}
	}
	return nil
}

// Neighbors returns the k training rows closest to query, nearest first.
// Rows at equal distance are ordered by training position.
func (c *Classifier) Neighbors(query []float64, k int) ([]Neighbor, error) {
	if err := c.validate(query, k); err != nil {
		return nil, err
	}

	items := c.search(query, k, queue.NewBounded(k))
	out := make([]Neighbor, len(items))
	for i, it := range items {
		out[i] = Neighbor{
			Position: it.Position,
			Index:    c.train.Index(it.Position),
			Label:    c.train.Label(it.Position),
			Distance: it.Distance,
		}
	}
	return out, nil
}

func (c *Classifier) search(query []float64, k int, h *queue.Bounded) []queue.Item {
	h.Reset()
	for pos := range c.train.Len() {
		h.Offer(queue.Item{Position: pos, Distance: c.dist(query, c.train.Row(pos))})
	}
	return h.Sorted()
}

// Predict classifies query by plurality vote over its k nearest neighbors.
// When several labels share the highest count, one of them (in class order)
// is chosen uniformly with src. src is consumed only on a tie and must not be
// nil.
func (c *Classifier) Predict(query []float64, k int, src *random.Source) (string, error) {
	if src == nil {
		return "", fmt.Errorf("knn: predict: nil random source: %w", core.ErrInvalidConfiguration)
	}
	if err := c.validate(query, k); err != nil {
		return "", err
	}
	tieSource := func() *random.Source { return src }
	return c.vote(c.search(query, k, queue.NewBounded(k)), make([]int, len(c.classes)), tieSource), nil
}

// vote calls tieSource only when several labels share the highest count.
func (c *Classifier) vote(items []queue.Item, counts []int, tieSource func() *random.Source) string {
	clear(counts)
	best := 0
	for _, it := range items {
		id := c.train.ClassID(it.Position)
		counts[id]++
		best = max(best, counts[id])
	}

	tied := make([]string, 0, 1)
	for id, n := range counts {
		if n == best {
			tied = append(tied, c.classes[id])
		}
	}
	if len(tied) == 1 {
		return tied[0]
	}
	return random.Choose(tieSource(), tied)
}

// PredictFrame classifies every row of queries concurrently. Query i breaks
// ties with random.New(seed).Derive(i), so results do not depend on the
// number of workers. Predictions are returned in row order.
func (c *Classifier) PredictFrame(ctx context.Context, queries dataset.Frame, k int, seed int64) ([]evaluate.Prediction, error) {
	if queries.Len() == 0 {
		return nil, fmt.Errorf("knn: predict: empty query frame: %w", core.ErrEmptyInput)
	}
	if k < 1 || k > c.train.Len() {
		return nil, &core.ErrInvalidK{K: k, Max: c.train.Len()}
	}
	if queries.Dim() != c.train.Dim() {
		return nil, &core.ErrDimensionMismatch{Expected: c.train.Dim(), Actual: queries.Dim()}
	}

	root := random.New(seed)
	preds := make([]evaluate.Prediction, queries.Len())

	workers := min(c.workers, queries.Len())
	chunk := (queries.Len() + workers - 1) / workers

	g, ctx := errgroup.WithContext(ctx)
	for start := 0; start < queries.Len(); start += chunk {
		end := min(start+chunk, queries.Len())
		g.Go(func() error {
			h := queue.NewBounded(k)
			counts := make([]int, len(c.classes))
			for i := start; i < end; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				stream := uint64(i)
				label := c.vote(c.search(queries.Row(i), k, h), counts, func() *random.Source {
					return root.Derive(stream)
				})
				preds[i] = evaluate.Prediction{
					Index:     queries.Index(i),
					Predicted: label,
					Actual:    queries.Label(i),
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return preds, nil
}
