// Package knntune evaluates and tunes k-nearest-neighbor classifiers.
//
// A Workflow wires the building blocks together without leaking validation
// data into preprocessing: the standardizer is always fitted on a training
// group and then applied, with the same state, to the group being scored.
//
// # Quick Start
//
//	wf := knntune.New(
//	    knntune.WithMetric(distance.MetricEuclidean),
//	    knntune.WithLogger(knntune.NewTextLogger(slog.LevelInfo)),
//	)
//
//	// Holdout: 75% train / 25% test, k = 5.
//	res, _ := wf.Holdout(ctx, ds, knntune.HoldoutConfig{
//	    Proportions: []float64{0.75, 0.25},
//	    K:           5,
//	    Seed:        42,
//	})
//	fmt.Println(res.Accuracy)
//	fmt.Println(res.Confusion)
//
//	// Grid search over k with 10-fold cross-validation on the training group.
//	curve, _ := wf.Tune(ctx, res.Train(), []int{1, 3, 5, 7, 9}, 10, 42)
//	best, _ := tune.Select(curve.Points, 0.01)
//
// # Determinism
//
// Every random decision (split shuffles, fold shuffles, vote tie-breaks)
// derives from the caller's seed. Results are identical across runs and
// across worker counts.
//
// # Packages
//
//   - dataset: immutable datasets and read-only index views (groups, partitions, folds)
//   - split: stratified partitioning with largest-remainder rounding
//   - standardize: two-phase fit/transform preprocessing
//   - knn: exact k-NN classifier
//   - evaluate: accuracy, confusion matrix, per-class scores
//   - crossval: fold generation, parallel fold runs, aggregation
//   - tune: grid search over k
//   - report, archive, blobstore: persisting experiment reports
package knntune
