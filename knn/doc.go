// Package knn implements an exact k-nearest-neighbor classifier.
//
// Fitting stores the training frame and does no distance work. Prediction
// scans every training row with a bounded max-heap, so neighbors are exact and
// ties in distance are resolved by training position. A plurality vote picks
// the label; tied labels are broken with an explicitly seeded random source.
//
// Basic usage:
//
//	clf, err := knn.Fit(trainFrame, knn.WithMetric(distance.MetricManhattan))
//	if err != nil {
//		return err
//	}
//	preds, err := clf.PredictFrame(ctx, testFrame, 5, seed)
package knn
