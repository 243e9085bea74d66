// Package core holds the error kinds shared by every knntune package.
//
// All failures surface as one of three sentinels:
//
//   - ErrInvalidConfiguration: malformed proportions, fold counts below 2,
//     k out of range, dimension mismatches, unknown labels.
//   - ErrInsufficientData: a class too small to stratify into the requested
//     number of groups, or fewer examples than folds.
//   - ErrEmptyInput: metrics requested over zero predictions, empty datasets.
//
// Typed errors carry the offending values and unwrap to their sentinel, so
// callers match with errors.Is and inspect details with errors.As.
package core
