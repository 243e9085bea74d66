// Package crossval implements stratified C-fold cross-validation.
//
// MakeFolds deals every class round-robin over the folds after a seeded
// shuffle. RunFolds evaluates a caller-supplied procedure once per fold,
// concurrently, handing it only the fold's training and validation Groups so
// no validation index can reach the trainer. Aggregate reduces the per-fold
// accuracies to a mean and a standard error.
package crossval
