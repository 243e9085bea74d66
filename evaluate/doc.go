// Package evaluate scores predictions against true labels.
//
// Accuracy and ConfusionMatrix are undefined on zero predictions and return
// core.ErrEmptyInput instead of reporting zero.
package evaluate
