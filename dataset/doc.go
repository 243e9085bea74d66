// Package dataset defines the immutable labeled dataset and the read-only
// index views derived from it.
//
// A Dataset is built once from a Schema and a slice of Examples and never
// changes afterwards. Everything downstream works on views:
//
//   - Group: an ascending index set (Roaring bitmap) over a dataset. A Group
//     exposes only its own members, addressed by position, so code that
//     receives a training Group cannot reach validation examples.
//   - Partition: ordered, named, disjoint and exhaustive Groups of a parent.
//   - FoldAssignment: a fold id in [0, C) for every position of a Group.
//   - Frame: feature rows aligned with a Group, usually produced by a
//     standardizer.
//
// Views own no copied feature data.
package dataset
