// Package testutil provides testing utilities for knntune.
//
// This package is intended for use in tests, benchmarks and examples only.
//
// # Synthetic Datasets
//
//	ds, err := testutil.Blobs(testutil.BlobsConfig{Classes: 3, PerClass: 40, Dim: 4, Seed: 7})
//
// # Exact Search (Ground Truth)
//
//	want := testutil.ExactNeighbors(query, rows, k, distance.Euclidean)
package testutil
