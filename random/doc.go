// Package random provides the seeded pseudo-random source threaded through
// splitting, fold generation and vote tie-breaking.
//
// There is no package-level generator: every consumer receives a *Source
// built from a caller-supplied seed, so identical inputs and seeds always
// produce identical partitions and predictions.
//
//	src := random.New(42)
//	src.Shuffle(len(idx), func(i, j int) { idx[i], idx[j] = idx[j], idx[i] })
//
// Derive yields independent child sources for concurrent work (one per fold,
// one per query) without sharing a mutex across goroutines:
//
//	foldSrc := random.New(seed).Derive(uint64(fold))
package random
