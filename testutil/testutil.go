package testutil

import (
	"fmt"
	"sort"
	"testing"

	"github.com/hupe1980/knntune/dataset"
	"github.com/hupe1980/knntune/distance"
	"github.com/hupe1980/knntune/random"
)

// BlobsConfig describes a synthetic dataset of Gaussian class clusters.
type BlobsConfig struct {
	// Classes is the number of classes, named "c0", "c1", ...
	Classes int
	// PerClass is the number of examples per class. Sizes overrides it when set.
	PerClass int
	// Sizes gives an explicit example count per class.
	Sizes []int
	// Dim is the feature dimensionality.
	Dim int
	// Separation is the distance between neighboring class centers along every axis.
	// Defaults to 3.
	Separation float64
	// Spread is the standard deviation of the Gaussian noise. Defaults to 1.
	Spread float64
	// Seed drives all randomness.
	Seed int64
}

// Blobs generates a dataset with one Gaussian cluster per class.
// Examples are interleaved by class so no class is contiguous.
func Blobs(cfg BlobsConfig) (*dataset.Dataset, error) {
	sizes := cfg.Sizes
	if sizes == nil {
		sizes = make([]int, cfg.Classes)
		for i := range sizes {
			sizes[i] = cfg.PerClass
		}
	}
	if cfg.Separation == 0 {
		cfg.Separation = 3
	}
	if cfg.Spread == 0 {
		cfg.Spread = 1
	}

	schema := dataset.Schema{
		Features: make([]string, cfg.Dim),
		Classes:  make([]string, len(sizes)),
	}
	for j := range schema.Features {
		schema.Features[j] = fmt.Sprintf("f%d", j)
	}
	for c := range schema.Classes {
		schema.Classes[c] = fmt.Sprintf("c%d", c)
	}

	src := random.New(cfg.Seed)
	remaining := append([]int(nil), sizes...)
	var examples []dataset.Example
	for more := true; more; {
		more = false
		for c := range remaining {
			if remaining[c] == 0 {
				continue
			}
			remaining[c]--
			more = true

			vec := make([]float64, cfg.Dim)
			for j := range vec {
				vec[j] = float64(c)*cfg.Separation + src.NormFloat64()*cfg.Spread
			}
			examples = append(examples, dataset.Example{Features: vec, Label: schema.Classes[c]})
		}
	}

	return dataset.New(schema, examples)
}

// MustBlobs is Blobs for tests; it fails t on error.
func MustBlobs(t testing.TB, cfg BlobsConfig) *dataset.Dataset {
	t.Helper()
	ds, err := Blobs(cfg)
	if err != nil {
		t.Fatalf("testutil: blobs: %v", err)
	}
	return ds
}

// SearchResult is a ground-truth neighbor.
type SearchResult struct {
	Position int
	Distance float64
}

// ExactNeighbors returns the k rows closest to query by full sort, ties broken
// by row position.
func ExactNeighbors(query []float64, rows [][]float64, k int, fn distance.Func) []SearchResult {
	all := make([]SearchResult, len(rows))
	for i, r := range rows {
		all[i] = SearchResult{Position: i, Distance: fn(query, r)}
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].Distance < all[j].Distance })
	if k > len(all) {
		k = len(all)
	}
	return all[:k]
}
