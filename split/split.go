package split

import (
	"fmt"
	"math"
	"slices"
	"sort"

	"github.com/hupe1980/knntune/core"
	"github.com/hupe1980/knntune/dataset"
	"github.com/hupe1980/knntune/random"
)

// Tolerance is the allowed deviation of the proportion sum from 1.
const Tolerance = 1e-9

type options struct {
	names []string
}

// Option configures a split.
type Option func(*options)

// WithNames names the output groups in order.
// The default is "train", "test" for two groups and "group-<i>" otherwise.
func WithNames(names ...string) Option {
	return func(o *options) {
		o.names = slices.Clone(names)
	}
}

// Dataset splits every example of ds. See Stratified.
func Dataset(ds *dataset.Dataset, proportions []float64, seed int64, optFns ...Option) (*dataset.Partition, error) {
	return Stratified(ds.All(), proportions, seed, optFns...)
}

// Stratified partitions g into len(proportions) groups that preserve the
// class distribution of g. Identical inputs and seed yield identical
// partitions.
//
// Every class present in g must be represented in every group. A class that
// rounding would leave out of a group fails with ErrInsufficientData.
func Stratified(g dataset.Group, proportions []float64, seed int64, optFns ...Option) (*dataset.Partition, error) {
	opts := options{}
	for _, fn := range optFns {
		fn(&opts)
	}

	if err := ValidateProportions(proportions); err != nil {
		return nil, err
	}
	names, err := groupNames(opts.names, len(proportions))
	if err != nil {
		return nil, err
	}
	if g.Len() == 0 {
		return nil, fmt.Errorf("split: empty group: %w", core.ErrEmptyInput)
	}

	classes := g.Classes()
	byClass := g.ClassPositions()
	for id, positions := range byClass {
		if len(positions) > 0 && len(positions) < len(proportions) {
			return nil, fmt.Errorf("split: %w", &core.ErrClassTooSmall{Label: classes[id], Count: len(positions), Groups: len(proportions)})
		}
	}

	counts := make([][]int, len(byClass))
	for id, positions := range byClass {
		if len(positions) == 0 {
			continue
		}
		counts[id] = Allocate(len(positions), proportions)
		if gi := slices.Index(counts[id], 0); gi >= 0 {
			return nil, fmt.Errorf("split: class %q (%d examples) gets no example in group %q: %w",
				classes[id], len(positions), names[gi], core.ErrInsufficientData)
		}
	}

	src := random.New(seed)
	members := make([][]int, len(proportions))
	for id, positions := range byClass {
		if len(positions) == 0 {
			continue
		}
		shuffled := slices.Clone(positions)
		src.ShuffleInts(shuffled)

		start := 0
		for gi, n := range counts[id] {
			members[gi] = append(members[gi], shuffled[start:start+n]...)
			start += n
		}
	}

	groups := make([]dataset.Group, len(members))
	for i, m := range members {
		if groups[i], err = g.Subset(m); err != nil {
			return nil, err
		}
	}
	return dataset.NewPartition(g, names, groups)
}

// TrainTest splits ds into a training and a test group, with testFraction of
// every class in the test group.
func TrainTest(ds *dataset.Dataset, testFraction float64, seed int64) (train, test dataset.Group, err error) {
	p, err := Dataset(ds, []float64{1 - testFraction, testFraction}, seed)
	if err != nil {
		return dataset.Group{}, dataset.Group{}, err
	}
	return p.Group(0), p.Group(1), nil
}

// ValidateProportions checks there are at least two positive, finite
// fractions summing to 1 within Tolerance.
func ValidateProportions(proportions []float64) error {
	if len(proportions) < 2 {
		return fmt.Errorf("split: need at least 2 proportions, got %d: %w", len(proportions), core.ErrInvalidConfiguration)
	}
	var sum float64
	for i, p := range proportions {
		if math.IsNaN(p) || math.IsInf(p, 0) || p <= 0 {
			return fmt.Errorf("split: proportion %d is %v, must be positive: %w", i, p, core.ErrInvalidConfiguration)
		}
		sum += p
	}
	if math.Abs(sum-1) > Tolerance {
		return fmt.Errorf("split: proportions sum to %v, want 1: %w", sum, core.ErrInvalidConfiguration)
	}
	return nil
}

// Allocate distributes n items over proportions with largest-remainder
// rounding. The result sums to n and entry i differs from n*proportions[i]
// by less than 1.
func Allocate(n int, proportions []float64) []int {
	counts := make([]int, len(proportions))
	type remainder struct {
		group int
		frac  float64
	}
	rems := make([]remainder, len(proportions))

	assigned := 0
	for i, p := range proportions {
		ideal := float64(n) * p
		whole := math.Floor(ideal)
		counts[i] = int(whole)
		assigned += counts[i]
		rems[i] = remainder{group: i, frac: ideal - whole}
	}

	sort.SliceStable(rems, func(a, b int) bool { return rems[a].frac > rems[b].frac })
	for i := 0; assigned < n; i++ {
		counts[rems[i%len(rems)].group]++
		assigned++
	}
	return counts
}

func groupNames(names []string, n int) ([]string, error) {
	if names != nil {
		if len(names) != n {
			return nil, fmt.Errorf("split: %d names for %d groups: %w", len(names), n, core.ErrInvalidConfiguration)
		}
		return names, nil
	}
	if n == 2 {
		return []string{"train", "test"}, nil
	}
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("group-%d", i)
	}
	return out, nil
}
