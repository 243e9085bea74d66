package random

import (
	"math/rand"
	"sync"
)

// Source wraps a seeded generator.
// It is safe for concurrent use, but concurrent consumers make the draw order
// scheduling dependent; use Derive to give each goroutine its own stream.
type Source struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// New creates a Source with the specified seed.
func New(seed int64) *Source {
	return &Source{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Seed returns the initial seed.
func (s *Source) Seed() int64 {
	return s.seed
}

// Reset rewinds the source to its initial seed.
func (s *Source) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rand.Seed(s.seed)
}

// Derive returns a new Source whose seed is a deterministic mix of this
// source's seed and stream. It does not consume draws from s.
func (s *Source) Derive(stream uint64) *Source {
	return New(DeriveSeed(s.seed, stream))
}

// DeriveSeed mixes seed and stream with the SplitMix64 finalizer.
func DeriveSeed(seed int64, stream uint64) int64 {
	z := uint64(seed) + (stream+1)*0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	z ^= z >> 31
	return int64(z)
}

// Intn returns a pseudo-random number in [0,n). It panics if n <= 0.
func (s *Source) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rand.Intn(n)
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (s *Source) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rand.Float64()
}

// NormFloat64 returns a standard normally distributed number.
func (s *Source) NormFloat64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rand.NormFloat64()
}

// Shuffle pseudo-randomizes the order of n elements using swap.
func (s *Source) Shuffle(n int, swap func(i, j int)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rand.Shuffle(n, swap)
}

// ShuffleInts shuffles xs in place.
func (s *Source) ShuffleInts(xs []int) {
	s.Shuffle(len(xs), func(i, j int) { xs[i], xs[j] = xs[j], xs[i] })
}

// Choose returns one element of xs uniformly. It panics if xs is empty.
// A single-element slice is returned without consuming a draw.
func Choose[T any](s *Source, xs []T) T {
	if len(xs) == 1 {
		return xs[0]
	}
	return xs[s.Intn(len(xs))]
}
