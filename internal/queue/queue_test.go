package queue

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBounded(t *testing.T) {
	b := NewBounded(3)
	_, ok := b.Top()
	assert.False(t, ok)

	for pos, d := range []float64{5, 1, 4, 2, 3} {
		b.Offer(Item{Position: pos, Distance: d})
	}

	require.Equal(t, 3, b.Len())
	top, ok := b.Top()
	require.True(t, ok)
	assert.Equal(t, 3.0, top.Distance)

	got := b.Sorted()
	assert.Equal(t, []Item{{1, 1}, {3, 2}, {4, 3}}, got)

	b.Reset()
	assert.Equal(t, 0, b.Len())
}

func TestBounded_TiesKeepEarlierPositions(t *testing.T) {
	b := NewBounded(2)
	assert.True(t, b.Offer(Item{Position: 0, Distance: 1}))
	assert.True(t, b.Offer(Item{Position: 1, Distance: 1}))
	assert.False(t, b.Offer(Item{Position: 2, Distance: 1}))
	assert.True(t, b.Offer(Item{Position: 3, Distance: 0.5}))

	assert.Equal(t, []Item{{3, 0.5}, {0, 1}}, b.Sorted())
}

func TestBounded_MatchesSort(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	items := make([]Item, 500)
	for i := range items {
		// few distinct values force many ties
		items[i] = Item{Position: i, Distance: float64(r.Intn(20))}
	}

	for _, k := range []int{1, 7, 50, 500} {
		b := NewBounded(k)
		for _, it := range items {
			b.Offer(it)
		}

		want := append([]Item(nil), items...)
		sort.SliceStable(want, func(i, j int) bool { return want[i].Distance < want[j].Distance })
		assert.Equal(t, want[:k], b.Sorted(), "k=%d", k)
	}
}
