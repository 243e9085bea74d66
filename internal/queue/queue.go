// Package queue provides the bounded heap used for exact k-nearest-neighbor
// selection.
package queue

import "sort"

// Item is a neighbor candidate: a training position and its distance to the
// query.
type Item struct {
	Position int
	Distance float64
}

// Before reports whether a ranks strictly ahead of b: smaller distance first,
// equal distances by ascending position.
func (a Item) Before(b Item) bool {
	if a.Distance != b.Distance {
		return a.Distance < b.Distance
	}
	return a.Position < b.Position
}

// Bounded keeps the k best-ranked items seen so far.
// Internally a value-based max-heap whose root is the worst kept item.
type Bounded struct {
	k     int
	items []Item
}

// NewBounded returns a heap keeping at most k items. k must be positive.
func NewBounded(k int) *Bounded {
	return &Bounded{
		k:     k,
		items: make([]Item, 0, k),
	}
}

// Len returns the number of kept items.
func (b *Bounded) Len() int { return len(b.items) }

// Top returns the worst kept item.
func (b *Bounded) Top() (Item, bool) {
	if len(b.items) == 0 {
		return Item{}, false
	}
	return b.items[0], true
}

// Offer keeps item if the heap is not full or item ranks before the worst
// kept item. It reports whether item was kept.
func (b *Bounded) Offer(item Item) bool {
	if len(b.items) < b.k {
		b.items = append(b.items, item)
		b.siftUp(len(b.items) - 1)
		return true
	}
	if !item.Before(b.items[0]) {
		return false
	}
	b.items[0] = item
	b.siftDown(0)
	return true
}

// Sorted returns the kept items best first. The heap is left unchanged.
func (b *Bounded) Sorted() []Item {
	out := make([]Item, len(b.items))
	copy(out, b.items)
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

// Reset clears the heap for reuse.
func (b *Bounded) Reset() {
	b.items = b.items[:0]
}

// less orders the max-heap: the worse item rises.
func (b *Bounded) less(i, j int) bool {
	return b.items[j].Before(b.items[i])
}

func (b *Bounded) siftUp(i int) {
	for i > 0 {
		p := (i - 1) / 2
		if !b.less(i, p) {
			return
		}
		b.items[i], b.items[p] = b.items[p], b.items[i]
		i = p
	}
}

func (b *Bounded) siftDown(i int) {
	n := len(b.items)
	for {
		l := 2*i + 1
		if l >= n {
			return
		}
		best := l
		r := l + 1
		if r < n && b.less(r, l) {
			best = r
		}
		if !b.less(best, i) {
			return
		}
		b.items[i], b.items[best] = b.items[best], b.items[i]
		i = best
	}
}
