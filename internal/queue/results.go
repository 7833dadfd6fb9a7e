package queue

import (
	"math"
	"slices"
)

// KNN collects the k closest points seen so far.
type KNN struct {
	k    int
	heap *PriorityQueue
}

// NewKNN creates a collector that keeps at most k items. k must be positive.
func NewKNN(k int) *KNN {
	return &KNN{
		k:    k,
		heap: NewMax(k),
	}
}

// Add offers a candidate to the collector.
func (c *KNN) Add(id uint32, dist float64) {
	if c.heap.Len() < c.k {
		c.heap.PushItem(Item{ID: id, Distance: dist})
		return
	}
	item := Item{ID: id, Distance: dist}
	if top, _ := c.heap.TopItem(); Before(item, top) {
		c.heap.ReplaceTop(item)
	}
}

// WorstDistance returns the pruning bound: the k-th best distance once the
// collector is full, +Inf before that.
func (c *KNN) WorstDistance() float64 {
	if c.heap.Len() < c.k {
		return math.Inf(1)
	}
	top, _ := c.heap.TopItem()
	return top.Distance
}

// Full reports whether k items have been collected.
func (c *KNN) Full() bool { return c.heap.Len() >= c.k }

// Len returns the number of collected items.
func (c *KNN) Len() int { return c.heap.Len() }

// Sorted returns the collected items in ascending distance order.
func (c *KNN) Sorted() []Item {
	out := slices.Clone(c.heap.Items())
	SortItems(out)
	return out
}

// Radius collects every point within an inclusive distance bound. When limit
// is positive only the limit closest points are kept.
type Radius struct {
	radius float64
	limit  int
	items  []Item
	heap   *PriorityQueue
}

// NewRadius creates a radius collector. A limit <= 0 keeps all matches.
func NewRadius(radius float64, limit int) *Radius {
	r := &Radius{radius: radius, limit: limit}
	if limit > 0 {
		r.heap = NewMax(limit)
	}
	return r
}

// Add offers a candidate to the collector.
func (c *Radius) Add(id uint32, dist float64) {
	if dist > c.radius {
		return
	}
	if c.heap == nil {
		c.items = append(c.items, Item{ID: id, Distance: dist})
		return
	}
	if c.heap.Len() < c.limit {
		c.heap.PushItem(Item{ID: id, Distance: dist})
		return
	}
	item := Item{ID: id, Distance: dist}
	if top, _ := c.heap.TopItem(); Before(item, top) {
		c.heap.ReplaceTop(item)
	}
}

// WorstDistance returns the pruning bound.
func (c *Radius) WorstDistance() float64 {
	if c.heap != nil && c.heap.Len() >= c.limit {
		top, _ := c.heap.TopItem()
		return top.Distance
	}
	return c.radius
}

// Full is always false, so the check budget never stops a radius query.
func (c *Radius) Full() bool { return false }

// Len returns the number of collected items.
func (c *Radius) Len() int {
	if c.heap != nil {
		return c.heap.Len()
	}
	return len(c.items)
}

// Items returns the collected items. They are sorted ascending when sorted is true.
func (c *Radius) Items(sorted bool) []Item {
	var out []Item
	if c.heap != nil {
		out = slices.Clone(c.heap.Items())
	} else {
		out = slices.Clone(c.items)
	}
	if sorted {
		SortItems(out)
	}
	return out
}

// SortItems sorts items in Before order: ascending distance, the most
// recently inserted point first among ties.
func SortItems(items []Item) {
	slices.SortFunc(items, func(a, b Item) int {
		switch {
		case Before(a, b):
			return -1
		case Before(b, a):
			return 1
		default:
			return 0
		}
	})
}
