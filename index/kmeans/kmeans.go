package kmeans

import (
	"math"
	"math/rand"

	"github.com/hupe1980/nearest/distance"
	"github.com/hupe1980/nearest/index"
	clustering "github.com/hupe1980/nearest/internal/kmeans"
	"github.com/hupe1980/nearest/internal/queue"
)

// Compile-time check to ensure Tree satisfies the Structure interface.
var _ index.Structure[[]float64] = (*Tree[[]float64])(nil)

type node struct {
	pivot    []float64
	radius   float64 // largest distance from pivot to a point below
	variance float64 // mean squared distance from pivot
	size     int
	children []*node
	ids      []uint32
}

func (n *node) leaf() bool { return len(n.children) == 0 }

// Tree is a hierarchical k-means tree.
type Tree[T any] struct {
	data       *index.Dataset[T]
	branching  int
	iterations int
	centers    index.CentersInit
	cbIndex    float64
	rng        *rand.Rand
	root       *node
}

// New creates a k-means tree over data. It is built by Build.
func New[T any](data *index.Dataset[T], p index.Params) (*Tree[T], error) {
	if !data.HasVectors() {
		return nil, index.ErrVectorMetricRequired
	}
	iterations := p.Iterations
	if iterations == 0 {
		iterations = -1
	}
	return &Tree[T]{
		data:       data,
		branching:  max(p.Branching, 2),
		iterations: iterations,
		centers:    p.CentersInit,
		cbIndex:    p.CBIndex,
		rng:        rand.New(rand.NewSource(p.Seed)),
	}, nil
}

// Build implements index.Structure.
func (t *Tree[T]) Build() error {
	t.root = t.divide(t.data.LiveIDs())
	return nil
}

func (t *Tree[T]) divide(ids []uint32) *node {
	n := t.stats(ids)
	if len(ids) < t.branching {
		n.ids = ids
		return n
	}

	seeds := clustering.ChooseCenters(t.centers, ids, t.branching, t.data.Between, t.rng)
	if len(seeds) < 2 {
		n.ids = ids
		return n
	}

	vectors := make([][]float64, len(ids))
	for i, id := range ids {
		vectors[i] = t.data.Vector(id)
	}
	centers := make([][]float64, len(seeds))
	for i, id := range seeds {
		centers[i] = append([]float64(nil), t.data.Vector(id)...)
	}
	_, assign := clustering.Train(vectors, centers, t.iterations)

	groups := make([][]uint32, len(seeds))
	for i, c := range assign {
		groups[c] = append(groups[c], ids[i])
	}
	for _, g := range groups {
		if len(g) == len(ids) {
			n.ids = ids
			return n
		}
	}
	for _, g := range groups {
		if len(g) > 0 {
			n.children = append(n.children, t.divide(g))
		}
	}
	return n
}

// stats returns a node carrying the mean, radius and variance of ids.
func (t *Tree[T]) stats(ids []uint32) *node {
	n := &node{pivot: make([]float64, max(t.data.Dimension(), 1)), size: len(ids)}
	if len(ids) == 0 {
		return n
	}
	for _, id := range ids {
		for d, x := range t.data.Vector(id) {
			n.pivot[d] += x
		}
	}
	for d := range n.pivot {
		n.pivot[d] /= float64(len(ids))
	}

	var sum, radius float64
	for _, id := range ids {
		dsq := distance.SquaredL2(n.pivot, t.data.Vector(id))
		sum += dsq
		radius = math.Max(radius, dsq)
	}
	n.variance = sum / float64(len(ids))
	n.radius = math.Sqrt(radius)
	return n
}

// Insert implements index.Structure.
func (t *Tree[T]) Insert(ids []uint32) error {
	for _, id := range ids {
		t.insert(id)
	}
	return nil
}

func (t *Tree[T]) insert(id uint32) {
	v := t.data.Vector(id)
	if t.root == nil || t.root.size == 0 {
		t.root = t.divide([]uint32{id})
		return
	}

	n := t.root
	for {
		dsq := distance.SquaredL2(n.pivot, v)
		n.radius = math.Max(n.radius, math.Sqrt(dsq))
		n.variance = (n.variance*float64(n.size) + dsq) / float64(n.size+1)
		n.size++

		if n.leaf() {
			break
		}
		best, bestDist := 0, math.Inf(1)
		for i, child := range n.children {
			if d := distance.SquaredL2(child.pivot, v); d < bestDist {
				best, bestDist = i, d
			}
		}
		n = n.children[best]
	}

	n.ids = append(n.ids, id)
	if len(n.ids) >= t.branching {
		*n = *t.divide(n.ids)
	}
}

// Search implements index.Structure.
func (t *Tree[T]) Search(q *index.Query[T], c index.Collector) {
	if t.root == nil || t.root.size == 0 {
		return
	}

	var branches []*node
	heap := queue.NewMin(64)

	t.searchLevel(q, c, t.root, heap, &branches)
	for !q.Exhausted(c) {
		item, ok := heap.PopItem()
		if !ok {
			return
		}
		t.searchLevel(q, c, branches[item.ID], heap, &branches)
	}
}

func (t *Tree[T]) searchLevel(q *index.Query[T], c index.Collector, n *node, heap *queue.PriorityQueue, branches *[]*node) {
	for {
		// Every point below n is at least d(q, pivot) - radius away.
		bound := math.Sqrt(distance.SquaredL2(q.Coords, n.pivot)) - n.radius
		if bound*q.EpsFactor() > c.WorstDistance() {
			return
		}

		if n.leaf() {
			for _, id := range n.ids {
				if q.Exhausted(c) {
					return
				}
				t.data.Check(q, id, c)
			}
			return
		}

		best, bestDist := 0, math.Inf(1)
		dists := make([]float64, len(n.children))
		for i, child := range n.children {
			dists[i] = distance.SquaredL2(q.Coords, child.pivot) - t.cbIndex*child.variance
			if dists[i] < bestDist {
				best, bestDist = i, dists[i]
			}
		}
		for i, child := range n.children {
			if i == best {
				continue
			}
			*branches = append(*branches, child)
			heap.PushItem(queue.Item{ID: uint32(len(*branches) - 1), Distance: dists[i]})
		}
		n = n.children[best]
	}
}
