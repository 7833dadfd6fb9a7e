package hcluster

import (
	"math/rand"
	"slices"

	"github.com/hupe1980/nearest/index"
	"github.com/hupe1980/nearest/internal/kmeans"
	"github.com/hupe1980/nearest/internal/queue"
)

// Compile-time check to ensure Forest satisfies the Structure interface.
var _ index.Structure[string] = (*Forest[string])(nil)

type node struct {
	pivot    uint32
	children []*node
	ids      []uint32
}

func (n *node) leaf() bool { return len(n.children) == 0 }

type tree struct {
	root *node
	rng  *rand.Rand
}

// Forest is a set of hierarchical clustering trees.
type Forest[T any] struct {
	data      *index.Dataset[T]
	branching int
	leafMax   int
	centers   index.CentersInit
	workers   int
	seed      int64
	trees     []*tree
}

// New creates a clustering forest over data. It is built by Build.
func New[T any](data *index.Dataset[T], p index.Params) *Forest[T] {
	return &Forest[T]{
		data:      data,
		branching: max(p.Branching, 2),
		leafMax:   max(p.LeafMaxSize, 1),
		centers:   p.CentersInit,
		workers:   p.BuildWorkers,
		seed:      p.Seed,
		trees:     make([]*tree, max(p.Trees, 1)),
	}
}

// Build implements index.Structure.
func (f *Forest[T]) Build() error {
	ids := f.data.LiveIDs()
	tasks := make([]func() error, len(f.trees))
	for i := range f.trees {
		tasks[i] = func() error {
			t := &tree{rng: rand.New(rand.NewSource(f.seed + int64(i)))}
			t.root = f.divide(t.rng, slices.Clone(ids))
			f.trees[i] = t
			return nil
		}
	}
	return index.BuildAll(f.workers, tasks...)
}

func (f *Forest[T]) divide(rng *rand.Rand, ids []uint32) *node {
	if len(ids) <= f.leafMax {
		return &node{ids: ids}
	}

	pivots := kmeans.ChooseCenters(f.centers, ids, f.branching, f.data.Between, rng)
	if len(pivots) < 2 {
		return &node{ids: ids}
	}

	groups := make([][]uint32, len(pivots))
	for _, id := range ids {
		c := f.closest(pivots, func(p uint32) float64 { return f.data.Between(p, id) })
		groups[c] = append(groups[c], id)
	}

	n := &node{children: make([]*node, 0, len(pivots))}
	for c, g := range groups {
		if len(g) == len(ids) {
			return &node{ids: ids}
		}
		if len(g) == 0 {
			continue
		}
		child := f.divide(rng, g)
		child.pivot = pivots[c]
		n.children = append(n.children, child)
	}
	return n
}

func (f *Forest[T]) closest(pivots []uint32, dist func(p uint32) float64) int {
	best, bestDist := 0, dist(pivots[0])
	for i := 1; i < len(pivots); i++ {
		if d := dist(pivots[i]); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// Insert implements index.Structure.
func (f *Forest[T]) Insert(ids []uint32) error {
	for _, t := range f.trees {
		for _, id := range ids {
			f.insert(t, id)
		}
	}
	return nil
}

func (f *Forest[T]) insert(t *tree, id uint32) {
	if t.root == nil {
		t.root = &node{ids: []uint32{id}}
		return
	}
	n := t.root
	for !n.leaf() {
		c := f.closest(pivotsOf(n), func(p uint32) float64 { return f.data.Between(p, id) })
		n = n.children[c]
	}
	n.ids = append(n.ids, id)
	if len(n.ids) > f.leafMax {
		pivot := n.pivot
		*n = *f.divide(t.rng, n.ids)
		n.pivot = pivot
	}
}

func pivotsOf(n *node) []uint32 {
	out := make([]uint32, len(n.children))
	for i, c := range n.children {
		out[i] = c.pivot
	}
	return out
}

// Search implements index.Structure. Branches are explored in order of the
// query's distance to their pivot until the check budget is spent.
func (f *Forest[T]) Search(q *index.Query[T], c index.Collector) {
	var branches []*node
	heap := queue.NewMin(64)

	for _, t := range f.trees {
		if t.root != nil {
			f.searchLevel(q, c, t.root, heap, &branches)
		}
	}
	for !q.Exhausted(c) {
		item, ok := heap.PopItem()
		if !ok {
			return
		}
		f.searchLevel(q, c, branches[item.ID], heap, &branches)
	}
}

func (f *Forest[T]) searchLevel(q *index.Query[T], c index.Collector, n *node, heap *queue.PriorityQueue, branches *[]*node) {
	for !n.leaf() {
		best, bestDist := -1, 0.0
		dists := make([]float64, len(n.children))
		for i, child := range n.children {
			dists[i] = f.data.Distance(q, child.pivot)
			if best < 0 || dists[i] < bestDist {
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

	for _, id := range n.ids {
		if q.Exhausted(c) {
			return
		}
		f.data.Check(q, id, c)
	}
}
