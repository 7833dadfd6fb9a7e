package kdtree

import (
	"math"
	"math/rand"
	"slices"
	"sort"

	"github.com/hupe1980/nearest/index"
	"github.com/hupe1980/nearest/internal/queue"
)

const (
	// sampleMean bounds how many points are sampled to estimate split statistics.
	sampleMean = 100
	// randDim is the number of top-variance dimensions a split is drawn from.
	randDim = 5
)

// Compile-time check to ensure Forest satisfies the Structure interface.
var _ index.Structure[[]float64] = (*Forest[[]float64])(nil)

// Forest is a set of randomized kd-trees.
type Forest[T any] struct {
	data    *index.Dataset[T]
	leafMax int
	workers int
	seed    int64
	trees   []*randomTree
}

type randomTree struct {
	root *node
	rng  *rand.Rand
}

// NewForest creates a forest structure over data. It is built by Build.
func NewForest[T any](data *index.Dataset[T], p index.Params) (*Forest[T], error) {
	if !data.HasVectors() {
		return nil, index.ErrVectorMetricRequired
	}
	leafMax := p.LeafMaxSize
	if leafMax < 1 {
		leafMax = 1
	}
	f := &Forest[T]{
		data:    data,
		leafMax: leafMax,
		workers: p.BuildWorkers,
		seed:    p.Seed,
		trees:   make([]*randomTree, p.Trees),
	}
	return f, nil
}

// Build implements index.Structure.
func (f *Forest[T]) Build() error {
	ids := f.data.LiveIDs()
	tasks := make([]func() error, len(f.trees))
	for i := range f.trees {
		tasks[i] = func() error {
			t := &randomTree{rng: rand.New(rand.NewSource(f.seed + int64(i)))}
			t.root = f.divide(t.rng, slices.Clone(ids))
			f.trees[i] = t
			return nil
		}
	}
	return index.BuildAll(f.workers, tasks...)
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

func (f *Forest[T]) insert(t *randomTree, id uint32) {
	if t.root == nil {
		t.root = &node{ids: []uint32{id}}
		return
	}
	v := f.data.Vector(id)
	n := t.root
	for !n.leaf() {
		if v[n.dim] < n.val {
			n = n.left
		} else {
			n = n.right
		}
	}
	n.ids = append(n.ids, id)
	if len(n.ids) > f.leafMax {
		*n = *f.divide(t.rng, n.ids)
	}
}

func (f *Forest[T]) coord(id uint32, dim int) float64 { return f.data.Vector(id)[dim] }

func (f *Forest[T]) divide(rng *rand.Rand, ids []uint32) *node {
	if len(ids) <= f.leafMax {
		return &node{ids: ids}
	}

	dim, val, ok := f.meanSplit(rng, ids)
	if !ok {
		return &node{ids: ids}
	}
	lim1, lim2 := partition(ids, f.coord, dim, val)
	cut := splitIndex(lim1, lim2, len(ids))
	if cut == 0 || cut == len(ids) {
		return &node{ids: ids}
	}

	return &node{
		dim:   dim,
		val:   val,
		left:  f.divide(rng, ids[:cut:cut]),
		right: f.divide(rng, ids[cut:]),
	}
}

// meanSplit picks a random dimension among the highest-variance ones of a
// sample and splits at its mean. It reports false when all sampled points
// coincide.
func (f *Forest[T]) meanSplit(rng *rand.Rand, ids []uint32) (int, float64, bool) {
	dim := f.data.Dimension()
	n := min(len(ids), sampleMean)

	mean := make([]float64, dim)
	for _, id := range ids[:n] {
		for d, x := range f.data.Vector(id) {
			mean[d] += x
		}
	}
	for d := range mean {
		mean[d] /= float64(n)
	}

	variance := make([]float64, dim)
	for _, id := range ids[:n] {
		for d, x := range f.data.Vector(id) {
			diff := x - mean[d]
			variance[d] += diff * diff
		}
	}

	order := make([]int, dim)
	for d := range order {
		order[d] = d
	}
	sort.SliceStable(order, func(i, j int) bool { return variance[order[i]] > variance[order[j]] })

	top := min(randDim, dim)
	for top > 1 && variance[order[top-1]] == 0 {
		top--
	}
	if variance[order[0]] == 0 {
		return 0, 0, false
	}
	d := order[rng.Intn(top)]
	return d, mean[d], true
}

type branch struct {
	node    *node
	mindist float64
}

// Search implements index.Structure.
func (f *Forest[T]) Search(q *index.Query[T], c index.Collector) {
	eps := q.EpsFactor() * q.EpsFactor()
	var branches []branch
	heap := queue.NewMin(64)

	for _, t := range f.trees {
		if t.root != nil {
			f.searchLevel(q, c, t.root, 0, eps, heap, &branches)
		}
	}
	for !q.Exhausted(c) {
		item, ok := heap.PopItem()
		if !ok {
			return
		}
		f.searchLevel(q, c, branches[item.ID].node, item.Distance, eps, heap, &branches)
	}
}

func (f *Forest[T]) searchLevel(q *index.Query[T], c index.Collector, n *node, mindist, eps float64, heap *queue.PriorityQueue, branches *[]branch) {
	for {
		worst := squared(c.WorstDistance())
		if mindist > worst {
			return
		}
		if n.leaf() {
			for _, id := range n.ids {
				if q.Exhausted(c) {
					return
				}
				f.data.Check(q, id, c)
			}
			return
		}

		diff := q.Coords[n.dim] - n.val
		best, other := n.left, n.right
		if diff >= 0 {
			best, other = n.right, n.left
		}

		newDist := math.Max(mindist, diff*diff)
		if newDist*eps <= worst || !c.Full() {
			*branches = append(*branches, branch{node: other, mindist: newDist})
			heap.PushItem(queue.Item{ID: uint32(len(*branches) - 1), Distance: newDist})
		}
		n = best
	}
}

func squared(d float64) float64 {
	if math.IsInf(d, 1) {
		return d
	}
	return d * d
}
