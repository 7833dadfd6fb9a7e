package kdtree

import (
	"github.com/hupe1980/nearest/index"
)

// Compile-time check to ensure Single satisfies the Structure interface.
var _ index.Structure[[]float64] = (*Single[[]float64])(nil)

// Single is one kd-tree split at the middle of the widest dimension.
type Single[T any] struct {
	data    *index.Dataset[T]
	leafMax int
	root    *node
	low     []float64
	high    []float64
}

// NewSingle creates a single kd-tree over data. It is built by Build.
func NewSingle[T any](data *index.Dataset[T], p index.Params) (*Single[T], error) {
	if !data.HasVectors() {
		return nil, index.ErrVectorMetricRequired
	}
	leafMax := p.LeafMaxSize
	if leafMax < 1 {
		leafMax = 1
	}
	return &Single[T]{data: data, leafMax: leafMax}, nil
}

// Build implements index.Structure.
func (s *Single[T]) Build() error {
	ids := s.data.LiveIDs()
	if len(ids) == 0 {
		s.root, s.low, s.high = &node{}, nil, nil
		return nil
	}
	s.low, s.high = s.bounds(ids)
	s.root = s.divide(ids, s.low, s.high)
	return nil
}

// bounds returns the bounding box of ids.
func (s *Single[T]) bounds(ids []uint32) ([]float64, []float64) {
	first := s.data.Vector(ids[0])
	low := append([]float64(nil), first...)
	high := append([]float64(nil), first...)
	for _, id := range ids[1:] {
		for d, x := range s.data.Vector(id) {
			low[d] = min(low[d], x)
			high[d] = max(high[d], x)
		}
	}
	return low, high
}

func (s *Single[T]) divide(ids []uint32, low, high []float64) *node {
	if len(ids) <= s.leafMax {
		return &node{ids: ids}
	}

	dim := 0
	spread := high[0] - low[0]
	for d := 1; d < len(low); d++ {
		if w := high[d] - low[d]; w > spread {
			dim, spread = d, w
		}
	}
	if spread == 0 {
		return &node{ids: ids}
	}

	val := (low[dim] + high[dim]) / 2
	lim1, lim2 := partition(ids, s.coord, dim, val)
	cut := splitIndex(lim1, lim2, len(ids))
	if cut == 0 || cut == len(ids) {
		return &node{ids: ids}
	}

	left, right := ids[:cut:cut], ids[cut:]
	leftLow, leftHigh := s.bounds(left)
	rightLow, rightHigh := s.bounds(right)

	return &node{
		dim:   dim,
		val:   val,
		low:   leftHigh[dim],
		high:  rightLow[dim],
		left:  s.divide(left, leftLow, leftHigh),
		right: s.divide(right, rightLow, rightHigh),
	}
}

func (s *Single[T]) coord(id uint32, dim int) float64 { return s.data.Vector(id)[dim] }

// Insert implements index.Structure.
func (s *Single[T]) Insert(ids []uint32) error {
	for _, id := range ids {
		s.insert(id)
	}
	return nil
}

func (s *Single[T]) insert(id uint32) {
	v := s.data.Vector(id)
	if s.root == nil || s.low == nil {
		s.low = append([]float64(nil), v...)
		s.high = append([]float64(nil), v...)
		s.root = &node{ids: []uint32{id}}
		return
	}
	for d, x := range v {
		s.low[d] = min(s.low[d], x)
		s.high[d] = max(s.high[d], x)
	}

	n := s.root
	for !n.leaf() {
		x := v[n.dim]
		if x-n.low+x-n.high < 0 {
			n.low = max(n.low, x)
			n = n.left
		} else {
			n.high = min(n.high, x)
			n = n.right
		}
	}
	n.ids = append(n.ids, id)
	if len(n.ids) > s.leafMax {
		low, high := s.bounds(n.ids)
		*n = *s.divide(n.ids, low, high)
	}
}

// Search implements index.Structure. The search is exact up to the Eps
// factor and ignores the check budget.
func (s *Single[T]) Search(q *index.Query[T], c index.Collector) {
	if s.root == nil || s.low == nil {
		return
	}

	dists := make([]float64, len(s.low))
	var mindist float64
	for d, x := range q.Coords {
		switch {
		case x < s.low[d]:
			dists[d] = (x - s.low[d]) * (x - s.low[d])
		case x > s.high[d]:
			dists[d] = (x - s.high[d]) * (x - s.high[d])
		}
		mindist += dists[d]
	}

	eps := q.EpsFactor() * q.EpsFactor()
	s.searchLevel(q, c, s.root, mindist, dists, eps)
}

func (s *Single[T]) searchLevel(q *index.Query[T], c index.Collector, n *node, mindist float64, dists []float64, eps float64) {
	if n.leaf() {
		for _, id := range n.ids {
			s.data.Check(q, id, c)
		}
		return
	}

	x := q.Coords[n.dim]
	diff1, diff2 := x-n.low, x-n.high

	var best, other *node
	var cut float64
	if diff1+diff2 < 0 {
		best, other = n.left, n.right
		cut = diff2 * diff2
	} else {
		best, other = n.right, n.left
		cut = diff1 * diff1
	}

	s.searchLevel(q, c, best, mindist, dists, eps)

	saved := dists[n.dim]
	mindist += cut - saved
	dists[n.dim] = cut
	if mindist*eps <= squared(c.WorstDistance()) {
		s.searchLevel(q, c, other, mindist, dists, eps)
	}
	dists[n.dim] = saved
}
