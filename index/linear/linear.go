// Package linear provides an exhaustive scan structure.
//
// Linear scores every live point on every query. It is exact for any metric
// and ignores the check budget; it is the reference the tree structures are
// tested against.
package linear

import "github.com/hupe1980/nearest/index"

// Compile-time check to ensure Scan satisfies the Structure interface.
var _ index.Structure[int] = (*Scan[int])(nil)

// Scan is a brute-force structure over a dataset.
type Scan[T any] struct {
	data *index.Dataset[T]
}

// New creates a scan over data.
func New[T any](data *index.Dataset[T]) *Scan[T] {
	return &Scan[T]{data: data}
}

// Build implements index.Structure. A scan has nothing to build.
func (s *Scan[T]) Build() error { return nil }

// Insert implements index.Structure.
func (s *Scan[T]) Insert([]uint32) error { return nil }

// Search implements index.Structure.
func (s *Scan[T]) Search(q *index.Query[T], c index.Collector) {
	for i := 0; i < s.data.Len(); i++ {
		s.data.Check(q, uint32(i), c)
	}
}
