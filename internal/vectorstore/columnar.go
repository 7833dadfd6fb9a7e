package vectorstore

import (
	"errors"
	"fmt"
)

// ErrWrongDimension is returned when a vector does not match the store dimension.
var ErrWrongDimension = errors.New("vector dimension does not match store dimension")

// Columnar is an append-only store of fixed-dimension float64 vectors.
type Columnar struct {
	dim  int
	data []float64
}

// New creates a store for dim-dimensional vectors with room for capacity
// vectors before reallocating. A non-positive dim is treated as 1.
func New(dim, capacity int) *Columnar {
	if dim <= 0 {
		dim = 1
	}
	if capacity < 0 {
		capacity = 0
	}
	return &Columnar{
		dim:  dim,
		data: make([]float64, 0, capacity*dim),
	}
}

// Dimension returns the vector dimensionality.
func (s *Columnar) Dimension() int { return s.dim }

// Count returns the number of stored vectors.
func (s *Columnar) Count() int { return len(s.data) / s.dim }

// Append copies v into the store and returns its position.
func (s *Columnar) Append(v []float64) (int, error) {
	if len(v) != s.dim {
		return 0, fmt.Errorf("%w: expected %d, got %d", ErrWrongDimension, s.dim, len(v))
	}
	id := s.Count()
	s.data = append(s.data, v...)
	return id, nil
}

// Vector returns the vector at position id.
// The returned slice aliases internal memory; do not modify.
func (s *Columnar) Vector(id int) []float64 {
	start := id * s.dim
	end := start + s.dim
	return s.data[start:end:end]
}

// Data returns the raw backing slice.
func (s *Columnar) Data() []float64 { return s.data }
