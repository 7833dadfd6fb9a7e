package index

import (
	"github.com/hupe1980/nearest/distance"
)

// Metric computes the distance between two elements.
type Metric[T any] interface {
	Distance(a, b T) float64
}

// Func adapts a plain distance function to the Metric interface.
// Every comparison goes through the function value.
type Func[T any] func(a, b T) float64

// Distance implements Metric.
func (f Func[T]) Distance(a, b T) float64 { return f(a, b) }

// VectorMetric is a metric over flat numeric coordinates. Backends that see
// a VectorMetric project every point once and score coordinates directly.
type VectorMetric[T any] interface {
	Metric[T]

	// Coordinates projects x onto its coordinates. The result may alias x.
	Coordinates(x T) []float64

	// Dimension returns the configured dimension, or 0 when it is inferred
	// from the first point.
	Dimension() int
}

// Vector is implemented by element types that carry flat coordinates.
type Vector interface {
	Coords() []float64
}

// Coordinates projects an element onto flat coordinates.
type Coordinates[T any] func(x T) []float64

// CoordinatesOf resolves whether T is a flat numeric vector: float64,
// float32 or int scalars, []float64, []float32, or a type implementing Vector.
func CoordinatesOf[T any]() (Coordinates[T], bool) {
	var zero T

	switch any(zero).(type) {
	case float64:
		return func(x T) []float64 { return []float64{any(x).(float64)} }, true
	case float32:
		return func(x T) []float64 { return []float64{float64(any(x).(float32))} }, true
	case int:
		return func(x T) []float64 { return []float64{float64(any(x).(int))} }, true
	case []float64:
		return func(x T) []float64 { return any(x).([]float64) }, true
	case []float32:
		return func(x T) []float64 {
			v := any(x).([]float32)
			out := make([]float64, len(v))
			for i, f := range v {
				out[i] = float64(f)
			}
			return out
		}, true
	}

	if _, ok := any(zero).(Vector); ok {
		return func(x T) []float64 { return any(x).(Vector).Coords() }, true
	}

	return nil, false
}

// Euclidean is the native L2 metric for elements with coordinates.
type Euclidean[T any] struct {
	coords Coordinates[T]
	dim    int
}

// Compile-time check to ensure Euclidean satisfies VectorMetric.
var _ VectorMetric[[]float64] = (*Euclidean[[]float64])(nil)

// NewEuclidean returns the Euclidean metric for T. dim may be 0 to infer the
// dimension from the first point. It fails with ErrNotVector when T exposes
// no coordinates.
func NewEuclidean[T any](dim int) (*Euclidean[T], error) {
	coords, ok := CoordinatesOf[T]()
	if !ok {
		return nil, ErrNotVector
	}
	if dim < 0 {
		return nil, &ErrInvalidParams{Field: "Dimension", Value: dim, Reason: "must not be negative"}
	}
	return &Euclidean[T]{coords: coords, dim: dim}, nil
}

// Distance implements Metric.
func (e *Euclidean[T]) Distance(a, b T) float64 {
	return distance.L2(e.coords(a), e.coords(b))
}

// Coordinates implements VectorMetric.
func (e *Euclidean[T]) Coordinates(x T) []float64 { return e.coords(x) }

// Dimension implements VectorMetric.
func (e *Euclidean[T]) Dimension() int { return e.dim }
