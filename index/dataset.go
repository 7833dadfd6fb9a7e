package index

import (
	"math"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/nearest/distance"
	"github.com/hupe1980/nearest/internal/conv"
	"github.com/hupe1980/nearest/internal/vectorstore"
)

// Dataset holds the points of one index: the elements, their coordinates on
// the Euclidean fast path, and the set of removed IDs.
//
// Point IDs are positions in insertion order and stay stable until the index
// is rebuilt. Removal is a soft delete; structures skip removed IDs.
type Dataset[T any] struct {
	points   []T
	capacity int
	metric   Metric[T]
	vectors  VectorMetric[T]
	coords   *vectorstore.Columnar
	removed  *roaring.Bitmap
}

// NewDataset creates a dataset seeded with points. capacity is raised to
// len(points) when smaller.
func NewDataset[T any](points []T, capacity int, metric Metric[T]) (*Dataset[T], error) {
	if metric == nil {
		return nil, &ErrInvalidParams{Field: "Metric", Value: nil, Reason: "metric is required"}
	}
	if capacity < len(points) {
		capacity = len(points)
	}

	d := &Dataset[T]{
		points:   make([]T, 0, capacity),
		capacity: capacity,
		metric:   metric,
		removed:  roaring.New(),
	}
	if vm, ok := metric.(VectorMetric[T]); ok {
		d.vectors = vm
		if dim := vm.Dimension(); dim > 0 {
			d.coords = vectorstore.New(dim, capacity)
		}
	}

	if _, err := d.Append(points); err != nil {
		return nil, err
	}
	return d, nil
}

// Append adds points and returns the ID of the first one. It fails with
// *ErrDimensionMismatch when a point has the wrong dimension, and with
// *ErrCapacity when the dataset would exceed its capacity. On error no
// point is added.
func (d *Dataset[T]) Append(points []T) (uint32, error) {
	first, err := conv.ToID(len(d.points))
	if err != nil {
		return 0, err
	}
	if len(points) == 0 {
		return first, nil
	}

	dim := 0
	if d.vectors != nil {
		if d.coords != nil {
			dim = d.coords.Dimension()
		} else {
			dim = len(d.vectors.Coordinates(points[0]))
			if dim == 0 {
				return 0, &ErrDimensionMismatch{Expected: 1, Actual: 0}
			}
		}
		for _, p := range points {
			if n := len(d.vectors.Coordinates(p)); n != dim {
				return 0, &ErrDimensionMismatch{Expected: dim, Actual: n}
			}
		}
	}

	requested := len(d.points) + len(points)
	if requested > d.capacity {
		return 0, &ErrCapacity{Capacity: d.capacity, Requested: requested}
	}
	if _, err := conv.ToID(requested); err != nil {
		return 0, err
	}

	if d.vectors != nil {
		if d.coords == nil {
			d.coords = vectorstore.New(dim, d.capacity)
		}
		for _, p := range points {
			// Dimension was validated above.
			_, _ = d.coords.Append(d.vectors.Coordinates(p))
		}
	}

	d.points = append(d.points, points...)
	return first, nil
}

// Len returns the number of IDs handed out, including removed ones.
func (d *Dataset[T]) Len() int { return len(d.points) }

// Size returns the number of live points.
func (d *Dataset[T]) Size() int {
	return len(d.points) - int(d.removed.GetCardinality())
}

// Capacity returns the maximum number of points.
func (d *Dataset[T]) Capacity() int { return d.capacity }

// Dimension returns the coordinate dimension, or 0 on the comparator path
// (or before the first point when the dimension is inferred).
func (d *Dataset[T]) Dimension() int {
	if d.coords == nil {
		return 0
	}
	return d.coords.Dimension()
}

// HasVectors reports whether the dataset runs on the Euclidean fast path.
func (d *Dataset[T]) HasVectors() bool { return d.vectors != nil }

// Metric returns the dataset metric.
func (d *Dataset[T]) Metric() Metric[T] { return d.metric }

// At returns the element stored under id without checks.
func (d *Dataset[T]) At(id uint32) T { return d.points[id] }

// Vector returns the coordinates of id. Only valid when HasVectors is true.
func (d *Dataset[T]) Vector(id uint32) []float64 { return d.coords.Vector(int(id)) }

// Point returns the element stored under id.
func (d *Dataset[T]) Point(id uint32) (T, error) {
	if int(id) >= len(d.points) || d.removed.Contains(id) {
		var zero T
		return zero, &ErrPointNotFound{ID: id}
	}
	return d.points[id], nil
}

// IsRemoved reports whether id has been removed.
func (d *Dataset[T]) IsRemoved(id uint32) bool { return d.removed.Contains(id) }

// Remove marks id as removed.
func (d *Dataset[T]) Remove(id uint32) error {
	if int(id) >= len(d.points) || !d.removed.CheckedAdd(id) {
		return &ErrPointNotFound{ID: id}
	}
	return nil
}

// LiveIDs returns the IDs of all live points in ascending order.
func (d *Dataset[T]) LiveIDs() []uint32 {
	ids := make([]uint32, 0, d.Size())
	for i := range d.points {
		id := uint32(i)
		if !d.removed.Contains(id) {
			ids = append(ids, id)
		}
	}
	return ids
}

// Points returns the live elements in ID order.
func (d *Dataset[T]) Points() []T {
	out := make([]T, 0, d.Size())
	for i, p := range d.points {
		if !d.removed.Contains(uint32(i)) {
			out = append(out, p)
		}
	}
	return out
}

// Between returns the distance between two stored points.
func (d *Dataset[T]) Between(a, b uint32) float64 {
	if d.coords != nil {
		return math.Sqrt(distance.SquaredL2(d.Vector(a), d.Vector(b)))
	}
	return d.metric.Distance(d.points[a], d.points[b])
}

// Distance returns the distance between the query and a stored point.
func (d *Dataset[T]) Distance(q *Query[T], id uint32) float64 {
	if q.Coords != nil {
		return math.Sqrt(distance.SquaredL2(q.Coords, d.Vector(id)))
	}
	return d.metric.Distance(q.Elem, d.points[id])
}

// Check scores id against the query and offers it to c. Each point is
// scored at most once per query and removed points are skipped.
func (d *Dataset[T]) Check(q *Query[T], id uint32, c Collector) {
	if q.checked.Visit(id) || d.removed.Contains(id) {
		return
	}
	q.checks++
	c.Add(id, d.Distance(q, id))
}

// NewQuery prepares x for searching this dataset.
func (d *Dataset[T]) NewQuery(x T, sp SearchParams) (*Query[T], error) {
	q := newQuery(x, sp, len(d.points))
	if d.vectors != nil {
		coords := d.vectors.Coordinates(x)
		if dim := d.Dimension(); dim > 0 && len(coords) != dim {
			return nil, &ErrDimensionMismatch{Expected: dim, Actual: len(coords)}
		}
		q.Coords = coords
	}
	return q, nil
}
