package index

// SearchResult represents a search result.
type SearchResult struct {
	// ID is the point ID, stable until the index is rebuilt.
	ID uint32

	// Distance is the distance between the query and the point.
	Distance float64
}

// Index is a built spatial index over elements of type T.
type Index[T any] interface {
	// Name returns the index kind name.
	Name() string

	// AddPoints inserts points incrementally. It fails with *ErrCapacity when
	// the index would exceed its capacity.
	AddPoints(points []T) error

	// KNNSearch returns up to k nearest points in ascending distance order.
	KNNSearch(q T, k int, sp SearchParams) ([]SearchResult, error)

	// RadiusSearch returns the points within radius (inclusive). Results are
	// in ascending distance order when sp.Sorted is set.
	RadiusSearch(q T, radius float64, sp SearchParams) ([]SearchResult, error)

	// RemovePoint removes a point from the index.
	RemovePoint(id uint32) error

	// Point returns the element stored under id.
	Point(id uint32) (T, error)

	// Size returns the number of live points.
	Size() int

	// Capacity returns the number of points the index can hold without a rebuild.
	Capacity() int
}

// Enumerator is implemented by indexes that can list their live points
// exactly, independent of any search approximation.
type Enumerator[T any] interface {
	Points() []T
}

// Builder constructs an index from points, a capacity, a parameter set and a metric.
type Builder[T any] func(points []T, capacity int, params Params, metric Metric[T]) (Index[T], error)

// Collector receives candidate points during a search.
type Collector interface {
	// Add offers a candidate point.
	Add(id uint32, dist float64)
	// WorstDistance is the current pruning bound.
	WorstDistance() float64
	// Full reports whether the collector holds all the results it needs.
	Full() bool
}
