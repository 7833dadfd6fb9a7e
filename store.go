package nearest

import (
	"errors"
	"reflect"
	"time"

	"github.com/hupe1980/nearest/engine"
	"github.com/hupe1980/nearest/index"
)

// DistanceFunc computes a symmetric distance between two elements.
type DistanceFunc[T any] func(a, b T) float64

// Neighbor is a query result with its distance to the query.
type Neighbor[T any] struct {
	Element  T
	Distance float64
}

// Store is a mutable nearest neighbor set over a build-once index.
//
// The index, when present, holds exactly the elements of the buffer. It is
// built with the buffer's capacity, so incremental inserts never exceed the
// index capacity: the store rebuilds with a doubled capacity first.
type Store[T any] struct {
	data    []T
	idx     index.Index[T]
	dist    DistanceFunc[T] // nil selects the native Euclidean metric
	coords  index.Coordinates[T]
	dim     int
	params  index.Params
	search  index.SearchParams
	equal   func(a, b T) bool
	builder index.Builder[T]
	logger  *Logger
	metrics MetricsCollector
}

// New creates an empty store building indexes with params.
func New[T any](params index.Params, optFns ...Option) (*Store[T], error) {
	o := applyOptions(optFns)

	s := &Store[T]{
		dim:     o.dimension,
		search:  index.DefaultSearchParams(),
		builder: engine.Build[T],
		metrics: o.metricsCollector,
	}
	s.coords, _ = index.CoordinatesOf[T]()

	for _, fn := range o.tune {
		fn(&params)
	}
	if o.searchParams != nil {
		s.search = *o.searchParams
	}

	if o.dist != nil {
		dist, ok := o.dist.(DistanceFunc[T])
		if !ok {
			return nil, ErrOptionType
		}
		s.dist = dist
	}
	if o.equal != nil {
		equal, ok := o.equal.(func(a, b T) bool)
		if !ok {
			return nil, ErrOptionType
		}
		s.equal = equal
	} else {
		s.equal = defaultEqual[T]
	}
	if o.builder != nil {
		builder, ok := o.builder.(index.Builder[T])
		if !ok {
			return nil, ErrOptionType
		}
		s.builder = builder
	}

	if err := s.check(params, s.dist); err != nil {
		return nil, buildError(params.Kind, "new", err)
	}
	s.params = params
	s.logger = o.logger.WithKind(params.Kind)

	return s, nil
}

// check reports whether an index of kind p can be built with dist.
func (s *Store[T]) check(p index.Params, dist DistanceFunc[T]) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if dist == nil && s.coords == nil {
		return index.ErrNotVector
	}
	if dist != nil && p.Kind.RequiresVectors() {
		return index.ErrVectorMetricRequired
	}
	if s.dim < 0 {
		return &index.ErrInvalidParams{Field: "Dimension", Value: s.dim, Reason: "must not be negative"}
	}
	return nil
}

// Add inserts x.
func (s *Store[T]) Add(x T) error {
	start := time.Now()
	err := s.add([]T{x}, max(2*cap(s.data), 1))
	s.logger.LogAdd(1, s.Size(), err)
	s.metrics.RecordAdd(1, time.Since(start), err)
	return err
}

// AddAll inserts xs. The buffer grows to at least twice its old length
// with a single rebuild.
func (s *Store[T]) AddAll(xs []T) error {
	if len(xs) == 0 {
		return nil
	}
	start := time.Now()
	err := s.add(xs, max(2*len(s.data), len(s.data)+len(xs)))
	s.logger.LogAdd(len(xs), s.Size(), err)
	s.metrics.RecordAdd(len(xs), time.Since(start), err)
	return err
}

func (s *Store[T]) add(xs []T, grow int) error {
	if s.idx == nil {
		return s.seed(xs)
	}

	if len(s.data)+len(xs) > cap(s.data) {
		if err := s.checkDimension(xs); err != nil {
			return err
		}
		if err := s.rebuildIndex(grow, "grow"); err != nil {
			return err
		}
		if s.idx == nil {
			return s.seed(xs)
		}
	}

	if err := s.idx.AddPoints(xs); err != nil {
		var capErr *index.ErrCapacity
		if errors.As(err, &capErr) {
			return s.regrow(xs)
		}
		return translateError(err)
	}
	s.data = append(s.data, xs...)
	return nil
}

// checkDimension reports the first element of xs whose coordinate count
// differs from the stored elements on the Euclidean fast path.
func (s *Store[T]) checkDimension(xs []T) error {
	if s.dist != nil || s.coords == nil || len(s.data) == 0 {
		return nil
	}
	dim := s.dim
	if dim == 0 {
		dim = len(s.coords(s.data[0]))
	}
	for _, x := range xs {
		if n := len(s.coords(x)); n != dim {
			return &ErrDimensionMismatch{Expected: dim, Actual: n}
		}
	}
	return nil
}

// regrow rebuilds the index over the current contents plus xs. It serves
// engines whose capacity falls short of the buffer.
func (s *Store[T]) regrow(xs []T) error {
	start := time.Now()

	items, err := s.list()
	if err != nil {
		return s.abortRebuild("capacity", start, err)
	}
	items = append(items, xs...)
	s.release()
	if need := 2 * len(items); need > cap(s.data) {
		s.data = make([]T, 0, need)
	}
	s.data = append(s.data, items...)
	err = s.createIndex()
	if err != nil {
		s.release()
	}
	s.logger.LogRebuild("capacity", len(items), cap(s.data), err)
	s.metrics.RecordRebuild(len(items), time.Since(start), err)
	return err
}

// seed appends xs to the buffer and builds a fresh index from all of it.
// On failure the buffer is rolled back.
func (s *Store[T]) seed(xs []T) error {
	n := len(s.data)
	s.data = append(s.data, xs...)
	if err := s.createIndex(); err != nil {
		clear(s.data[n:])
		s.data = s.data[:n]
		s.logger.LogBuildFailure(len(xs), err)
		return err
	}
	return nil
}

// createIndex builds the index over the whole buffer.
func (s *Store[T]) createIndex() error {
	metric, err := s.metric()
	if err != nil {
		return buildError(s.params.Kind, "create", err)
	}
	idx, err := s.builder(s.data, cap(s.data), s.params, metric)
	if err != nil {
		return buildError(s.params.Kind, "create", err)
	}
	s.idx = idx
	return nil
}

// metric returns the metric handed to the engine. Without a distance
// function the engine gets the native Euclidean metric and scores
// coordinates directly.
func (s *Store[T]) metric() (index.Metric[T], error) {
	if s.dist == nil {
		return index.NewEuclidean[T](s.dim)
	}
	return index.Func[T](s.dist), nil
}

// rebuildIndex rebuilds the index from the current contents, reserving
// capacity elements when larger than the current capacity. It is a no-op
// without an index. A failed rebuild leaves the store empty.
func (s *Store[T]) rebuildIndex(capacity int, reason string) error {
	if s.idx == nil {
		return nil
	}
	start := time.Now()

	items, err := s.list()
	if err != nil {
		return s.abortRebuild(reason, start, err)
	}
	s.release()
	if capacity > cap(s.data) {
		s.data = make([]T, 0, capacity)
	}
	if len(items) == 0 {
		s.logger.LogRebuild(reason, 0, cap(s.data), nil)
		s.metrics.RecordRebuild(0, time.Since(start), nil)
		return nil
	}

	s.data = append(s.data, items...)
	err = s.createIndex()
	if err != nil {
		s.release()
	}
	s.logger.LogRebuild(reason, len(items), cap(s.data), err)
	s.metrics.RecordRebuild(len(items), time.Since(start), err)
	return err
}

// abortRebuild handles a rebuild whose contents could not be enumerated.
// The index may already disagree with the buffer, so the store is emptied.
func (s *Store[T]) abortRebuild(reason string, start time.Time, err error) error {
	lost := s.Size()
	s.release()
	err = buildError(s.params.Kind, "list", err)
	s.logger.LogRebuild(reason, lost, cap(s.data), err)
	s.metrics.RecordRebuild(lost, time.Since(start), err)
	return err
}

// release drops the index and empties the buffer, keeping its capacity.
func (s *Store[T]) release() {
	s.idx = nil
	clear(s.data)
	s.data = s.data[:0]
}

// Remove removes the stored element closest to x if it is equal to x. It
// reports false when the store is empty or the closest element differs from
// x. Every successful removal rebuilds the index; if that rebuild fails the
// store is left empty and the error is returned.
func (s *Store[T]) Remove(x T) (bool, error) {
	start := time.Now()
	removed, err := s.remove(x)
	s.logger.LogRemove(removed, s.Size(), err)
	s.metrics.RecordRemove(removed, time.Since(start), err)
	return removed, err
}

func (s *Store[T]) remove(x T) (bool, error) {
	if s.idx == nil || s.idx.Size() == 0 {
		return false, nil
	}
	res, err := s.idx.KNNSearch(x, 1, s.search)
	if err != nil {
		return false, translateError(err)
	}
	if len(res) == 0 {
		return false, nil
	}
	got, err := s.idx.Point(res[0].ID)
	if err != nil {
		return false, translateError(err)
	}
	if !s.equal(got, x) {
		return false, nil
	}
	if err := s.idx.RemovePoint(res[0].ID); err != nil {
		return false, translateError(err)
	}
	return true, s.rebuildIndex(0, "remove")
}

// Nearest returns the stored element closest to x. It fails with
// ErrEmptyStore when the store is empty.
func (s *Store[T]) Nearest(x T) (T, error) {
	var zero T
	if s.Size() == 0 {
		return zero, ErrEmptyStore
	}
	res, err := s.knn("nearest", x, 1)
	if err != nil {
		return zero, err
	}
	if len(res) == 0 {
		return zero, ErrEmptyStore
	}
	return res[0].Element, nil
}

// NearestK returns up to k elements closest to x in ascending distance.
// k is capped at Size.
func (s *Store[T]) NearestK(x T, k int) ([]T, error) {
	res, err := s.knn("nearestK", x, k)
	if err != nil {
		return nil, err
	}
	return elements(res), nil
}

// NearestKWithDistances is NearestK with the distance of every result.
func (s *Store[T]) NearestKWithDistances(x T, k int) ([]Neighbor[T], error) {
	return s.knn("nearestK", x, k)
}

func (s *Store[T]) knn(op string, x T, k int) (res []Neighbor[T], err error) {
	start := time.Now()
	defer func() {
		s.logger.LogSearch(op, k, len(res), err)
		s.metrics.RecordSearch(k, time.Since(start), err)
	}()

	if k <= 0 {
		return nil, ErrInvalidK
	}
	if s.idx == nil {
		return []Neighbor[T]{}, nil
	}
	found, err := s.idx.KNNSearch(x, k, s.search)
	if err != nil {
		return nil, translateError(err)
	}
	return s.resolve(found)
}

// NearestR returns the elements within radius of x, bounds included. They
// are in ascending distance when the search params request sorted results.
func (s *Store[T]) NearestR(x T, radius float64) ([]T, error) {
	res, err := s.NearestRWithDistances(x, radius)
	if err != nil {
		return nil, err
	}
	return elements(res), nil
}

// NearestRWithDistances is NearestR with the distance of every result.
func (s *Store[T]) NearestRWithDistances(x T, radius float64) (res []Neighbor[T], err error) {
	start := time.Now()
	defer func() {
		s.logger.LogSearch("nearestR", 0, len(res), err)
		s.metrics.RecordSearch(0, time.Since(start), err)
	}()

	if s.idx == nil || radius < 0 {
		return []Neighbor[T]{}, nil
	}
	found, err := s.idx.RadiusSearch(x, radius, s.search)
	if err != nil {
		return nil, translateError(err)
	}
	return s.resolve(found)
}

func (s *Store[T]) resolve(found []index.SearchResult) ([]Neighbor[T], error) {
	out := make([]Neighbor[T], len(found))
	for i, r := range found {
		p, err := s.idx.Point(r.ID)
		if err != nil {
			return nil, translateError(err)
		}
		out[i] = Neighbor[T]{Element: p, Distance: r.Distance}
	}
	return out, nil
}

func elements[T any](ns []Neighbor[T]) []T {
	out := make([]T, len(ns))
	for i, n := range ns {
		out[i] = n.Element
	}
	return out
}

// Size returns the number of stored elements.
func (s *Store[T]) Size() int {
	if s.idx == nil {
		return 0
	}
	return s.idx.Size()
}

// Capacity returns the buffer capacity the index was built with.
func (s *Store[T]) Capacity() int { return cap(s.data) }

// List returns every stored element exactly once, in no guaranteed order.
//
// Engines implementing index.Enumerator list their points directly. For
// other engines List runs an exhaustive k-NN query over the whole store
// anchored at a stored element. If that query fails, List logs the error
// and returns an empty slice.
func (s *Store[T]) List() []T {
	items, err := s.list()
	if err != nil {
		s.logger.Error("list failed", "error", err)
		return []T{}
	}
	return items
}

func (s *Store[T]) list() ([]T, error) {
	if s.idx == nil || s.idx.Size() == 0 {
		return []T{}, nil
	}
	if e, ok := s.idx.(index.Enumerator[T]); ok {
		return e.Points(), nil
	}

	sp := s.search
	sp.Checks = index.CheckUnlimited
	sp.Eps = 0
	found, err := s.idx.KNNSearch(s.data[0], s.idx.Size(), sp)
	if err != nil {
		return nil, translateError(err)
	}
	res, err := s.resolve(found)
	if err != nil {
		return nil, err
	}
	return elements(res), nil
}

// SetDistanceFunc replaces the distance function and rebuilds the index.
// A nil fn selects the Euclidean distance.
func (s *Store[T]) SetDistanceFunc(fn DistanceFunc[T]) error {
	if err := s.check(s.params, fn); err != nil {
		return buildError(s.params.Kind, "set distance", err)
	}
	s.dist = fn
	return s.rebuildIndex(0, "distance")
}

// DistanceFunc returns the active distance function.
func (s *Store[T]) DistanceFunc() DistanceFunc[T] {
	if s.dist != nil {
		return s.dist
	}
	e, err := index.NewEuclidean[T](s.dim)
	if err != nil {
		return nil
	}
	return e.Distance
}

// SetIndexParams replaces the index configuration and rebuilds the index.
func (s *Store[T]) SetIndexParams(p index.Params) error {
	if err := s.check(p, s.dist); err != nil {
		return buildError(p.Kind, "set params", err)
	}
	s.params = p
	return s.rebuildIndex(0, "params")
}

// IndexParams returns the active index configuration.
func (s *Store[T]) IndexParams() index.Params { return s.params }

// SetSearchParams replaces the search parameters. The index stays valid.
func (s *Store[T]) SetSearchParams(sp index.SearchParams) { s.search = sp }

// SearchParams returns the active search parameters.
func (s *Store[T]) SearchParams() index.SearchParams { return s.search }

// ReportsSortedResults reports whether radius results come sorted by
// distance. k-NN results are always sorted.
func (s *Store[T]) ReportsSortedResults() bool { return s.search.Sorted }

// Dimension returns the number of coordinates per element on the Euclidean
// fast path. It is 1 when elements are compared whole.
func (s *Store[T]) Dimension() int {
	if s.dim > 0 {
		return s.dim
	}
	if s.dist == nil && s.coords != nil && len(s.data) > 0 {
		if n := len(s.coords(s.data[0])); n > 0 {
			return n
		}
	}
	return 1
}

// Clear removes all elements and releases the index. The buffer keeps its
// capacity.
func (s *Store[T]) Clear() {
	s.release()
	s.logger.Debug("store cleared", "capacity", cap(s.data))
}

func defaultEqual[T any](a, b T) bool {
	if e, ok := any(a).(interface{ Equal(T) bool }); ok {
		return e.Equal(b)
	}
	return reflect.DeepEqual(a, b)
}
