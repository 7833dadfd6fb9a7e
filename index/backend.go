package index

import (
	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/nearest/internal/conv"
	"github.com/hupe1980/nearest/internal/queue"
)

// Structure is a search structure (typically a tree or a forest) over the
// points of a Dataset.
type Structure[T any] interface {
	// Build (re)builds the structure over all live points of the dataset.
	Build() error

	// Insert adds points that were already appended to the dataset.
	Insert(ids []uint32) error

	// Search offers candidates for q to c. Implementations score points via
	// Dataset.Check and honor q.Exhausted.
	Search(q *Query[T], c Collector)
}

// BuildAll runs tasks with at most workers running concurrently and returns
// the first error.
func BuildAll(workers int, tasks ...func() error) error {
	if workers < 1 {
		workers = 1
	}
	if workers == 1 || len(tasks) == 1 {
		for _, task := range tasks {
			if err := task(); err != nil {
				return err
			}
		}
		return nil
	}

	var g errgroup.Group
	g.SetLimit(workers)
	for _, task := range tasks {
		g.Go(task)
	}
	return g.Wait()
}

// Backend adapts a Dataset and its Structures to the Index contract.
type Backend[T any] struct {
	name       string
	data       *Dataset[T]
	structures []Structure[T]
	threshold  float64
	workers    int
	builtSize  int
}

// Compile-time checks to ensure Backend satisfies the index contract.
var (
	_ Index[int]      = (*Backend[int])(nil)
	_ Enumerator[int] = (*Backend[int])(nil)
)

// NewBackend builds all structures over data and returns the index.
func NewBackend[T any](name string, data *Dataset[T], p Params, structures ...Structure[T]) (*Backend[T], error) {
	b := &Backend[T]{
		name:       name,
		data:       data,
		structures: structures,
		threshold:  p.RebuildThreshold,
		workers:    p.BuildWorkers,
	}
	if err := b.rebuild(); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *Backend[T]) rebuild() error {
	tasks := make([]func() error, len(b.structures))
	for i, s := range b.structures {
		tasks[i] = s.Build
	}
	if err := BuildAll(b.workers, tasks...); err != nil {
		return err
	}
	b.builtSize = b.data.Size()
	return nil
}

// Name implements Index.
func (b *Backend[T]) Name() string { return b.name }

// Dataset returns the underlying dataset.
func (b *Backend[T]) Dataset() *Dataset[T] { return b.data }

// AddPoints implements Index.
func (b *Backend[T]) AddPoints(points []T) error {
	if len(points) == 0 {
		return nil
	}
	first, err := b.data.Append(points)
	if err != nil {
		return err
	}

	if b.threshold > 0 && float64(b.data.Size()) > b.threshold*float64(b.builtSize) {
		return b.rebuild()
	}

	ids := conv.IDRange(first, len(points))
	for _, s := range b.structures {
		if err := s.Insert(ids); err != nil {
			return err
		}
	}
	return nil
}

// KNNSearch implements Index.
func (b *Backend[T]) KNNSearch(x T, k int, sp SearchParams) ([]SearchResult, error) {
	if k <= 0 {
		return nil, ErrInvalidK
	}
	q, err := b.data.NewQuery(x, sp)
	if err != nil {
		return nil, err
	}
	if size := b.data.Size(); k > size {
		k = size
	}
	if k == 0 {
		return []SearchResult{}, nil
	}

	c := queue.NewKNN(k)
	b.search(q, c)
	return fromItems(c.Sorted()), nil
}

// RadiusSearch implements Index.
func (b *Backend[T]) RadiusSearch(x T, radius float64, sp SearchParams) ([]SearchResult, error) {
	q, err := b.data.NewQuery(x, sp)
	if err != nil {
		return nil, err
	}
	if radius < 0 || b.data.Size() == 0 {
		return []SearchResult{}, nil
	}

	c := queue.NewRadius(radius, sp.MaxNeighbors)
	b.search(q, c)
	return fromItems(c.Items(sp.Sorted)), nil
}

func (b *Backend[T]) search(q *Query[T], c Collector) {
	for _, s := range b.structures {
		q.ResetChecks()
		s.Search(q, c)
	}
}

// RemovePoint implements Index.
func (b *Backend[T]) RemovePoint(id uint32) error { return b.data.Remove(id) }

// Point implements Index.
func (b *Backend[T]) Point(id uint32) (T, error) { return b.data.Point(id) }

// Size implements Index.
func (b *Backend[T]) Size() int { return b.data.Size() }

// Capacity implements Index.
func (b *Backend[T]) Capacity() int { return b.data.Capacity() }

// Points implements Enumerator.
func (b *Backend[T]) Points() []T { return b.data.Points() }

func fromItems(items []queue.Item) []SearchResult {
	out := make([]SearchResult, len(items))
	for i, it := range items {
		out[i] = SearchResult{ID: it.ID, Distance: it.Distance}
	}
	return out
}
