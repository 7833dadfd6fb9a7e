package index

import "github.com/hupe1980/nearest/internal/visited"

// Query is the per-search state shared by all structures of a backend.
type Query[T any] struct {
	// Elem is the query element.
	Elem T

	// Coords holds the projected query on the Euclidean fast path, nil otherwise.
	Coords []float64

	// Params are the search parameters of this query.
	Params SearchParams

	checked *visited.Set
	checks  int
}

func newQuery[T any](x T, sp SearchParams, capacity int) *Query[T] {
	return &Query[T]{
		Elem:    x,
		Params:  sp,
		checked: visited.New(capacity),
	}
}

// Checks returns the number of points scored since the last ResetChecks.
func (q *Query[T]) Checks() int { return q.checks }

// ResetChecks restarts the check budget. Points already scored stay
// excluded so a second structure never reports a point twice.
func (q *Query[T]) ResetChecks() { q.checks = 0 }

// Exhausted reports whether a best-bin-first search should stop: the check
// budget is spent and c holds enough results.
func (q *Query[T]) Exhausted(c Collector) bool {
	return !q.Params.Exhaustive() && q.checks >= q.Params.Checks && c.Full()
}

// EpsFactor returns 1+Eps, the approximation factor for branch pruning.
func (q *Query[T]) EpsFactor() float64 { return 1 + q.Params.Eps }
