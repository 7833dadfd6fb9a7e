package nearest

import (
	"log/slog"

	"github.com/hupe1980/nearest/index"
)

type options struct {
	dist             any // DistanceFunc[T]
	equal            any // func(a, b T) bool
	builder          any // index.Builder[T]
	dimension        int
	searchParams     *index.SearchParams
	tune             []func(*index.Params)
	metricsCollector MetricsCollector
	logger           *Logger
}

// Option configures a Store.
//
// Options that carry a function of the element type check it against the
// store's type when the store is created; a mismatch fails with
// ErrOptionType.
type Option func(*options)

// WithDistanceFunc sets the distance function. Without it the store uses the
// Euclidean distance, which requires an element type with coordinates.
//
// Variants that partition coordinate space (KDTree, KMeans, Composite,
// KDTreeSingle, KDTreeCuda3D) only support the Euclidean distance.
func WithDistanceFunc[T any](fn func(a, b T) float64) Option {
	return func(o *options) {
		if fn == nil {
			o.dist = nil
			return
		}
		o.dist = DistanceFunc[T](fn)
	}
}

// WithEqualFunc sets the equality used by Remove. By default elements with
// an Equal(T) bool method are compared with it and all others with
// reflect.DeepEqual.
func WithEqualFunc[T any](fn func(a, b T) bool) Option {
	return func(o *options) {
		o.equal = fn
	}
}

// WithBuilder replaces the index engine. The default is engine.Build.
func WithBuilder[T any](b index.Builder[T]) Option {
	return func(o *options) {
		o.builder = b
	}
}

// WithDimension fixes the number of coordinates per element on the Euclidean
// fast path. Without it the dimension is taken from the first element.
func WithDimension(dim int) Option {
	return func(o *options) {
		o.dimension = dim
	}
}

// WithSearchParams sets the initial search parameters.
// The default is index.DefaultSearchParams().
func WithSearchParams(sp index.SearchParams) Option {
	return func(o *options) {
		o.searchParams = &sp
	}
}

// WithParams tunes the index parameters of the selected variant.
//
// Example:
//
//	store, _ := nearest.NewKDTree[[]float64](nearest.WithParams(func(p *index.Params) {
//	    p.Trees = 8
//	    p.BuildWorkers = 4
//	}))
func WithParams(fn func(p *index.Params)) Option {
	return func(o *options) {
		if fn != nil {
			o.tune = append(o.tune, fn)
		}
	}
}

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &nearest.BasicMetricsCollector{}
//	store, _ := nearest.NewLinear[float64](nearest.WithMetricsCollector(metrics))
//	// ... use store ...
//	stats := metrics.GetStats()
//	fmt.Printf("Searches: %d, Avg latency: %dns\n", stats.SearchCount, stats.SearchAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := nearest.NewJSONLogger(slog.LevelInfo)
//	store, _ := nearest.NewLinear[float64](nearest.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.metricsCollector == nil {
		o.metricsCollector = NoopMetricsCollector{}
	}
	if o.logger == nil {
		o.logger = NoopLogger()
	}
	return o
}
