package engine

import (
	"github.com/hupe1980/nearest/index"
	"github.com/hupe1980/nearest/index/hcluster"
	"github.com/hupe1980/nearest/index/kdtree"
	"github.com/hupe1980/nearest/index/kmeans"
	"github.com/hupe1980/nearest/index/linear"
)

// Cuda3DDimension is the only dimension KindKDTreeCuda3D accepts.
const Cuda3DDimension = 3

// Compile-time check to ensure Build satisfies the Builder contract.
var _ index.Builder[int] = Build[int]

// Build creates an index of kind p.Kind holding points, able to grow
// incrementally up to capacity points.
func Build[T any](points []T, capacity int, p index.Params, metric index.Metric[T]) (index.Index[T], error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	if p.Kind.RequiresVectors() {
		vm, ok := metric.(index.VectorMetric[T])
		if !ok {
			return nil, index.ErrVectorMetricRequired
		}
		if p.Kind == index.KindKDTreeCuda3D && vm.Dimension() != Cuda3DDimension {
			return nil, &index.ErrDimensionMismatch{Expected: Cuda3DDimension, Actual: vm.Dimension()}
		}
	}

	data, err := index.NewDataset(points, capacity, metric)
	if err != nil {
		return nil, err
	}

	structures, err := newStructures(data, p)
	if err != nil {
		return nil, err
	}

	b, err := index.NewBackend(p.Kind.String(), data, p, structures...)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func newStructures[T any](data *index.Dataset[T], p index.Params) ([]index.Structure[T], error) {
	switch p.Kind {
	case index.KindLinear:
		return []index.Structure[T]{linear.New(data)}, nil
	case index.KindHierarchicalClustering:
		return []index.Structure[T]{hcluster.New(data, p)}, nil
	case index.KindKDTree:
		f, err := kdtree.NewForest(data, p)
		if err != nil {
			return nil, err
		}
		return []index.Structure[T]{f}, nil
	case index.KindKMeans:
		t, err := kmeans.New(data, p)
		if err != nil {
			return nil, err
		}
		return []index.Structure[T]{t}, nil
	case index.KindComposite:
		f, err := kdtree.NewForest(data, p)
		if err != nil {
			return nil, err
		}
		t, err := kmeans.New(data, p)
		if err != nil {
			return nil, err
		}
		return []index.Structure[T]{f, t}, nil
	case index.KindKDTreeSingle, index.KindKDTreeCuda3D:
		s, err := kdtree.NewSingle(data, p)
		if err != nil {
			return nil, err
		}
		return []index.Structure[T]{s}, nil
	default:
		return nil, &index.ErrInvalidParams{Field: "Kind", Value: p.Kind, Reason: "unknown index kind"}
	}
}
