package nearest

import (
	"github.com/hupe1980/nearest/engine"
	"github.com/hupe1980/nearest/index"
)

// NewLinear creates a store answering every query by exhaustive scan.
func NewLinear[T any](optFns ...Option) (*Store[T], error) {
	return New[T](index.DefaultParams(index.KindLinear), optFns...)
}

// NewHierarchicalClustering creates a store over hierarchical clustering
// trees. It works with any distance function.
func NewHierarchicalClustering[T any](optFns ...Option) (*Store[T], error) {
	return New[T](index.DefaultParams(index.KindHierarchicalClustering), optFns...)
}

// NewKDTree creates a store over a forest of randomized kd-trees.
func NewKDTree[T any](optFns ...Option) (*Store[T], error) {
	return New[T](index.DefaultParams(index.KindKDTree), optFns...)
}

// NewKMeans creates a store over a hierarchical k-means tree.
func NewKMeans[T any](optFns ...Option) (*Store[T], error) {
	return New[T](index.DefaultParams(index.KindKMeans), optFns...)
}

// NewComposite creates a store over randomized kd-trees combined with a
// hierarchical k-means tree.
func NewComposite[T any](optFns ...Option) (*Store[T], error) {
	return New[T](index.DefaultParams(index.KindComposite), optFns...)
}

// NewKDTreeSingle creates a store over a single kd-tree. Queries are exact
// unless SearchParams.Eps is set.
func NewKDTreeSingle[T any](optFns ...Option) (*Store[T], error) {
	return New[T](index.DefaultParams(index.KindKDTreeSingle), optFns...)
}

// NewKDTreeCuda3D creates a store over a single kd-tree with large leaves
// for 3-d points.
func NewKDTreeCuda3D[T any](optFns ...Option) (*Store[T], error) {
	optFns = append([]Option{WithDimension(engine.Cuda3DDimension)}, optFns...)
	return New[T](index.DefaultParams(index.KindKDTreeCuda3D), optFns...)
}
