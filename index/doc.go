// Package index defines the contract between a neighbor store and the index
// engine that answers its queries.
//
// An index is built once from a snapshot of points, a parameter set and a
// distance adapter. After that it accepts a bounded number of incremental
// insertions (up to its capacity), soft removals and k-NN / radius queries.
// Anything beyond that, such as growing past capacity or changing the metric,
// requires building a new index.
//
// # Index Kinds
//
//   - KindLinear: exhaustive scan, exact, any metric
//   - KindHierarchicalClustering: forest of pivot trees, any metric
//   - KindKDTree: forest of randomized kd-trees, Euclidean only
//   - KindKMeans: hierarchical k-means tree, Euclidean only
//   - KindComposite: KDTree and KMeans searched together, Euclidean only
//   - KindKDTreeSingle: one exact kd-tree, Euclidean only
//   - KindKDTreeCuda3D: KDTreeSingle preset for 3-D points
//
// # Metrics
//
// Func wraps an arbitrary distance function. Euclidean is the native metric
// for elements that expose flat coordinates (see CoordinatesOf); backends
// detect it through the VectorMetric interface and score points directly
// on contiguous coordinate storage.
//
// # Building Blocks
//
// Backend implementations are assembled from a Dataset (points, optional
// coordinates, removed set) and one or more Structures (trees). See
// NewBackend.
package index
