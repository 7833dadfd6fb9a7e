// Package engine provides the default index engine.
//
// Build maps index.Params onto search structures, builds them over a shared
// dataset and returns them as one index.Index:
//
//   - KindLinear: exhaustive scan
//   - KindHierarchicalClustering: forest of hierarchical clustering trees
//   - KindKDTree: forest of randomized kd-trees
//   - KindKMeans: hierarchical k-means tree
//   - KindComposite: randomized kd-trees plus a k-means tree
//   - KindKDTreeSingle: single kd-tree
//   - KindKDTreeCuda3D: single kd-tree with large leaves over 3-d points
//
// All kinds except Linear and HierarchicalClustering partition coordinate
// space and need an index.VectorMetric.
//
// # Parallel Construction
//
// Forests build their trees concurrently when Params.BuildWorkers > 1, and a
// composite index builds its two halves concurrently. The distance function
// must then be safe for concurrent use.
package engine
