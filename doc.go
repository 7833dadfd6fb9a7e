// Package nearest provides a dynamic nearest neighbor container over
// build-once spatial index engines.
//
// A Store keeps its elements in a buffer it owns and maintains a search
// index over them. Index engines are built once from a point set and can
// only grow up to a fixed capacity; the store turns that into a mutable
// neighbor set:
//
//   - Add and AddAll grow the buffer by doubling and rebuild the index when
//     its capacity would be exceeded
//   - Remove finds the nearest stored element, checks it is equal to the
//     argument and rebuilds the index without it
//   - SetDistanceFunc and SetIndexParams rebuild the index on the spot
//
// # Quick Start
//
//	store, _ := nearest.NewKDTree[[]float64]()
//	_ = store.AddAll([][]float64{{0, 0}, {1, 1}, {5, 5}})
//
//	p, _ := store.Nearest([]float64{0.9, 0.8})    // {1, 1}
//	ks, _ := store.NearestK([]float64{0, 0}, 2)   // {0, 0}, {1, 1}
//	rs, _ := store.NearestR([]float64{0, 0}, 1.5) // {0, 0}, {1, 1}
//
// # Variants
//
// Linear and HierarchicalClustering work with any element type and distance
// function:
//
//	store, _ := nearest.NewHierarchicalClustering[string](
//	    nearest.WithDistanceFunc(levenshtein),
//	)
//
// KDTree, KMeans, Composite, KDTreeSingle and KDTreeCuda3D partition
// coordinate space. They need an element type with coordinates (float64,
// float32, int, []float64, []float32 or a type implementing index.Vector)
// and use the Euclidean distance.
//
// # Accuracy
//
// Tree variants answer approximately. SearchParams.Checks bounds how many
// points a query scores; index.CheckUnlimited makes queries exhaustive.
// Radius queries are inclusive (distance <= radius) and always explore every
// candidate cell. Among exactly equidistant results the element added later
// comes first.
//
// # Concurrency
//
// A Store is not safe for concurrent use. Rebuilds replace the index and may
// reallocate the buffer.
package nearest
