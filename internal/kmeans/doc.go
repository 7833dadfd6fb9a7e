// Package kmeans implements center seeding and Lloyd's k-means for the
// clustering trees.
//
// Seeding works on point IDs and a distance callback so it serves any
// metric. Training works on coordinates and is only used on the Euclidean
// fast path.
package kmeans
