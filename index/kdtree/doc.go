// Package kdtree provides kd-tree search structures for the Euclidean fast path.
//
// Forest is a set of randomized kd-trees searched best-bin-first with a
// shared branch queue. Each tree splits on a dimension picked at random
// among the highest-variance ones, so the trees partition space differently
// and a limited check budget still finds good neighbors.
//
// Single is one kd-tree with leaf buckets, split at the middle of the widest
// dimension. Its search tracks the exact per-dimension distance to every
// cell and is exact up to the Eps approximation factor.
//
// Both structures insert incrementally by descending to a leaf and
// re-splitting it once it grows past the leaf size.
package kdtree
