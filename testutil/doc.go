// Package testutil provides testing utilities for nearest neighbor stores.
//
// This package is intended for use in tests only. It provides helpers for
// generating random points, computing exact nearest neighbors, and
// verifying search recall.
//
// # Random Point Generation
//
//	rng := testutil.NewRNG(seed)
//	pts := rng.UniformVectors(1000, 3)   // uniform [0, 1)
//	pts = rng.ClusteredVectors(1000, 3, 8, 0.05)
//
// # Exact Search (Ground Truth)
//
//	results := testutil.ExactTopK(query, pts, k, distance.L2)
//
// # Recall Verification
//
//	recall := testutil.ComputeRecall(exact, approx)
package testutil
