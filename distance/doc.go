// Package distance provides float64 distance kernels.
//
// # Supported Metrics
//
//   - SquaredL2: squared Euclidean distance (used internally by the kd-tree and k-means trees)
//   - L2: Euclidean distance
//   - Manhattan: L1 distance
//   - Chebyshev: L-infinity distance
//   - Scalar: |a-b| for plain numbers
//
// # Usage
//
//	store := nearest.NewLinear(distance.L2)
//	d := distance.Scalar(4, 9) // 5
package distance
