// Package distance provides float64 distance kernels.
//
// Every function here is symmetric and can be handed to a store as its
// distance function, either directly or through a small adapter.
package distance

import "math"

// SquaredL2 calculates the squared L2 (Euclidean) distance between two vectors.
// Assumes vectors are the same length (caller's responsibility).
func SquaredL2(a, b []float64) float64 {
	var s0, s1, s2, s3 float64
	n := len(a)
	b = b[:n]
	i := 0
	for ; i+4 <= n; i += 4 {
		d0 := a[i] - b[i]
		d1 := a[i+1] - b[i+1]
		d2 := a[i+2] - b[i+2]
		d3 := a[i+3] - b[i+3]
		s0 += d0 * d0
		s1 += d1 * d1
		s2 += d2 * d2
		s3 += d3 * d3
	}
	for ; i < n; i++ {
		d := a[i] - b[i]
		s0 += d * d
	}
	return s0 + s1 + s2 + s3
}

// L2 calculates the Euclidean distance between two vectors.
func L2(a, b []float64) float64 {
	return math.Sqrt(SquaredL2(a, b))
}

// Manhattan calculates the L1 distance between two vectors.
func Manhattan(a, b []float64) float64 {
	var s float64
	b = b[:len(a)]
	for i := range a {
		s += math.Abs(a[i] - b[i])
	}
	return s
}

// Chebyshev calculates the L-infinity distance between two vectors.
func Chebyshev(a, b []float64) float64 {
	var m float64
	b = b[:len(a)]
	for i := range a {
		if d := math.Abs(a[i] - b[i]); d > m {
			m = d
		}
	}
	return m
}

// Scalar is the absolute difference of two numbers, the Euclidean distance
// in one dimension.
func Scalar(a, b float64) float64 {
	return math.Abs(a - b)
}
