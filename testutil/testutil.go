package testutil

import (
	"math"
	"math/rand"
	"sort"
	"sync"
)

// SearchResult represents a search result.
type SearchResult struct {
	ID       uint32
	Distance float64
}

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// Scalars generates num values in range [minVal, maxVal).
func (r *RNG) Scalars(num int, minVal, maxVal float64) []float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]float64, num)
	for i := range out {
		out[i] = minVal + r.rand.Float64()*(maxVal-minVal)
	}
	return out
}

// UniformVectors generates random vectors with values in range [0, 1).
// Uses a single backing array for efficiency.
func (r *RNG) UniformVectors(num int, dimensions int) [][]float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	data := make([]float64, num*dimensions)
	vectors := make([][]float64, num)

	for i := range num {
		vec := data[i*dimensions : (i+1)*dimensions : (i+1)*dimensions]
		for j := range vec {
			vec[j] = r.rand.Float64()
		}
		vectors[i] = vec
	}

	return vectors
}

// ClusteredVectors generates vectors clustered around random centroids in
// the unit cube. Useful for testing clustering trees on non-uniform data.
func (r *RNG) ClusteredVectors(num, dim, clusters int, spread float64) [][]float64 {
	centroids := r.UniformVectors(clusters, dim)

	r.mu.Lock()
	defer r.mu.Unlock()

	data := make([]float64, num*dim)
	vectors := make([][]float64, num)

	for i := range num {
		centroid := centroids[i%clusters]
		vec := data[i*dim : (i+1)*dim : (i+1)*dim]
		for j := range dim {
			vec[j] = centroid[j] + r.rand.NormFloat64()*spread
		}
		vectors[i] = vec
	}

	return vectors
}

// ExactTopK returns the k nearest points to query by brute force, sorted by
// ascending distance with the higher ID first among ties.
func ExactTopK[T any](query T, points []T, k int, dist func(a, b T) float64) []SearchResult {
	all := make([]SearchResult, len(points))
	for i, p := range points {
		all[i] = SearchResult{ID: uint32(i), Distance: dist(query, p)}
	}
	sortResults(all)
	if k < len(all) {
		all = all[:k]
	}
	return all
}

// ExactRadius returns every point within radius (inclusive) of query,
// sorted by ascending distance.
func ExactRadius[T any](query T, points []T, radius float64, dist func(a, b T) float64) []SearchResult {
	var out []SearchResult
	for i, p := range points {
		if d := dist(query, p); d <= radius {
			out = append(out, SearchResult{ID: uint32(i), Distance: d})
		}
	}
	sortResults(out)
	return out
}

func sortResults(rs []SearchResult) {
	sort.Slice(rs, func(i, j int) bool {
		if rs[i].Distance != rs[j].Distance {
			return rs[i].Distance < rs[j].Distance
		}
		return rs[i].ID > rs[j].ID
	})
}

// ComputeRecall computes recall@k by comparing approximate results against ground truth.
func ComputeRecall(groundTruth, approximate []SearchResult) float64 {
	if len(groundTruth) == 0 || len(approximate) == 0 {
		if len(groundTruth) == 0 && len(approximate) == 0 {
			return 1.0
		}
		return 0.0
	}

	k := min(len(approximate), len(groundTruth))

	truthSet := make(map[uint32]struct{}, k)
	for i := range k {
		truthSet[groundTruth[i].ID] = struct{}{}
	}

	hits := 0
	for _, r := range approximate {
		if _, ok := truthSet[r.ID]; ok {
			hits++
		}
	}

	return float64(hits) / float64(k)
}

// DistancesMatch reports whether two result lists hold the same distances
// position by position within tol. Ties make IDs ambiguous, distances not.
func DistancesMatch(want, got []SearchResult, tol float64) bool {
	if len(want) != len(got) {
		return false
	}
	for i := range want {
		if math.Abs(want[i].Distance-got[i].Distance) > tol {
			return false
		}
	}
	return true
}
