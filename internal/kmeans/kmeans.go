package kmeans

import (
	"math"
	"math/rand"

	"github.com/hupe1980/nearest/distance"
	"github.com/hupe1980/nearest/index"
)

// ChooseCenters picks up to k distinct centers among ids with the given
// seeding algorithm. Fewer centers are returned when ids hold fewer than k
// distinct points.
func ChooseCenters(method index.CentersInit, ids []uint32, k int, dist func(a, b uint32) float64, rng *rand.Rand) []uint32 {
	if k <= 0 || len(ids) == 0 {
		return nil
	}

	switch method {
	case index.CentersGonzales:
		return gonzales(ids, k, dist, rng)
	case index.CentersKMeansPP:
		return kmeansPP(ids, k, dist, rng)
	default:
		return random(ids, k, dist, rng)
	}
}

func random(ids []uint32, k int, dist func(a, b uint32) float64, rng *rand.Rand) []uint32 {
	centers := make([]uint32, 0, k)
	for _, i := range rng.Perm(len(ids)) {
		if len(centers) == k {
			break
		}
		id := ids[i]
		duplicate := false
		for _, c := range centers {
			if dist(c, id) == 0 {
				duplicate = true
				break
			}
		}
		if !duplicate {
			centers = append(centers, id)
		}
	}
	return centers
}

func gonzales(ids []uint32, k int, dist func(a, b uint32) float64, rng *rand.Rand) []uint32 {
	centers := make([]uint32, 0, k)
	first := ids[rng.Intn(len(ids))]
	centers = append(centers, first)

	closest := make([]float64, len(ids))
	for i, id := range ids {
		closest[i] = dist(first, id)
	}

	for len(centers) < k {
		best, bestDist := -1, 0.0
		for i, d := range closest {
			if d > bestDist {
				best, bestDist = i, d
			}
		}
		if best < 0 {
			break
		}

		c := ids[best]
		centers = append(centers, c)
		for i, id := range ids {
			closest[i] = math.Min(closest[i], dist(c, id))
		}
	}
	return centers
}

func kmeansPP(ids []uint32, k int, dist func(a, b uint32) float64, rng *rand.Rand) []uint32 {
	centers := make([]uint32, 0, k)
	first := ids[rng.Intn(len(ids))]
	centers = append(centers, first)

	closest := make([]float64, len(ids))
	var pot float64
	for i, id := range ids {
		d := dist(first, id)
		closest[i] = d * d
		pot += closest[i]
	}

	for len(centers) < k && pot > 0 {
		r := rng.Float64() * pot
		pick := -1
		for i, d := range closest {
			if d > 0 {
				pick = i
				if r < d {
					break
				}
			}
			r -= d
		}
		if pick < 0 {
			break
		}

		c := ids[pick]
		centers = append(centers, c)
		pot = 0
		for i, id := range ids {
			d := dist(c, id)
			closest[i] = math.Min(closest[i], d*d)
			pot += closest[i]
		}
	}
	return centers
}

// Assign returns the index of the center closest to vec and its squared
// distance.
func Assign(vec []float64, centers [][]float64) (int, float64) {
	best, bestDist := -1, math.Inf(1)
	for j, c := range centers {
		if d := distance.SquaredL2(vec, c); d < bestDist {
			best, bestDist = j, d
		}
	}
	return best, bestDist
}

// Train refines centers with Lloyd's algorithm and returns them with the
// final assignment of every vector. maxIter < 0 iterates until the
// assignment converges. A center that loses all its vectors takes over a
// vector of the largest cluster so no cluster ends up empty.
func Train(vectors [][]float64, centers [][]float64, maxIter int) ([][]float64, []int) {
	k := len(centers)
	n := len(vectors)
	if k == 0 || n == 0 {
		return centers, make([]int, n)
	}
	dim := len(centers[0])

	assignments := make([]int, n)
	for i, v := range vectors {
		assignments[i], _ = Assign(v, centers)
	}

	counts := make([]int, k)
	sums := make([][]float64, k)
	for j := range sums {
		sums[j] = make([]float64, dim)
	}

	for iter := 0; maxIter < 0 || iter < maxIter; iter++ {
		for j := range sums {
			clear(sums[j])
			counts[j] = 0
		}
		for i, v := range vectors {
			c := assignments[i]
			for d, x := range v {
				sums[c][d] += x
			}
			counts[c]++
		}

		for j := range counts {
			if counts[j] == 0 {
				donor := largest(counts)
				for i := range assignments {
					if assignments[i] == donor {
						assignments[i] = j
						counts[donor]--
						counts[j]++
						for d, x := range vectors[i] {
							sums[donor][d] -= x
							sums[j][d] += x
						}
						break
					}
				}
			}
		}

		for j := range centers {
			if counts[j] == 0 {
				continue
			}
			c := make([]float64, dim)
			for d := range c {
				c[d] = sums[j][d] / float64(counts[j])
			}
			centers[j] = c
		}

		changed := false
		for i, v := range vectors {
			if c, _ := Assign(v, centers); c != assignments[i] {
				assignments[i] = c
				changed = true
			}
		}
		if !changed {
			break
		}
	}

	return centers, assignments
}

func largest(counts []int) int {
	best := 0
	for j, c := range counts {
		if c > counts[best] {
			best = j
		}
	}
	return best
}
