package kdtree

// node is a kd-tree node. Leaves hold a bucket of point IDs.
type node struct {
	dim   int
	val   float64 // split value (Forest)
	low   float64 // largest coordinate of the left subtree on dim (Single)
	high  float64 // smallest coordinate of the right subtree on dim (Single)
	left  *node
	right *node
	ids   []uint32
}

func (n *node) leaf() bool { return n.left == nil }

// partition reorders ids so that coordinates on dim below val come first,
// equal ones next, and returns the boundaries of the equal run.
func partition(ids []uint32, coord func(id uint32, dim int) float64, dim int, val float64) (lim1, lim2 int) {
	left, right := 0, len(ids)-1
	for {
		for left <= right && coord(ids[left], dim) < val {
			left++
		}
		for left <= right && coord(ids[right], dim) >= val {
			right--
		}
		if left > right {
			break
		}
		ids[left], ids[right] = ids[right], ids[left]
		left++
		right--
	}
	lim1 = left

	right = len(ids) - 1
	for {
		for left <= right && coord(ids[left], dim) <= val {
			left++
		}
		for left <= right && coord(ids[right], dim) > val {
			right--
		}
		if left > right {
			break
		}
		ids[left], ids[right] = ids[right], ids[left]
		left++
		right--
	}
	lim2 = left
	return lim1, lim2
}

// splitIndex picks a cut inside the equal run that keeps the halves balanced.
func splitIndex(lim1, lim2, n int) int {
	switch {
	case lim1 > n/2:
		return lim1
	case lim2 < n/2:
		return lim2
	default:
		return n / 2
	}
}
