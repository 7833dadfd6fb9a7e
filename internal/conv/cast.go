package conv

import (
	"errors"
	"fmt"
	"math"
)

// ErrIDOverflow is returned when a dataset position does not fit a point ID.
var ErrIDOverflow = errors.New("point id overflow")

// ToID converts a dataset position to a point ID.
func ToID(pos int) (uint32, error) {
	if pos < 0 || uint64(pos) > math.MaxUint32 {
		return 0, fmt.Errorf("%w: %d", ErrIDOverflow, pos)
	}
	return uint32(pos), nil
}

// IDRange returns the n consecutive IDs starting at first.
func IDRange(first uint32, n int) []uint32 {
	ids := make([]uint32, n)
	for i := range ids {
		ids[i] = first + uint32(i)
	}
	return ids
}
