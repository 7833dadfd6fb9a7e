package index

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidK is returned when k is not positive.
	ErrInvalidK = errors.New("k must be positive")

	// ErrVectorMetricRequired is returned when an index kind that partitions
	// coordinate space is built with a plain distance function.
	ErrVectorMetricRequired = errors.New("index kind requires a vector metric")

	// ErrNotVector is returned when an element type exposes no coordinates.
	ErrNotVector = errors.New("element type does not expose coordinates")
)

// ErrCapacity is returned when incremental insertion would exceed the
// capacity an index was built with.
type ErrCapacity struct {
	Capacity  int
	Requested int
}

func (e *ErrCapacity) Error() string {
	return fmt.Sprintf("capacity exceeded: capacity %d, requested %d", e.Capacity, e.Requested)
}

// ErrDimensionMismatch is a named error type for dimension mismatch
type ErrDimensionMismatch struct {
	Expected int // Expected dimensions
	Actual   int // Actual dimensions
}

// Error returns the error message for dimension mismatch
func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}

// ErrPointNotFound is returned when a point ID is unknown or removed.
type ErrPointNotFound struct {
	ID uint32
}

func (e *ErrPointNotFound) Error() string {
	return fmt.Sprintf("point %d not found", e.ID)
}

// ErrInvalidParams indicates a malformed index parameter.
type ErrInvalidParams struct {
	Field  string
	Value  any
	Reason string
}

func (e *ErrInvalidParams) Error() string {
	return fmt.Sprintf("invalid index params: %s=%v: %s", e.Field, e.Value, e.Reason)
}
