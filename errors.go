package nearest

import (
	"errors"
	"fmt"

	"github.com/hupe1980/nearest/index"
)

var (
	// ErrEmptyStore is returned by Nearest when the store holds no elements.
	ErrEmptyStore = errors.New("store is empty")

	// ErrInvalidK is returned when k is not positive.
	ErrInvalidK = errors.New("k must be positive")

	// ErrOptionType is returned when an option carries a function for a
	// different element type than the store.
	ErrOptionType = errors.New("option does not match the element type")
)

// BuildError is returned when the index engine fails to build an index, or
// when a configuration cannot be built at all.
//
// The original underlying error can be accessed via errors.Unwrap.
type BuildError struct {
	Kind  index.Kind
	Op    string
	cause error
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("build %s index (%s): %v", e.Kind, e.Op, e.cause)
}

func (e *BuildError) Unwrap() error { return e.cause }

// ErrDimensionMismatch indicates an element or query with the wrong number
// of coordinates.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrDimensionMismatch struct {
	Expected int
	Actual   int
	cause    error
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}

func (e *ErrDimensionMismatch) Unwrap() error { return e.cause }

// translateError maps engine errors of a query or an incremental insert to
// the public error contract.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	var dm *index.ErrDimensionMismatch
	if errors.As(err, &dm) {
		return &ErrDimensionMismatch{Expected: dm.Expected, Actual: dm.Actual, cause: err}
	}
	if errors.Is(err, index.ErrInvalidK) {
		return fmt.Errorf("%w: %w", ErrInvalidK, err)
	}

	return err
}

// buildError wraps a failed build. Dimension problems of the seed points
// keep their public type inside the BuildError chain.
func buildError(kind index.Kind, op string, err error) error {
	if err == nil {
		return nil
	}
	var be *BuildError
	if errors.As(err, &be) {
		return err
	}
	return &BuildError{Kind: kind, Op: op, cause: translateError(err)}
}
