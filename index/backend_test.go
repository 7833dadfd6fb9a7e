package index

import (
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scan is a minimal structure recording how it is driven.
type scan[T any] struct {
	data     *Dataset[T]
	builds   int
	inserted []uint32
}

func (s *scan[T]) Build() error { s.builds++; return nil }

func (s *scan[T]) Insert(ids []uint32) error {
	s.inserted = append(s.inserted, ids...)
	return nil
}

func (s *scan[T]) Search(q *Query[T], c Collector) {
	for i := 0; i < s.data.Len(); i++ {
		if q.Exhausted(c) {
			return
		}
		s.data.Check(q, uint32(i), c)
	}
}

func newScanBackend(t *testing.T, points []float64, capacity int, p Params) (*Backend[float64], *scan[float64]) {
	t.Helper()
	data, err := NewDataset(points, capacity, scalarMetric())
	require.NoError(t, err)
	s := &scan[float64]{data: data}
	b, err := NewBackend("scan", data, p, Structure[float64](s))
	require.NoError(t, err)
	return b, s
}

func TestBackendSearch(t *testing.T) {
	b, _ := newScanBackend(t, []float64{1, 5, 9, 3}, 4, DefaultParams(KindLinear))
	sp := DefaultSearchParams()
	assert.Equal(t, "scan", b.Name())

	res, err := b.KNNSearch(4, 2, sp)
	require.NoError(t, err)
	assert.Equal(t, []SearchResult{{ID: 3, Distance: 1}, {ID: 1, Distance: 1}}, res)

	_, err = b.KNNSearch(4, 0, sp)
	assert.ErrorIs(t, err, ErrInvalidK)

	res, err = b.RadiusSearch(4, 3, sp)
	require.NoError(t, err)
	assert.Equal(t, []SearchResult{{ID: 3, Distance: 1}, {ID: 1, Distance: 1}, {ID: 0, Distance: 3}}, res)

	res, err = b.RadiusSearch(4, -1, sp)
	require.NoError(t, err)
	assert.Empty(t, res)

	sp.MaxNeighbors = 1
	res, err = b.RadiusSearch(4, 3, sp)
	require.NoError(t, err)
	assert.Equal(t, []SearchResult{{ID: 3, Distance: 1}}, res)
}

func TestBackendRemove(t *testing.T) {
	b, _ := newScanBackend(t, []float64{1, 5, 9, 3}, 4, DefaultParams(KindLinear))
	require.NoError(t, b.RemovePoint(3))
	assert.Equal(t, 3, b.Size())
	assert.Equal(t, []float64{1, 5, 9}, b.Points())

	res, err := b.KNNSearch(4, 10, DefaultSearchParams())
	require.NoError(t, err)
	require.Len(t, res, 3)
	assert.Equal(t, uint32(1), res[0].ID)

	_, err = b.Point(3)
	var nf *ErrPointNotFound
	assert.ErrorAs(t, err, &nf)
}

func TestBackendInsert(t *testing.T) {
	t.Run("Incremental", func(t *testing.T) {
		p := DefaultParams(KindLinear)
		p.RebuildThreshold = 0
		b, s := newScanBackend(t, []float64{1}, 4, p)

		require.NoError(t, b.AddPoints([]float64{2, 3}))
		assert.Equal(t, []uint32{1, 2}, s.inserted)
		assert.Equal(t, 1, s.builds)
		assert.Equal(t, 4, b.Capacity())

		var ce *ErrCapacity
		assert.ErrorAs(t, b.AddPoints([]float64{4, 5}), &ce)
		assert.Equal(t, 3, b.Size())
	})

	t.Run("RebuildThreshold", func(t *testing.T) {
		b, s := newScanBackend(t, []float64{1, 2}, 8, DefaultParams(KindLinear))

		require.NoError(t, b.AddPoints([]float64{3, 4}))
		assert.Equal(t, 1, s.builds)

		require.NoError(t, b.AddPoints([]float64{5}))
		assert.Equal(t, 2, s.builds)
		assert.Equal(t, []uint32{2, 3}, s.inserted)
	})
}

func TestBuildAll(t *testing.T) {
	var n atomic.Int32
	task := func() error { n.Add(1); return nil }

	require.NoError(t, BuildAll(0, task, task))
	require.NoError(t, BuildAll(4, task, task, task))
	assert.Equal(t, int32(5), n.Load())

	errBoom := errors.New("boom")
	err := BuildAll(2, task, func() error { return errBoom }, task)
	assert.ErrorIs(t, err, errBoom)
}
