package nearest

import (
	"bytes"
	"errors"
	"log/slog"
	"math"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/hupe1980/nearest/distance"
	"github.com/hupe1980/nearest/engine"
	"github.com/hupe1980/nearest/index"
	"github.com/hupe1980/nearest/testutil"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var exhaustive = WithSearchParams(index.SearchParams{
	Checks:       index.CheckUnlimited,
	Sorted:       true,
	MaxNeighbors: -1,
})

type variant struct {
	name string
	new  func(optFns ...Option) (*Store[float64], error)
}

// scalarVariants lists every variant that accepts 1-d elements.
var scalarVariants = []variant{
	{"Linear", NewLinear[float64]},
	{"HierarchicalClustering", NewHierarchicalClustering[float64]},
	{"KDTree", NewKDTree[float64]},
	{"KMeans", NewKMeans[float64]},
	{"Composite", NewComposite[float64]},
	{"KDTreeSingle", NewKDTreeSingle[float64]},
}

var lessFloat = cmpopts.SortSlices(func(a, b float64) bool { return a < b })

func TestScenario(t *testing.T) {
	for _, v := range scalarVariants {
		t.Run(v.name, func(t *testing.T) {
			s, err := v.new(exhaustive)
			require.NoError(t, err)

			for _, x := range []float64{1, 5, 9, 3} {
				require.NoError(t, s.Add(x))
			}
			require.Equal(t, 4, s.Size())

			got, err := s.Nearest(4)
			require.NoError(t, err)
			assert.Equal(t, 3.0, got)

			ks, err := s.NearestK(4, 2)
			require.NoError(t, err)
			assert.Equal(t, []float64{3, 5}, ks)

			rs, err := s.NearestR(4, 2)
			require.NoError(t, err)
			assert.Equal(t, []float64{3, 5}, rs)

			removed, err := s.Remove(5)
			require.NoError(t, err)
			assert.True(t, removed)
			assert.Equal(t, 3, s.Size())

			got, err = s.Nearest(4)
			require.NoError(t, err)
			assert.Equal(t, 3.0, got)

			removed, err = s.Remove(100)
			require.NoError(t, err)
			assert.False(t, removed)
			assert.Equal(t, 3, s.Size())

			assert.Empty(t, cmp.Diff([]float64{1, 9, 3}, s.List(), lessFloat))
		})
	}
}

func TestScenario_Cuda3D(t *testing.T) {
	s, err := NewKDTreeCuda3D[[]float64]()
	require.NoError(t, err)
	assert.Equal(t, 3, s.Dimension())

	require.NoError(t, s.AddAll([][]float64{{1, 0, 0}, {5, 0, 0}, {9, 0, 0}, {3, 0, 0}}))

	got, err := s.Nearest([]float64{4, 0, 0})
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 0, 0}, got)

	ks, err := s.NearestK([]float64{4, 0, 0}, 2)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{3, 0, 0}, {5, 0, 0}}, ks)

	removed, err := s.Remove([]float64{5, 0, 0})
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = s.Remove([]float64{100, 0, 0})
	require.NoError(t, err)
	assert.False(t, removed)
	assert.Equal(t, 3, s.Size())

	var dm *ErrDimensionMismatch
	assert.ErrorAs(t, s.Add([]float64{1, 2}), &dm)
	assert.Equal(t, 3, s.Size())
}

func TestEmptyStore(t *testing.T) {
	for _, v := range scalarVariants {
		t.Run(v.name, func(t *testing.T) {
			s, err := v.new()
			require.NoError(t, err)

			_, err = s.Nearest(1)
			assert.ErrorIs(t, err, ErrEmptyStore)

			ks, err := s.NearestK(1, 5)
			require.NoError(t, err)
			assert.Empty(t, ks)

			rs, err := s.NearestR(1, 10)
			require.NoError(t, err)
			assert.Empty(t, rs)

			assert.Empty(t, s.List())
			assert.Equal(t, 0, s.Size())

			removed, err := s.Remove(1)
			require.NoError(t, err)
			assert.False(t, removed)
		})
	}
}

func TestGrowth(t *testing.T) {
	metrics := &BasicMetricsCollector{}
	s, err := NewLinear[float64](WithMetricsCollector(metrics))
	require.NoError(t, err)

	var want []float64
	for i := range 100 {
		x := float64(i * 7 % 101)
		require.NoError(t, s.Add(x))
		want = append(want, x)

		require.Equal(t, len(want), s.Size())
		require.Empty(t, cmp.Diff(want, s.List(), lessFloat), "step %d", i)
		require.GreaterOrEqual(t, s.Capacity(), s.Size())
	}
	assert.Equal(t, 128, s.Capacity())

	stats := metrics.GetStats()
	assert.Equal(t, int64(100), stats.AddCount)
	assert.Equal(t, int64(100), stats.AddItems)
	// Capacity doubles from 1 to 128.
	assert.Equal(t, int64(7), stats.RebuildCount)
}

func TestAddAllGrowth(t *testing.T) {
	s, err := NewKDTreeSingle[float64]()
	require.NoError(t, err)

	require.NoError(t, s.AddAll([]float64{1, 5, 9, 3}))
	assert.Equal(t, 4, s.Capacity())

	require.NoError(t, s.AddAll([]float64{2, 4}))
	assert.Equal(t, 8, s.Capacity())

	require.NoError(t, s.AddAll([]float64{10, 11, 12, 13, 14, 15, 16, 17, 18, 19}))
	assert.Equal(t, 16, s.Capacity())
	assert.Equal(t, 16, s.Size())

	require.NoError(t, s.AddAll(nil))
	assert.Equal(t, 16, s.Size())
}

func TestProperties(t *testing.T) {
	rng := testutil.NewRNG(4711)
	points := rng.Scalars(300, -50, 50)
	queries := rng.Scalars(20, -60, 60)

	for _, v := range scalarVariants {
		t.Run(v.name, func(t *testing.T) {
			s, err := v.new(exhaustive)
			require.NoError(t, err)
			require.NoError(t, s.AddAll(points[:100]))
			for _, x := range points[100:] {
				require.NoError(t, s.Add(x))
			}

			for _, q := range queries {
				ns, err := s.NearestKWithDistances(q, 10)
				require.NoError(t, err)
				require.Len(t, ns, 10)
				assert.True(t, slices.IsSortedFunc(ns, func(a, b Neighbor[float64]) int {
					return cmpFloat(a.Distance, b.Distance)
				}))
				want := testutil.ExactTopK(q, points, 10, distance.Scalar)
				assert.InDelta(t, want[9].Distance, ns[9].Distance, 1e-12)

				inR, err := s.NearestR(q, 5)
				require.NoError(t, err)
				var wantR []float64
				for _, r := range testutil.ExactRadius(q, points, 5, distance.Scalar) {
					wantR = append(wantR, points[r.ID])
				}
				assert.Empty(t, cmp.Diff(wantR, inR, lessFloat, cmpopts.EquateEmpty()))
			}

			all, err := s.NearestK(0, 1000)
			require.NoError(t, err)
			assert.Empty(t, cmp.Diff(points, all, lessFloat))

			for _, x := range points[:3] {
				got, err := s.Nearest(x)
				require.NoError(t, err)
				assert.Equal(t, x, got)
			}
		})
	}
}

func TestRemove(t *testing.T) {
	rng := testutil.NewRNG(1)
	points := rng.Scalars(60, 0, 1000)

	for _, v := range scalarVariants {
		t.Run(v.name, func(t *testing.T) {
			s, err := v.new(exhaustive)
			require.NoError(t, err)
			require.NoError(t, s.AddAll(points))

			remaining := slices.Clone(points)
			for i, x := range points {
				if i%2 == 0 {
					continue
				}
				removed, err := s.Remove(x)
				require.NoError(t, err)
				require.True(t, removed)
				remaining = slices.DeleteFunc(remaining, func(y float64) bool { return y == x })
				require.Equal(t, len(remaining), s.Size())
			}
			assert.Empty(t, cmp.Diff(remaining, s.List(), lessFloat))

			removed, err := s.Remove(-1)
			require.NoError(t, err)
			assert.False(t, removed)
			assert.Equal(t, len(remaining), s.Size())

			for _, x := range remaining {
				removed, err := s.Remove(x)
				require.NoError(t, err)
				require.True(t, removed)
			}
			assert.Equal(t, 0, s.Size())
			_, err = s.Nearest(1)
			assert.ErrorIs(t, err, ErrEmptyStore)

			require.NoError(t, s.Add(42))
			got, err := s.Nearest(0)
			require.NoError(t, err)
			assert.Equal(t, 42.0, got)
		})
	}
}

func TestRemoveDuplicates(t *testing.T) {
	s, err := NewLinear[float64]()
	require.NoError(t, err)
	require.NoError(t, s.AddAll([]float64{2, 2, 2}))

	removed, err := s.Remove(2)
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Equal(t, []float64{2, 2}, s.List())
}

func TestClearRoundTrip(t *testing.T) {
	rng := testutil.NewRNG(3)
	points := rng.UniformVectors(200, 2)
	queries := rng.UniformVectors(10, 2)

	fresh, err := NewKDTree[[]float64](exhaustive)
	require.NoError(t, err)
	require.NoError(t, fresh.AddAll(points))

	s, err := NewKDTree[[]float64](exhaustive)
	require.NoError(t, err)
	require.NoError(t, s.AddAll(points[:50]))
	capacity := s.Capacity()
	s.Clear()
	assert.Equal(t, 0, s.Size())
	assert.Empty(t, s.List())
	assert.Equal(t, capacity, s.Capacity())
	require.NoError(t, s.AddAll(points))

	for _, q := range queries {
		want, err := fresh.NearestK(q, 5)
		require.NoError(t, err)
		got, err := s.NearestK(q, 5)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestSetDistanceFunc(t *testing.T) {
	s, err := NewLinear[float64]()
	require.NoError(t, err)
	require.NoError(t, s.AddAll([]float64{1, 5, 9, 3}))

	logDist := func(a, b float64) float64 { return math.Abs(math.Log(a) - math.Log(b)) }
	require.NoError(t, s.SetDistanceFunc(logDist))
	assert.Equal(t, 4, s.Size())

	got, err := s.Nearest(4)
	require.NoError(t, err)
	assert.Equal(t, 5.0, got)
	assert.InDelta(t, math.Log(5.0/4.0), s.DistanceFunc()(4, 5), 1e-12)

	require.NoError(t, s.SetDistanceFunc(nil))
	got, err = s.Nearest(4)
	require.NoError(t, err)
	assert.Equal(t, 3.0, got)
	assert.Equal(t, 1.0, s.DistanceFunc()(4, 3))

	t.Run("RequiresEuclidean", func(t *testing.T) {
		kd, err := NewKDTree[float64]()
		require.NoError(t, err)
		require.NoError(t, kd.AddAll([]float64{1, 2}))

		err = kd.SetDistanceFunc(logDist)
		var be *BuildError
		require.ErrorAs(t, err, &be)
		assert.ErrorIs(t, err, index.ErrVectorMetricRequired)
		assert.Equal(t, 2, kd.Size())
	})
}

func TestSetIndexParams(t *testing.T) {
	rng := testutil.NewRNG(8)
	points := rng.Scalars(100, 0, 10)

	s, err := NewLinear[float64]()
	require.NoError(t, err)
	require.NoError(t, s.AddAll(points))

	p := index.DefaultParams(index.KindKDTreeSingle)
	require.NoError(t, s.SetIndexParams(p))
	assert.Equal(t, p, s.IndexParams())
	assert.Equal(t, len(points), s.Size())
	assert.Empty(t, cmp.Diff(points, s.List(), lessFloat))

	bad := index.DefaultParams(index.KindKDTree)
	bad.Trees = 0
	err = s.SetIndexParams(bad)

	var be *BuildError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, index.KindKDTree, be.Kind)
	var pe *index.ErrInvalidParams
	assert.ErrorAs(t, err, &pe)
	assert.Equal(t, p, s.IndexParams())
	assert.Equal(t, len(points), s.Size())
}

func TestSearchParams(t *testing.T) {
	s, err := NewKDTree[float64]()
	require.NoError(t, err)
	assert.Equal(t, index.DefaultSearchParams(), s.SearchParams())
	assert.True(t, s.ReportsSortedResults())

	sp := index.SearchParams{Checks: 128, Eps: 0.1}
	s.SetSearchParams(sp)
	assert.Equal(t, sp, s.SearchParams())
	assert.False(t, s.ReportsSortedResults())
}

func TestMaxNeighbors(t *testing.T) {
	s, err := NewLinear[float64](WithSearchParams(index.SearchParams{Sorted: true, MaxNeighbors: 2}))
	require.NoError(t, err)
	require.NoError(t, s.AddAll([]float64{1, 2, 3, 4, 5}))

	ns, err := s.NearestRWithDistances(3, 10)
	require.NoError(t, err)
	require.Len(t, ns, 2)
	assert.Equal(t, 3.0, ns[0].Element)
	assert.Equal(t, 0.0, ns[0].Distance)
	assert.Equal(t, 1.0, ns[1].Distance)
}

func TestInvalidK(t *testing.T) {
	s, err := NewLinear[float64]()
	require.NoError(t, err)
	require.NoError(t, s.Add(1))

	_, err = s.NearestK(1, 0)
	assert.ErrorIs(t, err, ErrInvalidK)
}

func TestNegativeRadius(t *testing.T) {
	s, err := NewLinear[float64]()
	require.NoError(t, err)
	require.NoError(t, s.Add(1))

	rs, err := s.NearestR(1, -1)
	require.NoError(t, err)
	assert.Empty(t, rs)

	rs, err = s.NearestR(1, 0)
	require.NoError(t, err)
	assert.Equal(t, []float64{1}, rs)
}

func TestConstructionErrors(t *testing.T) {
	t.Run("InvalidParams", func(t *testing.T) {
		_, err := NewKDTree[float64](WithParams(func(p *index.Params) { p.Trees = 0 }))
		var be *BuildError
		require.ErrorAs(t, err, &be)
		assert.Equal(t, "new", be.Op)
	})

	t.Run("KDTreeNeedsEuclidean", func(t *testing.T) {
		_, err := NewKDTree[float64](WithDistanceFunc(distance.Scalar))
		assert.ErrorIs(t, err, index.ErrVectorMetricRequired)
	})

	t.Run("NoCoordinates", func(t *testing.T) {
		_, err := NewLinear[string]()
		assert.ErrorIs(t, err, index.ErrNotVector)
	})

	t.Run("OptionType", func(t *testing.T) {
		_, err := NewLinear[float64](WithDistanceFunc(func(a, b int) float64 { return 0 }))
		assert.ErrorIs(t, err, ErrOptionType)
	})

	t.Run("Cuda3DDimension", func(t *testing.T) {
		s, err := NewKDTreeCuda3D[[]float64](WithDimension(2))
		require.NoError(t, err)

		err = s.Add([]float64{1, 2})
		var be *BuildError
		require.ErrorAs(t, err, &be)
		assert.Equal(t, 0, s.Size())
		assert.Empty(t, s.List())
	})
}

func TestDimension(t *testing.T) {
	s, err := NewKMeans[[]float64]()
	require.NoError(t, err)
	assert.Equal(t, 1, s.Dimension())

	t.Run("SeedRollback", func(t *testing.T) {
		err := s.AddAll([][]float64{{1, 2}, {3}})
		var be *BuildError
		require.ErrorAs(t, err, &be)
		var dm *ErrDimensionMismatch
		assert.ErrorAs(t, err, &dm)
		assert.Equal(t, 0, s.Size())
		assert.Equal(t, 1, s.Dimension())
	})

	require.NoError(t, s.AddAll([][]float64{{1, 2}, {3, 4}}))
	assert.Equal(t, 2, s.Dimension())

	var dm *ErrDimensionMismatch
	require.ErrorAs(t, s.Add([]float64{1, 2, 3}), &dm)
	assert.Equal(t, 2, dm.Expected)
	assert.Equal(t, 3, dm.Actual)
	assert.Equal(t, 2, s.Size())

	_, err = s.Nearest([]float64{1})
	assert.ErrorAs(t, err, &dm)
}

type tagged struct {
	X     float64
	Label string
}

func (a tagged) Equal(b tagged) bool { return a.X == b.X && a.Label == b.Label }

func TestEquality(t *testing.T) {
	byX := func(a, b tagged) float64 { return math.Abs(a.X - b.X) }

	t.Run("EqualMethod", func(t *testing.T) {
		s, err := NewLinear[tagged](WithDistanceFunc(byX))
		require.NoError(t, err)
		require.NoError(t, s.AddAll([]tagged{{1, "a"}, {2, "b"}}))

		removed, err := s.Remove(tagged{1, "z"})
		require.NoError(t, err)
		assert.False(t, removed)

		removed, err = s.Remove(tagged{1, "a"})
		require.NoError(t, err)
		assert.True(t, removed)
		assert.Equal(t, []tagged{{2, "b"}}, s.List())
	})

	t.Run("EqualFunc", func(t *testing.T) {
		sameX := func(a, b tagged) bool { return a.X == b.X }
		s, err := NewLinear[tagged](WithDistanceFunc(byX), WithEqualFunc(sameX))
		require.NoError(t, err)
		require.NoError(t, s.AddAll([]tagged{{1, "a"}, {2, "b"}}))

		removed, err := s.Remove(tagged{1, "z"})
		require.NoError(t, err)
		assert.True(t, removed)
	})

	t.Run("DeepEqual", func(t *testing.T) {
		s, err := NewLinear[[]float64]()
		require.NoError(t, err)
		require.NoError(t, s.AddAll([][]float64{{1, 1}, {2, 2}}))

		removed, err := s.Remove([]float64{1, 1.5})
		require.NoError(t, err)
		assert.False(t, removed)

		removed, err = s.Remove([]float64{2, 2})
		require.NoError(t, err)
		assert.True(t, removed)
	})
}

func levenshtein(a, b string) float64 {
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		cur[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			cur[j] = min(prev[j]+1, cur[j-1]+1, prev[j-1]+cost)
		}
		prev, cur = cur, prev
	}
	return float64(prev[len(b)])
}

func TestStringElements(t *testing.T) {
	words := []string{"apple", "apply", "ample", "maple", "angle", "angel", "bagel", "label", "table", "cable", "fable", "gable"}

	s, err := NewHierarchicalClustering[string](
		WithDistanceFunc(levenshtein),
		WithParams(func(p *index.Params) {
			p.Branching = 3
			p.LeafMaxSize = 2
		}),
		exhaustive,
	)
	require.NoError(t, err)
	require.NoError(t, s.AddAll(words))

	got, err := s.Nearest("appl")
	require.NoError(t, err)
	assert.Contains(t, []string{"apple", "apply"}, got)

	rs, err := s.NearestR("table", 1)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff([]string{"table", "cable", "fable", "gable"}, rs,
		cmpopts.SortSlices(func(a, b string) bool { return a < b })))

	removed, err := s.Remove("maple")
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Equal(t, len(words)-1, s.Size())
}

// opaque hides the Enumerator implementation of the wrapped index.
type opaque[T any] struct {
	index.Index[T]
}

func TestListWithoutEnumerator(t *testing.T) {
	builder := func(points []float64, capacity int, p index.Params, m index.Metric[float64]) (index.Index[float64], error) {
		idx, err := engine.Build(points, capacity, p, m)
		if err != nil {
			return nil, err
		}
		return opaque[float64]{idx}, nil
	}

	s, err := NewKDTree[float64](WithBuilder(index.Builder[float64](builder)), exhaustive)
	require.NoError(t, err)

	rng := testutil.NewRNG(12)
	points := rng.Scalars(80, 0, 100)
	require.NoError(t, s.AddAll(points))
	assert.Empty(t, cmp.Diff(points, s.List(), lessFloat))

	removed, err := s.Remove(points[10])
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Len(t, s.List(), len(points)-1)
}

// listless hides Points and fails every exhaustive k-NN search.
type listless[T any] struct {
	index.Index[T]
}

var errListless = errors.New("exhaustive search unavailable")

func (l listless[T]) KNNSearch(q T, k int, sp index.SearchParams) ([]index.SearchResult, error) {
	if sp.Exhaustive() {
		return nil, errListless
	}
	return l.Index.KNNSearch(q, k, sp)
}

func TestRemoveWithFailingEnumeration(t *testing.T) {
	builder := func(points []float64, capacity int, p index.Params, m index.Metric[float64]) (index.Index[float64], error) {
		idx, err := engine.Build(points, capacity, p, m)
		if err != nil {
			return nil, err
		}
		return listless[float64]{idx}, nil
	}

	metrics := &BasicMetricsCollector{}
	s, err := NewLinear[float64](WithBuilder(index.Builder[float64](builder)), WithMetricsCollector(metrics))
	require.NoError(t, err)
	require.NoError(t, s.AddAll([]float64{1, 2, 3}))

	removed, err := s.Remove(2)
	assert.True(t, removed)
	var be *BuildError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, "list", be.Op)
	assert.ErrorIs(t, err, errListless)
	assert.Equal(t, 0, s.Size())
	assert.Empty(t, s.List())
	assert.Equal(t, int64(1), metrics.GetStats().RebuildErrors)

	require.NoError(t, s.Add(4))
	assert.Equal(t, 1, s.Size())
	assert.Equal(t, 4.0, mustNearest(t, s, 0))
}

func TestFailedRebuildEmptiesStore(t *testing.T) {
	errBoom := errors.New("boom")
	calls := 0
	builder := func(points []float64, capacity int, p index.Params, m index.Metric[float64]) (index.Index[float64], error) {
		calls++
		if calls == 2 {
			return nil, errBoom
		}
		return engine.Build(points, capacity, p, m)
	}

	s, err := NewLinear[float64](WithBuilder(index.Builder[float64](builder)))
	require.NoError(t, err)
	require.NoError(t, s.Add(1))

	err = s.Add(2)
	var be *BuildError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, index.KindLinear, be.Kind)
	assert.ErrorIs(t, err, errBoom)
	assert.Equal(t, 0, s.Size())
	assert.Empty(t, s.List())

	_, err = s.Nearest(1)
	assert.ErrorIs(t, err, ErrEmptyStore)

	require.NoError(t, s.Add(3))
	assert.Equal(t, []float64{3}, s.List())
}

func TestDimensionCheckedBeforeGrowth(t *testing.T) {
	metrics := &BasicMetricsCollector{}
	s, err := NewLinear[[]float64](WithMetricsCollector(metrics))
	require.NoError(t, err)
	require.NoError(t, s.AddAll([][]float64{{1, 2}, {3, 4}}))
	for i := 0; s.Size() < s.Capacity(); i++ {
		require.NoError(t, s.Add([]float64{float64(i), 0}))
	}

	capacity := s.Capacity()
	rebuilds := metrics.GetStats().RebuildCount

	var dm *ErrDimensionMismatch
	require.ErrorAs(t, s.Add([]float64{1, 2, 3}), &dm)
	assert.Equal(t, 2, dm.Expected)
	assert.Equal(t, 3, dm.Actual)

	require.ErrorAs(t, s.AddAll([][]float64{{5, 6}, {7}}), &dm)
	assert.Equal(t, 1, dm.Actual)

	assert.Equal(t, capacity, s.Capacity())
	assert.Equal(t, capacity, s.Size())
	assert.Equal(t, rebuilds, metrics.GetStats().RebuildCount)
}

func TestShortCapacityEngine(t *testing.T) {
	builder := func(points []float64, _ int, p index.Params, m index.Metric[float64]) (index.Index[float64], error) {
		return engine.Build(points, len(points), p, m)
	}

	s, err := NewLinear[float64](WithBuilder(index.Builder[float64](builder)))
	require.NoError(t, err)

	for i := range 20 {
		require.NoError(t, s.Add(float64(i)))
	}
	assert.Equal(t, 20, s.Size())

	require.NoError(t, s.AddAll([]float64{20, 21}))
	assert.Equal(t, 22, s.Size())
	assert.Equal(t, 21.0, mustNearest(t, s, 30))
}

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	s, err := NewLinear[float64](WithLogger(logger))
	require.NoError(t, err)
	require.NoError(t, s.Add(1))
	require.NoError(t, s.Add(2))
	_, err = s.NearestK(1, 1)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "add completed")
	assert.Contains(t, out, "index rebuilt")
	assert.Contains(t, out, "search completed")
	assert.Contains(t, out, "kind=Linear")
}

func TestClose(t *testing.T) {
	var nilStore *Store[float64]
	assert.NoError(t, nilStore.Close())

	s, err := NewLinear[float64]()
	require.NoError(t, err)
	require.NoError(t, s.AddAll([]float64{1, 2, 3}))
	require.NoError(t, s.Close())
	assert.Equal(t, 0, s.Size())

	require.NoError(t, s.Add(4))
	assert.Equal(t, []float64{4}, s.List())
}

func mustNearest(t *testing.T, s *Store[float64], x float64) float64 {
	t.Helper()
	got, err := s.Nearest(x)
	require.NoError(t, err)
	return got
}

func cmpFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
