package index

import "fmt"

// Kind selects the index variant built by the engine.
type Kind int

// Index kinds.
const (
	KindLinear Kind = iota
	KindHierarchicalClustering
	KindKDTree
	KindKMeans
	KindComposite
	KindKDTreeSingle
	KindKDTreeCuda3D
)

// String returns a string representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindLinear:
		return "Linear"
	case KindHierarchicalClustering:
		return "HierarchicalClustering"
	case KindKDTree:
		return "KDTree"
	case KindKMeans:
		return "KMeans"
	case KindComposite:
		return "Composite"
	case KindKDTreeSingle:
		return "KDTreeSingle"
	case KindKDTreeCuda3D:
		return "KDTreeCuda3D"
	default:
		return fmt.Sprintf("Unknown(%d)", int(k))
	}
}

// RequiresVectors reports whether the kind partitions coordinate space and
// therefore can only be built with a VectorMetric.
func (k Kind) RequiresVectors() bool {
	switch k {
	case KindKDTree, KindKMeans, KindComposite, KindKDTreeSingle, KindKDTreeCuda3D:
		return true
	default:
		return false
	}
}

// CentersInit selects how cluster centers are seeded.
type CentersInit int

// Center seeding algorithms.
const (
	CentersRandom CentersInit = iota
	CentersGonzales
	CentersKMeansPP
)

// String returns a string representation of the CentersInit.
func (c CentersInit) String() string {
	switch c {
	case CentersRandom:
		return "Random"
	case CentersGonzales:
		return "Gonzales"
	case CentersKMeansPP:
		return "KMeans++"
	default:
		return fmt.Sprintf("Unknown(%d)", int(c))
	}
}

// Params describes which index variant to build and how to tune it.
// Fields that do not apply to the selected Kind are ignored.
type Params struct {
	Kind Kind

	// Trees is the number of trees (KDTree, Composite, HierarchicalClustering).
	Trees int

	// LeafMaxSize is the largest leaf bucket (KDTree, KDTreeSingle,
	// KDTreeCuda3D, HierarchicalClustering).
	LeafMaxSize int

	// Branching is the fan-out of clustering trees (KMeans, Composite,
	// HierarchicalClustering).
	Branching int

	// Iterations bounds the k-means iterations per node; -1 iterates until
	// the assignment converges (KMeans, Composite).
	Iterations int

	// CentersInit selects the center seeding algorithm.
	CentersInit CentersInit

	// CBIndex weighs cluster variance when ordering k-means branches
	// (KMeans, Composite).
	CBIndex float64

	// RebuildThreshold triggers a full structure rebuild once incremental
	// inserts grow the index by this factor since the last build. Zero
	// disables it.
	RebuildThreshold float64

	// BuildWorkers bounds how many trees are built concurrently. Values
	// above 1 require a distance function that is safe for concurrent use.
	BuildWorkers int

	// Seed seeds the randomized construction.
	Seed int64
}

// DefaultParams returns the preset for kind.
func DefaultParams(kind Kind) Params {
	p := Params{
		Kind:             kind,
		RebuildThreshold: 2,
		BuildWorkers:     1,
	}

	switch kind {
	case KindHierarchicalClustering:
		p.Branching = 32
		p.Trees = 4
		p.LeafMaxSize = 100
		p.CentersInit = CentersRandom
	case KindKDTree:
		p.Trees = 4
		p.LeafMaxSize = 1
	case KindKMeans:
		p.Branching = 32
		p.Iterations = 11
		p.CentersInit = CentersRandom
		p.CBIndex = 0.2
	case KindComposite:
		p.Trees = 4
		p.LeafMaxSize = 1
		p.Branching = 32
		p.Iterations = 11
		p.CentersInit = CentersRandom
		p.CBIndex = 0.2
	case KindKDTreeSingle:
		p.LeafMaxSize = 10
	case KindKDTreeCuda3D:
		p.LeafMaxSize = 64
	}

	return p
}

// Validate checks the fields used by p.Kind.
func (p Params) Validate() error {
	if p.Kind < KindLinear || p.Kind > KindKDTreeCuda3D {
		return &ErrInvalidParams{Field: "Kind", Value: p.Kind, Reason: "unknown index kind"}
	}

	switch p.Kind {
	case KindKDTree, KindComposite, KindHierarchicalClustering:
		if p.Trees < 1 {
			return &ErrInvalidParams{Field: "Trees", Value: p.Trees, Reason: "must be at least 1"}
		}
	}

	switch p.Kind {
	case KindKDTree, KindComposite, KindKDTreeSingle, KindKDTreeCuda3D, KindHierarchicalClustering:
		if p.LeafMaxSize < 1 {
			return &ErrInvalidParams{Field: "LeafMaxSize", Value: p.LeafMaxSize, Reason: "must be at least 1"}
		}
	}

	switch p.Kind {
	case KindKMeans, KindComposite, KindHierarchicalClustering:
		if p.Branching < 2 {
			return &ErrInvalidParams{Field: "Branching", Value: p.Branching, Reason: "must be at least 2"}
		}
		if p.CentersInit < CentersRandom || p.CentersInit > CentersKMeansPP {
			return &ErrInvalidParams{Field: "CentersInit", Value: p.CentersInit, Reason: "unknown seeding algorithm"}
		}
	}

	switch p.Kind {
	case KindKMeans, KindComposite:
		if p.Iterations == 0 || p.Iterations < -1 {
			return &ErrInvalidParams{Field: "Iterations", Value: p.Iterations, Reason: "must be positive or -1"}
		}
		if p.CBIndex < 0 {
			return &ErrInvalidParams{Field: "CBIndex", Value: p.CBIndex, Reason: "must not be negative"}
		}
	}

	if p.RebuildThreshold != 0 && p.RebuildThreshold < 1 {
		return &ErrInvalidParams{Field: "RebuildThreshold", Value: p.RebuildThreshold, Reason: "must be 0 or at least 1"}
	}
	if p.BuildWorkers < 0 {
		return &ErrInvalidParams{Field: "BuildWorkers", Value: p.BuildWorkers, Reason: "must not be negative"}
	}

	return nil
}

// CheckUnlimited requests an exhaustive search.
const CheckUnlimited = -1

// SearchParams controls the accuracy of a query. It can change between
// queries without affecting the index.
type SearchParams struct {
	// Checks bounds how many points a k-NN tree search scores once it holds
	// enough results. Values <= 0 search exhaustively. Radius searches
	// ignore it and score every point their structure cannot rule out by
	// distance bounds.
	Checks int

	// Eps allows approximate answers: branches are pruned when their lower
	// bound times (1+Eps) exceeds the current worst result.
	Eps float64

	// Sorted requests radius results in ascending distance order. k-NN
	// results are always sorted.
	Sorted bool

	// MaxNeighbors caps radius results to the closest MaxNeighbors points.
	// Values <= 0 return every match.
	MaxNeighbors int
}

// DefaultSearchParams returns the default query settings.
func DefaultSearchParams() SearchParams {
	return SearchParams{
		Checks:       32,
		Eps:          0,
		Sorted:       true,
		MaxNeighbors: -1,
	}
}

// Exhaustive reports whether sp disables the check budget.
func (sp SearchParams) Exhaustive() bool { return sp.Checks <= 0 }
