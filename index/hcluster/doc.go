// Package hcluster provides hierarchical clustering trees that work with any
// distance function.
//
// Each tree picks Branching pivots among the points of a node, assigns every
// point to its closest pivot and recurses until a node holds at most
// LeafMaxSize points. Pivots are real points, so only pairwise distances are
// needed. Several trees seeded differently are searched together
// best-bin-first, ordered by the distance from the query to each pivot.
package hcluster
