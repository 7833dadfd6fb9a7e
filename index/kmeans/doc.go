// Package kmeans provides a hierarchical k-means tree for the Euclidean
// fast path.
//
// Every node is split into Branching clusters with Lloyd's algorithm. Nodes
// keep their mean, their radius and their variance: the radius prunes whole
// subtrees that cannot hold a better result, and the variance (weighted by
// CBIndex) biases the exploration order towards tight clusters.
package kmeans
