// Package hdbscan implements HDBSCAN* (Hierarchical Density-Based Spatial
// Clustering of Applications with Noise) with GLOSH outlier scores and
// optional must-link/cannot-link constraints.
//
// The pipeline works on any pairwise distance: core distances come from the
// (MinPoints-1)-th nearest neighbor, a minimum spanning tree is grown over
// mutual reachability distances, and cutting that tree from its heaviest
// edge down yields a hierarchy of clusters. The flat clustering keeps the
// clusters with the highest excess of mass, unless constraints say otherwise.
//
// Basic usage:
//
//	cfg := hdbscan.DefaultConfig()
//	cfg.MinPoints = 3
//	cfg.MinClusterSize = 3
//	result, err := hdbscan.Cluster(data, cfg)
//	// result.Labels[i] is the cluster of point i (0 = noise)
//	// result.OutlierScores is sorted from most typical to most outlying
//
// Other sources of distances:
//
//	hdbscan.ClusterPrecomputed(matrix, cfg)
//	hdbscan.ClusterSparse(vectors, hdbscan.SparseCosineMetric{}, cfg)
//	hdbscan.Run(hdbscan.FromFunc(n, distance), cfg)
//
// # Distance caching
//
// Every stage asks for distances many times, so Run precomputes them on
// Config.Workers goroutines. CacheDense stores the n×n matrix. CacheSparse
// stores only the distances that differ from the metric's most common value
// (1 for cosine distance between sparse vectors with disjoint support), which
// keeps memory proportional to the number of overlapping pairs. CacheNone
// calls the source every time.
//
// The stages are exported individually (ComputeCoreDistances, ConstructMST,
// BuildHierarchy, PropagateTree, FindProminentClusters,
// CalculateOutlierScores) for callers that need the intermediate results.
package hdbscan
