package hdbscan

import (
	"math"
	"slices"
	"sort"
)

// Edge is an undirected weighted edge. A == B marks a self edge.
type Edge struct {
	A, B   int
	Weight float64
}

// Graph is an undirected weighted graph over vertices 0..n-1 with an edge
// list and per-vertex adjacency lists. The hierarchy builder removes edges
// from the adjacency lists as it cuts the tree; the edge list itself is never
// modified after sorting.
type Graph struct {
	numVertices int
	edges       []Edge
	adjacency   [][]int
}

// NewGraph builds a Graph from an edge list. Adjacency lists follow the order
// of edges; a self edge appears once in its vertex's list.
func NewGraph(numVertices int, edges []Edge) *Graph {
	adjacency := make([][]int, numVertices)
	for _, e := range edges {
		adjacency[e.A] = append(adjacency[e.A], e.B)
		if e.A != e.B {
			adjacency[e.B] = append(adjacency[e.B], e.A)
		}
	}
	return &Graph{numVertices: numVertices, edges: edges, adjacency: adjacency}
}

// NumVertices returns the number of vertices.
func (g *Graph) NumVertices() int { return g.numVertices }

// NumEdges returns the number of edges, self edges included.
func (g *Graph) NumEdges() int { return len(g.edges) }

// Edges returns the edge list. Callers must not modify it.
func (g *Graph) Edges() []Edge { return g.edges }

// Neighbors returns the current adjacency list of v.
func (g *Graph) Neighbors(v int) []int { return g.adjacency[v] }

// TotalWeight sums all edge weights.
func (g *Graph) TotalWeight() float64 {
	var total float64
	for _, e := range g.edges {
		total += e.Weight
	}
	return total
}

// SortByWeightDescending orders the edge list from heaviest to lightest.
// The order of equal weights is unspecified; the hierarchy builder consumes
// all edges of one weight as a single batch.
func (g *Graph) SortByWeightDescending() {
	sort.SliceStable(g.edges, func(i, j int) bool {
		return g.edges[i].Weight > g.edges[j].Weight
	})
}

// removeEdge drops the first occurrence of each endpoint from the other's
// adjacency list. Removing a self edge twice is a no-op the second time.
func (g *Graph) removeEdge(a, b int) {
	g.adjacency[a] = removeFirst(g.adjacency[a], b)
	g.adjacency[b] = removeFirst(g.adjacency[b], a)
}

func removeFirst(list []int, v int) []int {
	if i := slices.Index(list, v); i >= 0 {
		return slices.Delete(list, i, i+1)
	}
	return list
}

// hasInfiniteEdge reports whether any edge weight is +Inf, which happens when
// the distance graph is disconnected.
func (g *Graph) hasInfiniteEdge() bool {
	for _, e := range g.edges {
		if math.IsInf(e.Weight, 1) {
			return true
		}
	}
	return false
}

// ConstructMST builds the minimum spanning tree of mutual reachability
// distances with Prim's algorithm, growing the tree from the last point.
//
// Every iteration scans the unattached points once: it relaxes their best
// distance against the point attached last, and attaches the closest (the
// last one found on ties). The tree has n-1 edges; edge i joins point i
// (i < n-1) with its tree neighbor. With selfEdges, n more edges (i, i)
// weighted by the core distance of i are appended. They do not change
// connectivity but let the hierarchy record the death of clusters whose
// points are held together only by their own core distance.
//
// The O(n²) time and O(n) extra space do not depend on how d caches.
func ConstructMST(d Source, coreDistances []float64, selfEdges bool) *Graph {
	n := d.Len()
	if n == 0 {
		return NewGraph(0, nil)
	}

	attached := make([]bool, n)
	nearestNeighbor := make([]int, n-1)
	nearestDistance := make([]float64, n-1)
	for i := range nearestDistance {
		nearestNeighbor[i] = -1
		nearestDistance[i] = math.Inf(1)
	}

	current := n - 1
	attached[current] = true

	for numAttached := 1; numAttached < n; numAttached++ {
		closest := -1
		closestDistance := math.Inf(1)

		for neighbor := 0; neighbor < n; neighbor++ {
			if neighbor == current || attached[neighbor] {
				continue
			}

			mrd := mutualReachability(d.Distance(current, neighbor),
				coreDistances[current], coreDistances[neighbor])
			if mrd < nearestDistance[neighbor] || nearestNeighbor[neighbor] < 0 {
				nearestDistance[neighbor] = mrd
				nearestNeighbor[neighbor] = current
			}

			if nearestDistance[neighbor] <= closestDistance || closest < 0 {
				closestDistance = nearestDistance[neighbor]
				closest = neighbor
			}
		}

		attached[closest] = true
		current = closest
	}

	capacity := n - 1
	if selfEdges {
		capacity += n
	}
	edges := make([]Edge, 0, capacity)
	for i := 0; i < n-1; i++ {
		edges = append(edges, Edge{A: nearestNeighbor[i], B: i, Weight: nearestDistance[i]})
	}
	if selfEdges {
		for i := 0; i < n; i++ {
			edges = append(edges, Edge{A: i, B: i, Weight: coreDistances[i]})
		}
	}

	return NewGraph(n, edges)
}
