package hdbscan

// unionFind is a disjoint-set forest over 2*n - 1 elements: points 0..n-1
// and merged dendrogram clusters n..2n-2.
type unionFind struct {
	parent []int
	size   []int
	// nextLabel is the ID for the next merged cluster, starting at n.
	nextLabel int
}

func newUnionFind(n int) *unionFind {
	total := max(2*n-1, 1)
	parent := make([]int, total)
	size := make([]int, total)
	for i := range parent {
		parent[i] = -1 // root
	}
	for i := 0; i < n; i++ {
		size[i] = 1
	}
	return &unionFind{
		parent:    parent,
		size:      size,
		nextLabel: n,
	}
}

// find returns the root of the set containing x, with path compression.
func (uf *unionFind) find(x int) int {
	root := x
	for uf.parent[root] != -1 {
		root = uf.parent[root]
	}
	for uf.parent[x] != -1 {
		x, uf.parent[x] = uf.parent[x], root
	}
	return root
}
