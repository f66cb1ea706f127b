package hdbscan

import "sort"

// SingleLinkage converts the MST g into a single-linkage dendrogram in scipy
// format: one row [left, right, distance, mergedSize] per merge, with merged
// cluster IDs starting at n. Self edges are ignored and g is not modified.
func SingleLinkage(g *Graph) [][4]float64 {
	n := g.NumVertices()

	sorted := make([]Edge, 0, len(g.Edges()))
	for _, e := range g.Edges() {
		if e.A != e.B {
			sorted = append(sorted, e)
		}
	}
	if len(sorted) == 0 {
		return nil
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Weight < sorted[j].Weight
	})

	uf := newUnionFind(n)
	result := make([][4]float64, 0, len(sorted))

	for _, e := range sorted {
		aa := uf.find(e.A)
		bb := uf.find(e.B)
		newSize := uf.size[aa] + uf.size[bb]

		result = append(result, [4]float64{float64(aa), float64(bb), e.Weight, float64(newSize)})

		// Both roots point at the next dendrogram ID.
		uf.size[uf.nextLabel] = newSize
		uf.parent[aa] = uf.nextLabel
		uf.parent[bb] = uf.nextLabel
		uf.nextLabel++
	}

	return result
}
