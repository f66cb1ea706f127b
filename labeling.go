package hdbscan

import (
	"maps"
	"slices"
)

// FindProminentClusters labels every point with the selected cluster it
// belongs to, or 0 for noise. PropagateTree must have run on tree.
//
// Each selected cluster is read from the snapshot in levels at its
// HierarchyPosition, where its points carry its label.
func FindProminentClusters(tree *ClusterTree, levels [][]int, numPoints int) []int {
	labels := make([]int, numPoints)

	byPosition := make(map[int][]int)
	for _, label := range tree.Root().PropagatedDescendants {
		pos := tree.Get(label).HierarchyPosition
		byPosition[pos] = append(byPosition[pos], label)
	}

	for _, pos := range slices.Sorted(maps.Keys(byPosition)) {
		selected := byPosition[pos]
		for i, label := range levels[pos] {
			if slices.Contains(selected, label) {
				labels[i] = label
			}
		}
	}
	return labels
}
