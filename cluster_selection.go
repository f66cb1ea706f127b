package hdbscan

import "math"

// PropagateTree walks the cluster tree bottom-up, letting every cluster
// choose between itself and the clusters already selected below it, and
// propagating the lowest leaf death level upwards. Afterwards the root's
// PropagatedDescendants is the flat clustering.
//
// Children always carry larger labels than their parent, so visiting labels
// in descending order handles every child before its parent.
//
// It reports whether any cluster has infinite stability, which happens when
// points detach at level 0 (duplicate points, or a zero distance).
func PropagateTree(tree *ClusterTree) bool {
	infiniteStability := false
	for label := tree.Len(); label >= rootLabel; label-- {
		c := tree.Get(label)
		propagate(tree, c)
		if math.IsInf(c.Stability, 1) {
			infiniteStability = true
		}
	}
	return infiniteStability
}

// propagate hands c's contribution to its parent. A cluster selects itself
// when it is a leaf, satisfies more constraints than its selected
// descendants, or ties on constraints and is at least as stable; otherwise it
// passes its descendants' totals through.
func propagate(tree *ClusterTree, c *ClusterNode) {
	if c.PropagatedLowestChildDeathLevel == unsetDeathLevel {
		c.PropagatedLowestChildDeathLevel = c.DeathLevel
	}

	parent := tree.Get(c.Parent)
	if parent == nil {
		return
	}

	if c.PropagatedLowestChildDeathLevel < parent.PropagatedLowestChildDeathLevel {
		parent.PropagatedLowestChildDeathLevel = c.PropagatedLowestChildDeathLevel
	}

	if selectsItself(c) {
		parent.propagatedNumConstraintsSatisfied += c.numConstraintsSatisfied
		parent.propagatedStability += c.Stability
		parent.PropagatedDescendants = append(parent.PropagatedDescendants, c.Label)
		return
	}

	parent.propagatedNumConstraintsSatisfied += c.propagatedNumConstraintsSatisfied
	parent.propagatedStability += c.propagatedStability
	parent.PropagatedDescendants = append(parent.PropagatedDescendants, c.PropagatedDescendants...)
}

func selectsItself(c *ClusterNode) bool {
	switch {
	case !c.HasChildren:
		return true
	case c.numConstraintsSatisfied != c.propagatedNumConstraintsSatisfied:
		return c.numConstraintsSatisfied > c.propagatedNumConstraintsSatisfied
	default:
		return c.Stability >= c.propagatedStability
	}
}
