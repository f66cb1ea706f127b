package hdbscan

import "math"

// noParent is the Parent of the root cluster. Label 0 also means noise, which
// is never a real cluster.
const noParent = 0

// rootLabel is the label of the cluster holding every point before any edge
// is removed.
const rootLabel = 1

// unsetDeathLevel marks a cluster whose lowest descendant death level has not
// been propagated yet.
const unsetDeathLevel = math.MaxFloat64

// ClusterNode is a node of the HDBSCAN* cluster tree.
//
// Levels are mutual reachability distances: a cluster is born at the MST
// weight that split it off its parent and dies at the weight that removes its
// last point. Levels therefore decrease from birth to death.
type ClusterNode struct {
	Label  int
	Parent int

	// BirthLevel is NaN for the root, which exists before any level.
	BirthLevel float64
	DeathLevel float64

	// Stability is the excess of mass accumulated as points detach:
	// Σ count * (1/level - 1/BirthLevel).
	Stability float64

	// HierarchyPosition indexes the label snapshot holding the points this
	// cluster had when it was born.
	HierarchyPosition int

	HasChildren bool

	// PropagatedLowestChildDeathLevel is the smallest death level among the
	// leaf descendants of this cluster (its own if it has none).
	PropagatedLowestChildDeathLevel float64

	// PropagatedDescendants lists the labels selected below this cluster.
	// For the root it is the final flat clustering.
	PropagatedDescendants []int

	initialPoints int
	numPoints     int

	propagatedStability float64

	numConstraintsSatisfied           int
	propagatedNumConstraintsSatisfied int

	// virtualChild holds the points that fell out of this cluster as noise,
	// until the constraints they satisfy have been counted.
	virtualChild map[int]struct{}
}

// Size returns the number of points the cluster was born with.
func (c *ClusterNode) Size() int { return c.initialPoints }

// ConstraintsSatisfied returns the number of constraints satisfied by the
// cluster itself.
func (c *ClusterNode) ConstraintsSatisfied() int { return c.numConstraintsSatisfied }

// ClusterTree is an arena of clusters indexed by label. Parents are stored as
// labels and children are implicit.
type ClusterTree struct {
	clusters []*ClusterNode
}

// newClusterTree creates a tree holding only the root, with all numPoints.
func newClusterTree(numPoints int) *ClusterTree {
	t := &ClusterTree{clusters: []*ClusterNode{nil}}
	t.add(noParent, math.NaN(), numPoints)
	return t
}

// add creates a cluster under parent with the next free label.
func (t *ClusterTree) add(parent int, birthLevel float64, numPoints int) *ClusterNode {
	c := &ClusterNode{
		Label:                           len(t.clusters),
		Parent:                          parent,
		BirthLevel:                      birthLevel,
		PropagatedLowestChildDeathLevel: unsetDeathLevel,
		initialPoints:                   numPoints,
		numPoints:                       numPoints,
	}
	if parent != noParent {
		t.clusters[parent].HasChildren = true
	}
	t.clusters = append(t.clusters, c)
	return c
}

// Root returns the root cluster.
func (t *ClusterTree) Root() *ClusterNode { return t.clusters[rootLabel] }

// Get returns the cluster with the given label, or nil for noise and unknown
// labels.
func (t *ClusterTree) Get(label int) *ClusterNode {
	if label <= 0 || label >= len(t.clusters) {
		return nil
	}
	return t.clusters[label]
}

// Len returns the number of clusters, the root included.
func (t *ClusterTree) Len() int { return len(t.clusters) - 1 }

// Clusters returns all clusters in label order.
func (t *ClusterTree) Clusters() []*ClusterNode { return t.clusters[1:] }
