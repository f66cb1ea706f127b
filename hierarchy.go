package hdbscan

import "slices"

// Hierarchy is the output of BuildHierarchy.
type Hierarchy struct {
	// Tree holds every cluster ever created, the root with label 1.
	Tree *ClusterTree

	// Levels are label snapshots of all points, one per significant level
	// from the highest down, followed by a final all-noise snapshot. A
	// cluster's HierarchyPosition indexes the snapshot holding its points.
	Levels [][]int

	// NoiseLevels is the edge weight at which each point became noise.
	NoiseLevels []float64

	// LastClusters is the label each point had right before becoming noise,
	// 0 if it never belonged to a cluster.
	LastClusters []int
}

// BuildHierarchy cuts the MST g from its heaviest edge down and records the
// resulting cluster tree. g must be sorted with SortByWeightDescending; its
// adjacency lists are consumed.
//
// All edges of one weight are removed as a batch. Each cluster touched by the
// batch is then split into its connected components: components with at
// least minClusterSize points and one edge become clusters if two or more of
// them exist, and every smaller or edgeless component becomes noise. A
// cluster that merely shrinks keeps its label.
//
// constraints, if any, are credited to clusters as they are born.
func BuildHierarchy(g *Graph, minClusterSize int, constraints []Constraint) *Hierarchy {
	n := g.NumVertices()
	b := &hierarchyBuilder{
		g:              g,
		minClusterSize: minClusterSize,
		tree:           newClusterTree(n),
		labels:         make([]int, n),
		noiseLevels:    make([]float64, n),
		lastClusters:   make([]int, n),
		trackNoise:     len(constraints) > 0,
		pending:        make([]bool, n),
	}
	for i := range b.labels {
		b.labels[i] = rootLabel
	}
	previous := slices.Clone(b.labels)

	countConstraints(b.tree, []int{rootLabel}, constraints, b.labels)

	var levels [][]int
	nextLevelSignificant := true
	edges := g.Edges()

	for start := 0; start < len(edges); {
		level := edges[start].Weight
		end := start
		for end < len(edges) && sameLevel(edges[end].Weight, level) {
			end++
		}

		var affectedLabels, affectedVertices []int
		for _, e := range edges[start:end] {
			g.removeEdge(e.A, e.B)
			if b.labels[e.A] == 0 {
				continue
			}
			affectedVertices = append(affectedVertices, e.A, e.B)
			affectedLabels = append(affectedLabels, b.labels[e.A])
		}
		start = end

		if len(affectedLabels) == 0 {
			continue
		}
		affectedLabels = sortedUnique(affectedLabels)
		affectedVertices = sortedUnique(affectedVertices)

		b.newClusters = b.newClusters[:0]
		for i := len(affectedLabels) - 1; i >= 0; i-- {
			label := affectedLabels[i]
			var examined []int
			for _, v := range affectedVertices {
				if b.labels[v] == label {
					examined = append(examined, v)
				}
			}
			b.splitCluster(label, examined, level)
		}

		if nextLevelSignificant || len(b.newClusters) > 0 {
			levels = append(levels, slices.Clone(previous))
		}

		newLabels := make([]int, len(b.newClusters))
		for i, c := range b.newClusters {
			c.HierarchyPosition = len(levels)
			newLabels[i] = c.Label
		}
		if len(newLabels) > 0 {
			countConstraints(b.tree, newLabels, constraints, b.labels)
		}

		copy(previous, b.labels)
		nextLevelSignificant = len(b.newClusters) > 0
	}

	levels = append(levels, make([]int, n))

	return &Hierarchy{
		Tree:         b.tree,
		Levels:       levels,
		NoiseLevels:  b.noiseLevels,
		LastClusters: b.lastClusters,
	}
}

type hierarchyBuilder struct {
	g              *Graph
	minClusterSize int
	tree           *ClusterTree

	labels       []int
	noiseLevels  []float64
	lastClusters []int

	// trackNoise keeps the virtual children needed to credit cannot-link
	// constraints to noise.
	trackNoise bool

	// newClusters are the clusters born in the current batch.
	newClusters []*ClusterNode

	// pending marks the examined vertices not yet reached by a component.
	pending []bool
}

// splitCluster explores the components of cluster label reachable from
// vertices (sorted ascending) after the current batch was removed at level.
//
// Exploration starts from the highest pending vertex. The first component
// that qualifies as a cluster is left half-explored; it is finished and
// labeled only if a second one shows up, so a cluster that just sheds noise
// costs time proportional to the noise.
func (b *hierarchyBuilder) splitCluster(label int, vertices []int, level float64) {
	for _, v := range vertices {
		b.pending[v] = true
	}

	var first *component
	numChildren := 0

	for i := len(vertices) - 1; i >= 0; i-- {
		root := vertices[i]
		if !b.pending[root] {
			continue
		}
		b.pending[root] = false

		comp := newComponent(root)
		counted := false
		for comp.hasUnexplored() {
			v := comp.next()
			for _, neighbor := range b.g.Neighbors(v) {
				comp.anyEdges = true
				if comp.add(neighbor) {
					b.pending[neighbor] = false
				}
			}

			if !counted && b.qualifies(comp) {
				counted = true
				numChildren++
				if first == nil {
					first = comp
					break
				}
			}
		}

		switch {
		case numChildren >= 2 && b.qualifies(comp):
			// A second pass over the first child's component is not a new child.
			if comp.contains(first.members[0]) {
				numChildren--
			} else {
				b.createCluster(comp.members, label, level)
			}
		case !b.qualifies(comp):
			b.createNoise(comp.members, label, level)
		}
	}

	if numChildren >= 2 && b.labels[first.members[0]] == label {
		for first.hasUnexplored() {
			for _, neighbor := range b.g.Neighbors(first.next()) {
				first.add(neighbor)
			}
		}
		b.createCluster(first.members, label, level)
	}
}

func (b *hierarchyBuilder) qualifies(c *component) bool {
	return len(c.members) >= b.minClusterSize && c.anyEdges
}

// createCluster moves points out of parent into a new cluster born at level.
func (b *hierarchyBuilder) createCluster(points []int, parent int, level float64) {
	label := b.tree.Len() + 1
	for _, p := range points {
		b.labels[p] = label
	}
	b.tree.Get(parent).detachPoints(len(points), level)
	b.newClusters = append(b.newClusters, b.tree.add(parent, level, len(points)))
}

// createNoise moves points out of parent into noise at level.
func (b *hierarchyBuilder) createNoise(points []int, parent int, level float64) {
	for _, p := range points {
		b.labels[p] = 0
		b.noiseLevels[p] = level
		b.lastClusters[p] = parent
	}
	c := b.tree.Get(parent)
	c.detachPoints(len(points), level)
	if b.trackNoise {
		c.addToVirtualChild(points)
	}
}

// component is a connected component under breadth-first exploration.
type component struct {
	members  []int
	in       map[int]struct{}
	queue    []int
	anyEdges bool
}

func newComponent(root int) *component {
	return &component{
		members: []int{root},
		in:      map[int]struct{}{root: {}},
		queue:   []int{root},
	}
}

func (c *component) hasUnexplored() bool { return len(c.queue) > 0 }

func (c *component) next() int {
	v := c.queue[0]
	c.queue = c.queue[1:]
	return v
}

// add reports whether v was new to the component.
func (c *component) add(v int) bool {
	if _, ok := c.in[v]; ok {
		return false
	}
	c.in[v] = struct{}{}
	c.members = append(c.members, v)
	c.queue = append(c.queue, v)
	return true
}

func (c *component) contains(v int) bool {
	_, ok := c.in[v]
	return ok
}

func sortedUnique(s []int) []int {
	slices.Sort(s)
	return slices.Compact(s)
}

// sameLevel compares edge weights for batching. NaN weights form one batch.
func sameLevel(a, b float64) bool {
	return a == b || (a != a && b != b)
}
