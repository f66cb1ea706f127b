package hdbscan

import "github.com/cockroachdb/errors"

// detachPoints removes count points from c at level, adding their share of
// excess of mass to the stability:
//
//	count * (1/level - 1/BirthLevel)
//
// A cluster whose count reaches zero dies at level, permanently.
func (c *ClusterNode) detachPoints(count int, level float64) {
	c.numPoints -= count
	c.Stability += float64(count) * (1/level - 1/c.BirthLevel)

	switch {
	case c.numPoints == 0:
		c.DeathLevel = level
	case c.numPoints < 0:
		panic(errors.AssertionFailedf("hdbscan: cluster %d has %d points", c.Label, c.numPoints))
	}
}

// addToVirtualChild records points that left c as noise.
func (c *ClusterNode) addToVirtualChild(points []int) {
	if c.virtualChild == nil {
		c.virtualChild = make(map[int]struct{}, len(points))
	}
	for _, p := range points {
		c.virtualChild[p] = struct{}{}
	}
}

// virtualChildContains reports whether point left c as noise and has not
// been released yet.
func (c *ClusterNode) virtualChildContains(point int) bool {
	_, ok := c.virtualChild[point]
	return ok
}

// releaseVirtualChild drops the noise set once its constraints are counted.
func (c *ClusterNode) releaseVirtualChild() {
	c.virtualChild = nil
}
