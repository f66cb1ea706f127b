package hdbscan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scoreOf(scores []OutlierScore, point int) OutlierScore {
	for _, s := range scores {
		if s.Point == point {
			return s
		}
	}
	return OutlierScore{Point: -1}
}

func TestCalculateOutlierScores_DistantPoint(t *testing.T) {
	src := lineSource(0, 1, 2, 10, 11, 12, 40)
	core := ComputeCoreDistances(src, 2)
	g := ConstructMST(src, core, true)
	g.SortByWeightDescending()
	h := BuildHierarchy(g, 3, nil)
	PropagateTree(h.Tree)

	scores := CalculateOutlierScores(h.Tree, h.NoiseLevels, h.LastClusters, core)
	require.Len(t, scores, 7)

	// Point 6 left the root at 28; the lowest death below the root is 1.
	last := scores[len(scores)-1]
	assert.Equal(t, 6, last.Point)
	assert.InDelta(t, 1-1.0/28, last.Score, 1e-12)
	assert.Equal(t, 28.0, last.CoreDistance)

	for _, s := range scores[:6] {
		assert.Zero(t, s.Score, "point %d", s.Point)
	}
}

func TestCalculateOutlierScores_Sorted(t *testing.T) {
	tree := newClusterTree(4)
	tree.Root().PropagatedLowestChildDeathLevel = 1
	noiseLevels := []float64{2, 4, 2, 0}
	lastClusters := []int{1, 1, 1, 1}
	core := []float64{3, 1, 2, 0}

	scores := CalculateOutlierScores(tree, noiseLevels, lastClusters, core)

	// Equal scores order by core distance.
	assert.Equal(t, []OutlierScore{
		{Score: 0, CoreDistance: 0, Point: 3},
		{Score: 0.5, CoreDistance: 2, Point: 2},
		{Score: 0.5, CoreDistance: 3, Point: 0},
		{Score: 0.75, CoreDistance: 1, Point: 1},
	}, scores)
}

func TestCalculateOutlierScores_NeverClustered(t *testing.T) {
	tree := newClusterTree(2)
	tree.Root().PropagatedLowestChildDeathLevel = 1

	scores := CalculateOutlierScores(tree, []float64{5, 5}, []int{0, 1}, []float64{1, 1})
	assert.Zero(t, scoreOf(scores, 0).Score)
	assert.InDelta(t, 0.8, scoreOf(scores, 1).Score, 1e-12)
}

func TestOutlierScore_Less(t *testing.T) {
	a := OutlierScore{Score: 0.5, CoreDistance: 1, Point: 4}
	assert.True(t, a.less(OutlierScore{Score: 0.6}))
	assert.True(t, a.less(OutlierScore{Score: 0.5, CoreDistance: 2}))
	assert.True(t, a.less(OutlierScore{Score: 0.5, CoreDistance: 1, Point: 5}))
	assert.False(t, a.less(a))
}

func TestCalculateOutlierScores_InUnitRange(t *testing.T) {
	data := threeBlobs()
	src := FromVectors(data, EuclideanMetric{})
	core := ComputeCoreDistances(src, 4)
	g := ConstructMST(src, core, true)
	g.SortByWeightDescending()
	h := BuildHierarchy(g, 5, nil)
	PropagateTree(h.Tree)

	scores := CalculateOutlierScores(h.Tree, h.NoiseLevels, h.LastClusters, core)
	seen := make(map[int]bool, len(data))
	for i, s := range scores {
		assert.GreaterOrEqual(t, s.Score, 0.0)
		assert.LessOrEqual(t, s.Score, 1.0)
		if i > 0 {
			assert.False(t, s.less(scores[i-1]), "scores must ascend")
		}
		seen[s.Point] = true
	}
	assert.Len(t, seen, len(data))
}
