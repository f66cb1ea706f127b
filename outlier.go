package hdbscan

import "sort"

// OutlierScore is the GLOSH score of one point.
type OutlierScore struct {
	// Score is 1 - epsMax/eps, where eps is the level at which the point
	// became noise and epsMax the lowest death level below its last cluster.
	// It lies in [0, 1]; higher means more outlying.
	Score float64

	// CoreDistance breaks ties between equal scores.
	CoreDistance float64

	Point int
}

// less orders by score, then core distance, then point index.
func (s OutlierScore) less(o OutlierScore) bool {
	if s.Score != o.Score {
		return s.Score < o.Score
	}
	if s.CoreDistance != o.CoreDistance {
		return s.CoreDistance < o.CoreDistance
	}
	return s.Point < o.Point
}

// CalculateOutlierScores computes the GLOSH score of every point, ascending.
// PropagateTree must have run on tree.
//
// Points that never belonged to a cluster, or became noise at level 0, score
// 0.
func CalculateOutlierScores(tree *ClusterTree, noiseLevels []float64, lastClusters []int,
	coreDistances []float64,
) []OutlierScore {
	scores := make([]OutlierScore, len(noiseLevels))
	for i, eps := range noiseLevels {
		var score float64
		if c := tree.Get(lastClusters[i]); c != nil && eps != 0 {
			score = 1 - c.PropagatedLowestChildDeathLevel/eps
		}
		scores[i] = OutlierScore{Score: score, CoreDistance: coreDistances[i], Point: i}
	}

	sort.Slice(scores, func(i, j int) bool { return scores[i].less(scores[j]) })
	return scores
}
