package hdbscan

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// DistanceMetric computes the distance between two dense attribute vectors.
// Implementations must be symmetric and return non-negative values; both
// vectors must have the same length.
type DistanceMetric interface {
	Distance(a, b []float64) float64
}

// DistanceFunc adapts a plain function into a DistanceMetric.
type DistanceFunc func(a, b []float64) float64

func (f DistanceFunc) Distance(a, b []float64) float64 { return f(a, b) }

// EuclideanMetric computes the Euclidean (L2) distance.
type EuclideanMetric struct{}

func (EuclideanMetric) Distance(a, b []float64) float64 {
	return floats.Distance(a, b, 2)
}

// ManhattanMetric computes the Manhattan (L1 / city-block) distance.
type ManhattanMetric struct{}

func (ManhattanMetric) Distance(a, b []float64) float64 {
	return floats.Distance(a, b, 1)
}

// SupremumMetric computes the supremum (L-infinity / Chebyshev) distance,
// the largest absolute difference over all attributes.
type SupremumMetric struct{}

func (SupremumMetric) Distance(a, b []float64) float64 {
	return floats.Distance(a, b, math.Inf(1))
}

// CosineMetric computes the cosine distance: 1 - (a·b)/(|a||b|).
//
// Rounding can push the similarity of near-identical vectors slightly above
// 1, so the result is clamped at 0. A zero vector has no direction; its
// distance to anything is 1.
type CosineMetric struct{}

func (CosineMetric) Distance(a, b []float64) float64 {
	normA := floats.Norm(a, 2)
	normB := floats.Norm(b, 2)
	if normA == 0 || normB == 0 {
		return 1
	}
	return max(0, 1-floats.Dot(a, b)/(normA*normB))
}

// PearsonMetric computes the Pearson correlation distance:
// 1 - cov(a,b)/(σa·σb).
//
// Like CosineMetric the result is clamped at 0. A constant vector has no
// variance and therefore no defined correlation; its distance is 1.
type PearsonMetric struct{}

func (PearsonMetric) Distance(a, b []float64) float64 {
	r := stat.Correlation(a, b, nil)
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 1
	}
	return max(0, 1-r)
}
