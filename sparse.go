package hdbscan

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// SparseVector holds the non-zero attributes of a point. Indices are
// strictly increasing and Values[i] is the value of attribute Indices[i].
type SparseVector struct {
	Indices []int
	Values  []float64
}

// NewSparseVector builds a SparseVector from an attribute map, dropping
// zero values.
func NewSparseVector(attributes map[int]float64) SparseVector {
	indices := make([]int, 0, len(attributes))
	for idx, v := range attributes {
		if v != 0 {
			indices = append(indices, idx)
		}
	}
	sort.Ints(indices)

	values := make([]float64, len(indices))
	for i, idx := range indices {
		values[i] = attributes[idx]
	}
	return SparseVector{Indices: indices, Values: values}
}

// SparseFromDense keeps the non-zero entries of a dense row.
func SparseFromDense(row []float64) SparseVector {
	var v SparseVector
	for i, x := range row {
		if x != 0 {
			v.Indices = append(v.Indices, i)
			v.Values = append(v.Values, x)
		}
	}
	return v
}

// Len returns the number of stored (non-zero) attributes.
func (v SparseVector) Len() int { return len(v.Indices) }

// Dot returns the dot product of v and w, walking both index lists in order.
func (v SparseVector) Dot(w SparseVector) float64 {
	var dot float64
	i, j := 0, 0
	for i < len(v.Indices) && j < len(w.Indices) {
		switch {
		case v.Indices[i] < w.Indices[j]:
			i++
		case v.Indices[i] > w.Indices[j]:
			j++
		default:
			dot += v.Values[i] * w.Values[j]
			i++
			j++
		}
	}
	return dot
}

// SparseMetric computes the distance between two sparse vectors.
type SparseMetric interface {
	Distance(a, b SparseVector) float64
}

// SparseCapable is implemented by metrics (and sources) for which most pairs
// of points share one distance value. Only distances that differ from it need
// to be stored, which is what the sparse distance cache does.
type SparseCapable interface {
	MostCommonDistance() float64
}

// SparseCosineMetric computes the cosine distance between sparse vectors.
// Vectors with disjoint support are orthogonal, so their distance is 1, which
// is the most common value for typical high-dimensional sparse data such as
// term counts.
type SparseCosineMetric struct{}

func (SparseCosineMetric) MostCommonDistance() float64 { return 1 }

func (SparseCosineMetric) Distance(a, b SparseVector) float64 {
	magA := floats.Dot(a.Values, a.Values)
	magB := floats.Dot(b.Values, b.Values)
	if magA == 0 || magB == 0 {
		return 1
	}
	return max(0, 1-a.Dot(b)/math.Sqrt(magA*magB))
}
