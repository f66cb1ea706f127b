package hdbscan

import "math"

// ComputeCoreDistances returns, for every point, the distance to its k-th
// nearest neighbor with k = minPoints-1. With minPoints <= 1 every core
// distance is 0. A point with fewer than k neighbors has core distance
// math.MaxFloat64, so every mutual reachability weight it touches saturates.
//
// Each point scans all others once, keeping the k smallest distances seen so
// far in a sorted buffer; a new distance is inserted after any equal values
// already held, and the core distance is the last buffer slot.
func ComputeCoreDistances(d Source, minPoints int) []float64 {
	n := d.Len()
	core := make([]float64, n)

	numNeighbors := minPoints - 1
	if numNeighbors <= 0 {
		return core
	}
	if numNeighbors > n-1 {
		for i := range core {
			core[i] = math.MaxFloat64
		}
		return core
	}

	nearest := make([]float64, numNeighbors)
	for point := 0; point < n; point++ {
		for i := range nearest {
			nearest[i] = math.MaxFloat64
		}

		for neighbor := 0; neighbor < n; neighbor++ {
			if neighbor == point {
				continue
			}
			dist := d.Distance(point, neighbor)

			pos := numNeighbors
			for pos >= 1 && dist < nearest[pos-1] {
				pos--
			}
			if pos < numNeighbors {
				copy(nearest[pos+1:], nearest[pos:numNeighbors-1])
				nearest[pos] = dist
			}
		}

		core[point] = nearest[numNeighbors-1]
	}

	return core
}
