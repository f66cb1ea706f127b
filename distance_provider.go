package hdbscan

import "runtime"

// DistanceProvider wraps a Source with an optional cache so that every later
// stage can ask for distance(i, j) at O(1) amortized cost.
//
//   - CacheNone forwards each call to the source.
//   - CacheDense fills an n×n matrix once.
//   - CacheSparse stores only the pairs whose distance differs from the
//     metric's most common value; absent pairs resolve to that value.
type DistanceProvider struct {
	src    Source
	n      int
	mode   CacheMode
	dense  []float64
	sparse map[int]float64
	common float64
}

// NewDistanceProvider resolves mode against src and precomputes the cache on
// a pool of workers (0 means runtime.NumCPU(), 1 runs sequentially).
//
// It fails with ErrSparseUnsupported before computing anything if a sparse
// cache is requested for a source without a most common distance, and with
// ErrInvalidDistance if precomputation meets a negative or NaN distance.
func NewDistanceProvider(src Source, mode CacheMode, workers int) (*DistanceProvider, error) {
	if mode == "" {
		mode = CacheAuto
	}
	resolved, err := resolveCacheMode(mode, src)
	if err != nil {
		return nil, err
	}
	if workers < 0 {
		return nil, wrapf(ErrInvalidConfig, "hdbscan: Workers must be >= 0, got %d", workers)
	}
	if workers == 0 {
		workers = runtime.NumCPU()
	}

	p := &DistanceProvider{src: src, n: src.Len(), mode: resolved}

	switch resolved {
	case CacheDense:
		p.dense, err = precomputeDense(src, workers)
	case CacheSparse:
		p.common, _ = mostCommonDistance(src)
		p.sparse, err = precomputeSparse(src, p.common, workers)
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Len returns the number of points.
func (p *DistanceProvider) Len() int { return p.n }

// Mode returns the resolved cache strategy.
func (p *DistanceProvider) Mode() CacheMode { return p.mode }

// StoredDistances returns how many distances the cache holds: n*n for the
// dense matrix, the number of deviations from the common value for the sparse
// map, and 0 without a cache.
func (p *DistanceProvider) StoredDistances() int {
	switch p.mode {
	case CacheDense:
		return len(p.dense)
	case CacheSparse:
		return len(p.sparse)
	default:
		return 0
	}
}

// Distance returns the distance between points i and j.
func (p *DistanceProvider) Distance(i, j int) float64 {
	switch p.mode {
	case CacheDense:
		return p.dense[i*p.n+j]
	case CacheSparse:
		if i > j {
			i, j = j, i
		}
		if d, ok := p.sparse[i*p.n+j]; ok {
			return d
		}
		return p.common
	default:
		return p.src.Distance(i, j)
	}
}
