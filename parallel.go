package hdbscan

import (
	"context"
	"math"
	"sync"

	"golang.org/x/sync/errgroup"
)

// checkDistance rejects values that would corrupt the hierarchy: metrics are
// required to clamp rounding noise to zero, and NaN never compares equal.
func checkDistance(d float64, i, j int) error {
	if d < 0 || math.IsNaN(d) {
		return wrapf(ErrInvalidDistance, "hdbscan: distance(%d, %d) = %v", i, j, d)
	}
	return nil
}

// effectiveWorkers clamps a worker count to [1, n].
func effectiveWorkers(workers, n int) int {
	return max(1, min(workers, n))
}

// forEachPair runs visit(w, i, j) for every pair i < j < n on a fixed pool of
// workers, then done(w) once worker w has finished its share. Worker w owns
// rows w, w+workers, w+2*workers, ..., so no two workers ever visit the same
// pair and the pairs each worker sees do not depend on scheduling. The first
// error is returned and the remaining workers stop at their next row; done is
// only called for workers that finished their share.
func forEachPair(n, workers int, visit func(w, i, j int) error, done func(w int)) error {
	workers = effectiveWorkers(workers, n)

	run := func(ctx context.Context, w int) error {
		for i := w; i < n; i += workers {
			if err := ctx.Err(); err != nil {
				return err
			}
			for j := i + 1; j < n; j++ {
				if err := visit(w, i, j); err != nil {
					return err
				}
			}
		}
		if done != nil {
			done(w)
		}
		return nil
	}

	if workers == 1 {
		return run(context.Background(), 0)
	}

	g, ctx := errgroup.WithContext(context.Background())
	for w := 0; w < workers; w++ {
		g.Go(func() error { return run(ctx, w) })
	}
	return g.Wait()
}

// precomputeDense fills a flat n×n symmetric distance matrix. Each pair is
// computed once and written to both of its cells; since every pair belongs to
// exactly one worker the writes need no synchronization, and the result is
// identical for any worker count.
func precomputeDense(src Source, workers int) ([]float64, error) {
	n := src.Len()
	result := make([]float64, n*n)

	err := forEachPair(n, workers, func(_, i, j int) error {
		d := src.Distance(i, j)
		if err := checkDistance(d, i, j); err != nil {
			return err
		}
		result[i*n+j] = d
		result[j*n+i] = d
		return nil
	}, nil)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// precomputeSparse stores only the distances that differ from common, keyed
// by i*n+j with i < j. Workers collect their deviations locally and merge them
// into the shared map when they finish; the merge is the only section that
// takes the lock.
func precomputeSparse(src Source, common float64, workers int) (map[int]float64, error) {
	n := src.Len()
	workers = effectiveWorkers(workers, n)

	local := make([]map[int]float64, workers)
	for w := range local {
		local[w] = make(map[int]float64)
	}

	var (
		mu     sync.Mutex
		merged = make(map[int]float64)
	)

	visit := func(w, i, j int) error {
		d := src.Distance(i, j)
		if err := checkDistance(d, i, j); err != nil {
			return err
		}
		if d != common {
			local[w][i*n+j] = d
		}
		return nil
	}
	done := func(w int) {
		mu.Lock()
		defer mu.Unlock()
		for k, v := range local[w] {
			merged[k] = v
		}
		local[w] = nil
	}

	if err := forEachPair(n, workers, visit, done); err != nil {
		return nil, err
	}
	return merged, nil
}
