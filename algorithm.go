package hdbscan

import "github.com/cockroachdb/errors"

// resolveCacheMode turns CacheAuto into a concrete cache strategy for src, and
// validates that an explicitly requested strategy can serve src.
//
// Auto picks the sparse cache for sparse-vector sources whose metric declares
// a most common distance, no cache for precomputed matrices (they already are
// one), and the dense matrix otherwise.
func resolveCacheMode(mode CacheMode, src Source) (CacheMode, error) {
	switch mode {
	case CacheAuto:
		switch src.(type) {
		case *sparseVectorSource:
			if _, ok := mostCommonDistance(src); ok {
				return CacheSparse, nil
			}
			return CacheDense, nil
		case matrixSource:
			return CacheNone, nil
		default:
			return CacheDense, nil
		}
	case CacheNone, CacheDense:
		return mode, nil
	case CacheSparse:
		if _, ok := mostCommonDistance(src); !ok {
			err := wrapf(ErrSparseUnsupported,
				"hdbscan: source %T does not declare a most common distance value", src)
			return "", errors.WithHint(err,
				"use CacheDense, or a metric implementing SparseCapable such as SparseCosineMetric")
		}
		return CacheSparse, nil
	default:
		return "", wrapf(ErrInvalidConfig, "hdbscan: invalid Cache %q", mode)
	}
}
