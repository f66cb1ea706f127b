package hdbscan

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// plainSparseMetric has no most common distance.
type plainSparseMetric struct{}

func (plainSparseMetric) Distance(a, b SparseVector) float64 {
	return SparseCosineMetric{}.Distance(a, b)
}

func TestResolveCacheMode_Auto(t *testing.T) {
	tests := []struct {
		name     string
		src      Source
		expected CacheMode
	}{
		{"dense vectors → dense", FromVectors([][]float64{{0}, {1}}, EuclideanMetric{}), CacheDense},
		{"sparse cosine → sparse", FromSparseVectors(sparseDocuments(), SparseCosineMetric{}), CacheSparse},
		{"sparse without common distance → dense", FromSparseVectors(sparseDocuments(), plainSparseMetric{}), CacheDense},
		{"matrix → none", FromMatrix([][]float64{{0}}), CacheNone},
		{"func → dense", FromFunc(2, func(i, j int) float64 { return 1 }), CacheDense},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveCacheMode(CacheAuto, tt.src)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestResolveCacheMode_Explicit(t *testing.T) {
	matrix := FromMatrix([][]float64{{0, 1}, {1, 0}})
	for _, mode := range []CacheMode{CacheNone, CacheDense} {
		got, err := resolveCacheMode(mode, matrix)
		require.NoError(t, err)
		assert.Equal(t, mode, got)
	}

	got, err := resolveCacheMode(CacheSparse, commonSource{matrix})
	require.NoError(t, err)
	assert.Equal(t, CacheSparse, got)
}

func TestResolveCacheMode_SparseUnsupported(t *testing.T) {
	for _, src := range []Source{
		FromMatrix([][]float64{{0, 1}, {1, 0}}),
		FromVectors([][]float64{{0}, {1}}, CosineMetric{}),
		FromSparseVectors(sparseDocuments(), plainSparseMetric{}),
	} {
		_, err := resolveCacheMode(CacheSparse, src)
		assert.ErrorIs(t, err, ErrSparseUnsupported)
		assert.NotEmpty(t, errors.GetAllHints(err))
	}
}

func TestResolveCacheMode_Invalid(t *testing.T) {
	_, err := resolveCacheMode("lru", FromMatrix(nil))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
