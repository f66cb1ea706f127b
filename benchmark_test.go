package hdbscan

import (
	"math/rand"
	"testing"
)

func generateBenchData(n, dims int) [][]float64 {
	rng := rand.New(rand.NewSource(42))
	data := make([][]float64, n)
	for i := range data {
		data[i] = make([]float64, dims)
		for j := range data[i] {
			data[i][j] = rng.Float64() * 100
		}
	}
	return data
}

// generateBlobs places perBlob points uniformly within spread of each of the
// given centers, blob by blob.
func generateBlobs(centers [][]float64, perBlob int, spread float64) [][]float64 {
	rng := rand.New(rand.NewSource(7))
	data := make([][]float64, 0, len(centers)*perBlob)
	for _, center := range centers {
		for range perBlob {
			p := make([]float64, len(center))
			for j, c := range center {
				p[j] = c + (rng.Float64()*2-1)*spread
			}
			data = append(data, p)
		}
	}
	return data
}

func threeBlobs() [][]float64 {
	return generateBlobs([][]float64{{0, 0}, {100, 0}, {0, 100}}, 40, 5)
}

// --- Distance providers ---

func benchProvider(b *testing.B, n int, mode CacheMode) {
	b.Helper()
	src := FromVectors(generateBenchData(n, 2), EuclideanMetric{})
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p, err := NewDistanceProvider(src, mode, 0)
		if err != nil {
			b.Fatal(err)
		}
		for j := 1; j < n; j++ {
			p.Distance(j-1, j)
		}
	}
}

func BenchmarkProviderDense_500(b *testing.B) { benchProvider(b, 500, CacheDense) }
func BenchmarkProviderNone_500(b *testing.B)  { benchProvider(b, 500, CacheNone) }

// --- Core Distances ---

func benchCoreDistances(b *testing.B, n int) {
	b.Helper()
	src := FromVectors(generateBenchData(n, 2), EuclideanMetric{})
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ComputeCoreDistances(src, 5)
	}
}

func BenchmarkCoreDistances_100(b *testing.B) { benchCoreDistances(b, 100) }
func BenchmarkCoreDistances_500(b *testing.B) { benchCoreDistances(b, 500) }

// --- Prim's MST ---

func benchConstructMST(b *testing.B, n int) {
	b.Helper()
	src := FromVectors(generateBenchData(n, 2), EuclideanMetric{})
	core := ComputeCoreDistances(src, 5)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ConstructMST(src, core, true)
	}
}

func BenchmarkConstructMST_100(b *testing.B) { benchConstructMST(b, 100) }
func BenchmarkConstructMST_500(b *testing.B) { benchConstructMST(b, 500) }

// --- Hierarchy ---

func benchBuildHierarchy(b *testing.B, n int) {
	b.Helper()
	src := FromVectors(generateBenchData(n, 2), EuclideanMetric{})
	core := ComputeCoreDistances(src, 5)
	mst := ConstructMST(src, core, true)
	mst.SortByWeightDescending()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		g := NewGraph(mst.NumVertices(), mst.Edges())
		b.StartTimer()
		BuildHierarchy(g, 5, nil)
	}
}

func BenchmarkBuildHierarchy_100(b *testing.B) { benchBuildHierarchy(b, 100) }
func BenchmarkBuildHierarchy_500(b *testing.B) { benchBuildHierarchy(b, 500) }

// --- Full Pipeline ---

func benchFullPipeline(b *testing.B, n int) {
	b.Helper()
	data := generateBenchData(n, 2)
	cfg := DefaultConfig()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Cluster(data, cfg); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkFullPipeline_100(b *testing.B)  { benchFullPipeline(b, 100) }
func BenchmarkFullPipeline_500(b *testing.B)  { benchFullPipeline(b, 500) }
func BenchmarkFullPipeline_1000(b *testing.B) { benchFullPipeline(b, 1000) }
