package hdbscan

import (
	"runtime"
	"slices"
	"time"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

// CacheMode selects how pairwise distances are stored before clustering.
type CacheMode string

const (
	// CacheAuto picks sparse for sparse vectors with a SparseCapable metric,
	// none for precomputed matrices and dense otherwise.
	CacheAuto CacheMode = "auto"
	// CacheNone calls the source for every distance.
	CacheNone CacheMode = "none"
	// CacheDense precomputes the full n×n matrix.
	CacheDense CacheMode = "dense"
	// CacheSparse stores only distances that differ from the metric's most
	// common value.
	CacheSparse CacheMode = "sparse"
)

// Config controls HDBSCAN* clustering behavior.
// Start with [DefaultConfig] and override the fields you need.
type Config struct {
	// MinPoints sets the neighborhood used for core distances: the core
	// distance of a point is the distance to its (MinPoints-1)-th nearest
	// neighbor. Larger values smooth density estimates and label more points
	// as noise. Must be >= 1. Default: 5.
	MinPoints int

	// MinClusterSize is the smallest group of points considered a cluster.
	// Must be >= 1. Default: 5.
	MinClusterSize int

	// Constraints are optional must-link/cannot-link hints. Clusters that
	// satisfy more of them win over more stable ones.
	Constraints []Constraint

	// Cache selects the distance cache. Default: CacheAuto.
	Cache CacheMode

	// Workers is the number of goroutines used to precompute distances.
	// 0 means runtime.NumCPU(), 1 computes sequentially. Default: 0.
	Workers int

	// ExcludeSelfEdges drops the (i, i) edges weighted by core distance from
	// the MST. With self edges, a cluster's death is recorded at the core
	// distance of its last points rather than at the edge that isolated them.
	// Default: false.
	ExcludeSelfEdges bool

	// Metric is the distance used by Cluster on dense vectors. Run and
	// ClusterPrecomputed ignore it. Default: EuclideanMetric.
	Metric DistanceMetric

	// Logger receives stage timings at debug level and warnings about
	// disconnected graphs and infinite stabilities. Default: zap.NewNop().
	Logger *zap.Logger
}

// Result contains the output of HDBSCAN* clustering.
type Result struct {
	// Labels assigns each point to a cluster label, or 0 for noise. Labels
	// are the cluster tree labels, so they are positive but not contiguous.
	Labels []int

	// OutlierScores holds the GLOSH score of every point, sorted ascending by
	// score, then core distance, then point index.
	OutlierScores []OutlierScore

	// HasInfiniteStability reports that some cluster had infinite stability
	// (points at distance 0), which makes the selection less meaningful.
	HasInfiniteStability bool

	// Stabilities maps every cluster label except the root to its stability.
	Stabilities map[int]float64

	// Clusters summarizes the cluster tree in label order, the root first.
	Clusters []ClusterInfo

	// SingleLinkageTree is the single-linkage dendrogram of the MST in scipy
	// format: each row is [left, right, distance, size]. Merged IDs start at n.
	SingleLinkageTree [][4]float64

	// Hierarchy holds the label snapshots of every significant level, from
	// the highest down, ending with all points as noise.
	Hierarchy [][]int
}

// ClusterInfo describes one cluster of the tree.
type ClusterInfo struct {
	Label      int
	Parent     int
	BirthLevel float64
	DeathLevel float64
	Stability  float64
	Size       int

	ConstraintsSatisfied int

	// Selected is true for clusters in the flat clustering.
	Selected bool
}

// Groups returns the point indices of every label, ascending. Noise is
// grouped under label 0.
func (r *Result) Groups() map[int][]int {
	groups := make(map[int][]int)
	for i, label := range r.Labels {
		groups[label] = append(groups[label], i)
	}
	return groups
}

// DefaultConfig returns a Config with reasonable defaults.
func DefaultConfig() Config {
	return Config{
		MinPoints:      5,
		MinClusterSize: 5,
		Cache:          CacheAuto,
		Metric:         EuclideanMetric{},
	}
}

// validateConfig checks that cfg fields are valid and returns a descriptive error if not.
func validateConfig(cfg *Config) error {
	if cfg.MinPoints < 1 {
		return errors.WithHint(
			wrapf(ErrInvalidConfig, "hdbscan: MinPoints must be >= 1, got %d", cfg.MinPoints),
			"start from DefaultConfig() and override the fields you need")
	}
	if cfg.MinClusterSize < 1 {
		return errors.WithHint(
			wrapf(ErrInvalidConfig, "hdbscan: MinClusterSize must be >= 1, got %d", cfg.MinClusterSize),
			"start from DefaultConfig() and override the fields you need")
	}
	if cfg.Workers < 0 {
		return wrapf(ErrInvalidConfig, "hdbscan: Workers must be >= 0 (0 means all CPUs), got %d", cfg.Workers)
	}
	switch cfg.Cache {
	case CacheAuto, CacheNone, CacheDense, CacheSparse:
		// valid
	default:
		return errors.WithHint(
			wrapf(ErrInvalidConfig, "hdbscan: invalid Cache %q", cfg.Cache),
			"valid modes are auto, none, dense and sparse")
	}
	return nil
}

// applyDefaults fills in zero-valued config fields with their defaults.
func applyDefaults(cfg *Config) {
	if cfg.Cache == "" {
		cfg.Cache = CacheAuto
	}
	if cfg.Metric == nil {
		cfg.Metric = EuclideanMetric{}
	}
	if cfg.Workers == 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
}

// emptyResult returns a Result for a data set without points.
func emptyResult() *Result {
	return &Result{
		Labels:        []int{},
		OutlierScores: []OutlierScore{},
		Stabilities:   map[int]float64{},
	}
}

// Cluster performs HDBSCAN* clustering on dense vectors with cfg.Metric.
// All points must have the same dimensionality.
func Cluster(data [][]float64, cfg Config) (*Result, error) {
	for i, row := range data {
		if len(row) != len(data[0]) {
			return nil, wrapf(ErrInvalidInput,
				"hdbscan: point %d has %d dimensions, want %d", i, len(row), len(data[0]))
		}
	}
	if cfg.Metric == nil {
		cfg.Metric = EuclideanMetric{}
	}
	return Run(FromVectors(data, cfg.Metric), cfg)
}

// ClusterSparse performs HDBSCAN* clustering on sparse vectors. With
// CacheAuto and a SparseCapable metric, only distances that differ from the
// metric's most common value are stored.
func ClusterSparse(data []SparseVector, metric SparseMetric, cfg Config) (*Result, error) {
	if metric == nil {
		metric = SparseCosineMetric{}
	}
	return Run(FromSparseVectors(data, metric), cfg)
}

// ClusterPrecomputed performs HDBSCAN* clustering on a precomputed square
// distance matrix. With CacheAuto the matrix is read in place.
func ClusterPrecomputed(distances [][]float64, cfg Config) (*Result, error) {
	for i, row := range distances {
		if len(row) != len(distances) {
			return nil, wrapf(ErrInvalidInput,
				"hdbscan: distance matrix row %d has %d entries, want %d", i, len(row), len(distances))
		}
	}
	return Run(FromMatrix(distances), cfg)
}

// Run performs HDBSCAN* clustering on any distance source: it computes core
// distances, the mutual reachability MST and the cluster hierarchy, selects
// the most prominent clusters and scores every point as an outlier.
func Run(src Source, cfg Config) (*Result, error) {
	applyDefaults(&cfg)
	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}

	n := src.Len()
	if err := validateConstraints(cfg.Constraints, n); err != nil {
		return nil, err
	}
	if n == 0 {
		return emptyResult(), nil
	}

	log := cfg.Logger.With(zap.Int("points", n))

	start := time.Now()
	provider, err := NewDistanceProvider(src, cfg.Cache, cfg.Workers)
	if err != nil {
		return nil, err
	}
	log.Debug("precomputed distances",
		zap.String("cache", string(provider.Mode())),
		zap.Int("stored", provider.StoredDistances()),
		zap.Int("workers", cfg.Workers),
		zap.Duration("elapsed", time.Since(start)))

	start = time.Now()
	coreDistances := ComputeCoreDistances(provider, cfg.MinPoints)
	log.Debug("computed core distances",
		zap.Int("min_points", cfg.MinPoints),
		zap.Duration("elapsed", time.Since(start)))

	start = time.Now()
	mst := ConstructMST(provider, coreDistances, !cfg.ExcludeSelfEdges)
	if mst.hasInfiniteEdge() {
		log.Warn("mutual reachability graph is disconnected; MST contains infinite edges")
	}
	log.Debug("built mutual reachability MST",
		zap.Int("edges", mst.NumEdges()),
		zap.Float64("total_weight", mst.TotalWeight()),
		zap.Duration("elapsed", time.Since(start)))

	dendrogram := SingleLinkage(mst)

	start = time.Now()
	mst.SortByWeightDescending()
	h := BuildHierarchy(mst, cfg.MinClusterSize, cfg.Constraints)
	log.Debug("built cluster hierarchy",
		zap.Int("clusters", h.Tree.Len()),
		zap.Int("levels", len(h.Levels)),
		zap.Duration("elapsed", time.Since(start)))

	start = time.Now()
	infiniteStability := PropagateTree(h.Tree)
	if infiniteStability {
		log.Warn("cluster tree has infinite stability; duplicate points may distort the selection")
	}
	labels := FindProminentClusters(h.Tree, h.Levels, n)
	scores := CalculateOutlierScores(h.Tree, h.NoiseLevels, h.LastClusters, coreDistances)
	log.Debug("propagated cluster tree",
		zap.Int("selected", len(h.Tree.Root().PropagatedDescendants)),
		zap.Duration("elapsed", time.Since(start)))

	return &Result{
		Labels:               labels,
		OutlierScores:        scores,
		HasInfiniteStability: infiniteStability,
		Stabilities:          stabilities(h.Tree),
		Clusters:             summarize(h.Tree),
		SingleLinkageTree:    dendrogram,
		Hierarchy:            h.Levels,
	}, nil
}

func stabilities(tree *ClusterTree) map[int]float64 {
	m := make(map[int]float64, tree.Len())
	for _, c := range tree.Clusters() {
		if c.Label != rootLabel {
			m[c.Label] = c.Stability
		}
	}
	return m
}

func summarize(tree *ClusterTree) []ClusterInfo {
	selected := tree.Root().PropagatedDescendants
	infos := make([]ClusterInfo, 0, tree.Len())
	for _, c := range tree.Clusters() {
		infos = append(infos, ClusterInfo{
			Label:                c.Label,
			Parent:               c.Parent,
			BirthLevel:           c.BirthLevel,
			DeathLevel:           c.DeathLevel,
			Stability:            c.Stability,
			Size:                 c.Size(),
			ConstraintsSatisfied: c.ConstraintsSatisfied(),
			Selected:             slices.Contains(selected, c.Label),
		})
	}
	return infos
}
