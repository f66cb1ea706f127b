package main

import (
	"os"
	"time"

	hdbscan "github.com/TrevorS/hdbscanstar"
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newClusterCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cluster <file.csv>",
		Short: "Cluster the rows of a numeric CSV file",
		Long: `Cluster the rows of a numeric CSV file with HDBSCAN*.

Each row is a point. Points are labeled with the cluster they belong to,
or 0 for noise, and ranked by GLOSH outlier score.

With --sparse, rows become sparse vectors of their non-zero columns and are
compared with cosine distance; only distances below 1 are cached.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runCluster(cmd, args[0])
		},
	}

	defaults := hdbscan.DefaultConfig()
	cmd.Flags().Bool("header", false, "skip the first CSV row")
	cmd.Flags().String("metric", "euclidean", "distance metric: euclidean, manhattan, supremum, cosine or pearson")
	cmd.Flags().Bool("sparse", false, "treat rows as sparse vectors compared by cosine distance")
	cmd.Flags().Int("min-points", defaults.MinPoints, "neighborhood size for core distances")
	cmd.Flags().Int("min-cluster-size", defaults.MinClusterSize, "smallest number of points forming a cluster")
	cmd.Flags().Int("workers", 0, "goroutines precomputing distances (0 = all CPUs)")
	cmd.Flags().String("cache", string(hdbscan.CacheAuto), "distance cache: auto, none, dense or sparse")
	cmd.Flags().Bool("exclude-self-edges", false, "build the MST without core distance self edges")
	cmd.Flags().StringArray("must-link", nil, "points a,b that should share a cluster (repeatable)")
	cmd.Flags().StringArray("cannot-link", nil, "points a,b that should not share a cluster (repeatable)")
	cmd.Flags().BoolP("json", "j", false, "print the result as JSON")
	cmd.Flags().Int("top", 10, "number of outliers to show")
	return cmd
}

func (a *app) runCluster(cmd *cobra.Command, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, "opening dataset")
	}
	defer f.Close()

	data, err := readDataset(f, a.v.GetBool("header"))
	if err != nil {
		return errors.Wrapf(err, "parsing %s", path)
	}

	cfg, err := a.config(cmd)
	if err != nil {
		return err
	}

	start := time.Now()
	var result *hdbscan.Result
	if a.v.GetBool("sparse") {
		vectors := make([]hdbscan.SparseVector, len(data))
		for i, row := range data {
			vectors[i] = hdbscan.SparseFromDense(row)
		}
		result, err = hdbscan.ClusterSparse(vectors, hdbscan.SparseCosineMetric{}, cfg)
	} else {
		result, err = hdbscan.Cluster(data, cfg)
	}
	if err != nil {
		return err
	}
	a.logger.Info("clustered dataset",
		zap.String("file", path),
		zap.Int("points", len(data)),
		zap.Duration("elapsed", time.Since(start)))

	top := a.v.GetInt("top")
	if a.v.GetBool("json") {
		return writeJSON(cmd.OutOrStdout(), result, top)
	}
	return writeTables(cmd.OutOrStdout(), result, top)
}

// config assembles the clustering Config from flags, environment and the
// config file.
func (a *app) config(cmd *cobra.Command) (hdbscan.Config, error) {
	cfg := hdbscan.DefaultConfig()
	cfg.MinPoints = a.v.GetInt("min-points")
	cfg.MinClusterSize = a.v.GetInt("min-cluster-size")
	cfg.Workers = a.v.GetInt("workers")
	cfg.Cache = hdbscan.CacheMode(a.v.GetString("cache"))
	cfg.ExcludeSelfEdges = a.v.GetBool("exclude-self-edges")
	cfg.Logger = a.logger

	metric, err := parseMetric(a.v.GetString("metric"))
	if err != nil {
		return cfg, err
	}
	cfg.Metric = metric

	// Pairs contain commas, so they are read from the flags directly.
	mustLink, _ := cmd.Flags().GetStringArray("must-link")
	cannotLink, _ := cmd.Flags().GetStringArray("cannot-link")
	for _, group := range []struct {
		pairs []string
		kind  hdbscan.ConstraintKind
	}{{mustLink, hdbscan.MustLink}, {cannotLink, hdbscan.CannotLink}} {
		constraints, err := parseConstraints(group.pairs, group.kind)
		if err != nil {
			return cfg, err
		}
		cfg.Constraints = append(cfg.Constraints, constraints...)
	}
	return cfg, nil
}
