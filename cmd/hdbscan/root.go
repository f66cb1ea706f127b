package main

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// app carries the state shared by all subcommands.
type app struct {
	v      *viper.Viper
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New(), logger: zap.NewNop()}

	// Environment variables: HDBSCAN_MIN_POINTS, HDBSCAN_CACHE, ...
	a.v.SetEnvPrefix("HDBSCAN")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	root := &cobra.Command{
		Use:   "hdbscan",
		Short: "Density-based hierarchical clustering with outlier scores",
		Long: `hdbscan clusters numeric data with HDBSCAN*.

Settings are read, from lowest to highest precedence, from built-in
defaults, the file given with --config, HDBSCAN_* environment variables
and command-line flags.

Examples:
  hdbscan cluster points.csv --min-points 3 --min-cluster-size 3
  hdbscan cluster docs.csv --sparse --json
  HDBSCAN_WORKERS=1 hdbscan cluster points.csv`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := a.v.BindPFlags(cmd.Flags()); err != nil {
				return errors.Wrap(err, "binding flags")
			}
			if path := a.v.GetString("config"); path != "" {
				a.v.SetConfigFile(path)
				if err := a.v.ReadInConfig(); err != nil {
					return errors.Wrapf(err, "reading config %s", path)
				}
			}
			logger, err := buildLogger(a.v.GetBool("verbose"), a.v.GetBool("log-json"))
			if err != nil {
				return errors.Wrap(err, "initializing logger")
			}
			a.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}

	root.PersistentFlags().String("config", "", "config file (TOML, YAML or JSON)")
	root.PersistentFlags().BoolP("verbose", "v", false, "log pipeline stages at debug level")
	root.PersistentFlags().Bool("log-json", false, "emit logs as JSON")

	root.AddCommand(newClusterCmd(a))
	root.AddCommand(newVersionCmd())
	return root
}

// buildLogger returns a console logger on stderr, or a JSON one with
// jsonOutput. Only warnings are shown unless verbose.
func buildLogger(verbose, jsonOutput bool) (*zap.Logger, error) {
	level := zap.WarnLevel
	if verbose {
		level = zap.DebugLevel
	}

	config := zap.NewDevelopmentConfig()
	if jsonOutput {
		config = zap.NewProductionConfig()
	}
	config.Level = zap.NewAtomicLevelAt(level)
	config.OutputPaths = []string{"stderr"}
	return config.Build()
}
