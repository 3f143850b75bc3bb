// Package cli provides the spatialperm command tree.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/katalvlaran/spatialperm/internal/config"
	"github.com/katalvlaran/spatialperm/internal/logger"
	"github.com/katalvlaran/spatialperm/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

// app carries the state shared by all subcommands of one invocation.
type app struct {
	configPath string
	flags      flagValues

	cfg      *config.Config
	log      *slog.Logger
	registry *prometheus.Registry
	metrics  *metrics.Metrics
}

// flagValues receives command line flags before they are merged into the
// loaded configuration.
type flagValues struct {
	logLevel, logFormat string
	workers             int
	seed                int64

	mode       string
	radius     float64
	expand     float64
	scale      float64
	ignoreSelf bool
	labelKey   string

	times  int
	pval   float64
	method string
	order  bool
}

// NewRootCmd builds a fresh command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}
	cmd := &cobra.Command{
		Use:   "spatialperm",
		Short: "Spatial neighbor search and label permutation tests",
		Long: `spatialperm finds the neighbors of labeled spatial objects (points or
bounding boxes) and tests whether labels co-occur in neighborhoods more or
less often than under random relabeling.

Input files are CSV (columns x,y,label or minx,miny,maxx,maxy,label) or
GeoJSON FeatureCollections of Points or Polygons.

Settings come from --config (YAML), a .env file and SPATIALPERM_* variables;
flags given explicitly take precedence over all of them.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return a.flushMetrics()
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "path to a YAML config file")
	pf.StringVar(&a.flags.logLevel, "log-level", "info", "log level: debug, info, warn, error")
	pf.StringVar(&a.flags.logFormat, "log-format", "text", "log format: text or json")
	pf.IntVarP(&a.flags.workers, "workers", "w", 0, "number of parallel workers (0 = all CPUs)")
	pf.Int64Var(&a.flags.seed, "seed", 0, "master random seed (0 = random)")

	pf.StringVar(&a.flags.mode, "mode", config.ModeAuto, "neighbor index: auto, point or region")
	pf.Float64VarP(&a.flags.radius, "radius", "r", 1, "search radius for point data")
	pf.Float64Var(&a.flags.expand, "expand", 0, "pad every box by this distance (region mode, overrides --scale)")
	pf.Float64Var(&a.flags.scale, "scale", 1, "scale every box about its centre (region mode)")
	pf.BoolVar(&a.flags.ignoreSelf, "ignore-self", false, "drop each object from its own neighbor list")
	pf.StringVar(&a.flags.labelKey, "label-key", "label", "GeoJSON property holding the label")

	cmd.AddCommand(newNeighborsCmd(a), newCooccurCmd(a), newPairCmd(a))
	return cmd
}

// Execute runs the command tree and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// setup loads the configuration, merges explicit flags, and builds the
// logger and metrics registry.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	a.mergeFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg
	a.log = logger.New(cfg.Logging.Level, cfg.Logging.Format, cmd.ErrOrStderr())
	a.registry = prometheus.NewRegistry()
	a.metrics = metrics.New(a.registry)
	a.log.Debug("configuration loaded", "config", a.configPath, "workers", cfg.Workers, "mode", cfg.Neighbors.Mode)
	return nil
}

// mergeFlags copies the flags set on the command line into cfg.
func (a *app) mergeFlags(cmd *cobra.Command, cfg *config.Config) {
	set := cmd.Flags().Changed
	f := a.flags
	if set("log-level") {
		cfg.Logging.Level = f.logLevel
	}
	if set("log-format") {
		cfg.Logging.Format = f.logFormat
	}
	if set("workers") {
		cfg.Workers = f.workers
	}
	if set("seed") {
		cfg.Bootstrap.Seed = f.seed
	}
	if set("mode") {
		cfg.Neighbors.Mode = f.mode
	}
	if set("radius") {
		cfg.Neighbors.Radius = f.radius
	}
	if set("expand") {
		e := f.expand
		cfg.Neighbors.Expand = &e
	}
	if set("scale") {
		cfg.Neighbors.Scale = f.scale
	}
	if set("ignore-self") {
		cfg.Neighbors.IgnoreSelf = f.ignoreSelf
	}
	if set("times") {
		cfg.Bootstrap.Times = f.times
	}
	if set("pval") {
		cfg.Bootstrap.PValue = f.pval
	}
	if set("method") {
		cfg.Bootstrap.Method = f.method
	}
	if set("order") {
		cfg.Bootstrap.Order = f.order
	}
}

// flushMetrics writes the registry to the configured textfile, if any.
func (a *app) flushMetrics() error {
	if a.cfg == nil || a.cfg.Metrics.Textfile == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(a.cfg.Metrics.Textfile, a.registry); err != nil {
		return fmt.Errorf("writing metrics textfile: %w", err)
	}
	a.log.Debug("metrics written", "path", a.cfg.Metrics.Textfile)
	return nil
}

// addTimesFlag registers the trial count on a subcommand.
func (a *app) addTimesFlag(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&a.flags.times, "times", "n", 500, "number of permutation trials")
}

// addSummaryFlags registers the label-pair test flags on a subcommand.
func (a *app) addSummaryFlags(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.Float64Var(&a.flags.pval, "pval", 0.05, "significance threshold for --method pval")
	fl.StringVar(&a.flags.method, "method", "pval", "summary: pval (signed significance) or zscore")
	fl.BoolVar(&a.flags.order, "order", false, "test (A,B) and (B,A) separately")
}
