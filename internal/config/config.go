// Package config loads the command line configuration from a YAML file, an
// optional .env file and SPATIALPERM_* environment variables, in that order
// of increasing precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "SPATIALPERM_"

// Neighbor modes.
const (
	ModeAuto   = "auto"
	ModePoint  = "point"
	ModeRegion = "region"
)

// Sentinel errors.
var (
	// ErrInvalid is returned by Validate for out-of-range settings.
	ErrInvalid = errors.New("config: invalid value")
)

// Config is the top-level configuration.
type Config struct {
	Logging   LoggingConfig   `yaml:"logging"`
	Workers   int             `yaml:"workers"`
	Neighbors NeighborsConfig `yaml:"neighbors"`
	Bootstrap BootstrapConfig `yaml:"bootstrap"`
	Metrics   MetricsConfig   `yaml:"metrics"`
}

// LoggingConfig controls structured logging level and output format.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// NeighborsConfig selects the index and its query parameters.
//
// Mode "auto" uses the region index when the dataset carries boxes and the
// point index otherwise. Expand, when set, takes precedence over Scale.
type NeighborsConfig struct {
	Mode       string   `yaml:"mode"`
	Radius     float64  `yaml:"radius"`
	Expand     *float64 `yaml:"expand"`
	Scale      float64  `yaml:"scale"`
	IgnoreSelf bool     `yaml:"ignoreSelf"`
}

// BootstrapConfig holds the permutation test settings.
type BootstrapConfig struct {
	Times  int     `yaml:"times"`
	PValue float64 `yaml:"pval"`
	Method string  `yaml:"method"`
	Order  bool    `yaml:"order"`
	Seed   int64   `yaml:"seed"`
}

// MetricsConfig controls the Prometheus textfile export.
type MetricsConfig struct {
	// Textfile, when non-empty, receives the metrics registry in the
	// node-exporter text format after every command.
	Textfile string `yaml:"textfile"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Neighbors: NeighborsConfig{
			Mode:   ModeAuto,
			Radius: 1,
			Scale:  1,
		},
		Bootstrap: BootstrapConfig{
			Times:  500,
			PValue: 0.05,
			Method: "pval",
		},
	}
}

// Load reads a YAML config file (if path is non-empty), then a .env file in
// the working directory (if present), then SPATIALPERM_* overrides.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}
	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides reads SPATIALPERM_* variables. Unparsable numbers are
// reported rather than ignored.
func applyEnvOverrides(cfg *Config) error {
	var errs []error
	str := func(key string, dst *string) {
		if v := os.Getenv(EnvPrefix + key); v != "" {
			*dst = v
		}
	}
	num := func(key string, set func(string) error) {
		if v := os.Getenv(EnvPrefix + key); v != "" {
			if err := set(v); err != nil {
				errs = append(errs, fmt.Errorf("%s%s=%q: %w", EnvPrefix, key, v, err))
			}
		}
	}

	str("LOG_LEVEL", &cfg.Logging.Level)
	str("LOG_FORMAT", &cfg.Logging.Format)
	num("WORKERS", func(v string) (err error) { cfg.Workers, err = strconv.Atoi(v); return })
	str("NEIGHBORS_MODE", &cfg.Neighbors.Mode)
	num("NEIGHBORS_RADIUS", func(v string) (err error) { cfg.Neighbors.Radius, err = strconv.ParseFloat(v, 64); return })
	num("NEIGHBORS_EXPAND", func(v string) error {
		e, err := strconv.ParseFloat(v, 64)
		if err == nil {
			cfg.Neighbors.Expand = &e
		}
		return err
	})
	num("NEIGHBORS_SCALE", func(v string) (err error) { cfg.Neighbors.Scale, err = strconv.ParseFloat(v, 64); return })
	num("NEIGHBORS_IGNORE_SELF", func(v string) (err error) { cfg.Neighbors.IgnoreSelf, err = strconv.ParseBool(v); return })
	num("BOOTSTRAP_TIMES", func(v string) (err error) { cfg.Bootstrap.Times, err = strconv.Atoi(v); return })
	num("BOOTSTRAP_PVAL", func(v string) (err error) { cfg.Bootstrap.PValue, err = strconv.ParseFloat(v, 64); return })
	str("BOOTSTRAP_METHOD", &cfg.Bootstrap.Method)
	num("BOOTSTRAP_ORDER", func(v string) (err error) { cfg.Bootstrap.Order, err = strconv.ParseBool(v); return })
	num("BOOTSTRAP_SEED", func(v string) (err error) { cfg.Bootstrap.Seed, err = strconv.ParseInt(v, 10, 64); return })
	str("METRICS_TEXTFILE", &cfg.Metrics.Textfile)

	return errors.Join(errs...)
}

// Validate rejects settings no command can run with.
func (c *Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
	}

	switch strings.ToLower(c.Logging.Format) {
	case "text", "json":
	default:
		bad("logging.format %q (want text or json)", c.Logging.Format)
	}
	if c.Workers < 0 {
		bad("workers %d (want >= 0)", c.Workers)
	}
	switch c.Neighbors.Mode {
	case ModeAuto, ModePoint, ModeRegion:
	default:
		bad("neighbors.mode %q (want auto, point or region)", c.Neighbors.Mode)
	}
	if !(c.Neighbors.Radius >= 0) {
		bad("neighbors.radius %g (want >= 0)", c.Neighbors.Radius)
	}
	if c.Neighbors.Expand != nil && !(*c.Neighbors.Expand >= 0) {
		bad("neighbors.expand %g (want >= 0)", *c.Neighbors.Expand)
	}
	if !(c.Neighbors.Scale > 0) {
		bad("neighbors.scale %g (want > 0)", c.Neighbors.Scale)
	}
	if c.Bootstrap.Times < 1 {
		bad("bootstrap.times %d (want >= 1)", c.Bootstrap.Times)
	}
	if !(c.Bootstrap.PValue > 0 && c.Bootstrap.PValue <= 1) {
		bad("bootstrap.pval %g (want (0, 1])", c.Bootstrap.PValue)
	}
	switch strings.ToLower(c.Bootstrap.Method) {
	case "pval", "zscore":
	default:
		bad("bootstrap.method %q (want pval or zscore)", c.Bootstrap.Method)
	}
	return errors.Join(errs...)
}
