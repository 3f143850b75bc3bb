package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/katalvlaran/spatialperm/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_YAML(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := writeFile(t, dir, "cfg.yaml", `
logging:
  level: debug
  format: json
workers: 4
neighbors:
  mode: region
  expand: 2.5
  ignoreSelf: true
bootstrap:
  times: 99
  pval: 0.01
  method: zscore
  order: true
  seed: 7
metrics:
  textfile: /tmp/spatialperm.prom
`)
	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, config.ModeRegion, cfg.Neighbors.Mode)
	require.NotNil(t, cfg.Neighbors.Expand)
	assert.Equal(t, 2.5, *cfg.Neighbors.Expand)
	assert.Equal(t, 1.0, cfg.Neighbors.Scale, "unset keys keep defaults")
	assert.True(t, cfg.Neighbors.IgnoreSelf)
	assert.Equal(t, config.BootstrapConfig{Times: 99, PValue: 0.01, Method: "zscore", Order: true, Seed: 7}, cfg.Bootstrap)
	assert.Equal(t, "/tmp/spatialperm.prom", cfg.Metrics.Textfile)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_EnvOverridesYAML(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := writeFile(t, dir, "cfg.yaml", "bootstrap:\n  times: 99\n")
	t.Setenv("SPATIALPERM_BOOTSTRAP_TIMES", "1000")
	t.Setenv("SPATIALPERM_NEIGHBORS_RADIUS", "12.5")
	t.Setenv("SPATIALPERM_NEIGHBORS_IGNORE_SELF", "true")
	t.Setenv("SPATIALPERM_LOG_FORMAT", "json")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1000, cfg.Bootstrap.Times)
	assert.Equal(t, 12.5, cfg.Neighbors.Radius)
	assert.True(t, cfg.Neighbors.IgnoreSelf)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoad_BadEnvNumber(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SPATIALPERM_WORKERS", "many")
	_, err := config.Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SPATIALPERM_WORKERS")
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeFile(t, dir, ".env", "SPATIALPERM_BOOTSTRAP_SEED=31\n")
	t.Cleanup(func() { os.Unsetenv("SPATIALPERM_BOOTSTRAP_SEED") })

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, int64(31), cfg.Bootstrap.Seed)
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	_, err := config.Load(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	path := writeFile(t, dir, "bad.yaml", "workers: [1, 2\n")
	_, err = config.Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	neg := -1.0
	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"format", func(c *config.Config) { c.Logging.Format = "xml" }},
		{"workers", func(c *config.Config) { c.Workers = -2 }},
		{"mode", func(c *config.Config) { c.Neighbors.Mode = "grid" }},
		{"radius", func(c *config.Config) { c.Neighbors.Radius = -1 }},
		{"expand", func(c *config.Config) { c.Neighbors.Expand = &neg }},
		{"scale", func(c *config.Config) { c.Neighbors.Scale = 0 }},
		{"times", func(c *config.Config) { c.Bootstrap.Times = 0 }},
		{"pval", func(c *config.Config) { c.Bootstrap.PValue = 1.5 }},
		{"method", func(c *config.Config) { c.Bootstrap.Method = "bayes" }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Default()
			tc.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), config.ErrInvalid)
		})
	}
}
