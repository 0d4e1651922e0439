package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gridstar/astar"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestEmbeddedMatchesDefault(t *testing.T) {
	cfg, err := parse(defaultYAML)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadSearchOrder(t *testing.T) {
	dir := t.TempDir()
	custom := writeFile(t, dir, "custom.yaml", "viewer:\n  fps: 10\n")
	user := writeFile(t, dir, "user.yaml", "viewer:\n  fps: 20\n")
	local := writeFile(t, dir, "local.yaml", "viewer:\n  fps: 40\n")
	missing := filepath.Join(dir, "missing.yaml")

	cfg, err := load(custom, user, local)
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.Viewer.FPS)
	assert.Equal(t, "euclidean", cfg.Search.Heuristic, "missing keys keep defaults")

	cfg, err = load("", user, local)
	require.NoError(t, err)
	assert.Equal(t, 20, cfg.Viewer.FPS)

	cfg, err = load("", missing, local)
	require.NoError(t, err)
	assert.Equal(t, 40, cfg.Viewer.FPS)

	cfg, err = load("", missing, missing)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadInvalidIsReported(t *testing.T) {
	dir := t.TempDir()
	bad := writeFile(t, dir, "bad.yaml", "viewer:\n  fps: 0\n")
	typo := writeFile(t, dir, "typo.yaml", "search: [\n")
	local := writeFile(t, dir, "local.yaml", "log:\n  level: debug\n")

	_, err := load("", bad, local)
	assert.ErrorIs(t, err, ErrInvalidConfig, "an invalid user config is not skipped")
	assert.ErrorContains(t, err, bad)

	_, err = load("", typo, local)
	assert.ErrorContains(t, err, typo)

	_, err = load("", "", bad)
	assert.ErrorIs(t, err, ErrInvalidConfig, "same for the local config")

	cfg, err := load("", filepath.Join(dir, "absent.yaml"), local)
	require.NoError(t, err, "a missing file falls through")
	assert.Equal(t, "debug", cfg.Log.Level)

	_, err = load(bad, "", "")
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = load(filepath.Join(dir, "nope.yaml"), "", "")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestValidate(t *testing.T) {
	cases := map[string]func(*Config){
		"heuristic": func(c *Config) { c.Search.Heuristic = "manhattan" },
		"scale":     func(c *Config) { c.Search.CostScale = 0 },
		"fps":       func(c *Config) { c.Viewer.FPS = 1000 },
		"level":     func(c *Config) { c.Log.Level = "loud" },
	}
	for name, mutate := range cases {
		cfg := Default()
		mutate(&cfg)
		assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig, name)
	}
	assert.NoError(t, Default().Validate())
}

func TestSearchOptions(t *testing.T) {
	cfg := Default()
	cfg.Search.CornerCutting = false
	cfg.Search.AllowSameStartGoal = false
	cfg.Search.Heuristic = "octile"

	opts, err := cfg.SearchOptions()
	require.NoError(t, err)
	assert.Len(t, opts, 4)

	o := astar.DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	assert.True(t, o.NoCornerCutting)
	assert.False(t, o.AllowSameStartGoal)
	assert.False(t, o.Precheck)
	assert.Equal(t, 1.0, o.CostScale)

	cfg.Search.Heuristic = "???"
	_, err = cfg.SearchOptions()
	assert.ErrorIs(t, err, astar.ErrOptionViolation)
}
