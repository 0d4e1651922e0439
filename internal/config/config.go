// Package config provides YAML-based configuration for the gridstar CLI.
package config

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/gridstar/astar"
)

// ErrInvalidConfig indicates a configuration value outside its allowed range.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config contains all CLI configuration.
type Config struct {
	Search  SearchConfig  `yaml:"search"`
	Viewer  ViewerConfig  `yaml:"viewer"`
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
}

// SearchConfig defines the default search policy.
type SearchConfig struct {
	Heuristic          string  `yaml:"heuristic"`
	CornerCutting      bool    `yaml:"corner_cutting"`
	CostScale          float64 `yaml:"cost_scale"`
	AllowSameStartGoal bool    `yaml:"allow_same_start_goal"`
	Precheck           bool    `yaml:"reachability_precheck"`
}

// ViewerConfig defines step viewer parameters.
type ViewerConfig struct {
	FPS           int    `yaml:"fps"`
	DefaultLayout string `yaml:"default_layout"`
}

// StorageConfig defines the run history database location.
type StorageConfig struct {
	DBPath string `yaml:"db_path"`
}

// LogConfig defines logging parameters.
type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns the built-in configuration, identical to the embedded
// defaults/gridstar.yaml.
func Default() Config {
	return Config{
		Search: SearchConfig{
			Heuristic:          "euclidean",
			CornerCutting:      true,
			CostScale:          1,
			AllowSameStartGoal: true,
		},
		Viewer: ViewerConfig{
			FPS:           30,
			DefaultLayout: "maze-20",
		},
		Storage: StorageConfig{
			DBPath: "~/.gridstar/gridstar.db",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if _, err := astar.ParseHeuristic(c.Search.Heuristic); err != nil {
		return fmt.Errorf("%w: search.heuristic: %w", ErrInvalidConfig, err)
	}
	if c.Search.CostScale <= 0 {
		return fmt.Errorf("%w: search.cost_scale must be positive, got %v", ErrInvalidConfig, c.Search.CostScale)
	}
	if c.Viewer.FPS < 1 || c.Viewer.FPS > 240 {
		return fmt.Errorf("%w: viewer.fps must be in [1,240], got %d", ErrInvalidConfig, c.Viewer.FPS)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: log.level %q", ErrInvalidConfig, c.Log.Level)
	}

	return nil
}

// SearchOptions maps the search section to session options.
func (c Config) SearchOptions() ([]astar.Option, error) {
	h, err := astar.ParseHeuristic(c.Search.Heuristic)
	if err != nil {
		return nil, err
	}
	opts := []astar.Option{
		astar.WithHeuristic(h),
		astar.WithCostScale(c.Search.CostScale),
	}
	if !c.Search.CornerCutting {
		opts = append(opts, astar.WithNoCornerCutting())
	}
	if !c.Search.AllowSameStartGoal {
		opts = append(opts, astar.WithDisallowSameStartGoal())
	}
	if c.Search.Precheck {
		opts = append(opts, astar.WithReachabilityPrecheck())
	}

	return opts, nil
}
