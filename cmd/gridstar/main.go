// gridstar solves and visualizes 8-directional A* searches on obstacle grids.
//
// Usage:
//
//	gridstar solve <layout>        - Run a search to completion and print the map
//	gridstar watch [layout]        - Step through a search in the terminal
//	gridstar bench                 - Time searches on random grids
//	gridstar layouts list|save|show|delete
//	gridstar history [layout]      - Show recorded runs
//
// A layout is a YAML file path, a builtin name (see 'gridstar layouts list')
// or the name of a layout saved in the database.
//
// Global flags:
//
//	--config <path>     - Config file (default search: ~/.gridstar/config.yaml, ./configs/gridstar.yaml)
//	--db <path>         - Database path (default from config: ~/.gridstar/gridstar.db)
//	--log-level <lvl>   - debug, info, warn or error
//	--heuristic <name>  - euclidean, octile, zero or dijkstra
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/gridstar/astar"
	"github.com/katalvlaran/gridstar/internal/config"
	"github.com/katalvlaran/gridstar/internal/storage"
	"github.com/katalvlaran/gridstar/layout"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}

// app carries the state shared by all subcommands once flags are parsed.
type app struct {
	configPath string
	dbPath     string
	logLevel   string
	heuristic  string

	cfg    config.Config
	logger *log.Logger
	out    io.Writer
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "gridstar",
		Short: "Grid A* pathfinding with a step viewer",
		Long: `gridstar runs A* searches over rectangular grids with obstacles,
moving in 8 directions at cost 1 (orthogonal) or sqrt(2) (diagonal).

Available commands:
  solve    - Run a search and print the map, cost and path
  watch    - Animate a search one expansion per frame
  bench    - Time searches on random grids
  layouts  - Manage saved layouts
  history  - Show recorded runs

Examples:
  gridstar solve maze-20
  gridstar solve ./my-grid.yaml --save
  gridstar watch wall-gap --fps 10
  gridstar bench --size 200 --density 0.3 --runs 20
  gridstar history maze-20`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "Path to config YAML")
	pf.StringVar(&a.dbPath, "db", "", "Path to run history database (overrides config)")
	pf.StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")
	pf.StringVar(&a.heuristic, "heuristic", "", "Heuristic: "+strings.Join(astar.HeuristicNames(), ", ")+" (overrides config)")

	root.AddCommand(a.solveCmd())
	root.AddCommand(a.watchCmd())
	root.AddCommand(a.benchCmd())
	root.AddCommand(a.layoutsCmd())
	root.AddCommand(a.historyCmd())

	return root
}

// setup loads the configuration, applies flag overrides and builds the logger.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.heuristic != "" {
		cfg.Search.Heuristic = a.heuristic
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	if a.dbPath != "" {
		cfg.Storage.DBPath = a.dbPath
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	a.logger = log.NewWithOptions(cmd.ErrOrStderr(), log.Options{
		ReportTimestamp: true,
		Prefix:          "gridstar",
	})
	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("%w: %w", config.ErrInvalidConfig, err)
	}
	a.logger.SetLevel(level)
	a.out = cmd.OutOrStdout()

	a.logger.Debug("configuration loaded", "heuristic", cfg.Search.Heuristic,
		"corner_cutting", cfg.Search.CornerCutting, "db", cfg.Storage.DBPath)

	return nil
}

func (a *app) openStore() (*storage.Store, error) {
	return storage.Open(a.cfg.Storage.DBPath, a.logger)
}

// resolveLayout finds ref as a YAML file, a builtin, or a saved layout, in
// that order.
func (a *app) resolveLayout(ref string) (*layout.Layout, error) {
	l, err := layout.Resolve(ref)
	if err == nil {
		return l, nil
	}
	if ext := strings.ToLower(path.Ext(ref)); ext == ".yaml" || ext == ".yml" {
		return nil, err
	}

	store, serr := a.openStore()
	if serr != nil {
		return nil, errors.Join(err, serr)
	}
	defer store.Close()

	saved, serr := store.LoadLayout(ref)
	if serr != nil {
		if errors.Is(serr, storage.ErrNotFound) {
			return nil, fmt.Errorf("unknown layout %q: not a file, builtin or saved layout", ref)
		}
		return nil, serr
	}

	return saved, nil
}

// searchOptions returns the configured session options followed by extra.
func (a *app) searchOptions(extra ...astar.Option) ([]astar.Option, error) {
	opts, err := a.cfg.SearchOptions()
	if err != nil {
		return nil, err
	}

	return append(opts, extra...), nil
}
