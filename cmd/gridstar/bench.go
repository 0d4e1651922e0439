package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/gridstar/astar"
	"github.com/katalvlaran/gridstar/gridgraph"
	"github.com/katalvlaran/gridstar/metrics"
)

type benchParams struct {
	size    int
	density float64
	runs    int
	seed    int64
	dump    bool
}

func (a *app) benchCmd() *cobra.Command {
	var p benchParams
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Time searches on random grids",
		Long: `Generate random square grids and search from the top-left corner to the
bottom-right one. Obstacles are placed independently with the given density;
the two corners are always free. The same seed reproduces the same grids.

Examples:
  gridstar bench
  gridstar bench --size 500 --density 0.35 --runs 5 --heuristic octile
  gridstar bench --metrics`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if p.size < 2 || p.runs < 1 || p.density < 0 || p.density >= 1 {
				return fmt.Errorf("bench: need size >= 2, runs >= 1 and density in [0,1)")
			}
			return a.bench(cmd, p)
		},
	}
	cmd.Flags().IntVar(&p.size, "size", 100, "Grid side length")
	cmd.Flags().Float64Var(&p.density, "density", 0.25, "Obstacle probability per cell")
	cmd.Flags().IntVar(&p.runs, "runs", 10, "Number of grids to search")
	cmd.Flags().Int64Var(&p.seed, "seed", 42, "RNG seed")
	cmd.Flags().BoolVar(&p.dump, "metrics", false, "Print the collected metrics in Prometheus text format")

	return cmd
}

func (a *app) bench(cmd *cobra.Command, p benchParams) error {
	reg := prometheus.NewRegistry()
	rec := metrics.NewRecorder(reg, a.cfg.Search.Heuristic)
	opts, err := a.searchOptions(rec.Options()...)
	if err != nil {
		return err
	}

	rng := rand.New(rand.NewSource(p.seed))
	start, goal := gridgraph.C(0, 0), gridgraph.C(p.size-1, p.size-1)
	var total time.Duration
	for i := 0; i < p.runs; i++ {
		g, err := randomGrid(rng, p.size, p.density, start, goal)
		if err != nil {
			return err
		}
		s, err := astar.NewSession(g, opts...)
		if err != nil {
			return err
		}
		if err := s.Configure(start, goal); err != nil {
			return err
		}
		began := time.Now()
		res, err := s.RunContext(cmd.Context())
		if err != nil {
			return err
		}
		took := time.Since(began)
		total += took
		rec.ObserveResult(res)
		a.logger.Debug("bench run", "run", i, "status", res.Status, "expanded", res.Expanded, "took", took)
	}

	t := rec.Totals()
	fmt.Fprintf(a.out, "grid:      %dx%d, density %.2f, seed %d\n", p.size, p.size, p.density, p.seed)
	fmt.Fprintf(a.out, "heuristic: %s\n", a.cfg.Search.Heuristic)
	fmt.Fprintf(a.out, "runs:      %d (%.0f succeeded, %.0f failed)\n", p.runs, t.Succeeded, t.Failed)
	fmt.Fprintf(a.out, "expanded:  %.0f total, %.1f per run\n", t.Expanded, t.Expanded/float64(p.runs))
	fmt.Fprintf(a.out, "opened:    %.0f, relaxed %.0f\n", t.Opened, t.Relaxed)
	fmt.Fprintf(a.out, "time:      %s total, %s per run\n", total.Round(time.Microsecond),
		(total / time.Duration(p.runs)).Round(time.Microsecond))

	if !p.dump {
		return nil
	}
	fmt.Fprintln(a.out)
	families, err := reg.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(a.out, mf); err != nil {
			return err
		}
	}

	return nil
}

// randomGrid places each obstacle with probability density, keeping start and
// goal free.
func randomGrid(rng *rand.Rand, size int, density float64, start, goal gridgraph.Cell) (*gridgraph.GridGraph, error) {
	g, err := gridgraph.NewGridGraph(size, size, gridgraph.DefaultGridOptions())
	if err != nil {
		return nil, err
	}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			c := gridgraph.C(x, y)
			if c == start || c == goal || rng.Float64() >= density {
				continue
			}
			if err := g.SetObstacle(c, true); err != nil {
				return nil, err
			}
		}
	}

	return g, nil
}
