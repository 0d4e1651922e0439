package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"

	"github.com/katalvlaran/gridstar/astar"
	"github.com/katalvlaran/gridstar/gridgraph"
	"github.com/katalvlaran/gridstar/internal/storage"
	"github.com/katalvlaran/gridstar/layout"
	"github.com/katalvlaran/gridstar/metrics"
)

func (a *app) solveCmd() *cobra.Command {
	var (
		save  bool
		quiet bool
	)
	cmd := &cobra.Command{
		Use:   "solve <layout>",
		Short: "Run a search to completion",
		Long: `Run A* from the layout's start to its goal and print the map with the
path overlaid, followed by the path cost, the expansion count and the path.

Map legend:
  S start  G goal  * path  # obstacle  x closed  o open  . free

When no path exists, the smallest set of obstacles whose removal would
connect start and goal is printed as a hint.

Examples:
  gridstar solve wall-gap
  gridstar solve ./grid.yaml --heuristic octile --save`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := a.resolveLayout(args[0])
			if err != nil {
				return err
			}
			tracer := metrics.NewTracer(cmd.Context(), otel.GetTracerProvider(), l.Name)
			opts, err := a.searchOptions(tracer.Options()...)
			if err != nil {
				return err
			}
			s, err := l.Session(opts...)
			if err != nil {
				return err
			}

			began := time.Now()
			res, err := s.RunContext(cmd.Context())
			elapsed := time.Since(began)
			if err != nil {
				tracer.End(err)
				return err
			}
			a.logger.Debug("search finished", "layout", l.Name, "status", res.Status,
				"expanded", res.Expanded, "elapsed", elapsed)

			if !quiet {
				fmt.Fprint(a.out, layout.Render(s.Grid(), s))
				fmt.Fprintln(a.out)
			}
			a.printResult(s, res)

			if save {
				return a.saveRun(l.Name, res, elapsed)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&save, "save", false, "Record the run in the history database")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Do not print the map")

	return cmd
}

func (a *app) printResult(s *astar.Session, res astar.Result) {
	fmt.Fprintf(a.out, "status:   %s\n", res.Status)
	fmt.Fprintf(a.out, "expanded: %d\n", res.Expanded)
	if !res.Found() {
		a.printBreach(s.Grid(), s.Start(), s.Goal())
		return
	}
	fmt.Fprintf(a.out, "cost:     %.3f\n", res.Cost)
	fmt.Fprintf(a.out, "length:   %d\n", len(res.Path))
	fmt.Fprintf(a.out, "path:     %s\n", joinCells(res.Path))
}

// printBreach reports the fewest obstacles standing between start and goal.
func (a *app) printBreach(g *gridgraph.GridGraph, start, goal gridgraph.Cell) {
	path, cost, err := g.MinimalBreach(start, goal)
	if err != nil || cost == 0 {
		return
	}
	var walls []gridgraph.Cell
	for _, c := range path {
		if g.Blocked(c) {
			walls = append(walls, c)
		}
	}
	fmt.Fprintf(a.out, "hint:     clearing %d obstacle(s) opens a path: %s\n", cost, joinCells(walls))
}

func (a *app) saveRun(name string, res astar.Result, elapsed time.Duration) error {
	store, err := a.openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	rec := storage.RunRecord{
		Layout:    name,
		Heuristic: a.cfg.Search.Heuristic,
		Status:    res.Status.String(),
		PathLen:   len(res.Path),
		Expanded:  res.Expanded,
		Duration:  elapsed,
	}
	if res.Found() {
		rec.Cost = res.Cost
	}
	id, err := store.SaveRun(rec)
	if err != nil {
		return err
	}
	a.logger.Info("run saved", "id", id, "layout", name)

	return nil
}

func joinCells(cs []gridgraph.Cell) string {
	parts := make([]string, len(cs))
	for i, c := range cs {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
