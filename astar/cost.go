package astar

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/katalvlaran/gridstar/gridgraph"
)

// Heuristic estimates the remaining cost from a to goal in unscaled grid units.
// The search guarantees an optimal path only for admissible heuristics (never
// overestimating); it never reopens closed cells, so the heuristic must also be
// consistent: h(a) ≤ StepCost(a,b) + h(b) for every neighbor b.
type Heuristic func(a, goal gridgraph.Cell) float64

// StepCost returns the Euclidean distance between two cell coordinates:
// 1 for an orthogonal move and √2 for a diagonal one.
func StepCost(a, b gridgraph.Cell) float64 {
	return Euclidean(a, b)
}

// Euclidean is the straight-line distance between cell coordinates. It is the
// default heuristic; admissible and consistent under both Conn4 and Conn8.
func Euclidean(a, goal gridgraph.Cell) float64 {
	dx := float64(a.X - goal.X)
	dy := float64(a.Y - goal.Y)

	return math.Sqrt(dx*dx + dy*dy)
}

// Octile is the exact cost of an unobstructed 8-directional path:
// max(dx,dy) + (√2−1)·min(dx,dy). Tighter than Euclidean, so it expands fewer
// cells, and still consistent for the straight/diagonal cost classes.
func Octile(a, goal gridgraph.Cell) float64 {
	dx := math.Abs(float64(a.X - goal.X))
	dy := math.Abs(float64(a.Y - goal.Y))
	if dx < dy {
		dx, dy = dy, dx
	}

	return dx + (math.Sqrt2-1)*dy
}

// Zero always returns 0, which reduces A* to Dijkstra's algorithm.
func Zero(_, _ gridgraph.Cell) float64 {
	return 0
}

// heuristics maps the names accepted by ParseHeuristic.
var heuristics = map[string]Heuristic{
	"euclidean": Euclidean,
	"octile":    Octile,
	"zero":      Zero,
	"dijkstra":  Zero,
}

// ParseHeuristic resolves a heuristic by case-insensitive name:
// "euclidean" (also ""), "octile", "zero" or "dijkstra".
func ParseHeuristic(name string) (Heuristic, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return Euclidean, nil
	}
	h, ok := heuristics[key]
	if !ok {
		return nil, fmt.Errorf("%w: unknown heuristic %q (want one of %s)",
			ErrOptionViolation, name, strings.Join(HeuristicNames(), ", "))
	}

	return h, nil
}

// HeuristicNames lists the accepted heuristic names in sorted order.
func HeuristicNames() []string {
	names := make([]string, 0, len(heuristics))
	for n := range heuristics {
		names = append(names, n)
	}
	sort.Strings(names)

	return names
}
