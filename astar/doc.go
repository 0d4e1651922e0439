// Package astar finds lowest-cost paths on a gridgraph.GridGraph with the A*
// algorithm, using 8-directional (or 4-directional) moves where a straight
// step costs 1 and a diagonal step costs √2.
//
// What
//
//   - Session binds a grid to a start and goal cell and drives runs over it.
//   - Run / RunContext search to completion; Step performs one expansion, so a
//     viewer can animate the search frame by frame.
//   - Introspection (Node, Open, Closed, ClosedOrder, Current) exposes the
//     open/closed bookkeeping without allowing mutation.
//   - Hooks (WithOnOpen, WithOnRelax, WithOnClose, WithOnFinish) observe a run.
//
// State machine
//
//	Idle ──Step/Run──▶ Running ──goal closed──▶ Succeeded
//	  ▲                    │
//	  │                    └──frontier empty──▶ Failed
//	  └──────── Reset / Configure (from any state)
//
// Failed is a normal outcome reported through Status, never as an error.
//
// Determinism
//
//	The frontier always pops the open cell with the lowest F = G + H. Ties go
//	to the lower H, then to the cell inserted into the frontier first; a
//	relaxed cell keeps its original insertion order. Neighbors are visited in
//	the grid's fixed order, so identical inputs give identical paths.
//
// Optimality
//
//	Closed cells are never reopened. Paths are optimal for consistent
//	heuristics: Euclidean (default), Octile and Zero all qualify. Zero turns
//	the search into Dijkstra's algorithm.
//
// Usage
//
//	g, _ := gridgraph.NewGridGraph(20, 20, gridgraph.DefaultGridOptions())
//	s, _ := astar.NewSession(g, astar.WithHeuristic(astar.Octile))
//	if err := s.Configure(gridgraph.C(0, 0), gridgraph.C(19, 19)); err != nil {
//		// ErrInvalidConfiguration
//	}
//	res, err := s.Run()
//	if err == nil && res.Found() {
//		fmt.Println(res.Cost, res.Path)
//	}
//
// Complexity (N = W×H cells)
//
//   - Run:  O(N log N) time, O(N) memory.
//   - Step: O(log N) amortized.
//   - Path: O(L), L = path length.
//
// Errors:
//
//   - ErrNilGrid:              NewSession got a nil grid.
//   - ErrOptionViolation:      invalid option value (e.g. non-positive cost scale, unknown heuristic name).
//   - ErrInvalidConfiguration: start/goal unset, out of bounds, on an obstacle, or equal when disallowed.
//   - ErrNoPath:               Path after a Failed run.
//   - ErrInconsistentState:    Path before success, a broken parent chain, or
//     (wrapping gridgraph.ErrGridChanged) obstacles edited mid-run.
//   - gridgraph.ErrGridBusy:   another session is stepping on the grid.
package astar
