// Package gridstar is an 8-directional A* pathfinder for rectangular grids
// with obstacle cells, together with the tooling to load, solve, animate and
// record searches.
//
// 🚀 What is gridstar?
//
//	A small, deterministic, step-resumable A*:
//		• Grids: fixed-size obstacle tables with row-major indexing, free-region labelling
//		• Costs: 1 per orthogonal move, √2 per diagonal move
//		• Search: binary-heap frontier, no reopening, (f, h, insertion) tie-break
//		• Sessions: run to completion, or one expansion per Step with full introspection
//		• Layouts: YAML grid files with builtin samples and an ASCII renderer
//
// ✨ Why choose gridstar?
//
//   - Reproducible: identical inputs give identical paths and expansion order
//   - Inspectable: every cell's g, h, f, parent and open/closed state is readable mid-run
//   - Safe: a grid cannot be edited during a search step, and edits between steps are detected
//   - Hookable: OnStart, OnOpen, OnRelax, OnClose and OnFinish callbacks
//
// Packages:
//
//	gridgraph/        fundamental GridGraph and Cell types, regions, minimal breach
//	astar/            cost model, search engine, path reconstruction, Session
//	layout/           YAML layouts, builtins, ASCII rendering
//	metrics/          Prometheus collectors and OpenTelemetry spans fed by hooks
//	internal/config   CLI configuration
//	internal/storage  SQLite layout store and run history
//	internal/tui      Bubble Tea step viewer
//	cmd/gridstar      the gridstar command
//
// Quick ASCII example (S start, G goal, # obstacle, * path):
//
//	S . # . .
//	. * # . .
//	. . * . .
//	. . # * .
//	. . # . G
//
// represents the only optimal route, cost 4·√2, through the single gap.
//
//	go install github.com/katalvlaran/gridstar/cmd/gridstar@latest
package gridstar
