// Package gridgraph treats a fixed-size 2D grid of cells as a graph for
// pathfinding: every cell is a vertex, adjacency is derived from the cell
// coordinates, and a per-cell flag marks impassable "obstacle" cells.
//
// What:
//
//   - GridGraph owns Width×Height cells and their obstacle flags.
//   - Neighbors yields in-bounds adjacent cells in a fixed, documented order
//     (N, E, S, W, NW, NE, SE, SW under Conn8; N, E, S, W under Conn4).
//   - Regions labels connected components of free cells.
//   - MinimalBreach finds the fewest obstacles to clear between two cells.
//
// Coordinates follow screen convention: X grows to the right, Y grows downward,
// so "north" is (0,-1).
//
//	   NW  N  NE
//	     ╲ │ ╱
//	   W ─ c ─ E
//	     ╱ │ ╲
//	   SW  S  SE
//
// Ownership:
//
//   - Dimensions never change after construction.
//   - Obstacle flags may change between searches. A session Pins the grid
//     only for the duration of each Step, so SetObstacle and ClearObstacles
//     fail with ErrGridPinned while a step is executing and succeed between
//     steps. A discarded session therefore never leaves the grid locked.
//   - Every effective obstacle change bumps Generation; a session whose grid
//     changed mid-run refuses to continue (ErrGridChanged) until Reset.
//   - At most one step may hold the pin at a time (ErrGridBusy); concurrent
//     searches each take a Clone.
//
// Complexity:
//
//   - Neighbors, IsObstacle, SetObstacle: O(1).
//   - Regions:                            O(W×H×d), Memory: O(W×H)   (d = 4 or 8).
//   - MinimalBreach:                      O(W×H×d), Memory: O(W×H).
//
// Errors:
//
//   - ErrBadDimensions:  width or height below 1.
//   - ErrEmptyGrid:      mask has no rows or no columns.
//   - ErrNonRectangular: mask rows have differing lengths.
//   - ErrOutOfBounds:    coordinate outside [0,Width)×[0,Height).
//   - ErrGridPinned:     obstacle mutation during an active search.
//   - ErrGridBusy:       a second session tried to pin the grid.
//   - ErrGridChanged:    obstacles edited between two steps of one search.
package gridgraph
