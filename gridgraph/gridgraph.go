package gridgraph

import (
	"fmt"
	"sync"
)

// GridGraph is a Width×Height grid of cells with per-cell obstacle flags.
// Dimensions and connectivity are fixed at construction; obstacle flags are
// guarded by an RWMutex and frozen while a search step has the grid pinned.
// Every effective obstacle change bumps Generation.
type GridGraph struct {
	width, height int
	conn          Connectivity
	offsets       [][2]int

	mu      sync.RWMutex
	blocked []bool // row-major obstacle flags
	pinned  bool
	gen     uint64 // bumped on every obstacle change
}

// NewGridGraph constructs an obstacle-free grid of the given size.
// Returns ErrBadDimensions if width or height is below 1.
// Complexity: O(W×H) time and memory.
func NewGridGraph(width, height int, opts GridOptions) (*GridGraph, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("%w: %dx%d", ErrBadDimensions, width, height)
	}
	offsets := offsets8
	if opts.Conn == Conn4 {
		offsets = offsets4
	}

	return &GridGraph{
		width:   width,
		height:  height,
		conn:    opts.Conn,
		offsets: offsets,
		blocked: make([]bool, width*height),
	}, nil
}

// FromMask constructs a grid from a non-empty, rectangular 2D slice where
// mask[y][x] == true marks an obstacle. The input is copied.
// Returns ErrEmptyGrid if mask has no rows or no columns,
// ErrNonRectangular if any row length differs.
func FromMask(mask [][]bool, opts GridOptions) (*GridGraph, error) {
	if len(mask) == 0 || len(mask[0]) == 0 {
		return nil, ErrEmptyGrid
	}
	h, w := len(mask), len(mask[0])
	for _, row := range mask {
		if len(row) != w {
			return nil, ErrNonRectangular
		}
	}
	gg, err := NewGridGraph(w, h, opts)
	if err != nil {
		return nil, err
	}
	for y := 0; y < h; y++ {
		copy(gg.blocked[y*w:(y+1)*w], mask[y])
	}

	return gg, nil
}

// Width returns the number of columns.
func (gg *GridGraph) Width() int { return gg.width }

// Height returns the number of rows.
func (gg *GridGraph) Height() int { return gg.height }

// Len returns the number of cells, Width×Height.
func (gg *GridGraph) Len() int { return gg.width * gg.height }

// Connectivity returns the neighbor connectivity chosen at construction.
func (gg *GridGraph) Connectivity() Connectivity { return gg.conn }

// InBounds reports whether (x,y) lies within the grid boundaries.
// Complexity: O(1).
func (gg *GridGraph) InBounds(x, y int) bool {
	return x >= 0 && x < gg.width && y >= 0 && y < gg.height
}

// Contains reports whether c lies within the grid boundaries.
func (gg *GridGraph) Contains(c Cell) bool {
	return gg.InBounds(c.X, c.Y)
}

// Index maps c to its row-major index y*Width + x. The caller must ensure c is
// in bounds.
// Complexity: O(1).
func (gg *GridGraph) Index(c Cell) int {
	return c.Y*gg.width + c.X
}

// Coordinate converts a row-major index back to a Cell.
// Complexity: O(1).
func (gg *GridGraph) Coordinate(idx int) Cell {
	return Cell{X: idx % gg.width, Y: idx / gg.width}
}

// NeighborOffsets returns the precomputed neighbor offsets in iteration order.
func (gg *GridGraph) NeighborOffsets() [][2]int {
	return gg.offsets
}

// Neighbors returns every in-bounds cell adjacent to c, obstacles included,
// in the fixed order N, E, S, W, NW, NE, SE, SW (Conn8) or N, E, S, W (Conn4).
// Returns ErrOutOfBounds if c is outside the grid.
func (gg *GridGraph) Neighbors(c Cell) ([]Cell, error) {
	if !gg.Contains(c) {
		return nil, fmt.Errorf("%w: %v", ErrOutOfBounds, c)
	}

	return gg.AppendNeighbors(make([]Cell, 0, len(gg.offsets)), c), nil
}

// AppendNeighbors appends the neighbors of c to dst in iteration order and
// returns the extended slice. Out-of-bounds c yields dst unchanged. Search
// loops use it with a reused buffer to avoid per-expansion allocations.
func (gg *GridGraph) AppendNeighbors(dst []Cell, c Cell) []Cell {
	if !gg.Contains(c) {
		return dst
	}
	for _, d := range gg.offsets {
		nx, ny := c.X+d[0], c.Y+d[1]
		if gg.InBounds(nx, ny) {
			dst = append(dst, Cell{X: nx, Y: ny})
		}
	}

	return dst
}

// IsObstacle reports whether c is impassable.
// Returns ErrOutOfBounds if c is outside the grid.
func (gg *GridGraph) IsObstacle(c Cell) (bool, error) {
	if !gg.Contains(c) {
		return false, fmt.Errorf("%w: %v", ErrOutOfBounds, c)
	}
	gg.mu.RLock()
	defer gg.mu.RUnlock()

	return gg.blocked[gg.Index(c)], nil
}

// Blocked reports whether c is an obstacle or outside the grid. It never fails
// and is meant for hot loops that already validated their input.
func (gg *GridGraph) Blocked(c Cell) bool {
	if !gg.Contains(c) {
		return true
	}
	gg.mu.RLock()
	b := gg.blocked[gg.Index(c)]
	gg.mu.RUnlock()

	return b
}

// SetObstacle sets or clears the obstacle flag of c.
// Returns ErrOutOfBounds if c is outside the grid and ErrGridPinned while a
// search holds the grid; the flag is left untouched in both cases.
func (gg *GridGraph) SetObstacle(c Cell, blocked bool) error {
	if !gg.Contains(c) {
		return fmt.Errorf("%w: %v", ErrOutOfBounds, c)
	}
	gg.mu.Lock()
	defer gg.mu.Unlock()
	if gg.pinned {
		return fmt.Errorf("%w: cannot set %v", ErrGridPinned, c)
	}
	i := gg.Index(c)
	if gg.blocked[i] != blocked {
		gg.blocked[i] = blocked
		gg.gen++
	}

	return nil
}

// ClearObstacles marks every cell free.
// Returns ErrGridPinned while a search holds the grid.
func (gg *GridGraph) ClearObstacles() error {
	gg.mu.Lock()
	defer gg.mu.Unlock()
	if gg.pinned {
		return ErrGridPinned
	}
	changed := false
	for i, b := range gg.blocked {
		if b {
			gg.blocked[i] = false
			changed = true
		}
	}
	if changed {
		gg.gen++
	}

	return nil
}

// Obstacles returns all obstacle cells in row-major order.
func (gg *GridGraph) Obstacles() []Cell {
	gg.mu.RLock()
	defer gg.mu.RUnlock()
	var out []Cell
	for i, b := range gg.blocked {
		if b {
			out = append(out, gg.Coordinate(i))
		}
	}

	return out
}

// ObstacleCount returns the number of obstacle cells.
func (gg *GridGraph) ObstacleCount() int {
	gg.mu.RLock()
	defer gg.mu.RUnlock()
	n := 0
	for _, b := range gg.blocked {
		if b {
			n++
		}
	}

	return n
}

// Clone returns an independent, unpinned copy of the grid.
// Complexity: O(W×H).
func (gg *GridGraph) Clone() *GridGraph {
	gg.mu.RLock()
	defer gg.mu.RUnlock()
	blocked := make([]bool, len(gg.blocked))
	copy(blocked, gg.blocked)

	return &GridGraph{
		width:   gg.width,
		height:  gg.height,
		conn:    gg.conn,
		offsets: gg.offsets,
		blocked: blocked,
	}
}

// Generation returns a counter that changes whenever an obstacle flag changes.
// A search records it at start and compares it before every step.
func (gg *GridGraph) Generation() uint64 {
	gg.mu.RLock()
	defer gg.mu.RUnlock()

	return gg.gen
}

// Pin freezes the obstacle flags for the duration of one search step.
// Returns ErrGridBusy if the grid is already pinned.
func (gg *GridGraph) Pin() error {
	gg.mu.Lock()
	defer gg.mu.Unlock()
	if gg.pinned {
		return ErrGridBusy
	}
	gg.pinned = true

	return nil
}

// Unpin releases a pin taken by Pin. Unpinning a free grid is a no-op.
func (gg *GridGraph) Unpin() {
	gg.mu.Lock()
	gg.pinned = false
	gg.mu.Unlock()
}

// Pinned reports whether a search currently holds the grid.
func (gg *GridGraph) Pinned() bool {
	gg.mu.RLock()
	defer gg.mu.RUnlock()

	return gg.pinned
}
