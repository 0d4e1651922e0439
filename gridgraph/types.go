package gridgraph

import "fmt"

// Connectivity selects neighbor connectivity: orthogonal (Conn4) or including diagonals (Conn8).
type Connectivity int

const (
	// Conn8 uses 8-directional connectivity: N, E, S, W, NW, NE, SE, SW.
	Conn8 Connectivity = iota
	// Conn4 uses 4-directional connectivity: N, E, S, W.
	Conn4
)

// String returns "8" or "4".
func (c Connectivity) String() string {
	if c == Conn4 {
		return "4"
	}
	return "8"
}

// Degree returns the maximum number of neighbors a cell can have.
func (c Connectivity) Degree() int {
	if c == Conn4 {
		return 4
	}
	return 8
}

// ParseConnectivity maps 4 or 8 to a Connectivity; 0 selects the default Conn8.
func ParseConnectivity(n int) (Connectivity, error) {
	switch n {
	case 0, 8:
		return Conn8, nil
	case 4:
		return Conn4, nil
	default:
		return Conn8, fmt.Errorf("gridgraph: connectivity must be 4 or 8, got %d", n)
	}
}

// Neighbor offsets in the fixed iteration order. The order decides which of
// several equal-cost paths a search reports, so it must never change.
var (
	offsets4 = [][2]int{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}
	offsets8 = [][2]int{{0, -1}, {1, 0}, {0, 1}, {-1, 0}, {-1, -1}, {1, -1}, {1, 1}, {-1, 1}}
)

// Cell is a grid coordinate.
type Cell struct {
	X, Y int
}

// C is a convenience constructor for Cell.
func C(x, y int) Cell {
	return Cell{X: x, Y: y}
}

// String returns "(x,y)".
func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Diagonal reports whether c and o differ on both axes.
func (c Cell) Diagonal(o Cell) bool {
	return c.X != o.X && c.Y != o.Y
}

// GridOptions contains tunable parameters for grid construction.
type GridOptions struct {
	// Conn chooses 4- or 8-directional connectivity.
	Conn Connectivity
}

// DefaultGridOptions returns GridOptions with Conn=Conn8.
func DefaultGridOptions() GridOptions {
	return GridOptions{
		Conn: Conn8,
	}
}
