// File: gridgraph/example_test.go
package gridgraph_test

import (
	"fmt"

	"github.com/katalvlaran/gridstar/gridgraph"
)

////////////////////////////////////////////////////////////////////////////////
// Example: Neighbors
////////////////////////////////////////////////////////////////////////////////

// ExampleGridGraph_Neighbors shows the fixed neighbor order of an interior
// cell: orthogonal first (N, E, S, W), then diagonal (NW, NE, SE, SW).
func ExampleGridGraph_Neighbors() {
	gg, _ := gridgraph.NewGridGraph(3, 3, gridgraph.DefaultGridOptions())

	ns, _ := gg.Neighbors(gridgraph.C(1, 1))
	for _, n := range ns {
		fmt.Print(n, " ")
	}
	fmt.Println()

	// Output:
	// (1,0) (2,1) (1,2) (0,1) (0,0) (2,0) (2,2) (0,2)
}

////////////////////////////////////////////////////////////////////////////////
// Example: Regions
////////////////////////////////////////////////////////////////////////////////

// ExampleGridGraph_Regions splits a grid into free regions separated by a
// full-height wall.
//
//	. . # .
//	. . # .
func ExampleGridGraph_Regions() {
	gg, _ := gridgraph.NewGridGraph(4, 2, gridgraph.DefaultGridOptions())
	_ = gg.SetObstacle(gridgraph.C(2, 0), true)
	_ = gg.SetObstacle(gridgraph.C(2, 1), true)

	for i, comp := range gg.Regions() {
		fmt.Printf("region %d:", i)
		for _, idx := range comp {
			fmt.Print(" ", gg.Coordinate(idx))
		}
		fmt.Println()
	}

	// Output:
	// region 0: (0,0) (1,0) (0,1) (1,1)
	// region 1: (3,0) (3,1)
}

////////////////////////////////////////////////////////////////////////////////
// Example: MinimalBreach
////////////////////////////////////////////////////////////////////////////////

// ExampleGridGraph_MinimalBreach reports the cheapest way through a solid wall.
func ExampleGridGraph_MinimalBreach() {
	gg, _ := gridgraph.NewGridGraph(3, 1, gridgraph.DefaultGridOptions())
	_ = gg.SetObstacle(gridgraph.C(1, 0), true)

	path, cost, _ := gg.MinimalBreach(gridgraph.C(0, 0), gridgraph.C(2, 0))
	fmt.Printf("clear %d cell(s) along %v\n", cost, path)

	// Output:
	// clear 1 cell(s) along [(0,0) (1,0) (2,0)]
}
