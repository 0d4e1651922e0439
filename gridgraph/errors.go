package gridgraph

import "errors"

var (
	// ErrBadDimensions indicates a width or height below 1.
	ErrBadDimensions = errors.New("gridgraph: width and height must be at least 1")
	// ErrEmptyGrid indicates the input mask is empty.
	ErrEmptyGrid = errors.New("gridgraph: input grid must have at least one row and one column")
	// ErrNonRectangular indicates rows of differing lengths.
	ErrNonRectangular = errors.New("gridgraph: all rows must have the same length")
	// ErrOutOfBounds indicates a coordinate outside the grid extent.
	ErrOutOfBounds = errors.New("gridgraph: cell out of bounds")
	// ErrGridPinned indicates an obstacle mutation while a search holds the grid.
	ErrGridPinned = errors.New("gridgraph: grid is pinned by an active search")
	// ErrGridBusy indicates the grid is already pinned by another search.
	ErrGridBusy = errors.New("gridgraph: grid is already in use by another search")
	// ErrGridChanged indicates the obstacle flags changed after a search started.
	ErrGridChanged = errors.New("gridgraph: obstacles changed since the search started")
)
