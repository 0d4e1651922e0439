package astar

import (
	"fmt"

	"github.com/katalvlaran/gridstar/gridgraph"
)

// reconstruct walks parent links from the goal back to the parentless start
// and returns the cells in start→goal order.
//
// Errors:
//   - ErrNoPath if the run ended Failed.
//   - ErrInconsistentState if the run has not succeeded yet, or if the parent
//     chain is broken (an unreached link, a chain not ending at the start, or
//     a cycle longer than the cell count).
//
// Complexity: O(L) time and memory, L = path length.
func (r *runner) reconstruct() ([]gridgraph.Cell, error) {
	switch r.status {
	case Succeeded:
	case Failed:
		return nil, ErrNoPath
	default:
		return nil, fmt.Errorf("%w: no path before success (status %s)", ErrInconsistentState, r.status)
	}

	limit := len(r.nodes)
	rev := make([]gridgraph.Cell, 0, 16)
	last := -1
	for i := r.goal; i >= 0; i = r.nodes[i].parent {
		if r.nodes[i].state == Unvisited {
			return nil, fmt.Errorf("%w: parent chain reaches unvisited cell %v", ErrInconsistentState, r.cell(i))
		}
		if len(rev) == limit {
			return nil, fmt.Errorf("%w: parent chain longer than %d cells", ErrInconsistentState, limit)
		}
		rev = append(rev, r.cell(i))
		last = i
	}
	if last != r.start {
		return nil, fmt.Errorf("%w: parent chain ends at %v, not start %v",
			ErrInconsistentState, r.cell(last), r.cell(r.start))
	}

	// reverse in place
	for i, j := 0, len(rev)-1; i < j; i, j = i+1, j-1 {
		rev[i], rev[j] = rev[j], rev[i]
	}

	return rev, nil
}
