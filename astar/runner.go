package astar

import (
	"container/heap"
	"fmt"

	"github.com/katalvlaran/gridstar/gridgraph"
)

// node is the per-cell bookkeeping of one run, indexed by row-major cell index.
type node struct {
	state  Membership
	g, h   float64
	parent int           // -1 for the start and for unreached cells
	item   *frontierItem // non-nil while the cell is open
}

// runner encapsulates the mutable state of one A* run. It is created by a
// Session when a run starts and dropped on Reset.
type runner struct {
	grid *gridgraph.GridGraph
	opts *Options

	start, goal int

	nodes   []node
	open    frontier
	seq     uint64 // next insertion sequence number
	closed  []int  // cell indices in closing order
	current int    // last closed cell, -1 before the first expansion
	status  Status
	gen     uint64 // grid generation the run started on

	buf []gridgraph.Cell // reused neighbor buffer
}

// newRunner allocates bookkeeping for every cell of grid. start and goal must
// already be validated by the caller.
func newRunner(grid *gridgraph.GridGraph, opts *Options, start, goal gridgraph.Cell) *runner {
	n := grid.Len()
	nodes := make([]node, n)
	for i := range nodes {
		nodes[i].parent = -1
	}

	return &runner{
		grid:    grid,
		opts:    opts,
		start:   grid.Index(start),
		goal:    grid.Index(goal),
		nodes:   nodes,
		open:    make(frontier, 0, 64),
		closed:  make([]int, 0, 64),
		current: -1,
		status:  Idle,
		buf:     make([]gridgraph.Cell, 0, 8),
	}
}

// init records the grid generation, fires OnStart and seeds the frontier with
// the start cell. With the reachability precheck enabled a disconnected goal
// resolves the run as Failed here, before any expansion. The caller holds the
// grid pin.
func (r *runner) init() error {
	r.gen = r.grid.Generation()
	r.status = Running

	startCell, goalCell := r.cell(r.start), r.cell(r.goal)
	r.opts.OnStart(startCell, goalCell)

	if r.opts.Precheck {
		ok, err := r.grid.SameRegion(startCell, goalCell)
		if err != nil {
			r.finish(Failed)
			return err
		}
		if !ok {
			r.finish(Failed)
			return nil
		}
	}

	h := r.opts.Heuristic(startCell, goalCell) * r.opts.CostScale
	r.push(r.start, 0, h, -1)

	return nil
}

// step performs exactly one expansion: pop the best open cell, close it, and
// either stop at the goal or open/relax its free neighbors.
func (r *runner) step() {
	if r.status != Running {
		return
	}
	if r.open.Len() == 0 {
		r.finish(Failed)
		return
	}

	item := heap.Pop(&r.open).(*frontierItem)
	u := item.idx
	nu := &r.nodes[u]
	nu.item = nil
	nu.state = Closed
	r.closed = append(r.closed, u)
	r.current = u

	uc := r.cell(u)
	r.opts.OnClose(uc, r.view(u))

	if u == r.goal {
		r.finish(Succeeded)
		return
	}

	r.expand(u, uc)

	if r.open.Len() == 0 {
		r.finish(Failed)
	}
}

// expand opens or relaxes every admissible neighbor of u in grid order.
func (r *runner) expand(u int, uc gridgraph.Cell) {
	goalCell := r.cell(r.goal)
	r.buf = r.grid.AppendNeighbors(r.buf[:0], uc)
	for _, vc := range r.buf {
		if r.grid.Blocked(vc) {
			continue
		}
		v := r.grid.Index(vc)
		nv := &r.nodes[v]
		if nv.state == Closed {
			continue
		}
		if r.opts.NoCornerCutting && uc.Diagonal(vc) && !r.sidesFree(uc, vc) {
			continue
		}

		tentative := r.nodes[u].g + StepCost(uc, vc)*r.opts.CostScale
		switch nv.state {
		case Unvisited:
			h := r.opts.Heuristic(vc, goalCell) * r.opts.CostScale
			r.push(v, tentative, h, u)
		case Open:
			if tentative < nv.g {
				nv.g = tentative
				nv.parent = u
				nv.item.f = tentative + nv.h
				heap.Fix(&r.open, nv.item.index)
				r.opts.OnRelax(vc, r.view(v))
			}
		}
	}
}

// sidesFree reports whether both orthogonal cells flanking the diagonal move
// a→b are free.
func (r *runner) sidesFree(a, b gridgraph.Cell) bool {
	return !r.grid.Blocked(gridgraph.C(b.X, a.Y)) && !r.grid.Blocked(gridgraph.C(a.X, b.Y))
}

// push opens cell idx with cost g, heuristic h and the given parent.
func (r *runner) push(idx int, g, h float64, parent int) {
	item := &frontierItem{idx: idx, f: g + h, h: h, seq: r.seq}
	r.seq++
	n := &r.nodes[idx]
	n.state = Open
	n.g = g
	n.h = h
	n.parent = parent
	n.item = item
	heap.Push(&r.open, item)
	r.opts.OnOpen(r.cell(idx), r.view(idx))
}

// finish records a terminal status and fires OnFinish once.
func (r *runner) finish(s Status) {
	r.status = s
	r.opts.OnFinish(s, len(r.closed))
}

// stale reports whether the grid's obstacles changed since init.
func (r *runner) stale() error {
	if g := r.grid.Generation(); g != r.gen {
		return fmt.Errorf("%w: %w (generation %d, run started on %d)",
			ErrInconsistentState, gridgraph.ErrGridChanged, g, r.gen)
	}
	return nil
}

// view converts the bookkeeping of idx into its public NodeState.
func (r *runner) view(idx int) NodeState {
	n := r.nodes[idx]
	ns := NodeState{Membership: n.state}
	if n.state == Unvisited {
		return ns
	}
	ns.G, ns.H, ns.F = n.g, n.h, n.g+n.h
	if n.parent >= 0 {
		ns.Parent = r.cell(n.parent)
		ns.HasParent = true
	}

	return ns
}

func (r *runner) cell(idx int) gridgraph.Cell {
	return r.grid.Coordinate(idx)
}
