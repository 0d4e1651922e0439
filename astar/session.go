package astar

import (
	"context"
	"fmt"
	"math"

	"github.com/katalvlaran/gridstar/gridgraph"
)

// Session binds a grid to a start/goal pair and drives A* runs over it,
// either to completion (Run, RunContext) or one expansion at a time (Step).
//
// A Session is not safe for concurrent use. Each Step holds the grid's pin
// while it executes, so concurrent obstacle edits fail with
// gridgraph.ErrGridPinned and a concurrent step from another session fails
// with gridgraph.ErrGridBusy. Between steps the grid is free: a session can be
// abandoned mid-run without releasing anything. Editing obstacles between two
// steps of one run makes the next Step fail with gridgraph.ErrGridChanged
// until Reset.
type Session struct {
	grid *gridgraph.GridGraph
	opts Options

	start, goal gridgraph.Cell
	configured  bool

	r *runner // nil while Idle
}

// NewSession creates an unconfigured session over g.
// Returns ErrNilGrid if g is nil and ErrOptionViolation for invalid options.
func NewSession(g *gridgraph.GridGraph, opts ...Option) (*Session, error) {
	if g == nil {
		return nil, ErrNilGrid
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}

	return &Session{grid: g, opts: o}, nil
}

// Configure sets start and goal and resets the session to Idle.
// Both cells must be inside the grid and free, and must differ when the session
// was built with WithDisallowSameStartGoal. On error the session is unchanged.
func (s *Session) Configure(start, goal gridgraph.Cell) error {
	if err := s.validate("start", start); err != nil {
		return err
	}
	if err := s.validate("goal", goal); err != nil {
		return err
	}
	if start == goal && !s.opts.AllowSameStartGoal {
		return fmt.Errorf("%w: start and goal are both %v", ErrInvalidConfiguration, start)
	}

	s.Reset()
	s.start, s.goal = start, goal
	s.configured = true

	return nil
}

func (s *Session) validate(role string, c gridgraph.Cell) error {
	blocked, err := s.grid.IsObstacle(c)
	if err != nil {
		return fmt.Errorf("%w: %s %v: %w", ErrInvalidConfiguration, role, c, err)
	}
	if blocked {
		return fmt.Errorf("%w: %s %v is an obstacle", ErrInvalidConfiguration, role, c)
	}

	return nil
}

// Step performs exactly one expansion and returns the resulting status.
// From Idle it initializes the run and expands the start cell. Once the run is
// Succeeded or Failed further calls do nothing and return the same status.
//
// Errors: ErrInvalidConfiguration if Configure was never called or an
// endpoint became an obstacle; gridgraph.ErrGridBusy if another step holds the
// grid right now; ErrInconsistentState wrapping gridgraph.ErrGridChanged if the
// obstacles changed since the run started. The status is unchanged on error.
func (s *Session) Step() (Status, error) {
	if !s.configured {
		return Idle, fmt.Errorf("%w: start and goal not set", ErrInvalidConfiguration)
	}
	if st := s.Status(); st.Terminal() {
		return st, nil
	}
	if err := s.grid.Pin(); err != nil {
		return s.Status(), fmt.Errorf("astar: step: %w", err)
	}
	defer s.grid.Unpin()

	if s.r == nil {
		// start and goal may have become obstacles since Configure
		if err := s.validate("start", s.start); err != nil {
			return Idle, err
		}
		if err := s.validate("goal", s.goal); err != nil {
			return Idle, err
		}
		r := newRunner(s.grid, &s.opts, s.start, s.goal)
		s.r = r
		if err := r.init(); err != nil {
			return r.status, err
		}
		if r.status.Terminal() {
			return r.status, nil
		}
	} else if err := s.r.stale(); err != nil {
		return s.r.status, err
	}
	s.r.step()

	return s.r.status, nil
}

// Run executes the search to a terminal status. It is RunContext with a
// background context.
func (s *Session) Run() (Result, error) {
	return s.RunContext(context.Background())
}

// RunContext executes the search until Succeeded or Failed, checking ctx
// before every expansion. On cancellation it returns ctx.Err() and leaves the
// session Running, so the caller may resume with Step/RunContext, Reset, or
// simply drop the session.
//
// Failed is reported through Result.Status, not as an error.
func (s *Session) RunContext(ctx context.Context) (Result, error) {
	for {
		st := s.Status()
		if st.Terminal() {
			break
		}
		if err := ctx.Err(); err != nil {
			return s.result(), err
		}
		if _, err := s.Step(); err != nil {
			return s.result(), err
		}
	}

	return s.result(), nil
}

// result snapshots the current run.
func (s *Session) result() Result {
	res := Result{Status: s.Status(), Expanded: s.Expanded()}
	if res.Status == Succeeded {
		res.Path, _ = s.Path()
		res.Cost = s.Cost()
	}

	return res
}

// Reset discards all per-run state. start and goal are kept, so Reset
// followed by Run repeats the same search on the current obstacles.
// Idempotent.
func (s *Session) Reset() {
	s.r = nil
}

// Status returns the state of the current run.
func (s *Session) Status() Status {
	if s.r == nil {
		return Idle
	}

	return s.r.status
}

// Path returns the reconstructed start→goal path of a succeeded run.
// Returns ErrNoPath after a failed run and ErrInconsistentState before success.
func (s *Session) Path() ([]gridgraph.Cell, error) {
	if s.r == nil {
		return nil, fmt.Errorf("%w: no run in progress", ErrInconsistentState)
	}

	return s.r.reconstruct()
}

// Cost returns the total path cost of a succeeded run, or +Inf otherwise.
func (s *Session) Cost() float64 {
	if s.r == nil || s.r.status != Succeeded {
		return math.Inf(1)
	}

	return s.r.nodes[s.r.goal].g
}

// Expanded returns the number of cells closed so far.
func (s *Session) Expanded() int {
	if s.r == nil {
		return 0
	}

	return len(s.r.closed)
}

// Node returns the search bookkeeping of c. Returns gridgraph.ErrOutOfBounds
// for cells outside the grid.
func (s *Session) Node(c gridgraph.Cell) (NodeState, error) {
	if !s.grid.Contains(c) {
		return NodeState{}, fmt.Errorf("%w: %v", gridgraph.ErrOutOfBounds, c)
	}
	if s.r == nil {
		return NodeState{Membership: Unvisited}, nil
	}

	return s.r.view(s.grid.Index(c)), nil
}

// Open returns the frontier cells in row-major order.
func (s *Session) Open() []gridgraph.Cell {
	return s.withState(Open)
}

// Closed returns the expanded cells in row-major order.
func (s *Session) Closed() []gridgraph.Cell {
	return s.withState(Closed)
}

func (s *Session) withState(m Membership) []gridgraph.Cell {
	if s.r == nil {
		return nil
	}
	var out []gridgraph.Cell
	for i := range s.r.nodes {
		if s.r.nodes[i].state == m {
			out = append(out, s.r.cell(i))
		}
	}

	return out
}

// ClosedOrder returns the expanded cells in the order they were closed.
func (s *Session) ClosedOrder() []gridgraph.Cell {
	if s.r == nil {
		return nil
	}
	out := make([]gridgraph.Cell, len(s.r.closed))
	for i, idx := range s.r.closed {
		out[i] = s.r.cell(idx)
	}

	return out
}

// Current returns the most recently expanded cell; ok is false before the
// first expansion.
func (s *Session) Current() (c gridgraph.Cell, ok bool) {
	if s.r == nil || s.r.current < 0 {
		return gridgraph.Cell{}, false
	}

	return s.r.cell(s.r.current), true
}

// Start returns the configured start cell.
func (s *Session) Start() gridgraph.Cell { return s.start }

// Goal returns the configured goal cell.
func (s *Session) Goal() gridgraph.Cell { return s.goal }

// Configured reports whether Configure has succeeded at least once.
func (s *Session) Configured() bool { return s.configured }

// Grid returns the grid the session searches.
func (s *Session) Grid() *gridgraph.GridGraph { return s.grid }
