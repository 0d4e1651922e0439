package astar

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/gridstar/gridgraph"
)

// Sentinel errors returned by the astar package.
var (
	// ErrNilGrid indicates that a nil *gridgraph.GridGraph was passed to NewSession.
	ErrNilGrid = errors.New("astar: grid is nil")

	// ErrInvalidConfiguration indicates a caller error in start/goal setup:
	// unset, out of bounds, placed on an obstacle, or identical when the session
	// disallows it. It is never returned for an unreachable goal.
	ErrInvalidConfiguration = errors.New("astar: invalid search configuration")

	// ErrNoPath indicates path reconstruction after a search that ended Failed.
	ErrNoPath = errors.New("astar: no path between start and goal")

	// ErrInconsistentState indicates reconstruction before a successful
	// terminal state, a broken parent chain, or a grid edited mid-run.
	ErrInconsistentState = errors.New("astar: inconsistent search state")

	// ErrOptionViolation indicates an invalid Option value.
	ErrOptionViolation = errors.New("astar: invalid option supplied")
)

// Status is the state of one search run.
//
//	Idle ──Step/Run──▶ Running ──▶ Succeeded
//	                      │
//	                      └──────▶ Failed
type Status int

const (
	// Idle: configured or reset, no work done yet.
	Idle Status = iota
	// Running: at least one expansion done, frontier not exhausted.
	Running
	// Succeeded: the goal was closed; a path is available.
	Succeeded
	// Failed: the frontier emptied without reaching the goal. A normal outcome.
	Failed
)

// String returns the lower-case state name.
func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Terminal reports whether s is Succeeded or Failed.
func (s Status) Terminal() bool {
	return s == Succeeded || s == Failed
}

// Membership is a cell's position in the open/closed bookkeeping. Within one
// run a cell only ever moves Unvisited → Open → Closed.
type Membership uint8

const (
	// Unvisited cells have not been reached.
	Unvisited Membership = iota
	// Open cells sit in the frontier.
	Open
	// Closed cells have been expanded; their G is final.
	Closed
)

// String returns the lower-case membership name.
func (m Membership) String() string {
	switch m {
	case Unvisited:
		return "unvisited"
	case Open:
		return "open"
	case Closed:
		return "closed"
	default:
		return fmt.Sprintf("membership(%d)", int(m))
	}
}

// NodeState is a read-only view of one cell's search bookkeeping.
// G, H, F and Parent are meaningful only when Membership is Open or Closed;
// the start cell is the only reached cell with HasParent == false.
type NodeState struct {
	Membership Membership
	G          float64 // best known cost from start
	H          float64 // heuristic to goal, computed when first reached
	F          float64 // G + H
	Parent     gridgraph.Cell
	HasParent  bool
}

// Reached reports whether the cell is open or closed.
func (n NodeState) Reached() bool {
	return n.Membership != Unvisited
}

// Result is the outcome of a completed run.
type Result struct {
	Status   Status
	Path     []gridgraph.Cell // start…goal inclusive; nil unless Succeeded
	Cost     float64          // total path cost, scaled by the cost scale
	Expanded int              // number of cells closed
}

// Found reports whether a path was found.
func (r Result) Found() bool {
	return r.Status == Succeeded
}

// Options configures a Session.
//
// Heuristic          – remaining-cost estimate; default Euclidean.
// CostScale          – multiplier applied to step costs and heuristic; > 0, default 1.
// AllowSameStartGoal – accept start == goal (single-cell path); default true.
// NoCornerCutting    – forbid diagonal moves past an obstacle on either side.
// Precheck           – fail immediately when start and goal lie in different free regions.
//
// Hooks run synchronously inside Step and must not mutate the grid. Repeated
// hook options chain: callbacks run in registration order.
type Options struct {
	Heuristic          Heuristic
	CostScale          float64
	AllowSameStartGoal bool
	NoCornerCutting    bool
	Precheck           bool

	OnStart  func(start, goal gridgraph.Cell)
	OnOpen   func(c gridgraph.Cell, n NodeState)
	OnRelax  func(c gridgraph.Cell, n NodeState)
	OnClose  func(c gridgraph.Cell, n NodeState)
	OnFinish func(status Status, expanded int)

	// internal error recorded during option parsing
	err error
}

// Option represents a functional option for configuring a Session.
type Option func(*Options)

// DefaultOptions returns Options with the Euclidean heuristic, unit cost scale,
// same start/goal allowed, corner cutting allowed, no precheck and no-op hooks.
func DefaultOptions() Options {
	return Options{
		Heuristic:          Euclidean,
		CostScale:          1,
		AllowSameStartGoal: true,
		OnStart:            func(gridgraph.Cell, gridgraph.Cell) {},
		OnOpen:             func(gridgraph.Cell, NodeState) {},
		OnRelax:            func(gridgraph.Cell, NodeState) {},
		OnClose:            func(gridgraph.Cell, NodeState) {},
		OnFinish:           func(Status, int) {},
	}
}

// WithHeuristic replaces the default Euclidean heuristic. nil is ignored.
func WithHeuristic(h Heuristic) Option {
	return func(o *Options) {
		if h != nil {
			o.Heuristic = h
		}
	}
}

// WithCostScale multiplies every step cost and heuristic value by k, e.g. 10
// for integer-looking display costs (10 straight, ~14 diagonal). Only the
// ratio between the cost classes matters to the search.
//
//	k > 0: valid
//	k ≤ 0: invalid option → ErrOptionViolation
func WithCostScale(k float64) Option {
	return func(o *Options) {
		if k <= 0 {
			o.err = fmt.Errorf("%w: CostScale must be positive (%v)", ErrOptionViolation, k)
			return
		}
		o.CostScale = k
	}
}

// WithDisallowSameStartGoal makes Configure reject start == goal.
func WithDisallowSameStartGoal() Option {
	return func(o *Options) {
		o.AllowSameStartGoal = false
	}
}

// WithNoCornerCutting forbids a diagonal step unless both orthogonal cells it
// passes between are free.
func WithNoCornerCutting() Option {
	return func(o *Options) {
		o.NoCornerCutting = true
	}
}

// WithReachabilityPrecheck labels free regions before the first expansion and
// resolves the run as Failed without expanding anything when start and goal
// are disconnected.
func WithReachabilityPrecheck() Option {
	return func(o *Options) {
		o.Precheck = true
	}
}

// WithOnStart registers a callback run when a run initializes.
func WithOnStart(fn func(start, goal gridgraph.Cell)) Option {
	return func(o *Options) {
		if fn == nil {
			return
		}
		prev := o.OnStart
		o.OnStart = func(start, goal gridgraph.Cell) {
			prev(start, goal)
			fn(start, goal)
		}
	}
}

// WithOnOpen registers a callback run when a cell enters the frontier.
func WithOnOpen(fn func(c gridgraph.Cell, n NodeState)) Option {
	return func(o *Options) {
		if fn == nil {
			return
		}
		prev := o.OnOpen
		o.OnOpen = func(c gridgraph.Cell, n NodeState) {
			prev(c, n)
			fn(c, n)
		}
	}
}

// WithOnRelax registers a callback run when an open cell gets a cheaper parent.
func WithOnRelax(fn func(c gridgraph.Cell, n NodeState)) Option {
	return func(o *Options) {
		if fn == nil {
			return
		}
		prev := o.OnRelax
		o.OnRelax = func(c gridgraph.Cell, n NodeState) {
			prev(c, n)
			fn(c, n)
		}
	}
}

// WithOnClose registers a callback run when a cell is expanded.
func WithOnClose(fn func(c gridgraph.Cell, n NodeState)) Option {
	return func(o *Options) {
		if fn == nil {
			return
		}
		prev := o.OnClose
		o.OnClose = func(c gridgraph.Cell, n NodeState) {
			prev(c, n)
			fn(c, n)
		}
	}
}

// WithOnFinish registers a callback run once when a run reaches a terminal state.
func WithOnFinish(fn func(status Status, expanded int)) Option {
	return func(o *Options) {
		if fn == nil {
			return
		}
		prev := o.OnFinish
		o.OnFinish = func(status Status, expanded int) {
			prev(status, expanded)
			fn(status, expanded)
		}
	}
}
