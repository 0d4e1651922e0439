// File: astar/session_test.go
package astar_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/gridstar/astar"
	"github.com/katalvlaran/gridstar/gridgraph"
)

// SessionSuite exercises the Session lifecycle on a fixed 6×5 maze.
type SessionSuite struct {
	suite.Suite
	g *gridgraph.GridGraph
	s *astar.Session
}

// SetupTest builds a fresh grid and a configured session.
//
//	. . . # . .
//	. # . # . .
//	. # . . . #
//	. # # # . .
//	. . . . . .
func (s *SessionSuite) SetupTest() {
	s.g = grid(s.T(), gridgraph.Conn8,
		"...#..",
		".#.#..",
		".#...#",
		".###..",
		"......",
	)
	sess, err := astar.NewSession(s.g)
	require.NoError(s.T(), err)
	require.NoError(s.T(), sess.Configure(gridgraph.C(0, 0), gridgraph.C(5, 0)))
	s.s = sess
}

// TestNilGrid rejects a nil grid.
func (s *SessionSuite) TestNilGrid() {
	_, err := astar.NewSession(nil)
	require.ErrorIs(s.T(), err, astar.ErrNilGrid)
}

// TestConfigureErrors covers every invalid configuration and checks that a
// rejected Configure leaves the previous configuration intact.
func (s *SessionSuite) TestConfigureErrors() {
	cases := []struct {
		name        string
		start, goal gridgraph.Cell
		outOfBounds bool
	}{
		{"start out of bounds", gridgraph.C(-1, 0), gridgraph.C(5, 0), true},
		{"goal out of bounds", gridgraph.C(0, 0), gridgraph.C(6, 0), true},
		{"start on obstacle", gridgraph.C(1, 1), gridgraph.C(5, 0), false},
		{"goal on obstacle", gridgraph.C(0, 0), gridgraph.C(3, 0), false},
	}
	for _, tc := range cases {
		err := s.s.Configure(tc.start, tc.goal)
		require.ErrorIs(s.T(), err, astar.ErrInvalidConfiguration, tc.name)
		if tc.outOfBounds {
			require.ErrorIs(s.T(), err, gridgraph.ErrOutOfBounds, tc.name)
		}
		require.Equal(s.T(), gridgraph.C(0, 0), s.s.Start(), tc.name)
		require.Equal(s.T(), gridgraph.C(5, 0), s.s.Goal(), tc.name)
	}

	strict, err := astar.NewSession(s.g, astar.WithDisallowSameStartGoal())
	require.NoError(s.T(), err)
	require.ErrorIs(s.T(), strict.Configure(gridgraph.C(2, 2), gridgraph.C(2, 2)), astar.ErrInvalidConfiguration)
	require.False(s.T(), strict.Configured())
}

// TestUnconfigured rejects Step and Run before Configure.
func (s *SessionSuite) TestUnconfigured() {
	sess, err := astar.NewSession(s.g)
	require.NoError(s.T(), err)

	st, err := sess.Step()
	require.ErrorIs(s.T(), err, astar.ErrInvalidConfiguration)
	require.Equal(s.T(), astar.Idle, st)

	_, err = sess.Run()
	require.ErrorIs(s.T(), err, astar.ErrInvalidConfiguration)
}

// TestStepMatchesRun drives one session by Step and another by Run; both must
// close the same cells in the same order and return the same path.
func (s *SessionSuite) TestStepMatchesRun() {
	require.Equal(s.T(), astar.Idle, s.s.Status())
	_, ok := s.s.Current()
	require.False(s.T(), ok)

	steps := 0
	for {
		st, err := s.s.Step()
		require.NoError(s.T(), err)
		steps++
		if st.Terminal() {
			require.Equal(s.T(), astar.Succeeded, st)
			break
		}
		require.Equal(s.T(), astar.Running, st)
	}
	require.Equal(s.T(), steps, s.s.Expanded())
	cur, ok := s.s.Current()
	require.True(s.T(), ok)
	require.Equal(s.T(), s.s.Goal(), cur)

	stepPath, err := s.s.Path()
	require.NoError(s.T(), err)
	stepOrder := s.s.ClosedOrder()

	// terminal status is sticky
	st, err := s.s.Step()
	require.NoError(s.T(), err)
	require.Equal(s.T(), astar.Succeeded, st)
	require.Equal(s.T(), steps, s.s.Expanded())

	other := grid(s.T(), gridgraph.Conn8, "...#..", ".#.#..", ".#...#", ".###..", "......")
	res := solve(s.T(), other, gridgraph.C(0, 0), gridgraph.C(5, 0))
	require.Equal(s.T(), stepPath, res.Path)
	require.Equal(s.T(), steps, res.Expanded)
	require.InDelta(s.T(), s.s.Cost(), res.Cost, eps)
	require.Equal(s.T(), len(stepOrder), len(s.s.Closed()))
}

// TestResetReproduces runs, resets and runs again: identical path and cost.
func (s *SessionSuite) TestResetReproduces() {
	first, err := s.s.Run()
	require.NoError(s.T(), err)
	require.Equal(s.T(), astar.Succeeded, first.Status)

	s.s.Reset()
	s.s.Reset() // idempotent
	require.Equal(s.T(), astar.Idle, s.s.Status())
	require.Zero(s.T(), s.s.Expanded())
	require.Nil(s.T(), s.s.Open())
	n, err := s.s.Node(gridgraph.C(0, 0))
	require.NoError(s.T(), err)
	require.Equal(s.T(), astar.Unvisited, n.Membership)

	second, err := s.s.Run()
	require.NoError(s.T(), err)
	require.Equal(s.T(), first, second)
}

// TestNodeIntrospection checks NodeState of the start, a path cell and an
// obstacle after a successful run.
func (s *SessionSuite) TestNodeIntrospection() {
	_, err := s.s.Run()
	require.NoError(s.T(), err)

	start, err := s.s.Node(gridgraph.C(0, 0))
	require.NoError(s.T(), err)
	require.Equal(s.T(), astar.Closed, start.Membership)
	require.False(s.T(), start.HasParent)
	require.Zero(s.T(), start.G)
	require.InDelta(s.T(), start.H, start.F, eps)

	path, err := s.s.Path()
	require.NoError(s.T(), err)
	for i := 1; i < len(path); i++ {
		n, err := s.s.Node(path[i])
		require.NoError(s.T(), err)
		require.True(s.T(), n.HasParent)
		require.Equal(s.T(), path[i-1], n.Parent)
		require.InDelta(s.T(), n.G+n.H, n.F, eps)
	}

	wall, err := s.s.Node(gridgraph.C(1, 1))
	require.NoError(s.T(), err)
	require.False(s.T(), wall.Reached())

	_, err = s.s.Node(gridgraph.C(9, 9))
	require.ErrorIs(s.T(), err, gridgraph.ErrOutOfBounds)
}

// TestPathBeforeSuccess reports ErrInconsistentState while Idle and Running.
func (s *SessionSuite) TestPathBeforeSuccess() {
	_, err := s.s.Path()
	require.ErrorIs(s.T(), err, astar.ErrInconsistentState)

	_, err = s.s.Step()
	require.NoError(s.T(), err)
	_, err = s.s.Path()
	require.ErrorIs(s.T(), err, astar.ErrInconsistentState)
}

// TestPinHeldPerStep checks that the grid is frozen only while a step
// executes: hooks running inside a step cannot edit obstacles or step another
// session, and the grid is free again as soon as Step returns.
func (s *SessionSuite) TestPinHeldPerStep() {
	other, err := astar.NewSession(s.g)
	require.NoError(s.T(), err)
	require.NoError(s.T(), other.Configure(gridgraph.C(0, 4), gridgraph.C(5, 4)))

	var setErr, clearErr, stepErr error
	var pinned bool
	sess, err := astar.NewSession(s.g, astar.WithOnClose(func(gridgraph.Cell, astar.NodeState) {
		pinned = s.g.Pinned()
		setErr = s.g.SetObstacle(gridgraph.C(4, 4), true)
		clearErr = s.g.ClearObstacles()
		_, stepErr = other.Step()
	}))
	require.NoError(s.T(), err)
	require.NoError(s.T(), sess.Configure(gridgraph.C(0, 0), gridgraph.C(5, 0)))

	st, err := sess.Step()
	require.NoError(s.T(), err)
	require.Equal(s.T(), astar.Running, st)
	require.True(s.T(), pinned)
	require.ErrorIs(s.T(), setErr, gridgraph.ErrGridPinned)
	require.ErrorIs(s.T(), clearErr, gridgraph.ErrGridPinned)
	require.ErrorIs(s.T(), stepErr, gridgraph.ErrGridBusy)
	require.Equal(s.T(), astar.Idle, other.Status())

	require.False(s.T(), s.g.Pinned(), "the pin ends with the step")
	res, err := other.Run()
	require.NoError(s.T(), err)
	require.Equal(s.T(), astar.Succeeded, res.Status)

	// a clone is independent
	clone, err := astar.NewSession(s.g.Clone())
	require.NoError(s.T(), err)
	require.NoError(s.T(), clone.Configure(gridgraph.C(0, 4), gridgraph.C(5, 4)))
	_, err = clone.Run()
	require.NoError(s.T(), err)
}

// TestAbandonedRunLeavesGridFree drops a session mid-run and checks that the
// grid can still be edited and searched by a fresh session.
func (s *SessionSuite) TestAbandonedRunLeavesGridFree() {
	func() {
		a, err := astar.NewSession(s.g)
		require.NoError(s.T(), err)
		require.NoError(s.T(), a.Configure(gridgraph.C(0, 0), gridgraph.C(5, 0)))
		st, err := a.Step()
		require.NoError(s.T(), err)
		require.Equal(s.T(), astar.Running, st)
	}()
	require.False(s.T(), s.g.Pinned())
	require.NoError(s.T(), s.g.SetObstacle(gridgraph.C(4, 4), true))

	b, err := astar.NewSession(s.g)
	require.NoError(s.T(), err)
	require.NoError(s.T(), b.Configure(gridgraph.C(0, 0), gridgraph.C(5, 0)))
	res, err := b.Run()
	require.NoError(s.T(), err)
	require.Equal(s.T(), astar.Succeeded, res.Status)

	// same after a canceled RunContext
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = s.s.Step()
	require.NoError(s.T(), err)
	_, err = s.s.RunContext(ctx)
	require.ErrorIs(s.T(), err, context.Canceled)
	require.NoError(s.T(), s.g.SetObstacle(gridgraph.C(4, 4), false))
}

// TestObstacleEditMidRun refuses to continue a run whose grid changed and
// recovers on Reset.
func (s *SessionSuite) TestObstacleEditMidRun() {
	_, err := s.s.Step()
	require.NoError(s.T(), err)
	require.NoError(s.T(), s.g.SetObstacle(gridgraph.C(4, 4), true))

	st, err := s.s.Step()
	require.ErrorIs(s.T(), err, astar.ErrInconsistentState)
	require.ErrorIs(s.T(), err, gridgraph.ErrGridChanged)
	require.Equal(s.T(), astar.Running, st)
	require.Equal(s.T(), 1, s.s.Expanded(), "no expansion on a changed grid")

	_, err = s.s.Run()
	require.ErrorIs(s.T(), err, gridgraph.ErrGridChanged, "the refusal is sticky")

	// setting a flag to its current value is not a change
	s.s.Reset()
	_, err = s.s.Step()
	require.NoError(s.T(), err)
	require.NoError(s.T(), s.g.SetObstacle(gridgraph.C(4, 4), true))
	res, err := s.s.Run()
	require.NoError(s.T(), err)
	require.Equal(s.T(), astar.Succeeded, res.Status)
	require.False(s.T(), s.g.Pinned(), "terminal runs leave the grid free")
}

// TestObstacleAfterConfigure rejects a run whose goal became an obstacle.
func (s *SessionSuite) TestObstacleAfterConfigure() {
	require.NoError(s.T(), s.g.SetObstacle(gridgraph.C(5, 0), true))
	_, err := s.s.Step()
	require.ErrorIs(s.T(), err, astar.ErrInvalidConfiguration)
	require.False(s.T(), s.g.Pinned())
}

// TestRunContextCancel stops a run with a canceled context and resumes it.
func (s *SessionSuite) TestRunContextCancel() {
	_, err := s.s.Step()
	require.NoError(s.T(), err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := s.s.RunContext(ctx)
	require.ErrorIs(s.T(), err, context.Canceled)
	require.Equal(s.T(), astar.Running, res.Status)
	require.Equal(s.T(), 1, res.Expanded)

	res, err = s.s.Run()
	require.NoError(s.T(), err)
	require.Equal(s.T(), astar.Succeeded, res.Status)
}

// TestReachabilityPrecheck fails a disconnected search without expanding.
func (s *SessionSuite) TestReachabilityPrecheck() {
	walled := grid(s.T(), gridgraph.Conn8, "..#..", "..#..", "..#..")
	var finished []astar.Status
	sess, err := astar.NewSession(walled,
		astar.WithReachabilityPrecheck(),
		astar.WithOnFinish(func(st astar.Status, _ int) { finished = append(finished, st) }))
	require.NoError(s.T(), err)
	require.NoError(s.T(), sess.Configure(gridgraph.C(0, 0), gridgraph.C(4, 2)))

	st, err := sess.Step()
	require.NoError(s.T(), err)
	require.Equal(s.T(), astar.Failed, st)
	require.Zero(s.T(), sess.Expanded())
	require.Equal(s.T(), []astar.Status{astar.Failed}, finished)
	require.False(s.T(), walled.Pinned())
}

// TestHooks counts hook invocations over a run and checks chaining.
func (s *SessionSuite) TestHooks() {
	var starts, opens, relaxes, closes, finishes, chained int
	sess, err := astar.NewSession(s.g,
		astar.WithOnStart(func(_, _ gridgraph.Cell) { starts++ }),
		astar.WithOnOpen(func(gridgraph.Cell, astar.NodeState) { opens++ }),
		astar.WithOnRelax(func(_ gridgraph.Cell, n astar.NodeState) {
			relaxes++
			require.Equal(s.T(), astar.Open, n.Membership)
		}),
		astar.WithOnClose(func(gridgraph.Cell, astar.NodeState) { closes++ }),
		astar.WithOnClose(func(gridgraph.Cell, astar.NodeState) { chained++ }),
		astar.WithOnFinish(func(st astar.Status, expanded int) {
			finishes++
			require.Equal(s.T(), astar.Succeeded, st)
			require.Equal(s.T(), closes, expanded)
		}),
	)
	require.NoError(s.T(), err)
	require.NoError(s.T(), sess.Configure(gridgraph.C(0, 0), gridgraph.C(5, 0)))
	res, err := sess.Run()
	require.NoError(s.T(), err)

	require.Equal(s.T(), 1, starts)
	require.Equal(s.T(), 1, finishes)
	require.Equal(s.T(), res.Expanded, closes)
	require.Equal(s.T(), closes, chained)
	require.Equal(s.T(), len(sess.Open())+len(sess.Closed()), opens)
	s.T().Logf("relaxations: %d", relaxes)
}

// TestMembershipMonotone checks after every step that a closed cell stays closed
// and an open cell never becomes unvisited.
func (s *SessionSuite) TestMembershipMonotone() {
	seen := make(map[gridgraph.Cell]astar.Membership)
	for {
		st, err := s.s.Step()
		require.NoError(s.T(), err)
		for idx := 0; idx < s.g.Len(); idx++ {
			c := s.g.Coordinate(idx)
			n, err := s.s.Node(c)
			require.NoError(s.T(), err)
			require.GreaterOrEqual(s.T(), n.Membership, seen[c], "cell %v regressed", c)
			seen[c] = n.Membership
		}
		if st.Terminal() {
			break
		}
	}
}

func TestSessionSuite(t *testing.T) {
	suite.Run(t, new(SessionSuite))
}
