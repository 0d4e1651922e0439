package tui_test

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gridstar/astar"
	"github.com/katalvlaran/gridstar/gridgraph"
	"github.com/katalvlaran/gridstar/internal/tui"
	"github.com/katalvlaran/gridstar/layout"
)

func newModel(t *testing.T, name string, cfg tui.Config) (tui.Model, *astar.Session) {
	t.Helper()
	l, err := layout.Builtin(name)
	require.NoError(t, err)
	s, err := l.Session()
	require.NoError(t, err)
	cfg.Name = name
	return tui.New(s, cfg), s
}

func tick(m tui.Model) tui.Model {
	next, _ := m.Update(tui.TickMsg(time.Now()))
	return next.(tui.Model)
}

func press(m tui.Model, k string) (tui.Model, tea.Cmd) {
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)})
	return next.(tui.Model), cmd
}

func TestTickStepsOnce(t *testing.T) {
	m, s := newModel(t, "wall-gap", tui.Config{FPS: 30})
	require.NotNil(t, m.Init())

	m = tick(m)
	assert.Equal(t, astar.Running, s.Status())
	assert.Equal(t, 1, s.Expanded())
	m = tick(m)
	assert.Equal(t, 2, s.Expanded())
}

func TestRunsToCompletion(t *testing.T) {
	var results []astar.Result
	m, s := newModel(t, "wall-gap", tui.Config{
		FPS:      60,
		OnFinish: func(r astar.Result) { results = append(results, r) },
	})

	for i := 0; i < 100 && !s.Status().Terminal(); i++ {
		m = tick(m)
	}
	require.Equal(t, astar.Succeeded, s.Status())

	// ticks after termination change nothing
	expanded := s.Expanded()
	m = tick(m)
	m = tick(m)
	assert.Equal(t, expanded, s.Expanded())

	require.Len(t, results, 1, "OnFinish fires once per run")
	assert.True(t, results[0].Found())
	assert.InDelta(t, s.Cost(), results[0].Cost, 1e-12)

	view := m.View()
	assert.Contains(t, view, "succeeded")
	assert.Contains(t, view, "5.657")
	assert.Contains(t, view, "*")
}

func TestPauseAndSingleStep(t *testing.T) {
	m, s := newModel(t, "maze-20", tui.Config{FPS: 30, Paused: true})
	assert.True(t, m.Paused())

	m = tick(m)
	assert.Equal(t, astar.Idle, s.Status(), "paused viewer does not step")

	m, _ = press(m, "n")
	assert.Equal(t, 1, s.Expanded())
	assert.True(t, m.Paused(), "single step keeps the viewer paused")

	m, _ = press(m, " ")
	assert.False(t, m.Paused())
	m = tick(m)
	assert.Equal(t, 2, s.Expanded())

	m, _ = press(m, "p")
	assert.True(t, m.Paused())
	assert.Contains(t, m.View(), "[paused]")
}

func TestResetRestarts(t *testing.T) {
	var finished int
	m, s := newModel(t, "open-5x5", tui.Config{FPS: 30, OnFinish: func(astar.Result) { finished++ }})
	for i := 0; i < 50 && !s.Status().Terminal(); i++ {
		m = tick(m)
	}
	require.Equal(t, astar.Succeeded, s.Status())

	m, _ = press(m, "r")
	assert.Equal(t, astar.Idle, s.Status())
	assert.Equal(t, 0, s.Expanded())

	for i := 0; i < 50 && !s.Status().Terminal(); i++ {
		m = tick(m)
	}
	assert.Equal(t, astar.Succeeded, s.Status())
	assert.Equal(t, 2, finished, "a reset run reports again")
}

func TestSpeedKeys(t *testing.T) {
	m, _ := newModel(t, "open-5x5", tui.Config{FPS: 30})
	assert.Equal(t, 30, m.FPS())

	m, _ = press(m, "+")
	assert.Equal(t, 60, m.FPS())
	for i := 0; i < 10; i++ {
		m, _ = press(m, "+")
	}
	assert.Equal(t, tui.MaxFPS, m.FPS())
	for i := 0; i < 20; i++ {
		m, _ = press(m, "-")
	}
	assert.Equal(t, tui.MinFPS, m.FPS())

	assert.Equal(t, tui.MinFPS, tui.New(nil, tui.Config{FPS: 0}).FPS())
}

func TestQuit(t *testing.T) {
	m, _ := newModel(t, "open-5x5", tui.Config{FPS: 30})
	m, cmd := press(m, "q")
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, m.View())
}

func TestStepErrorPauses(t *testing.T) {
	m, s := newModel(t, "open-5x5", tui.Config{FPS: 30})
	m = tick(m)
	require.Equal(t, astar.Running, s.Status())

	// editing the grid mid-run invalidates the search
	require.NoError(t, s.Grid().SetObstacle(gridgraph.C(2, 3), true))
	m = tick(m)
	assert.ErrorIs(t, m.Err(), gridgraph.ErrGridChanged)
	assert.True(t, m.Paused())
	assert.Contains(t, m.View(), "error:")
	expanded := s.Expanded()
	m, _ = press(m, " ")
	m = tick(m)
	assert.Equal(t, expanded, s.Expanded(), "no stepping while the error stands")

	m, _ = press(m, "r")
	assert.NoError(t, m.Err())
	m = tick(m)
	assert.Equal(t, astar.Running, s.Status())
	assert.Equal(t, 1, s.Expanded())
}
