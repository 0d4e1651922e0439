package tui

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/katalvlaran/gridstar/astar"
	"github.com/katalvlaran/gridstar/layout"
)

// Config configures a viewer Model.
type Config struct {
	// Name is shown in the title line.
	Name string
	// FPS is the initial frame rate, clamped to [MinFPS, MaxFPS].
	FPS int
	// Paused starts the viewer without advancing the search.
	Paused bool
	// Logger receives run events. Nil discards them.
	Logger *log.Logger
	// OnFinish is called once each time the run reaches a terminal status.
	OnFinish func(astar.Result)
}

// Model is the Bubble Tea model of the step viewer. It calls Session.Step once
// per tick while not paused and the run is not terminal.
type Model struct {
	session  *astar.Session
	name     string
	fps      int
	paused   bool
	reported bool // OnFinish already called for the current run
	err      error

	keys   KeyMap
	help   help.Model
	theme  Theme
	logger *log.Logger

	onFinish func(astar.Result)

	width, height int
	quitting      bool
}

// New creates a viewer over a configured session.
func New(s *astar.Session, cfg Config) Model {
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	h := help.New()
	h.ShowAll = false

	return Model{
		session:  s,
		name:     cfg.Name,
		fps:      clampFPS(cfg.FPS),
		paused:   cfg.Paused,
		keys:     DefaultKeyMap(),
		help:     h,
		theme:    DefaultTheme(),
		logger:   logger,
		onFinish: cfg.OnFinish,
	}
}

// Init starts the frame ticker.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.fps)
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		if !m.paused {
			m.advance()
		}
		return m, tickCmd(m.fps)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Pause):
		m.paused = !m.paused

	case key.Matches(msg, m.keys.Step):
		m.paused = true
		m.advance()

	case key.Matches(msg, m.keys.Reset):
		m.session.Reset()
		m.reported = false
		m.err = nil
		m.logger.Debug("run reset", "layout", m.name)

	case key.Matches(msg, m.keys.Faster):
		m.fps = clampFPS(m.fps * 2)

	case key.Matches(msg, m.keys.Slower):
		m.fps = clampFPS(m.fps / 2)

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}

	return m, nil
}

// advance performs one expansion unless the run is already terminal.
func (m *Model) advance() {
	if m.session.Status().Terminal() || m.err != nil {
		return
	}
	st, err := m.session.Step()
	if err != nil {
		m.err = err
		m.paused = true
		m.logger.Error("step failed", "layout", m.name, "err", err)
		return
	}
	if st.Terminal() && !m.reported {
		m.reported = true
		res := m.Result()
		m.logger.Info("run finished", "layout", m.name, "status", res.Status,
			"expanded", res.Expanded, "cost", res.Cost)
		if m.onFinish != nil {
			m.onFinish(res)
		}
	}
}

// Result snapshots the session.
func (m Model) Result() astar.Result {
	res := astar.Result{Status: m.session.Status(), Expanded: m.session.Expanded()}
	if res.Status == astar.Succeeded {
		res.Path, _ = m.session.Path()
		res.Cost = m.session.Cost()
	}
	return res
}

// Paused reports whether the viewer is paused.
func (m Model) Paused() bool { return m.paused }

// FPS returns the current frame rate.
func (m Model) FPS() int { return m.fps }

// Err returns the last step error, cleared by a reset.
func (m Model) Err() error { return m.err }

// View renders the grid, a status line and the key help.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(m.theme.Title.Render("gridstar " + m.name))
	sb.WriteString("\n\n")
	for _, row := range layout.Glyphs(m.session.Grid(), m.session) {
		for _, g := range row {
			sb.WriteString(m.theme.cell(g))
		}
		sb.WriteByte('\n')
	}
	sb.WriteByte('\n')
	sb.WriteString(m.statusLine())
	sb.WriteString("\n")
	if m.err != nil {
		sb.WriteString(m.theme.Failed.Render("error: " + m.err.Error()))
		sb.WriteString("\n")
	}
	sb.WriteString(m.help.View(m.keys))

	return sb.String()
}

func (m Model) statusLine() string {
	st := m.session.Status()
	status := st.String()
	switch st {
	case astar.Succeeded:
		status = m.theme.Succeeded.Render(status)
	case astar.Failed:
		status = m.theme.Failed.Render(status)
	default:
		status = m.theme.Value.Render(status)
	}

	cost := "-"
	if c := m.session.Cost(); !math.IsInf(c, 1) {
		cost = fmt.Sprintf("%.3f", c)
	}

	parts := []string{
		m.theme.Label.Render("status ") + status,
		m.theme.Label.Render("expanded ") + m.theme.Value.Render(fmt.Sprint(m.session.Expanded())),
		m.theme.Label.Render("open ") + m.theme.Value.Render(fmt.Sprint(len(m.session.Open()))),
		m.theme.Label.Render("cost ") + m.theme.Value.Render(cost),
		m.theme.Label.Render("fps ") + m.theme.Value.Render(fmt.Sprint(m.fps)),
	}
	line := strings.Join(parts, "  ")
	if m.paused {
		line += "  " + m.theme.Paused.Render("[paused]")
	}

	return line
}
