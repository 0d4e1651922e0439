package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/katalvlaran/gridstar/layout"
)

// Theme holds the viewer styles.
type Theme struct {
	Cells map[layout.Glyph]lipgloss.Style

	Title     lipgloss.Style
	Label     lipgloss.Style
	Value     lipgloss.Style
	Succeeded lipgloss.Style
	Failed    lipgloss.Style
	Paused    lipgloss.Style
}

// DefaultTheme returns the default visual theme.
func DefaultTheme() Theme {
	return Theme{
		Cells: map[layout.Glyph]lipgloss.Style{
			layout.GlyphStart:    lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Bold(true),  // lime
			layout.GlyphGoal:     lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true), // red
			layout.GlyphCurrent:  lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true), // yellow
			layout.GlyphPath:     lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true),  // cyan
			layout.GlyphObstacle: lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
			layout.GlyphClosed:   lipgloss.NewStyle().Foreground(lipgloss.Color("135")), // purple
			layout.GlyphOpen:     lipgloss.NewStyle().Foreground(lipgloss.Color("205")), // pink
			layout.GlyphFree:     lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		},
		Title:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255")),
		Label:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Value:     lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true),
		Succeeded: lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Bold(true),
		Failed:    lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		Paused:    lipgloss.NewStyle().Foreground(lipgloss.Color("226")),
	}
}

// cell renders one glyph, doubled horizontally so cells look square.
func (t Theme) cell(g layout.Glyph) string {
	s := string([]rune{rune(g), ' '})
	if st, ok := t.Cells[g]; ok {
		return st.Render(s)
	}
	return s
}
