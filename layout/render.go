package layout

import (
	"strings"

	"github.com/katalvlaran/gridstar/astar"
	"github.com/katalvlaran/gridstar/gridgraph"
)

// Glyph classifies one rendered cell.
type Glyph rune

// Glyphs in decreasing display priority.
const (
	GlyphStart    Glyph = 'S'
	GlyphGoal     Glyph = 'G'
	GlyphCurrent  Glyph = '@' // last expanded cell of an unfinished run
	GlyphPath     Glyph = '*'
	GlyphObstacle Glyph = '#'
	GlyphClosed   Glyph = 'x'
	GlyphOpen     Glyph = 'o'
	GlyphFree     Glyph = '.'
)

// Glyphs classifies every cell of g, row by row. s may be nil, in which case
// only obstacles and free cells are shown. With a session, start and goal are
// marked, and the open and closed sets, the current cell and (after success)
// the path are overlaid.
func Glyphs(g *gridgraph.GridGraph, s *astar.Session) [][]Glyph {
	onPath := make(map[gridgraph.Cell]bool)
	var cur gridgraph.Cell
	hasCur := false
	if s != nil {
		if s.Status() == astar.Succeeded {
			path, _ := s.Path()
			for _, c := range path {
				onPath[c] = true
			}
		} else if s.Status() == astar.Running {
			cur, hasCur = s.Current()
		}
	}

	out := make([][]Glyph, g.Height())
	for y := range out {
		out[y] = make([]Glyph, g.Width())
		for x := range out[y] {
			c := gridgraph.C(x, y)
			out[y][x] = classify(g, s, c, onPath[c], hasCur && c == cur)
		}
	}

	return out
}

func classify(g *gridgraph.GridGraph, s *astar.Session, c gridgraph.Cell, onPath, current bool) Glyph {
	if s != nil && s.Configured() {
		switch c {
		case s.Start():
			return GlyphStart
		case s.Goal():
			return GlyphGoal
		}
	}
	switch {
	case current:
		return GlyphCurrent
	case onPath:
		return GlyphPath
	case g.Blocked(c):
		return GlyphObstacle
	}
	if s != nil {
		n, _ := s.Node(c)
		switch n.Membership {
		case astar.Closed:
			return GlyphClosed
		case astar.Open:
			return GlyphOpen
		}
	}

	return GlyphFree
}

// Render draws g and the state of s as ASCII rows joined by newlines, with a
// trailing newline. See Glyphs for the meaning of a nil session.
func Render(g *gridgraph.GridGraph, s *astar.Session) string {
	var sb strings.Builder
	for _, row := range Glyphs(g, s) {
		for _, gl := range row {
			sb.WriteRune(rune(gl))
		}
		sb.WriteByte('\n')
	}

	return sb.String()
}
