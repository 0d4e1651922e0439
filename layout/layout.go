// Package layout persists search setups (grid size, connectivity, obstacles,
// start and goal) as YAML files and renders grids and search state as ASCII.
//
// A layout file may list obstacles as coordinates, draw them as rows, or both:
//
//	name: wall-gap
//	width: 5
//	height: 5
//	connectivity: 8
//	start: {x: 0, y: 2}
//	goal:  {x: 4, y: 2}
//	rows:
//	  - "..#.."
//	  - "..#.."
//	  - "S...G"
//	  - "..#.."
//	  - "..#.."
//
// In rows '#' is an obstacle, '.' is free, 'S' and 'G' mark start and goal.
// Width and height default to the row dimensions.
package layout

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/gridstar/astar"
	"github.com/katalvlaran/gridstar/gridgraph"
)

// ErrInvalidLayout indicates a layout that cannot describe a search setup.
var ErrInvalidLayout = errors.New("layout: invalid layout")

// yamlLayout is the on-disk YAML structure.
type yamlLayout struct {
	Name         string      `yaml:"name"`
	Width        int         `yaml:"width,omitempty"`
	Height       int         `yaml:"height,omitempty"`
	Connectivity int         `yaml:"connectivity,omitempty"`
	Start        *yamlPoint  `yaml:"start,omitempty,flow"`
	Goal         *yamlPoint  `yaml:"goal,omitempty,flow"`
	Obstacles    []yamlPoint `yaml:"obstacles,omitempty"`
	Rows         []string    `yaml:"rows,omitempty"`
}

// yamlPoint is a cell coordinate in flow style.
type yamlPoint struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// Layout is a parsed, validated search setup.
type Layout struct {
	Name      string
	Width     int
	Height    int
	Conn      gridgraph.Connectivity
	Start     gridgraph.Cell
	Goal      gridgraph.Cell
	Obstacles []gridgraph.Cell // row-major, no duplicates
	FilePath  string           // set by Load
}

// Parse decodes and validates a YAML layout.
func Parse(data []byte) (*Layout, error) {
	var yl yamlLayout
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return nil, fmt.Errorf("%w: yaml unmarshal: %w", ErrInvalidLayout, err)
	}

	conn, err := gridgraph.ParseConnectivity(yl.Connectivity)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidLayout, err)
	}

	l := &Layout{Name: yl.Name, Width: yl.Width, Height: yl.Height, Conn: conn}
	var start, goal *gridgraph.Cell
	if yl.Start != nil {
		c := gridgraph.C(yl.Start.X, yl.Start.Y)
		start = &c
	}
	if yl.Goal != nil {
		c := gridgraph.C(yl.Goal.X, yl.Goal.Y)
		goal = &c
	}

	blocked := make(map[gridgraph.Cell]bool)
	if len(yl.Rows) > 0 {
		if l.Height == 0 {
			l.Height = len(yl.Rows)
		}
		if l.Width == 0 {
			l.Width = len(yl.Rows[0])
		}
		if len(yl.Rows) != l.Height {
			return nil, fmt.Errorf("%w: %d rows for height %d", ErrInvalidLayout, len(yl.Rows), l.Height)
		}
		for y, row := range yl.Rows {
			if len(row) != l.Width {
				return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalidLayout, y, len(row), l.Width)
			}
			for x, ch := range row {
				c := gridgraph.C(x, y)
				switch ch {
				case '#':
					blocked[c] = true
				case '.':
				case 'S':
					if start, err = mark(start, c, "start"); err != nil {
						return nil, err
					}
				case 'G':
					if goal, err = mark(goal, c, "goal"); err != nil {
						return nil, err
					}
				default:
					return nil, fmt.Errorf("%w: unknown cell %q at %v", ErrInvalidLayout, ch, c)
				}
			}
		}
	}
	if l.Width < 1 || l.Height < 1 {
		return nil, fmt.Errorf("%w: size %dx%d", ErrInvalidLayout, l.Width, l.Height)
	}
	for _, p := range yl.Obstacles {
		blocked[gridgraph.C(p.X, p.Y)] = true
	}
	if start == nil || goal == nil {
		return nil, fmt.Errorf("%w: start and goal are required", ErrInvalidLayout)
	}
	l.Start, l.Goal = *start, *goal

	for c := range blocked {
		l.Obstacles = append(l.Obstacles, c)
	}
	sortCells(l.Obstacles)

	if err = l.Validate(); err != nil {
		return nil, err
	}

	return l, nil
}

// mark sets a start or goal drawn in rows, rejecting a second, different mark.
func mark(cur *gridgraph.Cell, c gridgraph.Cell, role string) (*gridgraph.Cell, error) {
	if cur != nil && *cur != c {
		return nil, fmt.Errorf("%w: %s given as both %v and %v", ErrInvalidLayout, role, *cur, c)
	}

	return &c, nil
}

// Validate checks bounds of every cell and that start and goal are free.
func (l *Layout) Validate() error {
	in := func(c gridgraph.Cell) bool {
		return c.X >= 0 && c.X < l.Width && c.Y >= 0 && c.Y < l.Height
	}
	if l.Width < 1 || l.Height < 1 {
		return fmt.Errorf("%w: size %dx%d", ErrInvalidLayout, l.Width, l.Height)
	}
	if !in(l.Start) {
		return fmt.Errorf("%w: start %v outside %dx%d", ErrInvalidLayout, l.Start, l.Width, l.Height)
	}
	if !in(l.Goal) {
		return fmt.Errorf("%w: goal %v outside %dx%d", ErrInvalidLayout, l.Goal, l.Width, l.Height)
	}
	for _, c := range l.Obstacles {
		if !in(c) {
			return fmt.Errorf("%w: obstacle %v outside %dx%d", ErrInvalidLayout, c, l.Width, l.Height)
		}
		if c == l.Start || c == l.Goal {
			return fmt.Errorf("%w: obstacle on start or goal %v", ErrInvalidLayout, c)
		}
	}

	return nil
}

// Load reads and parses a .yaml or .yml layout file.
func Load(path string) (*Layout, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".yaml" && ext != ".yml" {
		return nil, fmt.Errorf("%w: unsupported extension %q", ErrInvalidLayout, ext)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading layout %s: %w", path, err)
	}
	l, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing layout %s: %w", path, err)
	}
	l.FilePath = path
	if l.Name == "" {
		l.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	return l, nil
}

// Marshal encodes l as YAML in row form with explicit start and goal.
func Marshal(l *Layout) ([]byte, error) {
	if err := l.Validate(); err != nil {
		return nil, err
	}
	yl := yamlLayout{
		Name:         l.Name,
		Width:        l.Width,
		Height:       l.Height,
		Connectivity: l.Conn.Degree(),
		Start:        &yamlPoint{X: l.Start.X, Y: l.Start.Y},
		Goal:         &yamlPoint{X: l.Goal.X, Y: l.Goal.Y},
		Rows:         l.rows(),
	}

	return yaml.Marshal(&yl)
}

// rows draws the layout with S and G marks.
func (l *Layout) rows() []string {
	cells := make([][]byte, l.Height)
	for y := range cells {
		cells[y] = []byte(strings.Repeat(".", l.Width))
	}
	for _, c := range l.Obstacles {
		cells[c.Y][c.X] = '#'
	}
	cells[l.Start.Y][l.Start.X] = 'S'
	if l.Goal != l.Start {
		cells[l.Goal.Y][l.Goal.X] = 'G'
	}

	out := make([]string, l.Height)
	for y, r := range cells {
		out[y] = string(r)
	}

	return out
}

// FromGrid captures the obstacles of g plus start and goal as a Layout.
func FromGrid(name string, g *gridgraph.GridGraph, start, goal gridgraph.Cell) (*Layout, error) {
	l := &Layout{
		Name:      name,
		Width:     g.Width(),
		Height:    g.Height(),
		Conn:      g.Connectivity(),
		Start:     start,
		Goal:      goal,
		Obstacles: g.Obstacles(),
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}

	return l, nil
}

// Grid builds a fresh grid with the layout's obstacles.
func (l *Layout) Grid() (*gridgraph.GridGraph, error) {
	g, err := gridgraph.NewGridGraph(l.Width, l.Height, gridgraph.GridOptions{Conn: l.Conn})
	if err != nil {
		return nil, err
	}
	for _, c := range l.Obstacles {
		if err = g.SetObstacle(c, true); err != nil {
			return nil, err
		}
	}

	return g, nil
}

// Session builds a fresh grid and returns a session configured with the
// layout's start and goal.
func (l *Layout) Session(opts ...astar.Option) (*astar.Session, error) {
	g, err := l.Grid()
	if err != nil {
		return nil, err
	}
	s, err := astar.NewSession(g, opts...)
	if err != nil {
		return nil, err
	}
	if err = s.Configure(l.Start, l.Goal); err != nil {
		return nil, err
	}

	return s, nil
}

// Density returns the share of obstacle cells.
func (l *Layout) Density() float64 {
	return float64(len(l.Obstacles)) / float64(l.Width*l.Height)
}

func sortCells(cs []gridgraph.Cell) {
	sort.Slice(cs, func(i, j int) bool {
		if cs[i].Y != cs[j].Y {
			return cs[i].Y < cs[j].Y
		}
		return cs[i].X < cs[j].X
	})
}
