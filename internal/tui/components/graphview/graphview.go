// Package graphview animates the knowledge graph layout on a character
// canvas.
package graphview

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/mindcalm/internal/graph"
)

const (
	frameInterval = 50 * time.Millisecond
	// settleEnergy stops the animation once nodes barely move.
	settleEnergy = 0.5
	nudge        = 20.0
	labelWidth   = 14
	margin       = 20.0
)

var (
	linkColors = map[graph.LinkType]lipgloss.Color{
		graph.LinkStructural:  lipgloss.Color("238"),
		graph.LinkCorrelation: lipgloss.Color("208"),
		graph.LinkPositive:    lipgloss.Color("35"),
	}
	labelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Reverse(true)
	legendStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

type TickMsg time.Time

// RebuildMsg asks the parent for a fresh graph from current data.
type RebuildMsg struct{}

type KeyMap struct {
	Next    key.Binding
	Prev    key.Binding
	Up      key.Binding
	Down    key.Binding
	Left    key.Binding
	Right   key.Binding
	Release key.Binding
	Rebuild key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Next:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "next node")),
		Prev:    key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "prev node")),
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "drag up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "drag down")),
		Left:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "drag left")),
		Right:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "drag right")),
		Release: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "release")),
		Rebuild: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "rebuild")),
	}
}

type Model struct {
	layout   *graph.Layout
	keys     KeyMap
	selected int
	running  bool
	width    int
	height   int
}

func New() Model {
	return Model{keys: DefaultKeyMap()}
}

func tick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// SetLayout replaces the graph and starts animating it.
func (m *Model) SetLayout(l *graph.Layout) tea.Cmd {
	m.layout = l
	m.selected = 0
	return m.wake()
}

func (m Model) Layout() *graph.Layout { return m.layout }

// Running reports whether the simulation is still settling.
func (m Model) Running() bool { return m.running }

func (m *Model) wake() tea.Cmd {
	if m.running || m.layout == nil || len(m.layout.Nodes) == 0 {
		return nil
	}
	m.running = true
	return tick()
}

func (m Model) Keys() []key.Binding {
	k := m.keys
	return []key.Binding{k.Next, k.Prev, k.Up, k.Down, k.Left, k.Right, k.Release, k.Rebuild}
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TickMsg:
		if !m.running || m.layout == nil {
			return m, nil
		}
		m.layout.Step()
		if m.layout.Energy() < settleEnergy {
			m.running = false
			return m, nil
		}
		return m, tick()

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Rebuild) {
			return m, func() tea.Msg { return RebuildMsg{} }
		}
		if m.layout == nil || len(m.layout.Nodes) == 0 {
			return m, nil
		}
		n := len(m.layout.Nodes)
		switch {
		case key.Matches(msg, m.keys.Next):
			m.selected = (m.selected + 1) % n
		case key.Matches(msg, m.keys.Prev):
			m.selected = (m.selected - 1 + n) % n
		case key.Matches(msg, m.keys.Up):
			return m, m.drag(0, -nudge)
		case key.Matches(msg, m.keys.Down):
			return m, m.drag(0, nudge)
		case key.Matches(msg, m.keys.Left):
			return m, m.drag(-nudge, 0)
		case key.Matches(msg, m.keys.Right):
			return m, m.drag(nudge, 0)
		case key.Matches(msg, m.keys.Release):
			m.layout.Release()
			return m, m.wake()
		}
	}
	return m, nil
}

func (m *Model) drag(dx, dy float64) tea.Cmd {
	node := m.layout.Nodes[m.selected]
	x := math.Max(margin, math.Min(graph.Width-margin, node.X+dx))
	y := math.Max(margin, math.Min(graph.Height-margin, node.Y+dy))
	m.layout.Pin(node.ID, x, y)
	return m.wake()
}

// canvas is a grid of pre-rendered cells.
type canvas struct {
	cols, rows int
	cells      [][]string
	taken      [][]bool
}

func newCanvas(cols, rows int) *canvas {
	c := &canvas{cols: cols, rows: rows}
	c.cells = make([][]string, rows)
	c.taken = make([][]bool, rows)
	for r := range c.cells {
		c.cells[r] = make([]string, cols)
		c.taken[r] = make([]bool, cols)
		for i := range c.cells[r] {
			c.cells[r][i] = " "
		}
	}
	return c
}

// project maps layout coordinates onto the grid.
func (c *canvas) project(x, y float64) (int, int) {
	col := int(math.Round((x - margin) / (graph.Width - 2*margin) * float64(c.cols-1)))
	row := int(math.Round((y - margin) / (graph.Height - 2*margin) * float64(c.rows-1)))
	return max(0, min(c.cols-1, col)), max(0, min(c.rows-1, row))
}

func (c *canvas) set(col, row int, s string, claim bool) {
	if col < 0 || col >= c.cols || row < 0 || row >= c.rows || c.taken[row][col] {
		return
	}
	c.cells[row][col] = s
	c.taken[row][col] = claim
}

// line draws a Bresenham segment without claiming cells.
func (c *canvas) line(x0, y0, x1, y1 int, s string) {
	dx := int(math.Abs(float64(x1 - x0)))
	dy := -int(math.Abs(float64(y1 - y0)))
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		c.set(x0, y0, s, false)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

func (c *canvas) String() string {
	lines := make([]string, c.rows)
	for r, row := range c.cells {
		lines[r] = strings.Join(row, "")
	}
	return strings.Join(lines, "\n")
}

func (m Model) View() string {
	if m.layout == nil || len(m.layout.Nodes) == 0 {
		return "\n  Log a few check-ins to grow your knowledge graph."
	}
	cols, rows := max(m.width, 20), max(m.height-2, 5)
	c := newCanvas(cols, rows)

	pos := map[string][2]int{}
	for _, n := range m.layout.Nodes {
		col, row := c.project(n.X, n.Y)
		pos[n.ID] = [2]int{col, row}
	}

	// nodes and labels first so links never cover them
	for i, n := range m.layout.Nodes {
		p := pos[n.ID]
		dot := lipgloss.NewStyle().Foreground(lipgloss.Color(n.Color)).Render("●")
		label := n.Label
		if len([]rune(label)) > labelWidth {
			label = string([]rune(label)[:labelWidth-1]) + "…"
		}
		style := labelStyle
		if i == m.selected {
			dot = selectedStyle.Render("◉")
			style = selectedStyle
		}
		c.set(p[0], p[1], dot, true)
		for j, r := range label {
			c.set(p[0]+2+j, p[1], style.Render(string(r)), true)
		}
	}
	for _, l := range m.layout.Links {
		a, ok1 := pos[l.Source]
		b, ok2 := pos[l.Target]
		if !ok1 || !ok2 {
			continue
		}
		dot := lipgloss.NewStyle().Foreground(linkColors[l.Type]).Render("·")
		c.line(a[0], a[1], b[0], b[1], dot)
	}

	sel := m.layout.Nodes[m.selected]
	status := "settled"
	if m.running {
		status = "settling"
	}
	legend := legendStyle.Render(fmt.Sprintf("%s (%s) · %d nodes · %d links · %s",
		sel.Label, sel.Group, len(m.layout.Nodes), len(m.layout.Links), status))
	return lipgloss.JoinVertical(lipgloss.Left, c.String(), legend)
}
