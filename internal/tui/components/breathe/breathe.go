// Package breathe renders a running breathing session.
package breathe

import (
	"fmt"
	"math"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/mindcalm/internal/breathing"
)

const (
	frameInterval = 100 * time.Millisecond
	// maxScale is the largest guide size any technique reaches.
	maxScale = 1.6
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")).
			Bold(true).
			Padding(1, 2)

	instructionStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("252")).
				Bold(true).
				Padding(1, 0).
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("36")).
				Width(30).
				Align(lipgloss.Center)

	hintStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

type TickMsg time.Time

// FinishMsg is sent when the user ends the session.
type FinishMsg struct{}

type Model struct {
	coach  *breathing.Coach
	bar    progress.Model
	stop   key.Binding
	width  int
	height int
}

func New() Model {
	return Model{
		bar: progress.New(progress.WithGradient("#818cf8", "#14b8a6"), progress.WithoutPercentage()),
		stop: key.NewBinding(
			key.WithKeys("enter", "esc", " "),
			key.WithHelp("enter", "finish"),
		),
	}
}

func tick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// Start begins following c and schedules the first frame.
func (m *Model) Start(c *breathing.Coach) tea.Cmd {
	m.coach = c
	c.Start()
	return tick()
}

func (m Model) Coach() *breathing.Coach { return m.coach }

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.bar.Width = min(width-8, 50)
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TickMsg:
		if m.coach != nil && m.coach.Running() {
			return m, tick()
		}
	case tea.KeyMsg:
		if key.Matches(msg, m.stop) {
			return m, func() tea.Msg { return FinishMsg{} }
		}
	}
	return m, nil
}

// fill maps the guide scale onto 0..1 for the bar.
func fill(scale float64) float64 {
	return math.Max(0, math.Min(1, (scale-1)/(maxScale-1)))
}

func (m Model) View() string {
	if m.coach == nil {
		return ""
	}
	st := m.coach.State()
	content := lipgloss.JoinVertical(lipgloss.Center,
		titleStyle.Render(m.coach.Technique.Name),
		instructionStyle.Render(st.Instruction),
		"",
		m.bar.ViewAs(fill(st.Scale)),
		"",
		fmt.Sprintf("%02d:%02d", st.Elapsed/60, st.Elapsed%60),
		hintStyle.Render("press enter to finish"),
	)
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	return content
}
