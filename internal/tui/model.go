// Package tui is the interactive terminal interface. The shared state and
// its handlers live in the state and handlers subpackages; this package
// routes messages and lays out the tabs.
package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/mindcalm/internal/assist"
	"github.com/julianstephens/mindcalm/internal/constants"
	"github.com/julianstephens/mindcalm/internal/tracker"
	"github.com/julianstephens/mindcalm/internal/tui/handlers"
	"github.com/julianstephens/mindcalm/internal/tui/state"
)

// Model wraps the shared state by pointer so confirmation actions that
// captured it stay valid across updates.
type Model struct {
	*state.Model
}

func NewModel(tr *tracker.Tracker, ai *assist.Assistant) Model {
	s := state.New(tr, ai)
	return Model{Model: &s}
}

func (m Model) Init() tea.Cmd {
	return m.ChatView.Init()
}

// tabKeys are the bindings of whatever the current tab shows.
func (m Model) tabKeys() []key.Binding {
	switch m.State {
	case constants.StateCBT:
		if m.ShowActivity {
			return m.Activities.Keys()
		}
		return m.Thoughts.Keys()
	case constants.StateWorry:
		return m.Worries.Keys()
	case constants.StateMedication:
		return m.Meds.Keys()
	case constants.StateBreathing:
		return m.Techniques.Keys()
	case constants.StateExercise:
		return m.Workouts.Keys()
	case constants.StateProgress:
		return handlers.DefaultProgressKeys().List()
	case constants.StateSteppedCare:
		return []key.Binding{handlers.DefaultProgressKeys().GAD7}
	case constants.StateGraph:
		return m.Graph.Keys()
	case constants.StateChat:
		return m.ChatView.Keys()
	}
	return nil
}

func (m Model) ShortHelp() []key.Binding {
	keys := m.Keys.ShortHelp()
	if m.State == constants.StateChat {
		keys = []key.Binding{m.Keys.Tab}
	}
	return append(keys, m.tabKeys()...)
}

func (m Model) FullHelp() [][]key.Binding {
	return append(m.Keys.FullHelp(), m.tabKeys())
}
