package handlers

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/mindcalm/internal/constants"
	"github.com/julianstephens/mindcalm/internal/tui/state"
)

// HandleGlobalKeys handles key presses available on every tab. The chat tab
// keeps printable keys for its prompt.
func HandleGlobalKeys(m *state.Model, msg tea.KeyMsg) (bool, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.Quitting = true
		return true, tea.Quit
	}
	if !m.IsTab() {
		return false, nil
	}

	switch {
	case key.Matches(msg, m.Keys.Tab):
		return true, switchTab(m, 1)
	case key.Matches(msg, m.Keys.ShiftTab):
		return true, switchTab(m, -1)
	case key.Matches(msg, m.Keys.Theme):
		if _, err := m.Tracker.ToggleTheme(); err != nil {
			m.FormError = err.Error()
		}
		return true, nil
	}

	if m.State == constants.StateChat {
		return false, nil
	}
	switch {
	case key.Matches(msg, m.Keys.Quit):
		m.Quitting = true
		return true, tea.Quit
	case key.Matches(msg, m.Keys.Help):
		m.Help.ShowAll = !m.Help.ShowAll
		return true, nil
	case key.Matches(msg, m.Keys.CheckIn) && checkInAllowed(m.State):
		return true, OpenCheckIn(m)
	}
	return false, nil
}

// checkInAllowed leaves 'c' to tabs whose lists do not bind it.
func checkInAllowed(s constants.SessionState) bool {
	switch s {
	case constants.StateDashboard, constants.StateLifestyle, constants.StateProgress, constants.StateSteppedCare:
		return true
	}
	return false
}

func tabIndex(s constants.SessionState) int {
	for i, t := range constants.MainTabs {
		if t == s {
			return i
		}
	}
	return 0
}

func switchTab(m *state.Model, step int) tea.Cmd {
	n := len(constants.MainTabs)
	m.State = constants.MainTabs[(tabIndex(m.State)+step+n)%n]
	m.FormError = ""
	m.Notice = ""
	return enterTab(m)
}

// enterTab refreshes whatever the newly shown tab displays.
func enterTab(m *state.Model) tea.Cmd {
	switch m.State {
	case constants.StateGraph:
		if m.Graph.Layout() == nil {
			return RebuildGraph(m)
		}
	case constants.StateMedication:
		m.RefreshMeds()
	case constants.StateWorry:
		m.RefreshWorries()
	}
	return nil
}
