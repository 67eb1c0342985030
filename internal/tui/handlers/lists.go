package handlers

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/mindcalm/internal/tui/components/entries"
	"github.com/julianstephens/mindcalm/internal/tui/state"
)

// HandleListActions routes a list action to the handler for that list.
func HandleListActions(m *state.Model, msg entries.ActionMsg) tea.Cmd {
	m.FormError = ""
	switch msg.List {
	case state.ListThoughts:
		return handleThoughtActions(m, msg)
	case state.ListActivities:
		return handleActivityActions(m, msg)
	case state.ListWorries:
		return handleWorryActions(m, msg)
	case state.ListMeds:
		return handleMedActions(m, msg)
	case state.ListTechniques:
		return handleTechniqueActions(m, msg)
	case state.ListWorkouts:
		return handleWorkoutActions(m, msg)
	}
	return nil
}
