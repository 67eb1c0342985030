package handlers

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/mindcalm/internal/constants"
	"github.com/julianstephens/mindcalm/internal/tui/state"
)

// confirm asks a yes/no question before running action.
func confirm(message string, action func() tea.Cmd) tea.Cmd {
	return func() tea.Msg {
		return constants.ConfirmationMsg{Message: message, Action: action}
	}
}

// HandleConfirmationState handles the generic confirmation state
func HandleConfirmationState(m *state.Model, msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.PendingAction = nil
		m.ReturnToTab()
		return nil
	}

	cmds = append(cmds, updateForm(m, msg))

	switch m.Form.State {
	case huh.StateCompleted:
		action := m.PendingAction
		m.PendingAction = nil
		m.ReturnToTab()
		if m.ConfirmationForm.Confirmed && action != nil {
			cmds = append(cmds, action())
		}
	case huh.StateAborted:
		m.PendingAction = nil
		m.ReturnToTab()
	}
	return tea.Batch(cmds...)
}

// HandleConfirmationMessages handles messages related to confirmations
func HandleConfirmationMessages(m *state.Model, msg tea.Msg) (bool, tea.Cmd) {
	switch msg := msg.(type) {
	case constants.ConfirmationMsg:
		m.ConfirmationForm = &state.ConfirmationFormModel{
			Message: msg.Message,
		}
		m.PendingAction = msg.Action
		return true, m.OpenForm(NewConfirmationForm(m.ConfirmationForm), constants.StateConfirmation)
	}
	return false, nil
}

// updateForm forwards msg to the open form.
func updateForm(m *state.Model, msg tea.Msg) tea.Cmd {
	form, cmd := m.Form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.Form = f
	}
	return cmd
}
