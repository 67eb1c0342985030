package handlers

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/mindcalm/internal/constants"
	"github.com/julianstephens/mindcalm/internal/tui/state"
)

// OpenCheckIn starts the daily check-in form.
func OpenCheckIn(m *state.Model) tea.Cmd {
	m.CheckInForm = state.NewCheckInFormModel()
	return m.OpenForm(NewCheckInForm(m.CheckInForm), constants.StateCheckIn)
}

// HandleCheckInState saves the check-in and, when anxiety is high, asks for
// a coping suggestion.
func HandleCheckInState(m *state.Model, msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.ReturnToTab()
		return nil
	}

	cmd := updateForm(m, msg)
	switch m.Form.State {
	case huh.StateCompleted:
		form, err := m.CheckInForm.CheckIn()
		if err != nil {
			m.FormError = err.Error()
			m.Form.State = huh.StateNormal
			return cmd
		}
		res, err := m.Tracker.CheckIn(form)
		if err != nil {
			m.FormError = err.Error()
			m.Form.State = huh.StateNormal
			return cmd
		}
		m.UpdateValidationStatus()
		m.ReturnToTab()
		m.Coping = ""
		if !res.NeedsCoping {
			return cmd
		}
		ai := m.AI
		anxiety, symptoms, notes := res.Mood.AnxietyScore, res.Mood.Symptoms, res.Mood.Notes
		return tea.Batch(cmd, ask(m, func(ctx context.Context) tea.Msg {
			return CopingMsg{Text: ai.CopingStrategy(ctx, anxiety, symptoms, notes)}
		}))
	case huh.StateAborted:
		m.ReturnToTab()
	}
	return cmd
}
