package handlers

import (
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/mindcalm/internal/constants"
	"github.com/julianstephens/mindcalm/internal/tui/components/entries"
	"github.com/julianstephens/mindcalm/internal/tui/state"
)

// HandleAddWorryState runs the worry form.
func HandleAddWorryState(m *state.Model, msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.ReturnToTab()
		return nil
	}

	cmd := updateForm(m, msg)
	switch m.Form.State {
	case huh.StateCompleted:
		if _, err := m.Tracker.AddWorry(m.WorryForm.Text); err != nil {
			m.FormError = err.Error()
			m.Form.State = huh.StateNormal
			return cmd
		}
		m.RefreshWorries()
		m.ReturnToTab()
	case huh.StateAborted:
		m.ReturnToTab()
	}
	return cmd
}

// HandleWorryScheduleState edits the daily worry window.
func HandleWorryScheduleState(m *state.Model, msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.ReturnToTab()
		return nil
	}

	cmd := updateForm(m, msg)
	switch m.Form.State {
	case huh.StateCompleted:
		minutes, err := state.ParseCount(m.WorryScheduleForm.Duration)
		if err == nil {
			err = m.Tracker.SetWorrySchedule(m.WorryScheduleForm.Start, minutes)
		}
		if err != nil {
			m.FormError = err.Error()
			m.Form.State = huh.StateNormal
			return cmd
		}
		m.ReturnToTab()
	case huh.StateAborted:
		m.ReturnToTab()
	}
	return cmd
}

func handleWorryActions(m *state.Model, msg entries.ActionMsg) tea.Cmd {
	switch msg.Action {
	case state.ActionAdd:
		m.WorryForm = &state.WorryFormModel{}
		return m.OpenForm(NewWorryForm(m.WorryForm), constants.StateAddWorry)
	case state.ActionToggle:
		if _, err := m.Tracker.ToggleWorry(msg.ID); err != nil {
			m.FormError = err.Error()
		}
		m.RefreshWorries()
	case state.ActionDelete:
		if err := m.Tracker.DeleteWorry(msg.ID); err != nil {
			m.FormError = err.Error()
		}
		m.RefreshWorries()
	case state.ActionSchedule:
		start, minutes := m.Tracker.WorrySchedule()
		m.WorryScheduleForm = &state.WorryScheduleFormModel{Start: start, Duration: strconv.Itoa(minutes)}
		return m.OpenForm(NewWorryScheduleForm(m.WorryScheduleForm), constants.StateWorrySchedule)
	}
	return nil
}
