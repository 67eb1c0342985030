package handlers

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/mindcalm/internal/constants"
	"github.com/julianstephens/mindcalm/internal/tui/components/entries"
	"github.com/julianstephens/mindcalm/internal/tui/state"
)

// HandleAddMedicationState runs the medication form.
func HandleAddMedicationState(m *state.Model, msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.ReturnToTab()
		return nil
	}

	cmd := updateForm(m, msg)
	switch m.Form.State {
	case huh.StateCompleted:
		med, err := m.MedicationForm.Medication()
		if err == nil {
			_, err = m.Tracker.AddMedication(med)
		}
		if err != nil {
			m.FormError = err.Error()
			m.Form.State = huh.StateNormal
			return cmd
		}
		m.RefreshMeds()
		m.ReturnToTab()
	case huh.StateAborted:
		m.ReturnToTab()
	}
	return cmd
}

// HandleLogDoseState confirms a dose for the medication the form was opened on.
func HandleLogDoseState(m *state.Model, msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.ReturnToTab()
		return nil
	}

	cmd := updateForm(m, msg)
	switch m.Form.State {
	case huh.StateCompleted:
		fm := m.DoseForm
		if _, err := m.Tracker.ConfirmDose(fm.MedicationID, fm.SideEffects, fm.Efficacy); err != nil {
			m.FormError = err.Error()
			m.Form.State = huh.StateNormal
			return cmd
		}
		m.RefreshMeds()
		m.UpdateValidationStatus()
		m.ReturnToTab()
	case huh.StateAborted:
		m.ReturnToTab()
	}
	return cmd
}

func handleMedActions(m *state.Model, msg entries.ActionMsg) tea.Cmd {
	if msg.Action == state.ActionAdd {
		m.MedicationForm = state.NewMedicationFormModel()
		return m.OpenForm(NewMedicationForm(m.MedicationForm), constants.StateAddMedication)
	}

	med, err := m.Tracker.Medication(msg.ID)
	if err != nil {
		m.FormError = err.Error()
		return nil
	}

	switch msg.Action {
	case state.ActionDose:
		m.DoseForm = &state.DoseFormModel{MedicationID: med.ID, Efficacy: constants.DefaultEfficacy}
		return m.OpenForm(NewDoseForm(m.DoseForm, med.Name), constants.StateLogDose)
	case state.ActionInfo:
		ai, name := m.AI, med.Name
		return ask(m, func(ctx context.Context) tea.Msg {
			return NoticeMsg{Title: name, Text: ai.MedicationInfo(ctx, name)}
		})
	case state.ActionInteraction:
		var others []string
		for _, o := range m.Tracker.Medications() {
			if o.ID != med.ID {
				others = append(others, o.Name)
			}
		}
		if len(others) == 0 {
			m.Notice = "No other medications to check " + med.Name + " against."
			return nil
		}
		ai, name := m.AI, med.Name
		return ask(m, func(ctx context.Context) tea.Msg {
			return NoticeMsg{Title: "Interactions: " + name, Text: ai.DrugInteractions(ctx, name, others)}
		})
	case state.ActionDelete:
		id := med.ID
		return confirm("Delete "+med.Name+" and stop tracking it?", func() tea.Cmd {
			if err := m.Tracker.DeleteMedication(id); err != nil {
				m.FormError = err.Error()
			}
			m.RefreshMeds()
			return nil
		})
	}
	return nil
}
