package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/mindcalm/internal/constants"
	"github.com/julianstephens/mindcalm/internal/tui/components/breathe"
	"github.com/julianstephens/mindcalm/internal/tui/components/entries"
	"github.com/julianstephens/mindcalm/internal/tui/handlers"
	"github.com/julianstephens/mindcalm/internal/tui/state"
)

// formHandlers run while a form or the breathing guide is open.
var formHandlers = map[constants.SessionState]func(*state.Model, tea.Msg) tea.Cmd{
	constants.StateCheckIn:          handlers.HandleCheckInState,
	constants.StateAddThought:       handlers.HandleAddThoughtState,
	constants.StateAddActivity:      handlers.HandleAddActivityState,
	constants.StateAddWorry:         handlers.HandleAddWorryState,
	constants.StateWorrySchedule:    handlers.HandleWorryScheduleState,
	constants.StateAddMedication:    handlers.HandleAddMedicationState,
	constants.StateLogDose:          handlers.HandleLogDoseState,
	constants.StateGAD7:             handlers.HandleGAD7State,
	constants.StateWorkoutPlan:      handlers.HandleWorkoutPlanState,
	constants.StateBreathingSetup:   handlers.HandleBreathingSetupState,
	constants.StateBreathingSession: handlers.HandleBreathingSession,
	constants.StateAnxietyAfter:     handlers.HandleAnxietyAfterState,
	constants.StateConfirmation:     handlers.HandleConfirmationState,
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.resize(msg.Width, msg.Height)
		return m, nil
	}

	for _, h := range []func(*state.Model, tea.Msg) (bool, tea.Cmd){
		handlers.HandleAssistMessages,
		handlers.HandleConfirmationMessages,
		handlers.HandleGraphMessages,
		handlers.HandleChatMessages,
	} {
		if handled, cmd := h(m.Model, msg); handled {
			return m, cmd
		}
	}

	if msg, ok := msg.(entries.ActionMsg); ok {
		return m, handlers.HandleListActions(m.Model, msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		if handled, cmd := handlers.HandleGlobalKeys(m.Model, msg); handled {
			return m, cmd
		}
	}

	if h, ok := formHandlers[m.State]; ok {
		return m, h(m.Model, msg)
	}
	switch msg.(type) {
	case breathe.TickMsg, breathe.FinishMsg:
		// a frame from a guide that was already closed
		return m, nil
	}

	return m, m.updateTab(msg)
}

func (m Model) updateTab(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.State {
	case constants.StateCBT:
		if m.ShowActivity {
			m.Activities, cmd = m.Activities.Update(msg)
		} else {
			m.Thoughts, cmd = m.Thoughts.Update(msg)
		}
	case constants.StateWorry:
		m.Worries, cmd = m.Worries.Update(msg)
	case constants.StateMedication:
		m.Meds, cmd = m.Meds.Update(msg)
	case constants.StateBreathing:
		m.Techniques, cmd = m.Techniques.Update(msg)
	case constants.StateExercise:
		m.Workouts, cmd = m.Workouts.Update(msg)
	case constants.StateProgress, constants.StateSteppedCare:
		if msg, ok := msg.(tea.KeyMsg); ok {
			_, cmd = handlers.HandleProgressKeys(m.Model, msg)
		}
	case constants.StateGraph:
		m.Graph, cmd = m.Graph.Update(msg)
	case constants.StateChat:
		m.ChatView, cmd = m.ChatView.Update(msg)
	}
	return cmd
}

// resize leaves room for the tab bar, status lines and help.
func (m Model) resize(width, height int) {
	m.Width, m.Height = width, height
	w, h := max(width-4, 20), max(height-8, 5)

	m.Thoughts.SetSize(w, h)
	m.Activities.SetSize(w, h)
	m.Worries.SetSize(w, h-2)
	m.Meds.SetSize(w, h-2)
	m.Techniques.SetSize(w, h-4)
	m.Workouts.SetSize(w, h)
	m.Breathe.SetSize(w, h)
	m.Graph.SetSize(w, h)
	m.ChatView.SetSize(w, h)
	m.Help.Width = width
}
