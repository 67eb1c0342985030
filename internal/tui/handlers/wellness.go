package handlers

import (
	"context"
	"fmt"
	"os"
	"slices"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/mindcalm/internal/analytics"
	"github.com/julianstephens/mindcalm/internal/assist"
	"github.com/julianstephens/mindcalm/internal/breathing"
	"github.com/julianstephens/mindcalm/internal/constants"
	"github.com/julianstephens/mindcalm/internal/models"
	"github.com/julianstephens/mindcalm/internal/report"
	"github.com/julianstephens/mindcalm/internal/tui/components/breathe"
	"github.com/julianstephens/mindcalm/internal/tui/components/entries"
	"github.com/julianstephens/mindcalm/internal/tui/state"
)

// ReportFile is where the progress tab writes the clinician PDF.
var ReportFile = "mindcalm-report.pdf"

// ProgressKeys are handled on the progress tab.
type ProgressKeys struct {
	Range    key.Binding
	Insights key.Binding
	GAD7     key.Binding
	Report   key.Binding
}

func DefaultProgressKeys() ProgressKeys {
	return ProgressKeys{
		Range:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "range")),
		Insights: key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "insights")),
		GAD7:     key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "GAD-7")),
		Report:   key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "PDF report")),
	}
}

func (k ProgressKeys) List() []key.Binding {
	return []key.Binding{k.Range, k.Insights, k.GAD7, k.Report}
}

// HandleProgressKeys handles keys on the progress and stepped care tabs.
func HandleProgressKeys(m *state.Model, msg tea.KeyMsg) (bool, tea.Cmd) {
	k := DefaultProgressKeys()
	switch {
	case key.Matches(msg, k.GAD7):
		m.GAD7Form = state.NewGAD7FormModel()
		return true, m.OpenForm(NewGAD7Form(m.GAD7Form), constants.StateGAD7)
	case m.State != constants.StateProgress:
		return false, nil
	case key.Matches(msg, k.Range):
		i := slices.Index(models.TimeRanges, m.Range)
		m.Range = models.TimeRanges[(i+1)%len(models.TimeRanges)]
		m.Insights = nil
		return true, nil
	case key.Matches(msg, k.Insights):
		return true, requestInsights(m)
	case key.Matches(msg, k.Report):
		if err := writeReport(m, ReportFile); err != nil {
			m.FormError = err.Error()
		} else {
			m.Notice = "Report written to " + ReportFile
		}
		return true, nil
	}
	return false, nil
}

func requestInsights(m *state.Model) tea.Cmd {
	summary, ok := analytics.InsightSummary(m.Tracker.Window(m.Range))
	if !ok {
		m.Notice = fmt.Sprintf("Log more than %d check-ins in the last %s to get insights.", constants.MinEntriesForInsights, m.Range)
		return nil
	}
	ai := m.AI
	return ask(m, func(ctx context.Context) tea.Msg {
		return InsightsMsg{Insights: ai.DataInsights(ctx, summary)}
	})
}

func writeReport(m *state.Model, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}
	if err := report.WritePDF(f, m.Tracker.ClinicianReport()); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// HandleGAD7State scores a completed questionnaire.
func HandleGAD7State(m *state.Model, msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.ReturnToTab()
		return nil
	}

	cmd := updateForm(m, msg)
	switch m.Form.State {
	case huh.StateCompleted:
		res, err := m.Tracker.SubmitGAD7(m.GAD7Form.Answers)
		if err != nil {
			m.FormError = err.Error()
			m.Form.State = huh.StateNormal
			return cmd
		}
		m.Notice = fmt.Sprintf("GAD-7 score %d: %s", res.Score, res.Interpretation)
		m.ReturnToTab()
	case huh.StateAborted:
		m.ReturnToTab()
	}
	return cmd
}

func handleTechniqueActions(m *state.Model, msg entries.ActionMsg) tea.Cmd {
	if msg.Action != state.ActionStart {
		return nil
	}
	m.BreathingForm = &state.BreathingFormModel{Technique: msg.ID, Anxiety: 5}
	return m.OpenForm(NewBreathingForm(m.BreathingForm), constants.StateBreathingSetup)
}

// HandleBreathingSetupState starts the guide once a technique is chosen.
func HandleBreathingSetupState(m *state.Model, msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.ReturnToTab()
		return nil
	}

	cmd := updateForm(m, msg)
	switch m.Form.State {
	case huh.StateCompleted:
		t, err := breathing.Lookup(m.BreathingForm.Technique)
		if err != nil {
			m.FormError = err.Error()
			m.Form.State = huh.StateNormal
			return cmd
		}
		m.Coach = breathing.NewCoach(t, m.BreathingForm.Anxiety, m.Tracker.Now)
		m.Form = nil
		m.State = constants.StateBreathingSession
		return m.Breathe.Start(m.Coach)
	case huh.StateAborted:
		m.ReturnToTab()
	}
	return cmd
}

// HandleBreathingSession animates the guide until it is finished.
func HandleBreathingSession(m *state.Model, msg tea.Msg) tea.Cmd {
	if _, ok := msg.(breathe.FinishMsg); ok {
		_, ok := m.Coach.Stop()
		if !ok {
			m.Coach = nil
			m.Notice = fmt.Sprintf("Session shorter than %d seconds was not saved.", constants.MinBreathingSeconds)
			m.ReturnToTab()
			return nil
		}
		m.BreathingForm.Anxiety = m.Coach.AnxietyBefore
		return m.OpenForm(NewAnxietyAfterForm(m.BreathingForm), constants.StateAnxietyAfter)
	}

	var cmd tea.Cmd
	m.Breathe, cmd = m.Breathe.Update(msg)
	return cmd
}

// HandleAnxietyAfterState records the finished session.
// Skipping the rating keeps the before-rating.
func HandleAnxietyAfterState(m *state.Model, msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		saveBreathing(m, 0)
		return nil
	}

	cmd := updateForm(m, msg)
	switch m.Form.State {
	case huh.StateCompleted:
		saveBreathing(m, m.BreathingForm.Anxiety)
	case huh.StateAborted:
		saveBreathing(m, 0)
	}
	return cmd
}

func saveBreathing(m *state.Model, after int) {
	defer func() {
		m.Coach = nil
		m.ReturnToTab()
	}()
	s, err := m.Coach.Session(after)
	if err != nil {
		m.FormError = err.Error()
		return
	}
	if _, err := m.Tracker.AddBreathingSession(s); err != nil {
		m.FormError = err.Error()
		return
	}
	m.Notice = fmt.Sprintf("Saved %ds of %s. Anxiety %d → %d.", s.DurationSeconds, m.Coach.Technique.Name, s.AnxietyBefore, s.AnxietyAfter)
}

func handleWorkoutActions(m *state.Model, msg entries.ActionMsg) tea.Cmd {
	switch msg.Action {
	case state.ActionGenerate:
		if !m.AI.Enabled() {
			m.FormError = "Workout plans need the assistant: " + assist.ErrNoAPIKey.Error()
			return nil
		}
		m.WorkoutPlanForm = state.NewWorkoutPlanFormModel()
		return m.OpenForm(NewWorkoutPlanForm(m.WorkoutPlanForm), constants.StateWorkoutPlan)
	case state.ActionToggle:
		if _, err := m.Tracker.ToggleWorkout(msg.ID); err != nil {
			m.FormError = err.Error()
		}
		m.RefreshWorkouts()
	}
	return nil
}

// HandleWorkoutPlanState requests a plan once the form is complete.
func HandleWorkoutPlanState(m *state.Model, msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.ReturnToTab()
		return nil
	}

	cmd := updateForm(m, msg)
	switch m.Form.State {
	case huh.StateCompleted:
		fm := m.WorkoutPlanForm
		req := assist.WorkoutRequest{Level: fm.Level, Equipment: slices.Clone(fm.Equipment), DaysPerWeek: fm.Days}
		ai := m.AI
		m.ReturnToTab()
		return tea.Batch(cmd, ask(m, func(ctx context.Context) tea.Msg {
			return WorkoutPlanMsg{Plan: ai.WorkoutPlan(ctx, req)}
		}))
	case huh.StateAborted:
		m.ReturnToTab()
	}
	return cmd
}

func applyWorkoutPlan(m *state.Model, plan []models.Workout) tea.Cmd {
	if len(plan) == 0 {
		m.FormError = "The assistant did not return a workout plan. Try again."
		return nil
	}
	saved, err := m.Tracker.ReplaceWorkouts(plan)
	if err != nil {
		m.FormError = err.Error()
		return nil
	}
	m.RefreshWorkouts()
	m.Notice = fmt.Sprintf("New plan with %d workouts.", len(saved))
	return nil
}
