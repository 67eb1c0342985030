package handlers

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/mindcalm/internal/constants"
	"github.com/julianstephens/mindcalm/internal/tracker"
	"github.com/julianstephens/mindcalm/internal/tui/components/entries"
	"github.com/julianstephens/mindcalm/internal/tui/state"
)

// HandleAddThoughtState runs the thought record form. Leaving it early keeps
// what was typed as the draft.
func HandleAddThoughtState(m *state.Model, msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		saveThoughtDraft(m)
		m.ReturnToTab()
		return nil
	}

	cmd := updateForm(m, msg)
	switch m.Form.State {
	case huh.StateCompleted:
		if _, err := m.Tracker.SaveDraftAsThought(m.ThoughtForm.Draft(3)); err != nil {
			m.FormError = err.Error()
			m.Form.State = huh.StateNormal
			return cmd
		}
		m.RefreshThoughts()
		m.ReturnToTab()
	case huh.StateAborted:
		saveThoughtDraft(m)
		m.ReturnToTab()
	}
	return cmd
}

func saveThoughtDraft(m *state.Model) {
	step := 1
	if d, ok := m.Tracker.Draft(); ok {
		step = max(d.Step, 1)
	}
	if err := m.Tracker.SaveDraft(m.ThoughtForm.Draft(step)); err != nil {
		m.FormError = err.Error()
		return
	}
	m.Notice = "Thought record saved as a draft. Press 'a' on the CBT tab to resume."
	m.RefreshThoughts()
}

// HandleAddActivityState runs the activity form.
func HandleAddActivityState(m *state.Model, msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.ReturnToTab()
		return nil
	}

	cmd := updateForm(m, msg)
	switch m.Form.State {
	case huh.StateCompleted:
		if _, err := m.Tracker.AddActivity(m.ActivityForm.Title, m.ActivityForm.Difficulty); err != nil {
			m.FormError = err.Error()
			m.Form.State = huh.StateNormal
			return cmd
		}
		m.RefreshActivities()
		m.ReturnToTab()
	case huh.StateAborted:
		m.ReturnToTab()
	}
	return cmd
}

func handleThoughtActions(m *state.Model, msg entries.ActionMsg) tea.Cmd {
	switch msg.Action {
	case state.ActionAdd:
		d, ok := m.Tracker.Draft()
		if !ok {
			d = tracker.DefaultDraft()
		}
		m.ThoughtForm = state.ThoughtFormFromDraft(d)
		return m.OpenForm(NewThoughtForm(m.ThoughtForm), constants.StateAddThought)

	case state.ActionAnalyze:
		d, ok := m.Tracker.Draft()
		if !ok || d.Thought == "" {
			m.FormError = "Start a thought record first, then analyze the draft."
			return nil
		}
		ai := m.AI
		return ask(m, func(ctx context.Context) tea.Msg {
			res, err := ai.AnalyzeThoughtRecord(ctx, d.Situation, d.Thought, d.Emotion)
			return AnalysisMsg{Analysis: res, Err: err}
		})

	case state.ActionEvidence:
		d, ok := m.Tracker.Draft()
		if !ok || d.Thought == "" {
			m.FormError = "Start a thought record first, then ask for evidence."
			return nil
		}
		ai, thought := m.AI, d.Thought
		return ask(m, func(ctx context.Context) tea.Msg {
			return EvidenceMsg{Text: ai.AnalyzeEvidence(ctx, thought)}
		})

	case state.ActionDiscard:
		if _, ok := m.Tracker.Draft(); !ok {
			return nil
		}
		return confirm("Discard the thought record draft?", func() tea.Cmd {
			if err := m.Tracker.ClearDraft(); err != nil {
				m.FormError = err.Error()
			}
			m.RefreshThoughts()
			return nil
		})

	case state.ActionSwitch:
		m.ShowActivity = true
	}
	return nil
}

func applyAnalysis(m *state.Model, msg AnalysisMsg) tea.Cmd {
	if msg.Err != nil {
		m.FormError = msg.Err.Error()
		return nil
	}
	d, ok := m.Tracker.Draft()
	if !ok {
		m.FormError = "The draft was removed before the analysis arrived."
		return nil
	}
	if d.Distortion == "" {
		d.Distortion = msg.Analysis.Distortion
	}
	d.AlternativeThought = tracker.MergeAlternative(d.AlternativeThought, msg.Analysis.AlternativeThought)
	d.Step = max(d.Step, 2)
	if err := m.Tracker.SaveDraft(d); err != nil {
		m.FormError = err.Error()
		return nil
	}
	name := msg.Analysis.Distortion
	if dist, ok := constants.DistortionByID(name); ok {
		name = dist.Name
	}
	m.Notice = "Possible thinking trap: " + name + "\n\nBalanced alternative: " + msg.Analysis.AlternativeThought
	m.RefreshThoughts()
	return nil
}

func applyEvidence(m *state.Model, text string) {
	d, ok := m.Tracker.Draft()
	if !ok {
		d = tracker.DefaultDraft()
	}
	d.EvidenceAgainst = tracker.MergeEvidence(d.EvidenceAgainst, text)
	if err := m.Tracker.SaveDraft(d); err != nil {
		m.FormError = err.Error()
		return
	}
	m.Notice = "Evidence suggestion added to your draft.\n\n" + text
	m.RefreshThoughts()
}

func handleActivityActions(m *state.Model, msg entries.ActionMsg) tea.Cmd {
	switch msg.Action {
	case state.ActionAdd:
		m.ActivityForm = &state.ActivityFormModel{Difficulty: constants.DefaultActivityDifficulty}
		return m.OpenForm(NewActivityForm(m.ActivityForm), constants.StateAddActivity)
	case state.ActionToggle:
		if _, err := m.Tracker.ToggleActivity(msg.ID); err != nil {
			m.FormError = err.Error()
		}
		m.RefreshActivities()
	case state.ActionDelete:
		if err := m.Tracker.DeleteActivity(msg.ID); err != nil {
			m.FormError = err.Error()
		}
		m.RefreshActivities()
	case state.ActionSwitch:
		m.ShowActivity = false
	}
	return nil
}
