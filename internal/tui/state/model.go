package state

import (
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/mindcalm/internal/assist"
	"github.com/julianstephens/mindcalm/internal/breathing"
	"github.com/julianstephens/mindcalm/internal/chat"
	"github.com/julianstephens/mindcalm/internal/constants"
	"github.com/julianstephens/mindcalm/internal/models"
	"github.com/julianstephens/mindcalm/internal/tracker"
	"github.com/julianstephens/mindcalm/internal/tui/components/breathe"
	"github.com/julianstephens/mindcalm/internal/tui/components/chatview"
	"github.com/julianstephens/mindcalm/internal/tui/components/entries"
	"github.com/julianstephens/mindcalm/internal/tui/components/graphview"
	"github.com/julianstephens/mindcalm/internal/validation"
)

// List names, used to route entries.ActionMsg.
const (
	ListThoughts   = "Thought Records"
	ListActivities = "Activities"
	ListWorries    = "Worries"
	ListMeds       = "Medications"
	ListTechniques = "Techniques"
	ListWorkouts   = "Workouts"
)

// Actions emitted by the lists.
const (
	ActionAdd         = "add"
	ActionToggle      = "toggle"
	ActionDelete      = "delete"
	ActionAnalyze     = "analyze"
	ActionEvidence    = "evidence"
	ActionDiscard     = "discard"
	ActionSwitch      = "switch"
	ActionSchedule    = "schedule"
	ActionDose        = "dose"
	ActionInfo        = "info"
	ActionInteraction = "interactions"
	ActionStart       = "start"
	ActionGenerate    = "generate"
)

// Model represents the shared state for the TUI
type Model struct {
	Tracker       *tracker.Tracker
	AI            *assist.Assistant
	State         constants.SessionState
	PreviousState constants.SessionState
	Keys          KeyMap
	Help          help.Model

	Thoughts     entries.Model
	Activities   entries.Model
	ShowActivity bool // CBT tab shows activities instead of thought records
	Worries      entries.Model
	Meds         entries.Model
	Techniques   entries.Model
	Workouts     entries.Model
	Breathe      breathe.Model
	ChatView     chatview.Model
	Graph        graphview.Model

	Chat  *chat.Session
	Coach *breathing.Coach
	Range models.TimeRange

	Form              *huh.Form
	CheckInForm       *CheckInFormModel
	ThoughtForm       *ThoughtFormModel
	WorryForm         *WorryFormModel
	WorryScheduleForm *WorryScheduleFormModel
	ActivityForm      *ActivityFormModel
	MedicationForm    *MedicationFormModel
	DoseForm          *DoseFormModel
	GAD7Form          *GAD7FormModel
	WorkoutPlanForm   *WorkoutPlanFormModel
	BreathingForm     *BreathingFormModel
	ConfirmationForm  *ConfirmationFormModel
	PendingAction     func() tea.Cmd

	Coping   string           // suggestion after a high-anxiety check-in
	Insights []models.Insight // latest data insights for the progress tab
	Notice   string           // assistant output or a status line
	Pending  bool             // an assistant request is in flight

	ValidationWarning   string
	ValidationConflicts []validation.Conflict
	FormError           string
	Quitting            bool
	Width               int
	Height              int
}

func newLists() (thoughts, activities, worries, meds, techniques, workouts entries.Model) {
	thoughts = entries.New(ListThoughts, "No thought records yet. Press 'a' to start one.",
		entries.NewBinding(ActionAdd, false, []string{"a"}, "new / resume"),
		entries.NewBinding(ActionAnalyze, false, []string{"x"}, "analyze draft"),
		entries.NewBinding(ActionEvidence, false, []string{"e"}, "suggest evidence"),
		entries.NewBinding(ActionDiscard, false, []string{"D"}, "discard draft"),
		entries.NewBinding(ActionSwitch, false, []string{"v"}, "activities"),
	)
	activities = entries.New(ListActivities, "No activities planned. Press 'a' to add one.",
		entries.NewBinding(ActionAdd, false, []string{"a"}, "add"),
		entries.NewBinding(ActionToggle, true, []string{" ", "m"}, "toggle done"),
		entries.NewBinding(ActionDelete, true, []string{"d"}, "delete"),
		entries.NewBinding(ActionSwitch, false, []string{"v"}, "thought records"),
	)
	worries = entries.New(ListWorries, "Nothing postponed. Press 'a' to park a worry.",
		entries.NewBinding(ActionAdd, false, []string{"a"}, "postpone worry"),
		entries.NewBinding(ActionToggle, true, []string{" ", "m"}, "processed"),
		entries.NewBinding(ActionDelete, true, []string{"d"}, "delete"),
		entries.NewBinding(ActionSchedule, false, []string{"s"}, "worry time"),
	)
	meds = entries.New(ListMeds, "No medications. Press 'a' to add one.",
		entries.NewBinding(ActionAdd, false, []string{"a"}, "add"),
		entries.NewBinding(ActionDose, true, []string{"enter", "t"}, "log dose"),
		entries.NewBinding(ActionInfo, true, []string{"i"}, "drug info"),
		entries.NewBinding(ActionInteraction, true, []string{"x"}, "interactions"),
		entries.NewBinding(ActionDelete, true, []string{"d"}, "delete"),
	)
	techniques = entries.New(ListTechniques, "",
		entries.NewBinding(ActionStart, true, []string{"enter"}, "start"),
	)
	workouts = entries.New(ListWorkouts, "No workouts planned. Press 'g' to generate a plan.",
		entries.NewBinding(ActionGenerate, false, []string{"g"}, "generate plan"),
		entries.NewBinding(ActionToggle, true, []string{" ", "m"}, "toggle done"),
	)
	return
}

// New creates a new state Model
func New(tr *tracker.Tracker, ai *assist.Assistant) Model {
	thoughts, activities, worries, meds, techniques, workouts := newLists()
	session := chat.New(ai)
	cv := chatview.New()
	cv.SetConversation(session.Messages(), session.Suggestions())

	m := Model{
		Tracker:    tr,
		AI:         ai,
		State:      constants.StateDashboard,
		Keys:       DefaultKeyMap(),
		Help:       help.New(),
		Thoughts:   thoughts,
		Activities: activities,
		Worries:    worries,
		Meds:       meds,
		Techniques: techniques,
		Workouts:   workouts,
		Breathe:    breathe.New(),
		ChatView:   cv,
		Graph:      graphview.New(),
		Chat:       session,
		Range:      models.Range30d,
	}
	m.Refresh()
	return m
}

// IsTab reports whether the current state is one of the main tabs.
func (m *Model) IsTab() bool {
	for _, s := range constants.MainTabs {
		if m.State == s {
			return true
		}
	}
	return false
}

// ReturnToTab leaves a form or dialog for the tab it was opened from.
func (m *Model) ReturnToTab() {
	m.Form = nil
	m.State = m.PreviousState
}

// OpenForm shows f and remembers the tab to come back to.
func (m *Model) OpenForm(f *huh.Form, s constants.SessionState) tea.Cmd {
	if m.IsTab() {
		m.PreviousState = m.State
	}
	m.Form = f
	m.FormError = ""
	m.State = s
	return f.Init()
}
