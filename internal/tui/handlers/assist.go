package handlers

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/mindcalm/internal/assist"
	"github.com/julianstephens/mindcalm/internal/models"
	"github.com/julianstephens/mindcalm/internal/tui/state"
)

// assistTimeout bounds every assistant request made from the TUI.
const assistTimeout = 60 * time.Second

// NoticeMsg carries assistant text for the notice panel.
type NoticeMsg struct {
	Title string
	Text  string
}

// CopingMsg is the suggestion for a high-anxiety check-in.
type CopingMsg struct {
	Text string
}

type AnalysisMsg struct {
	Analysis assist.ThoughtAnalysis
	Err      error
}

type EvidenceMsg struct {
	Text string
}

type WorkoutPlanMsg struct {
	Plan []models.Workout
}

type InsightsMsg struct {
	Insights []models.Insight
}

type ChatReplyMsg struct {
	Messages    []models.ChatMessage
	Suggestions []string
}

// ask runs fn off the update loop. Callers must only capture values, not
// the tracker, since the update loop keeps mutating it.
func ask(m *state.Model, fn func(ctx context.Context) tea.Msg) tea.Cmd {
	m.Pending = true
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), assistTimeout)
		defer cancel()
		return fn(ctx)
	}
}

// HandleAssistMessages applies assistant replies to the model.
func HandleAssistMessages(m *state.Model, msg tea.Msg) (bool, tea.Cmd) {
	switch msg := msg.(type) {
	case NoticeMsg:
		m.Pending = false
		m.Notice = msg.Title + "\n\n" + msg.Text
		return true, nil

	case CopingMsg:
		m.Pending = false
		m.Coping = msg.Text
		return true, nil

	case AnalysisMsg:
		m.Pending = false
		return true, applyAnalysis(m, msg)

	case EvidenceMsg:
		m.Pending = false
		applyEvidence(m, msg.Text)
		return true, nil

	case WorkoutPlanMsg:
		m.Pending = false
		return true, applyWorkoutPlan(m, msg.Plan)

	case InsightsMsg:
		m.Pending = false
		m.Insights = msg.Insights
		return true, nil

	case ChatReplyMsg:
		m.Pending = false
		m.ChatView.SetConversation(msg.Messages, msg.Suggestions)
		return true, nil
	}
	return false, nil
}
