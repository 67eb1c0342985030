package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/mindcalm/internal/constants"
	"github.com/julianstephens/mindcalm/internal/tui/components/panels"
	"github.com/julianstephens/mindcalm/internal/tui/state"
)

var tabTitles = map[constants.SessionState]string{
	constants.StateDashboard:   "Dashboard",
	constants.StateLifestyle:   "Lifestyle",
	constants.StateCBT:         "CBT",
	constants.StateWorry:       "Worry",
	constants.StateMedication:  "Meds",
	constants.StateBreathing:   "Breathe",
	constants.StateExercise:    "Exercise",
	constants.StateProgress:    "Progress",
	constants.StateGraph:       "Graph",
	constants.StateSteppedCare: "Care",
	constants.StateChat:        "Chat",
}

func (m Model) View() string {
	if m.Quitting {
		return ""
	}
	st := newStyles(m.Tracker.Theme())

	var content string
	switch {
	case m.State == constants.StateBreathingSession:
		content = st.doc.Render(m.Breathe.View())
	case m.Form != nil:
		content = st.doc.Render(m.Form.View())
	default:
		content = st.doc.Render(m.viewTab())
	}

	parts := []string{m.viewTabs(st)}
	if m.ValidationWarning != "" {
		parts = append(parts, st.warning.Render(m.ValidationWarning))
	}
	parts = append(parts, content)
	if m.FormError != "" {
		parts = append(parts, st.danger.Render("Error: "+m.FormError))
	}
	if m.Pending {
		parts = append(parts, st.muted.Render("Asking MindCalm AI..."))
	}
	if m.Notice != "" && m.IsTab() {
		parts = append(parts, st.notice.Render(m.wrap(m.Notice)))
	}
	parts = append(parts, m.Help.View(m))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) wrap(s string) string {
	if m.Width <= 8 {
		return s
	}
	return lipgloss.NewStyle().Width(m.Width - 8).Render(s)
}

func (m Model) viewTabs(st styles) string {
	current := m.State
	if !m.IsTab() {
		current = m.PreviousState
	}
	tabs := make([]string, 0, len(constants.MainTabs))
	for _, s := range constants.MainTabs {
		if s == current {
			tabs = append(tabs, st.activeTab.Render(tabTitles[s]))
		} else {
			tabs = append(tabs, st.inactiveTab.Render(tabTitles[s]))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewTab() string {
	width := max(m.Width-4, 20)
	tr := m.Tracker

	switch m.State {
	case constants.StateDashboard:
		start, minutes := tr.WorrySchedule()
		w := panels.WorryWindow{
			Start:   start,
			Minutes: minutes,
			Open:    tr.IsWorryTime(tr.Now()),
			Waiting: len(tr.ActiveWorries()),
		}
		return panels.Dashboard(tr.Dashboard(), w, m.Coping, width)

	case constants.StateLifestyle:
		return panels.Sleep(tr.Lifestyle(), tr.Moods(), width)

	case constants.StateCBT:
		if m.ShowActivity {
			return m.Activities.View()
		}
		return m.Thoughts.View()

	case constants.StateWorry:
		start, minutes := tr.WorrySchedule()
		header := fmt.Sprintf("Worry time: %s for %d min", start, minutes)
		if tr.IsWorryTime(tr.Now()) {
			header += " · open now"
		}
		return header + "\n\n" + m.Worries.View()

	case constants.StateMedication:
		header := fmt.Sprintf("7-day compliance %s %.0f%%", panels.Bar(tr.Compliance(), 100, 20), tr.Compliance())
		return header + "\n\n" + m.Meds.View()

	case constants.StateBreathing:
		return m.Techniques.View() + "\n" + state.BreathingSummary(tr.BreathingSessions())

	case constants.StateExercise:
		return m.Workouts.View()

	case constants.StateProgress:
		p := panels.NewProgress(tr.Window(m.Range))
		p.Insights = m.Insights
		return p.View(width)

	case constants.StateGraph:
		return m.Graph.View()

	case constants.StateSteppedCare:
		return panels.Care(tr.LatestGAD7(), tr.Suggestions(), width)

	case constants.StateChat:
		return m.ChatView.View()
	}
	return ""
}
