package state

import (
	"fmt"
	"strings"

	"github.com/julianstephens/mindcalm/internal/breathing"
	"github.com/julianstephens/mindcalm/internal/constants"
	"github.com/julianstephens/mindcalm/internal/models"
	"github.com/julianstephens/mindcalm/internal/tui/components/entries"
)

// Refresh rebuilds every list from the tracker and revalidates.
func (m *Model) Refresh() {
	m.RefreshThoughts()
	m.RefreshActivities()
	m.RefreshWorries()
	m.RefreshMeds()
	m.RefreshTechniques()
	m.RefreshWorkouts()
	m.UpdateValidationStatus()
}

func (m *Model) RefreshThoughts() {
	var items []entries.Item
	if d, ok := m.Tracker.Draft(); ok {
		items = append(items, entries.Item{
			ID:     "",
			Name:   "Draft: " + firstLine(d.Thought, "untitled"),
			Detail: fmt.Sprintf("step %d of 3 · press 'a' to resume", max(d.Step, 1)),
		})
	}
	for _, t := range m.Tracker.Thoughts() {
		detail := fmt.Sprintf("%s · %s %d → %d", t.Date.Local().Format(constants.DayLabelFormat), orDash(t.Emotion), t.IntensityBefore, t.IntensityAfter)
		if d, ok := constants.DistortionByID(t.Distortion); ok {
			detail += " · " + d.Name
		}
		items = append(items, entries.Item{
			ID:     t.ID,
			Name:   firstLine(t.Thought, t.Situation),
			Detail: detail,
			Plain:  true,
		})
	}
	m.Thoughts.SetItems(items)
}

func (m *Model) RefreshActivities() {
	acts := m.Tracker.Activities()
	items := make([]entries.Item, len(acts))
	for i, a := range acts {
		items[i] = entries.Item{
			ID:     a.ID,
			Name:   a.Title,
			Detail: difficultyLabel(a.Difficulty),
			Done:   a.Completed,
		}
	}
	m.Activities.SetItems(items)
}

func (m *Model) RefreshWorries() {
	worries := append(m.Tracker.ActiveWorries(), m.Tracker.ProcessedWorries()...)
	items := make([]entries.Item, len(worries))
	for i, w := range worries {
		detail := "logged " + w.DateLogged.Local().Format("Jan 2 15:04")
		if w.Processed {
			detail = "processed · " + detail
		}
		items[i] = entries.Item{ID: w.ID, Name: w.Text, Detail: detail, Done: w.Processed}
	}
	m.Worries.SetItems(items)
}

func (m *Model) RefreshMeds() {
	now := m.Tracker.Now()
	meds := m.Tracker.Medications()
	items := make([]entries.Item, len(meds))
	for i, med := range meds {
		parts := []string{med.Dosage, med.Frequency, string(med.Type), fmt.Sprintf("%d pills", med.TotalPills)}
		if med.RefillDate != "" {
			parts = append(parts, "refill "+med.RefillDate)
		}
		items[i] = entries.Item{
			ID:     med.ID,
			Name:   med.Name,
			Detail: strings.Join(parts, " · "),
			Done:   m.Tracker.IsTakenToday(med.ID, now),
		}
	}
	m.Meds.SetItems(items)
}

func (m *Model) RefreshTechniques() {
	items := make([]entries.Item, len(breathing.Techniques))
	for i, t := range breathing.Techniques {
		items[i] = entries.Item{ID: t.ID, Name: t.Name, Detail: t.Description, Plain: true}
	}
	m.Techniques.SetItems(items)
}

func (m *Model) RefreshWorkouts() {
	workouts := m.Tracker.Workouts()
	items := make([]entries.Item, len(workouts))
	for i, w := range workouts {
		names := make([]string, len(w.Exercises))
		for j, e := range w.Exercises {
			names[j] = fmt.Sprintf("%s %dx%s", e.Name, e.Sets, e.Reps)
		}
		items[i] = entries.Item{
			ID:     w.ID,
			Name:   fmt.Sprintf("%s · %s", weekday(w.DayOfWeek), w.Title),
			Detail: strings.Join(names, ", "),
			Done:   w.Completed,
		}
	}
	m.Workouts.SetItems(items)
}

// BreathingSummary describes past sessions for the breathing tab.
func BreathingSummary(sessions []models.BreathingSession) string {
	if len(sessions) == 0 {
		return "No sessions yet."
	}
	total, drop, rated := 0, 0, 0
	for _, s := range sessions {
		total += s.DurationSeconds
		if s.AnxietyBefore > 0 && s.AnxietyAfter > 0 {
			drop += s.AnxietyBefore - s.AnxietyAfter
			rated++
		}
	}
	out := fmt.Sprintf("%d sessions · %d min total", len(sessions), total/60)
	if rated > 0 {
		out += fmt.Sprintf(" · anxiety down %.1f on average", float64(drop)/float64(rated))
	}
	return out
}

func firstLine(s, fallback string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	if s == "" {
		return fallback
	}
	return s
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func difficultyLabel(d int) string {
	switch d {
	case 1:
		return "Easy"
	case 2:
		return "Medium"
	default:
		return "Hard"
	}
}

var weekdays = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

func weekday(d int) string {
	if d < 0 || d >= len(weekdays) {
		return "Any"
	}
	return weekdays[d]
}
