// Package panels renders the read-only tabs: dashboard, lifestyle,
// progress and stepped care.
package panels

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/mindcalm/internal/analytics"
	"github.com/julianstephens/mindcalm/internal/constants"
	"github.com/julianstephens/mindcalm/internal/models"
	"github.com/julianstephens/mindcalm/internal/optimizer"
)

var (
	headingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("36")).
			Bold(true).
			MarginTop(1)

	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	calloutStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("141")).
			Padding(0, 1)

	activeStepStyle = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(lipgloss.Color("36")).
			Padding(0, 1)

	stepStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("238")).
			Padding(0, 1)
)

func orNA(v *float64, format string) string {
	if v == nil {
		return "N/A"
	}
	return fmt.Sprintf(format, *v)
}

// Bar draws v of full as a fixed-width gauge.
func Bar(v, full float64, width int) string {
	if full <= 0 {
		return strings.Repeat("░", width)
	}
	n := int(v / full * float64(width))
	n = max(0, min(width, n))
	return strings.Repeat("█", n) + strings.Repeat("░", width-n)
}

func wrap(s string, width int) string {
	if width <= 4 {
		return s
	}
	return lipgloss.NewStyle().Width(width - 4).Render(s)
}

// WorryWindow is the postponement schedule shown on the dashboard.
type WorryWindow struct {
	Start   string
	Minutes int
	Open    bool
	Waiting int
}

// Dashboard renders the daily overview. coping, when set, is the suggestion
// produced after a high-anxiety check-in.
func Dashboard(d analytics.Dashboard, w WorryWindow, coping string, width int) string {
	var b strings.Builder
	b.WriteString(headingStyle.Render("Daily Overview") + "\n")
	if len(d.RecentMoods) == 0 {
		b.WriteString(mutedStyle.Render("No check-ins yet. Press 'c' to log how you feel.") + "\n")
	} else {
		band := analytics.AnxietyBand(int(d.AvgAnxiety + 0.5))
		fmt.Fprintf(&b, "Anxiety   %s %.1f/10 %s\n", Bar(d.AvgAnxiety, 10, 20), d.AvgAnxiety, band)
		fmt.Fprintf(&b, "Mood      %s/10\n", orNA(d.AvgMood, "%.1f"))
	}
	fmt.Fprintf(&b, "Sleep     %sh", orNA(d.AvgSleep, "%.1f"))
	if d.AvgSleepQuality != nil {
		fmt.Fprintf(&b, " (quality %.1f/5)", *d.AvgSleepQuality)
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "Meds      %d of %d taken today\n", d.MedsTakenToday, d.TotalMeds)

	if len(d.TopSymptoms) > 0 {
		b.WriteString(headingStyle.Render("Top Symptoms") + "\n")
		for _, s := range d.TopSymptoms {
			fmt.Fprintf(&b, "%-26s %d\n", s.Name, s.Value)
		}
	}

	if len(d.RecentMoods) > 0 {
		b.WriteString(headingStyle.Render("Recent Check-ins") + "\n")
		for _, m := range d.RecentMoods {
			fmt.Fprintf(&b, "%-8s mood %2d  anxiety %2d\n", m.Date.Local().Format(constants.DayLabelFormat), m.Score, m.AnxietyScore)
		}
	}

	b.WriteString(headingStyle.Render("Worry Time") + "\n")
	if w.Open {
		fmt.Fprintf(&b, "It's worry time now (%s for %d min). %d worries waiting.\n", w.Start, w.Minutes, w.Waiting)
	} else {
		fmt.Fprintf(&b, "%s for %d min. %d worries postponed.\n", w.Start, w.Minutes, w.Waiting)
	}

	if coping != "" {
		b.WriteString("\n" + calloutStyle.Render(wrap("Try this now:\n"+coping, width)) + "\n")
	}
	return b.String()
}

// Sleep summarizes the latest night and the lifestyle trend.
func Sleep(lifestyle []models.LifestyleEntry, moods []models.MoodEntry, width int) string {
	var b strings.Builder
	b.WriteString(headingStyle.Render("Sleep") + "\n")
	if len(lifestyle) == 0 {
		b.WriteString(mutedStyle.Render("No nights logged yet. Press 'c' to check in.") + "\n")
		return b.String()
	}

	last := lifestyle[len(lifestyle)-1]
	score := analytics.SleepScore(last.SleepHours, last.SleepQuality, last.SleepFactors)
	fmt.Fprintf(&b, "Last night  %.1fh  score %s %d/100\n", last.SleepHours, Bar(float64(score), 100, 20), score)
	if len(last.SleepFactors) > 0 {
		labels := make([]string, 0, len(last.SleepFactors))
		for _, f := range last.SleepFactors {
			if l, ok := constants.SleepFactorLabels[constants.SleepFactor(f)]; ok {
				labels = append(labels, l)
			} else {
				labels = append(labels, f)
			}
		}
		fmt.Fprintf(&b, "Disruptors  %s\n", strings.Join(labels, ", "))
	}
	fmt.Fprintf(&b, "Sleep debt  %.1fh over the last %d nights\n", analytics.SleepDebt(lifestyle), constants.RecentWindowEntries)

	if avg, ok := analytics.AverageLifestyle(lifestyle); ok {
		b.WriteString(headingStyle.Render("Averages") + "\n")
		fmt.Fprintf(&b, "Sleep %.1fh · quality %.1f/5 · exercise %d min · social %d min · caffeine %.1f cups\n",
			avg.Sleep, avg.SleepQuality, avg.Exercise, avg.Social, avg.Caffeine)
	}

	rows := analytics.LifestyleTrend(lifestyle, moods)
	b.WriteString(headingStyle.Render(fmt.Sprintf("Last %d Days", constants.TrendDays)) + "\n")
	b.WriteString(mutedStyle.Render(fmt.Sprintf("%-8s %6s %6s %6s %6s", "Day", "Sleep", "Exer.", "Mood", "Anx.")) + "\n")
	for _, r := range rows {
		fmt.Fprintf(&b, "%-8s %6s %6s %6s %6s\n", r.Name,
			orNA(r.Sleep, "%.1f"), orNA(r.Exercise, "%.0f"), orNA(r.Mood, "%.0f"), orNA(r.Anxiety, "%.0f"))
	}
	return b.String()
}

// Progress is the analytics view for one time range.
type Progress struct {
	Range        models.TimeRange
	Trend        []analytics.TrendRow
	Distortions  []analytics.Count
	Radar        []analytics.RadarAxis
	AvgReduction float64
	GAD7         []models.GAD7Result
	Insights     []models.Insight
}

func NewProgress(w analytics.Window) Progress {
	return Progress{
		Range:        w.Range,
		Trend:        analytics.BuildTrend(w),
		Distortions:  analytics.DistortionStats(w.Thoughts),
		Radar:        analytics.Radar(w),
		AvgReduction: analytics.AverageReduction(w.Thoughts),
		GAD7:         w.GAD7,
	}
}

func (p Progress) View(width int) string {
	var b strings.Builder
	ranges := make([]string, len(models.TimeRanges))
	for i, r := range models.TimeRanges {
		if r == p.Range {
			ranges[i] = "[" + string(r) + "]"
		} else {
			ranges[i] = string(r)
		}
	}
	b.WriteString(mutedStyle.Render("Range: "+strings.Join(ranges, " ")) + "\n")

	b.WriteString(headingStyle.Render("Trend") + "\n")
	if len(p.Trend) == 0 {
		b.WriteString(mutedStyle.Render("No entries in this range.") + "\n")
	} else {
		b.WriteString(mutedStyle.Render(fmt.Sprintf("%-8s %6s %6s %6s %5s", "Day", "Anx.", "Mood", "Sleep", "CBT")) + "\n")
		for _, r := range p.Trend {
			fmt.Fprintf(&b, "%-8s %6s %6s %6s %5d\n", r.Name,
				orNA(r.Anxiety, "%.0f"), orNA(r.Mood, "%.0f"), orNA(r.Sleep, "%.1f"), r.CBTCount)
		}
	}

	if len(p.Radar) > 0 {
		b.WriteString(headingStyle.Render("Wellness Balance") + "\n")
		for _, a := range p.Radar {
			fmt.Fprintf(&b, "%-9s %s %.1f\n", a.Subject, Bar(a.Value, a.FullMark, 20), a.Value)
		}
	}

	if len(p.Distortions) > 0 {
		b.WriteString(headingStyle.Render("Thinking Traps") + "\n")
		for _, d := range p.Distortions {
			name := d.Name
			if dist, ok := constants.DistortionByID(d.Name); ok {
				name = dist.Name
			}
			fmt.Fprintf(&b, "%-22s %d\n", name, d.Value)
		}
		fmt.Fprintf(&b, "Average intensity drop per record: %.1f\n", p.AvgReduction)
	}

	b.WriteString(headingStyle.Render("GAD-7") + "\n")
	if len(p.GAD7) == 0 {
		b.WriteString(mutedStyle.Render("No assessments yet. Press 'g' to take one.") + "\n")
	} else {
		for _, g := range p.GAD7 {
			fmt.Fprintf(&b, "%-8s %2d/21 %s\n", g.Date.Local().Format(constants.DayLabelFormat), g.Score, g.Interpretation)
		}
	}

	if len(p.Insights) > 0 {
		b.WriteString(headingStyle.Render("Insights") + "\n")
		for _, in := range p.Insights {
			b.WriteString(wrap("• "+in.Text, width) + "\n")
		}
	}
	return b.String()
}

// Care renders the stepped-care ladder with the recommended step
// highlighted, followed by routine suggestions.
func Care(latestGAD7 *int, suggestions []optimizer.Suggestion, width int) string {
	active := analytics.ActiveCareStep(latestGAD7)

	var b strings.Builder
	if latestGAD7 == nil {
		b.WriteString(mutedStyle.Render("Take a GAD-7 on the Progress tab for a personal recommendation.") + "\n")
	} else {
		fmt.Fprintf(&b, "Latest GAD-7: %d (%s). Recommended: step %d.\n", *latestGAD7, models.InterpretGAD7(*latestGAD7), active)
	}

	for _, s := range analytics.CareSteps {
		var card strings.Builder
		fmt.Fprintf(&card, "Step %d · %s\n%s\nFor: %s", s.Step, s.Title, s.Description, s.Target)
		for _, a := range s.Actions {
			fmt.Fprintf(&card, "\n  → %s", a.Label)
		}
		style := stepStyle
		if s.Step == active {
			style = activeStepStyle
		}
		if width > 6 {
			style = style.Width(width - 6)
		}
		b.WriteString(style.Render(card.String()) + "\n")
	}

	if len(suggestions) > 0 {
		b.WriteString(headingStyle.Render("Suggestions") + "\n")
		for _, s := range suggestions {
			b.WriteString(wrap(fmt.Sprintf("• %s: %s", s.Subject, s.Reason), width) + "\n")
		}
	}
	return b.String()
}
