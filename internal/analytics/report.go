package analytics

import (
	"fmt"
	"math"
	"time"

	"github.com/julianstephens/mindcalm/internal/constants"
	"github.com/julianstephens/mindcalm/internal/models"
)

// ReportStats feeds the clinician progress summary. Averages are
// pre-formatted because the summary shows "N/A" when there is no data.
type ReportStats struct {
	AvgAnxiety    string `json:"avgAnxiety"`
	AvgSleep      string `json:"avgSleep"`
	CBTCount      int    `json:"cbtCount"`
	MedCompliance string `json:"medCompliance"`
	LatestGAD7    *int   `json:"latestGad7,omitempty"`
}

// MedicationCompliance is the share of expected doses logged in the last
// seven days, capped at 100. It is 0 with no medications.
func MedicationCompliance(meds []models.Medication, logs []models.MedicationLog, now time.Time) float64 {
	if len(meds) == 0 {
		return 0
	}
	since := now.AddDate(0, 0, -7)
	recent := 0
	for _, l := range logs {
		if l.Date.After(since) {
			recent++
		}
	}
	expected := len(meds) * 7
	return math.Min(100, float64(recent)/float64(expected)*100)
}

// BuildReportStats summarizes the most recent week of entries.
func BuildReportStats(moods []models.MoodEntry, lifestyle []models.LifestyleEntry, thoughts []models.ThoughtRecord, gad7 []models.GAD7Result, compliance float64) ReportStats {
	stats := ReportStats{
		AvgAnxiety:    "N/A",
		AvgSleep:      "N/A",
		CBTCount:      len(thoughts),
		MedCompliance: fmt.Sprintf("%.0f", compliance),
	}

	if recent := lastN(moods, constants.RecentWindowEntries); len(recent) > 0 {
		stats.AvgAnxiety = fmt.Sprintf("%.1f", meanInt(recent, func(m models.MoodEntry) int { return m.AnxietyScore }))
	}
	if recent := lastN(lifestyle, constants.RecentWindowEntries); len(recent) > 0 {
		stats.AvgSleep = fmt.Sprintf("%.1f", meanFloat(recent, func(l models.LifestyleEntry) float64 { return l.SleepHours }))
	}
	if len(gad7) > 0 {
		score := gad7[len(gad7)-1].Score
		stats.LatestGAD7 = &score
	}
	return stats
}

// MedicationHistory renders one line per dose log for sharing with a clinician.
func MedicationHistory(logs []models.MedicationLog) []string {
	lines := make([]string, 0, len(logs))
	for _, l := range logs {
		se := l.SideEffects
		if se == "" {
			se = "None"
		}
		lines = append(lines, fmt.Sprintf("%s - %s: Taken. Eff: %d/10. SE: %s",
			l.Date.Local().Format("1/2/2006"), l.MedicationName, l.EfficacyRating, se))
	}
	return lines
}
