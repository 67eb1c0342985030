package analytics

import (
	"time"

	"github.com/julianstephens/mindcalm/internal/constants"
	"github.com/julianstephens/mindcalm/internal/models"
)

// Dashboard is the daily overview.
type Dashboard struct {
	RecentMoods     []models.MoodEntry `json:"recentMoods"`
	AvgMood         *float64           `json:"avgMood,omitempty"`
	AvgAnxiety      float64            `json:"avgAnxiety"`
	AvgSleep        *float64           `json:"avgSleep,omitempty"`
	AvgSleepQuality *float64           `json:"avgSleepQuality,omitempty"`
	TopSymptoms     []Count            `json:"topSymptoms"`
	MedsTakenToday  int                `json:"medsTakenToday"`
	TotalMeds       int                `json:"totalMeds"`
}

// StartOfDay is local midnight of the day containing t.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// BuildDashboard averages the last seven entries and tallies symptoms across
// all moods.
func BuildDashboard(moods []models.MoodEntry, lifestyle []models.LifestyleEntry, meds []models.Medication, logs []models.MedicationLog, now time.Time) Dashboard {
	d := Dashboard{
		RecentMoods: lastN(moods, constants.RecentWindowEntries),
		TotalMeds:   len(meds),
	}

	if len(d.RecentMoods) > 0 {
		d.AvgMood = f64(Round1(meanInt(d.RecentMoods, func(m models.MoodEntry) int { return m.Score })))
		d.AvgAnxiety = Round1(meanInt(d.RecentMoods, func(m models.MoodEntry) int { return m.AnxietyScore }))
	}

	recentSleep := lastN(lifestyle, constants.RecentWindowEntries)
	if len(recentSleep) > 0 {
		d.AvgSleep = f64(Round1(meanFloat(recentSleep, func(l models.LifestyleEntry) float64 { return l.SleepHours })))
		anyQuality := false
		for _, l := range lifestyle {
			if l.SleepQuality > 0 {
				anyQuality = true
				break
			}
		}
		if anyQuality {
			d.AvgSleepQuality = f64(Round1(meanInt(recentSleep, func(l models.LifestyleEntry) int { return l.SleepQuality })))
		}
	}

	var symptoms []string
	for _, m := range moods {
		symptoms = append(symptoms, m.Symptoms...)
	}
	d.TopSymptoms = topCounts(symptoms, constants.TopSymptoms)

	midnight := StartOfDay(now)
	taken := map[string]struct{}{}
	for _, l := range logs {
		if !l.Date.Before(midnight) {
			taken[l.MedicationID] = struct{}{}
		}
	}
	d.MedsTakenToday = len(taken)
	return d
}
