package analytics

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/julianstephens/mindcalm/internal/constants"
	"github.com/julianstephens/mindcalm/internal/models"
)

// SleepHours is the time between bed and wake (HH:MM), wrapping past
// midnight when wake is earlier than bed.
func SleepHours(bed, wake string) (float64, error) {
	start, err := time.Parse(constants.TimeFormat, bed)
	if err != nil {
		return 0, fmt.Errorf("invalid bed time %q: %w", bed, err)
	}
	end, err := time.Parse(constants.TimeFormat, wake)
	if err != nil {
		return 0, fmt.Errorf("invalid wake time %q: %w", wake, err)
	}
	if end.Before(start) {
		end = end.Add(24 * time.Hour)
	}
	return Round1(end.Sub(start).Hours()), nil
}

// SleepDebt is the total shortfall against the goal over the last seven
// entries.
func SleepDebt(history []models.LifestyleEntry) float64 {
	debt := 0.0
	for _, h := range lastN(history, constants.RecentWindowEntries) {
		if h.SleepHours < constants.SleepGoalHours {
			debt += constants.SleepGoalHours - h.SleepHours
		}
	}
	return Round1(debt)
}

// SleepScore rates a night 0-100 from duration, quality and disruptors.
// Either input missing yields 0.
func SleepScore(hours float64, quality int, factors []string) int {
	if hours == 0 || quality == 0 {
		return 0
	}
	score := 0
	switch {
	case hours >= 7 && hours <= 9:
		score += 50
	case hours >= 6:
		score += 40
	case hours >= 5:
		score += 20
	default:
		score += 10
	}
	score += quality * 6
	score += 20 - 5*len(factors)
	return int(math.Min(100, math.Max(0, float64(score))))
}

// LifestyleRow is one day of the 14-day lifestyle chart.
type LifestyleRow struct {
	Name         string    `json:"name"`
	Date         time.Time `json:"date"`
	Sleep        *float64  `json:"sleep,omitempty"`
	SleepQuality *float64  `json:"sleepQuality,omitempty"`
	Exercise     *float64  `json:"exercise,omitempty"`
	Social       *float64  `json:"social,omitempty"`
	Caffeine     *float64  `json:"caffeine,omitempty"`
	Water        *float64  `json:"water,omitempty"`
	Mood         *float64  `json:"mood,omitempty"`
	Anxiety      *float64  `json:"anxiety,omitempty"`
}

// LifestyleTrend merges lifestyle and mood entries by day and keeps the most
// recent fourteen days.
func LifestyleTrend(lifestyle []models.LifestyleEntry, moods []models.MoodEntry) []LifestyleRow {
	rows := map[string]*LifestyleRow{}
	var order []string
	row := func(t time.Time) *LifestyleRow {
		name := t.Local().Format(constants.DayLabelFormat)
		r, ok := rows[name]
		if !ok {
			r = &LifestyleRow{Name: name, Date: t}
			rows[name] = r
			order = append(order, name)
		}
		return r
	}

	for _, l := range lifestyle {
		r := row(l.Date)
		quality := l.SleepQuality
		if quality == 0 {
			quality = 3
		}
		r.Sleep = f64(l.SleepHours)
		r.SleepQuality = f64(float64(quality))
		r.Exercise = f64(float64(l.ExerciseMinutes))
		r.Social = f64(float64(l.SocialMinutes))
		r.Caffeine = f64(float64(l.CaffeineIntake))
		r.Water = f64(float64(l.WaterIntake))
	}
	for _, m := range moods {
		r := row(m.Date)
		r.Mood = f64(float64(m.Score))
		r.Anxiety = f64(float64(m.AnxietyScore))
	}

	out := make([]LifestyleRow, 0, len(order))
	for _, name := range order {
		out = append(out, *rows[name])
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return lastN(out, constants.TrendDays)
}

// LifestyleAverages are all-time means shown beside the lifestyle chart.
type LifestyleAverages struct {
	Sleep        float64 `json:"sleep"`
	SleepQuality float64 `json:"sleepQuality"`
	Exercise     int     `json:"exercise"`
	Social       int     `json:"social"`
	Caffeine     float64 `json:"caffeine"`
}

// AverageLifestyle reports false when there are no entries.
func AverageLifestyle(lifestyle []models.LifestyleEntry) (LifestyleAverages, bool) {
	if len(lifestyle) == 0 {
		return LifestyleAverages{}, false
	}
	return LifestyleAverages{
		Sleep:        Round1(meanFloat(lifestyle, func(l models.LifestyleEntry) float64 { return l.SleepHours })),
		SleepQuality: Round1(meanInt(lifestyle, func(l models.LifestyleEntry) int { return l.SleepQuality })),
		Exercise:     int(math.Round(meanInt(lifestyle, func(l models.LifestyleEntry) int { return l.ExerciseMinutes }))),
		Social:       int(math.Round(meanInt(lifestyle, func(l models.LifestyleEntry) int { return l.SocialMinutes }))),
		Caffeine:     Round1(meanInt(lifestyle, func(l models.LifestyleEntry) int { return l.CaffeineIntake })),
	}, true
}
