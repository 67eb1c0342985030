package analytics

import (
	"sort"
	"time"

	"github.com/julianstephens/mindcalm/internal/constants"
	"github.com/julianstephens/mindcalm/internal/models"
)

// TrendRow is one calendar day of the merged trend table. Pointer fields are
// nil when no source recorded that metric on the day.
type TrendRow struct {
	Name         string    `json:"name"`
	Date         time.Time `json:"date"`
	Anxiety      *float64  `json:"anxiety,omitempty"`
	Mood         *float64  `json:"mood,omitempty"`
	Sleep        *float64  `json:"sleep,omitempty"`
	Exercise     *float64  `json:"exercise,omitempty"`
	Social       *float64  `json:"social,omitempty"`
	CBTCount     int       `json:"cbtCount,omitempty"`
	CBTReduction int       `json:"cbtReduction,omitempty"`
	AvgReduction *float64  `json:"avgReduction,omitempty"`
}

func f64(v float64) *float64 { return &v }

// BuildTrend merges the window into one row per day. Later entries for the
// same day overwrite earlier values of the same field.
func BuildTrend(w Window) []TrendRow {
	rows := map[string]*TrendRow{}
	var order []string

	row := func(t time.Time) *TrendRow {
		name := t.Local().Format(constants.DayLabelFormat)
		r, ok := rows[name]
		if !ok {
			r = &TrendRow{Name: name, Date: t}
			rows[name] = r
			order = append(order, name)
		}
		return r
	}

	for _, m := range w.Moods {
		r := row(m.Date)
		r.Anxiety = f64(float64(m.AnxietyScore))
		r.Mood = f64(float64(m.Score))
	}
	for _, l := range w.Lifestyle {
		r := row(l.Date)
		r.Sleep = f64(l.SleepHours)
		r.Exercise = f64(float64(l.ExerciseMinutes))
		r.Social = f64(float64(l.SocialMinutes))
	}
	for _, t := range w.Thoughts {
		r := row(t.Date)
		r.CBTCount++
		r.CBTReduction += t.Reduction()
	}

	out := make([]TrendRow, 0, len(order))
	for _, name := range order {
		r := rows[name]
		if r.CBTCount > 0 {
			r.AvgReduction = f64(Round1(float64(r.CBTReduction) / float64(r.CBTCount)))
		}
		out = append(out, *r)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// Count is a label with its number of occurrences.
type Count struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// topCounts tallies labels and returns the n most frequent. Ties keep the
// order in which labels were first seen.
func topCounts(labels []string, n int) []Count {
	idx := map[string]int{}
	var counts []Count
	for _, l := range labels {
		if i, ok := idx[l]; ok {
			counts[i].Value++
			continue
		}
		idx[l] = len(counts)
		counts = append(counts, Count{Name: l, Value: 1})
	}
	sort.SliceStable(counts, func(i, j int) bool { return counts[i].Value > counts[j].Value })
	if n > 0 && len(counts) > n {
		counts = counts[:n]
	}
	return counts
}

// DistortionStats returns the five most frequent distortions in the window.
func DistortionStats(thoughts []models.ThoughtRecord) []Count {
	var labels []string
	for _, t := range thoughts {
		if t.Distortion != "" {
			labels = append(labels, t.Distortion)
		}
	}
	return topCounts(labels, constants.TopDistortions)
}

// AverageReduction is the mean intensity drop per thought record.
func AverageReduction(thoughts []models.ThoughtRecord) float64 {
	if len(thoughts) == 0 {
		return 0
	}
	return Round1(meanInt(thoughts, models.ThoughtRecord.Reduction))
}
