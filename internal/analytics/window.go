// Package analytics derives dashboards, trends and summaries from the tracked
// collections. Everything here is a pure function of its inputs.
package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/julianstephens/mindcalm/internal/models"
)

// WindowStart returns the earliest timestamp included in the range. The
// all-time range starts at the Unix epoch.
func WindowStart(r models.TimeRange, now time.Time) time.Time {
	days := r.Days()
	if days == 0 {
		return time.Unix(0, 0)
	}
	return now.AddDate(0, 0, -days)
}

// Filter keeps items dated at or after start, sorted oldest first. The input
// slice is not modified.
func Filter[T any](items []T, date func(T) time.Time, start time.Time) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if !date(it).Before(start) {
			out = append(out, it)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return date(out[i]).Before(date(out[j])) })
	return out
}

func MoodDate(m models.MoodEntry) time.Time           { return m.Date }
func LifestyleDate(l models.LifestyleEntry) time.Time { return l.Date }
func ThoughtDate(t models.ThoughtRecord) time.Time    { return t.Date }
func GAD7Date(g models.GAD7Result) time.Time          { return g.Date }

// Window is every collection restricted to one time range.
type Window struct {
	Range     models.TimeRange
	Start     time.Time
	Moods     []models.MoodEntry
	Lifestyle []models.LifestyleEntry
	Thoughts  []models.ThoughtRecord
	GAD7      []models.GAD7Result
}

// NewWindow filters each collection to the range ending at now.
func NewWindow(r models.TimeRange, now time.Time, moods []models.MoodEntry, lifestyle []models.LifestyleEntry, thoughts []models.ThoughtRecord, gad7 []models.GAD7Result) Window {
	start := WindowStart(r, now)
	return Window{
		Range:     r,
		Start:     start,
		Moods:     Filter(moods, MoodDate, start),
		Lifestyle: Filter(lifestyle, LifestyleDate, start),
		Thoughts:  Filter(thoughts, ThoughtDate, start),
		GAD7:      Filter(gad7, GAD7Date, start),
	}
}

// Round1 rounds to one decimal place.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// dayKey is the calendar day of an ISO timestamp, as used to join entries
// recorded on the same day.
func dayKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

func lastN[T any](items []T, n int) []T {
	if len(items) <= n {
		return items
	}
	return items[len(items)-n:]
}

func meanInt[T any](items []T, f func(T) int) float64 {
	if len(items) == 0 {
		return 0
	}
	sum := 0
	for _, it := range items {
		sum += f(it)
	}
	return float64(sum) / float64(len(items))
}

func meanFloat[T any](items []T, f func(T) float64) float64 {
	if len(items) == 0 {
		return 0
	}
	sum := 0.0
	for _, it := range items {
		sum += f(it)
	}
	return sum / float64(len(items))
}
