package analytics

import (
	"fmt"
	"strings"

	"github.com/julianstephens/mindcalm/internal/constants"
	"github.com/julianstephens/mindcalm/internal/models"
)

// InsightSummary renders the correlation digest sent to the insight model.
// It reports false when the window is too sparse to say anything useful.
func InsightSummary(w Window) (string, bool) {
	if len(w.Moods) <= constants.MinEntriesForInsights || len(w.Lifestyle) <= constants.MinEntriesForInsights {
		return "", false
	}

	avgAnxiety := meanInt(w.Moods, func(m models.MoodEntry) int { return m.AnxietyScore })
	avgSleep := meanFloat(w.Lifestyle, func(l models.LifestyleEntry) float64 { return l.SleepHours })

	exerciseDays := 0
	var goodSleep, badSleep []string
	for _, l := range w.Lifestyle {
		if l.ExerciseMinutes > 15 {
			exerciseDays++
		}
		switch {
		case l.SleepHours >= 7:
			goodSleep = append(goodSleep, dayKey(l.Date))
		case l.SleepHours < 6:
			badSleep = append(badSleep, dayKey(l.Date))
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Last %s data:\n", w.Range)
	fmt.Fprintf(&b, "Avg Anxiety: %.1f/10\n", avgAnxiety)
	fmt.Fprintf(&b, "Avg Sleep: %.1f hours\n", avgSleep)
	fmt.Fprintf(&b, "Total Exercise Days: %d\n", exerciseDays)
	fmt.Fprintf(&b, "Avg Anxiety after >7h sleep: %.1f\n", anxietyOnDays(w.Moods, goodSleep))
	fmt.Fprintf(&b, "Avg Anxiety after <6h sleep: %.1f\n", anxietyOnDays(w.Moods, badSleep))
	return b.String(), true
}

// anxietyOnDays sums anxiety of moods logged on the given days and divides by
// the number of days (or 1 when there are none).
func anxietyOnDays(moods []models.MoodEntry, days []string) float64 {
	set := make(map[string]struct{}, len(days))
	for _, d := range days {
		set[d] = struct{}{}
	}
	sum := 0
	for _, m := range moods {
		if _, ok := set[dayKey(m.Date)]; ok {
			sum += m.AnxietyScore
		}
	}
	n := len(days)
	if n == 0 {
		n = 1
	}
	return float64(sum) / float64(n)
}
