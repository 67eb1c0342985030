package analytics

import (
	"math"

	"github.com/julianstephens/mindcalm/internal/models"
)

// RadarAxis is one spoke of the wellness radar, scaled to 0..FullMark.
type RadarAxis struct {
	Subject  string  `json:"subject"`
	Value    float64 `json:"value"`
	FullMark float64 `json:"fullMark"`
}

// Radar normalizes the window to six 0-10 axes. It is empty unless the window
// has both mood and lifestyle entries.
func Radar(w Window) []RadarAxis {
	if len(w.Moods) == 0 || len(w.Lifestyle) == 0 {
		return nil
	}

	sleep := meanFloat(w.Lifestyle, func(l models.LifestyleEntry) float64 { return l.SleepHours })
	exercise := meanInt(w.Lifestyle, func(l models.LifestyleEntry) int { return l.ExerciseMinutes })
	social := meanInt(w.Lifestyle, func(l models.LifestyleEntry) int { return l.SocialMinutes })
	mood := meanInt(w.Moods, func(m models.MoodEntry) int { return m.Score })
	anxiety := meanInt(w.Moods, func(m models.MoodEntry) int { return m.AnxietyScore })

	// An hour of exercise or social time fills the axis; five records fill CBT.
	axes := []RadarAxis{
		{Subject: "Sleep", Value: math.Min(10, sleep)},
		{Subject: "Exercise", Value: math.Min(10, exercise/6)},
		{Subject: "Social", Value: math.Min(10, social/6)},
		{Subject: "Calmness", Value: 10 - anxiety},
		{Subject: "Mood", Value: mood},
		{Subject: "CBT", Value: math.Min(10, float64(len(w.Thoughts)*2))},
	}
	for i := range axes {
		axes[i].FullMark = 10
	}
	return axes
}
