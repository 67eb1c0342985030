package models

import (
	"slices"
	"time"
)

type BreathingSession struct {
	ID              string    `json:"id"`
	Date            time.Time `json:"date"`
	Technique       string    `json:"technique"`
	DurationSeconds int       `json:"durationSeconds"`
	Completed       bool      `json:"completed"`
	AnxietyBefore   int       `json:"anxietyBefore,omitempty"`
	AnxietyAfter    int       `json:"anxietyAfter,omitempty"`
}

type Exercise struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Sets      int     `json:"sets"`
	Reps      string  `json:"reps"`
	Weight    float64 `json:"weight,omitempty"`
	Completed bool    `json:"completed"`
	Notes     string  `json:"notes,omitempty"`
}

type Workout struct {
	ID               string     `json:"id"`
	Title            string     `json:"title"`
	DayOfWeek        int        `json:"dayOfWeek"` // 0 = Sunday
	Exercises        []Exercise `json:"exercises"`
	Completed        bool       `json:"completed"`
	DateCompleted    *time.Time `json:"dateCompleted,omitempty"`
	DurationMinutes  int        `json:"durationMinutes,omitempty"`
	MoodBefore       int        `json:"moodBefore,omitempty"`
	MoodAfter        int        `json:"moodAfter,omitempty"`
	DifficultyRating int        `json:"difficultyRating,omitempty"`
}

// Clone returns a copy that shares no slices or pointers with w.
func (w Workout) Clone() Workout {
	w.Exercises = slices.Clone(w.Exercises)
	if w.DateCompleted != nil {
		done := *w.DateCompleted
		w.DateCompleted = &done
	}
	return w
}

type GAD7Interpretation string

const (
	GAD7Minimal  GAD7Interpretation = "Minimal"
	GAD7Mild     GAD7Interpretation = "Mild"
	GAD7Moderate GAD7Interpretation = "Moderate"
	GAD7Severe   GAD7Interpretation = "Severe"
)

type GAD7Result struct {
	ID             string             `json:"id"`
	Date           time.Time          `json:"date"`
	Score          int                `json:"score"` // 0-21
	Interpretation GAD7Interpretation `json:"interpretation"`
}

// InterpretGAD7 maps a total score to its severity band.
func InterpretGAD7(score int) GAD7Interpretation {
	switch {
	case score >= 15:
		return GAD7Severe
	case score >= 10:
		return GAD7Moderate
	case score >= 5:
		return GAD7Mild
	default:
		return GAD7Minimal
	}
}
