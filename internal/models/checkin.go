package models

import (
	"slices"
	"time"
)

// MoodEntry is one daily check-in. Created once, never edited.
type MoodEntry struct {
	ID           string    `json:"id"`
	Date         time.Time `json:"date"`
	Score        int       `json:"score"`        // wellness 1-10
	AnxietyScore int       `json:"anxietyScore"` // 1-10
	Symptoms     []string  `json:"symptoms"`
	Notes        string    `json:"notes,omitempty"`
}

func (m MoodEntry) Clone() MoodEntry {
	m.Symptoms = slices.Clone(m.Symptoms)
	return m
}

// LifestyleEntry is written next to a MoodEntry on check-in.
type LifestyleEntry struct {
	Date            time.Time `json:"date"`
	SleepHours      float64   `json:"sleepHours"`
	SleepQuality    int       `json:"sleepQuality,omitempty"` // 1-5
	BedTime         string    `json:"bedTime,omitempty"`      // HH:MM
	WakeTime        string    `json:"wakeTime,omitempty"`     // HH:MM
	SleepFactors    []string  `json:"sleepFactors,omitempty"`
	StressLevel     int       `json:"stressLevel"`
	ExerciseMinutes int       `json:"exerciseMinutes"`
	CaffeineIntake  int       `json:"caffeineIntake"`
	WaterIntake     int       `json:"waterIntake"`
	SocialMinutes   int       `json:"socialMinutes,omitempty"`
}

func (l LifestyleEntry) Clone() LifestyleEntry {
	l.SleepFactors = slices.Clone(l.SleepFactors)
	return l
}
