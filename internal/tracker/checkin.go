package tracker

import (
	"github.com/julianstephens/mindcalm/internal/analytics"
	"github.com/julianstephens/mindcalm/internal/constants"
	"github.com/julianstephens/mindcalm/internal/models"
)

// CheckInForm is the combined daily log. Sleep hours are derived from bed
// and wake time when both are set.
type CheckInForm struct {
	SleepHours      float64
	BedTime         string
	WakeTime        string
	SleepQuality    int
	SleepFactors    []string
	StressLevel     int
	ExerciseMinutes int
	CaffeineIntake  int
	WaterIntake     int
	SocialMinutes   int
	Mood            int
	Anxiety         int
	Symptoms        []string
	Notes           string
}

// DefaultCheckIn returns the form prefilled the way a fresh check-in starts.
func DefaultCheckIn() CheckInForm {
	return CheckInForm{
		SleepHours:      7.5,
		BedTime:         "23:00",
		WakeTime:        "06:30",
		SleepQuality:    3,
		ExerciseMinutes: 30,
		CaffeineIntake:  1,
		WaterIntake:     4,
		SocialMinutes:   30,
		Mood:            5,
		Anxiety:         5,
	}
}

// CheckInResult reports what was written and whether the anxiety level
// warrants a coping suggestion.
type CheckInResult struct {
	Mood        models.MoodEntry
	Lifestyle   models.LifestyleEntry
	NeedsCoping bool
}

func (t *Tracker) AddMood(m models.MoodEntry) (models.MoodEntry, error) {
	if m.ID == "" {
		m.ID = t.newID()
	}
	if m.Date.IsZero() {
		m.Date = t.now()
	}
	t.moods = append(t.moods, m)
	return m, t.save(constants.KeyMoods, t.moods)
}

func (t *Tracker) AddLifestyle(l models.LifestyleEntry) (models.LifestyleEntry, error) {
	if l.Date.IsZero() {
		l.Date = t.now()
	}
	t.lifestyle = append(t.lifestyle, l)
	return l, t.save(constants.KeyLifestyle, t.lifestyle)
}

// CheckIn writes the lifestyle entry and then the mood entry. The two writes
// are independent; a failure on the second leaves the first in place.
func (t *Tracker) CheckIn(form CheckInForm) (CheckInResult, error) {
	hours := form.SleepHours
	if form.BedTime != "" && form.WakeTime != "" {
		h, err := analytics.SleepHours(form.BedTime, form.WakeTime)
		if err != nil {
			return CheckInResult{}, err
		}
		hours = h
	}

	now := t.now()
	lifestyle, err := t.AddLifestyle(models.LifestyleEntry{
		Date:            now,
		SleepHours:      hours,
		SleepQuality:    form.SleepQuality,
		BedTime:         form.BedTime,
		WakeTime:        form.WakeTime,
		SleepFactors:    form.SleepFactors,
		StressLevel:     form.StressLevel,
		ExerciseMinutes: form.ExerciseMinutes,
		CaffeineIntake:  form.CaffeineIntake,
		WaterIntake:     form.WaterIntake,
		SocialMinutes:   form.SocialMinutes,
	})
	if err != nil {
		return CheckInResult{}, err
	}

	mood, err := t.AddMood(models.MoodEntry{
		Date:         now,
		Score:        form.Mood,
		AnxietyScore: form.Anxiety,
		Symptoms:     form.Symptoms,
		Notes:        form.Notes,
	})
	if err != nil {
		return CheckInResult{Lifestyle: lifestyle}, err
	}

	return CheckInResult{
		Mood:        mood,
		Lifestyle:   lifestyle,
		NeedsCoping: form.Anxiety >= constants.CopingThreshold,
	}, nil
}
