package tracker

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/mindcalm/internal/analytics"
	"github.com/julianstephens/mindcalm/internal/constants"
	"github.com/julianstephens/mindcalm/internal/models"
	"github.com/julianstephens/mindcalm/internal/utils"
)

// AddWorry postpones a worry to the next worry window. Blank text is rejected.
func (t *Tracker) AddWorry(text string) (models.PostponedWorry, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.PostponedWorry{}, ErrRequired
	}
	w := models.PostponedWorry{
		ID:         t.newID(),
		Text:       text,
		DateLogged: t.now(),
	}
	t.worries = append([]models.PostponedWorry{w}, t.worries...)
	return w, t.save(constants.KeyWorries, t.worries)
}

func (t *Tracker) ToggleWorry(id string) (models.PostponedWorry, error) {
	i, err := indexOf(t.worries, id, func(w models.PostponedWorry) string { return w.ID })
	if err != nil {
		return models.PostponedWorry{}, err
	}
	t.worries[i].Processed = !t.worries[i].Processed
	return t.worries[i], t.save(constants.KeyWorries, t.worries)
}

func (t *Tracker) DeleteWorry(id string) error {
	i, err := indexOf(t.worries, id, func(w models.PostponedWorry) string { return w.ID })
	if err != nil {
		return err
	}
	t.worries = append(t.worries[:i:i], t.worries[i+1:]...)
	return t.save(constants.KeyWorries, t.worries)
}

func (t *Tracker) ActiveWorries() []models.PostponedWorry {
	return filterWorries(t.worries, false)
}

func (t *Tracker) ProcessedWorries() []models.PostponedWorry {
	return filterWorries(t.worries, true)
}

func filterWorries(all []models.PostponedWorry, processed bool) []models.PostponedWorry {
	var out []models.PostponedWorry
	for _, w := range all {
		if w.Processed == processed {
			out = append(out, w)
		}
	}
	return out
}

// WorrySchedule returns the daily start time (HH:MM) and length in minutes.
func (t *Tracker) WorrySchedule() (string, int) {
	return t.worryTime, t.worryDuration
}

func (t *Tracker) SetWorrySchedule(start string, minutes int) error {
	if !utils.ValidateTimeFormat(start) {
		return fmt.Errorf("%w: worry time %q must be HH:MM", ErrInvalidInput, start)
	}
	if minutes <= 0 {
		return fmt.Errorf("%w: worry duration must be positive", ErrInvalidInput)
	}
	t.worryTime, t.worryDuration = start, minutes
	if err := t.save(constants.KeyWorryScheduleTime, start); err != nil {
		return err
	}
	return t.save(constants.KeyWorryScheduleDuration, minutes)
}

// IsWorryTime reports whether now falls inside today's worry window,
// inclusive at both ends.
func (t *Tracker) IsWorryTime(now time.Time) bool {
	minutes, err := utils.ParseTimeToMinutes(t.worryTime)
	if err != nil {
		return false
	}
	start := analytics.StartOfDay(now).Add(time.Duration(minutes) * time.Minute)
	end := start.Add(time.Duration(t.worryDuration) * time.Minute)
	return !now.Before(start) && !now.After(end)
}
