// Package validation checks tracked data for integrity problems: duplicate
// ids, out-of-range ratings, malformed times and entries dated in the future.
package validation

import (
	"fmt"
	"time"

	"github.com/julianstephens/mindcalm/internal/constants"
	"github.com/julianstephens/mindcalm/internal/models"
	"github.com/julianstephens/mindcalm/internal/utils"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictDuplicateID     ConflictType = "duplicate_id"
	ConflictOutOfRange      ConflictType = "out_of_range"
	ConflictInvalidDateTime ConflictType = "invalid_datetime"
	ConflictFutureDate      ConflictType = "future_date"
	ConflictScoreMismatch   ConflictType = "score_mismatch"
)

// Conflict represents one detected problem
type Conflict struct {
	Type        ConflictType
	Key         string // storage key of the collection
	Description string
	IDs         []string
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// FixAction represents an action taken during auto-fix
type FixAction struct {
	Action         string
	SourceConflict Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	report := "Conflicts detected:\n"
	for _, conflict := range vr.Conflicts {
		report += fmt.Sprintf("- [%s] %s\n", conflict.Key, conflict.Description)
	}
	return report
}

// Input is the tracked data under validation.
type Input struct {
	Moods       []models.MoodEntry
	Lifestyle   []models.LifestyleEntry
	Thoughts    []models.ThoughtRecord
	Worries     []models.PostponedWorry
	Medications []models.Medication
	MedLogs     []models.MedicationLog
	Activities  []models.ActivityPlan
	Breathing   []models.BreathingSession
	GAD7        []models.GAD7Result
	Workouts    []models.Workout
	Now         time.Time
}

// futureSlack tolerates clock skew between devices writing the same store.
const futureSlack = 5 * time.Minute

type Validator struct {
	result ValidationResult
	now    time.Time
}

func New() *Validator {
	return &Validator{}
}

// Validate runs every check over in.
func (v *Validator) Validate(in Input) ValidationResult {
	v.result = ValidationResult{}
	v.now = in.Now
	if v.now.IsZero() {
		v.now = time.Now()
	}

	duplicates(v, constants.KeyMoods, in.Moods, func(m models.MoodEntry) string { return m.ID })
	duplicates(v, constants.KeyThoughts, in.Thoughts, func(t models.ThoughtRecord) string { return t.ID })
	duplicates(v, constants.KeyWorries, in.Worries, func(w models.PostponedWorry) string { return w.ID })
	duplicates(v, constants.KeyMedications, in.Medications, func(m models.Medication) string { return m.ID })
	duplicates(v, constants.KeyMedLogs, in.MedLogs, func(l models.MedicationLog) string { return l.ID })
	duplicates(v, constants.KeyActivities, in.Activities, func(a models.ActivityPlan) string { return a.ID })
	duplicates(v, constants.KeyBreathingSessions, in.Breathing, func(b models.BreathingSession) string { return b.ID })
	duplicates(v, constants.KeyGAD7History, in.GAD7, func(g models.GAD7Result) string { return g.ID })
	duplicates(v, constants.KeyWorkouts, in.Workouts, func(w models.Workout) string { return w.ID })

	for _, m := range in.Moods {
		v.rangeCheck(constants.KeyMoods, m.ID, "wellness score", m.Score, 1, 10)
		v.rangeCheck(constants.KeyMoods, m.ID, "anxiety score", m.AnxietyScore, 1, 10)
		v.future(constants.KeyMoods, m.ID, m.Date)
	}
	for i, l := range in.Lifestyle {
		ref := fmt.Sprintf("#%d", i+1)
		if l.SleepQuality != 0 {
			v.rangeCheck(constants.KeyLifestyle, ref, "sleep quality", l.SleepQuality, 1, 5)
		}
		if l.SleepHours < 0 || l.SleepHours > 24 {
			v.add(ConflictOutOfRange, constants.KeyLifestyle, fmt.Sprintf("entry %s has %.1f hours of sleep", ref, l.SleepHours))
		}
		v.clock(constants.KeyLifestyle, ref, "bed time", l.BedTime)
		v.clock(constants.KeyLifestyle, ref, "wake time", l.WakeTime)
		v.future(constants.KeyLifestyle, ref, l.Date)
	}
	for _, t := range in.Thoughts {
		v.rangeCheck(constants.KeyThoughts, t.ID, "intensity before", t.IntensityBefore, 0, 10)
		v.rangeCheck(constants.KeyThoughts, t.ID, "intensity after", t.IntensityAfter, 0, 10)
		v.future(constants.KeyThoughts, t.ID, t.Date)
	}
	for _, m := range in.Medications {
		if m.RefillDate != "" && !utils.ValidateDateFormat(m.RefillDate) {
			v.add(ConflictInvalidDateTime, constants.KeyMedications, fmt.Sprintf("%s has an invalid refill date %q", m.Name, m.RefillDate), m.ID)
		}
		for i, step := range m.TaperSchedule {
			if !utils.ValidateDateFormat(step.Date) {
				v.add(ConflictInvalidDateTime, constants.KeyMedications, fmt.Sprintf("%s taper step %d has an invalid date %q", m.Name, i+1, step.Date), m.ID)
			}
		}
	}
	for _, l := range in.MedLogs {
		if l.EfficacyRating != 0 {
			v.rangeCheck(constants.KeyMedLogs, l.ID, "efficacy", l.EfficacyRating, 1, 10)
		}
		v.future(constants.KeyMedLogs, l.ID, l.Date)
	}
	for _, a := range in.Activities {
		v.rangeCheck(constants.KeyActivities, a.ID, "difficulty", a.Difficulty, constants.MinActivityDifficulty, constants.MaxActivityDifficulty)
	}
	for _, g := range in.GAD7 {
		v.rangeCheck(constants.KeyGAD7History, g.ID, "score", g.Score, 0, 7*constants.GAD7MaxAnswer)
		if want := models.InterpretGAD7(g.Score); g.Interpretation != want {
			v.add(ConflictScoreMismatch, constants.KeyGAD7History, fmt.Sprintf("result %s scores %d but is labelled %q (expected %q)", g.ID, g.Score, g.Interpretation, want), g.ID)
		}
		v.future(constants.KeyGAD7History, g.ID, g.Date)
	}
	for _, w := range in.Workouts {
		if w.DayOfWeek < 0 || w.DayOfWeek > 6 {
			v.add(ConflictOutOfRange, constants.KeyWorkouts, fmt.Sprintf("workout %q has day of week %d", w.Title, w.DayOfWeek), w.ID)
		}
	}

	return v.result
}

func (v *Validator) add(t ConflictType, key, desc string, ids ...string) {
	v.result.Conflicts = append(v.result.Conflicts, Conflict{Type: t, Key: key, Description: desc, IDs: ids})
}

func (v *Validator) rangeCheck(key, id, field string, value, lo, hi int) {
	if value < lo || value > hi {
		v.add(ConflictOutOfRange, key, fmt.Sprintf("entry %s has %s %d (expected %d-%d)", id, field, value, lo, hi), id)
	}
}

func (v *Validator) clock(key, ref, field, value string) {
	if value != "" && !utils.ValidateTimeFormat(value) {
		v.add(ConflictInvalidDateTime, key, fmt.Sprintf("entry %s has invalid %s %q (expected HH:MM)", ref, field, value))
	}
}

func (v *Validator) future(key, id string, date time.Time) {
	if date.After(v.now.Add(futureSlack)) {
		v.add(ConflictFutureDate, key, fmt.Sprintf("entry %s is dated in the future (%s)", id, date.Format(constants.DateFormat)), id)
	}
}

func duplicates[T any](v *Validator, key string, items []T, idOf func(T) string) {
	seen := map[string]int{}
	for _, item := range items {
		if id := idOf(item); id != "" {
			seen[id]++
		}
	}
	reported := map[string]bool{}
	for _, item := range items {
		id := idOf(item)
		if seen[id] > 1 && !reported[id] {
			reported[id] = true
			v.add(ConflictDuplicateID, key, fmt.Sprintf("id %s appears %d times", id, seen[id]), id)
		}
	}
}

// Dedupe keeps the first occurrence of each id.
func Dedupe[T any](items []T, idOf func(T) string) []T {
	seen := map[string]bool{}
	out := make([]T, 0, len(items))
	for _, item := range items {
		id := idOf(item)
		if id != "" && seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, item)
	}
	return out
}

// AutoFixDuplicates rewrites every collection with duplicate ids through save,
// keeping the first occurrence of each id. Other conflicts need a human.
func AutoFixDuplicates(conflicts []Conflict, in Input, save func(key string, v any) error) ([]FixAction, error) {
	done := map[string]bool{}
	var actions []FixAction
	for _, c := range conflicts {
		if c.Type != ConflictDuplicateID || done[c.Key] {
			continue
		}
		done[c.Key] = true

		var fixed any
		switch c.Key {
		case constants.KeyMoods:
			fixed = Dedupe(in.Moods, func(m models.MoodEntry) string { return m.ID })
		case constants.KeyThoughts:
			fixed = Dedupe(in.Thoughts, func(t models.ThoughtRecord) string { return t.ID })
		case constants.KeyWorries:
			fixed = Dedupe(in.Worries, func(w models.PostponedWorry) string { return w.ID })
		case constants.KeyMedications:
			fixed = Dedupe(in.Medications, func(m models.Medication) string { return m.ID })
		case constants.KeyMedLogs:
			fixed = Dedupe(in.MedLogs, func(l models.MedicationLog) string { return l.ID })
		case constants.KeyActivities:
			fixed = Dedupe(in.Activities, func(a models.ActivityPlan) string { return a.ID })
		case constants.KeyBreathingSessions:
			fixed = Dedupe(in.Breathing, func(b models.BreathingSession) string { return b.ID })
		case constants.KeyGAD7History:
			fixed = Dedupe(in.GAD7, func(g models.GAD7Result) string { return g.ID })
		case constants.KeyWorkouts:
			fixed = Dedupe(in.Workouts, func(w models.Workout) string { return w.ID })
		default:
			continue
		}
		if err := save(c.Key, fixed); err != nil {
			return actions, fmt.Errorf("failed to rewrite %s: %w", c.Key, err)
		}
		actions = append(actions, FixAction{
			Action:         fmt.Sprintf("Removed duplicate entries from %s", c.Key),
			SourceConflict: c,
		})
	}
	return actions, nil
}
