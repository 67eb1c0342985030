package tracker

import (
	"fmt"
	"strings"

	"github.com/julianstephens/mindcalm/internal/constants"
	"github.com/julianstephens/mindcalm/internal/models"
)

// AddBreathingSession stores a session at the front of the history. Sessions
// shorter than the minimum are dropped and reported as not saved.
func (t *Tracker) AddBreathingSession(s models.BreathingSession) (bool, error) {
	if s.DurationSeconds < constants.MinBreathingSeconds {
		return false, nil
	}
	if s.ID == "" {
		s.ID = t.newID()
	}
	if s.Date.IsZero() {
		s.Date = t.now()
	}
	t.breathing = append([]models.BreathingSession{s}, t.breathing...)
	return true, t.save(constants.KeyBreathingSessions, t.breathing)
}

// SubmitGAD7 scores seven answers (0-3 each) and appends the result.
func (t *Tracker) SubmitGAD7(answers []int) (models.GAD7Result, error) {
	if len(answers) != len(constants.GAD7Questions) {
		return models.GAD7Result{}, fmt.Errorf("%w: expected %d answers, got %d", ErrInvalidInput, len(constants.GAD7Questions), len(answers))
	}
	score := 0
	for i, a := range answers {
		if a < 0 || a > constants.GAD7MaxAnswer {
			return models.GAD7Result{}, fmt.Errorf("%w: answer %d out of range", ErrInvalidInput, i+1)
		}
		score += a
	}
	r := models.GAD7Result{
		ID:             t.newID(),
		Date:           t.now(),
		Score:          score,
		Interpretation: models.InterpretGAD7(score),
	}
	t.gad7 = append(t.gad7, r)
	return r, t.save(constants.KeyGAD7History, t.gad7)
}

// LatestGAD7 returns the most recent score, or nil when none was taken.
func (t *Tracker) LatestGAD7() *int {
	if len(t.gad7) == 0 {
		return nil
	}
	s := t.gad7[len(t.gad7)-1].Score
	return &s
}

func (t *Tracker) Theme() models.Theme { return t.theme }

func (t *Tracker) SetTheme(theme models.Theme) error {
	if theme != models.ThemeLight && theme != models.ThemeDark {
		return fmt.Errorf("%w: theme %q", ErrInvalidInput, theme)
	}
	t.theme = theme
	return t.save(constants.KeyTheme, theme)
}

func (t *Tracker) ToggleTheme() (models.Theme, error) {
	next := models.ThemeDark
	if t.theme == models.ThemeDark {
		next = models.ThemeLight
	}
	return next, t.SetTheme(next)
}

// ReplaceWorkouts swaps the whole schedule for a freshly generated plan.
// Every workout and exercise gets a new id.
func (t *Tracker) ReplaceWorkouts(plan []models.Workout) ([]models.Workout, error) {
	out := make([]models.Workout, 0, len(plan))
	for _, w := range plan {
		fresh := models.Workout{
			ID:        t.newID(),
			Title:     w.Title,
			DayOfWeek: w.DayOfWeek,
		}
		for _, e := range w.Exercises {
			fresh.Exercises = append(fresh.Exercises, models.Exercise{
				ID:   t.newID(),
				Name: e.Name,
				Sets: e.Sets,
				Reps: e.Reps,
			})
		}
		out = append(out, fresh)
	}
	t.workouts = out
	return t.Workouts(), t.save(constants.KeyWorkouts, t.workouts)
}

func (t *Tracker) workoutIndex(id string) (int, error) {
	return indexOf(t.workouts, id, func(w models.Workout) string { return w.ID })
}

func (t *Tracker) ToggleWorkout(id string) (models.Workout, error) {
	i, err := t.workoutIndex(id)
	if err != nil {
		return models.Workout{}, err
	}
	t.workouts[i].Completed = !t.workouts[i].Completed
	return t.workouts[i].Clone(), t.save(constants.KeyWorkouts, t.workouts)
}

// WorkoutResult is recorded when a session is finished.
type WorkoutResult struct {
	MoodBefore       int
	MoodAfter        int
	DurationMinutes  int
	DifficultyRating int
}

func (t *Tracker) CompleteWorkout(id string, res WorkoutResult) (models.Workout, error) {
	i, err := t.workoutIndex(id)
	if err != nil {
		return models.Workout{}, err
	}
	now := t.now()
	w := &t.workouts[i]
	w.Completed = true
	w.DateCompleted = &now
	w.MoodBefore = res.MoodBefore
	w.MoodAfter = res.MoodAfter
	w.DurationMinutes = res.DurationMinutes
	w.DifficultyRating = res.DifficultyRating
	return w.Clone(), t.save(constants.KeyWorkouts, t.workouts)
}

// AddExercise appends an exercise; zero sets and empty reps take defaults.
func (t *Tracker) AddExercise(workoutID string, e models.Exercise) (models.Exercise, error) {
	i, err := t.workoutIndex(workoutID)
	if err != nil {
		return models.Exercise{}, err
	}
	e.Name = strings.TrimSpace(e.Name)
	if e.Name == "" {
		return models.Exercise{}, fmt.Errorf("%w: exercise name", ErrRequired)
	}
	e.ID = t.newID()
	e.Completed = false
	if e.Sets == 0 {
		e.Sets = constants.DefaultExerciseSets
	}
	if e.Reps == "" {
		e.Reps = constants.DefaultExerciseReps
	}
	t.workouts[i].Exercises = append(t.workouts[i].Exercises, e)
	return e, t.save(constants.KeyWorkouts, t.workouts)
}

func (t *Tracker) exerciseIndex(workoutID, exerciseID string) (int, int, error) {
	wi, err := t.workoutIndex(workoutID)
	if err != nil {
		return -1, -1, err
	}
	ei, err := indexOf(t.workouts[wi].Exercises, exerciseID, func(e models.Exercise) string { return e.ID })
	if err != nil {
		return -1, -1, err
	}
	return wi, ei, nil
}

// UpdateExercise replaces the details of an existing exercise, keeping its id.
func (t *Tracker) UpdateExercise(workoutID string, e models.Exercise) (models.Exercise, error) {
	wi, ei, err := t.exerciseIndex(workoutID, e.ID)
	if err != nil {
		return models.Exercise{}, err
	}
	t.workouts[wi].Exercises[ei] = e
	return e, t.save(constants.KeyWorkouts, t.workouts)
}

func (t *Tracker) ToggleExercise(workoutID, exerciseID string) (models.Exercise, error) {
	wi, ei, err := t.exerciseIndex(workoutID, exerciseID)
	if err != nil {
		return models.Exercise{}, err
	}
	ex := &t.workouts[wi].Exercises[ei]
	ex.Completed = !ex.Completed
	return *ex, t.save(constants.KeyWorkouts, t.workouts)
}

func (t *Tracker) DeleteExercise(workoutID, exerciseID string) error {
	wi, ei, err := t.exerciseIndex(workoutID, exerciseID)
	if err != nil {
		return err
	}
	list := t.workouts[wi].Exercises
	t.workouts[wi].Exercises = append(list[:ei:ei], list[ei+1:]...)
	return t.save(constants.KeyWorkouts, t.workouts)
}
