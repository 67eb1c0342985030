package wellness

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/mindcalm/internal/assist"
	"github.com/julianstephens/mindcalm/internal/cli"
	"github.com/julianstephens/mindcalm/internal/models"
	"github.com/julianstephens/mindcalm/internal/tracker"
)

type WorkoutCmd struct {
	Plan     WorkoutPlanCmd     `cmd:"" help:"Generate a weekly strength plan."`
	List     WorkoutListCmd     `cmd:"" default:"withargs" help:"Show the workout schedule."`
	Toggle   WorkoutToggleCmd   `cmd:"" help:"Toggle a workout's completion."`
	Done     WorkoutDoneCmd     `cmd:"" help:"Finish a workout and record how it went."`
	Exercise WorkoutExerciseCmd `cmd:"" help:"Edit a workout's exercises."`
}

type WorkoutPlanCmd struct {
	Level     string   `short:"l" default:"Beginner" enum:"Beginner,Intermediate,Advanced" help:"Fitness level."`
	Equipment []string `short:"e" sep:"," help:"Available equipment."`
	Days      int      `short:"d" default:"3" help:"Workouts per week."`
	Save      bool     `help:"Replace the current schedule with the plan."`
}

func (c *WorkoutPlanCmd) Run(ctx *cli.Context) error {
	if c.Days < 1 || c.Days > 7 {
		return fmt.Errorf("%w: days must be 1-7", tracker.ErrInvalidInput)
	}
	bg := context.Background()
	ai := ctx.Assistant(bg)
	if !ai.Enabled() {
		return fmt.Errorf("workout plans need the assistant: %w", assist.ErrNoAPIKey)
	}

	plan := ai.WorkoutPlan(bg, assist.WorkoutRequest{Level: c.Level, Equipment: c.Equipment, DaysPerWeek: c.Days})
	if len(plan) == 0 {
		return fmt.Errorf("the assistant returned no workouts, try again")
	}
	if !c.Save {
		printWorkouts(plan)
		fmt.Println("\nRun again with --save to use this plan.")
		return nil
	}

	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}
	saved, err := tr.ReplaceWorkouts(plan)
	if err != nil {
		return err
	}
	printWorkouts(saved)
	return nil
}

func printWorkouts(ws []models.Workout) {
	for i, w := range ws {
		if i > 0 {
			fmt.Println()
		}
		mark := " "
		if w.Completed {
			mark = "x"
		}
		id := ""
		if w.ID != "" {
			id = " (ID: " + w.ID + ")"
		}
		fmt.Printf("[%s] %s: %s%s\n", mark, time.Weekday(w.DayOfWeek%7), w.Title, id)
		for _, e := range w.Exercises {
			emark := " "
			if e.Completed {
				emark = "x"
			}
			line := fmt.Sprintf("    [%s] %s  %d x %s", emark, e.Name, e.Sets, e.Reps)
			if e.Weight > 0 {
				line += fmt.Sprintf(" @ %gkg", e.Weight)
			}
			if e.ID != "" {
				line += "  (" + e.ID + ")"
			}
			fmt.Println(line)
		}
	}
}

type WorkoutListCmd struct {
	JSON bool `help:"Print as JSON."`
}

func (c *WorkoutListCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}
	ws := tr.Workouts()
	if c.JSON {
		return cli.PrintJSON(ws)
	}
	if len(ws) == 0 {
		fmt.Println("No workouts scheduled. Generate a plan with 'workout plan --save'.")
		return nil
	}
	printWorkouts(ws)
	return nil
}

type WorkoutToggleCmd struct {
	ID string `arg:"" help:"Workout ID."`
}

func (c *WorkoutToggleCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}
	w, err := tr.ToggleWorkout(c.ID)
	if err != nil {
		return fmt.Errorf("failed to update workout: %w", err)
	}
	fmt.Printf("%s: completed=%t\n", w.Title, w.Completed)
	return nil
}

type WorkoutDoneCmd struct {
	ID         string `arg:"" help:"Workout ID."`
	Minutes    int    `short:"m" help:"How long it took."`
	MoodBefore int    `help:"Mood before (1-10)."`
	MoodAfter  int    `help:"Mood after (1-10)."`
	Difficulty int    `help:"How hard it felt (1-10)."`
}

func (c *WorkoutDoneCmd) Run(ctx *cli.Context) error {
	for _, v := range []int{c.MoodBefore, c.MoodAfter, c.Difficulty} {
		if v < 0 || v > 10 {
			return fmt.Errorf("%w: ratings must be 1-10", tracker.ErrInvalidInput)
		}
	}
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}
	w, err := tr.CompleteWorkout(c.ID, tracker.WorkoutResult{
		MoodBefore:       c.MoodBefore,
		MoodAfter:        c.MoodAfter,
		DurationMinutes:  c.Minutes,
		DifficultyRating: c.Difficulty,
	})
	if err != nil {
		return fmt.Errorf("failed to complete workout: %w", err)
	}
	fmt.Printf("Completed %s", w.Title)
	if w.MoodBefore > 0 && w.MoodAfter > 0 {
		fmt.Printf(" (mood %d -> %d)", w.MoodBefore, w.MoodAfter)
	}
	fmt.Println()
	return nil
}

type WorkoutExerciseCmd struct {
	Add    ExerciseAddCmd    `cmd:"" help:"Add an exercise."`
	Edit   ExerciseEditCmd   `cmd:"" help:"Change an exercise's details."`
	Toggle ExerciseToggleCmd `cmd:"" help:"Toggle an exercise's completion."`
	Delete ExerciseDeleteCmd `cmd:"" help:"Remove an exercise."`
}

type ExerciseAddCmd struct {
	Workout string  `arg:"" help:"Workout ID."`
	Name    string  `arg:"" help:"Exercise name."`
	Sets    int     `help:"Number of sets." default:"3"`
	Reps    string  `help:"Reps per set, e.g. 10 or 8-12." default:"10"`
	Weight  float64 `help:"Weight in kg."`
	Notes   string  `help:"Notes."`
}

func (c *ExerciseAddCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}
	e, err := tr.AddExercise(c.Workout, models.Exercise{Name: c.Name, Sets: c.Sets, Reps: c.Reps, Weight: c.Weight, Notes: c.Notes})
	if err != nil {
		return fmt.Errorf("failed to add exercise: %w", err)
	}
	fmt.Printf("Added %s (ID: %s)\n", e.Name, e.ID)
	return nil
}

type ExerciseEditCmd struct {
	Workout  string   `arg:"" help:"Workout ID."`
	Exercise string   `arg:"" help:"Exercise ID."`
	Name     string   `help:"New name."`
	Sets     int      `help:"New number of sets."`
	Reps     string   `help:"New reps."`
	Weight   *float64 `help:"New weight in kg."`
	Notes    *string  `help:"New notes."`
}

func (c *ExerciseEditCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}
	e, err := findExercise(tr, c.Workout, c.Exercise)
	if err != nil {
		return err
	}
	if name := strings.TrimSpace(c.Name); name != "" {
		e.Name = name
	}
	if c.Sets > 0 {
		e.Sets = c.Sets
	}
	if c.Reps != "" {
		e.Reps = c.Reps
	}
	if c.Weight != nil {
		e.Weight = *c.Weight
	}
	if c.Notes != nil {
		e.Notes = *c.Notes
	}
	if _, err := tr.UpdateExercise(c.Workout, e); err != nil {
		return fmt.Errorf("failed to update exercise: %w", err)
	}
	fmt.Printf("Updated %s: %d x %s\n", e.Name, e.Sets, e.Reps)
	return nil
}

func findExercise(tr *tracker.Tracker, workoutID, exerciseID string) (models.Exercise, error) {
	for _, w := range tr.Workouts() {
		if w.ID != workoutID {
			continue
		}
		for _, e := range w.Exercises {
			if e.ID == exerciseID {
				return e, nil
			}
		}
		return models.Exercise{}, fmt.Errorf("%w: exercise %s", tracker.ErrNotFound, exerciseID)
	}
	return models.Exercise{}, fmt.Errorf("%w: workout %s", tracker.ErrNotFound, workoutID)
}

type ExerciseToggleCmd struct {
	Workout  string `arg:"" help:"Workout ID."`
	Exercise string `arg:"" help:"Exercise ID."`
}

func (c *ExerciseToggleCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}
	e, err := tr.ToggleExercise(c.Workout, c.Exercise)
	if err != nil {
		return fmt.Errorf("failed to update exercise: %w", err)
	}
	fmt.Printf("%s: completed=%t\n", e.Name, e.Completed)
	return nil
}

type ExerciseDeleteCmd struct {
	Workout  string `arg:"" help:"Workout ID."`
	Exercise string `arg:"" help:"Exercise ID."`
}

func (c *ExerciseDeleteCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}
	if err := tr.DeleteExercise(c.Workout, c.Exercise); err != nil {
		return fmt.Errorf("failed to delete exercise: %w", err)
	}
	fmt.Printf("Deleted exercise (ID: %s)\n", c.Exercise)
	return nil
}
