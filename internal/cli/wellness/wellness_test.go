package wellness

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/julianstephens/mindcalm/internal/assist"
	"github.com/julianstephens/mindcalm/internal/breathing"
	"github.com/julianstephens/mindcalm/internal/cli/clitest"
	"github.com/julianstephens/mindcalm/internal/models"
	"github.com/julianstephens/mindcalm/internal/tracker"
)

const planReply = `[{"title":"Full Body A","dayOfWeek":1,"exercises":[{"name":"Goblet Squat","sets":3,"reps":"10"},{"name":"Push-up","sets":3,"reps":"8-12"}]},{"title":"Full Body B","dayOfWeek":4,"exercises":[{"name":"Row","sets":3,"reps":"10"}]}]`

func TestGuide_StopsAtLimit(t *testing.T) {
	tech, err := breathing.Lookup("box")
	if err != nil {
		t.Fatal(err)
	}
	clock := clitest.Now
	coach := breathing.NewCoach(tech, 7, func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	})

	ticks := make(chan time.Time, 100)
	for range 100 {
		ticks <- clitest.Now
	}

	var out bytes.Buffer
	seconds, ok := guide(context.Background(), coach, ticks, 12*time.Second, &out)
	if !ok || seconds < 12 {
		t.Errorf("guide() = %d, %t; want at least 12s kept", seconds, ok)
	}
	for _, want := range []string{"Inhale", "Hold", "Exhale"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
	if coach.Running() {
		t.Error("coach should be stopped")
	}
}

func TestGuide_CancelledEarly(t *testing.T) {
	tech, _ := breathing.Lookup("panic")
	coach := breathing.NewCoach(tech, 0, func() time.Time { return clitest.Now })

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	seconds, ok := guide(ctx, coach, make(chan time.Time), 0, &bytes.Buffer{})
	if ok || seconds != 0 {
		t.Errorf("guide() = %d, %t; want 0, false", seconds, ok)
	}
}

func TestBreatheLogCmd(t *testing.T) {
	ctx, tr := clitest.New(t, nil)

	if err := (&BreatheLogCmd{Technique: "4-7-8", Minutes: 5, Before: 8, After: 4}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	// Zero minutes is below the minimum and silently skipped.
	if err := (&BreatheLogCmd{Technique: "box", Minutes: 0, Before: 5, After: 5}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	sessions := tr.BreathingSessions()
	if len(sessions) != 1 {
		t.Fatalf("expected 1 session, got %d", len(sessions))
	}
	if sessions[0].DurationSeconds != 300 || sessions[0].Technique != "4-7-8" {
		t.Errorf("unexpected session: %+v", sessions[0])
	}

	if err := (&BreatheLogCmd{Technique: "yoga", Minutes: 5, Before: 5, After: 5}).Run(ctx); err == nil {
		t.Error("expected error for unknown technique")
	}
	if err := (&BreatheLogCmd{Technique: "box", Minutes: 5, Before: 0, After: 5}).Run(ctx); !errors.Is(err, tracker.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
	if err := (&BreatheHistoryCmd{}).Run(ctx); err != nil {
		t.Error(err)
	}
}

func TestGAD7TakeCmd(t *testing.T) {
	tests := []struct {
		name    string
		answers []int
		want    models.GAD7Interpretation
		wantErr bool
	}{
		{"minimal", []int{0, 0, 1, 0, 1, 0, 0}, models.GAD7Minimal, false},
		{"moderate", []int{2, 2, 2, 1, 1, 1, 2}, models.GAD7Moderate, false},
		{"severe", []int{3, 3, 3, 3, 3, 3, 3}, models.GAD7Severe, false},
		{"too few answers", []int{1, 2, 3}, "", true},
		{"answer out of range", []int{0, 0, 0, 0, 0, 0, 4}, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, tr := clitest.New(t, nil)
			err := (&GAD7TakeCmd{Answers: tt.answers}).Run(ctx)
			if tt.wantErr {
				if !errors.Is(err, tracker.ErrInvalidInput) {
					t.Errorf("expected ErrInvalidInput, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			hist := tr.GAD7History()
			if len(hist) != 1 || hist[0].Interpretation != tt.want {
				t.Errorf("unexpected history: %+v", hist)
			}
		})
	}
}

func TestWorkoutPlanCmd(t *testing.T) {
	gen := &clitest.Generator{Reply: planReply}
	ctx, tr := clitest.New(t, gen)

	if err := (&WorkoutPlanCmd{Level: "Beginner", Equipment: []string{"Dumbbells"}, Days: 2}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if len(tr.Workouts()) != 0 {
		t.Fatal("plan without --save must not replace the schedule")
	}

	if err := (&WorkoutPlanCmd{Level: "Beginner", Days: 2, Save: true}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	ws := tr.Workouts()
	var titles []string
	for _, w := range ws {
		titles = append(titles, w.Title)
	}
	if diff := cmp.Diff([]string{"Full Body A", "Full Body B"}, titles); diff != "" {
		t.Errorf("unexpected workouts (-want +got):\n%s", diff)
	}
	if !strings.Contains(gen.Prompts[0], "Dumbbells") {
		t.Errorf("prompt missing equipment: %q", gen.Prompts[0])
	}
}

func TestWorkoutPlanCmd_Rejects(t *testing.T) {
	ctx, _ := clitest.New(t, nil)
	if err := (&WorkoutPlanCmd{Level: "Beginner", Days: 3}).Run(ctx); !errors.Is(err, assist.ErrNoAPIKey) {
		t.Errorf("expected ErrNoAPIKey, got %v", err)
	}
	if err := (&WorkoutPlanCmd{Level: "Beginner", Days: 9}).Run(ctx); !errors.Is(err, tracker.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}

	empty, _ := clitest.New(t, &clitest.Generator{Reply: "not json"})
	if err := (&WorkoutPlanCmd{Level: "Beginner", Days: 3}).Run(empty); err == nil {
		t.Error("expected error for an empty plan")
	}
}

func TestWorkoutAndExerciseCmds(t *testing.T) {
	ctx, tr := clitest.New(t, &clitest.Generator{Reply: planReply})
	if err := (&WorkoutPlanCmd{Level: "Beginner", Days: 2, Save: true}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	w := tr.Workouts()[0]

	if err := (&ExerciseAddCmd{Workout: w.ID, Name: "Plank", Sets: 2, Reps: "30s"}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	exercises := tr.Workouts()[0].Exercises
	plank := exercises[len(exercises)-1]
	if plank.Name != "Plank" {
		t.Fatalf("expected Plank last, got %+v", exercises)
	}

	weight := 12.5
	if err := (&ExerciseEditCmd{Workout: w.ID, Exercise: plank.ID, Sets: 3, Weight: &weight}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if err := (&ExerciseToggleCmd{Workout: w.ID, Exercise: plank.ID}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	got := tr.Workouts()[0].Exercises[len(exercises)-1]
	want := models.Exercise{ID: plank.ID, Name: "Plank", Sets: 3, Reps: "30s", Weight: 12.5, Completed: true}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("unexpected exercise (-want +got):\n%s", diff)
	}

	if err := (&ExerciseDeleteCmd{Workout: w.ID, Exercise: plank.ID}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if err := (&ExerciseEditCmd{Workout: w.ID, Exercise: plank.ID}).Run(ctx); !errors.Is(err, tracker.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	if err := (&WorkoutDoneCmd{ID: w.ID, Minutes: 35, MoodBefore: 4, MoodAfter: 7, Difficulty: 6}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	done := tr.Workouts()[0]
	if !done.Completed || done.DateCompleted == nil || done.MoodAfter != 7 {
		t.Errorf("unexpected workout: %+v", done)
	}
	if err := (&WorkoutToggleCmd{ID: w.ID}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if tr.Workouts()[0].Completed {
		t.Error("toggle should clear completion")
	}
	if err := (&WorkoutListCmd{}).Run(ctx); err != nil {
		t.Error(err)
	}
}
