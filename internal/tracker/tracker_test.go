package tracker

import (
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/julianstephens/mindcalm/internal/constants"
	"github.com/julianstephens/mindcalm/internal/models"
	"github.com/julianstephens/mindcalm/internal/storage/sqlite"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func setupTracker(t *testing.T) (*Tracker, *sqlite.Store, *fakeClock) {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "mindcalm.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	clock := &fakeClock{t: time.Date(2025, 3, 15, 10, 0, 0, 0, time.Local)}
	tr := New(store, WithClock(clock.Now), WithIDs(sequentialIDs()))
	if err := tr.Load(); err != nil {
		t.Fatalf("failed to load tracker: %v", err)
	}
	return tr, store, clock
}

// reload builds a second tracker over the same store to check persistence.
func reload(t *testing.T, tr *Tracker) *Tracker {
	t.Helper()
	fresh := New(tr.store, WithClock(tr.now))
	if err := fresh.Load(); err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	return fresh
}

func TestLoadDefaults(t *testing.T) {
	tr, _, _ := setupTracker(t)

	if len(tr.Moods()) != 0 || len(tr.Worries()) != 0 {
		t.Error("expected empty collections on a fresh store")
	}
	if tr.Theme() != models.ThemeLight {
		t.Errorf("expected light theme, got %s", tr.Theme())
	}
	start, minutes := tr.WorrySchedule()
	if start != "17:00" || minutes != 20 {
		t.Errorf("expected default worry schedule 17:00/20, got %s/%d", start, minutes)
	}
	if _, ok := tr.Draft(); ok {
		t.Error("expected no draft")
	}
}

func TestLoadIgnoresCorruptDocuments(t *testing.T) {
	tr, store, _ := setupTracker(t)

	if err := store.Set(constants.KeyMoods, []byte("{not json")); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := store.Set(constants.KeyThoughts, []byte(`[{"id":"t1","thought":"x","intensityBefore":5}]`)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	fresh := reload(t, tr)
	if len(fresh.Moods()) != 0 {
		t.Errorf("expected corrupt moods to load empty, got %v", fresh.Moods())
	}
	if len(fresh.Thoughts()) != 1 {
		t.Errorf("expected other keys to load independently, got %d thoughts", len(fresh.Thoughts()))
	}
}

func TestCheckIn(t *testing.T) {
	tr, _, clock := setupTracker(t)

	form := DefaultCheckIn()
	form.Anxiety = 7
	form.Symptoms = []string{"Fatigue"}
	res, err := tr.CheckIn(form)
	if err != nil {
		t.Fatalf("CheckIn failed: %v", err)
	}
	if !res.NeedsCoping {
		t.Error("expected anxiety 7 to trigger a coping suggestion")
	}
	if res.Lifestyle.SleepHours != 7.5 {
		t.Errorf("expected sleep derived from 23:00-06:30 = 7.5, got %v", res.Lifestyle.SleepHours)
	}
	if !res.Mood.Date.Equal(clock.t) || res.Mood.ID != "id-1" {
		t.Errorf("unexpected mood entry: %+v", res.Mood)
	}

	form.Anxiety = 5
	res, err = tr.CheckIn(form)
	if err != nil {
		t.Fatalf("CheckIn failed: %v", err)
	}
	if res.NeedsCoping {
		t.Error("expected anxiety 5 not to trigger coping")
	}

	fresh := reload(t, tr)
	moods := fresh.Moods()
	if len(moods) != 2 || moods[0].AnxietyScore != 7 || len(fresh.Lifestyle()) != 2 {
		t.Errorf("expected moods appended in order, got %+v", moods)
	}
}

func TestThoughtsPrependAndClearDraft(t *testing.T) {
	tr, _, _ := setupTracker(t)

	draft := DefaultDraft()
	if draft.IntensityBefore != 6 || draft.IntensityAfter != 3 || draft.Step != 1 {
		t.Errorf("unexpected default draft: %+v", draft)
	}
	draft.Situation = "meeting"
	draft.Step = 2
	if err := tr.SaveDraft(draft); err != nil {
		t.Fatalf("SaveDraft failed: %v", err)
	}
	if got, ok := reload(t, tr).Draft(); !ok || got.Situation != "meeting" {
		t.Errorf("expected draft to persist, got %+v %v", got, ok)
	}

	first, err := tr.SaveDraftAsThought(draft)
	if err != nil {
		t.Fatalf("SaveDraftAsThought failed: %v", err)
	}
	second, err := tr.AddThought(models.ThoughtRecord{Thought: "later"})
	if err != nil {
		t.Fatalf("AddThought failed: %v", err)
	}

	fresh := reload(t, tr)
	ids := []string{}
	for _, th := range fresh.Thoughts() {
		ids = append(ids, th.ID)
	}
	if diff := cmp.Diff([]string{second.ID, first.ID}, ids); diff != "" {
		t.Errorf("expected newest thought first (-want +got):\n%s", diff)
	}
	if _, ok := fresh.Draft(); ok {
		t.Error("expected draft to be cleared after saving")
	}
}

func TestMergeSuggestions(t *testing.T) {
	if got := MergeEvidence("", "it went fine"); got != "💡 AI Suggestion:\nit went fine" {
		t.Errorf("unexpected merge into empty evidence: %q", got)
	}
	if got := MergeEvidence("I was prepared", "it went fine"); got != "I was prepared\n\n💡 AI Suggestion:\nit went fine" {
		t.Errorf("unexpected merge: %q", got)
	}
	if got := MergeAlternative("mine", "theirs"); got != "mine" {
		t.Errorf("expected existing alternative kept, got %q", got)
	}
	if got := MergeAlternative(" ", "theirs"); got != "theirs" {
		t.Errorf("expected empty alternative filled, got %q", got)
	}
}

func TestWorries(t *testing.T) {
	tr, _, _ := setupTracker(t)

	if _, err := tr.AddWorry("   "); !errors.Is(err, ErrRequired) {
		t.Errorf("expected ErrRequired for blank worry, got %v", err)
	}
	a, _ := tr.AddWorry("rent")
	b, _ := tr.AddWorry("exam")

	if got := tr.Worries(); got[0].ID != b.ID || got[1].ID != a.ID {
		t.Errorf("expected newest worry first, got %+v", got)
	}
	if _, err := tr.ToggleWorry(a.ID); err != nil {
		t.Fatalf("ToggleWorry failed: %v", err)
	}
	if len(tr.ActiveWorries()) != 1 || len(tr.ProcessedWorries()) != 1 {
		t.Errorf("expected one active and one processed worry")
	}
	if err := tr.DeleteWorry(b.ID); err != nil {
		t.Fatalf("DeleteWorry failed: %v", err)
	}
	if err := tr.DeleteWorry("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if got := reload(t, tr).Worries(); len(got) != 1 || !got[0].Processed {
		t.Errorf("unexpected persisted worries: %+v", got)
	}
}

func TestIsWorryTime(t *testing.T) {
	tr, _, _ := setupTracker(t)
	if err := tr.SetWorrySchedule("18:30", 15); err != nil {
		t.Fatalf("SetWorrySchedule failed: %v", err)
	}
	day := func(h, m int) time.Time { return time.Date(2025, 3, 15, h, m, 0, 0, time.Local) }

	tests := []struct {
		at   time.Time
		want bool
	}{
		{day(18, 29), false},
		{day(18, 30), true},
		{day(18, 45), true},
		{day(18, 46), false},
	}
	for _, tt := range tests {
		if got := tr.IsWorryTime(tt.at); got != tt.want {
			t.Errorf("IsWorryTime(%s) = %v, want %v", tt.at.Format("15:04"), got, tt.want)
		}
	}

	if err := tr.SetWorrySchedule("25:99", 15); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
	start, minutes := reload(t, tr).WorrySchedule()
	if start != "18:30" || minutes != 15 {
		t.Errorf("expected persisted schedule 18:30/15, got %s/%d", start, minutes)
	}
}

func TestMedications(t *testing.T) {
	tr, _, clock := setupTracker(t)

	if _, err := tr.AddMedication(models.Medication{Name: "Sertraline"}); !errors.Is(err, ErrRequired) {
		t.Errorf("expected ErrRequired without dosage, got %v", err)
	}
	med, err := tr.AddMedication(models.Medication{Name: "Sertraline", Dosage: "50mg"})
	if err != nil {
		t.Fatalf("AddMedication failed: %v", err)
	}
	if med.Frequency != "Daily" || med.TotalPills != 30 || med.Type != constants.MedOther {
		t.Errorf("expected defaults to be applied, got %+v", med)
	}

	if tr.IsTakenToday(med.ID, clock.t) {
		t.Error("expected dose not taken yet")
	}
	log, err := tr.ConfirmDose(med.ID, "", 0)
	if err != nil {
		t.Fatalf("ConfirmDose failed: %v", err)
	}
	if !log.Taken || log.EfficacyRating != 5 || log.MedicationName != "Sertraline" {
		t.Errorf("unexpected dose log: %+v", log)
	}
	if !tr.IsTakenToday(med.ID, clock.t) {
		t.Error("expected dose to count as taken today")
	}
	if tr.IsTakenToday(med.ID, clock.t.AddDate(0, 0, 1)) {
		t.Error("expected yesterday's dose not to count tomorrow")
	}

	second, _ := tr.ConfirmDose(med.ID, "Nausea", 8)
	if got := tr.MedicationLogs(); got[0].ID != second.ID {
		t.Error("expected newest dose log first")
	}
	got, _ := reload(t, tr).Medication(med.ID)
	if got.TotalPills != 28 {
		t.Errorf("expected 28 pills left, got %d", got.TotalPills)
	}

	if _, err := tr.ConfirmDose("missing", "", 5); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestConfirmDoseKeepsZeroPills(t *testing.T) {
	tr, _, _ := setupTracker(t)
	med, _ := tr.AddMedication(models.Medication{Name: "Buspirone", Dosage: "5mg", TotalPills: 1})

	for i := 0; i < 2; i++ {
		if _, err := tr.ConfirmDose(med.ID, "", 5); err != nil {
			t.Fatalf("ConfirmDose failed: %v", err)
		}
	}
	got, _ := tr.Medication(med.ID)
	if got.TotalPills != 0 {
		t.Errorf("expected pill count to stop at 0, got %d", got.TotalPills)
	}
	if len(tr.MedicationLogs()) != 2 {
		t.Errorf("expected both doses logged")
	}
}

func TestTaperSchedule(t *testing.T) {
	tr, _, _ := setupTracker(t)
	med, _ := tr.AddMedication(models.Medication{Name: "Paroxetine", Dosage: "20mg"})

	if _, err := tr.AddTaperStep(med.ID, models.TaperStep{Date: "soon", Dosage: "10mg"}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for bad date, got %v", err)
	}
	if _, err := tr.AddTaperStep(med.ID, models.TaperStep{Date: "2025-04-01", Dosage: "10mg"}); err != nil {
		t.Fatalf("AddTaperStep failed: %v", err)
	}
	updated, err := tr.CompleteTaperStep(med.ID, 0)
	if err != nil {
		t.Fatalf("CompleteTaperStep failed: %v", err)
	}
	if !updated.TaperSchedule[0].Completed {
		t.Error("expected taper step to be completed")
	}
	if _, err := tr.CompleteTaperStep(med.ID, 3); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for missing step, got %v", err)
	}
}

func TestActivities(t *testing.T) {
	tr, _, _ := setupTracker(t)

	if _, err := tr.AddActivity("", 2); !errors.Is(err, ErrRequired) {
		t.Errorf("expected ErrRequired, got %v", err)
	}
	walk, _ := tr.AddActivity("Walk", 0)
	call, _ := tr.AddActivity("Call a friend", 9)
	if walk.Difficulty != 1 || call.Difficulty != 3 {
		t.Errorf("expected difficulty default 1 and clamp to 3, got %d and %d", walk.Difficulty, call.Difficulty)
	}
	if got := tr.Activities(); got[0].ID != walk.ID {
		t.Error("expected activities appended in order")
	}
	toggled, _ := tr.ToggleActivity(walk.ID)
	if !toggled.Completed {
		t.Error("expected activity to be completed")
	}
	if err := tr.DeleteActivity(call.ID); err != nil {
		t.Fatalf("DeleteActivity failed: %v", err)
	}
	if got := reload(t, tr).Activities(); len(got) != 1 || !got[0].Completed {
		t.Errorf("unexpected persisted activities: %+v", got)
	}
}

func TestBreathingSessionMinimumDuration(t *testing.T) {
	tr, _, _ := setupTracker(t)

	saved, err := tr.AddBreathingSession(models.BreathingSession{Technique: "box", DurationSeconds: 9})
	if err != nil || saved {
		t.Errorf("expected short session to be dropped, saved=%v err=%v", saved, err)
	}
	saved, err = tr.AddBreathingSession(models.BreathingSession{Technique: "box", DurationSeconds: 10})
	if err != nil || !saved {
		t.Errorf("expected 10s session to be saved, saved=%v err=%v", saved, err)
	}
	_, _ = tr.AddBreathingSession(models.BreathingSession{Technique: "panic", DurationSeconds: 60})
	got := tr.BreathingSessions()
	if len(got) != 2 || got[0].Technique != "panic" {
		t.Errorf("expected newest session first, got %+v", got)
	}
}

func TestSubmitGAD7(t *testing.T) {
	tr, _, _ := setupTracker(t)

	if _, err := tr.SubmitGAD7([]int{1, 2}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for short answers, got %v", err)
	}
	if _, err := tr.SubmitGAD7([]int{0, 0, 0, 0, 0, 0, 4}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for out-of-range answer, got %v", err)
	}
	if tr.LatestGAD7() != nil {
		t.Error("expected no latest score yet")
	}

	r, err := tr.SubmitGAD7([]int{2, 2, 2, 1, 1, 1, 2})
	if err != nil {
		t.Fatalf("SubmitGAD7 failed: %v", err)
	}
	if r.Score != 11 || r.Interpretation != models.GAD7Moderate {
		t.Errorf("expected 11/Moderate, got %d/%s", r.Score, r.Interpretation)
	}
	_, _ = tr.SubmitGAD7([]int{0, 0, 1, 0, 0, 0, 0})
	if got := *reload(t, tr).LatestGAD7(); got != 1 {
		t.Errorf("expected latest score 1, got %d", got)
	}
}

func TestToggleTheme(t *testing.T) {
	tr, _, _ := setupTracker(t)

	theme, err := tr.ToggleTheme()
	if err != nil || theme != models.ThemeDark {
		t.Fatalf("expected dark theme, got %s %v", theme, err)
	}
	if got := reload(t, tr).Theme(); got != models.ThemeDark {
		t.Errorf("expected persisted dark theme, got %s", got)
	}
	if err := tr.SetTheme("sepia"); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestWorkouts(t *testing.T) {
	tr, _, clock := setupTracker(t)

	plan := []models.Workout{{
		ID:        "generated",
		Title:     "Full Body",
		DayOfWeek: 1,
		Exercises: []models.Exercise{{Name: "Squats", Sets: 3, Reps: "12"}},
	}}
	got, err := tr.ReplaceWorkouts(plan)
	if err != nil {
		t.Fatalf("ReplaceWorkouts failed: %v", err)
	}
	w := got[0]
	if w.ID == "generated" || w.Exercises[0].ID == "" {
		t.Errorf("expected fresh ids, got %+v", w)
	}

	ex, err := tr.AddExercise(w.ID, models.Exercise{Name: "Plank"})
	if err != nil {
		t.Fatalf("AddExercise failed: %v", err)
	}
	if ex.Sets != 3 || ex.Reps != "10" {
		t.Errorf("expected exercise defaults, got %+v", ex)
	}
	ex.Reps = "60s"
	if _, err := tr.UpdateExercise(w.ID, ex); err != nil {
		t.Fatalf("UpdateExercise failed: %v", err)
	}
	if _, err := tr.ToggleExercise(w.ID, ex.ID); err != nil {
		t.Fatalf("ToggleExercise failed: %v", err)
	}
	if err := tr.DeleteExercise(w.ID, w.Exercises[0].ID); err != nil {
		t.Fatalf("DeleteExercise failed: %v", err)
	}

	done, err := tr.CompleteWorkout(w.ID, WorkoutResult{MoodBefore: 6, MoodAfter: 3, DurationMinutes: 25})
	if err != nil {
		t.Fatalf("CompleteWorkout failed: %v", err)
	}
	if !done.Completed || done.DateCompleted == nil || !done.DateCompleted.Equal(clock.t) {
		t.Errorf("unexpected completed workout: %+v", done)
	}

	persisted := reload(t, tr).Workouts()
	if len(persisted) != 1 || len(persisted[0].Exercises) != 1 {
		t.Fatalf("unexpected persisted workouts: %+v", persisted)
	}
	if e := persisted[0].Exercises[0]; e.Name != "Plank" || e.Reps != "60s" || !e.Completed {
		t.Errorf("unexpected persisted exercise: %+v", e)
	}
}

func TestReturnedValuesDoNotAliasState(t *testing.T) {
	tr, _, _ := setupTracker(t)

	med, _ := tr.AddMedication(models.Medication{Name: "Paroxetine", Dosage: "20mg"})
	if _, err := tr.AddTaperStep(med.ID, models.TaperStep{Date: "2025-04-01", Dosage: "10mg"}); err != nil {
		t.Fatal(err)
	}
	updated, err := tr.CompleteTaperStep(med.ID, 0)
	if err != nil {
		t.Fatal(err)
	}
	updated.TaperSchedule[0].Dosage = "999mg"
	tr.Medications()[0].TaperSchedule[0].Completed = false

	got, _ := tr.Medication(med.ID)
	want := []models.TaperStep{{Date: "2025-04-01", Dosage: "10mg", Completed: true}}
	if diff := cmp.Diff(want, got.TaperSchedule); diff != "" {
		t.Errorf("taper schedule changed through a returned value (-want +got):\n%s", diff)
	}

	if _, err := tr.ReplaceWorkouts([]models.Workout{{Title: "Legs", Exercises: []models.Exercise{{Name: "Squats", Sets: 3, Reps: "12"}}}}); err != nil {
		t.Fatal(err)
	}
	tr.Workouts()[0].Exercises[0].Name = "Lunges"
	if name := tr.Workouts()[0].Exercises[0].Name; name != "Squats" {
		t.Errorf("exercise renamed through a returned slice: %q", name)
	}
}

func TestRawAccess(t *testing.T) {
	tr, _, _ := setupTracker(t)

	if _, err := tr.Raw("passwords"); !errors.Is(err, ErrUnknownKey) {
		t.Errorf("expected ErrUnknownKey, got %v", err)
	}
	if err := tr.SetRaw(constants.KeyTheme, []byte("dark")); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for non-JSON value, got %v", err)
	}
	if err := tr.SetRaw(constants.KeyMoods, []byte(`[{"id":"m1","score":4,"anxietyScore":6}]`)); err != nil {
		t.Fatalf("SetRaw failed: %v", err)
	}
	if got := tr.Moods(); len(got) != 1 || got[0].AnxietyScore != 6 {
		t.Errorf("expected SetRaw to reload moods, got %+v", got)
	}
	if err := tr.DeleteRaw(constants.KeyMoods); err != nil {
		t.Fatalf("DeleteRaw failed: %v", err)
	}
	if len(tr.Moods()) != 0 {
		t.Error("expected moods cleared")
	}
}
