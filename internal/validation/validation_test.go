package validation

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/julianstephens/mindcalm/internal/constants"
	"github.com/julianstephens/mindcalm/internal/models"
)

var now = time.Date(2025, 3, 15, 10, 0, 0, 0, time.Local)

func conflictTypes(r ValidationResult) []ConflictType {
	var out []ConflictType
	for _, c := range r.Conflicts {
		out = append(out, c.Type)
	}
	return out
}

func TestValidateCleanData(t *testing.T) {
	in := Input{
		Moods:     []models.MoodEntry{{ID: "m1", Date: now, Score: 6, AnxietyScore: 4}},
		Lifestyle: []models.LifestyleEntry{{Date: now, SleepHours: 7.5, SleepQuality: 4, BedTime: "23:00", WakeTime: "06:30"}},
		GAD7:      []models.GAD7Result{{ID: "g1", Date: now, Score: 12, Interpretation: models.GAD7Moderate}},
		Now:       now,
	}
	result := New().Validate(in)
	if result.HasConflicts() {
		t.Errorf("expected no conflicts, got:\n%s", result.FormatReport())
	}
	if got := result.FormatReport(); got != "No conflicts detected." {
		t.Errorf("FormatReport() = %q", got)
	}
}

func TestValidateDetectsProblems(t *testing.T) {
	tests := []struct {
		name string
		in   Input
		want []ConflictType
	}{
		{
			name: "duplicate mood ids",
			in: Input{Moods: []models.MoodEntry{
				{ID: "m1", Date: now, Score: 5, AnxietyScore: 5},
				{ID: "m1", Date: now, Score: 5, AnxietyScore: 5},
				{ID: "m1", Date: now, Score: 5, AnxietyScore: 5},
			}},
			want: []ConflictType{ConflictDuplicateID},
		},
		{
			name: "anxiety out of range",
			in:   Input{Moods: []models.MoodEntry{{ID: "m1", Date: now, Score: 5, AnxietyScore: 11}}},
			want: []ConflictType{ConflictOutOfRange},
		},
		{
			name: "bad bed time",
			in:   Input{Lifestyle: []models.LifestyleEntry{{Date: now, SleepHours: 7, BedTime: "25:00"}}},
			want: []ConflictType{ConflictInvalidDateTime},
		},
		{
			name: "future thought",
			in:   Input{Thoughts: []models.ThoughtRecord{{ID: "t1", Date: now.Add(48 * time.Hour), IntensityBefore: 5}}},
			want: []ConflictType{ConflictFutureDate},
		},
		{
			name: "taper date",
			in: Input{Medications: []models.Medication{{ID: "med", Name: "Sertraline", TaperSchedule: []models.TaperStep{
				{Date: "2025-04-01", Dosage: "25mg"},
				{Date: "April 15", Dosage: "12.5mg"},
			}}}},
			want: []ConflictType{ConflictInvalidDateTime},
		},
		{
			name: "gad7 label mismatch",
			in:   Input{GAD7: []models.GAD7Result{{ID: "g1", Date: now, Score: 16, Interpretation: models.GAD7Mild}}},
			want: []ConflictType{ConflictScoreMismatch},
		},
		{
			name: "workout weekday",
			in:   Input{Workouts: []models.Workout{{ID: "w1", Title: "Legs", DayOfWeek: 7}}},
			want: []ConflictType{ConflictOutOfRange},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.in.Now = now
			got := conflictTypes(New().Validate(tt.in))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("conflicts mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFormatReport(t *testing.T) {
	result := New().Validate(Input{
		Activities: []models.ActivityPlan{{ID: "a1", Title: "Walk", Difficulty: 4}},
		Now:        now,
	})
	report := result.FormatReport()
	if !strings.Contains(report, "[activities]") || !strings.Contains(report, "difficulty 4") {
		t.Errorf("unexpected report:\n%s", report)
	}
}

func TestAutoFixDuplicates(t *testing.T) {
	in := Input{
		Worries: []models.PostponedWorry{
			{ID: "w1", Text: "first"},
			{ID: "w2", Text: "other"},
			{ID: "w1", Text: "copy"},
		},
		Now: now,
	}
	result := New().Validate(in)

	saved := map[string]any{}
	actions, err := AutoFixDuplicates(result.Conflicts, in, func(key string, v any) error {
		saved[key] = v
		return nil
	})
	if err != nil {
		t.Fatalf("AutoFixDuplicates failed: %v", err)
	}
	if len(actions) != 1 {
		t.Fatalf("expected 1 fix action, got %d", len(actions))
	}

	want := []models.PostponedWorry{{ID: "w1", Text: "first"}, {ID: "w2", Text: "other"}}
	if diff := cmp.Diff(want, saved[constants.KeyWorries]); diff != "" {
		t.Errorf("fixed worries mismatch (-want +got):\n%s", diff)
	}
}
