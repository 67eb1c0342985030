package optimizer

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/julianstephens/mindcalm/internal/models"
)

var now = time.Date(2025, 3, 15, 10, 0, 0, 0, time.Local)

func session(technique string, before, after int) models.BreathingSession {
	return models.BreathingSession{Technique: technique, AnxietyBefore: before, AnxietyAfter: after, DurationSeconds: 60}
}

func TestAnalyzeBreathing(t *testing.T) {
	a := New()
	sessions := []models.BreathingSession{
		session("Box Breathing", 7, 4),
		session("Box Breathing", 6, 4),
		session("Box Breathing", 8, 5),
		session("4-7-8 Relax", 5, 5),
		session("4-7-8 Relax", 6, 0),
		session("4-7-8 Relax", 6, 7),
		session("Coherent", 9, 1),
		session("Coherent", 0, 0),
	}

	want := []Suggestion{
		{Type: SuggestPreferTechnique, Subject: "Box Breathing", Reason: "anxiety dropped 2.7 points on average over 3 sessions"},
		{Type: SuggestSwitchTechnique, Subject: "4-7-8 Relax", Reason: "no anxiety reduction across 3 sessions"},
	}
	if diff := cmp.Diff(want, a.AnalyzeBreathing(sessions)); diff != "" {
		t.Errorf("AnalyzeBreathing mismatch (-want +got):\n%s", diff)
	}
}

func TestAnalyzeBreathingNeedsSamples(t *testing.T) {
	a := New()
	if got := a.AnalyzeBreathing([]models.BreathingSession{session("Box", 8, 2)}); got != nil {
		t.Errorf("expected no suggestions, got %v", got)
	}
}

func TestAnalyzeActivities(t *testing.T) {
	a := New()
	past := now.AddDate(0, 0, -2)
	var acts []models.ActivityPlan
	for i := 0; i < 3; i++ {
		acts = append(acts, models.ActivityPlan{Title: "walk", Date: past, Difficulty: 1, Completed: true})
	}
	// Four level-3 activities, one done.
	for i := 0; i < 4; i++ {
		acts = append(acts, models.ActivityPlan{Title: "gym", Date: past, Difficulty: 3, Completed: i == 0})
	}
	// Dated today: ignored whether or not it is done.
	acts = append(acts,
		models.ActivityPlan{Title: "call", Date: now, Difficulty: 3},
		models.ActivityPlan{Title: "swim", Date: now, Difficulty: 3, Completed: true},
	)

	got := a.AnalyzeActivities(acts, now)
	want := []Suggestion{
		{Type: SuggestRaiseDifficulty, Subject: "difficulty 1", Reason: "all 3 activities at this level were completed; try planning a level 2 activity"},
		{Type: SuggestLowerDifficulty, Subject: "difficulty 3", Reason: "only 1 of 4 activities at this level were completed"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("AnalyzeActivities mismatch (-want +got):\n%s", diff)
	}
}

func TestAnalyzeThoughts(t *testing.T) {
	a := New()
	thoughts := []models.ThoughtRecord{
		{Distortion: "catastrophizing", IntensityBefore: 8, IntensityAfter: 7},
		{Distortion: "catastrophizing", IntensityBefore: 8, IntensityAfter: 8},
		{Distortion: "catastrophizing", IntensityBefore: 6, IntensityAfter: 5},
		{Distortion: "mind-reading", IntensityBefore: 9, IntensityAfter: 2},
		{Distortion: "mind-reading", IntensityBefore: 9, IntensityAfter: 9},
	}
	want := []Suggestion{
		{Type: SuggestPracticeDistortion, Subject: "Catastrophizing", Reason: "tagged on 3 of 5 thought records with an average reduction of 0.7"},
	}
	if diff := cmp.Diff(want, a.AnalyzeThoughts(thoughts)); diff != "" {
		t.Errorf("AnalyzeThoughts mismatch (-want +got):\n%s", diff)
	}
}

func TestAnalyzeThoughtsIgnoresShareOfRecords(t *testing.T) {
	a := New()
	var thoughts []models.ThoughtRecord
	for range 3 {
		thoughts = append(thoughts, models.ThoughtRecord{Distortion: "catastrophizing", IntensityBefore: 8, IntensityAfter: 8})
	}
	for range 5 {
		thoughts = append(thoughts, models.ThoughtRecord{Distortion: "labeling", IntensityBefore: 9, IntensityAfter: 2})
	}
	want := []Suggestion{
		{Type: SuggestPracticeDistortion, Subject: "Catastrophizing", Reason: "tagged on 3 of 8 thought records with an average reduction of 0.0"},
	}
	if diff := cmp.Diff(want, a.AnalyzeThoughts(thoughts)); diff != "" {
		t.Errorf("AnalyzeThoughts mismatch (-want +got):\n%s", diff)
	}
}

func TestAnalyzeMedications(t *testing.T) {
	a := New()
	meds := []models.Medication{
		{Name: "Sertraline", TotalPills: 5},
		{Name: "Buspirone", TotalPills: 60, RefillDate: "2025-03-20"},
		{Name: "Hydroxyzine", TotalPills: 3, RefillDate: "2025-03-15"},
		{Name: "Propranolol", TotalPills: 40, RefillDate: "2025-04-30"},
		{Name: "Old", TotalPills: 20, RefillDate: "2025-03-01"},
		{Name: "Seven", TotalPills: 7},
		{Name: "Empty", TotalPills: 0},
	}
	want := []Suggestion{
		{Type: SuggestRefill, Subject: "Sertraline", Reason: "5 pills remaining"},
		{Type: SuggestRefill, Subject: "Buspirone", Reason: "refill due 2025-03-20"},
		{Type: SuggestRefill, Subject: "Hydroxyzine", Reason: "3 pills remaining; refill due 2025-03-15"},
		{Type: SuggestRefill, Subject: "Empty", Reason: "no pills remaining"},
	}
	if diff := cmp.Diff(want, a.AnalyzeMedications(meds, now)); diff != "" {
		t.Errorf("AnalyzeMedications mismatch (-want +got):\n%s", diff)
	}
}

func TestAnalyzeCombinesChecks(t *testing.T) {
	got := New().Analyze(Input{
		Medications: []models.Medication{{Name: "Sertraline", TotalPills: 2}},
		Now:         now,
	})
	if len(got) != 1 || got[0].Type != SuggestRefill {
		t.Errorf("Analyze = %v", got)
	}
}
