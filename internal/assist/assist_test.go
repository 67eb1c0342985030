package assist

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"google.golang.org/genai"

	"github.com/julianstephens/mindcalm/internal/analytics"
	"github.com/julianstephens/mindcalm/internal/models"
)

type fakeGenerator struct {
	reply   string
	err     error
	prompts []string
	schemas []*genai.Schema
}

func (f *fakeGenerator) Generate(_ context.Context, prompt string, schema *genai.Schema) (string, error) {
	f.prompts = append(f.prompts, prompt)
	f.schemas = append(f.schemas, schema)
	return f.reply, f.err
}

func (f *fakeGenerator) lastPrompt() string {
	if len(f.prompts) == 0 {
		return ""
	}
	return f.prompts[len(f.prompts)-1]
}

var errOffline = errors.New("offline")

func TestTextCallsFallBack(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name     string
		call     func(a *Assistant) string
		empty    string
		fallback string
	}{
		{"evidence", func(a *Assistant) string { return a.AnalyzeEvidence(ctx, "I will fail") }, "", FallbackEvidence},
		{"medication info", func(a *Assistant) string { return a.MedicationInfo(ctx, "Sertraline") }, EmptyMedicationInfo, FallbackMedicationInfo},
		{"interactions", func(a *Assistant) string { return a.DrugInteractions(ctx, "Buspirone", []string{"Sertraline"}) }, EmptyInteractions, FallbackInteractions},
		{"coping", func(a *Assistant) string { return a.CopingStrategy(ctx, 8, nil, "") }, EmptyCoping, FallbackCoping},
		{"report", func(a *Assistant) string { return a.ProgressReport(ctx, analytics.ReportStats{}) }, EmptyProgressReport, FallbackProgressReport},
		{"chat", func(a *Assistant) string { return a.Chat(ctx, "hi", nil) }, EmptyChat, FallbackChat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.call(New(&fakeGenerator{err: errOffline})); got != tt.fallback {
				t.Errorf("on error expected %q, got %q", tt.fallback, got)
			}
			if got := tt.call(New(&fakeGenerator{})); got != tt.empty {
				t.Errorf("on empty reply expected %q, got %q", tt.empty, got)
			}
			if got := tt.call(New(nil)); got != tt.fallback {
				t.Errorf("without a model expected %q, got %q", tt.fallback, got)
			}
			if got := tt.call(New(&fakeGenerator{reply: "answer"})); got != "answer" {
				t.Errorf("expected model reply, got %q", got)
			}
		})
	}
}

func TestAnalyzeThoughtRecord(t *testing.T) {
	gen := &fakeGenerator{reply: `{"distortion":"Catastrophizing","alternativeThought":"One mistake is survivable."}`}
	a := New(gen)

	got, err := a.AnalyzeThoughtRecord(context.Background(), "work", "I'll be fired", "fear")
	if err != nil {
		t.Fatalf("AnalyzeThoughtRecord failed: %v", err)
	}
	want := ThoughtAnalysis{Distortion: "Catastrophizing", AlternativeThought: "One mistake is survivable."}
	if got != want {
		t.Errorf("expected %+v, got %+v", want, got)
	}
	if gen.schemas[0] != thoughtSchema {
		t.Error("expected the JSON schema to be requested")
	}
	if !strings.Contains(gen.lastPrompt(), "Automatic Thought: I'll be fired") {
		t.Errorf("prompt missing thought: %s", gen.lastPrompt())
	}

	for _, bad := range []*fakeGenerator{{err: errOffline}, {reply: "not json"}} {
		if _, err := New(bad).AnalyzeThoughtRecord(context.Background(), "", "", ""); !errors.Is(err, ErrAnalysisFailed) {
			t.Errorf("expected ErrAnalysisFailed, got %v", err)
		}
	}
	if _, err := New(nil).AnalyzeThoughtRecord(context.Background(), "", "", ""); !errors.Is(err, ErrAnalysisFailed) {
		t.Errorf("expected ErrAnalysisFailed without a model, got %v", err)
	}
}

func TestWorkoutPlan(t *testing.T) {
	gen := &fakeGenerator{reply: `[{"title":"Full Body A","dayOfWeek":1,"exercises":[{"name":"Squat","sets":3,"reps":"10"}]}]`}
	plan := New(gen).WorkoutPlan(context.Background(), WorkoutRequest{Level: "Beginner"})

	want := []models.Workout{{Title: "Full Body A", DayOfWeek: 1, Exercises: []models.Exercise{{Name: "Squat", Sets: 3, Reps: "10"}}}}
	if diff := cmp.Diff(want, plan); diff != "" {
		t.Errorf("unexpected plan (-want +got):\n%s", diff)
	}
	prompt := gen.lastPrompt()
	if !strings.Contains(prompt, "Equipment: Bodyweight only") || !strings.Contains(prompt, "Weekly Goal: 3 days per week.") {
		t.Errorf("unexpected prompt: %s", prompt)
	}

	if got := New(&fakeGenerator{err: errOffline}).WorkoutPlan(context.Background(), WorkoutRequest{}); got == nil || len(got) != 0 {
		t.Errorf("expected empty plan on failure, got %+v", got)
	}
}

func TestDataInsights(t *testing.T) {
	gen := &fakeGenerator{reply: `[{"text":"Less sleep, more worry","relatedMetrics":["Sleep","Anxiety"]}]`}
	got := New(gen).DataInsights(context.Background(), "Last 7d data:\n")
	if len(got) != 1 || got[0].Text != "Less sleep, more worry" {
		t.Errorf("unexpected insights: %+v", got)
	}
	if !strings.Contains(gen.lastPrompt(), "20% lower anxiety") {
		t.Error("expected literal percent sign in the example")
	}

	if diff := cmp.Diff(FallbackInsights(), New(&fakeGenerator{err: errOffline}).DataInsights(context.Background(), "")); diff != "" {
		t.Errorf("unexpected fallback insights (-want +got):\n%s", diff)
	}
	if got := New(&fakeGenerator{}).DataInsights(context.Background(), ""); len(got) != 0 {
		t.Errorf("expected empty insights for empty reply, got %+v", got)
	}
}

func TestChatSendsRecentHistory(t *testing.T) {
	var history []models.ChatMessage
	for i := 0; i < 8; i++ {
		role := models.RoleUser
		if i%2 == 1 {
			role = models.RoleAssistant
		}
		history = append(history, models.ChatMessage{Role: role, Content: string(rune('a' + i))})
	}
	gen := &fakeGenerator{reply: "ok"}
	New(gen).Chat(context.Background(), "next", history)

	prompt := gen.lastPrompt()
	if strings.Contains(prompt, "User: a\n") || strings.Contains(prompt, "Assistant: b\n") {
		t.Error("expected the oldest messages to be dropped")
	}
	if !strings.Contains(prompt, "User: c\nAssistant: d") || !strings.HasSuffix(prompt, "User: next\nAssistant:") {
		t.Errorf("unexpected chat prompt:\n%s", prompt)
	}
}

func TestCopingPromptDefaults(t *testing.T) {
	p := copingPrompt(7, nil, "")
	if !strings.Contains(p, "Reported Symptoms: None specified.") || !strings.Contains(p, `User Notes: "None".`) {
		t.Errorf("unexpected coping prompt:\n%s", p)
	}
}

func TestProgressReportPrompt(t *testing.T) {
	score := 12
	p := progressReportPrompt(analytics.ReportStats{AvgAnxiety: "5.5", AvgSleep: "N/A", CBTCount: 2, MedCompliance: "80", LatestGAD7: &score})
	for _, want := range []string{"(last 7 days): 5.5/10", "Medication Compliance: 80%", "Latest GAD-7 Score: 12"} {
		if !strings.Contains(p, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
	if p := progressReportPrompt(analytics.ReportStats{}); !strings.Contains(p, "Latest GAD-7 Score: Not taken") {
		t.Error("expected missing GAD-7 to read Not taken")
	}
}
