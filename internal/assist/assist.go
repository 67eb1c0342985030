// Package assist wraps the language model behind the thought record helper,
// medication lookups, coping tips, reports, workout plans, insights and chat.
// Every call degrades to a fixed fallback instead of failing.
package assist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"google.golang.org/genai"

	"github.com/julianstephens/mindcalm/internal/analytics"
	"github.com/julianstephens/mindcalm/internal/constants"
	"github.com/julianstephens/mindcalm/internal/logger"
	"github.com/julianstephens/mindcalm/internal/models"
)

// ErrAnalysisFailed is the only failure surfaced to callers.
var ErrAnalysisFailed = errors.New("failed to analyze thought record")

const (
	FallbackEvidence       = "Could not generate evidence suggestions."
	FallbackMedicationInfo = "Could not retrieve medication information at this time."
	EmptyMedicationInfo    = "No information available."
	FallbackInteractions   = "Consult a doctor for interaction checks."
	EmptyInteractions      = "Consult a healthcare provider."
	FallbackCoping         = "Focus on your breathing for a moment. Inhale for 4, exhale for 6."
	EmptyCoping            = "Take a few deep breaths and focus on the present moment."
	FallbackProgressReport = "An error occurred while generating your report."
	EmptyProgressReport    = "Unable to generate report at this time."
	FallbackChat           = "I'm having trouble connecting right now. Please check your connection."
	EmptyChat              = "I'm sorry, I couldn't process that. Can you try again?"
)

// FallbackInsights are shown when insight generation fails.
func FallbackInsights() []models.Insight {
	return []models.Insight{
		{Text: "Sleep more to reduce anxiety.", RelatedMetrics: []string{"Sleep", "Anxiety"}},
		{Text: "Exercise helps mood.", RelatedMetrics: []string{"Exercise", "Mood"}},
	}
}

// ThoughtAnalysis is the model's reading of a thought record.
type ThoughtAnalysis struct {
	Distortion         string `json:"distortion"`
	AlternativeThought string `json:"alternativeThought"`
}

// WorkoutRequest describes the plan to generate.
type WorkoutRequest struct {
	Level       string
	Equipment   []string
	DaysPerWeek int
}

var (
	FitnessLevels = []string{"Beginner", "Intermediate", "Advanced"}
	Equipment     = []string{"Dumbbells", "Resistance Bands", "Kettlebell", "Pull-up Bar", "Bench"}
)

// Assistant issues the prompts. A nil generator makes every call return its
// fallback.
type Assistant struct {
	gen Generator
	log *log.Logger
}

func New(gen Generator) *Assistant {
	return &Assistant{gen: gen, log: logger.With("component", "assist")}
}

// Enabled reports whether a model is configured.
func (a *Assistant) Enabled() bool { return a.gen != nil }

func (a *Assistant) generate(ctx context.Context, call, prompt string, schema *genai.Schema) (string, error) {
	if a.gen == nil {
		return "", ErrNoAPIKey
	}
	text, err := a.gen.Generate(ctx, prompt, schema)
	if err != nil {
		a.log.Warn("Model call failed", "call", call, "error", err)
		return "", err
	}
	return text, nil
}

// text runs a free-text call, substituting empty for a blank answer and
// fallback for a failure.
func (a *Assistant) text(ctx context.Context, call, prompt, empty, fallback string) string {
	out, err := a.generate(ctx, call, prompt, nil)
	if err != nil {
		return fallback
	}
	if out == "" {
		return empty
	}
	return out
}

func (a *Assistant) AnalyzeThoughtRecord(ctx context.Context, situation, thought, emotion string) (ThoughtAnalysis, error) {
	out, err := a.generate(ctx, "analyzeThoughtRecord", thoughtRecordPrompt(situation, thought, emotion), thoughtSchema)
	if err != nil {
		return ThoughtAnalysis{}, ErrAnalysisFailed
	}
	if out == "" {
		out = "{}"
	}
	var res ThoughtAnalysis
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		a.log.Warn("Unparseable thought analysis", "error", err)
		return ThoughtAnalysis{}, ErrAnalysisFailed
	}
	return res, nil
}

// AnalyzeEvidence suggests evidence against an anxious thought.
func (a *Assistant) AnalyzeEvidence(ctx context.Context, thought string) string {
	return a.text(ctx, "analyzeEvidence", evidencePrompt(thought), "", FallbackEvidence)
}

func (a *Assistant) MedicationInfo(ctx context.Context, name string) string {
	return a.text(ctx, "getMedicationInfo", medicationInfoPrompt(name), EmptyMedicationInfo, FallbackMedicationInfo)
}

func (a *Assistant) DrugInteractions(ctx context.Context, newMed string, existing []string) string {
	return a.text(ctx, "checkDrugInteractions", interactionsPrompt(newMed, existing), EmptyInteractions, FallbackInteractions)
}

func (a *Assistant) CopingStrategy(ctx context.Context, anxiety int, symptoms []string, notes string) string {
	return a.text(ctx, "getCopingStrategy", copingPrompt(anxiety, symptoms, notes), EmptyCoping, FallbackCoping)
}

func (a *Assistant) ProgressReport(ctx context.Context, stats analytics.ReportStats) string {
	return a.text(ctx, "generateProgressReport", progressReportPrompt(stats), EmptyProgressReport, FallbackProgressReport)
}

// WorkoutPlan asks for a weekly schedule. Failures yield an empty plan.
func (a *Assistant) WorkoutPlan(ctx context.Context, req WorkoutRequest) []models.Workout {
	if req.DaysPerWeek == 0 {
		req.DaysPerWeek = constants.DefaultDaysPerWeek
	}
	if req.Level == "" {
		req.Level = FitnessLevels[0]
	}
	out, err := a.generate(ctx, "generateWorkoutPlan", workoutPrompt(req.Level, req.Equipment, req.DaysPerWeek), workoutSchema)
	if err != nil {
		return []models.Workout{}
	}
	if out == "" {
		out = "[]"
	}
	var plan []models.Workout
	if err := json.Unmarshal([]byte(out), &plan); err != nil {
		a.log.Warn("Unparseable workout plan", "error", err)
		return []models.Workout{}
	}
	return plan
}

// DataInsights turns an analytics summary into correlation insights.
func (a *Assistant) DataInsights(ctx context.Context, summary string) []models.Insight {
	out, err := a.generate(ctx, "generateDataInsights", insightsPrompt(summary), insightSchema)
	if err != nil {
		return FallbackInsights()
	}
	if out == "" {
		out = "[]"
	}
	var insights []models.Insight
	if err := json.Unmarshal([]byte(out), &insights); err != nil {
		a.log.Warn("Unparseable insights", "error", err)
		return FallbackInsights()
	}
	return insights
}

// Chat answers message given the prior conversation. Only the most recent
// messages are sent.
func (a *Assistant) Chat(ctx context.Context, message string, history []models.ChatMessage) string {
	if len(history) > constants.ChatHistoryLimit {
		history = history[len(history)-constants.ChatHistoryLimit:]
	}
	return a.text(ctx, "chatWithTherapist", chatPrompt(message, history), EmptyChat, FallbackChat)
}

// Describe names the configured backend for diagnostics.
func (a *Assistant) Describe() string {
	if g, ok := a.gen.(*Gemini); ok {
		return fmt.Sprintf("gemini (%s)", g.Model())
	}
	if a.gen == nil {
		return "disabled"
	}
	return "custom"
}
