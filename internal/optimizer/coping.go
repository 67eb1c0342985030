// Package optimizer reviews the user's own history and suggests adjustments
// to their coping routine.
package optimizer

import (
	"fmt"
	"sort"
	"time"

	"github.com/julianstephens/mindcalm/internal/analytics"
	"github.com/julianstephens/mindcalm/internal/constants"
	"github.com/julianstephens/mindcalm/internal/models"
)

// SuggestionType represents the kind of adjustment suggested
type SuggestionType string

const (
	SuggestPreferTechnique    SuggestionType = "prefer_technique"
	SuggestSwitchTechnique    SuggestionType = "switch_technique"
	SuggestRaiseDifficulty    SuggestionType = "raise_difficulty"
	SuggestLowerDifficulty    SuggestionType = "lower_difficulty"
	SuggestPracticeDistortion SuggestionType = "practice_distortion"
	SuggestRefill             SuggestionType = "refill"
)

// Suggestion is one recommended adjustment with the evidence behind it.
type Suggestion struct {
	Type    SuggestionType `json:"type"`
	Subject string         `json:"subject"`
	Reason  string         `json:"reason"`
}

// Input is the history the analyzer draws from.
type Input struct {
	Breathing   []models.BreathingSession
	Activities  []models.ActivityPlan
	Thoughts    []models.ThoughtRecord
	Medications []models.Medication
	Now         time.Time
}

const (
	defaultMinSamples = 3
	lowPillThreshold  = 7
	refillLeadDays    = 7
)

// Analyzer holds the thresholds used when reviewing history.
type Analyzer struct {
	// MinSamples is how many observations a pattern needs before it is reported.
	MinSamples int
}

func New() *Analyzer {
	return &Analyzer{MinSamples: defaultMinSamples}
}

// Analyze runs every check and returns the suggestions in a stable order.
func (a *Analyzer) Analyze(in Input) []Suggestion {
	var out []Suggestion
	out = append(out, a.AnalyzeBreathing(in.Breathing)...)
	out = append(out, a.AnalyzeActivities(in.Activities, in.Now)...)
	out = append(out, a.AnalyzeThoughts(in.Thoughts)...)
	out = append(out, a.AnalyzeMedications(in.Medications, in.Now)...)
	return out
}

type techniqueStats struct {
	name     string
	sessions int
	drop     int
}

// AnalyzeBreathing compares the average anxiety drop per technique. Sessions
// without a before rating are skipped.
func (a *Analyzer) AnalyzeBreathing(sessions []models.BreathingSession) []Suggestion {
	byName := map[string]*techniqueStats{}
	var order []string
	for _, s := range sessions {
		if s.AnxietyBefore == 0 {
			continue
		}
		after := s.AnxietyAfter
		if after == 0 {
			after = s.AnxietyBefore
		}
		st, ok := byName[s.Technique]
		if !ok {
			st = &techniqueStats{name: s.Technique}
			byName[s.Technique] = st
			order = append(order, s.Technique)
		}
		st.sessions++
		st.drop += s.AnxietyBefore - after
	}

	var qualified []*techniqueStats
	for _, name := range order {
		if st := byName[name]; st.sessions >= a.MinSamples {
			qualified = append(qualified, st)
		}
	}
	if len(qualified) == 0 {
		return nil
	}
	sort.SliceStable(qualified, func(i, j int) bool {
		return avg(qualified[i]) > avg(qualified[j])
	})

	var out []Suggestion
	if best := qualified[0]; avg(best) >= 1 {
		out = append(out, Suggestion{
			Type:    SuggestPreferTechnique,
			Subject: best.name,
			Reason:  fmt.Sprintf("anxiety dropped %.1f points on average over %d sessions", avg(best), best.sessions),
		})
	}
	for _, st := range qualified {
		if avg(st) <= 0 {
			out = append(out, Suggestion{
				Type:    SuggestSwitchTechnique,
				Subject: st.name,
				Reason:  fmt.Sprintf("no anxiety reduction across %d sessions", st.sessions),
			})
		}
	}
	return out
}

func avg(st *techniqueStats) float64 {
	return float64(st.drop) / float64(st.sessions)
}

// AnalyzeActivities applies graded activation: finish everything at a level and
// step up, or leave most of a level unfinished and step down. Activities
// planned for today or later are still in progress and are ignored.
func (a *Analyzer) AnalyzeActivities(activities []models.ActivityPlan, now time.Time) []Suggestion {
	today := analytics.StartOfDay(now)
	total := map[int]int{}
	done := map[int]int{}
	for _, act := range activities {
		if !act.Date.Before(today) {
			continue
		}
		total[act.Difficulty]++
		if act.Completed {
			done[act.Difficulty]++
		}
	}

	var out []Suggestion
	for level := constants.MinActivityDifficulty; level <= constants.MaxActivityDifficulty; level++ {
		n := total[level]
		if n < a.MinSamples {
			continue
		}
		switch {
		case done[level] == n && level < constants.MaxActivityDifficulty && total[level+1] == 0:
			out = append(out, Suggestion{
				Type:    SuggestRaiseDifficulty,
				Subject: fmt.Sprintf("difficulty %d", level),
				Reason:  fmt.Sprintf("all %d activities at this level were completed; try planning a level %d activity", n, level+1),
			})
		case float64(done[level])/float64(n) < 0.5 && level > constants.MinActivityDifficulty:
			out = append(out, Suggestion{
				Type:    SuggestLowerDifficulty,
				Subject: fmt.Sprintf("difficulty %d", level),
				Reason:  fmt.Sprintf("only %d of %d activities at this level were completed", done[level], n),
			})
		}
	}
	return out
}

// AnalyzeThoughts flags thinking traps that keep recurring but respond poorly
// to restructuring.
func (a *Analyzer) AnalyzeThoughts(thoughts []models.ThoughtRecord) []Suggestion {
	if len(thoughts) < a.MinSamples {
		return nil
	}
	count := map[string]int{}
	reduction := map[string]int{}
	var order []string
	for _, t := range thoughts {
		if t.Distortion == "" {
			continue
		}
		if count[t.Distortion] == 0 {
			order = append(order, t.Distortion)
		}
		count[t.Distortion]++
		reduction[t.Distortion] += t.Reduction()
	}

	var out []Suggestion
	for _, id := range order {
		n := count[id]
		if n < a.MinSamples {
			continue
		}
		mean := float64(reduction[id]) / float64(n)
		if mean >= 2 {
			continue
		}
		name := id
		if d, ok := constants.DistortionByID(id); ok {
			name = d.Name
		}
		out = append(out, Suggestion{
			Type:    SuggestPracticeDistortion,
			Subject: name,
			Reason:  fmt.Sprintf("tagged on %d of %d thought records with an average reduction of %.1f", n, len(thoughts), mean),
		})
	}
	return out
}

// AnalyzeMedications warns about low pill counts and refill dates within a week.
func (a *Analyzer) AnalyzeMedications(meds []models.Medication, now time.Time) []Suggestion {
	today := analytics.StartOfDay(now)
	var out []Suggestion
	for _, m := range meds {
		var reason string
		switch {
		case m.TotalPills <= 0:
			reason = "no pills remaining"
		case m.TotalPills < lowPillThreshold:
			reason = fmt.Sprintf("%d pills remaining", m.TotalPills)
		}
		if m.RefillDate != "" {
			if d, err := time.ParseInLocation(constants.DateFormat, m.RefillDate, now.Location()); err == nil {
				days := int(d.Sub(today).Hours() / 24)
				if days >= 0 && days <= refillLeadDays {
					if reason != "" {
						reason += "; "
					}
					reason += fmt.Sprintf("refill due %s", m.RefillDate)
				}
			}
		}
		if reason != "" {
			out = append(out, Suggestion{Type: SuggestRefill, Subject: m.Name, Reason: reason})
		}
	}
	return out
}
