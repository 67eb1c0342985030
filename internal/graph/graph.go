// Package graph builds the personal knowledge graph that links symptoms,
// lifestyle, medications and thinking traps, and lays it out with a small
// force simulation.
package graph

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/julianstephens/mindcalm/internal/models"
)

type Group string

const (
	GroupRoot       Group = "root"
	GroupSymptom    Group = "symptom"
	GroupMed        Group = "med"
	GroupLifestyle  Group = "lifestyle"
	GroupCBT        Group = "cbt"
	GroupFactor     Group = "factor"
	GroupSideEffect Group = "side-effect"
	GroupWellness   Group = "wellness"
)

type LinkType string

const (
	LinkStructural  LinkType = "structural"
	LinkCorrelation LinkType = "correlation"
	LinkPositive    LinkType = "positive"
)

type Node struct {
	ID    string  `json:"id"`
	Label string  `json:"label"`
	Group Group   `json:"group"`
	Size  float64 `json:"val"`
	Color string  `json:"color"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	VX    float64 `json:"vx"`
	VY    float64 `json:"vy"`
}

type Link struct {
	Source   string   `json:"source"`
	Target   string   `json:"target"`
	Strength float64  `json:"value"`
	Type     LinkType `json:"type"`
}

type Graph struct {
	Nodes []Node `json:"nodes"`
	Links []Link `json:"links"`
}

// Input is every collection the graph draws from.
type Input struct {
	Moods       []models.MoodEntry
	Lifestyle   []models.LifestyleEntry
	Thoughts    []models.ThoughtRecord
	Medications []models.Medication
	MedLogs     []models.MedicationLog
}

const (
	colorRoot       = "#14b8a6"
	colorSymptom    = "#f43f5e"
	colorWellness   = "#10b981"
	colorSleep      = "#818cf8"
	colorExercise   = "#2dd4bf"
	colorFactor     = "#fbbf24"
	colorMed        = "#2dd4bf"
	colorSideEffect = "#fb923c"
	colorCBT        = "#c084fc"

	maxSymptomNodes    = 6
	maxDistortionNodes = 5
)

var whitespace = regexp.MustCompile(`\s+`)

type builder struct {
	g     Graph
	index map[string]int
}

func (b *builder) has(id string) bool {
	_, ok := b.index[id]
	return ok
}

func (b *builder) node(id, label string, group Group, color string, size float64) {
	if b.has(id) {
		return
	}
	b.index[id] = len(b.g.Nodes)
	b.g.Nodes = append(b.g.Nodes, Node{ID: id, Label: label, Group: group, Color: color, Size: size})
}

func (b *builder) link(source, target string, typ LinkType, strength float64) {
	b.g.Links = append(b.g.Links, Link{Source: source, Target: target, Type: typ, Strength: strength})
}

func (b *builder) hasLink(source, target string) bool {
	for _, l := range b.g.Links {
		if l.Source == source && l.Target == target {
			return true
		}
	}
	return false
}

// tally counts labels, remembering first-seen order.
func tally(labels []string) ([]string, map[string]int) {
	var order []string
	counts := map[string]int{}
	for _, l := range labels {
		if _, ok := counts[l]; !ok {
			order = append(order, l)
		}
		counts[l]++
	}
	return order, counts
}

func mean[T any](items []T, f func(T) float64) float64 {
	if len(items) == 0 {
		return 0
	}
	sum := 0.0
	for _, it := range items {
		sum += f(it)
	}
	return sum / float64(len(items))
}

// Build derives nodes and links from the collections. Positions are left at
// zero; a Layout scatters them.
func Build(in Input) Graph {
	b := &builder{index: map[string]int{}}

	b.node("root", "You", GroupRoot, colorRoot, 40)

	avgAnxiety := mean(in.Moods, func(m models.MoodEntry) float64 { return float64(m.AnxietyScore) })
	b.node("anxiety", fmt.Sprintf("Avg Anxiety: %.1f", avgAnxiety), GroupSymptom, colorSymptom, 30)
	b.link("root", "anxiety", LinkStructural, 1)

	avgMood := mean(in.Moods, func(m models.MoodEntry) float64 { return float64(m.Score) })
	b.node("wellness", fmt.Sprintf("Wellness: %.1f", avgMood), GroupWellness, colorWellness, 30)
	b.link("root", "wellness", LinkStructural, 1)

	var symptoms []string
	for _, m := range in.Moods {
		symptoms = append(symptoms, m.Symptoms...)
	}
	order, counts := tally(symptoms)
	if len(order) > maxSymptomNodes {
		order = order[:maxSymptomNodes]
	}
	for _, s := range order {
		b.node("sym-"+s, s, GroupSymptom, colorSymptom, float64(15+counts[s]))
		b.link("anxiety", "sym-"+s, LinkStructural, 1)
	}

	avgSleep := mean(in.Lifestyle, func(l models.LifestyleEntry) float64 { return l.SleepHours })
	b.node("sleep", fmt.Sprintf("Avg Sleep: %.1fh", avgSleep), GroupLifestyle, colorSleep, 30)
	b.link("root", "sleep", LinkStructural, 1)

	avgExercise := mean(in.Lifestyle, func(l models.LifestyleEntry) float64 { return float64(l.ExerciseMinutes) })
	if avgExercise > 0 {
		b.node("exercise", fmt.Sprintf("Exercise: %.0fm", avgExercise), GroupLifestyle, colorExercise, 25)
		b.link("root", "exercise", LinkStructural, 1)
	}

	var factors []string
	for _, l := range in.Lifestyle {
		factors = append(factors, l.SleepFactors...)
	}
	order, counts = tally(factors)
	for _, f := range order {
		b.node("fac-"+f, f, GroupFactor, colorFactor, float64(15+counts[f]))
		b.link("sleep", "fac-"+f, LinkStructural, 1)
	}

	for _, med := range in.Medications {
		medID := "med-" + med.ID
		b.node(medID, med.Name, GroupMed, colorMed, 25)
		b.link("root", medID, LinkStructural, 1)

		for _, se := range sideEffects(med.ID, in.MedLogs) {
			seID := fmt.Sprintf("se-%s-%s", med.ID, whitespace.ReplaceAllString(strings.ToLower(se), "-"))
			b.node(seID, se, GroupSideEffect, colorSideEffect, 15)
			b.link(medID, seID, LinkStructural, 1)
		}
	}

	var distortions []string
	for _, t := range in.Thoughts {
		if t.Distortion != "" {
			distortions = append(distortions, t.Distortion)
		}
	}
	if len(distortions) > 0 {
		b.node("cbt", "Thinking Traps", GroupCBT, colorCBT, 25)
		b.link("root", "cbt", LinkStructural, 1)
		order, counts = tally(distortions)
		if len(order) > maxDistortionNodes {
			order = order[:maxDistortionNodes]
		}
		for _, d := range order {
			b.node("dist-"+d, d, GroupCBT, colorCBT, float64(15+counts[d]))
			b.link("cbt", "dist-"+d, LinkStructural, 1)
		}
	}

	correlate(b, in)
	return b.g
}

// sideEffects splits comma-separated side effects across a medication's
// logs, trimmed and deduplicated in first-seen order.
func sideEffects(medID string, logs []models.MedicationLog) []string {
	seen := map[string]bool{}
	var out []string
	for _, l := range logs {
		if l.MedicationID != medID || l.SideEffects == "" {
			continue
		}
		for _, part := range strings.Split(l.SideEffects, ",") {
			se := strings.TrimSpace(part)
			if se == "" || seen[se] {
				continue
			}
			seen[se] = true
			out = append(out, se)
		}
	}
	return out
}

// dayOf joins entries recorded on the same UTC calendar day.
func dayOf(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// correlate adds links between nodes that co-occur on the same calendar day.
func correlate(b *builder, in Input) {
	highAnxiety := map[string]bool{}
	highWellness := map[string]bool{}
	for _, m := range in.Moods {
		d := dayOf(m.Date)
		if m.AnxietyScore >= 7 {
			highAnxiety[d] = true
		}
		if m.Score >= 8 {
			highWellness[d] = true
		}
	}

	for _, l := range in.Lifestyle {
		if !highAnxiety[dayOf(l.Date)] {
			continue
		}
		for _, f := range l.SleepFactors {
			src := "fac-" + f
			if b.has(src) && !b.hasLink(src, "anxiety") {
				b.link(src, "anxiety", LinkCorrelation, 2)
			}
		}
	}

	badDays, goodDays := 0, 0
	for _, l := range in.Lifestyle {
		d := dayOf(l.Date)
		if l.SleepHours < 6 && highAnxiety[d] {
			badDays++
		}
		if l.ExerciseMinutes >= 30 && highWellness[d] {
			goodDays++
		}
	}
	if badDays >= 2 {
		b.link("sleep", "anxiety", LinkCorrelation, 3)
	}
	if goodDays >= 2 && b.has("exercise") {
		b.link("exercise", "wellness", LinkPositive, 3)
	}
}
