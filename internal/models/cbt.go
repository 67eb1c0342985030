package models

import "time"

type ThoughtRecord struct {
	ID                 string    `json:"id"`
	Date               time.Time `json:"date"`
	Situation          string    `json:"situation"`
	Thought            string    `json:"thought"`
	Emotion            string    `json:"emotion"`
	IntensityBefore    int       `json:"intensityBefore"`
	Distortion         string    `json:"distortion,omitempty"`
	EvidenceFor        string    `json:"evidenceFor,omitempty"`
	EvidenceAgainst    string    `json:"evidenceAgainst,omitempty"`
	AlternativeThought string    `json:"alternativeThought,omitempty"`
	IntensityAfter     int       `json:"intensityAfter,omitempty"`
}

// Reduction is how far the emotion's intensity dropped after restructuring.
// A missing after-score counts as no change; increases count as zero.
func (t ThoughtRecord) Reduction() int {
	after := t.IntensityAfter
	if after == 0 {
		after = t.IntensityBefore
	}
	if d := t.IntensityBefore - after; d > 0 {
		return d
	}
	return 0
}

// ThoughtDraft is the in-progress 3-step form kept under the draft key.
type ThoughtDraft struct {
	Step               int    `json:"step"`
	Situation          string `json:"situation"`
	Thought            string `json:"thought"`
	Emotion            string `json:"emotion"`
	IntensityBefore    int    `json:"intensityBefore"`
	Distortion         string `json:"distortion"`
	EvidenceFor        string `json:"evidenceFor"`
	EvidenceAgainst    string `json:"evidenceAgainst"`
	AlternativeThought string `json:"alternativeThought"`
	IntensityAfter     int    `json:"intensityAfter"`
}

type PostponedWorry struct {
	ID         string    `json:"id"`
	Text       string    `json:"text"`
	DateLogged time.Time `json:"dateLogged"`
	Processed  bool      `json:"processed"`
}

// ActivityPlan is a behavioral activation task.
type ActivityPlan struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Date       time.Time `json:"date"`
	Difficulty int       `json:"difficulty"` // 1-3
	Completed  bool      `json:"completed"`
	MoodAfter  int       `json:"moodAfter,omitempty"`
}
