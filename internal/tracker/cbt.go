package tracker

import (
	"strings"

	"github.com/julianstephens/mindcalm/internal/constants"
	"github.com/julianstephens/mindcalm/internal/models"
)

const evidencePrefix = "💡 AI Suggestion:\n"

// DefaultDraft is the blank three-step thought record.
func DefaultDraft() models.ThoughtDraft {
	return models.ThoughtDraft{
		Step:            1,
		IntensityBefore: constants.DefaultIntensityBefore,
		IntensityAfter:  constants.DefaultIntensityAfter,
	}
}

// AddThought stores a completed record at the front of the list and clears
// the draft.
func (t *Tracker) AddThought(r models.ThoughtRecord) (models.ThoughtRecord, error) {
	if r.ID == "" {
		r.ID = t.newID()
	}
	if r.Date.IsZero() {
		r.Date = t.now()
	}
	t.thoughts = append([]models.ThoughtRecord{r}, t.thoughts...)
	if err := t.save(constants.KeyThoughts, t.thoughts); err != nil {
		return r, err
	}
	return r, t.ClearDraft()
}

// SaveDraftAsThought converts the draft into a record.
func (t *Tracker) SaveDraftAsThought(d models.ThoughtDraft) (models.ThoughtRecord, error) {
	return t.AddThought(models.ThoughtRecord{
		Situation:          d.Situation,
		Thought:            d.Thought,
		Emotion:            d.Emotion,
		IntensityBefore:    d.IntensityBefore,
		Distortion:         d.Distortion,
		EvidenceFor:        d.EvidenceFor,
		EvidenceAgainst:    d.EvidenceAgainst,
		AlternativeThought: d.AlternativeThought,
		IntensityAfter:     d.IntensityAfter,
	})
}

// Draft returns the in-progress record, if any.
func (t *Tracker) Draft() (models.ThoughtDraft, bool) {
	if t.draft == nil {
		return models.ThoughtDraft{}, false
	}
	return *t.draft, true
}

func (t *Tracker) SaveDraft(d models.ThoughtDraft) error {
	t.draft = &d
	return t.save(constants.KeyCBTDraft, d)
}

func (t *Tracker) ClearDraft() error {
	t.draft = nil
	return t.DeleteRaw(constants.KeyCBTDraft)
}

// MergeEvidence appends an assistant suggestion to whatever evidence the
// user already wrote.
func MergeEvidence(current, suggestion string) string {
	block := evidencePrefix + suggestion
	if strings.TrimSpace(current) == "" {
		return block
	}
	return current + "\n\n" + block
}

// MergeAlternative only fills an empty alternative thought.
func MergeAlternative(current, suggestion string) string {
	if strings.TrimSpace(current) != "" {
		return current
	}
	return suggestion
}

// AddActivity plans a behavioral activation task.
func (t *Tracker) AddActivity(title string, difficulty int) (models.ActivityPlan, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return models.ActivityPlan{}, ErrRequired
	}
	if difficulty == 0 {
		difficulty = constants.DefaultActivityDifficulty
	}
	difficulty = min(max(difficulty, constants.MinActivityDifficulty), constants.MaxActivityDifficulty)

	a := models.ActivityPlan{
		ID:         t.newID(),
		Title:      title,
		Date:       t.now(),
		Difficulty: difficulty,
	}
	t.activities = append(t.activities, a)
	return a, t.save(constants.KeyActivities, t.activities)
}

func (t *Tracker) ToggleActivity(id string) (models.ActivityPlan, error) {
	i, err := indexOf(t.activities, id, func(a models.ActivityPlan) string { return a.ID })
	if err != nil {
		return models.ActivityPlan{}, err
	}
	t.activities[i].Completed = !t.activities[i].Completed
	return t.activities[i], t.save(constants.KeyActivities, t.activities)
}

func (t *Tracker) DeleteActivity(id string) error {
	i, err := indexOf(t.activities, id, func(a models.ActivityPlan) string { return a.ID })
	if err != nil {
		return err
	}
	t.activities = append(t.activities[:i:i], t.activities[i+1:]...)
	return t.save(constants.KeyActivities, t.activities)
}
