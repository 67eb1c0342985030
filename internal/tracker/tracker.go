// Package tracker is the in-memory state container. Every collection is
// loaded from its own storage key and every mutation rewrites that key.
package tracker

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/mindcalm/internal/constants"
	"github.com/julianstephens/mindcalm/internal/logger"
	"github.com/julianstephens/mindcalm/internal/models"
	"github.com/julianstephens/mindcalm/internal/storage"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrRequired     = errors.New("required field is empty")
	ErrUnknownKey   = errors.New("unknown state key")
	ErrInvalidInput = errors.New("invalid input")
)

// Tracker is not safe for concurrent use; callers that share one (the API
// server) serialize access themselves.
type Tracker struct {
	store storage.Provider
	now   func() time.Time
	newID func() string

	moods      []models.MoodEntry
	lifestyle  []models.LifestyleEntry
	thoughts   []models.ThoughtRecord
	worries    []models.PostponedWorry
	meds       []models.Medication
	medLogs    []models.MedicationLog
	activities []models.ActivityPlan
	breathing  []models.BreathingSession
	gad7       []models.GAD7Result
	workouts   []models.Workout

	theme         models.Theme
	draft         *models.ThoughtDraft
	worryTime     string
	worryDuration int
}

type Option func(*Tracker)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

// WithIDs replaces the uuid generator.
func WithIDs(next func() string) Option {
	return func(t *Tracker) { t.newID = next }
}

// New returns an empty tracker over a loaded store. Call Load to read state.
func New(store storage.Provider, opts ...Option) *Tracker {
	t := &Tracker{
		store:         store,
		now:           time.Now,
		newID:         uuid.NewString,
		theme:         models.ThemeLight,
		worryTime:     constants.DefaultWorryTime,
		worryDuration: constants.DefaultWorryDurationMin,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Load reads every key. A missing or unreadable document leaves its
// collection empty; only storage failures are returned.
func (t *Tracker) Load() error {
	for _, key := range constants.AllKeys {
		if err := t.loadKey(key); err != nil {
			return err
		}
	}
	return nil
}

func (t *Tracker) loadKey(key string) error {
	raw, err := t.store.Get(key)
	if errors.Is(err, storage.ErrKeyNotFound) {
		raw = nil
	} else if err != nil {
		return fmt.Errorf("failed to read %s: %w", key, err)
	}

	target := t.target(key)
	if target == nil {
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	t.reset(key)
	if raw == nil {
		return nil
	}
	if err := json.Unmarshal(raw, target); err != nil {
		logger.Warn("Ignoring unreadable state", "key", key, "error", err)
		t.reset(key)
	}
	return nil
}

// target returns a pointer to the field a key decodes into.
func (t *Tracker) target(key string) any {
	switch key {
	case constants.KeyMoods:
		return &t.moods
	case constants.KeyLifestyle:
		return &t.lifestyle
	case constants.KeyThoughts:
		return &t.thoughts
	case constants.KeyWorries:
		return &t.worries
	case constants.KeyMedications:
		return &t.meds
	case constants.KeyMedLogs:
		return &t.medLogs
	case constants.KeyActivities:
		return &t.activities
	case constants.KeyBreathingSessions:
		return &t.breathing
	case constants.KeyGAD7History:
		return &t.gad7
	case constants.KeyWorkouts:
		return &t.workouts
	case constants.KeyTheme:
		return &t.theme
	case constants.KeyCBTDraft:
		return &t.draft
	case constants.KeyWorryScheduleTime:
		return &t.worryTime
	case constants.KeyWorryScheduleDuration:
		return &t.worryDuration
	}
	return nil
}

func (t *Tracker) reset(key string) {
	switch key {
	case constants.KeyMoods:
		t.moods = nil
	case constants.KeyLifestyle:
		t.lifestyle = nil
	case constants.KeyThoughts:
		t.thoughts = nil
	case constants.KeyWorries:
		t.worries = nil
	case constants.KeyMedications:
		t.meds = nil
	case constants.KeyMedLogs:
		t.medLogs = nil
	case constants.KeyActivities:
		t.activities = nil
	case constants.KeyBreathingSessions:
		t.breathing = nil
	case constants.KeyGAD7History:
		t.gad7 = nil
	case constants.KeyWorkouts:
		t.workouts = nil
	case constants.KeyTheme:
		t.theme = models.ThemeLight
	case constants.KeyCBTDraft:
		t.draft = nil
	case constants.KeyWorryScheduleTime:
		t.worryTime = constants.DefaultWorryTime
	case constants.KeyWorryScheduleDuration:
		t.worryDuration = constants.DefaultWorryDurationMin
	}
}

func (t *Tracker) save(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := t.store.Set(key, data); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}

// Raw returns the stored document for a known key.
func (t *Tracker) Raw(key string) ([]byte, error) {
	if !slices.Contains(constants.AllKeys, key) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return t.store.Get(key)
}

// SetRaw replaces a whole document and reloads it into memory.
func (t *Tracker) SetRaw(key string, value []byte) error {
	if !slices.Contains(constants.AllKeys, key) {
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	if !json.Valid(value) {
		return fmt.Errorf("%w: value for %s is not JSON", ErrInvalidInput, key)
	}
	if err := t.store.Set(key, value); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return t.loadKey(key)
}

// DeleteRaw removes a document, returning its collection to the default.
func (t *Tracker) DeleteRaw(key string) error {
	if !slices.Contains(constants.AllKeys, key) {
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	if err := t.store.Delete(key); err != nil && !errors.Is(err, storage.ErrKeyNotFound) {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	t.reset(key)
	return nil
}

// Now is the tracker's clock.
func (t *Tracker) Now() time.Time { return t.now() }

func (t *Tracker) Moods() []models.MoodEntry              { return cloneEach(t.moods) }
func (t *Tracker) Lifestyle() []models.LifestyleEntry     { return cloneEach(t.lifestyle) }
func (t *Tracker) Thoughts() []models.ThoughtRecord       { return slices.Clone(t.thoughts) }
func (t *Tracker) Worries() []models.PostponedWorry       { return slices.Clone(t.worries) }
func (t *Tracker) Medications() []models.Medication       { return cloneEach(t.meds) }
func (t *Tracker) MedicationLogs() []models.MedicationLog { return slices.Clone(t.medLogs) }
func (t *Tracker) Activities() []models.ActivityPlan      { return slices.Clone(t.activities) }
func (t *Tracker) BreathingSessions() []models.BreathingSession {
	return slices.Clone(t.breathing)
}
func (t *Tracker) GAD7History() []models.GAD7Result { return slices.Clone(t.gad7) }
func (t *Tracker) Workouts() []models.Workout       { return cloneEach(t.workouts) }

// cloneEach copies items along with the slices nested in each of them.
func cloneEach[T interface{ Clone() T }](items []T) []T {
	if items == nil {
		return nil
	}
	out := make([]T, len(items))
	for i, it := range items {
		out[i] = it.Clone()
	}
	return out
}

// indexOf finds the position of the element with the given id.
func indexOf[T any](items []T, id string, idOf func(T) string) (int, error) {
	i := slices.IndexFunc(items, func(it T) bool { return idOf(it) == id })
	if i < 0 {
		return -1, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return i, nil
}
