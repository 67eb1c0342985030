package state

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/julianstephens/mindcalm/internal/constants"
	"github.com/julianstephens/mindcalm/internal/models"
	"github.com/julianstephens/mindcalm/internal/tracker"
)

// CheckInFormModel represents the form model for the daily check-in.
// Numeric inputs are kept as text the way huh inputs edit them.
type CheckInFormModel struct {
	BedTime      string
	WakeTime     string
	SleepQuality int
	SleepFactors []string
	Stress       int
	Exercise     string
	Caffeine     string
	Water        string
	Social       string
	Mood         int
	Anxiety      int
	Symptoms     []string
	Notes        string
}

// NewCheckInFormModel prefills the form from the default check-in.
func NewCheckInFormModel() *CheckInFormModel {
	d := tracker.DefaultCheckIn()
	return &CheckInFormModel{
		BedTime:      d.BedTime,
		WakeTime:     d.WakeTime,
		SleepQuality: d.SleepQuality,
		Stress:       d.StressLevel,
		Exercise:     strconv.Itoa(d.ExerciseMinutes),
		Caffeine:     strconv.Itoa(d.CaffeineIntake),
		Water:        strconv.Itoa(d.WaterIntake),
		Social:       strconv.Itoa(d.SocialMinutes),
		Mood:         d.Mood,
		Anxiety:      d.Anxiety,
	}
}

// CheckIn converts the form into the tracker's check-in input.
func (fm *CheckInFormModel) CheckIn() (tracker.CheckInForm, error) {
	form := tracker.CheckInForm{
		BedTime:      fm.BedTime,
		WakeTime:     fm.WakeTime,
		SleepQuality: fm.SleepQuality,
		SleepFactors: fm.SleepFactors,
		StressLevel:  fm.Stress,
		Mood:         fm.Mood,
		Anxiety:      fm.Anxiety,
		Symptoms:     fm.Symptoms,
		Notes:        strings.TrimSpace(fm.Notes),
	}
	fields := []struct {
		name  string
		value string
		dst   *int
	}{
		{"exercise", fm.Exercise, &form.ExerciseMinutes},
		{"caffeine", fm.Caffeine, &form.CaffeineIntake},
		{"water", fm.Water, &form.WaterIntake},
		{"social", fm.Social, &form.SocialMinutes},
	}
	for _, f := range fields {
		n, err := ParseCount(f.value)
		if err != nil {
			return tracker.CheckInForm{}, fmt.Errorf("%s: %w", f.name, err)
		}
		*f.dst = n
	}
	return form, nil
}

// ParseCount accepts a blank (zero) or a non-negative whole number.
func ParseCount(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("must be a non-negative number")
	}
	return n, nil
}

// ThoughtFormModel represents the three-step thought record.
type ThoughtFormModel struct {
	Situation          string
	Thought            string
	Emotion            string
	IntensityBefore    int
	Distortion         string
	EvidenceFor        string
	EvidenceAgainst    string
	AlternativeThought string
	IntensityAfter     int
}

func ThoughtFormFromDraft(d models.ThoughtDraft) *ThoughtFormModel {
	return &ThoughtFormModel{
		Situation:          d.Situation,
		Thought:            d.Thought,
		Emotion:            d.Emotion,
		IntensityBefore:    d.IntensityBefore,
		Distortion:         d.Distortion,
		EvidenceFor:        d.EvidenceFor,
		EvidenceAgainst:    d.EvidenceAgainst,
		AlternativeThought: d.AlternativeThought,
		IntensityAfter:     d.IntensityAfter,
	}
}

func (fm *ThoughtFormModel) Draft(step int) models.ThoughtDraft {
	return models.ThoughtDraft{
		Step:               step,
		Situation:          fm.Situation,
		Thought:            fm.Thought,
		Emotion:            fm.Emotion,
		IntensityBefore:    fm.IntensityBefore,
		Distortion:         fm.Distortion,
		EvidenceFor:        fm.EvidenceFor,
		EvidenceAgainst:    fm.EvidenceAgainst,
		AlternativeThought: fm.AlternativeThought,
		IntensityAfter:     fm.IntensityAfter,
	}
}

type WorryFormModel struct {
	Text string
}

// WorryScheduleFormModel edits the daily worry window.
type WorryScheduleFormModel struct {
	Start    string
	Duration string
}

type ActivityFormModel struct {
	Title      string
	Difficulty int
}

// MedicationFormModel represents the form model for adding a medication
type MedicationFormModel struct {
	Name         string
	Dosage       string
	Frequency    string
	Type         constants.MedicationType
	Instructions string
	TotalPills   string
	RefillDate   string
}

func NewMedicationFormModel() *MedicationFormModel {
	return &MedicationFormModel{
		Frequency:  constants.DefaultMedFrequency,
		Type:       constants.MedSSRI,
		TotalPills: strconv.Itoa(constants.DefaultMedTotalPills),
	}
}

func (fm *MedicationFormModel) Medication() (models.Medication, error) {
	pills, err := ParseCount(fm.TotalPills)
	if err != nil {
		return models.Medication{}, fmt.Errorf("total pills: %w", err)
	}
	return models.Medication{
		Name:         fm.Name,
		Dosage:       fm.Dosage,
		Frequency:    strings.TrimSpace(fm.Frequency),
		Type:         fm.Type,
		Instructions: strings.TrimSpace(fm.Instructions),
		TotalPills:   pills,
		RefillDate:   strings.TrimSpace(fm.RefillDate),
	}, nil
}

// DoseFormModel confirms one dose of MedicationID.
type DoseFormModel struct {
	MedicationID string
	SideEffects  string
	Efficacy     int
}

// GAD7FormModel holds one answer (0-3) per question.
type GAD7FormModel struct {
	Answers []int
}

func NewGAD7FormModel() *GAD7FormModel {
	return &GAD7FormModel{Answers: make([]int, len(constants.GAD7Questions))}
}

// BreathingFormModel picks a technique and the anxiety rating around a session.
type BreathingFormModel struct {
	Technique string
	Anxiety   int
}

// ConfirmationFormModel represents a generic yes/no confirmation
type ConfirmationFormModel struct {
	Message   string
	Confirmed bool
}

// WorkoutPlanFormModel holds the request for a generated weekly plan.
type WorkoutPlanFormModel struct {
	Level     string
	Equipment []string
	Days      int
}

func NewWorkoutPlanFormModel() *WorkoutPlanFormModel {
	return &WorkoutPlanFormModel{Level: "Beginner", Days: constants.DefaultDaysPerWeek}
}
