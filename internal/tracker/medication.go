package tracker

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/mindcalm/internal/analytics"
	"github.com/julianstephens/mindcalm/internal/constants"
	"github.com/julianstephens/mindcalm/internal/models"
)

// AddMedication requires a name and dosage and fills the remaining defaults.
func (t *Tracker) AddMedication(m models.Medication) (models.Medication, error) {
	m.Name = strings.TrimSpace(m.Name)
	m.Dosage = strings.TrimSpace(m.Dosage)
	if m.Name == "" || m.Dosage == "" {
		return models.Medication{}, fmt.Errorf("%w: name and dosage", ErrRequired)
	}
	if m.ID == "" {
		m.ID = t.newID()
	}
	if m.Frequency == "" {
		m.Frequency = constants.DefaultMedFrequency
	}
	if m.Type == "" {
		m.Type = constants.MedOther
	}
	if m.TotalPills == 0 {
		m.TotalPills = constants.DefaultMedTotalPills
	}
	t.meds = append(t.meds, m)
	return m, t.save(constants.KeyMedications, t.meds)
}

// DeleteMedication removes the medication. Its dose logs are kept.
func (t *Tracker) DeleteMedication(id string) error {
	i, err := t.medIndex(id)
	if err != nil {
		return err
	}
	t.meds = append(t.meds[:i:i], t.meds[i+1:]...)
	return t.save(constants.KeyMedications, t.meds)
}

func (t *Tracker) Medication(id string) (models.Medication, error) {
	i, err := t.medIndex(id)
	if err != nil {
		return models.Medication{}, err
	}
	return t.meds[i].Clone(), nil
}

func (t *Tracker) medIndex(id string) (int, error) {
	return indexOf(t.meds, id, func(m models.Medication) string { return m.ID })
}

// ConfirmDose logs one taken dose and decrements the pill count when any
// remain. An efficacy of 0 means unrated and is stored as the default.
func (t *Tracker) ConfirmDose(medID, sideEffects string, efficacy int) (models.MedicationLog, error) {
	i, err := t.medIndex(medID)
	if err != nil {
		return models.MedicationLog{}, err
	}
	if efficacy == 0 {
		efficacy = constants.DefaultEfficacy
	}
	if efficacy < 1 || efficacy > 10 {
		return models.MedicationLog{}, fmt.Errorf("%w: efficacy must be 1-10", ErrInvalidInput)
	}

	log := models.MedicationLog{
		ID:             t.newID(),
		MedicationID:   medID,
		MedicationName: t.meds[i].Name,
		Date:           t.now(),
		Taken:          true,
		SideEffects:    strings.TrimSpace(sideEffects),
		EfficacyRating: efficacy,
	}
	t.medLogs = append([]models.MedicationLog{log}, t.medLogs...)
	if err := t.save(constants.KeyMedLogs, t.medLogs); err != nil {
		return log, err
	}

	if t.meds[i].TotalPills > 0 {
		t.meds[i].TotalPills--
		if err := t.save(constants.KeyMedications, t.meds); err != nil {
			return log, err
		}
	}
	return log, nil
}

// IsTakenToday reports whether any dose was logged since local midnight.
func (t *Tracker) IsTakenToday(medID string, now time.Time) bool {
	midnight := analytics.StartOfDay(now)
	for _, l := range t.medLogs {
		if l.MedicationID == medID && !l.Date.Before(midnight) {
			return true
		}
	}
	return false
}

// AddTaperStep appends a dated dosage change to a medication's taper plan.
func (t *Tracker) AddTaperStep(medID string, step models.TaperStep) (models.Medication, error) {
	i, err := t.medIndex(medID)
	if err != nil {
		return models.Medication{}, err
	}
	if _, err := time.Parse(constants.DateFormat, step.Date); err != nil {
		return models.Medication{}, fmt.Errorf("%w: taper date %q must be YYYY-MM-DD", ErrInvalidInput, step.Date)
	}
	if strings.TrimSpace(step.Dosage) == "" {
		return models.Medication{}, fmt.Errorf("%w: taper dosage", ErrRequired)
	}
	t.meds[i].TaperSchedule = append(t.meds[i].TaperSchedule, step)
	return t.meds[i].Clone(), t.save(constants.KeyMedications, t.meds)
}

// CompleteTaperStep toggles the step at index.
func (t *Tracker) CompleteTaperStep(medID string, index int) (models.Medication, error) {
	i, err := t.medIndex(medID)
	if err != nil {
		return models.Medication{}, err
	}
	steps := t.meds[i].TaperSchedule
	if index < 0 || index >= len(steps) {
		return models.Medication{}, fmt.Errorf("%w: taper step %d", ErrNotFound, index)
	}
	steps[index].Completed = !steps[index].Completed
	return t.meds[i].Clone(), t.save(constants.KeyMedications, t.meds)
}
