package models

import (
	"slices"
	"time"

	"github.com/julianstephens/mindcalm/internal/constants"
)

type TaperStep struct {
	Date      string `json:"date"` // YYYY-MM-DD
	Dosage    string `json:"dosage"`
	Notes     string `json:"notes,omitempty"`
	Completed bool   `json:"completed"`
}

type Medication struct {
	ID            string                   `json:"id"`
	Name          string                   `json:"name"`
	Dosage        string                   `json:"dosage"`
	Frequency     string                   `json:"frequency"`
	Type          constants.MedicationType `json:"type"`
	Instructions  string                   `json:"instructions,omitempty"`
	TotalPills    int                      `json:"totalPills,omitempty"`
	RefillDate    string                   `json:"refillDate,omitempty"`
	TaperSchedule []TaperStep              `json:"taperSchedule,omitempty"`
}

// Clone returns a copy that shares no slices with m.
func (m Medication) Clone() Medication {
	m.TaperSchedule = slices.Clone(m.TaperSchedule)
	return m
}

type MedicationLog struct {
	ID             string    `json:"id"`
	MedicationID   string    `json:"medicationId"`
	MedicationName string    `json:"medicationName"`
	Date           time.Time `json:"date"`
	Taken          bool      `json:"taken"`
	SideEffects    string    `json:"sideEffects,omitempty"`
	EfficacyRating int       `json:"efficacyRating,omitempty"` // 1-10
}
