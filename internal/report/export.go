// Package report renders what a user shares with their clinician: the
// medication history as text and the progress report as a PDF.
package report

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/julianstephens/mindcalm/internal/analytics"
	"github.com/julianstephens/mindcalm/internal/models"
)

// clipboardWriteAll is swapped out in tests.
var clipboardWriteAll = clipboard.WriteAll

// MedicationHistory is the dose log as one line per dose, newest first.
func MedicationHistory(logs []models.MedicationLog) string {
	return strings.Join(analytics.MedicationHistory(logs), "\n")
}

// CopyMedicationHistory puts the dose log on the system clipboard and
// returns the copied text.
func CopyMedicationHistory(logs []models.MedicationLog) (string, error) {
	text := MedicationHistory(logs)
	if text == "" {
		return "", fmt.Errorf("no medication logs to export")
	}
	if err := clipboardWriteAll(text); err != nil {
		return "", fmt.Errorf("failed to copy to clipboard: %w", err)
	}
	return text, nil
}
