package state

import (
	"fmt"

	"github.com/julianstephens/mindcalm/internal/validation"
)

// UpdateValidationStatus runs validation and updates the warning message
func (m *Model) UpdateValidationStatus() {
	result := validation.New().Validate(m.Tracker.ValidationInput())
	m.ValidationConflicts = result.Conflicts
	if result.HasConflicts() {
		m.ValidationWarning = fmt.Sprintf("⚠ %d data problem(s). Run 'mindcalm validate' for details", len(result.Conflicts))
	} else {
		m.ValidationWarning = ""
	}
}
