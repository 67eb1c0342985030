package analytics

import (
	"github.com/julianstephens/mindcalm/internal/constants"
)

// AnxietyBand labels a 0-10 anxiety level.
func AnxietyBand(level int) string {
	switch {
	case level == 0:
		return "None"
	case level <= 3:
		return "Mild"
	case level <= 7:
		return "Moderate"
	default:
		return "Severe"
	}
}

// CareAction points from a stepped-care card to the view that carries it out.
type CareAction struct {
	Label string                 `json:"label"`
	View  constants.SessionState `json:"view"`
}

// CareStep is one level of the stepped-care model for GAD.
type CareStep struct {
	Step        int          `json:"step"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Target      string       `json:"target"`
	Actions     []CareAction `json:"actions"`
}

var CareSteps = []CareStep{
	{
		Step:        1,
		Title:       "Assessment & Monitoring",
		Description: "Identification of anxiety symptoms, active monitoring, and psychoeducation.",
		Target:      "All suspected presentations",
		Actions: []CareAction{
			{Label: "Track Symptoms Daily", View: constants.StateLifestyle},
			{Label: "Take GAD-7 Assessment", View: constants.StateProgress},
		},
	},
	{
		Step:        2,
		Title:       "Low-Intensity Interventions",
		Description: "Guided self-help, psychoeducational groups, and lifestyle changes.",
		Target:      "Mild to Moderate GAD",
		Actions: []CareAction{
			{Label: "Practice CBT Tools", View: constants.StateCBT},
			{Label: "Breathing Exercises", View: constants.StateBreathing},
			{Label: "Sleep Hygiene", View: constants.StateLifestyle},
		},
	},
	{
		Step:        3,
		Title:       "High-Intensity Interventions",
		Description: "Individual CBT with a therapist or pharmacological treatment (SSRIs/SNRIs).",
		Target:      "Moderate to Severe GAD",
		Actions: []CareAction{
			{Label: "Medication Tracker", View: constants.StateMedication},
			{Label: "Generate Clinician Report", View: constants.StateProgress},
		},
	},
	{
		Step:        4,
		Title:       "Specialist Treatment",
		Description: "Multi-disciplinary care for complex, treatment-refractory, or high-risk cases.",
		Target:      "Complex GAD",
	},
}

// ActiveCareStep picks the recommended step from the latest GAD-7 score.
// Without a score the user starts at step 1. Step 4 is never chosen
// automatically.
func ActiveCareStep(latestGAD7 *int) int {
	if latestGAD7 == nil {
		return 1
	}
	switch s := *latestGAD7; {
	case s >= 10:
		return 3
	case s >= 5:
		return 2
	default:
		return 1
	}
}
