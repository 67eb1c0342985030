package constants

// Symptoms offered on the daily check-in.
var Symptoms = []string{
	"Racing Heart",
	"Muscle Tension",
	"Restlessness",
	"Fatigue",
	"Irritability",
	"Sleep Problems",
	"Difficulty Concentrating",
	"Excessive Worry",
}

// SleepFactor is a tag for something that disrupted sleep
type SleepFactor string

const (
	FactorScreens  SleepFactor = "screens"
	FactorAlcohol  SleepFactor = "alcohol"
	FactorCaffeine SleepFactor = "caffeine"
	FactorStress   SleepFactor = "stress"
	FactorLateMeal SleepFactor = "late_meal"
)

// SleepFactors in display order.
var SleepFactors = []SleepFactor{FactorScreens, FactorAlcohol, FactorCaffeine, FactorStress, FactorLateMeal}

var SleepFactorLabels = map[SleepFactor]string{
	FactorScreens:  "Screens <1h bed",
	FactorAlcohol:  "Alcohol",
	FactorCaffeine: "Late Caffeine",
	FactorStress:   "High Stress",
	FactorLateMeal: "Late Meal",
}

// Distortion describes a thinking trap tagged on a thought record
type Distortion struct {
	ID          string
	Name        string
	Description string
}

var Distortions = []Distortion{
	{ID: "catastrophizing", Name: "Catastrophizing", Description: "Expecting the worst possible outcome."},
	{ID: "all-or-nothing", Name: "All-or-Nothing", Description: "Seeing things in black and white categories."},
	{ID: "mind-reading", Name: "Mind Reading", Description: "Assuming you know what others are thinking."},
	{ID: "emotional-reasoning", Name: "Emotional Reasoning", Description: "Believing something is true because you feel it."},
	{ID: "fortune-telling", Name: "Fortune Telling", Description: "Predicting things will turn out badly."},
	{ID: "personalization", Name: "Personalization", Description: "Blaming yourself for things outside your control."},
	{ID: "overgeneralization", Name: "Overgeneralization", Description: "Seeing a single event as a never-ending pattern."},
	{ID: "should-statements", Name: "Should Statements", Description: "Rigid rules about how you or others should behave."},
	{ID: "labeling", Name: "Labeling", Description: "Attaching a global negative label to yourself or others."},
}

// DistortionByID returns the distortion with the given id.
func DistortionByID(id string) (Distortion, bool) {
	for _, d := range Distortions {
		if d.ID == id {
			return d, true
		}
	}
	return Distortion{}, false
}

// MedicationType is the drug class of a medication
type MedicationType string

const (
	MedSSRI           MedicationType = "SSRI"
	MedSNRI           MedicationType = "SNRI"
	MedBenzodiazepine MedicationType = "Benzodiazepine"
	MedOther          MedicationType = "Other"
)

var MedicationTypes = []MedicationType{MedSSRI, MedSNRI, MedBenzodiazepine, MedOther}

// GAD7Questions are the seven items of the GAD-7 questionnaire.
var GAD7Questions = []string{
	"Feeling nervous, anxious, or on edge",
	"Not being able to stop or control worrying",
	"Worrying too much about different things",
	"Trouble relaxing",
	"Being so restless that it is hard to sit still",
	"Becoming easily annoyed or irritable",
	"Feeling afraid as if something awful might happen",
}

// GAD7Options are the answer labels, indexed by score.
var GAD7Options = []string{
	"Not at all",
	"Several days",
	"More than half the days",
	"Nearly every day",
}

const (
	GAD7MaxAnswer = 3

	ChatGreeting = "Hi! I'm MindCalm AI. I can explain CBT concepts, help you identify thinking traps, or just listen. How can I support you today?"
)

var ChatSuggestions = []string{
	"What are the 3Cs?",
	"How do I stop catastrophic thinking?",
	"Explain 'Mental Filtering'",
	"I feel overwhelmed right now",
}
