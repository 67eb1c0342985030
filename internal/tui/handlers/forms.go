package handlers

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/mindcalm/internal/assist"
	"github.com/julianstephens/mindcalm/internal/breathing"
	"github.com/julianstephens/mindcalm/internal/constants"
	"github.com/julianstephens/mindcalm/internal/tui/state"
	"github.com/julianstephens/mindcalm/internal/utils"
)

func scale(lo, hi int) []huh.Option[int] {
	opts := make([]huh.Option[int], 0, hi-lo+1)
	for i := lo; i <= hi; i++ {
		opts = append(opts, huh.NewOption(fmt.Sprint(i), i))
	}
	return opts
}

func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s cannot be empty", field)
		}
		return nil
	}
}

func validCount(s string) error {
	_, err := state.ParseCount(s)
	return err
}

func validClock(s string) error {
	if !utils.ValidateTimeFormat(s) {
		return fmt.Errorf("invalid time format, use HH:MM")
	}
	return nil
}

// NewCheckInForm creates the daily sleep, lifestyle and mood log
func NewCheckInForm(fm *state.CheckInFormModel) *huh.Form {
	factors := make([]huh.Option[string], 0, len(constants.SleepFactors))
	for _, f := range constants.SleepFactors {
		factors = append(factors, huh.NewOption(constants.SleepFactorLabels[f], string(f)))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Bed Time (HH:MM)").
				Value(&fm.BedTime).
				Validate(validClock),
			huh.NewInput().
				Title("Wake Time (HH:MM)").
				Value(&fm.WakeTime).
				Validate(validClock),
			huh.NewSelect[int]().
				Title("Sleep Quality (1-5)").
				Options(scale(1, 5)...).
				Value(&fm.SleepQuality),
			huh.NewMultiSelect[string]().
				Title("Sleep Disruptors").
				Options(factors...).
				Value(&fm.SleepFactors),
		).Title("Sleep"),
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Stress Level (1-10)").
				Options(scale(1, 10)...).
				Value(&fm.Stress),
			huh.NewInput().
				Title("Exercise (min)").
				Value(&fm.Exercise).
				Validate(validCount),
			huh.NewInput().
				Title("Caffeine (cups)").
				Value(&fm.Caffeine).
				Validate(validCount),
			huh.NewInput().
				Title("Water (glasses)").
				Value(&fm.Water).
				Validate(validCount),
			huh.NewInput().
				Title("Social Time (min)").
				Value(&fm.Social).
				Validate(validCount),
		).Title("Lifestyle"),
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Overall Wellness (1-10)").
				Options(scale(1, 10)...).
				Value(&fm.Mood),
			huh.NewSelect[int]().
				Title("Anxiety Level (1-10)").
				Options(scale(1, 10)...).
				Value(&fm.Anxiety),
			huh.NewMultiSelect[string]().
				Title("Symptoms").
				Options(huh.NewOptions(constants.Symptoms...)...).
				Value(&fm.Symptoms),
			huh.NewText().
				Title("Notes (optional)").
				Value(&fm.Notes),
		).Title("Mood"),
	).WithTheme(huh.ThemeDracula())
}

// NewThoughtForm walks the three steps of a thought record
func NewThoughtForm(fm *state.ThoughtFormModel) *huh.Form {
	distortions := []huh.Option[string]{huh.NewOption("None / not sure", "")}
	for _, d := range constants.Distortions {
		distortions = append(distortions, huh.NewOption(d.Name, d.ID))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title("Situation").
				Description("What happened? Where were you?").
				Value(&fm.Situation).
				Validate(required("situation")),
			huh.NewText().
				Title("Automatic Thought").
				Description("What went through your mind?").
				Value(&fm.Thought).
				Validate(required("thought")),
			huh.NewInput().
				Title("Emotion").
				Value(&fm.Emotion),
			huh.NewSelect[int]().
				Title("Intensity (0-10)").
				Options(scale(0, 10)...).
				Value(&fm.IntensityBefore),
		).Title("Step 1: Identify"),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Thinking Trap").
				Options(distortions...).
				Value(&fm.Distortion),
			huh.NewText().
				Title("Evidence For").
				Value(&fm.EvidenceFor),
			huh.NewText().
				Title("Evidence Against").
				Value(&fm.EvidenceAgainst),
		).Title("Step 2: Examine"),
		huh.NewGroup(
			huh.NewText().
				Title("Balanced Alternative").
				Value(&fm.AlternativeThought),
			huh.NewSelect[int]().
				Title("Intensity Now (0-10)").
				Options(scale(0, 10)...).
				Value(&fm.IntensityAfter),
		).Title("Step 3: Reframe"),
	).WithTheme(huh.ThemeDracula())
}

func NewWorryForm(fm *state.WorryFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("What's on your mind?").
				Description("Write it down and come back to it during worry time.").
				Value(&fm.Text).
				Validate(required("worry")),
		),
	).WithTheme(huh.ThemeDracula())
}

func NewWorryScheduleForm(fm *state.WorryScheduleFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Worry Time Starts (HH:MM)").
				Value(&fm.Start).
				Validate(validClock),
			huh.NewInput().
				Title("Duration (min)").
				Value(&fm.Duration).
				Validate(func(s string) error {
					n, err := state.ParseCount(s)
					if err != nil || n == 0 {
						return fmt.Errorf("must be a positive number of minutes")
					}
					return nil
				}),
		),
	).WithTheme(huh.ThemeDracula())
}

func NewActivityForm(fm *state.ActivityFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Activity").
				Value(&fm.Title).
				Validate(required("activity")),
			huh.NewSelect[int]().
				Title("Difficulty").
				Options(
					huh.NewOption("Easy", 1),
					huh.NewOption("Medium", 2),
					huh.NewOption("Hard", 3),
				).
				Value(&fm.Difficulty),
		),
	).WithTheme(huh.ThemeDracula())
}

// NewMedicationForm creates a new form for adding medications
func NewMedicationForm(fm *state.MedicationFormModel) *huh.Form {
	types := make([]huh.Option[constants.MedicationType], 0, len(constants.MedicationTypes))
	for _, t := range constants.MedicationTypes {
		types = append(types, huh.NewOption(string(t), t))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(&fm.Name).
				Validate(required("name")),
			huh.NewInput().
				Title("Dosage").
				Placeholder("e.g. 50mg").
				Value(&fm.Dosage).
				Validate(required("dosage")),
			huh.NewInput().
				Title("Frequency").
				Value(&fm.Frequency),
			huh.NewSelect[constants.MedicationType]().
				Title("Type").
				Options(types...).
				Value(&fm.Type),
			huh.NewInput().
				Title("Instructions (optional)").
				Value(&fm.Instructions),
			huh.NewInput().
				Title("Pills Remaining").
				Value(&fm.TotalPills).
				Validate(validCount),
			huh.NewInput().
				Title("Refill Date (YYYY-MM-DD)").
				Description("Leave empty if unknown").
				Value(&fm.RefillDate).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return nil
					}
					if _, err := time.Parse(constants.DateFormat, s); err != nil {
						return fmt.Errorf("invalid date format, use YYYY-MM-DD")
					}
					return nil
				}),
		),
	).WithTheme(huh.ThemeDracula())
}

func NewDoseForm(fm *state.DoseFormModel, name string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Log dose: "+name),
			huh.NewInput().
				Title("Side Effects (optional)").
				Value(&fm.SideEffects),
			huh.NewSelect[int]().
				Title("How well is it working? (1-10)").
				Options(scale(1, 10)...).
				Value(&fm.Efficacy),
		),
	).WithTheme(huh.ThemeDracula())
}

// NewGAD7Form asks the seven questions, one group each
func NewGAD7Form(fm *state.GAD7FormModel) *huh.Form {
	opts := make([]huh.Option[int], 0, len(constants.GAD7Options))
	for score, label := range constants.GAD7Options {
		opts = append(opts, huh.NewOption(label, score))
	}

	groups := make([]*huh.Group, 0, len(constants.GAD7Questions))
	for i, q := range constants.GAD7Questions {
		groups = append(groups, huh.NewGroup(
			huh.NewSelect[int]().
				Title(q).
				Description(fmt.Sprintf("Over the last 2 weeks (%d of %d)", i+1, len(constants.GAD7Questions))).
				Options(opts...).
				Value(&fm.Answers[i]),
		))
	}
	return huh.NewForm(groups...).WithTheme(huh.ThemeDracula())
}

func NewBreathingForm(fm *state.BreathingFormModel) *huh.Form {
	techniques := make([]huh.Option[string], 0, len(breathing.Techniques))
	for _, t := range breathing.Techniques {
		techniques = append(techniques, huh.NewOption(t.Name+" - "+t.Summary, t.ID))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Technique").
				Options(techniques...).
				Value(&fm.Technique),
			huh.NewSelect[int]().
				Title("Anxiety right now (1-10)").
				Options(scale(1, 10)...).
				Value(&fm.Anxiety),
		),
	).WithTheme(huh.ThemeDracula())
}

// NewAnxietyAfterForm asks for the rating once a session ends
func NewAnxietyAfterForm(fm *state.BreathingFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("How anxious do you feel now? (1-10)").
				Options(scale(1, 10)...).
				Value(&fm.Anxiety),
		),
	).WithTheme(huh.ThemeDracula())
}

func NewWorkoutPlanForm(fm *state.WorkoutPlanFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Fitness Level").
				Options(huh.NewOptions(assist.FitnessLevels...)...).
				Value(&fm.Level),
			huh.NewMultiSelect[string]().
				Title("Equipment").
				Description("Leave empty for bodyweight only").
				Options(huh.NewOptions(assist.Equipment...)...).
				Value(&fm.Equipment),
			huh.NewSelect[int]().
				Title("Days per week").
				Options(scale(1, 7)...).
				Value(&fm.Days),
		),
	).WithTheme(huh.ThemeDracula())
}

// NewConfirmationForm creates a generic yes/no confirmation form
func NewConfirmationForm(fm *state.ConfirmationFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fm.Message).
				Affirmative("Yes").
				Negative("No").
				Value(&fm.Confirmed),
		),
	).WithTheme(huh.ThemeDracula())
}
