package checkins

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/julianstephens/mindcalm/internal/analytics"
	"github.com/julianstephens/mindcalm/internal/cli"
	"github.com/julianstephens/mindcalm/internal/constants"
	"github.com/julianstephens/mindcalm/internal/tracker"
	"github.com/julianstephens/mindcalm/internal/tui/handlers"
	"github.com/julianstephens/mindcalm/internal/tui/state"
)

// CheckinCmd records the combined sleep, lifestyle and mood log.
type CheckinCmd struct {
	Interactive bool `short:"i" help:"Fill in the check-in with a form."`

	Mood     int      `help:"Overall wellness (1-10)." default:"5"`
	Anxiety  int      `help:"Anxiety level (1-10)." default:"5"`
	Symptoms []string `help:"Symptoms felt today." sep:","`
	Notes    string   `help:"Free-form notes."`

	Sleep    float64  `help:"Hours slept, used when bed or wake time is missing." default:"7.5"`
	Bed      string   `help:"Bed time (HH:MM)." default:"23:00"`
	Wake     string   `help:"Wake time (HH:MM)." default:"06:30"`
	Quality  int      `help:"Sleep quality (1-5)." default:"3"`
	Factors  []string `help:"Sleep disruptors: screens, alcohol, caffeine, stress, late_meal." sep:","`
	Stress   int      `help:"Stress level (1-10)."`
	Exercise int      `help:"Minutes of exercise." default:"30"`
	Caffeine int      `help:"Cups of caffeine." default:"1"`
	Water    int      `help:"Glasses of water." default:"4"`
	Social   int      `help:"Minutes of social time." default:"30"`
}

func (c *CheckinCmd) form() (tracker.CheckInForm, error) {
	if c.Mood < 1 || c.Mood > 10 || c.Anxiety < 1 || c.Anxiety > 10 {
		return tracker.CheckInForm{}, fmt.Errorf("mood and anxiety must be between 1 and 10")
	}
	if c.Quality < 0 || c.Quality > 5 {
		return tracker.CheckInForm{}, fmt.Errorf("sleep quality must be between 1 and 5")
	}
	for _, f := range c.Factors {
		if !slices.Contains(constants.SleepFactors, constants.SleepFactor(f)) {
			return tracker.CheckInForm{}, fmt.Errorf("unknown sleep factor %q", f)
		}
	}
	for i, s := range c.Symptoms {
		if j := slices.IndexFunc(constants.Symptoms, func(known string) bool { return strings.EqualFold(known, s) }); j >= 0 {
			c.Symptoms[i] = constants.Symptoms[j]
		}
	}
	return tracker.CheckInForm{
		SleepHours:      c.Sleep,
		BedTime:         c.Bed,
		WakeTime:        c.Wake,
		SleepQuality:    c.Quality,
		SleepFactors:    c.Factors,
		StressLevel:     c.Stress,
		ExerciseMinutes: c.Exercise,
		CaffeineIntake:  c.Caffeine,
		WaterIntake:     c.Water,
		SocialMinutes:   c.Social,
		Mood:            c.Mood,
		Anxiety:         c.Anxiety,
		Symptoms:        c.Symptoms,
		Notes:           strings.TrimSpace(c.Notes),
	}, nil
}

func interactiveForm() (tracker.CheckInForm, error) {
	fm := state.NewCheckInFormModel()
	if err := handlers.NewCheckInForm(fm).Run(); err != nil {
		return tracker.CheckInForm{}, err
	}
	return fm.CheckIn()
}

func (c *CheckinCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}

	var form tracker.CheckInForm
	if c.Interactive {
		form, err = interactiveForm()
	} else {
		form, err = c.form()
	}
	if err != nil {
		return err
	}

	res, err := tr.CheckIn(form)
	if err != nil {
		return fmt.Errorf("failed to save check-in: %w", err)
	}

	l := res.Lifestyle
	fmt.Printf("✓ Check-in saved for %s\n", res.Mood.Date.Format(constants.DateFormat))
	fmt.Printf("  Mood %d/10, anxiety %d/10 (%s)\n", res.Mood.Score, res.Mood.AnxietyScore, analytics.AnxietyBand(res.Mood.AnxietyScore))
	fmt.Printf("  Sleep %.1fh, score %d/100\n", l.SleepHours, analytics.SleepScore(l.SleepHours, l.SleepQuality, l.SleepFactors))

	if res.NeedsCoping {
		tip := ctx.Assistant(context.Background()).CopingStrategy(context.Background(), res.Mood.AnxietyScore, res.Mood.Symptoms, res.Mood.Notes)
		fmt.Println("\nYour anxiety is high today. A suggestion:")
		fmt.Println(tip)
	}
	return nil
}
