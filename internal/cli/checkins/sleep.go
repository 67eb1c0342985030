package checkins

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/julianstephens/mindcalm/internal/analytics"
	"github.com/julianstephens/mindcalm/internal/cli"
	"github.com/julianstephens/mindcalm/internal/constants"
)

// SleepCmd reports on the lifestyle log.
type SleepCmd struct {
	JSON bool `help:"Print as JSON."`
}

type sleepReport struct {
	LastScore *int                         `json:"lastScore,omitempty"`
	Debt      float64                      `json:"debt"`
	Averages  *analytics.LifestyleAverages `json:"averages,omitempty"`
	Trend     []analytics.LifestyleRow     `json:"trend"`
}

func (c *SleepCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}
	lifestyle := tr.Lifestyle()

	rep := sleepReport{
		Debt:  analytics.SleepDebt(lifestyle),
		Trend: analytics.LifestyleTrend(lifestyle, tr.Moods()),
	}
	if avg, ok := analytics.AverageLifestyle(lifestyle); ok {
		rep.Averages = &avg
	}
	if n := len(lifestyle); n > 0 {
		last := lifestyle[n-1]
		score := analytics.SleepScore(last.SleepHours, last.SleepQuality, last.SleepFactors)
		rep.LastScore = &score
	}

	if c.JSON {
		return cli.PrintJSON(rep)
	}
	if rep.Averages == nil {
		fmt.Println("No sleep logged yet. Run 'mindcalm checkin' to start.")
		return nil
	}

	last := lifestyle[len(lifestyle)-1]
	fmt.Printf("Last night: %.1fh, sleep score %d/100\n", last.SleepHours, *rep.LastScore)
	if len(last.SleepFactors) > 0 {
		labels := make([]string, 0, len(last.SleepFactors))
		for _, f := range last.SleepFactors {
			label, ok := constants.SleepFactorLabels[constants.SleepFactor(f)]
			if !ok {
				label = f
			}
			labels = append(labels, label)
		}
		fmt.Printf("Disruptors: %s\n", strings.Join(labels, ", "))
	}
	fmt.Printf("Sleep debt (last %d nights): %.1fh\n", constants.RecentWindowEntries, rep.Debt)
	fmt.Printf("Averages: %.1fh sleep, quality %.1f/5, %d min exercise, %d min social, %.1f caffeine\n\n",
		rep.Averages.Sleep, rep.Averages.SleepQuality, rep.Averages.Exercise, rep.Averages.Social, rep.Averages.Caffeine)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DAY\tSLEEP\tEXERCISE\tMOOD\tANXIETY")
	for _, row := range rep.Trend {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", row.Name, num(row.Sleep), num(row.Exercise), num(row.Mood), num(row.Anxiety))
	}
	return w.Flush()
}

func num(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%g", *v)
}
