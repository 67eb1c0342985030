package checkins

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/julianstephens/mindcalm/internal/analytics"
	"github.com/julianstephens/mindcalm/internal/cli"
	"github.com/julianstephens/mindcalm/internal/models"
	"github.com/julianstephens/mindcalm/internal/utils"
)

type MoodCmd struct {
	Add  MoodAddCmd  `cmd:"" help:"Log a mood entry without the lifestyle fields."`
	List MoodListCmd `cmd:"" default:"withargs" help:"List mood entries."`
}

type MoodAddCmd struct {
	Score    int      `arg:"" help:"Overall wellness (1-10)."`
	Anxiety  int      `arg:"" help:"Anxiety level (1-10)."`
	Symptoms []string `help:"Symptoms felt." sep:","`
	Notes    string   `help:"Free-form notes."`
	Date     string   `help:"Day of the entry: today, yesterday or YYYY-MM-DD." default:"today"`
}

func (c *MoodAddCmd) Run(ctx *cli.Context) error {
	if c.Score < 1 || c.Score > 10 || c.Anxiety < 1 || c.Anxiety > 10 {
		return fmt.Errorf("score and anxiety must be between 1 and 10")
	}
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}
	date, err := utils.ParseDay(c.Date, tr.Now())
	if err != nil {
		return err
	}

	m, err := tr.AddMood(models.MoodEntry{
		Date:         date,
		Score:        c.Score,
		AnxietyScore: c.Anxiety,
		Symptoms:     c.Symptoms,
		Notes:        strings.TrimSpace(c.Notes),
	})
	if err != nil {
		return fmt.Errorf("failed to save mood: %w", err)
	}
	fmt.Printf("Logged mood (ID: %s)\n", m.ID)
	return nil
}

type MoodListCmd struct {
	Range string `short:"r" default:"30d" help:"Time range: 7d, 30d, 90d or all."`
	JSON  bool   `help:"Print as JSON."`
}

func (c *MoodListCmd) Run(ctx *cli.Context) error {
	r, err := models.ParseTimeRange(c.Range)
	if err != nil {
		return err
	}
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}
	moods := tr.Window(r).Moods
	if c.JSON {
		return cli.PrintJSON(moods)
	}
	if len(moods) == 0 {
		fmt.Println("No mood entries in this range.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tMOOD\tANXIETY\tSYMPTOMS")
	for _, m := range moods {
		fmt.Fprintf(w, "%s\t%d\t%d (%s)\t%s\n",
			m.Date.Format("2006-01-02 15:04"), m.Score, m.AnxietyScore,
			analytics.AnxietyBand(m.AnxietyScore), strings.Join(m.Symptoms, ", "))
	}
	return w.Flush()
}
