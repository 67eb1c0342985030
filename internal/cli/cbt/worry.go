package cbt

import (
	"fmt"

	"github.com/julianstephens/mindcalm/internal/cli"
	"github.com/julianstephens/mindcalm/internal/constants"
	"github.com/julianstephens/mindcalm/internal/models"
)

type WorryCmd struct {
	Add      WorryAddCmd      `cmd:"" help:"Postpone a worry until worry time."`
	List     WorryListCmd     `cmd:"" default:"withargs" help:"List postponed worries."`
	Done     WorryDoneCmd     `cmd:"" help:"Mark a worry processed, or unprocessed again."`
	Delete   WorryDeleteCmd   `cmd:"" help:"Delete a worry."`
	Schedule WorryScheduleCmd `cmd:"" help:"Show or set the daily worry window."`
}

type WorryAddCmd struct {
	Text string `arg:"" help:"The worry."`
}

func (c *WorryAddCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}
	w, err := tr.AddWorry(c.Text)
	if err != nil {
		return fmt.Errorf("failed to add worry: %w", err)
	}
	start, _ := tr.WorrySchedule()
	fmt.Printf("Postponed until %s (ID: %s)\n", start, w.ID)
	return nil
}

type WorryListCmd struct {
	All bool `short:"a" help:"Include processed worries."`
}

func (c *WorryListCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}

	start, minutes := tr.WorrySchedule()
	if tr.IsWorryTime(tr.Now()) {
		fmt.Printf("It's worry time (%s for %d min). Work through the list below.\n\n", start, minutes)
	} else {
		fmt.Printf("Worry time is %s for %d min. Until then, let these wait.\n\n", start, minutes)
	}

	active := tr.ActiveWorries()
	if len(active) == 0 {
		fmt.Println("No postponed worries.")
	}
	printWorries(active)

	if c.All {
		if processed := tr.ProcessedWorries(); len(processed) > 0 {
			fmt.Println("\nProcessed:")
			printWorries(processed)
		}
	}
	return nil
}

func printWorries(ws []models.PostponedWorry) {
	for _, w := range ws {
		mark := "[ ]"
		if w.Processed {
			mark = "[x]"
		}
		fmt.Printf("%s %s  %s  (%s)\n", mark, w.ID, w.Text, w.DateLogged.Format(constants.DateFormat))
	}
}

type WorryDoneCmd struct {
	ID string `arg:"" help:"Worry ID."`
}

func (c *WorryDoneCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}
	w, err := tr.ToggleWorry(c.ID)
	if err != nil {
		return fmt.Errorf("failed to update worry: %w", err)
	}
	if w.Processed {
		fmt.Printf("Processed: %s\n", w.Text)
	} else {
		fmt.Printf("Moved back to postponed: %s\n", w.Text)
	}
	return nil
}

type WorryDeleteCmd struct {
	ID string `arg:"" help:"Worry ID."`
}

func (c *WorryDeleteCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}
	if err := tr.DeleteWorry(c.ID); err != nil {
		return fmt.Errorf("failed to delete worry: %w", err)
	}
	fmt.Printf("Deleted worry (ID: %s)\n", c.ID)
	return nil
}

type WorryScheduleCmd struct {
	Start    string `help:"Start time (HH:MM)."`
	Duration int    `help:"Length in minutes."`
}

func (c *WorryScheduleCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}
	start, minutes := tr.WorrySchedule()
	if c.Start == "" && c.Duration == 0 {
		fmt.Printf("Worry time: %s for %d min\n", start, minutes)
		return nil
	}
	if c.Start != "" {
		start = c.Start
	}
	if c.Duration != 0 {
		minutes = c.Duration
	}
	if err := tr.SetWorrySchedule(start, minutes); err != nil {
		return err
	}
	fmt.Printf("Worry time set to %s for %d min\n", start, minutes)
	return nil
}
