package cbt

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/julianstephens/mindcalm/internal/cli"
	"github.com/julianstephens/mindcalm/internal/constants"
)

var difficultyLabels = map[int]string{1: "Easy", 2: "Medium", 3: "Hard"}

// ActivityCmd manages behavioral activation tasks.
type ActivityCmd struct {
	Add    ActivityAddCmd    `cmd:"" help:"Plan an activity."`
	List   ActivityListCmd   `cmd:"" default:"withargs" help:"List planned activities."`
	Done   ActivityDoneCmd   `cmd:"" help:"Toggle an activity's completion."`
	Delete ActivityDeleteCmd `cmd:"" help:"Delete an activity."`
}

type ActivityAddCmd struct {
	Title      string `arg:"" help:"What you plan to do."`
	Difficulty int    `short:"d" default:"1" help:"1 (easy) to 3 (hard)."`
}

func (c *ActivityAddCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}
	a, err := tr.AddActivity(c.Title, c.Difficulty)
	if err != nil {
		return fmt.Errorf("failed to add activity: %w", err)
	}
	fmt.Printf("Planned %q (%s, ID: %s)\n", a.Title, difficultyLabels[a.Difficulty], a.ID)
	return nil
}

type ActivityListCmd struct{}

func (c *ActivityListCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}
	acts := tr.Activities()
	if len(acts) == 0 {
		fmt.Println("No activities planned. Start with something easy.")
		return nil
	}

	done := 0
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDONE\tDIFFICULTY\tDATE\tTITLE")
	for _, a := range acts {
		mark := " "
		if a.Completed {
			mark = "x"
			done++
		}
		fmt.Fprintf(w, "%s\t[%s]\t%s\t%s\t%s\n", a.ID, mark, difficultyLabels[a.Difficulty], a.Date.Format(constants.DateFormat), a.Title)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("\n%d of %d completed\n", done, len(acts))
	return nil
}

type ActivityDoneCmd struct {
	ID string `arg:"" help:"Activity ID."`
}

func (c *ActivityDoneCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}
	a, err := tr.ToggleActivity(c.ID)
	if err != nil {
		return fmt.Errorf("failed to update activity: %w", err)
	}
	state := "not done"
	if a.Completed {
		state = "done"
	}
	fmt.Printf("%s: %s\n", a.Title, state)
	return nil
}

type ActivityDeleteCmd struct {
	ID string `arg:"" help:"Activity ID."`
}

func (c *ActivityDeleteCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}
	if err := tr.DeleteActivity(c.ID); err != nil {
		return fmt.Errorf("failed to delete activity: %w", err)
	}
	fmt.Printf("Deleted activity (ID: %s)\n", c.ID)
	return nil
}
