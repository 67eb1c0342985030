package wellness

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/julianstephens/mindcalm/internal/analytics"
	"github.com/julianstephens/mindcalm/internal/cli"
	"github.com/julianstephens/mindcalm/internal/constants"
	"github.com/julianstephens/mindcalm/internal/tui/handlers"
	"github.com/julianstephens/mindcalm/internal/tui/state"
)

type GAD7Cmd struct {
	Take    GAD7TakeCmd    `cmd:"" default:"withargs" help:"Answer the seven GAD-7 questions."`
	History GAD7HistoryCmd `cmd:"" help:"Show past scores."`
}

type GAD7TakeCmd struct {
	Answers []int `sep:"," help:"Seven comma-separated answers (0-3). Without it a form is shown."`
}

func (c *GAD7TakeCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}

	answers := c.Answers
	if len(answers) == 0 {
		fm := state.NewGAD7FormModel()
		if err := handlers.NewGAD7Form(fm).Run(); err != nil {
			return err
		}
		answers = fm.Answers
	}

	r, err := tr.SubmitGAD7(answers)
	if err != nil {
		return fmt.Errorf("failed to score GAD-7: %w", err)
	}
	fmt.Printf("GAD-7 score: %d/21 (%s anxiety)\n", r.Score, r.Interpretation)

	step := analytics.ActiveCareStep(&r.Score)
	care := analytics.CareSteps[step-1]
	fmt.Printf("Suggested care step %d: %s\n  %s\n", care.Step, care.Title, care.Description)
	return nil
}

type GAD7HistoryCmd struct {
	JSON bool `help:"Print as JSON."`
}

func (c *GAD7HistoryCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}
	results := tr.GAD7History()
	if c.JSON {
		return cli.PrintJSON(results)
	}
	if len(results) == 0 {
		fmt.Println("No GAD-7 assessments yet.")
		return nil
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tSCORE\tSEVERITY")
	for _, r := range results {
		fmt.Fprintf(w, "%s\t%d\t%s\n", r.Date.Format(constants.DateFormat), r.Score, r.Interpretation)
	}
	return w.Flush()
}
