package cbt

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/julianstephens/mindcalm/internal/analytics"
	"github.com/julianstephens/mindcalm/internal/cli"
	"github.com/julianstephens/mindcalm/internal/constants"
	"github.com/julianstephens/mindcalm/internal/models"
	"github.com/julianstephens/mindcalm/internal/tracker"
	"github.com/julianstephens/mindcalm/internal/tui/handlers"
	"github.com/julianstephens/mindcalm/internal/tui/state"
)

type ThoughtCmd struct {
	Add      ThoughtAddCmd      `cmd:"" help:"Record a thought."`
	List     ThoughtListCmd     `cmd:"" default:"withargs" help:"List thought records."`
	Analyze  ThoughtAnalyzeCmd  `cmd:"" help:"Ask the assistant to name the thinking trap and suggest a reframe."`
	Evidence ThoughtEvidenceCmd `cmd:"" help:"Ask the assistant for evidence against a thought."`
	Draft    DraftCmd           `cmd:"" help:"Manage the in-progress thought record."`
	Traps    TrapsCmd           `cmd:"" help:"List the thinking traps."`
}

type ThoughtAddCmd struct {
	Interactive bool   `short:"i" help:"Fill in the record with a form, resuming any saved draft."`
	Situation   string `help:"What happened."`
	Thought     string `help:"The automatic thought."`
	Emotion     string `help:"The emotion it caused."`
	Before      int    `help:"Emotion intensity before (0-10)." default:"6"`
	Distortion  string `help:"Thinking trap id (see 'thought traps')."`
	For         string `name:"for" help:"Evidence for the thought."`
	Against     string `help:"Evidence against the thought."`
	Alternative string `help:"Balanced alternative thought."`
	After       int    `help:"Emotion intensity after (0-10)." default:"3"`
}

func (c *ThoughtAddCmd) record() (models.ThoughtRecord, error) {
	if strings.TrimSpace(c.Situation) == "" || strings.TrimSpace(c.Thought) == "" {
		return models.ThoughtRecord{}, fmt.Errorf("%w: --situation and --thought", tracker.ErrRequired)
	}
	if c.Before < 0 || c.Before > 10 || c.After < 0 || c.After > 10 {
		return models.ThoughtRecord{}, fmt.Errorf("intensity must be between 0 and 10")
	}
	if c.Distortion != "" {
		if _, ok := constants.DistortionByID(c.Distortion); !ok {
			return models.ThoughtRecord{}, fmt.Errorf("unknown thinking trap %q", c.Distortion)
		}
	}
	return models.ThoughtRecord{
		Situation:          strings.TrimSpace(c.Situation),
		Thought:            strings.TrimSpace(c.Thought),
		Emotion:            strings.TrimSpace(c.Emotion),
		IntensityBefore:    c.Before,
		Distortion:         c.Distortion,
		EvidenceFor:        c.For,
		EvidenceAgainst:    c.Against,
		AlternativeThought: c.Alternative,
		IntensityAfter:     c.After,
	}, nil
}

func (c *ThoughtAddCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}

	if c.Interactive {
		d, ok := tr.Draft()
		if !ok {
			d = tracker.DefaultDraft()
		}
		fm := state.ThoughtFormFromDraft(d)
		if err := handlers.NewThoughtForm(fm).Run(); err != nil {
			// Keep what was typed so the record can be resumed.
			if saveErr := tr.SaveDraft(fm.Draft(d.Step)); saveErr != nil {
				return errors.Join(err, saveErr)
			}
			return fmt.Errorf("thought record saved as draft: %w", err)
		}
		rec, err := tr.SaveDraftAsThought(fm.Draft(3))
		if err != nil {
			return err
		}
		printSaved(rec)
		return nil
	}

	r, err := c.record()
	if err != nil {
		return err
	}
	rec, err := tr.AddThought(r)
	if err != nil {
		return fmt.Errorf("failed to save thought record: %w", err)
	}
	printSaved(rec)
	return nil
}

func printSaved(r models.ThoughtRecord) {
	fmt.Printf("Saved thought record (ID: %s)\n", r.ID)
	if d := r.Reduction(); d > 0 {
		fmt.Printf("Intensity dropped by %d point(s).\n", d)
	}
}

type ThoughtListCmd struct {
	Range string `short:"r" default:"all" help:"Time range: 7d, 30d, 90d or all."`
	JSON  bool   `help:"Print as JSON."`
}

func (c *ThoughtListCmd) Run(ctx *cli.Context) error {
	r, err := models.ParseTimeRange(c.Range)
	if err != nil {
		return err
	}
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}
	thoughts := tr.Window(r).Thoughts
	if c.JSON {
		return cli.PrintJSON(thoughts)
	}
	if len(thoughts) == 0 {
		fmt.Println("No thought records yet.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tTHOUGHT\tTRAP\tBEFORE\tAFTER")
	for _, t := range thoughts {
		trap := "-"
		if d, ok := constants.DistortionByID(t.Distortion); ok {
			trap = d.Name
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\n", t.Date.Format(constants.DateFormat), truncate(t.Thought, 40), trap, t.IntensityBefore, t.IntensityAfter)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("\nAverage reduction: %.1f\n", analytics.AverageReduction(thoughts))
	return nil
}

func truncate(s string, n int) string {
	r := []rune(strings.ReplaceAll(s, "\n", " "))
	if len(r) <= n {
		return string(r)
	}
	return string(r[:n-1]) + "…"
}

type ThoughtAnalyzeCmd struct {
	Situation string `required:"" help:"What happened."`
	Thought   string `required:"" help:"The automatic thought."`
	Emotion   string `help:"The emotion it caused."`
	Save      bool   `help:"Merge the suggestion into the saved draft."`
}

func (c *ThoughtAnalyzeCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	res, err := ctx.Assistant(bg).AnalyzeThoughtRecord(bg, c.Situation, c.Thought, c.Emotion)
	if err != nil {
		return err
	}

	if d, ok := constants.DistortionByID(res.Distortion); ok {
		fmt.Printf("Thinking trap: %s\n  %s\n", d.Name, d.Description)
	} else if res.Distortion != "" {
		fmt.Printf("Thinking trap: %s\n", res.Distortion)
	}
	fmt.Printf("Balanced alternative: %s\n", res.AlternativeThought)

	if !c.Save {
		return nil
	}
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}
	d, ok := tr.Draft()
	if !ok {
		d = tracker.DefaultDraft()
	}
	d.Situation, d.Thought, d.Emotion = c.Situation, c.Thought, c.Emotion
	if d.Distortion == "" {
		d.Distortion = res.Distortion
	}
	d.AlternativeThought = tracker.MergeAlternative(d.AlternativeThought, res.AlternativeThought)
	d.Step = max(d.Step, 2)
	return tr.SaveDraft(d)
}

type ThoughtEvidenceCmd struct {
	Thought string `arg:"" help:"The thought to examine."`
	Save    bool   `help:"Append the suggestion to the draft's evidence against."`
}

func (c *ThoughtEvidenceCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	suggestion := ctx.Assistant(bg).AnalyzeEvidence(bg, c.Thought)
	fmt.Println(suggestion)

	if !c.Save {
		return nil
	}
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}
	d, ok := tr.Draft()
	if !ok {
		d = tracker.DefaultDraft()
		d.Thought = c.Thought
	}
	d.EvidenceAgainst = tracker.MergeEvidence(d.EvidenceAgainst, suggestion)
	return tr.SaveDraft(d)
}

type DraftCmd struct {
	Show  DraftShowCmd  `cmd:"" default:"1" help:"Show the draft."`
	Save  DraftSaveCmd  `cmd:"" help:"Save the draft as a thought record."`
	Clear DraftClearCmd `cmd:"" help:"Discard the draft."`
}

type DraftShowCmd struct{}

func (c *DraftShowCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}
	d, ok := tr.Draft()
	if !ok {
		fmt.Println("No draft in progress.")
		return nil
	}
	return cli.PrintJSON(d)
}

type DraftSaveCmd struct{}

func (c *DraftSaveCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}
	d, ok := tr.Draft()
	if !ok {
		return fmt.Errorf("%w: no draft in progress", tracker.ErrNotFound)
	}
	if strings.TrimSpace(d.Situation) == "" || strings.TrimSpace(d.Thought) == "" {
		return fmt.Errorf("%w: the draft needs a situation and a thought", tracker.ErrRequired)
	}
	rec, err := tr.SaveDraftAsThought(d)
	if err != nil {
		return err
	}
	printSaved(rec)
	return nil
}

type DraftClearCmd struct{}

func (c *DraftClearCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}
	if err := tr.ClearDraft(); err != nil {
		return err
	}
	fmt.Println("Draft discarded.")
	return nil
}

type TrapsCmd struct{}

func (c *TrapsCmd) Run(ctx *cli.Context) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tDESCRIPTION")
	for _, d := range constants.Distortions {
		fmt.Fprintf(w, "%s\t%s\t%s\n", d.ID, d.Name, d.Description)
	}
	return w.Flush()
}
