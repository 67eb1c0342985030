package wellness

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/julianstephens/mindcalm/internal/breathing"
	"github.com/julianstephens/mindcalm/internal/cli"
	"github.com/julianstephens/mindcalm/internal/constants"
	"github.com/julianstephens/mindcalm/internal/models"
	"github.com/julianstephens/mindcalm/internal/tracker"
	"github.com/julianstephens/mindcalm/internal/tui/handlers"
	"github.com/julianstephens/mindcalm/internal/tui/state"
	"github.com/julianstephens/mindcalm/internal/utils"
)

type BreatheCmd struct {
	List    BreatheListCmd    `cmd:"" default:"1" help:"List breathing techniques."`
	Run     BreatheRunCmd     `cmd:"" help:"Follow a guided session in the terminal."`
	Log     BreatheLogCmd     `cmd:"" help:"Record a session done elsewhere."`
	History BreatheHistoryCmd `cmd:"" help:"Show past sessions."`
}

type BreatheListCmd struct{}

func (c *BreatheListCmd) Run(ctx *cli.Context) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tPATTERN")
	for _, t := range breathing.Techniques {
		fmt.Fprintf(w, "%s\t%s\t%s\n", t.ID, t.Name, t.Summary)
	}
	return w.Flush()
}

type BreatheRunCmd struct {
	Interactive bool   `short:"i" help:"Pick the technique and ratings with a form."`
	Technique   string `arg:"" optional:"" default:"box" help:"Technique id."`
	Seconds     int    `short:"s" help:"Stop after this many seconds. Without it the session runs until Ctrl+C."`
	Before      int    `help:"Anxiety before (1-10)." default:"5"`
	After       int    `help:"Anxiety after (1-10). Defaults to the before rating."`
}

func (c *BreatheRunCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}

	fm := &state.BreathingFormModel{Technique: c.Technique, Anxiety: c.Before}
	if c.Interactive {
		if err := handlers.NewBreathingForm(fm).Run(); err != nil {
			return err
		}
	}
	tech, err := breathing.Lookup(fm.Technique)
	if err != nil {
		return err
	}
	if err := checkRating(fm.Anxiety); err != nil {
		return err
	}

	sigCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	coach := breathing.NewCoach(tech, fm.Anxiety, nil)
	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()

	fmt.Printf("%s: %s\nPress Ctrl+C to finish.\n\n", tech.Name, tech.Description)
	seconds, ok := guide(sigCtx, coach, ticker.C, time.Duration(c.Seconds)*time.Second, os.Stdout)
	fmt.Printf("\nSession length: %s\n", utils.FormatSeconds(seconds))
	if !ok {
		fmt.Printf("Sessions under %d seconds are not saved.\n", constants.MinBreathingSeconds)
		return nil
	}

	after := c.After
	if c.Interactive {
		fm.Anxiety = coach.AnxietyBefore
		if err := handlers.NewAnxietyAfterForm(fm).Run(); err != nil {
			return err
		}
		after = fm.Anxiety
	}
	s, err := coach.Session(after)
	if err != nil {
		return err
	}
	return saveSession(tr, s)
}

// guide prints each phase change until ctx is done or limit elapses, then
// stops the coach. A zero limit runs until ctx is done.
func guide(ctx context.Context, coach *breathing.Coach, ticks <-chan time.Time, limit time.Duration, out io.Writer) (int, bool) {
	coach.Start()
	last := -1
	for {
		st := coach.State()
		if st.PhaseIndex != last {
			last = st.PhaseIndex
			fmt.Fprintf(out, "%s  %s\n", utils.FormatSeconds(st.Elapsed), st.Instruction)
		}
		if limit > 0 && time.Duration(st.Elapsed)*time.Second >= limit {
			return coach.Stop()
		}
		select {
		case <-ctx.Done():
			return coach.Stop()
		case <-ticks:
		}
	}
}

func checkRating(v int) error {
	if v < 1 || v > 10 {
		return fmt.Errorf("%w: anxiety rating must be 1-10", tracker.ErrInvalidInput)
	}
	return nil
}

func saveSession(tr *tracker.Tracker, s models.BreathingSession) error {
	saved, err := tr.AddBreathingSession(s)
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	if !saved {
		fmt.Printf("Sessions under %d seconds are not saved.\n", constants.MinBreathingSeconds)
		return nil
	}
	fmt.Printf("Saved session. Anxiety %d -> %d\n", s.AnxietyBefore, s.AnxietyAfter)
	return nil
}

type BreatheLogCmd struct {
	Technique string `arg:"" help:"Technique id."`
	Minutes   int    `arg:"" help:"Length in minutes."`
	Before    int    `help:"Anxiety before (1-10)." default:"5"`
	After     int    `help:"Anxiety after (1-10)." default:"5"`
}

func (c *BreatheLogCmd) Run(ctx *cli.Context) error {
	tech, err := breathing.Lookup(c.Technique)
	if err != nil {
		return err
	}
	if err := checkRating(c.Before); err != nil {
		return err
	}
	if err := checkRating(c.After); err != nil {
		return err
	}
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}
	return saveSession(tr, models.BreathingSession{
		Technique:       tech.ID,
		DurationSeconds: c.Minutes * 60,
		Completed:       true,
		AnxietyBefore:   c.Before,
		AnxietyAfter:    c.After,
	})
}

type BreatheHistoryCmd struct {
	JSON bool `help:"Print as JSON."`
}

func (c *BreatheHistoryCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}
	sessions := tr.BreathingSessions()
	if c.JSON {
		return cli.PrintJSON(sessions)
	}
	if len(sessions) == 0 {
		fmt.Println("No breathing sessions yet.")
		return nil
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tTECHNIQUE\tLENGTH\tBEFORE\tAFTER")
	for _, s := range sessions {
		name := s.Technique
		if t, err := breathing.Lookup(s.Technique); err == nil {
			name = t.Name
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\n", s.Date.Format(constants.DateFormat+" "+constants.TimeFormat), name, utils.FormatSeconds(s.DurationSeconds), s.AnxietyBefore, s.AnxietyAfter)
	}
	return w.Flush()
}
