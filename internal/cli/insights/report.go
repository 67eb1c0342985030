package insights

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"

	"github.com/julianstephens/mindcalm/internal/analytics"
	"github.com/julianstephens/mindcalm/internal/chat"
	"github.com/julianstephens/mindcalm/internal/cli"
	"github.com/julianstephens/mindcalm/internal/graph"
	"github.com/julianstephens/mindcalm/internal/report"
)

// stdin feeds the chat prompt; tests replace it.
var stdin io.Reader = os.Stdin

type ReportCmd struct {
	Out     string `short:"o" default:"mindcalm-report.pdf" help:"Where to write the PDF."`
	Summary bool   `help:"Include an assistant-written progress summary."`
}

func (c *ReportCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}
	rep := tr.ClinicianReport()
	if c.Summary {
		bg := context.Background()
		rep.Summary = ctx.Assistant(bg).ProgressReport(bg, rep.Stats)
	}

	if dir := filepath.Dir(c.Out); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	f, err := os.Create(c.Out)
	if err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}
	if err := report.WritePDF(f, rep); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	fmt.Printf("Report written to %s\n", c.Out)
	return nil
}

type ChatCmd struct {
	Message []string `arg:"" optional:"" help:"Ask one question and exit. Without it an interactive chat starts."`
}

func (c *ChatCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	s := chat.New(ctx.Assistant(bg))

	if len(c.Message) > 0 {
		reply, ok := s.Send(bg, strings.Join(c.Message, " "))
		if !ok {
			return fmt.Errorf("message is empty")
		}
		fmt.Println(reply.Content)
		return nil
	}

	fmt.Println(s.Messages()[0].Content)
	fmt.Println("\nTry asking:")
	for _, q := range s.Suggestions() {
		fmt.Printf("  - %s\n", q)
	}
	fmt.Println("\nType 'exit' or press Ctrl+D to leave. Conversations are not saved.")

	scanner := bufio.NewScanner(stdin)
	for {
		fmt.Print("\n> ")
		if !scanner.Scan() {
			fmt.Println()
			return scanner.Err()
		}
		text := scanner.Text()
		if t := strings.TrimSpace(text); t == "exit" || t == "quit" {
			return nil
		}
		if reply, ok := s.Send(bg, text); ok {
			fmt.Printf("\n%s\n", reply.Content)
		}
	}
}

type CareCmd struct {
	JSON bool `help:"Print as JSON."`
}

func (c *CareCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}
	latest := tr.LatestGAD7()
	active := analytics.ActiveCareStep(latest)
	if c.JSON {
		return cli.PrintJSON(struct {
			ActiveStep int                  `json:"activeStep"`
			LatestGAD7 *int                 `json:"latestGad7,omitempty"`
			Steps      []analytics.CareStep `json:"steps"`
		}{active, latest, analytics.CareSteps})
	}

	if latest == nil {
		fmt.Println("No GAD-7 score yet. Take one with 'mindcalm gad7' to personalize this.")
	} else {
		fmt.Printf("Latest GAD-7: %d/21\n", *latest)
	}
	fmt.Println()
	for _, s := range analytics.CareSteps {
		marker := "  "
		if s.Step == active {
			marker = "▶ "
		}
		fmt.Printf("%sStep %d: %s (%s)\n", marker, s.Step, s.Title, s.Target)
		fmt.Printf("    %s\n", s.Description)
		for _, a := range s.Actions {
			fmt.Printf("    - %s\n", a.Label)
		}
	}
	return nil
}

type SuggestCmd struct {
	JSON bool `help:"Print as JSON."`
}

func (c *SuggestCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}
	suggestions := tr.Suggestions()
	if c.JSON {
		return cli.PrintJSON(suggestions)
	}
	if len(suggestions) == 0 {
		fmt.Println("Nothing to suggest yet. Keep logging and check back.")
		return nil
	}
	for _, s := range suggestions {
		fmt.Printf("• %s: %s\n", s.Subject, s.Reason)
	}
	return nil
}

type GraphCmd struct {
	Steps int   `default:"300" help:"Layout iterations to run."`
	Seed  int64 `default:"1" help:"Seed for the initial node placement."`
}

// Run prints the laid-out knowledge graph as JSON for external renderers.
func (c *GraphCmd) Run(ctx *cli.Context) error {
	if c.Steps < 0 {
		return fmt.Errorf("steps must not be negative")
	}
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}
	layout := graph.NewLayout(tr.KnowledgeGraph(), rand.New(rand.NewPCG(uint64(c.Seed), 2)))
	if _, err := layout.Run(context.Background(), c.Steps); err != nil {
		return err
	}
	return cli.PrintJSON(layout.Graph)
}
