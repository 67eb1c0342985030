package insights

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/mindcalm/internal/cli/clitest"
	"github.com/julianstephens/mindcalm/internal/models"
	"github.com/julianstephens/mindcalm/internal/tracker"
)

// seedWeek logs n days of check-ins ending today.
func seedWeek(t *testing.T, tr *tracker.Tracker, n int) {
	t.Helper()
	for i := range n {
		day := clitest.Now.AddDate(0, 0, -i)
		if _, err := tr.AddMood(models.MoodEntry{Date: day, Score: 6, AnxietyScore: 3 + i%4, Symptoms: []string{"Fatigue"}}); err != nil {
			t.Fatal(err)
		}
		if _, err := tr.AddLifestyle(models.LifestyleEntry{Date: day, SleepHours: 5 + float64(i%4), ExerciseMinutes: 20 * (i % 2), SocialMinutes: 30}); err != nil {
			t.Fatal(err)
		}
	}
}

func TestDashboardAndAnalytics(t *testing.T) {
	ctx, tr := clitest.New(t, nil)

	if err := (&DashboardCmd{}).Run(ctx); err != nil {
		t.Fatalf("empty dashboard failed: %v", err)
	}
	seedWeek(t, tr, 3)
	if _, err := tr.AddThought(models.ThoughtRecord{Situation: "s", Thought: "t", Distortion: "labeling", IntensityBefore: 8, IntensityAfter: 5}); err != nil {
		t.Fatal(err)
	}

	if err := (&DashboardCmd{}).Run(ctx); err != nil {
		t.Errorf("dashboard failed: %v", err)
	}
	for _, r := range []string{"7d", "all"} {
		if err := (&AnalyticsCmd{Range: r}).Run(ctx); err != nil {
			t.Errorf("analytics %s failed: %v", r, err)
		}
	}
	if err := (&AnalyticsCmd{Range: "1y"}).Run(ctx); err == nil {
		t.Error("expected error for unknown range")
	}
}

func TestInsightsCmd(t *testing.T) {
	gen := &clitest.Generator{Reply: `[{"text":"Anxiety is lower after 7h of sleep","relatedMetrics":["Sleep","Anxiety"]}]`}
	ctx, tr := clitest.New(t, gen)

	seedWeek(t, tr, 5)
	if err := (&InsightsCmd{Range: "30d"}).Run(ctx); err == nil {
		t.Fatal("expected error with too few entries")
	}
	if len(gen.Prompts) != 0 {
		t.Error("model should not be called for sparse data")
	}

	ctx, tr = clitest.New(t, gen)
	seedWeek(t, tr, 6)
	if err := (&InsightsCmd{Range: "30d"}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if len(gen.Prompts) != 1 || !strings.Contains(gen.Prompts[0], "Avg Sleep") {
		t.Errorf("unexpected prompts: %q", gen.Prompts)
	}
}

func TestReportCmd(t *testing.T) {
	gen := &clitest.Generator{Reply: "You completed **3** thought records this week."}
	ctx, tr := clitest.New(t, gen)
	seedWeek(t, tr, 2)

	out := filepath.Join(t.TempDir(), "reports", "march.pdf")
	if err := (&ReportCmd{Out: out, Summary: true}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Error("output is not a PDF")
	}
	if len(gen.Prompts) != 1 {
		t.Errorf("expected one summary prompt, got %d", len(gen.Prompts))
	}
}

func TestChatCmd(t *testing.T) {
	t.Run("one shot", func(t *testing.T) {
		gen := &clitest.Generator{Reply: "The 3Cs are Catch it, Check it, Change it."}
		ctx, _ := clitest.New(t, gen)
		if err := (&ChatCmd{Message: []string{"What", "are", "the", "3Cs?"}}).Run(ctx); err != nil {
			t.Fatal(err)
		}
		if len(gen.Prompts) != 1 || !strings.Contains(gen.Prompts[0], "What are the 3Cs?") {
			t.Errorf("unexpected prompts: %q", gen.Prompts)
		}
	})

	t.Run("interactive", func(t *testing.T) {
		gen := &clitest.Generator{Reply: "I'm here."}
		ctx, _ := clitest.New(t, gen)

		old := stdin
		stdin = strings.NewReader("I feel overwhelmed\n\nSecond message\nexit\nnever sent\n")
		t.Cleanup(func() { stdin = old })

		if err := (&ChatCmd{}).Run(ctx); err != nil {
			t.Fatal(err)
		}
		if len(gen.Prompts) != 2 {
			t.Fatalf("expected 2 prompts, got %d", len(gen.Prompts))
		}
		// The second call carries the first exchange as history.
		if !strings.Contains(gen.Prompts[1], "I feel overwhelmed") {
			t.Errorf("history missing from second prompt: %q", gen.Prompts[1])
		}
	})
}

func TestCareAndSuggest(t *testing.T) {
	ctx, tr := clitest.New(t, nil)
	if err := (&CareCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if _, err := tr.SubmitGAD7([]int{2, 2, 2, 2, 1, 1, 1}); err != nil {
		t.Fatal(err)
	}
	if err := (&CareCmd{JSON: true}).Run(ctx); err != nil {
		t.Fatal(err)
	}

	for range 3 {
		if _, err := tr.AddBreathingSession(models.BreathingSession{Technique: "box", DurationSeconds: 120, AnxietyBefore: 7, AnxietyAfter: 3}); err != nil {
			t.Fatal(err)
		}
	}
	if err := (&SuggestCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
}

func TestGraphCmd(t *testing.T) {
	ctx, tr := clitest.New(t, nil)
	seedWeek(t, tr, 3)
	if err := (&GraphCmd{Steps: 10, Seed: 1}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if err := (&GraphCmd{Steps: -1}).Run(ctx); err == nil {
		t.Error("expected error for negative steps")
	}
}
