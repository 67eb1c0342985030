package cbt

import (
	"errors"
	"strings"
	"testing"

	"github.com/julianstephens/mindcalm/internal/assist"
	"github.com/julianstephens/mindcalm/internal/cli/clitest"
	"github.com/julianstephens/mindcalm/internal/tracker"
)

func TestThoughtAddCmd(t *testing.T) {
	ctx, tr := clitest.New(t, nil)

	cmd := &ThoughtAddCmd{
		Situation:  "Meeting moved",
		Thought:    "I'm getting fired",
		Emotion:    "Fear",
		Before:     8,
		Distortion: "catastrophizing",
		After:      4,
	}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("thought add failed: %v", err)
	}

	thoughts := tr.Thoughts()
	if len(thoughts) != 1 {
		t.Fatalf("expected 1 record, got %d", len(thoughts))
	}
	if got := thoughts[0].Reduction(); got != 4 {
		t.Errorf("reduction = %d, want 4", got)
	}
	if err := (&ThoughtListCmd{Range: "all"}).Run(ctx); err != nil {
		t.Errorf("thought list failed: %v", err)
	}
}

func TestThoughtAddCmd_Rejects(t *testing.T) {
	tests := []struct {
		name string
		cmd  ThoughtAddCmd
	}{
		{"missing thought", ThoughtAddCmd{Situation: "x", Before: 5}},
		{"intensity out of range", ThoughtAddCmd{Situation: "x", Thought: "y", Before: 11}},
		{"unknown trap", ThoughtAddCmd{Situation: "x", Thought: "y", Distortion: "doom"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, tr := clitest.New(t, nil)
			if err := tt.cmd.Run(ctx); err == nil {
				t.Error("expected error")
			}
			if len(tr.Thoughts()) != 0 {
				t.Error("rejected record was stored")
			}
		})
	}
}

func TestThoughtAnalyzeCmd_SavesDraft(t *testing.T) {
	gen := &clitest.Generator{Reply: `{"distortion":"catastrophizing","alternativeThought":"One meeting doesn't decide my job."}`}
	ctx, tr := clitest.New(t, gen)

	cmd := &ThoughtAnalyzeCmd{Situation: "Meeting moved", Thought: "I'm getting fired", Save: true}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("analyze failed: %v", err)
	}
	d, ok := tr.Draft()
	if !ok {
		t.Fatal("expected a saved draft")
	}
	if d.Distortion != "catastrophizing" || d.AlternativeThought != "One meeting doesn't decide my job." {
		t.Errorf("unexpected draft: %+v", d)
	}
	if d.Step != 2 {
		t.Errorf("draft step = %d, want 2", d.Step)
	}
}

func TestThoughtAnalyzeCmd_NoModel(t *testing.T) {
	ctx, _ := clitest.New(t, nil)

	err := (&ThoughtAnalyzeCmd{Situation: "s", Thought: "t"}).Run(ctx)
	if !errors.Is(err, assist.ErrAnalysisFailed) {
		t.Errorf("expected ErrAnalysisFailed, got %v", err)
	}
}

func TestThoughtEvidenceCmd_MergesIntoDraft(t *testing.T) {
	gen := &clitest.Generator{Reply: "Your last review was positive."}
	ctx, tr := clitest.New(t, gen)
	if err := tr.SaveDraft(tracker.DefaultDraft()); err != nil {
		t.Fatal(err)
	}

	if err := (&ThoughtEvidenceCmd{Thought: "I'm getting fired", Save: true}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	d, _ := tr.Draft()
	if !strings.Contains(d.EvidenceAgainst, "Your last review was positive.") {
		t.Errorf("evidence not merged: %q", d.EvidenceAgainst)
	}
}

func TestDraftCmds(t *testing.T) {
	ctx, tr := clitest.New(t, nil)

	if err := (&DraftSaveCmd{}).Run(ctx); !errors.Is(err, tracker.ErrNotFound) {
		t.Errorf("expected ErrNotFound without a draft, got %v", err)
	}

	d := tracker.DefaultDraft()
	if err := tr.SaveDraft(d); err != nil {
		t.Fatal(err)
	}
	if err := (&DraftSaveCmd{}).Run(ctx); !errors.Is(err, tracker.ErrRequired) {
		t.Errorf("expected ErrRequired for empty draft, got %v", err)
	}

	d.Situation, d.Thought = "Traffic", "I'll be late and everyone will judge me"
	if err := tr.SaveDraft(d); err != nil {
		t.Fatal(err)
	}
	if err := (&DraftShowCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if err := (&DraftSaveCmd{}).Run(ctx); err != nil {
		t.Fatalf("draft save failed: %v", err)
	}
	if _, ok := tr.Draft(); ok {
		t.Error("draft should be cleared after saving")
	}
	if len(tr.Thoughts()) != 1 {
		t.Errorf("expected 1 thought record, got %d", len(tr.Thoughts()))
	}
}

func TestWorryCmds(t *testing.T) {
	ctx, tr := clitest.New(t, nil)

	if err := (&WorryAddCmd{Text: "Rent is due"}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if err := (&WorryAddCmd{Text: "   "}).Run(ctx); !errors.Is(err, tracker.ErrRequired) {
		t.Errorf("expected ErrRequired for blank worry, got %v", err)
	}
	id := tr.Worries()[0].ID

	if err := (&WorryDoneCmd{ID: id}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if len(tr.ActiveWorries()) != 0 || len(tr.ProcessedWorries()) != 1 {
		t.Error("worry should be processed")
	}
	if err := (&WorryListCmd{All: true}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if err := (&WorryDeleteCmd{ID: id}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if err := (&WorryDeleteCmd{ID: id}).Run(ctx); !errors.Is(err, tracker.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestWorryScheduleCmd(t *testing.T) {
	ctx, tr := clitest.New(t, nil)

	if err := (&WorryScheduleCmd{Start: "09:30"}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	start, minutes := tr.WorrySchedule()
	if start != "09:30" || minutes != 20 {
		t.Errorf("schedule = %s/%d, want 09:30/20", start, minutes)
	}
	// clitest.Now is 10:00, inside 09:30 + 30 min.
	if err := (&WorryScheduleCmd{Duration: 30}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !tr.IsWorryTime(clitest.Now) {
		t.Error("expected 10:00 to be inside the worry window")
	}
	if err := (&WorryScheduleCmd{Start: "9am"}).Run(ctx); !errors.Is(err, tracker.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestActivityCmds(t *testing.T) {
	ctx, tr := clitest.New(t, nil)

	if err := (&ActivityAddCmd{Title: "Walk around the block", Difficulty: 5}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	acts := tr.Activities()
	if len(acts) != 1 || acts[0].Difficulty != 3 {
		t.Fatalf("expected difficulty clamped to 3, got %+v", acts)
	}
	if err := (&ActivityDoneCmd{ID: acts[0].ID}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !tr.Activities()[0].Completed {
		t.Error("activity should be completed")
	}
	if err := (&ActivityListCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if err := (&ActivityDeleteCmd{ID: acts[0].ID}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if len(tr.Activities()) != 0 {
		t.Error("activity should be deleted")
	}
}
