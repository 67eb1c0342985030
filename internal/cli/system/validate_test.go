package system

import (
	"testing"

	"github.com/julianstephens/mindcalm/internal/cli"
	"github.com/julianstephens/mindcalm/internal/validation"
)

func TestValidateCmd_Clean(t *testing.T) {
	ctx := setupTestDoctorDB(t)

	if err := (&ValidateCmd{}).Run(ctx); err != nil {
		t.Errorf("validate failed on empty data: %v", err)
	}
}

func TestValidateCmd_ReportsWithoutFix(t *testing.T) {
	ctx := setupTestDoctorDB(t)
	dup := `[{"id":"w1","text":"a"},{"id":"w1","text":"b"}]`
	if err := ctx.Store.Set("worries", []byte(dup)); err != nil {
		t.Fatal(err)
	}

	if err := (&ValidateCmd{}).Run(ctx); err == nil {
		t.Fatal("expected duplicate ids to be reported")
	}

	tr, err := ctx.Tracker()
	if err != nil {
		t.Fatal(err)
	}
	if got := len(tr.Worries()); got != 2 {
		t.Errorf("validate without --fix changed data: %d worries", got)
	}
}

func TestValidateCmd_FixRemovesDuplicates(t *testing.T) {
	ctx := setupTestDoctorDB(t)
	dup := `[{"id":"w1","text":"first"},{"id":"w1","text":"second"},{"id":"w2","text":"other"}]`
	if err := ctx.Store.Set("worries", []byte(dup)); err != nil {
		t.Fatal(err)
	}

	if err := (&ValidateCmd{Fix: true}).Run(ctx); err != nil {
		t.Fatalf("validate --fix failed: %v", err)
	}

	tr, err := ctx.Tracker()
	if err != nil {
		t.Fatal(err)
	}
	worries := tr.Worries()
	if len(worries) != 2 || worries[0].Text != "first" {
		t.Errorf("unexpected worries after fix: %+v", worries)
	}
	if result := validationOf(ctx); result != 0 {
		t.Errorf("expected no remaining conflicts, got %d", result)
	}
}

func TestValidateCmd_FixLeavesRangeErrors(t *testing.T) {
	ctx := setupTestDoctorDB(t)
	if err := ctx.Store.Set("moods", []byte(`[{"id":"m1","score":11,"anxietyScore":5}]`)); err != nil {
		t.Fatal(err)
	}

	if err := (&ValidateCmd{Fix: true}).Run(ctx); err == nil {
		t.Error("expected out-of-range values to need manual correction")
	}
}

func validationOf(ctx *cli.Context) int {
	tr, _ := ctx.Tracker()
	return len(validation.New().Validate(tr.ValidationInput()).Conflicts)
}
