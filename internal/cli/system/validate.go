package system

import (
	"encoding/json"
	"fmt"

	"github.com/julianstephens/mindcalm/internal/cli"
	"github.com/julianstephens/mindcalm/internal/validation"
)

type ValidateCmd struct {
	Fix bool `help:"Remove duplicate entries, keeping the first of each id."`
}

func (c *ValidateCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}

	in := tr.ValidationInput()
	result := validation.New().Validate(in)
	if !result.HasConflicts() {
		fmt.Println("✓ No problems found")
		return nil
	}

	fmt.Println(result.FormatReport())
	if !c.Fix {
		return fmt.Errorf("found %d problem(s); run with --fix to remove duplicates", len(result.Conflicts))
	}

	ctx.PerformAutomaticBackup()
	actions, err := validation.AutoFixDuplicates(result.Conflicts, in, func(key string, v any) error {
		data, err := json.Marshal(v)
		if err != nil {
			return err
		}
		return tr.SetRaw(key, data)
	})
	for _, a := range actions {
		fmt.Println("✓", a.Action)
	}
	if err != nil {
		return err
	}

	remaining := validation.New().Validate(tr.ValidationInput())
	if remaining.HasConflicts() {
		return fmt.Errorf("%d problem(s) need manual correction", len(remaining.Conflicts))
	}
	return nil
}
