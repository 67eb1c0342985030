package system

import (
	"fmt"

	"github.com/julianstephens/mindcalm/internal/cli"
)

type MigrateCmd struct {
	Status bool `help:"Only report the schema version."`
}

func (c *MigrateCmd) Run(ctx *cli.Context) error {
	m, ok := ctx.Store.(migratable)
	if !ok {
		return fmt.Errorf("migrate command only supports SQL storage")
	}

	runner, err := m.Migrations()
	if err != nil {
		return err
	}

	if c.Status {
		st, err := runner.Status()
		if err != nil {
			return err
		}
		fmt.Printf("Schema version %d of %d (%d pending)\n", st.Current, st.Latest, st.Pending)
		return nil
	}

	count, err := runner.Apply(func(msg string) {
		fmt.Println(msg)
	})
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	if count == 0 {
		fmt.Println("No migrations to apply. Database is up to date.")
	} else {
		fmt.Printf("\nSuccessfully applied %d migration(s).\n", count)
	}
	return nil
}
