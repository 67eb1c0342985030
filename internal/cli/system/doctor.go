package system

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/julianstephens/mindcalm/internal/cli"
	"github.com/julianstephens/mindcalm/internal/config"
	"github.com/julianstephens/mindcalm/internal/keyring"
	"github.com/julianstephens/mindcalm/internal/logger"
	"github.com/julianstephens/mindcalm/internal/migration"
	"github.com/julianstephens/mindcalm/internal/server"
	"github.com/julianstephens/mindcalm/internal/storage/sqlite"
	"github.com/julianstephens/mindcalm/internal/validation"
)

type migratable interface {
	Migrations() (*migration.Runner, error)
}

type DoctorCmd struct{}

type check struct {
	name     string
	needsDB  bool
	warnOnly bool
	run      func(ctx *cli.Context) error
}

var checks = []check{
	{name: "Database reachable", run: checkDBReachable},
	{name: "Schema version", needsDB: true, run: checkSchemaVersion},
	{name: "Data validation", needsDB: true, run: checkValidation},
	{name: "Backups present", warnOnly: true, run: checkBackupsPresent},
	{name: "Config file", run: checkConfigFile},
	{name: "Log directory", warnOnly: true, run: checkLogDir},
	{name: "OS keyring", warnOnly: true, run: checkKeyring},
	{name: "AI API key", warnOnly: true, run: checkAIKey},
	{name: "Local server", warnOnly: true, run: checkServer},
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	dbReachable := false

	for i, c := range checks {
		if c.needsDB && !dbReachable {
			fmt.Printf("⊘ %s: SKIPPED (database not reachable)\n", c.name)
			continue
		}
		err := c.run(ctx)
		switch {
		case err == nil:
			fmt.Printf("✓ %s: OK\n", c.name)
			if i == 0 {
				dbReachable = true
			}
		case c.warnOnly:
			fmt.Printf("⚠ %s: WARNING\n", c.name)
			fmt.Printf("   %v\n", err)
		default:
			fmt.Printf("❌ %s: FAIL\n", c.name)
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		}
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	fmt.Println("All diagnostics passed!")
	return nil
}

func checkDBReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}

	if s, ok := ctx.Store.(*sqlite.Store); ok {
		db := s.DB()
		if db == nil {
			return fmt.Errorf("database connection is nil")
		}
		var result int
		if err := db.Get(&result, "SELECT 1"); err != nil {
			return fmt.Errorf("failed to query database: %w", err)
		}
	}
	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	m, ok := ctx.Store.(migratable)
	if !ok {
		return nil
	}
	runner, err := m.Migrations()
	if err != nil {
		return err
	}
	st, err := runner.Status()
	if err != nil {
		return err
	}
	if st.Pending > 0 {
		return fmt.Errorf("schema version %d, latest %d (%d pending). Run 'mindcalm migrate'", st.Current, st.Latest, st.Pending)
	}
	return nil
}

func checkValidation(ctx *cli.Context) error {
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}
	result := validation.New().Validate(tr.ValidationInput())
	if result.HasConflicts() {
		return fmt.Errorf("%d problem(s) found. Run 'mindcalm validate' for details", len(result.Conflicts))
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	mgr := ctx.BackupManager()
	if mgr == nil {
		return nil
	}
	backups, err := mgr.List()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found in %s. Run 'mindcalm backup' to create one", mgr.Dir())
	}
	if age := time.Since(backups[0].Timestamp); age > 7*24*time.Hour {
		return fmt.Errorf("latest backup is %d days old", int(age.Hours()/24))
	}
	return nil
}

func checkConfigFile(ctx *cli.Context) error {
	if ctx.ConfigFile == "" {
		return nil
	}
	if _, err := config.Load(ctx.ConfigFile); err != nil {
		return err
	}
	return nil
}

func checkLogDir(ctx *cli.Context) error {
	path := logger.Path()
	if path == "" {
		return errors.New("logger not initialized")
	}
	probe, err := os.CreateTemp(filepath.Dir(path), ".doctor-*")
	if err != nil {
		return fmt.Errorf("log directory is not writable: %w", err)
	}
	probe.Close()
	return os.Remove(probe.Name())
}

func checkKeyring(ctx *cli.Context) error {
	if !keyring.IsAvailable() {
		return keyring.ErrKeyringUnavailable
	}
	return nil
}

func checkAIKey(ctx *cli.Context) error {
	if !ctx.Settings().AI.Enabled {
		return nil
	}
	if _, err := keyring.ResolveGeminiAPIKey(); err != nil {
		return errors.New("AI is enabled but no Gemini API key is set. Run 'mindcalm keyring set gemini <key>' or export GEMINI_API_KEY")
	}
	return nil
}

func checkServer(ctx *cli.Context) error {
	port, err := server.LockfileIn(cli.ConfigDir(ctx.Store.GetConfigPath())).Running()
	if err != nil {
		// Not running is the normal state.
		return nil
	}
	if err := server.Ping(context.Background(), port); err != nil {
		return fmt.Errorf("server process owns port %d but is not answering: %w", port, err)
	}
	fmt.Printf("   mindcalm serve is running on port %d\n", port)
	return nil
}
