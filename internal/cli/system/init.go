package system

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/mindcalm/internal/cli"
	"github.com/julianstephens/mindcalm/internal/storage"
	"github.com/julianstephens/mindcalm/internal/storage/postgres"
)

type InitCmd struct {
	Force  bool   `help:"Back up and delete the existing database before initialization."`
	Source string `help:"Store to copy every key from: a SQLite path, a JSON export or a PostgreSQL connection string."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force && !cli.IsPostgres(ctx.Store.GetConfigPath()) {
		if err := c.reset(ctx); err != nil {
			return err
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized mindcalm storage at: %s\n", ctx.Store.GetConfigPath())

	if c.Source != "" {
		fmt.Printf("Migrating data from: %s\n", c.Source)
		n, err := migrateData(ctx, c.Source)
		if err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		fmt.Printf("Migrated %d keys.\n", n)
	}
	return nil
}

func (c *InitCmd) reset(ctx *cli.Context) error {
	dbPath := ctx.Store.GetConfigPath()
	if abs, err := filepath.Abs(dbPath); err == nil {
		dbPath = abs
	}
	if c.Source != "" {
		if absSource, err := filepath.Abs(c.Source); err == nil && absSource == dbPath {
			return fmt.Errorf("cannot use --force when source and destination are the same: %s", dbPath)
		}
	}

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		return nil
	} else if err != nil {
		return fmt.Errorf("failed to access existing database: %w", err)
	}

	if err := ctx.Store.Close(); err != nil {
		return fmt.Errorf("failed to close existing database: %w", err)
	}
	if mgr := ctx.BackupManager(); mgr != nil {
		path, err := mgr.Create()
		if err != nil {
			return fmt.Errorf("refusing to delete the database without a backup: %w", err)
		}
		fmt.Printf("Backed up existing database to: %s\n", path)
	}
	for _, suffix := range []string{"", "-wal", "-shm"} {
		if err := os.Remove(dbPath + suffix); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to delete existing database: %w", err)
		}
	}
	fmt.Printf("Deleted existing database at: %s\n", dbPath)
	return nil
}

// sourceStore opens the store to migrate from; .json files are read as a
// JSON document store.
func sourceStore(source string) (storage.Provider, error) {
	if filepath.Ext(source) == ".json" {
		return storage.NewJSONStore(source), nil
	}
	src, err := cli.OpenStore(source)
	if errors.Is(err, postgres.ErrEmbeddedCredentials) {
		return nil, fmt.Errorf("PostgreSQL source connection string contains embedded credentials. Use environment variables or .pgpass instead")
	}
	return src, err
}

func migrateData(ctx *cli.Context, source string) (int, error) {
	src, err := sourceStore(source)
	if err != nil {
		return 0, err
	}
	if err := src.Load(); err != nil {
		return 0, fmt.Errorf("failed to load source database: %w", err)
	}
	defer src.Close()

	return storage.Copy(ctx.Store, src)
}
