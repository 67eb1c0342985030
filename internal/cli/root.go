package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/julianstephens/mindcalm/internal/assist"
	"github.com/julianstephens/mindcalm/internal/backup"
	"github.com/julianstephens/mindcalm/internal/config"
	"github.com/julianstephens/mindcalm/internal/constants"
	"github.com/julianstephens/mindcalm/internal/keyring"
	"github.com/julianstephens/mindcalm/internal/logger"
	"github.com/julianstephens/mindcalm/internal/storage"
	"github.com/julianstephens/mindcalm/internal/storage/postgres"
	"github.com/julianstephens/mindcalm/internal/storage/sqlite"
	"github.com/julianstephens/mindcalm/internal/tracker"
)

type Context struct {
	Store      storage.Provider
	Config     *config.Config
	ConfigFile string

	tracker *tracker.Tracker
	ai      *assist.Assistant
}

// IsPostgres reports whether path is a PostgreSQL connection string rather
// than a SQLite file path.
func IsPostgres(path string) bool {
	return strings.HasPrefix(path, "postgres://") || strings.HasPrefix(path, "postgresql://") || strings.Contains(path, "host=")
}

// OpenStore picks the provider for a --config value. Postgres connection
// strings with an embedded password are refused.
func OpenStore(path string) (storage.Provider, error) {
	if IsPostgres(path) {
		if _, err := postgres.ValidateConnString(path); err != nil {
			return nil, err
		}
		return postgres.New(path), nil
	}
	return sqlite.NewStore(path), nil
}

// ConfigDir is where the config file, logs and lockfile live.
func ConfigDir(storePath string) string {
	if IsPostgres(storePath) {
		if dir, err := os.UserConfigDir(); err == nil {
			return filepath.Join(dir, constants.AppName)
		}
		return "."
	}
	return filepath.Dir(storePath)
}

// Settings returns the loaded config, or the defaults when none was loaded.
func (c *Context) Settings() *config.Config {
	if c.Config == nil {
		c.Config = config.Default()
	}
	return c.Config
}

// Tracker loads the tracker on first use.
func (c *Context) Tracker() (*tracker.Tracker, error) {
	if c.tracker != nil {
		return c.tracker, nil
	}
	tr := tracker.New(c.Store)
	if err := tr.Load(); err != nil {
		return nil, fmt.Errorf("failed to load data: %w", err)
	}
	c.tracker = tr
	return tr, nil
}

// SetTracker injects a tracker, as tests do with a fixed clock.
func (c *Context) SetTracker(tr *tracker.Tracker) { c.tracker = tr }

// Assistant returns the AI helper. When AI is disabled or no API key is
// available it returns an assistant that answers with fallbacks.
func (c *Context) Assistant(ctx context.Context) *assist.Assistant {
	if c.ai != nil {
		return c.ai
	}
	c.ai = assist.New(nil)
	if !c.Settings().AI.Enabled {
		return c.ai
	}

	key, err := keyring.ResolveGeminiAPIKey()
	if err != nil {
		if !errors.Is(err, keyring.ErrNotFound) {
			logger.Warn("Failed to read Gemini API key", "error", err)
		}
		return c.ai
	}
	gen, err := assist.NewGemini(ctx, key, c.Settings().AI.Model)
	if err != nil {
		logger.Warn("Failed to create Gemini client", "error", err)
		return c.ai
	}
	c.ai = assist.New(gen)
	return c.ai
}

// SetAssistant injects an assistant, as tests do with a fake generator.
func (c *Context) SetAssistant(a *assist.Assistant) { c.ai = a }

// BackupManager returns nil for stores that are not SQLite files.
func (c *Context) BackupManager() *backup.Manager {
	if _, ok := c.Store.(*sqlite.Store); !ok {
		return nil
	}
	return backup.NewManager(c.Store.GetConfigPath(), c.Settings().Storage.MaxBackups)
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	if !c.Settings().Storage.Backups {
		return
	}
	mgr := c.BackupManager()
	if mgr == nil {
		return
	}
	if _, err := mgr.Create(); err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}
