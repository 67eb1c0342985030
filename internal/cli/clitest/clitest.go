// Package clitest builds command contexts over a throwaway SQLite store.
package clitest

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"google.golang.org/genai"

	"github.com/julianstephens/mindcalm/internal/assist"
	"github.com/julianstephens/mindcalm/internal/cli"
	"github.com/julianstephens/mindcalm/internal/config"
	"github.com/julianstephens/mindcalm/internal/storage/sqlite"
	"github.com/julianstephens/mindcalm/internal/tracker"
)

// Now is the fixed clock every test context runs on.
var Now = time.Date(2025, 3, 15, 10, 0, 0, 0, time.Local)

// Generator replies with Reply and records every prompt it receives.
type Generator struct {
	Reply   string
	Err     error
	Prompts []string
}

func (g *Generator) Generate(_ context.Context, prompt string, _ *genai.Schema) (string, error) {
	g.Prompts = append(g.Prompts, prompt)
	return g.Reply, g.Err
}

// New returns a context whose tracker runs at Now with sequential ids
// ("id-1", "id-2", ...). A nil gen gives an assistant that only returns
// fallbacks. Automatic backups are off.
func New(t *testing.T, gen assist.Generator) (*cli.Context, *tracker.Tracker) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "mindcalm.db")
	store := sqlite.NewStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	n := 0
	tr := tracker.New(store,
		tracker.WithClock(func() time.Time { return Now }),
		tracker.WithIDs(func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		}),
	)
	if err := tr.Load(); err != nil {
		t.Fatalf("failed to load tracker: %v", err)
	}

	cfg := config.Default()
	cfg.Storage.Backups = false
	ctx := &cli.Context{Store: store, Config: cfg, ConfigFile: config.PathIn(filepath.Dir(dbPath))}
	ctx.SetTracker(tr)
	ctx.SetAssistant(assist.New(gen))
	return ctx, tr
}
