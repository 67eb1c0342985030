package system

import (
	"path/filepath"
	"testing"

	gokeyring "github.com/zalando/go-keyring"

	"github.com/julianstephens/mindcalm/internal/cli"
	"github.com/julianstephens/mindcalm/internal/config"
	"github.com/julianstephens/mindcalm/internal/storage/sqlite"
)

func setupTestDoctorDB(t *testing.T) *cli.Context {
	t.Helper()
	gokeyring.MockInit()
	dbPath := filepath.Join(t.TempDir(), "mindcalm.db")
	store := sqlite.NewStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return &cli.Context{Store: store, Config: config.Default()}
}

func TestDoctorCmd_HealthyDB(t *testing.T) {
	ctx := setupTestDoctorDB(t)

	// Missing backups, logger and API key are warnings, not failures.
	if err := (&DoctorCmd{}).Run(ctx); err != nil {
		t.Errorf("doctor command failed on healthy database: %v", err)
	}
}

func TestDoctorCmd_InvalidData(t *testing.T) {
	ctx := setupTestDoctorDB(t)
	if err := ctx.Store.Set("moods", []byte(`[{"id":"m1","score":5,"anxietyScore":42}]`)); err != nil {
		t.Fatal(err)
	}

	if err := (&DoctorCmd{}).Run(ctx); err == nil {
		t.Error("expected doctor to fail on out-of-range data")
	}
}

func TestDoctorCmd_UninitializedDB(t *testing.T) {
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "missing.db"))
	ctx := &cli.Context{Store: store, Config: config.Default()}

	if err := (&DoctorCmd{}).Run(ctx); err == nil {
		t.Error("expected doctor to fail when the database does not exist")
	}
}

func TestCheckSchemaVersion(t *testing.T) {
	ctx := setupTestDoctorDB(t)
	if err := checkSchemaVersion(ctx); err != nil {
		t.Errorf("fresh database should be fully migrated: %v", err)
	}
}

func TestCheckBackupsPresent(t *testing.T) {
	ctx := setupTestDoctorDB(t)
	if err := checkBackupsPresent(ctx); err == nil {
		t.Error("expected a warning with no backups")
	}

	ctx.Store.Close()
	if _, err := ctx.BackupManager().Create(); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := checkBackupsPresent(ctx); err != nil {
		t.Errorf("expected backups to be found: %v", err)
	}
}
