package system

import (
	"strings"
	"testing"
)

func TestDebugPathsCmd(t *testing.T) {
	ctx := setupTestDoctorDB(t)

	if err := (&DebugPathsCmd{}).Run(ctx); err != nil {
		t.Errorf("debug paths command failed: %v", err)
	}
}

func TestDebugDumpCmd(t *testing.T) {
	ctx := setupTestDoctorDB(t)
	if err := ctx.Store.Set("theme", []byte(`"dark"`)); err != nil {
		t.Fatal(err)
	}
	if err := ctx.Store.Set("moods", []byte(`not json`)); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		key     string
		wantErr string
	}{
		{name: "all keys", key: ""},
		{name: "single key", key: "theme"},
		{name: "corrupt document", key: "moods"},
		{name: "missing key", key: "workouts", wantErr: "nothing stored"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := (&DebugDumpCmd{Key: tt.key}).Run(ctx)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("dump failed: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}
