package report

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/julianstephens/mindcalm/internal/analytics"
	"github.com/julianstephens/mindcalm/internal/models"
)

func TestCopyMedicationHistory(t *testing.T) {
	var copied string
	old := clipboardWriteAll
	clipboardWriteAll = func(s string) error { copied = s; return nil }
	defer func() { clipboardWriteAll = old }()

	logs := []models.MedicationLog{
		{Date: time.Date(2025, 3, 2, 8, 0, 0, 0, time.Local), MedicationName: "Sertraline", EfficacyRating: 6, SideEffects: "Nausea"},
		{Date: time.Date(2025, 3, 1, 8, 0, 0, 0, time.Local), MedicationName: "Sertraline", EfficacyRating: 5},
	}
	text, err := CopyMedicationHistory(logs)
	if err != nil {
		t.Fatalf("CopyMedicationHistory failed: %v", err)
	}
	want := "3/2/2025 - Sertraline: Taken. Eff: 6/10. SE: Nausea\n3/1/2025 - Sertraline: Taken. Eff: 5/10. SE: None"
	if text != want || copied != want {
		t.Errorf("expected %q copied, got text=%q clipboard=%q", want, text, copied)
	}

	if _, err := CopyMedicationHistory(nil); err == nil {
		t.Error("expected error with no logs")
	}

	clipboardWriteAll = func(string) error { return errors.New("no display") }
	if _, err := CopyMedicationHistory(logs); err == nil {
		t.Error("expected clipboard failure to be reported")
	}
}

func TestWritePDF(t *testing.T) {
	score := 11
	var buf bytes.Buffer
	err := WritePDF(&buf, Clinician{
		Generated: time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC),
		Stats:     analytics.ReportStats{AvgAnxiety: "5.5", AvgSleep: "6.8", CBTCount: 4, MedCompliance: "86", LatestGAD7: &score},
		GAD7:      []models.GAD7Result{{Date: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), Score: 11, Interpretation: models.GAD7Moderate}},
		Medications: []models.Medication{
			{Name: "Sertraline", Dosage: "50mg", Frequency: "Daily", Type: "SSRI"},
		},
		MedLogs: []models.MedicationLog{{Date: time.Now(), MedicationName: "Sertraline", EfficacyRating: 5}},
		Summary: "## Weekly summary\n**Good** consistency.\n* Keep logging",
	})
	if err != nil {
		t.Fatalf("WritePDF failed: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Errorf("expected PDF header, got %q", buf.Bytes()[:min(8, buf.Len())])
	}
}

func TestPlainText(t *testing.T) {
	got := plainText("## Title\n**bold** text\n* item")
	want := "Title\nbold text\n- item"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}
