package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/julianstephens/mindcalm/internal/analytics"
	"github.com/julianstephens/mindcalm/internal/constants"
	"github.com/julianstephens/mindcalm/internal/models"
)

// Clinician is everything printed on the clinician report.
type Clinician struct {
	Generated   time.Time
	Stats       analytics.ReportStats
	GAD7        []models.GAD7Result
	Medications []models.Medication
	MedLogs     []models.MedicationLog
	Summary     string
}

const (
	pageMargin = 15.0
	lineHeight = 6.0
	font       = "Helvetica"
)

// WritePDF renders the report as an A4 PDF.
func WritePDF(w io.Writer, r Clinician) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	pdf.SetTitle("MindCalm Progress Report", false)
	pdf.SetCreator(constants.AppName+" "+constants.Version, false)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pdf.SetFont(font, "B", 18)
	pdf.SetTextColor(13, 148, 136)
	pdf.CellFormat(0, 10, "MindCalm Progress Report", "", 1, "L", false, 0, "")
	pdf.SetFont(font, "", 10)
	pdf.SetTextColor(100, 116, 139)
	pdf.CellFormat(0, lineHeight, "Generated "+r.Generated.Format("January 2, 2006"), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	heading(pdf, "Summary")
	gad7 := "Not taken"
	if r.Stats.LatestGAD7 != nil {
		gad7 = fmt.Sprintf("%d (%s)", *r.Stats.LatestGAD7, models.InterpretGAD7(*r.Stats.LatestGAD7))
	}
	rows := [][2]string{
		{"Average anxiety (last 7 check-ins)", r.Stats.AvgAnxiety + "/10"},
		{"Average sleep", r.Stats.AvgSleep + " hours"},
		{"Thought records completed", fmt.Sprint(r.Stats.CBTCount)},
		{"Medication adherence (7 days)", r.Stats.MedCompliance + "%"},
		{"Latest GAD-7", gad7},
	}
	pdf.SetFont(font, "", 11)
	for _, row := range rows {
		pdf.CellFormat(90, lineHeight+1, tr(row[0]), "B", 0, "L", false, 0, "")
		pdf.CellFormat(0, lineHeight+1, tr(row[1]), "B", 1, "R", false, 0, "")
	}
	pdf.Ln(4)

	if len(r.GAD7) > 0 {
		heading(pdf, "GAD-7 History")
		pdf.SetFont(font, "", 10)
		for _, g := range r.GAD7 {
			pdf.CellFormat(50, lineHeight, g.Date.Local().Format(constants.DateFormat), "", 0, "L", false, 0, "")
			pdf.CellFormat(20, lineHeight, fmt.Sprint(g.Score), "", 0, "R", false, 0, "")
			pdf.CellFormat(0, lineHeight, "  "+string(g.Interpretation), "", 1, "L", false, 0, "")
		}
		pdf.Ln(4)
	}

	if len(r.Medications) > 0 {
		heading(pdf, "Medications")
		pdf.SetFont(font, "", 10)
		for _, m := range r.Medications {
			line := fmt.Sprintf("%s %s, %s (%s)", m.Name, m.Dosage, m.Frequency, m.Type)
			pdf.MultiCell(0, lineHeight, tr(line), "", "L", false)
		}
		if len(r.MedLogs) > 0 {
			pdf.Ln(2)
			pdf.SetFont(font, "I", 9)
			for _, line := range analytics.MedicationHistory(r.MedLogs) {
				pdf.MultiCell(0, lineHeight-1, tr(line), "", "L", false)
			}
		}
		pdf.Ln(4)
	}

	if strings.TrimSpace(r.Summary) != "" {
		heading(pdf, "Assessment")
		pdf.SetFont(font, "", 11)
		pdf.MultiCell(0, lineHeight, tr(plainText(r.Summary)), "", "L", false)
	}

	pdf.Ln(6)
	pdf.SetFont(font, "I", 8)
	pdf.SetTextColor(148, 163, 184)
	pdf.MultiCell(0, 4, "Self-reported data from the MindCalm app. Not a diagnosis.", "", "L", false)

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to render PDF: %w", err)
	}
	return nil
}

func heading(pdf *gofpdf.Fpdf, text string) {
	pdf.SetFont(font, "B", 13)
	pdf.SetTextColor(30, 41, 59)
	pdf.CellFormat(0, 8, text, "", 1, "L", false, 0, "")
	pdf.SetTextColor(51, 65, 85)
}

// plainText strips the Markdown markers the model tends to emit, since the
// PDF core fonts cannot style inline.
func plainText(md string) string {
	var out []string
	for _, line := range strings.Split(md, "\n") {
		line = strings.TrimLeft(line, "# ")
		line = strings.ReplaceAll(line, "**", "")
		line = strings.ReplaceAll(line, "__", "")
		if strings.HasPrefix(line, "* ") || strings.HasPrefix(line, "- ") {
			line = "- " + line[2:]
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}
