package meds

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/julianstephens/mindcalm/internal/cli"
	"github.com/julianstephens/mindcalm/internal/constants"
	"github.com/julianstephens/mindcalm/internal/models"
	"github.com/julianstephens/mindcalm/internal/report"
	"github.com/julianstephens/mindcalm/internal/tui/handlers"
	"github.com/julianstephens/mindcalm/internal/tui/state"
	"github.com/julianstephens/mindcalm/internal/utils"
)

// refillWarningDays is how close a refill date must be to be flagged.
const refillWarningDays = 7

type MedCmd struct {
	Add          MedAddCmd          `cmd:"" help:"Add a medication."`
	List         MedListCmd         `cmd:"" default:"withargs" help:"List medications and today's doses."`
	Delete       MedDeleteCmd       `cmd:"" help:"Delete a medication. Its dose history is kept."`
	Dose         MedDoseCmd         `cmd:"" help:"Confirm a dose was taken."`
	History      MedHistoryCmd      `cmd:"" help:"Show the dose history."`
	Taper        TaperCmd           `cmd:"" help:"Manage a medication's taper schedule."`
	Info         MedInfoCmd         `cmd:"" help:"Ask the assistant about a medication."`
	Interactions MedInteractionsCmd `cmd:"" help:"Check a medication against the ones you take."`
}

type MedAddCmd struct {
	Interactive  bool   `short:"i" help:"Fill in the medication with a form."`
	Name         string `arg:"" optional:"" help:"Medication name."`
	Dosage       string `help:"Dosage, e.g. 10mg."`
	Frequency    string `help:"How often it is taken." default:"Daily"`
	Type         string `help:"Drug class: SSRI, SNRI, Benzodiazepine or Other." default:"Other"`
	Instructions string `help:"Special instructions."`
	Pills        int    `help:"Pills on hand." default:"30"`
	Refill       string `help:"Next refill date (YYYY-MM-DD)."`
}

func (c *MedAddCmd) medication() (models.Medication, error) {
	if c.Interactive {
		fm := state.NewMedicationFormModel()
		if err := handlers.NewMedicationForm(fm).Run(); err != nil {
			return models.Medication{}, err
		}
		return fm.Medication()
	}

	typ, ok := parseType(c.Type)
	if !ok {
		return models.Medication{}, fmt.Errorf("unknown medication type %q", c.Type)
	}
	if c.Refill != "" && !utils.ValidateDateFormat(c.Refill) {
		return models.Medication{}, fmt.Errorf("refill date %q must be YYYY-MM-DD", c.Refill)
	}
	if c.Pills < 0 {
		return models.Medication{}, fmt.Errorf("pills must not be negative")
	}
	return models.Medication{
		Name:         c.Name,
		Dosage:       c.Dosage,
		Frequency:    c.Frequency,
		Type:         typ,
		Instructions: c.Instructions,
		TotalPills:   c.Pills,
		RefillDate:   c.Refill,
	}, nil
}

func parseType(s string) (constants.MedicationType, bool) {
	for _, t := range constants.MedicationTypes {
		if strings.EqualFold(string(t), s) {
			return t, true
		}
	}
	return "", false
}

func (c *MedAddCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}
	m, err := c.medication()
	if err != nil {
		return err
	}
	saved, err := tr.AddMedication(m)
	if err != nil {
		return fmt.Errorf("failed to add medication: %w", err)
	}
	fmt.Printf("Added %s %s (ID: %s)\n", saved.Name, saved.Dosage, saved.ID)
	return nil
}

type MedListCmd struct {
	JSON bool `help:"Print as JSON."`
}

func (c *MedListCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}
	meds := tr.Medications()
	if c.JSON {
		return cli.PrintJSON(meds)
	}
	if len(meds) == 0 {
		fmt.Println("No medications added.")
		return nil
	}

	now := tr.Now()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTODAY\tNAME\tDOSAGE\tFREQUENCY\tPILLS\tREFILL")
	for _, m := range meds {
		taken := "[ ]"
		if tr.IsTakenToday(m.ID, now) {
			taken = "[x]"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\t%s\n", m.ID, taken, m.Name, m.Dosage, m.Frequency, m.TotalPills, refillLabel(m.RefillDate, now))
	}
	return w.Flush()
}

func refillLabel(date string, now time.Time) string {
	if date == "" {
		return "-"
	}
	days, err := utils.DaysUntil(date, now)
	if err != nil {
		return date
	}
	switch {
	case days < 0:
		return fmt.Sprintf("%s (overdue)", date)
	case days <= refillWarningDays:
		return fmt.Sprintf("%s (in %d days)", date, days)
	}
	return date
}

type MedDeleteCmd struct {
	ID string `arg:"" help:"Medication ID."`
}

func (c *MedDeleteCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}
	if err := tr.DeleteMedication(c.ID); err != nil {
		return fmt.Errorf("failed to delete medication: %w", err)
	}
	fmt.Printf("Deleted medication (ID: %s)\n", c.ID)
	return nil
}

type MedDoseCmd struct {
	Interactive bool   `short:"i" help:"Rate the dose with a form."`
	ID          string `arg:"" help:"Medication ID."`
	SideEffects string `help:"Side effects noticed."`
	Efficacy    int    `short:"e" help:"How well it is working (1-10)." default:"5"`
}

func (c *MedDoseCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}
	m, err := tr.Medication(c.ID)
	if err != nil {
		return err
	}

	sideEffects, efficacy := c.SideEffects, c.Efficacy
	if c.Interactive {
		fm := &state.DoseFormModel{MedicationID: m.ID, Efficacy: constants.DefaultEfficacy}
		if err := handlers.NewDoseForm(fm, m.Name).Run(); err != nil {
			return err
		}
		sideEffects, efficacy = fm.SideEffects, fm.Efficacy
	}

	if tr.IsTakenToday(m.ID, tr.Now()) {
		fmt.Printf("Note: a dose of %s was already logged today.\n", m.Name)
	}
	log, err := tr.ConfirmDose(m.ID, sideEffects, efficacy)
	if err != nil {
		return fmt.Errorf("failed to log dose: %w", err)
	}
	m, _ = tr.Medication(m.ID)
	fmt.Printf("Logged %s at %s (%d pills left)\n", log.MedicationName, log.Date.Format(constants.TimeFormat), m.TotalPills)
	return nil
}

type MedHistoryCmd struct {
	Copy bool `short:"c" help:"Copy the history to the clipboard for your clinician."`
	JSON bool `help:"Print as JSON."`
}

func (c *MedHistoryCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}
	logs := tr.MedicationLogs()
	if c.JSON {
		return cli.PrintJSON(logs)
	}
	if c.Copy {
		text, err := report.CopyMedicationHistory(logs)
		if err != nil {
			return err
		}
		fmt.Println(text)
		fmt.Println("\nCopied to clipboard.")
		return nil
	}
	if len(logs) == 0 {
		fmt.Println("No doses logged yet.")
		return nil
	}
	fmt.Println(report.MedicationHistory(logs))
	return nil
}

type TaperCmd struct {
	Add      TaperAddCmd      `cmd:"" help:"Add a dosage step."`
	List     TaperListCmd     `cmd:"" default:"withargs" help:"Show the taper schedule."`
	Complete TaperCompleteCmd `cmd:"" help:"Toggle a step's completion."`
}

type TaperAddCmd struct {
	ID     string `arg:"" help:"Medication ID."`
	Date   string `arg:"" help:"When the step starts (YYYY-MM-DD)."`
	Dosage string `arg:"" help:"Dosage from that date."`
	Notes  string `help:"Notes for the step."`
}

func (c *TaperAddCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}
	m, err := tr.AddTaperStep(c.ID, models.TaperStep{Date: c.Date, Dosage: c.Dosage, Notes: c.Notes})
	if err != nil {
		return fmt.Errorf("failed to add taper step: %w", err)
	}
	fmt.Printf("%s: step %d on %s at %s\n", m.Name, len(m.TaperSchedule), c.Date, c.Dosage)
	return nil
}

type TaperListCmd struct {
	ID string `arg:"" help:"Medication ID."`
}

func (c *TaperListCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}
	m, err := tr.Medication(c.ID)
	if err != nil {
		return err
	}
	if len(m.TaperSchedule) == 0 {
		fmt.Printf("%s has no taper schedule.\n", m.Name)
		return nil
	}
	fmt.Printf("Taper schedule for %s (currently %s):\n", m.Name, m.Dosage)
	for i, s := range m.TaperSchedule {
		mark := " "
		if s.Completed {
			mark = "x"
		}
		line := fmt.Sprintf("  %d. [%s] %s  %s", i+1, mark, s.Date, s.Dosage)
		if s.Notes != "" {
			line += "  " + s.Notes
		}
		fmt.Println(line)
	}
	return nil
}

type TaperCompleteCmd struct {
	ID   string `arg:"" help:"Medication ID."`
	Step int    `arg:"" help:"Step number, starting at 1."`
}

func (c *TaperCompleteCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}
	m, err := tr.CompleteTaperStep(c.ID, c.Step-1)
	if err != nil {
		return fmt.Errorf("failed to update taper step: %w", err)
	}
	s := m.TaperSchedule[c.Step-1]
	status := "pending"
	if s.Completed {
		status = "completed"
	}
	fmt.Printf("%s step %d (%s): %s\n", m.Name, c.Step, s.Dosage, status)
	return nil
}

type MedInfoCmd struct {
	Name string `arg:"" help:"Medication name."`
}

func (c *MedInfoCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	fmt.Println(ctx.Assistant(bg).MedicationInfo(bg, c.Name))
	return nil
}

type MedInteractionsCmd struct {
	Name string `arg:"" help:"The medication you are considering."`
}

func (c *MedInteractionsCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}
	var existing []string
	for _, m := range tr.Medications() {
		existing = append(existing, m.Name)
	}
	bg := context.Background()
	fmt.Println(ctx.Assistant(bg).DrugInteractions(bg, c.Name, existing))
	return nil
}
