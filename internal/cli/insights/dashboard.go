package insights

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/julianstephens/mindcalm/internal/analytics"
	"github.com/julianstephens/mindcalm/internal/cli"
	"github.com/julianstephens/mindcalm/internal/constants"
	"github.com/julianstephens/mindcalm/internal/models"
)

type DashboardCmd struct {
	JSON bool `help:"Print as JSON."`
}

func (c *DashboardCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}
	d := tr.Dashboard()
	if c.JSON {
		return cli.PrintJSON(d)
	}

	fmt.Printf("%s  %s\n\n", constants.AppName, tr.Now().Format("Monday, January 2"))
	if len(d.RecentMoods) == 0 {
		fmt.Println("No check-ins yet. Start with 'mindcalm checkin'.")
	} else {
		fmt.Printf("Anxiety (last %d):  %.1f/10  %s\n", len(d.RecentMoods), d.AvgAnxiety, analytics.AnxietyBand(int(d.AvgAnxiety+0.5)))
		fmt.Printf("Mood:               %s/10\n", orNA(d.AvgMood))
	}
	fmt.Printf("Sleep:              %sh", orNA(d.AvgSleep))
	if d.AvgSleepQuality != nil {
		fmt.Printf("  (quality %.1f/5)", *d.AvgSleepQuality)
	}
	fmt.Println()
	fmt.Printf("Medications today:  %d of %d\n", d.MedsTakenToday, d.TotalMeds)

	if len(d.TopSymptoms) > 0 {
		var parts []string
		for _, s := range d.TopSymptoms {
			parts = append(parts, fmt.Sprintf("%s (%d)", s.Name, s.Value))
		}
		fmt.Printf("Top symptoms:       %s\n", strings.Join(parts, ", "))
	}

	start, minutes := tr.WorrySchedule()
	if tr.IsWorryTime(tr.Now()) {
		fmt.Printf("\nIt's worry time (%s for %d min). %d worries waiting.\n", start, minutes, len(tr.ActiveWorries()))
	}
	return nil
}

func orNA(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.1f", *v)
}

type analyticsReport struct {
	Range        models.TimeRange      `json:"range"`
	Trend        []analytics.TrendRow  `json:"trend"`
	Distortions  []analytics.Count     `json:"distortions"`
	Radar        []analytics.RadarAxis `json:"radar"`
	AvgReduction float64               `json:"avgReduction"`
	GAD7         []models.GAD7Result   `json:"gad7"`
}

type AnalyticsCmd struct {
	Range string `short:"r" default:"30d" help:"Time range: 7d, 30d, 90d or all."`
	JSON  bool   `help:"Print as JSON."`
}

func (c *AnalyticsCmd) Run(ctx *cli.Context) error {
	r, err := models.ParseTimeRange(c.Range)
	if err != nil {
		return err
	}
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}
	w := tr.Window(r)
	rep := analyticsReport{
		Range:        r,
		Trend:        analytics.BuildTrend(w),
		Distortions:  analytics.DistortionStats(w.Thoughts),
		Radar:        analytics.Radar(w),
		AvgReduction: analytics.AverageReduction(w.Thoughts),
		GAD7:         w.GAD7,
	}
	if c.JSON {
		return cli.PrintJSON(rep)
	}

	if len(rep.Trend) == 0 {
		fmt.Printf("No entries in the last %s.\n", r)
		return nil
	}
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "DAY\tANXIETY\tMOOD\tSLEEP\tEXERCISE\tCBT")
	for _, row := range rep.Trend {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%d\n", row.Name, cell(row.Anxiety), cell(row.Mood), cell(row.Sleep), cell(row.Exercise), row.CBTCount)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(rep.Radar) > 0 {
		fmt.Println("\nWellness balance:")
		for _, a := range rep.Radar {
			fmt.Printf("  %-9s %s %.1f\n", a.Subject, bar(a.Value, a.FullMark, 20), a.Value)
		}
	}
	if len(rep.Distortions) > 0 {
		fmt.Println("\nMost common thinking traps:")
		for _, d := range rep.Distortions {
			name := d.Name
			if dist, ok := constants.DistortionByID(d.Name); ok {
				name = dist.Name
			}
			fmt.Printf("  %s: %d\n", name, d.Value)
		}
		fmt.Printf("Average intensity reduction: %.1f\n", rep.AvgReduction)
	}
	return nil
}

func cell(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%g", analytics.Round1(*v))
}

func bar(v, full float64, width int) string {
	if full <= 0 {
		return ""
	}
	n := int(v / full * float64(width))
	n = min(max(n, 0), width)
	return strings.Repeat("█", n) + strings.Repeat("░", width-n)
}

type InsightsCmd struct {
	Range string `short:"r" default:"30d" help:"Time range: 7d, 30d, 90d or all."`
	JSON  bool   `help:"Print as JSON."`
}

func (c *InsightsCmd) Run(ctx *cli.Context) error {
	r, err := models.ParseTimeRange(c.Range)
	if err != nil {
		return err
	}
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}
	summary, ok := analytics.InsightSummary(tr.Window(r))
	if !ok {
		return fmt.Errorf("need more than %d mood and lifestyle entries in the last %s for insights", constants.MinEntriesForInsights, r)
	}

	bg := context.Background()
	insights := ctx.Assistant(bg).DataInsights(bg, summary)
	if c.JSON {
		return cli.PrintJSON(insights)
	}
	for _, in := range insights {
		fmt.Printf("• %s\n", in.Text)
		if len(in.RelatedMetrics) > 0 {
			fmt.Printf("  (%s)\n", strings.Join(in.RelatedMetrics, ", "))
		}
	}
	return nil
}
