package tracker

import (
	"slices"

	"github.com/julianstephens/mindcalm/internal/analytics"
	"github.com/julianstephens/mindcalm/internal/graph"
	"github.com/julianstephens/mindcalm/internal/models"
	"github.com/julianstephens/mindcalm/internal/optimizer"
	"github.com/julianstephens/mindcalm/internal/report"
	"github.com/julianstephens/mindcalm/internal/validation"
)

// Window restricts the tracked collections to a time range ending now.
func (t *Tracker) Window(r models.TimeRange) analytics.Window {
	return analytics.NewWindow(r, t.now(), t.moods, t.lifestyle, t.thoughts, t.gad7)
}

func (t *Tracker) Dashboard() analytics.Dashboard {
	return analytics.BuildDashboard(t.moods, t.lifestyle, t.meds, t.medLogs, t.now())
}

func (t *Tracker) Compliance() float64 {
	return analytics.MedicationCompliance(t.meds, t.medLogs, t.now())
}

func (t *Tracker) ReportStats() analytics.ReportStats {
	return analytics.BuildReportStats(t.moods, t.lifestyle, t.thoughts, t.gad7, t.Compliance())
}

// ValidationInput snapshots every collection for the integrity checks.
func (t *Tracker) ValidationInput() validation.Input {
	return validation.Input{
		Moods:       slices.Clone(t.moods),
		Lifestyle:   slices.Clone(t.lifestyle),
		Thoughts:    slices.Clone(t.thoughts),
		Worries:     slices.Clone(t.worries),
		Medications: slices.Clone(t.meds),
		MedLogs:     slices.Clone(t.medLogs),
		Activities:  slices.Clone(t.activities),
		Breathing:   slices.Clone(t.breathing),
		GAD7:        slices.Clone(t.gad7),
		Workouts:    slices.Clone(t.workouts),
		Now:         t.now(),
	}
}

// Suggestions reviews coping history for routine adjustments.
func (t *Tracker) Suggestions() []optimizer.Suggestion {
	return optimizer.New().Analyze(optimizer.Input{
		Breathing:   t.breathing,
		Activities:  t.activities,
		Thoughts:    t.thoughts,
		Medications: t.meds,
		Now:         t.now(),
	})
}

func (t *Tracker) KnowledgeGraph() graph.Graph {
	return graph.Build(graph.Input{
		Moods:       t.moods,
		Lifestyle:   t.lifestyle,
		Thoughts:    t.thoughts,
		Medications: t.meds,
		MedLogs:     t.medLogs,
	})
}

// ClinicianReport gathers the report contents without a written summary.
func (t *Tracker) ClinicianReport() report.Clinician {
	return report.Clinician{
		Generated:   t.now(),
		Stats:       t.ReportStats(),
		GAD7:        slices.Clone(t.gad7),
		Medications: slices.Clone(t.meds),
		MedLogs:     slices.Clone(t.medLogs),
	}
}
