package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/mindcalm/internal/cli"
	"github.com/julianstephens/mindcalm/internal/cli/backups"
	"github.com/julianstephens/mindcalm/internal/cli/cbt"
	"github.com/julianstephens/mindcalm/internal/cli/checkins"
	"github.com/julianstephens/mindcalm/internal/cli/insights"
	"github.com/julianstephens/mindcalm/internal/cli/meds"
	"github.com/julianstephens/mindcalm/internal/cli/settings"
	"github.com/julianstephens/mindcalm/internal/cli/state"
	"github.com/julianstephens/mindcalm/internal/cli/system"
	"github.com/julianstephens/mindcalm/internal/cli/wellness"
	"github.com/julianstephens/mindcalm/internal/config"
	"github.com/julianstephens/mindcalm/internal/constants"
	"github.com/julianstephens/mindcalm/internal/errors"
	"github.com/julianstephens/mindcalm/internal/keyring"
	"github.com/julianstephens/mindcalm/internal/logger"
	"github.com/julianstephens/mindcalm/internal/storage"
	"github.com/julianstephens/mindcalm/internal/storage/postgres"
	"github.com/julianstephens/mindcalm/internal/utils"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Database path or PostgreSQL connection string. For PostgreSQL, credentials must NOT be embedded in the connection string. Use environment variables, .pgpass, or OS keyring instead." type:"string" default:"${default_config}"`
	Verbose bool   `short:"v" help:"Mirror logs to stderr at debug level."`

	Init     system.InitCmd     `cmd:"" help:"Initialize mindcalm storage."`
	Migrate  system.MigrateCmd  `cmd:"" help:"Run database migrations."`
	Doctor   system.DoctorCmd   `cmd:"" help:"Run health checks and diagnostics."`
	Tui      system.TuiCmd      `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Serve    system.ServeCmd    `cmd:"" help:"Serve the JSON API for the web client."`
	Debug    system.DebugCmd    `cmd:"" help:"Debug commands for troubleshooting."`
	Validate system.ValidateCmd `cmd:"" help:"Check stored data for duplicates and out-of-range values."`
	Keyring  system.KeyringCmd  `cmd:"" help:"Manage secrets in the OS keyring."`

	Checkin checkins.CheckinCmd `cmd:"" help:"Log today's sleep, lifestyle and mood."`
	Mood    checkins.MoodCmd    `cmd:"" help:"Add or list mood entries."`
	Sleep   checkins.SleepCmd   `cmd:"" help:"Show sleep score, debt and trend."`

	Thought  cbt.ThoughtCmd  `cmd:"" help:"CBT thought records."`
	Worry    cbt.WorryCmd    `cmd:"" help:"Postpone worries to a daily worry window."`
	Activity cbt.ActivityCmd `cmd:"" help:"Behavioral activation planner."`

	Med meds.MedCmd `cmd:"" help:"Medications, doses and tapering."`

	Breathe wellness.BreatheCmd `cmd:"" help:"Guided breathing."`
	Workout wellness.WorkoutCmd `cmd:"" help:"Strength training schedule."`
	GAD7    wellness.GAD7Cmd    `cmd:"" name:"gad7" help:"GAD-7 anxiety assessment."`

	Dashboard insights.DashboardCmd `cmd:"" help:"Show today's overview."`
	Analytics insights.AnalyticsCmd `cmd:"" help:"Show trends over a time range."`
	Insights  insights.InsightsCmd  `cmd:"" help:"Ask the assistant for patterns in your data."`
	Report    insights.ReportCmd    `cmd:"" help:"Write the clinician progress report as PDF."`
	Chat      insights.ChatCmd      `cmd:"" help:"Talk to the CBT assistant."`
	Care      insights.CareCmd      `cmd:"" help:"Show the stepped-care model and your current step."`
	Suggest   insights.SuggestCmd   `cmd:"" help:"Suggest adjustments to your coping routine."`
	Graph     insights.GraphCmd     `cmd:"" help:"Print the knowledge graph as JSON."`

	Backup   backups.BackupCmd    `cmd:"" help:"Manage database backups."`
	Settings settings.SettingsCmd `cmd:"" help:"Manage application settings."`
	State    state.StateCmd       `cmd:"" help:"Inspect and edit stored documents directly."`
}

var hints = []errors.Hinted{
	{Err: storage.ErrNotInitialized, Hint: "run 'mindcalm init' to create the database."},
	{Err: postgres.ErrEmbeddedCredentials, Hint: "store the connection string with 'mindcalm keyring set db <conn>' or use .pgpass."},
	{Err: keyring.ErrKeyringUnavailable, Hint: "set GEMINI_API_KEY instead of using the keyring."},
	{Err: config.ErrUnknownSetting, Hint: "run 'mindcalm settings list' to see available settings."},
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Self-management companion for generalized anxiety"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version, "default_config": constants.DefaultConfigPath},
	)

	path := CLI.Config
	if !cli.IsPostgres(path) {
		expanded, err := utils.ExpandHome(path)
		if err != nil {
			errors.Fatalf("invalid --config path %q: %v", path, err)
		}
		path = expanded
	}

	configDir := cli.ConfigDir(path)
	if err := logger.Init(logger.Config{Debug: CLI.Verbose, ConfigDir: configDir}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger: %v\n", err)
	}

	store, err := cli.OpenStore(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, errors.FormatWithHint(err, hints...))
		os.Exit(1)
	}

	configFile := config.PathIn(configDir)
	cfg, err := config.Load(configFile)
	if err != nil {
		logger.Warn("Falling back to default settings", "error", err)
		cfg = config.Default()
	}

	appCtx := &cli.Context{Store: store, Config: cfg, ConfigFile: configFile}

	// init manages its own store lifecycle
	if ctx.Selected() != nil && ctx.Selected().Name != "init" {
		if err := store.Load(); err != nil {
			fmt.Fprintln(os.Stderr, errors.FormatWithHint(err, hints...))
			os.Exit(1)
		}
		defer store.Close()
	}

	if err := ctx.Run(appCtx); err != nil {
		logger.Error("command failed", "command", ctx.Command(), "error", err)
		store.Close()
		fmt.Fprintln(os.Stderr, errors.FormatWithHint(err, hints...))
		os.Exit(1)
	}
}
