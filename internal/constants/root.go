package constants

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// SessionState represents the current state of the TUI application
type SessionState int

// ConfirmationMsg is a message to trigger a confirmation dialog
type ConfirmationMsg struct {
	Message string
	Action  func() tea.Cmd
}

const (
	AppName            = "mindcalm"
	DefaultKeyringUser = "database-connection"
	GeminiKeyringUser  = "gemini-api-key"
	GeminiAPIKeyEnv    = "GEMINI_API_KEY"
	DefaultConfigPath  = "~/.config/mindcalm/mindcalm.db"
	ConfigFileName     = "config.yaml"
	Version            = "v0.3.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// DayLabelFormat keys the per-day analytics rows ("Jan 2")
	DayLabelFormat = "Jan 2"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "mindcalm-"
	BackupFileSuffix = ".db"

	// Server constants
	DefaultServerAddr    = "127.0.0.1:7717"
	ServerLockfileName   = "mindcalm-serve.lock"
	ServerShutdownPeriod = 5 * time.Second

	// AI constants
	DefaultAIModel   = "gemini-2.5-flash"
	ChatHistoryLimit = 6
)

// Session States
const (
	StateDashboard SessionState = iota
	StateLifestyle
	StateCBT
	StateWorry
	StateMedication
	StateBreathing
	StateExercise
	StateProgress
	StateGraph
	StateSteppedCare
	StateChat
	StateCheckIn
	StateAddThought
	StateAddWorry
	StateWorrySchedule
	StateAddMedication
	StateLogDose
	StateAddActivity
	StateGAD7
	StateWorkoutPlan
	StateBreathingSetup
	StateBreathingSession
	StateAnxietyAfter
	StateConfirmation
)

// MainTabs lists the tab-cycled views in display order.
var MainTabs = []SessionState{
	StateDashboard,
	StateLifestyle,
	StateCBT,
	StateWorry,
	StateMedication,
	StateBreathing,
	StateExercise,
	StateProgress,
	StateGraph,
	StateSteppedCare,
	StateChat,
}
