package constants

// Storage keys. Each key holds exactly one JSON document.
const (
	KeyMoods                 = "moods"
	KeyLifestyle             = "lifestyle"
	KeyThoughts              = "thoughts"
	KeyWorries               = "worries"
	KeyMedications           = "medications"
	KeyMedLogs               = "medLogs"
	KeyActivities            = "activities"
	KeyBreathingSessions     = "breathingSessions"
	KeyGAD7History           = "gad7History"
	KeyWorkouts              = "workouts"
	KeyTheme                 = "theme"
	KeyCBTDraft              = "cbt_draft"
	KeyWorryScheduleTime     = "worry_schedule_time"
	KeyWorryScheduleDuration = "worry_schedule_duration"
)

// AllKeys is every key the state container reads on load.
var AllKeys = []string{
	KeyMoods,
	KeyLifestyle,
	KeyThoughts,
	KeyWorries,
	KeyMedications,
	KeyMedLogs,
	KeyActivities,
	KeyBreathingSessions,
	KeyGAD7History,
	KeyWorkouts,
	KeyTheme,
	KeyCBTDraft,
	KeyWorryScheduleTime,
	KeyWorryScheduleDuration,
}

const (
	DefaultWorryTime        = "17:00"
	DefaultWorryDurationMin = 20

	DefaultMedFrequency  = "Daily"
	DefaultMedTotalPills = 30
	DefaultEfficacy      = 5

	DefaultActivityDifficulty = 1
	MinActivityDifficulty     = 1
	MaxActivityDifficulty     = 3

	DefaultExerciseSets = 3
	DefaultExerciseReps = "10"
	DefaultDaysPerWeek  = 3

	MinBreathingSeconds = 10

	DefaultIntensityBefore = 6
	DefaultIntensityAfter  = 3

	SleepGoalHours = 8.0

	// High-anxiety threshold for coping suggestions on check-in
	CopingThreshold = 6

	// Analytics gates
	MinEntriesForInsights = 5
	RecentWindowEntries   = 7
	TopDistortions        = 5
	TopSymptoms           = 5
	TrendDays             = 14
)
