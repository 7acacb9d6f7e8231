package models

const (
	TrendImproving    = "improving"
	TrendDeclining    = "declining"
	TrendStable       = "stable"
	TrendInsufficient = "insufficient_data"
)

type ThemeCount struct {
	Theme string `json:"theme"`
	Count int    `json:"count"`
}

// ContextSnapshot is everything the coach prompt knows about a user.
type ContextSnapshot struct {
	EntryCount      int          `json:"entryCount"`
	AverageMood     *float64     `json:"averageMood,omitempty"`
	RecentAverage   *float64     `json:"recentAverage,omitempty"`
	PreviousAverage *float64     `json:"previousAverage,omitempty"`
	Trend           string       `json:"trend"`
	CheckInStreak   int          `json:"checkInStreak"`
	LongestStreak   int          `json:"longestStreak"`
	LowMoodDays     int          `json:"lowMoodDays"`
	Themes          []ThemeCount `json:"themes"`
	LastNote        string       `json:"lastNote,omitempty"`

	OpenTasks      int      `json:"openTasks"`
	OverdueTasks   int      `json:"overdueTasks"`
	CompletedWeek  int      `json:"completedWeek"`
	CompletedToday int      `json:"completedToday"`
	NowTasks       []string `json:"nowTasks"`
	ActiveGoals    []string `json:"activeGoals"`
	TimeOfDay      string   `json:"timeOfDay"`
}
