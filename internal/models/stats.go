package models

import (
	"time"
)

type UserStats struct {
	UserID          string     `json:"-" db:"user_id"`
	CurrentStreak   int        `json:"currentStreak" db:"current_streak"`
	LongestStreak   int        `json:"longestStreak" db:"longest_streak"`
	LastCheckInDate *time.Time `json:"lastCheckInDate,omitempty" db:"last_checkin_date"`
	TotalCheckIns   int        `json:"totalCheckIns" db:"total_checkins"`
	UpdatedAt       time.Time  `json:"updatedAt" db:"updated_at"`
}

type Patterns struct {
	WeekdayAverages      map[string]float64 `json:"weekdayAverages"`
	TimeOfDayAverages    map[string]float64 `json:"timeOfDayAverages"`
	BestWeekday          string             `json:"bestWeekday,omitempty"`
	WorstWeekday         string             `json:"worstWeekday,omitempty"`
	MoodOnProductiveDays *float64           `json:"moodOnProductiveDays,omitempty"`
	MoodOnOtherDays      *float64           `json:"moodOnOtherDays,omitempty"`
}

type StatsReport struct {
	CurrentStreak    int      `json:"currentStreak"`
	LongestStreak    int      `json:"longestStreak"`
	TotalCheckIns    int      `json:"totalCheckIns"`
	AverageMood30d   *float64 `json:"averageMood30d"`
	TasksCompleted7d int      `json:"tasksCompleted7d"`
	Patterns         Patterns `json:"patterns"`
}

type CategoryBalance struct {
	Category string  `json:"category"`
	Weight   float64 `json:"weight"`
	Done     int     `json:"done"`
	Open     int     `json:"open"`
	Rate     float64 `json:"rate"`
}

type BalanceTrend struct {
	Previous  int    `json:"previous"`
	Delta     int    `json:"delta"`
	Direction string `json:"direction"`
}

type BalanceReport struct {
	Score      int               `json:"score"`
	Days       int               `json:"days"`
	Categories []CategoryBalance `json:"categories"`
	Neglected  []string          `json:"neglected"`
	Trend      BalanceTrend      `json:"trend"`
}
