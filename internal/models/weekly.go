package models

import (
	"time"
)

const MaxOutcomesPerWeek = 3

type Outcome struct {
	ID        int64     `json:"id" db:"id"`
	UserID    string    `json:"-" db:"user_id"`
	WeekStart time.Time `json:"weekStart" db:"week_start"`
	Title     string    `json:"title" db:"title"`
	GoalID    *int64    `json:"goalId,omitempty" db:"goal_id"`
	Achieved  bool      `json:"achieved" db:"achieved"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

type Commitment struct {
	ID        int64      `json:"id" db:"id"`
	UserID    string     `json:"-" db:"user_id"`
	OutcomeID *int64     `json:"outcomeId,omitempty" db:"outcome_id"`
	WeekStart time.Time  `json:"weekStart" db:"week_start"`
	Title     string     `json:"title" db:"title"`
	Day       *time.Time `json:"day,omitempty" db:"day"`
	Done      bool       `json:"done" db:"done"`
	CreatedAt time.Time  `json:"createdAt" db:"created_at"`
}

type Completion struct {
	Done    int `json:"done"`
	Total   int `json:"total"`
	Percent int `json:"percent"`
}

type WeeklyPlan struct {
	WeekStart   string       `json:"weekStart"`
	Outcomes    []Outcome    `json:"outcomes"`
	Commitments []Commitment `json:"commitments"`
	Completion  Completion   `json:"completion"`
}

type WeeklyReview struct {
	WeekStart        string     `json:"weekStart"`
	Completion       Completion `json:"completion"`
	AchievedOutcomes []Outcome  `json:"achievedOutcomes"`
	MissedOutcomes   []Outcome  `json:"missedOutcomes"`
}

// PlanSuggestion is one AI-proposed weekly outcome.
type PlanSuggestion struct {
	Title       string   `json:"title"`
	Commitments []string `json:"commitments"`
}
