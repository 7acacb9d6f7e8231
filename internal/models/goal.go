package models

import (
	"time"
)

const (
	GoalStatusActive    = "active"
	GoalStatusCompleted = "completed"
	GoalStatusArchived  = "archived"
)

type Goal struct {
	ID          int64      `json:"id" db:"id"`
	UserID      string     `json:"-" db:"user_id"`
	Title       string     `json:"title" db:"title"`
	Category    string     `json:"category" db:"category"`
	Description string     `json:"description,omitempty" db:"description"`
	TargetDate  *time.Time `json:"targetDate,omitempty" db:"target_date"`
	Status      string     `json:"status" db:"status"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at"`
}

type GoalProgress struct {
	GoalID  int64 `json:"goalId"`
	Total   int   `json:"total"`
	Done    int   `json:"done"`
	Percent int   `json:"percent"`
}
