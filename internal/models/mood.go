package models

import (
	"time"
)

const (
	MinMoodScore   = 0
	MaxMoodScore   = 10
	MaxNoteLength  = 1000
	MoodWindowSize = 30
)

type MoodEntry struct {
	ID        int64     `json:"id" db:"id"`
	UserID    string    `json:"-" db:"user_id"`
	MoodScore int       `json:"moodScore" db:"mood_score"`
	Note      string    `json:"note,omitempty" db:"note"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
