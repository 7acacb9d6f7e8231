package models

import (
	"time"
)

const SlotCount = 3

// Slots holds the task IDs pinned in Now Mode; nil means the slot is free.
type Slots [SlotCount]*int64

type FocusPlan struct {
	UserID    string    `json:"-" db:"user_id"`
	PlanDate  time.Time `json:"planDate" db:"plan_date"`
	Slots     Slots     `json:"slots"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

type NowView struct {
	Date  string           `json:"date"`
	Slots [SlotCount]*Task `json:"slots"`
	Free  int              `json:"free"`
}
