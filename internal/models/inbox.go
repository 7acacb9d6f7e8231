package models

import (
	"time"
)

const (
	InboxStatusCaptured = "captured"
	InboxStatusTriaged  = "triaged"

	MaxInboxContentLength = 500
)

const (
	ActionDoNow    = "do_now"
	ActionSchedule = "schedule"
	ActionDelegate = "delegate"
	ActionPark     = "park"
	ActionDrop     = "drop"
)

var TriageActions = []string{ActionDoNow, ActionSchedule, ActionDelegate, ActionPark, ActionDrop}

type InboxItem struct {
	ID           int64      `json:"id" db:"id"`
	UserID       string     `json:"-" db:"user_id"`
	Content      string     `json:"content" db:"content"`
	Status       string     `json:"status" db:"status"`
	Action       string     `json:"action,omitempty" db:"action"`
	ScheduledFor *time.Time `json:"scheduledFor,omitempty" db:"scheduled_for"`
	DelegatedTo  string     `json:"delegatedTo,omitempty" db:"delegated_to"`
	TaskID       *int64     `json:"taskId,omitempty" db:"task_id"`
	CreatedAt    time.Time  `json:"createdAt" db:"created_at"`
	TriagedAt    *time.Time `json:"triagedAt,omitempty" db:"triaged_at"`
}

type TriageResult struct {
	Item          InboxItem `json:"item"`
	Task          *Task     `json:"task,omitempty"`
	Pinned        bool      `json:"pinned"`
	Slot          int       `json:"slot,omitempty"`
	CalendarEvent string    `json:"calendarEvent,omitempty"`
}
