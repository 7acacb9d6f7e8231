package models

import (
	"time"
)

// CalendarEvent is what a scheduled inbox item becomes on the user's calendar.
type CalendarEvent struct {
	Title       string        `json:"title"`
	Start       time.Time     `json:"start"`
	Duration    time.Duration `json:"duration"`
	AllDay      bool          `json:"allDay"`
	Description string        `json:"description,omitempty"`
}
