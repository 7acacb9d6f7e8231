package usecases

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"focus_forge/internal/models"
)

// ValidationError carries a client-facing message.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func ValidateMood(score *int, note string) error {
	if score == nil {
		return invalid("moodScore", "is required")
	}
	if *score < models.MinMoodScore || *score > models.MaxMoodScore {
		return invalid("moodScore", "must be between %d and %d", models.MinMoodScore, models.MaxMoodScore)
	}
	if utf8.RuneCountInString(note) > models.MaxNoteLength {
		return invalid("note", "must be at most %d characters", models.MaxNoteLength)
	}
	return nil
}

// ValidateTitle trims and checks a required title.
func ValidateTitle(field, title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", invalid(field, "is required")
	}
	if utf8.RuneCountInString(title) > models.MaxTitleLength {
		return "", invalid(field, "must be at most %d characters", models.MaxTitleLength)
	}
	return title, nil
}

func ValidateText(field, text string, max int) (string, error) {
	text = strings.TrimSpace(text)
	if utf8.RuneCountInString(text) > max {
		return "", invalid(field, "must be at most %d characters", max)
	}
	return text, nil
}

func ValidateGoalStatus(status string) error {
	switch status {
	case models.GoalStatusActive, models.GoalStatusCompleted, models.GoalStatusArchived:
		return nil
	}
	return invalid("status", "must be one of active, completed, archived")
}

func ValidateTaskStatus(status string) error {
	switch status {
	case "", models.TaskStatusTodo, models.TaskStatusDone:
		return nil
	}
	return invalid("status", "must be todo or done")
}

// ParseDay accepts YYYY-MM-DD and returns midnight in loc.
func ParseDay(field, s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(s), loc)
	if err != nil {
		return time.Time{}, invalid(field, "must be a date like 2006-01-02")
	}
	return t, nil
}
