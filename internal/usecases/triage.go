package usecases

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"focus_forge/internal/models"

	"github.com/markusmobius/go-dateparser"
)

type TriageRequest struct {
	Action     string `json:"action"`
	When       string `json:"when"`
	DelegateTo string `json:"delegateTo"`
	Category   string `json:"category"`
}

// Schedule is a parsed "when"; AllDay is set for bare dates.
type Schedule struct {
	At     time.Time
	AllDay bool
}

func ValidateTriage(req TriageRequest) (TriageRequest, error) {
	req.Action = strings.ToLower(strings.TrimSpace(req.Action))
	req.When = strings.TrimSpace(req.When)
	req.DelegateTo = strings.TrimSpace(req.DelegateTo)

	known := false
	for _, a := range models.TriageActions {
		if req.Action == a {
			known = true
			break
		}
	}
	if !known {
		return req, invalid("action", "must be one of %s", strings.Join(models.TriageActions, ", "))
	}

	switch req.Action {
	case models.ActionSchedule:
		if req.When == "" {
			return req, invalid("when", "is required to schedule")
		}
	case models.ActionDelegate:
		if req.DelegateTo == "" {
			return req, invalid("delegateTo", "is required to delegate")
		}
		if len(req.DelegateTo) > models.MaxTitleLength {
			return req, invalid("delegateTo", "must be at most %d characters", models.MaxTitleLength)
		}
	}
	return req, nil
}

// ParseWhen accepts RFC3339, a bare date, or natural language such as
// "tomorrow 3pm" or "next monday". The result must not be in the past.
func ParseWhen(input string, now time.Time, loc *time.Location) (Schedule, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return Schedule{}, invalid("when", "is required")
	}
	now = now.In(loc)

	if t, err := time.Parse(time.RFC3339, input); err == nil {
		if t.Before(now) {
			return Schedule{}, invalid("when", "must be in the future")
		}
		return Schedule{At: t.In(loc)}, nil
	}

	if t, err := time.ParseInLocation("2006-01-02", input, loc); err == nil {
		if t.Before(Day(now, loc)) {
			return Schedule{}, invalid("when", "must not be in the past")
		}
		return Schedule{At: t, AllDay: true}, nil
	}

	if rest, day, ok := nextWeekday(input, now, loc); ok {
		if rest == "" {
			return Schedule{At: day, AllDay: true}, nil
		}
		// "next monday 9am": the clock is read relative to that day.
		now = day
		input = rest
	}

	cfg := &dateparser.Configuration{
		CurrentTime:         now,
		PreferredDateSource: dateparser.Future,
		ReturnTimeAsPeriod:  true,
	}
	result, err := dateparser.Parse(cfg, input)
	if err != nil {
		return Schedule{}, invalid("when", "could not understand %q", input)
	}

	t := result.Time.In(loc)

	// No clock in the input ("tomorrow", "in 2 days") means the whole day.
	if !result.Period.IsTime() {
		day := Day(t, loc)
		if day.Before(Day(now, loc)) {
			return Schedule{}, invalid("when", "must not be in the past")
		}
		return Schedule{At: day, AllDay: true}, nil
	}

	if t.Before(now) {
		// Earlier today means the same time tomorrow.
		if Day(t, loc).Equal(Day(now, loc)) {
			t = t.AddDate(0, 0, 1)
		} else {
			return Schedule{}, invalid("when", "must be in the future")
		}
	}
	return Schedule{At: t}, nil
}

var nextWeekdayRe = regexp.MustCompile(`(?i)^next\s+([a-z]+)\b\s*(.*)$`)

var weekdayNames = map[string]time.Weekday{
	"monday": time.Monday, "mon": time.Monday,
	"tuesday": time.Tuesday, "tue": time.Tuesday, "tues": time.Tuesday,
	"wednesday": time.Wednesday, "wed": time.Wednesday,
	"thursday": time.Thursday, "thu": time.Thursday, "thurs": time.Thursday,
	"friday": time.Friday, "fri": time.Friday,
	"saturday": time.Saturday, "sat": time.Saturday,
	"sunday": time.Sunday, "sun": time.Sunday,
}

// nextWeekday resolves "next <weekday>" to the first such day after today,
// returning whatever followed the weekday.
func nextWeekday(input string, now time.Time, loc *time.Location) (string, time.Time, bool) {
	m := nextWeekdayRe.FindStringSubmatch(input)
	if m == nil {
		return "", time.Time{}, false
	}
	want, ok := weekdayNames[strings.ToLower(m[1])]
	if !ok {
		return "", time.Time{}, false
	}
	today := Day(now, loc)
	ahead := (int(want) - int(today.Weekday()) + 7) % 7
	if ahead == 0 {
		ahead = 7
	}
	return strings.TrimSpace(m[2]), today.AddDate(0, 0, ahead), true
}

func (s Schedule) String() string {
	if s.AllDay {
		return s.At.Format("Mon 2 Jan")
	}
	return fmt.Sprintf("%s at %s", s.At.Format("Mon 2 Jan"), s.At.Format("15:04"))
}
