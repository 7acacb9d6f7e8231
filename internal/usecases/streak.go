package usecases

import (
	"time"

	"focus_forge/internal/models"
)

// Day is local midnight of t.
func Day(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// civil drops the location so calendar days compare across zones.
func civil(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func daysBetween(from, to time.Time) int {
	return int(civil(to).Sub(civil(from)).Hours() / 24)
}

// ApplyCheckIn advances the streak counters for a check-in at the given time.
// Same day keeps the streak, the next day extends it, a gap restarts at 1.
func ApplyCheckIn(stats models.UserStats, at time.Time, loc *time.Location) models.UserStats {
	today := Day(at, loc)
	stats.TotalCheckIns++

	switch {
	case stats.LastCheckInDate == nil:
		stats.CurrentStreak = 1
	default:
		gap := daysBetween(*stats.LastCheckInDate, today)
		switch {
		case gap <= 0:
			if stats.CurrentStreak == 0 {
				stats.CurrentStreak = 1
			}
			if gap < 0 {
				// clock went backwards; keep the later date
				today = *stats.LastCheckInDate
			}
		case gap == 1:
			stats.CurrentStreak++
		default:
			stats.CurrentStreak = 1
		}
	}

	if stats.CurrentStreak > stats.LongestStreak {
		stats.LongestStreak = stats.CurrentStreak
	}
	stats.LastCheckInDate = &today
	return stats
}

// EffectiveStreak is the stored streak, or 0 once a full day was missed.
func EffectiveStreak(stats models.UserStats, now time.Time, loc *time.Location) int {
	if stats.LastCheckInDate == nil {
		return 0
	}
	if daysBetween(*stats.LastCheckInDate, Day(now, loc)) > 1 {
		return 0
	}
	return stats.CurrentStreak
}

// ConsecutiveDays counts calendar days with at least one entry, walking back
// from today, or from yesterday when today has no entry yet.
func ConsecutiveDays(entries []models.MoodEntry, now time.Time, loc *time.Location) int {
	days := make(map[time.Time]bool, len(entries))
	for _, e := range entries {
		days[civil(e.CreatedAt.In(loc))] = true
	}

	cursor := civil(now.In(loc))
	if !days[cursor] {
		cursor = cursor.AddDate(0, 0, -1)
	}

	streak := 0
	for days[cursor] {
		streak++
		cursor = cursor.AddDate(0, 0, -1)
	}
	return streak
}
