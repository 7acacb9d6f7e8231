package usecases

import (
	"testing"
	"time"

	"focus_forge/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d, h int) time.Time {
	return time.Date(y, m, d, h, 0, 0, 0, time.UTC)
}

func TestApplyCheckIn(t *testing.T) {
	day := func(d int) *time.Time {
		v := date(2026, 3, d, 0)
		return &v
	}

	tests := []struct {
		name        string
		stats       models.UserStats
		at          time.Time
		wantCurrent int
		wantLongest int
		wantTotal   int
	}{
		{
			name:        "first check-in",
			at:          date(2026, 3, 5, 9),
			wantCurrent: 1,
			wantLongest: 1,
			wantTotal:   1,
		},
		{
			name:        "same day keeps streak",
			stats:       models.UserStats{CurrentStreak: 3, LongestStreak: 4, LastCheckInDate: day(5), TotalCheckIns: 7},
			at:          date(2026, 3, 5, 21),
			wantCurrent: 3,
			wantLongest: 4,
			wantTotal:   8,
		},
		{
			name:        "next day extends",
			stats:       models.UserStats{CurrentStreak: 4, LongestStreak: 4, LastCheckInDate: day(4), TotalCheckIns: 4},
			at:          date(2026, 3, 5, 7),
			wantCurrent: 5,
			wantLongest: 5,
			wantTotal:   5,
		},
		{
			name:        "gap resets",
			stats:       models.UserStats{CurrentStreak: 6, LongestStreak: 6, LastCheckInDate: day(2), TotalCheckIns: 6},
			at:          date(2026, 3, 5, 7),
			wantCurrent: 1,
			wantLongest: 6,
			wantTotal:   7,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ApplyCheckIn(tt.stats, tt.at, time.UTC)
			assert.Equal(t, tt.wantCurrent, got.CurrentStreak)
			assert.Equal(t, tt.wantLongest, got.LongestStreak)
			assert.Equal(t, tt.wantTotal, got.TotalCheckIns)
			require.NotNil(t, got.LastCheckInDate)
		})
	}
}

func TestApplyCheckInClockBackwards(t *testing.T) {
	last := date(2026, 3, 6, 0)
	stats := models.UserStats{CurrentStreak: 2, LongestStreak: 2, LastCheckInDate: &last}

	got := ApplyCheckIn(stats, date(2026, 3, 5, 12), time.UTC)

	assert.Equal(t, 2, got.CurrentStreak)
	assert.True(t, got.LastCheckInDate.Equal(last))
}

func TestApplyCheckInUsesLocation(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*60*60)
	last := time.Date(2026, 3, 5, 0, 0, 0, 0, loc)
	stats := models.UserStats{CurrentStreak: 1, LongestStreak: 1, LastCheckInDate: &last}

	// 2026-03-05 15:00 UTC is already the 6th in UTC+10.
	got := ApplyCheckIn(stats, date(2026, 3, 5, 15), loc)

	assert.Equal(t, 2, got.CurrentStreak)
}

func TestEffectiveStreak(t *testing.T) {
	last := date(2026, 3, 5, 0)
	stats := models.UserStats{CurrentStreak: 4, LastCheckInDate: &last}

	assert.Equal(t, 4, EffectiveStreak(stats, date(2026, 3, 5, 22), time.UTC))
	assert.Equal(t, 4, EffectiveStreak(stats, date(2026, 3, 6, 22), time.UTC))
	assert.Equal(t, 0, EffectiveStreak(stats, date(2026, 3, 7, 1), time.UTC))
	assert.Equal(t, 0, EffectiveStreak(models.UserStats{}, date(2026, 3, 7, 1), time.UTC))
}

func TestConsecutiveDays(t *testing.T) {
	entries := func(days ...int) []models.MoodEntry {
		out := make([]models.MoodEntry, 0, len(days))
		for _, d := range days {
			out = append(out, models.MoodEntry{CreatedAt: date(2026, 3, d, 12)})
		}
		return out
	}
	now := date(2026, 3, 10, 18)

	assert.Equal(t, 0, ConsecutiveDays(nil, now, time.UTC))
	assert.Equal(t, 3, ConsecutiveDays(entries(10, 9, 9, 8), now, time.UTC))
	assert.Equal(t, 2, ConsecutiveDays(entries(9, 8, 6), now, time.UTC), "streak may end yesterday")
	assert.Equal(t, 0, ConsecutiveDays(entries(8, 7), now, time.UTC))
}
