package usecases

import (
	"testing"
	"time"

	"focus_forge/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestWeekStart(t *testing.T) {
	monday := date(2026, 3, 9, 0)

	for d := 9; d <= 15; d++ {
		got := WeekStart(date(2026, 3, d, 18), time.UTC)
		assert.True(t, got.Equal(monday), "day %d gave %s", d, got)
	}
	assert.True(t, WeekStart(date(2026, 3, 16, 0), time.UTC).Equal(date(2026, 3, 16, 0)))
}

func TestBuildWeeklyReview(t *testing.T) {
	outcomes := []models.Outcome{
		{Title: "Ship report", Achieved: true},
		{Title: "Gym 3x"},
	}
	commitments := []models.Commitment{{Done: true}, {Done: true}, {}}

	review := BuildWeeklyReview(date(2026, 3, 2, 0), outcomes, commitments)

	assert.Equal(t, "2026-03-02", review.WeekStart)
	assert.Equal(t, models.Completion{Done: 2, Total: 3, Percent: 66}, review.Completion)
	assert.Len(t, review.AchievedOutcomes, 1)
	assert.Len(t, review.MissedOutcomes, 1)
}

func TestGoalProgress(t *testing.T) {
	p := GoalProgress(4, []models.Task{task("work", true), task("work", false)})
	assert.Equal(t, models.GoalProgress{GoalID: 4, Total: 2, Done: 1, Percent: 50}, p)

	assert.Equal(t, 0, GoalProgress(4, nil).Percent)
}

func TestValidateMood(t *testing.T) {
	score := func(v int) *int { return &v }

	assert.NoError(t, ValidateMood(score(0), ""))
	assert.NoError(t, ValidateMood(score(10), "fine"))
	assert.True(t, IsValidation(ValidateMood(nil, "")))
	assert.True(t, IsValidation(ValidateMood(score(11), "")))
	assert.True(t, IsValidation(ValidateMood(score(-1), "")))

	long := make([]rune, models.MaxNoteLength+1)
	for i := range long {
		long[i] = 'é'
	}
	assert.True(t, IsValidation(ValidateMood(score(5), string(long))))
	assert.NoError(t, ValidateMood(score(5), string(long[1:])))
}
