package usecases

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"focus_forge/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeHistory struct {
	moods []models.MoodEntry
	err   error
}

func (f *fakeHistory) RecentMoods(_ context.Context, _ string, limit int) ([]models.MoodEntry, error) {
	if f.err != nil {
		return nil, f.err
	}
	if len(f.moods) > limit {
		return f.moods[:limit], nil
	}
	return f.moods, nil
}

type fakeTasks struct {
	mu      sync.Mutex
	tasks   []models.Task
	filters []models.TaskFilter
}

func (f *fakeTasks) ListTasks(_ context.Context, _ string, filter models.TaskFilter) ([]models.Task, error) {
	f.mu.Lock()
	f.filters = append(f.filters, filter)
	f.mu.Unlock()

	var out []models.Task
	for _, t := range f.tasks {
		if filter.Status != "" && t.Status != filter.Status {
			continue
		}
		if !filter.From.IsZero() && t.ActivityAt().Before(filter.From) {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

type fakeGoals []models.Goal

func (f fakeGoals) ListGoals(context.Context, string, string) ([]models.Goal, error) {
	return f, nil
}

type fakeStats models.UserStats

func (f fakeStats) GetStats(context.Context, string) (models.UserStats, error) {
	return models.UserStats(f), nil
}

type fakeFocus models.Slots

func (f fakeFocus) GetFocusPlan(_ context.Context, userID string, day time.Time) (models.FocusPlan, error) {
	return models.FocusPlan{UserID: userID, PlanDate: day, Slots: models.Slots(f)}, nil
}

func id(v int64) *int64 { return &v }

func TestSummarize(t *testing.T) {
	now := date(2026, 3, 12, 9)
	due := date(2026, 3, 10, 0)
	doneAt := date(2026, 3, 12, 8)

	in := SnapshotInput{
		Moods: []models.MoodEntry{
			{MoodScore: 8, Note: "Slept well", CreatedAt: date(2026, 3, 12, 7)},
			{MoodScore: 7, CreatedAt: date(2026, 3, 11, 20)},
			{MoodScore: 3, Note: "Too tired to work", CreatedAt: date(2026, 3, 3, 20)},
			{MoodScore: 2, CreatedAt: date(2026, 3, 1, 20)},
		},
		OpenTasks: []models.Task{
			{ID: 1, Title: "Pay rent", DueDate: &due},
			{ID: 2, Title: "Call mum"},
		},
		DoneTasks: []models.Task{
			{ID: 3, Status: models.TaskStatusDone, CompletedAt: &doneAt},
		},
		Goals: []models.Goal{{Title: "Run a 5k"}},
		Stats: models.UserStats{LongestStreak: 9},
		Plan:  models.FocusPlan{Slots: models.Slots{nil, id(2), id(99)}},
	}

	snap := Summarize(in, now, time.UTC, ThemeRules(nil))

	assert.Equal(t, 4, snap.EntryCount)
	require.NotNil(t, snap.AverageMood)
	assert.Equal(t, 5.0, *snap.AverageMood)
	require.NotNil(t, snap.RecentAverage)
	assert.Equal(t, 7.5, *snap.RecentAverage)
	require.NotNil(t, snap.PreviousAverage)
	assert.Equal(t, 2.5, *snap.PreviousAverage)
	assert.Equal(t, models.TrendImproving, snap.Trend)
	assert.Equal(t, 2, snap.CheckInStreak)
	assert.Equal(t, 9, snap.LongestStreak)
	assert.Equal(t, 2, snap.LowMoodDays)
	assert.Equal(t, "Slept well", snap.LastNote)
	assert.Equal(t, []models.ThemeCount{{Theme: "sleep", Count: 2}, {Theme: "work", Count: 1}}, snap.Themes)

	assert.Equal(t, 2, snap.OpenTasks)
	assert.Equal(t, 1, snap.OverdueTasks)
	assert.Equal(t, 1, snap.CompletedWeek)
	assert.Equal(t, 1, snap.CompletedToday)
	assert.Equal(t, []string{"Call mum"}, snap.NowTasks)
	assert.Equal(t, []string{"Run a 5k"}, snap.ActiveGoals)
	assert.Equal(t, "morning", snap.TimeOfDay)
}

func TestSummarizeEmpty(t *testing.T) {
	snap := Summarize(SnapshotInput{}, date(2026, 3, 12, 23), time.UTC, nil)

	assert.Nil(t, snap.AverageMood)
	assert.Equal(t, models.TrendInsufficient, snap.Trend)
	assert.NotNil(t, snap.Themes)
	assert.NotNil(t, snap.NowTasks)
	assert.Equal(t, "night", snap.TimeOfDay)
}

func TestTrend(t *testing.T) {
	assert.Equal(t, models.TrendImproving, Trend(6.5, 6))
	assert.Equal(t, models.TrendDeclining, Trend(5.5, 6))
	assert.Equal(t, models.TrendStable, Trend(6.4, 6))
}

func TestContextEngineBuild(t *testing.T) {
	now := date(2026, 3, 12, 14)
	oldDone := date(2026, 2, 1, 10)
	recentDone := date(2026, 3, 11, 10)

	tasks := &fakeTasks{tasks: []models.Task{
		{ID: 1, Title: "Write report", Status: models.TaskStatusTodo, CreatedAt: date(2026, 3, 1, 9)},
		{ID: 2, Title: "Old", Status: models.TaskStatusDone, CreatedAt: oldDone, CompletedAt: &oldDone},
		{ID: 3, Title: "Recent", Status: models.TaskStatusDone, CreatedAt: recentDone, CompletedAt: &recentDone},
	}}
	engine := &ContextEngine{
		Moods:  &fakeHistory{moods: []models.MoodEntry{{MoodScore: 6, CreatedAt: date(2026, 3, 12, 8)}}},
		Tasks:  tasks,
		Goals:  fakeGoals{{Title: "Ship it"}},
		Stats:  fakeStats{LongestStreak: 3},
		Focus:  fakeFocus{id(1)},
		Themes: ThemeRules(nil),
	}

	snap, err := engine.Build(context.Background(), "user-1", now)
	require.NoError(t, err)

	assert.Equal(t, 1, snap.OpenTasks)
	assert.Equal(t, 1, snap.CompletedWeek)
	assert.Equal(t, []string{"Write report"}, snap.NowTasks)
	assert.Equal(t, []string{"Ship it"}, snap.ActiveGoals)
	assert.Equal(t, "afternoon", snap.TimeOfDay)
	assert.Len(t, tasks.filters, 2)
}

func TestContextEngineBuildError(t *testing.T) {
	boom := errors.New("boom")
	engine := &ContextEngine{
		Moods: &fakeHistory{err: boom},
		Tasks: &fakeTasks{},
		Goals: fakeGoals{},
		Stats: fakeStats{},
		Focus: fakeFocus{},
	}

	_, err := engine.Build(context.Background(), "user-1", date(2026, 3, 12, 14))

	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}
