package handlers

import (
	"context"
	"time"

	"focus_forge/internal/models"
)

// The storage package satisfies these with its Postgres types; tests use
// in-memory fakes.

type MoodStore interface {
	CreateMood(ctx context.Context, entry *models.MoodEntry) error
	RecentMoods(ctx context.Context, userID string, limit int) ([]models.MoodEntry, error)
	MoodsSince(ctx context.Context, userID string, since time.Time) ([]models.MoodEntry, error)
}

type TaskStore interface {
	CreateTask(ctx context.Context, task *models.Task) error
	GetTask(ctx context.Context, userID string, id int64) (models.Task, error)
	GetTasks(ctx context.Context, userID string, ids []int64) (map[int64]models.Task, error)
	ListTasks(ctx context.Context, userID string, filter models.TaskFilter) ([]models.Task, error)
	UpdateTask(ctx context.Context, task *models.Task) error
	DeleteTask(ctx context.Context, userID string, id int64) error
}

type GoalStore interface {
	CreateGoal(ctx context.Context, goal *models.Goal) error
	GetGoal(ctx context.Context, userID string, id int64) (models.Goal, error)
	ListGoals(ctx context.Context, userID, status string) ([]models.Goal, error)
	UpdateGoal(ctx context.Context, goal *models.Goal) error
	DeleteGoal(ctx context.Context, userID string, id int64) error
}

type FocusStore interface {
	GetFocusPlan(ctx context.Context, userID string, day time.Time) (models.FocusPlan, error)
	SaveFocusPlan(ctx context.Context, plan *models.FocusPlan) error
}

type InboxStore interface {
	CreateItem(ctx context.Context, item *models.InboxItem) error
	GetItem(ctx context.Context, userID string, id int64) (models.InboxItem, error)
	ListItems(ctx context.Context, userID, status string) ([]models.InboxItem, error)
	MarkTriaged(ctx context.Context, item *models.InboxItem) error
}

type WeeklyStore interface {
	CreateOutcome(ctx context.Context, outcome *models.Outcome) error
	ListOutcomes(ctx context.Context, userID string, weekStart time.Time) ([]models.Outcome, error)
	SetOutcomeAchieved(ctx context.Context, userID string, id int64, achieved bool) (models.Outcome, error)
	CreateCommitment(ctx context.Context, c *models.Commitment) error
	ListCommitments(ctx context.Context, userID string, weekStart time.Time) ([]models.Commitment, error)
	SetCommitmentDone(ctx context.Context, userID string, id int64, done bool) (models.Commitment, error)
}

type StatsStore interface {
	GetStats(ctx context.Context, userID string) (models.UserStats, error)
	SaveStats(ctx context.Context, stats *models.UserStats) error
}

// Calendar pushes scheduled items to the user's external calendar.
type Calendar interface {
	AuthURL(state string) string
	Exchange(ctx context.Context, userID, code string) error
	CreateEvent(ctx context.Context, userID string, event models.CalendarEvent) (string, error)
}

type Pinger interface {
	Ping(ctx context.Context) error
}
