package models

import (
	"strings"
	"time"
)

const (
	TaskStatusTodo = "todo"
	TaskStatusDone = "done"

	MaxTitleLength = 200
)

const (
	CategoryWork          = "work"
	CategoryHealth        = "health"
	CategoryRelationships = "relationships"
	CategoryPersonal      = "personal"
	CategoryHome          = "home"
	CategoryLearning      = "learning"
)

var Categories = []string{
	CategoryWork,
	CategoryHealth,
	CategoryRelationships,
	CategoryPersonal,
	CategoryHome,
	CategoryLearning,
}

// NormalizeCategory maps anything unknown to personal.
func NormalizeCategory(c string) string {
	c = strings.ToLower(strings.TrimSpace(c))
	for _, known := range Categories {
		if c == known {
			return c
		}
	}
	return CategoryPersonal
}

type Task struct {
	ID          int64      `json:"id" db:"id"`
	UserID      string     `json:"-" db:"user_id"`
	Title       string     `json:"title" db:"title"`
	Category    string     `json:"category" db:"category"`
	GoalID      *int64     `json:"goalId,omitempty" db:"goal_id"`
	Status      string     `json:"status" db:"status"`
	DueDate     *time.Time `json:"dueDate,omitempty" db:"due_date"`
	CompletedAt *time.Time `json:"completedAt,omitempty" db:"completed_at"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at"`
}

func (t Task) Done() bool {
	return t.Status == TaskStatusDone
}

// ActivityAt is when the task last mattered: completion for done tasks,
// creation otherwise.
func (t Task) ActivityAt() time.Time {
	if t.CompletedAt != nil {
		return *t.CompletedAt
	}
	return t.CreatedAt
}

// TaskFilter narrows ListTasks. Zero From/To leave the window open; the
// window applies to ActivityAt.
type TaskFilter struct {
	Status   string
	Category string
	GoalID   *int64
	From     time.Time
	To       time.Time
}

