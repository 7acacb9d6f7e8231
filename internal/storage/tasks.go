package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"focus_forge/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TaskStorage struct {
	pool *pgxpool.Pool
}

func NewTaskStorage(pool *pgxpool.Pool) *TaskStorage {
	return &TaskStorage{
		pool: pool,
	}
}

const taskColumns = `id, user_id, title, category, goal_id, status, due_date, completed_at, created_at, updated_at`

func scanTask(row pgx.Row) (models.Task, error) {
	var t models.Task
	err := row.Scan(
		&t.ID,
		&t.UserID,
		&t.Title,
		&t.Category,
		&t.GoalID,
		&t.Status,
		&t.DueDate,
		&t.CompletedAt,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	return t, err
}

func (db_ts *TaskStorage) CreateTask(ctx context.Context, task *models.Task) error {
	op := "internal/storage/tasks.go CreateTask"

	now := time.Now()
	task.CreatedAt = now
	task.UpdatedAt = now
	if task.Status == "" {
		task.Status = models.TaskStatusTodo
	}

	sql_query := `
	INSERT INTO tasks
	(user_id, title, category, goal_id, status, due_date, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	RETURNING id;
	`

	err := db_ts.pool.QueryRow(ctx, sql_query,
		task.UserID,
		task.Title,
		task.Category,
		task.GoalID,
		task.Status,
		task.DueDate,
		task.CreatedAt,
		task.UpdatedAt,
	).Scan(&task.ID)
	if err != nil {
		return fmt.Errorf("%s: failed to create task: %w", op, err)
	}
	return nil
}

func (db_ts *TaskStorage) GetTask(ctx context.Context, userID string, id int64) (models.Task, error) {
	op := "internal/storage/tasks.go GetTask"

	sql_query := `SELECT ` + taskColumns + ` FROM tasks WHERE user_id = $1 AND id = $2`

	task, err := scanTask(db_ts.pool.QueryRow(ctx, sql_query, userID, id))
	if err != nil {
		return models.Task{}, fmt.Errorf("%s: %w", op, notFound(err))
	}
	return task, nil
}

// GetTasks loads the given IDs; missing IDs are skipped.
func (db_ts *TaskStorage) GetTasks(ctx context.Context, userID string, ids []int64) (map[int64]models.Task, error) {
	op := "internal/storage/tasks.go GetTasks"

	result := make(map[int64]models.Task, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	sql_query := `SELECT ` + taskColumns + ` FROM tasks WHERE user_id = $1 AND id = ANY($2)`

	rows, err := db_ts.pool.Query(ctx, sql_query, userID, ids)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to scan task: %w", op, err)
		}
		result[task.ID] = task
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

func (db_ts *TaskStorage) ListTasks(ctx context.Context, userID string, filter models.TaskFilter) ([]models.Task, error) {
	op := "internal/storage/tasks.go ListTasks"

	where := []string{"user_id = $1"}
	args := []any{userID}
	add := func(cond string, arg any) {
		args = append(args, arg)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}

	if filter.Status != "" {
		add("status = $%d", filter.Status)
	}
	if filter.Category != "" {
		add("category = $%d", filter.Category)
	}
	if filter.GoalID != nil {
		add("goal_id = $%d", *filter.GoalID)
	}
	if !filter.From.IsZero() {
		add("COALESCE(completed_at, created_at) >= $%d", filter.From)
	}
	if !filter.To.IsZero() {
		add("COALESCE(completed_at, created_at) < $%d", filter.To)
	}

	sql_query := `SELECT ` + taskColumns + ` FROM tasks WHERE ` + strings.Join(where, " AND ") +
		` ORDER BY due_date ASC NULLS LAST, created_at DESC`

	rows, err := db_ts.pool.Query(ctx, sql_query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to scan task: %w", op, err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return tasks, nil
}

func (db_ts *TaskStorage) UpdateTask(ctx context.Context, task *models.Task) error {
	op := "internal/storage/tasks.go UpdateTask"

	task.UpdatedAt = time.Now()

	sql_query := `
	UPDATE tasks SET
	title = $3, category = $4, goal_id = $5, status = $6, due_date = $7, completed_at = $8, updated_at = $9
	WHERE user_id = $1 AND id = $2
	`

	tag, err := db_ts.pool.Exec(ctx, sql_query,
		task.UserID,
		task.ID,
		task.Title,
		task.Category,
		task.GoalID,
		task.Status,
		task.DueDate,
		task.CompletedAt,
		task.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("%s: failed to update task: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return nil
}

func (db_ts *TaskStorage) DeleteTask(ctx context.Context, userID string, id int64) error {
	op := "internal/storage/tasks.go DeleteTask"

	tag, err := db_ts.pool.Exec(ctx, `DELETE FROM tasks WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return nil
}
