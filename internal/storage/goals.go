package storage

import (
	"context"
	"fmt"
	"time"

	"focus_forge/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type GoalStorage struct {
	pool *pgxpool.Pool
}

func NewGoalStorage(pool *pgxpool.Pool) *GoalStorage {
	return &GoalStorage{
		pool: pool,
	}
}

const goalColumns = `id, user_id, title, category, description, target_date, status, created_at, updated_at`

func scanGoal(row pgx.Row) (models.Goal, error) {
	var g models.Goal
	err := row.Scan(
		&g.ID,
		&g.UserID,
		&g.Title,
		&g.Category,
		&g.Description,
		&g.TargetDate,
		&g.Status,
		&g.CreatedAt,
		&g.UpdatedAt,
	)
	return g, err
}

func (db_gs *GoalStorage) CreateGoal(ctx context.Context, goal *models.Goal) error {
	op := "internal/storage/goals.go CreateGoal"

	now := time.Now()
	goal.CreatedAt = now
	goal.UpdatedAt = now
	if goal.Status == "" {
		goal.Status = models.GoalStatusActive
	}

	sql_query := `
	INSERT INTO goals
	(user_id, title, category, description, target_date, status, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	RETURNING id;
	`

	err := db_gs.pool.QueryRow(ctx, sql_query,
		goal.UserID,
		goal.Title,
		goal.Category,
		goal.Description,
		goal.TargetDate,
		goal.Status,
		goal.CreatedAt,
		goal.UpdatedAt,
	).Scan(&goal.ID)
	if err != nil {
		return fmt.Errorf("%s: failed to create goal: %w", op, err)
	}
	return nil
}

func (db_gs *GoalStorage) GetGoal(ctx context.Context, userID string, id int64) (models.Goal, error) {
	op := "internal/storage/goals.go GetGoal"

	sql_query := `SELECT ` + goalColumns + ` FROM goals WHERE user_id = $1 AND id = $2`

	goal, err := scanGoal(db_gs.pool.QueryRow(ctx, sql_query, userID, id))
	if err != nil {
		return models.Goal{}, fmt.Errorf("%s: %w", op, notFound(err))
	}
	return goal, nil
}

// ListGoals returns every goal when status is empty.
func (db_gs *GoalStorage) ListGoals(ctx context.Context, userID, status string) ([]models.Goal, error) {
	op := "internal/storage/goals.go ListGoals"

	sql_query := `SELECT ` + goalColumns + ` FROM goals
	WHERE user_id = $1 AND ($2 = '' OR status = $2)
	ORDER BY created_at DESC`

	rows, err := db_gs.pool.Query(ctx, sql_query, userID, status)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	goals := []models.Goal{}
	for rows.Next() {
		goal, err := scanGoal(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to scan goal: %w", op, err)
		}
		goals = append(goals, goal)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return goals, nil
}

func (db_gs *GoalStorage) UpdateGoal(ctx context.Context, goal *models.Goal) error {
	op := "internal/storage/goals.go UpdateGoal"

	goal.UpdatedAt = time.Now()

	sql_query := `
	UPDATE goals SET
	title = $3, category = $4, description = $5, target_date = $6, status = $7, updated_at = $8
	WHERE user_id = $1 AND id = $2
	`

	tag, err := db_gs.pool.Exec(ctx, sql_query,
		goal.UserID,
		goal.ID,
		goal.Title,
		goal.Category,
		goal.Description,
		goal.TargetDate,
		goal.Status,
		goal.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("%s: failed to update goal: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return nil
}

func (db_gs *GoalStorage) DeleteGoal(ctx context.Context, userID string, id int64) error {
	op := "internal/storage/goals.go DeleteGoal"

	tag, err := db_gs.pool.Exec(ctx, `DELETE FROM goals WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return nil
}
