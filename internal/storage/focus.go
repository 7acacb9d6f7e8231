package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"focus_forge/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const dateLayout = "2006-01-02"

type FocusStorage struct {
	pool *pgxpool.Pool
}

func NewFocusStorage(pool *pgxpool.Pool) *FocusStorage {
	return &FocusStorage{
		pool: pool,
	}
}

// GetFocusPlan returns an empty plan when the day has none yet.
func (db_fs *FocusStorage) GetFocusPlan(ctx context.Context, userID string, day time.Time) (models.FocusPlan, error) {
	op := "internal/storage/focus.go GetFocusPlan"

	plan := models.FocusPlan{UserID: userID, PlanDate: day}

	sql_query := `
	SELECT plan_date, slot1_task_id, slot2_task_id, slot3_task_id, updated_at
	FROM focus_plans
	WHERE user_id = $1 AND plan_date = $2::date
	`

	err := db_fs.pool.QueryRow(ctx, sql_query, userID, day.Format(dateLayout)).Scan(
		&plan.PlanDate,
		&plan.Slots[0],
		&plan.Slots[1],
		&plan.Slots[2],
		&plan.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return plan, nil
	}
	if err != nil {
		return models.FocusPlan{}, fmt.Errorf("%s: %w", op, err)
	}
	return plan, nil
}

func (db_fs *FocusStorage) SaveFocusPlan(ctx context.Context, plan *models.FocusPlan) error {
	op := "internal/storage/focus.go SaveFocusPlan"

	plan.UpdatedAt = time.Now()

	sql_query := `
	INSERT INTO focus_plans (user_id, plan_date, slot1_task_id, slot2_task_id, slot3_task_id, updated_at)
	VALUES ($1, $2::date, $3, $4, $5, $6)
	ON CONFLICT (user_id, plan_date) DO UPDATE SET
	slot1_task_id = EXCLUDED.slot1_task_id,
	slot2_task_id = EXCLUDED.slot2_task_id,
	slot3_task_id = EXCLUDED.slot3_task_id,
	updated_at = EXCLUDED.updated_at
	`

	_, err := db_fs.pool.Exec(ctx, sql_query,
		plan.UserID,
		plan.PlanDate.Format(dateLayout),
		plan.Slots[0],
		plan.Slots[1],
		plan.Slots[2],
		plan.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("%s: failed to save plan: %w", op, err)
	}
	return nil
}
