package storage

import (
	"context"
	"fmt"
	"time"

	"focus_forge/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type WeeklyStorage struct {
	pool *pgxpool.Pool
}

func NewWeeklyStorage(pool *pgxpool.Pool) *WeeklyStorage {
	return &WeeklyStorage{
		pool: pool,
	}
}

func dateArg(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format(dateLayout)
}

func (db_ws *WeeklyStorage) CreateOutcome(ctx context.Context, outcome *models.Outcome) error {
	op := "internal/storage/weekly.go CreateOutcome"

	outcome.CreatedAt = time.Now()

	sql_query := `
	INSERT INTO outcomes (user_id, week_start, title, goal_id, achieved, created_at)
	VALUES ($1, $2::date, $3, $4, $5, $6)
	RETURNING id;
	`

	err := db_ws.pool.QueryRow(ctx, sql_query,
		outcome.UserID,
		outcome.WeekStart.Format(dateLayout),
		outcome.Title,
		outcome.GoalID,
		outcome.Achieved,
		outcome.CreatedAt,
	).Scan(&outcome.ID)
	if err != nil {
		return fmt.Errorf("%s: failed to create outcome: %w", op, err)
	}
	return nil
}

func (db_ws *WeeklyStorage) ListOutcomes(ctx context.Context, userID string, weekStart time.Time) ([]models.Outcome, error) {
	op := "internal/storage/weekly.go ListOutcomes"

	sql_query := `
	SELECT id, user_id, week_start, title, goal_id, achieved, created_at
	FROM outcomes
	WHERE user_id = $1 AND week_start = $2::date
	ORDER BY created_at ASC
	`

	rows, err := db_ws.pool.Query(ctx, sql_query, userID, weekStart.Format(dateLayout))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	outcomes := []models.Outcome{}
	for rows.Next() {
		var o models.Outcome
		if err := rows.Scan(&o.ID, &o.UserID, &o.WeekStart, &o.Title, &o.GoalID, &o.Achieved, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: failed to scan outcome: %w", op, err)
		}
		outcomes = append(outcomes, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return outcomes, nil
}

func (db_ws *WeeklyStorage) SetOutcomeAchieved(ctx context.Context, userID string, id int64, achieved bool) (models.Outcome, error) {
	op := "internal/storage/weekly.go SetOutcomeAchieved"

	sql_query := `
	UPDATE outcomes SET achieved = $3
	WHERE user_id = $1 AND id = $2
	RETURNING id, user_id, week_start, title, goal_id, achieved, created_at
	`

	var o models.Outcome
	err := db_ws.pool.QueryRow(ctx, sql_query, userID, id, achieved).
		Scan(&o.ID, &o.UserID, &o.WeekStart, &o.Title, &o.GoalID, &o.Achieved, &o.CreatedAt)
	if err != nil {
		return models.Outcome{}, fmt.Errorf("%s: %w", op, notFound(err))
	}
	return o, nil
}

func (db_ws *WeeklyStorage) CreateCommitment(ctx context.Context, c *models.Commitment) error {
	op := "internal/storage/weekly.go CreateCommitment"

	c.CreatedAt = time.Now()

	sql_query := `
	INSERT INTO commitments (user_id, outcome_id, week_start, title, day, done, created_at)
	VALUES ($1, $2, $3::date, $4, $5::date, $6, $7)
	RETURNING id;
	`

	err := db_ws.pool.QueryRow(ctx, sql_query,
		c.UserID,
		c.OutcomeID,
		c.WeekStart.Format(dateLayout),
		c.Title,
		dateArg(c.Day),
		c.Done,
		c.CreatedAt,
	).Scan(&c.ID)
	if err != nil {
		return fmt.Errorf("%s: failed to create commitment: %w", op, err)
	}
	return nil
}

func (db_ws *WeeklyStorage) ListCommitments(ctx context.Context, userID string, weekStart time.Time) ([]models.Commitment, error) {
	op := "internal/storage/weekly.go ListCommitments"

	sql_query := `
	SELECT id, user_id, outcome_id, week_start, title, day, done, created_at
	FROM commitments
	WHERE user_id = $1 AND week_start = $2::date
	ORDER BY day ASC NULLS LAST, created_at ASC
	`

	rows, err := db_ws.pool.Query(ctx, sql_query, userID, weekStart.Format(dateLayout))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	commitments := []models.Commitment{}
	for rows.Next() {
		var c models.Commitment
		if err := rows.Scan(&c.ID, &c.UserID, &c.OutcomeID, &c.WeekStart, &c.Title, &c.Day, &c.Done, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: failed to scan commitment: %w", op, err)
		}
		commitments = append(commitments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return commitments, nil
}

func (db_ws *WeeklyStorage) SetCommitmentDone(ctx context.Context, userID string, id int64, done bool) (models.Commitment, error) {
	op := "internal/storage/weekly.go SetCommitmentDone"

	sql_query := `
	UPDATE commitments SET done = $3
	WHERE user_id = $1 AND id = $2
	RETURNING id, user_id, outcome_id, week_start, title, day, done, created_at
	`

	var c models.Commitment
	err := db_ws.pool.QueryRow(ctx, sql_query, userID, id, done).
		Scan(&c.ID, &c.UserID, &c.OutcomeID, &c.WeekStart, &c.Title, &c.Day, &c.Done, &c.CreatedAt)
	if err != nil {
		return models.Commitment{}, fmt.Errorf("%s: %w", op, notFound(err))
	}
	return c, nil
}
