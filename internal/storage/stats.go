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

type StatsStorage struct {
	pool *pgxpool.Pool
}

func NewStatsStorage(pool *pgxpool.Pool) *StatsStorage {
	return &StatsStorage{
		pool: pool,
	}
}

// GetStats returns zeroed stats for users who never checked in.
func (db_ss *StatsStorage) GetStats(ctx context.Context, userID string) (models.UserStats, error) {
	op := "internal/storage/stats.go GetStats"

	sql_query := `
	SELECT user_id, current_streak, longest_streak, last_checkin_date, total_checkins, updated_at
	FROM user_stats
	WHERE user_id = $1
	`

	stats := models.UserStats{UserID: userID}
	err := db_ss.pool.QueryRow(ctx, sql_query, userID).Scan(
		&stats.UserID,
		&stats.CurrentStreak,
		&stats.LongestStreak,
		&stats.LastCheckInDate,
		&stats.TotalCheckIns,
		&stats.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.UserStats{UserID: userID}, nil
	}
	if err != nil {
		return models.UserStats{}, fmt.Errorf("%s: %w", op, err)
	}
	return stats, nil
}

func (db_ss *StatsStorage) SaveStats(ctx context.Context, stats *models.UserStats) error {
	op := "internal/storage/stats.go SaveStats"

	stats.UpdatedAt = time.Now()

	sql_query := `
	INSERT INTO user_stats (user_id, current_streak, longest_streak, last_checkin_date, total_checkins, updated_at)
	VALUES ($1, $2, $3, $4::date, $5, $6)
	ON CONFLICT (user_id) DO UPDATE SET
	current_streak = EXCLUDED.current_streak,
	longest_streak = EXCLUDED.longest_streak,
	last_checkin_date = EXCLUDED.last_checkin_date,
	total_checkins = EXCLUDED.total_checkins,
	updated_at = EXCLUDED.updated_at
	`

	_, err := db_ss.pool.Exec(ctx, sql_query,
		stats.UserID,
		stats.CurrentStreak,
		stats.LongestStreak,
		dateArg(stats.LastCheckInDate),
		stats.TotalCheckIns,
		stats.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("%s: failed to save stats: %w", op, err)
	}
	return nil
}
