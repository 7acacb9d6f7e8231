package storage

import (
	"context"
	"fmt"
	"time"

	"focus_forge/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type MoodStorage struct {
	pool *pgxpool.Pool
}

func NewMoodStorage(pool *pgxpool.Pool) *MoodStorage {
	return &MoodStorage{
		pool: pool,
	}
}

func (db_ms *MoodStorage) CreateMood(ctx context.Context, entry *models.MoodEntry) error {
	op := "internal/storage/mood.go CreateMood"

	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	sql_query := `
	INSERT INTO mood_entries
	(user_id, mood_score, note, created_at)
	VALUES ($1, $2, $3, $4)
	RETURNING id;
	`

	err := db_ms.pool.QueryRow(
		ctx,
		sql_query,
		entry.UserID,
		entry.MoodScore,
		entry.Note,
		entry.CreatedAt,
	).Scan(&entry.ID)

	if err != nil {
		return fmt.Errorf("%s: failed to create entry: %w", op, err)
	}

	return nil
}

// RecentMoods returns the newest entries first.
func (db_ms *MoodStorage) RecentMoods(ctx context.Context, userID string, limit int) ([]models.MoodEntry, error) {
	op := "internal/storage/mood.go RecentMoods"

	sql_query := `
	SELECT id, user_id, mood_score, note, created_at FROM mood_entries
	WHERE user_id = $1
	ORDER BY created_at DESC
	LIMIT $2;
	`

	return db_ms.query(ctx, op, sql_query, userID, limit)
}

// MoodsSince returns entries created at or after since, oldest first.
func (db_ms *MoodStorage) MoodsSince(ctx context.Context, userID string, since time.Time) ([]models.MoodEntry, error) {
	op := "internal/storage/mood.go MoodsSince"

	sql_query := `
	SELECT id, user_id, mood_score, note, created_at FROM mood_entries
	WHERE user_id = $1 AND created_at >= $2
	ORDER BY created_at ASC;
	`

	return db_ms.query(ctx, op, sql_query, userID, since)
}

func (db_ms *MoodStorage) query(ctx context.Context, op, sql_query string, args ...any) ([]models.MoodEntry, error) {
	rows, err := db_ms.pool.Query(ctx, sql_query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get entries: %w", op, err)
	}
	defer rows.Close()

	entries := []models.MoodEntry{}
	for rows.Next() {
		entry := models.MoodEntry{}

		err := rows.Scan(
			&entry.ID,
			&entry.UserID,
			&entry.MoodScore,
			&entry.Note,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to scan entry: %w", op, err)
		}

		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return entries, nil
}
