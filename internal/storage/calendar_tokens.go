package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/oauth2"
)

type CalendarTokenStorage struct {
	pool *pgxpool.Pool
}

func NewCalendarTokenStorage(pool *pgxpool.Pool) *CalendarTokenStorage {
	return &CalendarTokenStorage{
		pool: pool,
	}
}

func (db_ct *CalendarTokenStorage) GetToken(ctx context.Context, userID string) (*oauth2.Token, error) {
	op := "internal/storage/calendar_tokens.go GetToken"

	var tokenJSON []byte
	err := db_ct.pool.QueryRow(ctx, `SELECT token FROM calendar_tokens WHERE user_id = $1`, userID).Scan(&tokenJSON)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, notFound(err))
	}

	tok := &oauth2.Token{}
	if err := json.Unmarshal(tokenJSON, tok); err != nil {
		return nil, fmt.Errorf("%s: failed to unmarshal token: %w", op, err)
	}
	return tok, nil
}

func (db_ct *CalendarTokenStorage) SaveToken(ctx context.Context, userID string, tok *oauth2.Token) error {
	op := "internal/storage/calendar_tokens.go SaveToken"

	tokenJSON, err := json.Marshal(tok)
	if err != nil {
		return fmt.Errorf("%s: failed to marshal token: %w", op, err)
	}

	sql_query := `
	INSERT INTO calendar_tokens (user_id, token, updated_at) VALUES ($1, $2, $3)
	ON CONFLICT (user_id) DO UPDATE SET
	token = EXCLUDED.token,
	updated_at = EXCLUDED.updated_at
	`

	if _, err := db_ct.pool.Exec(ctx, sql_query, userID, tokenJSON, time.Now()); err != nil {
		return fmt.Errorf("%s: failed to save token: %w", op, err)
	}
	return nil
}
