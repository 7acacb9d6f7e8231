package storage

import (
	"context"
	_ "embed"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed schema.sql
var schemaSQL string

var ErrNotFound = errors.New("not found")

func Connect(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	op := "internal/storage/db.go Connect"

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("%s: unable to connect to db: %w", op, err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%s: unable to ping db: %w", op, err)
	}

	return pool, nil
}

// Migrate applies the embedded schema. Every statement is idempotent.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	op := "internal/storage/db.go Migrate"

	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func notFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// Stores bundles every table-backed storage over one pool.
type Stores struct {
	Moods          *MoodStorage
	Tasks          *TaskStorage
	Goals          *GoalStorage
	Focus          *FocusStorage
	Inbox          *InboxStorage
	Weekly         *WeeklyStorage
	Stats          *StatsStorage
	CalendarTokens *CalendarTokenStorage
}

func NewStores(pool *pgxpool.Pool) *Stores {
	return &Stores{
		Moods:          NewMoodStorage(pool),
		Tasks:          NewTaskStorage(pool),
		Goals:          NewGoalStorage(pool),
		Focus:          NewFocusStorage(pool),
		Inbox:          NewInboxStorage(pool),
		Weekly:         NewWeeklyStorage(pool),
		Stats:          NewStatsStorage(pool),
		CalendarTokens: NewCalendarTokenStorage(pool),
	}
}
