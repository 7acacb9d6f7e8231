package storage

import (
	"context"
	"fmt"
	"time"

	"focus_forge/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type InboxStorage struct {
	pool *pgxpool.Pool
}

func NewInboxStorage(pool *pgxpool.Pool) *InboxStorage {
	return &InboxStorage{
		pool: pool,
	}
}

const inboxColumns = `id, user_id, content, status, action, scheduled_for, delegated_to, task_id, created_at, triaged_at`

func scanInboxItem(row pgx.Row) (models.InboxItem, error) {
	var it models.InboxItem
	err := row.Scan(
		&it.ID,
		&it.UserID,
		&it.Content,
		&it.Status,
		&it.Action,
		&it.ScheduledFor,
		&it.DelegatedTo,
		&it.TaskID,
		&it.CreatedAt,
		&it.TriagedAt,
	)
	return it, err
}

func (db_is *InboxStorage) CreateItem(ctx context.Context, item *models.InboxItem) error {
	op := "internal/storage/inbox.go CreateItem"

	item.CreatedAt = time.Now()
	item.Status = models.InboxStatusCaptured

	sql_query := `
	INSERT INTO inbox_items (user_id, content, status, created_at)
	VALUES ($1, $2, $3, $4)
	RETURNING id;
	`

	err := db_is.pool.QueryRow(ctx, sql_query, item.UserID, item.Content, item.Status, item.CreatedAt).Scan(&item.ID)
	if err != nil {
		return fmt.Errorf("%s: failed to capture item: %w", op, err)
	}
	return nil
}

func (db_is *InboxStorage) GetItem(ctx context.Context, userID string, id int64) (models.InboxItem, error) {
	op := "internal/storage/inbox.go GetItem"

	sql_query := `SELECT ` + inboxColumns + ` FROM inbox_items WHERE user_id = $1 AND id = $2`

	item, err := scanInboxItem(db_is.pool.QueryRow(ctx, sql_query, userID, id))
	if err != nil {
		return models.InboxItem{}, fmt.Errorf("%s: %w", op, notFound(err))
	}
	return item, nil
}

func (db_is *InboxStorage) ListItems(ctx context.Context, userID, status string) ([]models.InboxItem, error) {
	op := "internal/storage/inbox.go ListItems"

	sql_query := `SELECT ` + inboxColumns + ` FROM inbox_items
	WHERE user_id = $1 AND ($2 = '' OR status = $2)
	ORDER BY created_at ASC`

	rows, err := db_is.pool.Query(ctx, sql_query, userID, status)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	items := []models.InboxItem{}
	for rows.Next() {
		item, err := scanInboxItem(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to scan item: %w", op, err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return items, nil
}

// MarkTriaged only touches items still captured, so a second triage of the
// same item reports ErrNotFound.
func (db_is *InboxStorage) MarkTriaged(ctx context.Context, item *models.InboxItem) error {
	op := "internal/storage/inbox.go MarkTriaged"

	now := time.Now()
	item.Status = models.InboxStatusTriaged
	item.TriagedAt = &now

	sql_query := `
	UPDATE inbox_items SET
	status = $3, action = $4, scheduled_for = $5, delegated_to = $6, task_id = $7, triaged_at = $8
	WHERE user_id = $1 AND id = $2 AND status = 'captured'
	`

	tag, err := db_is.pool.Exec(ctx, sql_query,
		item.UserID,
		item.ID,
		item.Status,
		item.Action,
		item.ScheduledFor,
		item.DelegatedTo,
		item.TaskID,
		item.TriagedAt,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return nil
}
