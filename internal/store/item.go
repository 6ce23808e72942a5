package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lostfound/moderation/types"
)

const itemColumns = `id, title, type, status, category, submitted_by, submitted_at, report_count`

// ItemRepository handles persistence for listings.
type ItemRepository struct {
	db *sql.DB
}

func NewItemRepository(db *sql.DB) *ItemRepository {
	return &ItemRepository{db: db}
}

// List returns every listing in submission order.
func (r *ItemRepository) List(ctx context.Context) ([]types.Item, error) {
	const query = `SELECT ` + itemColumns + ` FROM items ORDER BY position`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]types.Item, 0)
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *ItemRepository) Get(ctx context.Context, id string) (types.Item, error) {
	const query = `SELECT ` + itemColumns + ` FROM items WHERE id = $1`
	item, err := scanItem(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Item{}, ErrNotFound
		}
		return types.Item{}, err
	}
	return item, nil
}

// UpdateStatus moves a listing from one status to another. The update only
// applies while the stored status still equals from.
func (r *ItemRepository) UpdateStatus(ctx context.Context, id string, from, to types.ItemStatus) (types.Item, error) {
	const query = `
		UPDATE items
		SET status = $1
		WHERE id = $2 AND status = $3
		RETURNING ` + itemColumns
	item, err := scanItem(r.db.QueryRowContext(ctx, query, to, id, from))
	if err == nil {
		return item, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return types.Item{}, err
	}
	if _, err := r.Get(ctx, id); err != nil {
		return types.Item{}, err
	}
	return types.Item{}, ErrStaleStatus
}

// Upsert inserts a listing or overwrites the stored copy.
func (r *ItemRepository) Upsert(ctx context.Context, item types.Item) error {
	const query = `
		INSERT INTO items (id, title, type, status, category, submitted_by, submitted_at, report_count)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE
		SET title = EXCLUDED.title,
			type = EXCLUDED.type,
			status = EXCLUDED.status,
			category = EXCLUDED.category,
			submitted_by = EXCLUDED.submitted_by,
			submitted_at = EXCLUDED.submitted_at,
			report_count = EXCLUDED.report_count`
	_, err := r.db.ExecContext(
		ctx,
		query,
		item.ID,
		item.Title,
		item.Type,
		item.Status,
		item.Category,
		item.SubmittedBy,
		item.SubmittedAt,
		item.ReportCount,
	)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (types.Item, error) {
	var item types.Item
	err := row.Scan(
		&item.ID,
		&item.Title,
		&item.Type,
		&item.Status,
		&item.Category,
		&item.SubmittedBy,
		&item.SubmittedAt,
		&item.ReportCount,
	)
	return item, err
}
