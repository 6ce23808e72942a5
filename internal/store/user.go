package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lostfound/moderation/types"
)

const userColumns = `id, email, name, items_posted, last_active, status`

// UserRepository handles persistence for user accounts.
type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) List(ctx context.Context) ([]types.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users ORDER BY position`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]types.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *UserRepository) Get(ctx context.Context, id string) (types.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	user, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.User{}, ErrNotFound
		}
		return types.User{}, err
	}
	return user, nil
}

// UpdateStatus changes an account status while it still equals from.
func (r *UserRepository) UpdateStatus(ctx context.Context, id string, from, to types.UserStatus) (types.User, error) {
	const query = `
		UPDATE users
		SET status = $1
		WHERE id = $2 AND status = $3
		RETURNING ` + userColumns
	user, err := scanUser(r.db.QueryRowContext(ctx, query, to, id, from))
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return types.User{}, err
	}
	if _, err := r.Get(ctx, id); err != nil {
		return types.User{}, err
	}
	return types.User{}, ErrStaleStatus
}

func (r *UserRepository) Upsert(ctx context.Context, user types.User) error {
	const query = `
		INSERT INTO users (id, email, name, items_posted, last_active, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE
		SET email = EXCLUDED.email,
			name = EXCLUDED.name,
			items_posted = EXCLUDED.items_posted,
			last_active = EXCLUDED.last_active,
			status = EXCLUDED.status`
	_, err := r.db.ExecContext(
		ctx,
		query,
		user.ID,
		user.Email,
		user.Name,
		user.ItemsPosted,
		user.LastActive,
		user.Status,
	)
	return err
}

func scanUser(row rowScanner) (types.User, error) {
	var user types.User
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&user.ItemsPosted,
		&user.LastActive,
		&user.Status,
	)
	return user, err
}
