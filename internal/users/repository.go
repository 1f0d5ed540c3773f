package users

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stellar-admin/stellar-admin/internal/shared"
)

// Repository provides read access to user accounts.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// FindByUsername returns an active, non-deleted account. Disabled or
// soft-deleted accounts are reported as not found so login failures stay
// indistinguishable from unknown usernames.
func (r *Repository) FindByUsername(ctx context.Context, username string) (*User, error) {
	const query = `
		SELECT user_id, user_name, nick_name, password, email, phonenumber, avatar, remark, status, create_time
		FROM sys_user
		WHERE user_name = $1 AND status = $2 AND del_flag = $3`
	row := r.pool.QueryRow(ctx, query, username, StatusNormal, FlagExists)
	return scanUser(row)
}

// GetByID returns an account regardless of status.
func (r *Repository) GetByID(ctx context.Context, id int64) (*User, error) {
	const query = `
		SELECT user_id, user_name, nick_name, password, email, phonenumber, avatar, remark, status, create_time
		FROM sys_user
		WHERE user_id = $1 AND del_flag = $2`
	row := r.pool.QueryRow(ctx, query, id, FlagExists)
	return scanUser(row)
}

func scanUser(row pgx.Row) (*User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Username, &u.Nickname, &u.PasswordHash, &u.Email, &u.Phone, &u.Avatar, &u.Remark, &u.Status, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}
