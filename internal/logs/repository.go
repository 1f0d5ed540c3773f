// Package logs persists login audit records.
package logs

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// LoginLog is one login audit row.
type LoginLog struct {
	UserID    int64
	IP        string
	UserAgent string
	LoginAt   time.Time
}

// Repository writes login logs to PostgreSQL.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Insert stores a login audit row.
func (r *Repository) Insert(ctx context.Context, entry LoginLog) error {
	const query = `
		INSERT INTO sys_login_log (user_id, ip_addr, user_agent, login_time)
		VALUES ($1, $2, $3, $4)`
	_, err := r.pool.Exec(ctx, query, entry.UserID, entry.IP, entry.UserAgent, entry.LoginAt.UTC())
	return err
}
