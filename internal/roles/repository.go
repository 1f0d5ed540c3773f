package roles

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stellar-admin/stellar-admin/internal/shared"
)

// Repository provides PostgreSQL backed persistence for roles.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// List returns non-deleted roles matching the filters plus the total count.
func (r *Repository) List(ctx context.Context, f ListFilters) ([]Role, int, error) {
	conditions := []string{"del_flag = '0'"}
	args := []any{}
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if f.RoleID != 0 {
		conditions = append(conditions, "role_id = "+arg(f.RoleID))
	}
	if f.Status != "" {
		conditions = append(conditions, "status = "+arg(f.Status))
	}
	if f.Name != "" {
		conditions = append(conditions, "role_name ILIKE "+arg("%"+f.Name+"%"))
	}
	if f.Key != "" {
		conditions = append(conditions, "role_key ILIKE "+arg("%"+f.Key+"%"))
	}
	where := strings.Join(conditions, " AND ")

	var total int
	if err := r.pool.QueryRow(ctx, "SELECT count(*) FROM sys_role WHERE "+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := f.PageSize
	if limit <= 0 {
		limit = 20
	}
	offset := 0
	if f.PageNum > 1 {
		offset = (f.PageNum - 1) * limit
	}
	query := fmt.Sprintf(`
		SELECT role_id, role_name, role_key, role_sort, status, remark, create_time
		FROM sys_role
		WHERE %s
		ORDER BY role_sort DESC, role_id
		LIMIT %s OFFSET %s`, where, arg(limit), arg(offset))
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var roles []Role
	for rows.Next() {
		var role Role
		if err := rows.Scan(&role.ID, &role.Name, &role.Key, &role.Rank, &role.Status, &role.Remark, &role.CreatedAt); err != nil {
			return nil, 0, err
		}
		roles = append(roles, role)
	}
	return roles, total, rows.Err()
}

// Create inserts a role. Name collisions map to the duplicate taxonomy code.
func (r *Repository) Create(ctx context.Context, name, key string, rank int, remark string) (Role, error) {
	const query = `
		INSERT INTO sys_role (role_name, role_key, role_sort, status, del_flag, remark, create_time)
		VALUES ($1, $2, $3, '0', '0', $4, now())
		RETURNING role_id, role_name, role_key, role_sort, status, remark, create_time`
	var role Role
	err := r.pool.QueryRow(ctx, query, name, key, rank, remark).
		Scan(&role.ID, &role.Name, &role.Key, &role.Rank, &role.Status, &role.Remark, &role.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return Role{}, shared.ErrDuplicate
		}
		return Role{}, err
	}
	return role, nil
}
