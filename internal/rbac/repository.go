package rbac

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository reads the role and permission associations from PostgreSQL.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// RoleIDsByUser returns the deduplicated, active, non-deleted role set for
// a subject.
func (r *Repository) RoleIDsByUser(ctx context.Context, userID int64) ([]int64, error) {
	const query = `
		SELECT DISTINCT ur.role_id
		FROM sys_user_role ur
		JOIN sys_role ro ON ro.role_id = ur.role_id
		WHERE ur.user_id = $1 AND ro.status = '0' AND ro.del_flag = '0'`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// PermissionsByRoles returns the distinct non-empty permission strings
// attached to active, non-deleted menu nodes granted to the given roles.
func (r *Repository) PermissionsByRoles(ctx context.Context, roleIDs []int64) ([]string, error) {
	const query = `
		SELECT DISTINCT m.perms
		FROM sys_menu m
		JOIN sys_role_menu rm ON rm.menu_id = m.menu_id
		WHERE rm.role_id = ANY($1) AND m.status = '0' AND m.del_flag = '0' AND m.perms <> ''`
	rows, err := r.pool.Query(ctx, query, roleIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var perms []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		perms = append(perms, p)
	}
	return perms, rows.Err()
}
