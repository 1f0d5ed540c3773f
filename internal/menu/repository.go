package menu

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const menuColumns = `menu_id, parent_id, menu_name, menu_key, path, component, icon, menu_type, perms, order_num, visible, is_cache, is_frame, status, create_time`

// Repository reads menu rows from PostgreSQL. Rows are returned pre-sorted
// by rank since the tree builder preserves input order.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// ListAll returns every non-deleted node for the management tree.
func (r *Repository) ListAll(ctx context.Context) ([]Menu, error) {
	query := `SELECT ` + menuColumns + `
		FROM sys_menu
		WHERE del_flag = '0'
		ORDER BY parent_id, order_num, menu_id`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	return scanMenus(rows)
}

// ListNavigable returns all active non-button nodes, used for subjects
// holding the super role.
func (r *Repository) ListNavigable(ctx context.Context) ([]Menu, error) {
	query := `SELECT ` + menuColumns + `
		FROM sys_menu
		WHERE del_flag = '0' AND status = '0' AND menu_type <> 'F'
		ORDER BY parent_id, order_num, menu_id`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	return scanMenus(rows)
}

// ListNavigableByUser returns the active non-button nodes granted to a
// subject through its roles.
func (r *Repository) ListNavigableByUser(ctx context.Context, userID int64) ([]Menu, error) {
	query := `SELECT DISTINCT ` + prefixedMenuColumns() + `
		FROM sys_menu m
		JOIN sys_role_menu rm ON rm.menu_id = m.menu_id
		JOIN sys_user_role ur ON ur.role_id = rm.role_id
		JOIN sys_role ro ON ro.role_id = ur.role_id
		WHERE ur.user_id = $1
		  AND m.del_flag = '0' AND m.status = '0' AND m.menu_type <> 'F'
		  AND ro.del_flag = '0' AND ro.status = '0'
		ORDER BY m.parent_id, m.order_num, m.menu_id`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	return scanMenus(rows)
}

func prefixedMenuColumns() string {
	return `m.menu_id, m.parent_id, m.menu_name, m.menu_key, m.path, m.component, m.icon, m.menu_type, m.perms, m.order_num, m.visible, m.is_cache, m.is_frame, m.status, m.create_time`
}

func scanMenus(rows pgx.Rows) ([]Menu, error) {
	defer rows.Close()
	var menus []Menu
	for rows.Next() {
		var m Menu
		if err := rows.Scan(&m.ID, &m.ParentID, &m.Title, &m.Key, &m.Path, &m.Component, &m.Icon, &m.Kind, &m.Perms, &m.Rank, &m.Visible, &m.IsCache, &m.IsFrame, &m.Status, &m.CreatedAt); err != nil {
			return nil, err
		}
		menus = append(menus, m)
	}
	return menus, rows.Err()
}
