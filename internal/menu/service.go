package menu

import (
	"context"
	"fmt"

	"golang.org/x/sync/singleflight"
)

// MenuSource reads flat menu rows.
type MenuSource interface {
	ListAll(ctx context.Context) ([]Menu, error)
	ListNavigable(ctx context.Context) ([]Menu, error)
	ListNavigableByUser(ctx context.Context, userID int64) ([]Menu, error)
}

// RoleChecker answers whether a subject holds the super role.
type RoleChecker interface {
	HasSuperRole(ctx context.Context, userID int64) (bool, error)
}

// Service builds menu trees for handlers.
type Service struct {
	repo  MenuSource
	roles RoleChecker
	group singleflight.Group
}

// NewService constructs a Service.
func NewService(repo MenuSource, roles RoleChecker) *Service {
	return &Service{repo: repo, roles: roles}
}

// ManagementTree returns the full administrative tree.
func (s *Service) ManagementTree(ctx context.Context) ([]*MenuNode, error) {
	menus, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return BuildMenuTree(menus, 0), nil
}

// RoutesForUser returns the navigable route tree for a subject. Super-role
// holders see every active route. Concurrent builds for the same subject
// are coalesced; menus change rarely and the join is the expensive part.
func (s *Service) RoutesForUser(ctx context.Context, userID int64) ([]*RouteNode, error) {
	v, err, _ := s.group.Do(fmt.Sprintf("routes:%d", userID), func() (any, error) {
		super, err := s.roles.HasSuperRole(ctx, userID)
		if err != nil {
			return nil, err
		}
		var menus []Menu
		if super {
			menus, err = s.repo.ListNavigable(ctx)
		} else {
			menus, err = s.repo.ListNavigableByUser(ctx, userID)
		}
		if err != nil {
			return nil, err
		}
		return BuildRouteTree(menus, 0), nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]*RouteNode), nil
}
