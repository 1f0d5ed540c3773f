package rbac

import "context"

// AssociationSource provides the subject→role and role→menu joins the
// resolver traverses.
type AssociationSource interface {
	RoleIDsByUser(ctx context.Context, userID int64) ([]int64, error)
	PermissionsByRoles(ctx context.Context, roleIDs []int64) ([]string, error)
}

// Service resolves the effective permission set for a subject.
type Service struct {
	repo AssociationSource
}

// NewService constructs a Service.
func NewService(repo AssociationSource) *Service {
	return &Service{repo: repo}
}

// RoleIDs returns the active role identifiers held by a subject.
func (s *Service) RoleIDs(ctx context.Context, userID int64) ([]int64, error) {
	return s.repo.RoleIDsByUser(ctx, userID)
}

// ResolvePermissions computes the subject's effective permission strings.
// Holding the super role short-circuits to the wildcard without touching
// the menu joins. The result is a set: order-independent, deduplicated,
// empty permission strings filtered out. An empty result is valid.
func (s *Service) ResolvePermissions(ctx context.Context, userID int64) ([]string, error) {
	roleIDs, err := s.repo.RoleIDsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, id := range roleIDs {
		if id == SuperRoleID {
			return []string{WildcardPermission}, nil
		}
	}
	if len(roleIDs) == 0 {
		return []string{}, nil
	}
	raw, err := s.repo.PermissionsByRoles(ctx, roleIDs)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{}, len(raw))
	perms := make([]string, 0, len(raw))
	for _, p := range raw {
		if p == "" {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		perms = append(perms, p)
	}
	return perms, nil
}

// HasSuperRole reports whether the subject holds the super role.
func (s *Service) HasSuperRole(ctx context.Context, userID int64) (bool, error) {
	roleIDs, err := s.repo.RoleIDsByUser(ctx, userID)
	if err != nil {
		return false, err
	}
	for _, id := range roleIDs {
		if id == SuperRoleID {
			return true, nil
		}
	}
	return false, nil
}
