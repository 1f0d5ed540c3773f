package roles

import (
	"context"
	"strings"

	"github.com/stellar-admin/stellar-admin/internal/shared"
)

// RoleStore abstracts role persistence.
type RoleStore interface {
	List(ctx context.Context, f ListFilters) ([]Role, int, error)
	Create(ctx context.Context, name, key string, rank int, remark string) (Role, error)
}

// Service wraps role business rules.
type Service struct {
	repo RoleStore
}

// NewService constructs a Service.
func NewService(repo RoleStore) *Service {
	return &Service{repo: repo}
}

// PageResult carries a paginated role listing.
type PageResult struct {
	Records  []Role `json:"records"`
	Total    int    `json:"total"`
	PageNum  int    `json:"pageNum"`
	PageSize int    `json:"pageSize"`
}

// List returns a page of roles.
func (s *Service) List(ctx context.Context, f ListFilters) (*PageResult, error) {
	records, total, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []Role{}
	}
	page := shared.NewPagination(f.PageNum, f.PageSize, total)
	return &PageResult{
		Records:  records,
		Total:    total,
		PageNum:  page.Page,
		PageSize: page.PerPage,
	}, nil
}

// Create inserts a new role after trimming and validating the name.
func (s *Service) Create(ctx context.Context, name, key string, rank int, remark string) (Role, error) {
	name = strings.TrimSpace(name)
	key = strings.TrimSpace(key)
	if name == "" || key == "" {
		return Role{}, shared.ErrInvalidParams
	}
	return s.repo.Create(ctx, name, key, rank, remark)
}
