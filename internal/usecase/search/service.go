package search

import (
	"context"
	"fmt"

	"github.com/yujingwu/knwl-platform/internal/domain"
	"github.com/yujingwu/knwl-platform/internal/domain/search/request"
	"github.com/yujingwu/knwl-platform/internal/domain/search/result"
)

// Params are the raw query parameters. Nil Limit or Offset selects the default.
type Params struct {
	Query  string
	Limit  *int
	Offset *int
}

// Service executes paged searches.
type Service struct {
	repo   Repository
	limits domain.Limits
}

// New creates a search service with default paging limits.
func New(repo Repository) *Service {
	return &Service{repo: repo, limits: domain.DefaultLimits()}
}

// WithPagination configures page size limits.
func (s *Service) WithPagination(defaultPageSize, maxPageSize int) *Service {
	if defaultPageSize > 0 {
		s.limits.DefaultPageSize = defaultPageSize
	}
	if maxPageSize > 0 {
		s.limits.MaxPageSize = maxPageSize
	}
	return s
}

// Search returns one page of the tenant's matching documents together with
// the total match count. The page and the count are two separate store calls.
func (s *Service) Search(ctx context.Context, tenantID string, p Params) (result.Page, error) {
	limit := s.limits.DefaultPageSize
	if p.Limit != nil {
		limit = *p.Limit
	}
	offset := 0
	if p.Offset != nil {
		offset = *p.Offset
	}

	req, err := request.New(p.Query, limit, offset, s.limits)
	if err != nil {
		return result.Page{}, err
	}

	results, err := s.repo.Search(ctx, tenantID, req.Query(), req.Limit(), req.Offset())
	if err != nil {
		return result.Page{}, fmt.Errorf("search: %w", err)
	}
	total, err := s.repo.Count(ctx, tenantID, req.Query())
	if err != nil {
		return result.Page{}, fmt.Errorf("count: %w", err)
	}

	return result.Page{
		TenantID: tenantID,
		Query:    req.Query(),
		Limit:    req.Limit(),
		Offset:   req.Offset(),
		Total:    total,
		Results:  results,
	}, nil
}
