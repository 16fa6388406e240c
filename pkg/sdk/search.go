package knwl

import (
	"context"
	"fmt"
	"time"

	searchuc "github.com/yujingwu/knwl-platform/internal/usecase/search"
)

// SearchRequest is a full-text query. Zero Limit uses the default page size.
type SearchRequest struct {
	Query  string
	Limit  int
	Offset int
}

// SearchService runs full-text queries for a single tenant.
type SearchService struct {
	tenantID string
	svc      searchUseCase
	obs      *observer
}

// Query returns one page of ranked hits. A query the index cannot parse
// fails with ErrInvalidQuery.
func (s *SearchService) Query(ctx context.Context, req SearchRequest) (page SearchPage, err error) {
	start := time.Now()
	defer func() { s.obs.observe("search", s.tenantID, start, err) }()

	p := searchuc.Params{Query: req.Query}
	if req.Limit != 0 {
		p.Limit = &req.Limit
	}
	if req.Offset != 0 {
		p.Offset = &req.Offset
	}

	res, err := s.svc.Search(ctx, s.tenantID, p)
	if err != nil {
		return SearchPage{}, fmt.Errorf("search: %w", err)
	}

	hits := make([]Hit, len(res.Results))
	for i := range res.Results {
		r := &res.Results[i]
		hits[i] = Hit{
			DocumentID: r.DocumentID(),
			Title:      r.Title(),
			Snippet:    r.Snippet(),
			Tags:       r.Tags(),
			Score:      r.Score(),
			CreatedAt:  r.CreatedAt(),
		}
	}
	return SearchPage{
		TenantID: res.TenantID,
		Query:    res.Query,
		Limit:    res.Limit,
		Offset:   res.Offset,
		Total:    res.Total,
		Hits:     hits,
	}, nil
}
