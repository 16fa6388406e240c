package search

import (
	"context"

	"github.com/yujingwu/knwl-platform/internal/domain/search/result"
)

// Repository runs tenant-scoped full-text queries.
type Repository interface {
	Search(ctx context.Context, tenantID, query string, limit, offset int) ([]result.Result, error)
	Count(ctx context.Context, tenantID, query string) (int, error)
}
