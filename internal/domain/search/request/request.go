package request

import (
	"fmt"
	"strings"

	"github.com/yujingwu/knwl-platform/internal/domain"
)

// Request is a validated search query.
type Request struct {
	query  string
	limit  int
	offset int
}

// New validates search parameters against limits. A blank query is rejected;
// limit must lie in [1, limits.MaxPageSize] and offset must not be negative.
func New(query string, limit, offset int, limits domain.Limits) (Request, error) {
	if strings.TrimSpace(query) == "" {
		return Request{}, fmt.Errorf("%w: Query cannot be blank", domain.ErrValidation)
	}
	maxLimit := limits.MaxPageSize
	if maxLimit <= 0 {
		maxLimit = domain.DefaultLimits().MaxPageSize
	}
	if limit < 1 || limit > maxLimit {
		return Request{}, fmt.Errorf("%w: limit must be between 1 and %d", domain.ErrValidation, maxLimit)
	}
	if offset < 0 {
		return Request{}, fmt.Errorf("%w: offset must not be negative", domain.ErrValidation)
	}
	return Request{query: query, limit: limit, offset: offset}, nil
}

// Query returns the query string as submitted.
func (r *Request) Query() string { return r.query }

// Limit returns the page size.
func (r *Request) Limit() int { return r.limit }

// Offset returns the number of ranked results to skip.
func (r *Request) Offset() int { return r.offset }
