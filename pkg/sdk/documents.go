package knwl

import (
	"context"
	"fmt"
	"time"
)

// DocumentService ingests documents for a single tenant.
type DocumentService struct {
	tenantID string
	svc      documentUseCase
	obs      *observer
}

// Ingest validates and stores a document. It is searchable as soon as
// Ingest returns.
func (s *DocumentService) Ingest(ctx context.Context, doc Document) (res IngestResult, err error) {
	start := time.Now()
	defer func() { s.obs.observe("ingest", s.tenantID, start, err) }()

	r, err := s.svc.Ingest(ctx, s.tenantID, doc.Title, doc.Content, doc.Tags)
	if err != nil {
		return IngestResult{}, fmt.Errorf("ingest: %w", err)
	}
	return IngestResult{
		DocumentID: r.DocumentID,
		TenantID:   r.TenantID,
		CreatedAt:  r.CreatedAt,
	}, nil
}
