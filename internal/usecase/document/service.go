package document

import (
	"context"
	"fmt"

	"github.com/yujingwu/knwl-platform/internal/domain"
	domdoc "github.com/yujingwu/knwl-platform/internal/domain/document"
)

// Service handles document ingestion for an authorized tenant.
type Service struct {
	repo   Repository
	limits domain.Limits
}

// New creates a document service with default limits.
func New(repo Repository) *Service {
	return &Service{repo: repo, limits: domain.DefaultLimits()}
}

// WithLimits configures payload bounds. Zero fields keep their defaults.
func (s *Service) WithLimits(l domain.Limits) *Service {
	if l.MaxTitleLen > 0 {
		s.limits.MaxTitleLen = l.MaxTitleLen
	}
	if l.MaxContentLen > 0 {
		s.limits.MaxContentLen = l.MaxContentLen
	}
	if l.MaxTags > 0 {
		s.limits.MaxTags = l.MaxTags
	}
	return s
}

// Ingest validates the payload and stores it under tenantID.
func (s *Service) Ingest(ctx context.Context, tenantID, title, content string, tags []string) (domdoc.IngestResult, error) {
	if tenantID == "" {
		return domdoc.IngestResult{}, fmt.Errorf("%w: tenant is required", domain.ErrValidation)
	}

	draft, err := domdoc.NewDraft(title, content, tags, s.limits)
	if err != nil {
		return domdoc.IngestResult{}, err
	}

	res, err := s.repo.Insert(ctx, tenantID, draft)
	if err != nil {
		return domdoc.IngestResult{}, fmt.Errorf("insert document: %w", err)
	}
	return res, nil
}
