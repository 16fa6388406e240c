package knwl

import (
	"context"

	domdoc "github.com/yujingwu/knwl-platform/internal/domain/document"
	"github.com/yujingwu/knwl-platform/internal/domain/search/result"
	healthuc "github.com/yujingwu/knwl-platform/internal/usecase/health"
	searchuc "github.com/yujingwu/knwl-platform/internal/usecase/search"
)

// --- documentUseCase mock ---

type mockDocumentUC struct {
	ingestFn func(ctx context.Context, tenantID, title, content string, tags []string) (domdoc.IngestResult, error)
}

func (m *mockDocumentUC) Ingest(
	ctx context.Context, tenantID, title, content string, tags []string,
) (domdoc.IngestResult, error) {
	return m.ingestFn(ctx, tenantID, title, content, tags)
}

// --- searchUseCase mock ---

type mockSearchUC struct {
	searchFn func(ctx context.Context, tenantID string, p searchuc.Params) (result.Page, error)
}

func (m *mockSearchUC) Search(ctx context.Context, tenantID string, p searchuc.Params) (result.Page, error) {
	return m.searchFn(ctx, tenantID, p)
}

// --- healthUseCase mock ---

type mockHealthUC struct {
	checkFn func(ctx context.Context) healthuc.Report
}

func (m *mockHealthUC) Check(ctx context.Context) healthuc.Report {
	return m.checkFn(ctx)
}

// --- countsUseCase mock ---

type mockCountsUC struct {
	countsFn func(ctx context.Context) (map[string]int, error)
}

func (m *mockCountsUC) CountsByTenant(ctx context.Context) (map[string]int, error) {
	return m.countsFn(ctx)
}
