package knwl

import (
	"context"
	"errors"
	"testing"

	"github.com/yujingwu/knwl-platform/internal/domain"
	domdoc "github.com/yujingwu/knwl-platform/internal/domain/document"
	"github.com/yujingwu/knwl-platform/internal/domain/search/result"
	healthuc "github.com/yujingwu/knwl-platform/internal/usecase/health"
	searchuc "github.com/yujingwu/knwl-platform/internal/usecase/search"
)

// --- DocumentService ---

func TestDocumentService_Ingest(t *testing.T) {
	mock := &mockDocumentUC{
		ingestFn: func(_ context.Context, tenantID, title, content string, tags []string) (domdoc.IngestResult, error) {
			if tenantID != "t1" {
				t.Errorf("tenantID = %q, want t1", tenantID)
			}
			if title != "Doc One" || content != "Hello world" {
				t.Errorf("title, content = %q, %q", title, content)
			}
			if len(tags) != 1 || tags[0] != "hello" {
				t.Errorf("tags = %v", tags)
			}
			return domdoc.IngestResult{DocumentID: "doc-1", TenantID: tenantID, CreatedAt: "2024-01-01T00:00:00Z"}, nil
		},
	}

	svc := &DocumentService{tenantID: "t1", svc: mock}
	res, err := svc.Ingest(context.Background(), Document{Title: "Doc One", Content: "Hello world", Tags: []string{"hello"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.DocumentID != "doc-1" || res.TenantID != "t1" || res.CreatedAt != "2024-01-01T00:00:00Z" {
		t.Errorf("result = %+v", res)
	}
}

func TestDocumentService_Ingest_Error(t *testing.T) {
	mock := &mockDocumentUC{
		ingestFn: func(context.Context, string, string, string, []string) (domdoc.IngestResult, error) {
			return domdoc.IngestResult{}, domain.ErrValidation
		},
	}

	svc := &DocumentService{tenantID: "t1", svc: mock}
	_, err := svc.Ingest(context.Background(), Document{})
	if !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
}

// --- SearchService ---

func TestSearchService_Query(t *testing.T) {
	mock := &mockSearchUC{
		searchFn: func(_ context.Context, tenantID string, p searchuc.Params) (result.Page, error) {
			if tenantID != "t1" || p.Query != "hello" {
				t.Errorf("tenantID, query = %q, %q", tenantID, p.Query)
			}
			if p.Limit == nil || *p.Limit != 5 {
				t.Errorf("limit = %v, want 5", p.Limit)
			}
			if p.Offset != nil {
				t.Errorf("offset = %v, want nil", *p.Offset)
			}
			return result.Page{
				TenantID: tenantID,
				Query:    p.Query,
				Limit:    5,
				Total:    1,
				Results: []result.Result{
					result.New("doc-1", "Doc One", "<b>Hello</b> world", []string{"hello"}, 0.6, "2024-01-01T00:00:00Z"),
				},
			}, nil
		},
	}

	svc := &SearchService{tenantID: "t1", svc: mock}
	page, err := svc.Query(context.Background(), SearchRequest{Query: "hello", Limit: 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.Total != 1 || page.Limit != 5 || page.Offset != 0 {
		t.Errorf("page = %+v", page)
	}
	if len(page.Hits) != 1 {
		t.Fatalf("expected 1 hit, got %d", len(page.Hits))
	}
	h := page.Hits[0]
	if h.DocumentID != "doc-1" || h.Snippet != "<b>Hello</b> world" || h.Score != 0.6 {
		t.Errorf("hit = %+v", h)
	}
}

func TestSearchService_Query_Defaults(t *testing.T) {
	mock := &mockSearchUC{
		searchFn: func(_ context.Context, _ string, p searchuc.Params) (result.Page, error) {
			if p.Limit != nil || p.Offset != nil {
				t.Errorf("expected nil limit and offset, got %v %v", p.Limit, p.Offset)
			}
			return result.Page{Results: []result.Result{}}, nil
		},
	}

	svc := &SearchService{tenantID: "t1", svc: mock}
	page, err := svc.Query(context.Background(), SearchRequest{Query: "x"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.Hits == nil || len(page.Hits) != 0 {
		t.Errorf("expected empty non-nil hits, got %v", page.Hits)
	}
}

func TestSearchService_Query_InvalidQuery(t *testing.T) {
	mock := &mockSearchUC{
		searchFn: func(context.Context, string, searchuc.Params) (result.Page, error) {
			return result.Page{}, domain.ErrInvalidQuery
		},
	}

	svc := &SearchService{tenantID: "t1", svc: mock}
	_, err := svc.Query(context.Background(), SearchRequest{Query: "hello AND"})
	if !errors.Is(err, ErrInvalidQuery) {
		t.Errorf("expected ErrInvalidQuery, got %v", err)
	}
}

// --- Client ---

func TestClient_Health(t *testing.T) {
	c := &Client{healthSvc: &mockHealthUC{
		checkFn: func(context.Context) healthuc.Report {
			return healthuc.Report{
				Status: healthuc.Degraded,
				Time:   "2024-01-01T00:00:00Z",
				Checks: map[string]healthuc.CheckResult{"database": healthuc.CheckError},
			}
		},
	}}

	h := c.Health(context.Background())
	if h.Healthy() {
		t.Error("expected unhealthy")
	}
	if h.Checks["database"] != "error" {
		t.Errorf("database check = %q", h.Checks["database"])
	}
}

func TestClient_DocumentCounts(t *testing.T) {
	c := &Client{counts: &mockCountsUC{
		countsFn: func(context.Context) (map[string]int, error) {
			return map[string]int{"t1": 2}, nil
		},
	}}

	counts, err := c.DocumentCounts(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if counts["t1"] != 2 {
		t.Errorf("counts = %v", counts)
	}
}

func TestClient_DocumentCounts_Error(t *testing.T) {
	c := &Client{counts: &mockCountsUC{
		countsFn: func(context.Context) (map[string]int, error) {
			return nil, domain.ErrStorageFailure
		},
	}}

	if _, err := c.DocumentCounts(context.Background()); !errors.Is(err, ErrStorageFailure) {
		t.Errorf("expected ErrStorageFailure, got %v", err)
	}
}

func TestClient_Close_NilStore(t *testing.T) {
	c := &Client{}
	if err := c.Close(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
