package knwl

import (
	"context"
	"fmt"
	"time"

	"github.com/yujingwu/knwl-platform/internal/clock"
	"github.com/yujingwu/knwl-platform/internal/db/sqlite"
	domdoc "github.com/yujingwu/knwl-platform/internal/domain/document"
	"github.com/yujingwu/knwl-platform/internal/domain/search/result"
	documentrepo "github.com/yujingwu/knwl-platform/internal/repository/document"
	documentuc "github.com/yujingwu/knwl-platform/internal/usecase/document"
	healthuc "github.com/yujingwu/knwl-platform/internal/usecase/health"
	searchuc "github.com/yujingwu/knwl-platform/internal/usecase/search"
)

// Internal interfaces, swapped for mocks in tests.
type documentUseCase interface {
	Ingest(ctx context.Context, tenantID, title, content string, tags []string) (domdoc.IngestResult, error)
}

type searchUseCase interface {
	Search(ctx context.Context, tenantID string, p searchuc.Params) (result.Page, error)
}

type healthUseCase interface {
	Check(ctx context.Context) healthuc.Report
}

type countsUseCase interface {
	CountsByTenant(ctx context.Context) (map[string]int, error)
}

// closer releases the storage handle.
type closer interface {
	Close() error
}

// Client is the knwl SDK entry point.
type Client struct {
	store     closer
	docSvc    documentUseCase
	searchSvc searchUseCase
	healthSvc healthUseCase
	counts    countsUseCase
	obs       *observer
}

// New opens (or creates) the database and wires the document services.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := defaultConfig()
	for _, o := range opts {
		o.apply(cfg)
	}

	if cfg.path == "" {
		return nil, fmt.Errorf("knwl: database path required (use WithPath)")
	}
	if cfg.limits.DefaultPageSize > cfg.limits.MaxPageSize {
		return nil, fmt.Errorf("knwl: default page size %d exceeds max page size %d",
			cfg.limits.DefaultPageSize, cfg.limits.MaxPageSize)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	store, err := sqlite.Open(ctx, sqlite.Config{
		Path:          cfg.path,
		BusyTimeoutMS: cfg.busyTimeoutMS,
		WAL:           cfg.wal,
	})
	if err != nil {
		return nil, fmt.Errorf("knwl: open store: %w", err)
	}

	clk := clock.System{}
	docRepo := documentrepo.New(store, clk)

	return &Client{
		store:     store,
		docSvc:    documentuc.New(docRepo).WithLimits(cfg.limits),
		searchSvc: searchuc.New(docRepo).WithPagination(cfg.limits.DefaultPageSize, cfg.limits.MaxPageSize),
		healthSvc: healthuc.New(store, clk),
		counts:    docRepo,
		obs:       obs,
	}, nil
}

// Close releases the database. Further calls fail with ErrStorageFailure.
func (c *Client) Close() error {
	if c.store == nil {
		return nil
	}
	if err := c.store.Close(); err != nil {
		return fmt.Errorf("knwl: close: %w", err)
	}
	return nil
}

// Documents returns the document service for a tenant.
func (c *Client) Documents(tenantID string) *DocumentService {
	return &DocumentService{tenantID: tenantID, svc: c.docSvc, obs: c.obs}
}

// Search returns the search service for a tenant.
func (c *Client) Search(tenantID string) *SearchService {
	return &SearchService{tenantID: tenantID, svc: c.searchSvc, obs: c.obs}
}

// DocumentCounts returns the number of stored documents per tenant.
func (c *Client) DocumentCounts(ctx context.Context) (counts map[string]int, err error) {
	start := time.Now()
	defer func() { c.obs.observe("document_counts", "", start, err) }()

	counts, err = c.counts.CountsByTenant(ctx)
	if err != nil {
		return nil, fmt.Errorf("document counts: %w", err)
	}
	return counts, nil
}
