package document

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/yujingwu/knwl-platform/internal/clock"
	"github.com/yujingwu/knwl-platform/internal/db"
	"github.com/yujingwu/knwl-platform/internal/domain"
	domdoc "github.com/yujingwu/knwl-platform/internal/domain/document"
	"github.com/yujingwu/knwl-platform/internal/domain/search/result"
	"github.com/yujingwu/knwl-platform/internal/domain/search/score"
)

// Snippet markup passed to FTS5 snippet().
const (
	snippetOpen     = "<b>"
	snippetClose    = "</b>"
	snippetEllipsis = "..."
	snippetTokens   = 10
	// snippetColumn -1 lets FTS5 pick the column with the best match.
	snippetColumn = -1
)

const insertSQL = `
INSERT INTO documents (tenant_id, document_id, title, content, tags, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?)`

// The tenant predicate is part of the same statement as MATCH, so rows of other
// tenants never reach ranking, paging or the caller.
const searchSQL = `
SELECT d.document_id,
       d.title,
       d.tags,
       d.created_at,
       snippet(documents_fts, ?, ?, ?, ?, ?) AS snippet,
       bm25(documents_fts) AS score_raw
FROM documents_fts
JOIN documents d ON d.id = documents_fts.rowid
WHERE documents_fts.tenant_id = ?
  AND documents_fts MATCH ?
ORDER BY score_raw ASC, d.document_id ASC
LIMIT ? OFFSET ?`

const countSQL = `
SELECT COUNT(*)
FROM documents_fts
WHERE documents_fts.tenant_id = ?
  AND documents_fts MATCH ?`

const countsByTenantSQL = `
SELECT d.tenant_id, COUNT(*)
FROM documents d
GROUP BY d.tenant_id`

// store is the consumer interface for the storage handle (ISP).
type store interface {
	Read(ctx context.Context, fn func(ctx context.Context, q db.Querier) error) error
	Write(ctx context.Context, fn func(ctx context.Context, q db.Querier) error) error
}

// Repo is the tenant-isolated document store.
type Repo struct {
	store store
	clock clock.Provider
}

// New creates a document repository.
func New(s store, c clock.Provider) *Repo {
	return &Repo{store: s, clock: c}
}

// Insert stores a new document and its index entry atomically.
// On success the document is immediately visible to Search for the same tenant.
func (r *Repo) Insert(ctx context.Context, tenantID string, draft domdoc.Draft) (domdoc.IngestResult, error) {
	doc := domdoc.Stamp(tenantID, draft, r.clock.NewID(), r.clock.Now())

	tags, err := encodeTags(doc.Tags())
	if err != nil {
		return domdoc.IngestResult{}, fmt.Errorf("encode tags: %w", err)
	}

	err = r.store.Write(ctx, func(ctx context.Context, q db.Querier) error {
		_, err := q.ExecContext(ctx, insertSQL,
			doc.TenantID(), doc.ID(), doc.Title(), doc.Content(), tags, doc.CreatedAt(), doc.UpdatedAt(),
		)
		return err
	})
	if err != nil {
		return domdoc.IngestResult{}, storageError("insert document", err)
	}

	return domdoc.IngestResult{
		DocumentID: doc.ID(),
		TenantID:   doc.TenantID(),
		CreatedAt:  doc.CreatedAt(),
	}, nil
}

// Search returns one page of the tenant's documents matching query, best first.
// Ties are broken by document ID so repeated queries page identically.
func (r *Repo) Search(ctx context.Context, tenantID, query string, limit, offset int) ([]result.Result, error) {
	results := make([]result.Result, 0, limit)

	err := r.store.Read(ctx, func(ctx context.Context, q db.Querier) error {
		rows, err := q.QueryContext(ctx, searchSQL,
			snippetColumn, snippetOpen, snippetClose, snippetEllipsis, snippetTokens,
			tenantID, query, limit, offset,
		)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var (
				id, title, rawTags, createdAt string
				snippet                       sql.NullString
				raw                           float64
			)
			if err := rows.Scan(&id, &title, &rawTags, &createdAt, &snippet, &raw); err != nil {
				return fmt.Errorf("scan result: %w", err)
			}
			tags, err := decodeTags(rawTags)
			if err != nil {
				return fmt.Errorf("document %s: %w", id, err)
			}
			results = append(results, result.New(id, title, snippet.String, tags, score.FromBM25(raw), createdAt))
		}
		return rows.Err()
	})
	if err != nil {
		return nil, storageError("search documents", err)
	}
	return results, nil
}

// Count returns how many of the tenant's documents match query, ignoring paging.
func (r *Repo) Count(ctx context.Context, tenantID, query string) (int, error) {
	var n int
	err := r.store.Read(ctx, func(ctx context.Context, q db.Querier) error {
		return q.QueryRowContext(ctx, countSQL, tenantID, query).Scan(&n)
	})
	if err != nil {
		return 0, storageError("count documents", err)
	}
	return n, nil
}

// CountsByTenant returns the number of stored documents per tenant.
// Tenants without documents are absent from the map.
func (r *Repo) CountsByTenant(ctx context.Context) (map[string]int, error) {
	counts := make(map[string]int)
	err := r.store.Read(ctx, func(ctx context.Context, q db.Querier) error {
		rows, err := q.QueryContext(ctx, countsByTenantSQL)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var tenantID string
			var n int
			if err := rows.Scan(&tenantID, &n); err != nil {
				return fmt.Errorf("scan count: %w", err)
			}
			counts[tenantID] = n
		}
		return rows.Err()
	})
	if err != nil {
		return nil, storageError("count documents by tenant", err)
	}
	return counts, nil
}

// storageError classifies an engine error. Query syntax problems become
// ErrInvalidQuery; everything else is a storage failure.
func storageError(op string, err error) error {
	if isQuerySyntaxError(err) {
		return fmt.Errorf("%w: %s: %w", domain.ErrInvalidQuery, op, err)
	}
	return fmt.Errorf("%w: %s: %w", domain.ErrStorageFailure, op, err)
}
