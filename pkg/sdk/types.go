package knwl

import "github.com/yujingwu/knwl-platform/internal/domain"

// Limits bounds document payloads and search paging.
type Limits = domain.Limits

// Document is an ingest payload.
type Document struct {
	Title   string
	Content string
	Tags    []string
}

// IngestResult identifies a stored document.
type IngestResult struct {
	DocumentID string
	TenantID   string
	CreatedAt  string
}

// Hit is one ranked search result.
type Hit struct {
	DocumentID string
	Title      string
	Snippet    string
	Tags       []string
	// Score is the relevance in (0, 1]; higher is better.
	Score     float64
	CreatedAt string
}

// SearchPage is one page of ranked results plus the total match count.
type SearchPage struct {
	TenantID string
	Query    string
	Limit    int
	Offset   int
	Total    int
	Hits     []Hit
}
