package chi

import (
	domdoc "github.com/yujingwu/knwl-platform/internal/domain/document"
	"github.com/yujingwu/knwl-platform/internal/domain/search/result"
	healthuc "github.com/yujingwu/knwl-platform/internal/usecase/health"
	statsuc "github.com/yujingwu/knwl-platform/internal/usecase/stats"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// DocumentRequest is the ingest payload. Pointers distinguish missing fields.
type DocumentRequest struct {
	Title   *string   `json:"title"`
	Content *string   `json:"content"`
	Tags    *[]string `json:"tags"`
}

// IngestResponse is returned for a created document.
type IngestResponse struct {
	DocumentID string `json:"documentId"`
	TenantID   string `json:"tenantId"`
	CreatedAt  string `json:"createdAt"`
}

// SearchResultItem is one ranked hit.
type SearchResultItem struct {
	DocumentID string   `json:"documentId"`
	Title      string   `json:"title"`
	Snippet    string   `json:"snippet"`
	Tags       []string `json:"tags"`
	Score      float64  `json:"score"`
	CreatedAt  string   `json:"createdAt"`
}

// SearchResponse is one page of search results.
type SearchResponse struct {
	TenantID string             `json:"tenantId"`
	Query    string             `json:"query"`
	Limit    int                `json:"limit"`
	Offset   int                `json:"offset"`
	Total    int                `json:"total"`
	Results  []SearchResultItem `json:"results"`
}

// HealthResponse reports service health.
type HealthResponse struct {
	Status string            `json:"status"`
	Time   string            `json:"time"`
	Checks map[string]string `json:"checks"`
}

// MetricsResponse is the operational metrics report.
type MetricsResponse struct {
	UptimeSeconds        int64           `json:"uptimeSeconds"`
	Requests             RequestMetrics  `json:"requests"`
	LatencyMs            LatencyMetrics  `json:"latencyMs"`
	Errors               ErrorMetrics    `json:"errors"`
	Documents            DocumentMetrics `json:"documents"`
	DroppedTenantBuckets int64           `json:"droppedTenantBuckets"`
}

// RequestMetrics holds request counters.
type RequestMetrics struct {
	Total      int64            `json:"total"`
	ByTenant   map[string]int64 `json:"byTenant"`
	ByEndpoint map[string]int64 `json:"byEndpoint"`
}

// LatencyMetrics holds average latencies in milliseconds.
type LatencyMetrics struct {
	AvgOverall    float64            `json:"avgOverall"`
	ByEndpointAvg map[string]float64 `json:"byEndpointAvg"`
}

// ErrorMetrics holds error counters.
type ErrorMetrics struct {
	Total    int64            `json:"total"`
	ByStatus map[string]int64 `json:"byStatus"`
	ByTenant map[string]int64 `json:"byTenant"`
}

// DocumentMetrics holds stored document counts.
type DocumentMetrics struct {
	ByTenant map[string]int `json:"byTenant"`
}

func ingestToResponse(res domdoc.IngestResult) IngestResponse {
	return IngestResponse{
		DocumentID: res.DocumentID,
		TenantID:   res.TenantID,
		CreatedAt:  res.CreatedAt,
	}
}

func searchResultToResponse(r *result.Result) SearchResultItem {
	tags := r.Tags()
	if tags == nil {
		tags = []string{}
	}
	return SearchResultItem{
		DocumentID: r.DocumentID(),
		Title:      r.Title(),
		Snippet:    r.Snippet(),
		Tags:       tags,
		Score:      r.Score(),
		CreatedAt:  r.CreatedAt(),
	}
}

func pageToResponse(p result.Page) SearchResponse {
	items := make([]SearchResultItem, len(p.Results))
	for i := range p.Results {
		items[i] = searchResultToResponse(&p.Results[i])
	}
	return SearchResponse{
		TenantID: p.TenantID,
		Query:    p.Query,
		Limit:    p.Limit,
		Offset:   p.Offset,
		Total:    p.Total,
		Results:  items,
	}
}

func healthToResponse(r healthuc.Report) HealthResponse {
	checks := make(map[string]string, len(r.Checks))
	for k, v := range r.Checks {
		checks[k] = string(v)
	}
	return HealthResponse{Status: string(r.Status), Time: r.Time, Checks: checks}
}

func statsToResponse(r statsuc.Report) MetricsResponse {
	docs := r.DocumentsByTenant
	if docs == nil {
		docs = map[string]int{}
	}
	return MetricsResponse{
		UptimeSeconds: r.UptimeSeconds,
		Requests: RequestMetrics{
			Total:      r.Requests.Total,
			ByTenant:   r.Requests.ByTenant,
			ByEndpoint: r.Requests.ByEndpoint,
		},
		LatencyMs: LatencyMetrics{
			AvgOverall:    r.Latency.AvgOverall,
			ByEndpointAvg: r.Latency.ByEndpointAvg,
		},
		Errors: ErrorMetrics{
			Total:    r.Errors.Total,
			ByStatus: r.Errors.ByStatus,
			ByTenant: r.Errors.ByTenant,
		},
		Documents:            DocumentMetrics{ByTenant: docs},
		DroppedTenantBuckets: r.DroppedTenantBuckets,
	}
}
