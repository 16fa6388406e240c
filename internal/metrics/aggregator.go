package metrics

import (
	"strconv"
	"sync"
	"time"
)

// DefaultMaxTenants bounds the number of per-tenant buckets when no limit is configured.
const DefaultMaxTenants = 10000

// Snapshot is a caller-owned copy of the aggregator state.
type Snapshot struct {
	UptimeSeconds int64
	Requests      RequestCounts
	Latency       LatencyAverages
	Errors        ErrorCounts
	// DroppedTenantBuckets counts requests whose tenant did not fit under the bucket cap.
	DroppedTenantBuckets int64
}

// RequestCounts holds request volume breakdowns.
type RequestCounts struct {
	Total      int64
	ByTenant   map[string]int64
	ByEndpoint map[string]int64
}

// LatencyAverages holds average latencies in milliseconds.
type LatencyAverages struct {
	AvgOverall    float64
	ByEndpointAvg map[string]float64
}

// ErrorCounts holds counts of responses with status >= 400.
type ErrorCounts struct {
	Total    int64
	ByStatus map[string]int64
	ByTenant map[string]int64
}

type latencySum struct {
	sum   float64
	count int64
}

// Aggregator collects request observations in memory. It is safe for
// concurrent use and never fails.
type Aggregator struct {
	mu         sync.Mutex
	start      time.Time
	now        func() time.Time
	maxTenants int

	requestsTotal      int64
	requestsByTenant   map[string]int64
	requestsByEndpoint map[string]int64

	latencyTotal      latencySum
	latencyByEndpoint map[string]latencySum

	errorsTotal    int64
	errorsByStatus map[string]int64
	errorsByTenant map[string]int64

	droppedTenants int64
}

// NewAggregator creates an aggregator. maxTenants caps the number of distinct
// tenant buckets; zero or negative selects DefaultMaxTenants.
func NewAggregator(maxTenants int) *Aggregator {
	if maxTenants <= 0 {
		maxTenants = DefaultMaxTenants
	}
	a := &Aggregator{
		now:                time.Now,
		maxTenants:         maxTenants,
		requestsByTenant:   make(map[string]int64),
		requestsByEndpoint: make(map[string]int64),
		latencyByEndpoint:  make(map[string]latencySum),
		errorsByStatus:     make(map[string]int64),
		errorsByTenant:     make(map[string]int64),
	}
	a.start = a.now()
	return a
}

// RecordRequest records one completed request. An empty tenantID means the
// request had no tenant and creates no tenant bucket.
func (a *Aggregator) RecordRequest(endpoint, tenantID string, status int, latencyMs float64) {
	a.mu.Lock()
	defer a.mu.Unlock()

	tenant := a.admitTenant(tenantID)

	a.requestsTotal++
	a.requestsByEndpoint[endpoint]++
	if tenant {
		a.requestsByTenant[tenantID]++
	}

	a.latencyTotal.sum += latencyMs
	a.latencyTotal.count++
	l := a.latencyByEndpoint[endpoint]
	l.sum += latencyMs
	l.count++
	a.latencyByEndpoint[endpoint] = l

	if status >= 400 {
		a.errorsTotal++
		a.errorsByStatus[strconv.Itoa(status)]++
		if tenant {
			a.errorsByTenant[tenantID]++
		}
	}
}

// admitTenant reports whether tenantID may use a tenant bucket. Must be called with mu held.
func (a *Aggregator) admitTenant(tenantID string) bool {
	if tenantID == "" {
		return false
	}
	if _, ok := a.requestsByTenant[tenantID]; ok {
		return true
	}
	if len(a.requestsByTenant) >= a.maxTenants {
		a.droppedTenants++
		return false
	}
	return true
}

// Snapshot returns a copy of the current counters.
func (a *Aggregator) Snapshot() Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()

	byEndpointAvg := make(map[string]float64, len(a.latencyByEndpoint))
	for endpoint, l := range a.latencyByEndpoint {
		byEndpointAvg[endpoint] = l.avg()
	}

	return Snapshot{
		UptimeSeconds: int64(a.now().Sub(a.start) / time.Second),
		Requests: RequestCounts{
			Total:      a.requestsTotal,
			ByTenant:   copyCounts(a.requestsByTenant),
			ByEndpoint: copyCounts(a.requestsByEndpoint),
		},
		Latency: LatencyAverages{
			AvgOverall:    a.latencyTotal.avg(),
			ByEndpointAvg: byEndpointAvg,
		},
		Errors: ErrorCounts{
			Total:    a.errorsTotal,
			ByStatus: copyCounts(a.errorsByStatus),
			ByTenant: copyCounts(a.errorsByTenant),
		},
		DroppedTenantBuckets: a.droppedTenants,
	}
}

func (l latencySum) avg() float64 {
	if l.count == 0 {
		return 0
	}
	return l.sum / float64(l.count)
}

func copyCounts(m map[string]int64) map[string]int64 {
	out := make(map[string]int64, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
