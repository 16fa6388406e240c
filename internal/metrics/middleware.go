package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
)

// TenantParam is the route parameter carrying the tenant identifier.
const TenantParam = "tenantId"

var (
	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "knwl",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)

	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "knwl",
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)
)

func init() {
	prometheus.MustRegister(httpRequestDuration)
	prometheus.MustRegister(httpRequestsTotal)
}

// Recorder receives one observation per completed request.
type Recorder interface {
	RecordRequest(endpoint, tenantID string, status int, latencyMs float64)
}

// Observe records every request into rec and into the Prometheus HTTP metrics.
// It must wrap the panic recoverer so that recovered panics are observed as 500s.
func Observe(rec Recorder) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			ww := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(ww, r)

			elapsed := time.Since(start)
			status := strconv.Itoa(ww.status)

			// Use chi route pattern for path normalization
			var routePattern, tenantID string
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				routePattern = rctx.RoutePattern()
				tenantID = rctx.URLParam(TenantParam)
			}
			path := normalizePath(routePattern)

			httpRequestDuration.WithLabelValues(r.Method, path, status).Observe(elapsed.Seconds())
			httpRequestsTotal.WithLabelValues(r.Method, path, status).Inc()

			if rec != nil {
				rec.RecordRequest(EndpointLabel(r.Method, routePattern, r.URL.Path), tenantID, ww.status, float64(elapsed)/float64(time.Millisecond))
			}
		})
	}
}

// EndpointLabel returns "<METHOD> <route pattern>", falling back to the raw
// path when no route matched.
func EndpointLabel(method, routePattern, rawPath string) string {
	if routePattern == "" {
		return method + " " + rawPath
	}
	return method + " " + routePattern
}

// normalizePath normalizes paths to prevent high cardinality in metrics labels.
func normalizePath(path string) string {
	if path == "" {
		return "unknown"
	}
	return path
}

// statusWriter captures the response status code.
type statusWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (w *statusWriter) WriteHeader(status int) {
	if !w.wroteHeader {
		w.status = status
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(status)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.wroteHeader = true
	}
	return w.ResponseWriter.Write(b) //nolint:wrapcheck // delegating to underlying ResponseWriter
}

// Unwrap exposes the underlying writer to http.ResponseController.
func (w *statusWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
