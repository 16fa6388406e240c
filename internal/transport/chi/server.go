package chi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/oapi-codegen/runtime"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/yujingwu/knwl-platform/internal/domain"
	domdoc "github.com/yujingwu/knwl-platform/internal/domain/document"
	"github.com/yujingwu/knwl-platform/internal/domain/search/result"
	"github.com/yujingwu/knwl-platform/internal/metrics"
	healthuc "github.com/yujingwu/knwl-platform/internal/usecase/health"
	searchuc "github.com/yujingwu/knwl-platform/internal/usecase/search"
	statsuc "github.com/yujingwu/knwl-platform/internal/usecase/stats"
)

// DefaultMaxBodySize bounds request bodies when no limit is configured.
const DefaultMaxBodySize int64 = 1 << 20

// Client-facing error details.
const (
	detailInvalidRequest = "Invalid request"
	detailInvalidQuery   = "Invalid query"
	detailInvalidAPIKey  = "Invalid API key"
	detailForbidden      = "Tenant not authorized"
	detailBodyTooLarge   = "Request body too large"
	detailNotFound       = "Not Found"
	detailMethod         = "Method Not Allowed"
	detailInternal       = "Internal Server Error"
)

// DocumentIngester stores documents for a tenant.
type DocumentIngester interface {
	Ingest(ctx context.Context, tenantID, title, content string, tags []string) (domdoc.IngestResult, error)
}

// Searcher runs paged tenant searches.
type Searcher interface {
	Search(ctx context.Context, tenantID string, p searchuc.Params) (result.Page, error)
}

// HealthChecker reports service health.
type HealthChecker interface {
	Check(ctx context.Context) healthuc.Report
}

// StatsReporter builds the operational metrics report.
type StatsReporter interface {
	Report(ctx context.Context) (statsuc.Report, error)
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

// Server serves the HTTP API.
type Server struct {
	documents     DocumentIngester
	search        Searcher
	health        HealthChecker
	stats         StatsReporter
	logger        *zap.Logger
	maxBodySize   int64
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	documents DocumentIngester,
	search Searcher,
	health HealthChecker,
	stats StatsReporter,
	logger *zap.Logger,
) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		documents:   documents,
		search:      search,
		health:      health,
		stats:       stats,
		logger:      logger,
		maxBodySize: DefaultMaxBodySize,
	}
	s.errorHandlers = []errorHandler{
		bodyTooLargeHandler,
		validationHandler,
		sentinelHandler(domain.ErrInvalidQuery, http.StatusBadRequest, detailInvalidQuery),
		sentinelHandler(domain.ErrUnauthorized, http.StatusUnauthorized, detailInvalidAPIKey),
		sentinelHandler(domain.ErrForbidden, http.StatusForbidden, detailForbidden),
	}
	return s
}

// WithMaxBodySize limits request bodies to n bytes. Non-positive values are ignored.
func (s *Server) WithMaxBodySize(n int64) *Server {
	if n > 0 {
		s.maxBodySize = n
	}
	return s
}

// Register mounts all routes on r. auth guards the tenant-scoped routes.
func (s *Server) Register(r chi.Router, auth func(http.Handler) http.Handler) {
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, detailNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, detailMethod)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", s.HealthCheck)
		r.Get("/metrics", s.MetricsReport)

		r.Route("/tenants/{"+metrics.TenantParam+"}/documents", func(r chi.Router) {
			if auth != nil {
				r.Use(auth)
			}
			r.Post("/", s.IngestDocument)
			r.Get("/search", s.SearchDocuments)
		})
	})
	r.Get("/metrics", s.Metrics)
}

// IngestDocument handles POST /api/v1/tenants/{tenantId}/documents.
func (s *Server) IngestDocument(w http.ResponseWriter, r *http.Request) {
	tenantID := chi.URLParam(r, metrics.TenantParam)

	var req DocumentRequest
	body := http.MaxBytesReader(w, r.Body, s.maxBodySize)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		s.handleDomainError(w, r, fmt.Errorf("%w: decode body: %w", domain.ErrValidation, err))
		return
	}
	if req.Title == nil || req.Content == nil || req.Tags == nil {
		writeError(w, http.StatusBadRequest, detailInvalidRequest)
		return
	}

	res, err := s.documents.Ingest(r.Context(), tenantID, *req.Title, *req.Content, *req.Tags)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, ingestToResponse(res))
}

// SearchDocuments handles GET /api/v1/tenants/{tenantId}/documents/search.
func (s *Server) SearchDocuments(w http.ResponseWriter, r *http.Request) {
	tenantID := chi.URLParam(r, metrics.TenantParam)
	query := r.URL.Query()

	p := searchuc.Params{Query: query.Get("q")}
	if !query.Has("q") {
		writeError(w, http.StatusBadRequest, detailInvalidRequest)
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "limit", query, &p.Limit); err != nil {
		writeError(w, http.StatusBadRequest, detailInvalidRequest)
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "offset", query, &p.Offset); err != nil {
		writeError(w, http.StatusBadRequest, detailInvalidRequest)
		return
	}

	page, err := s.search.Search(r.Context(), tenantID, p)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, pageToResponse(page))
}

// HealthCheck handles GET /api/v1/health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, healthToResponse(report))
}

// MetricsReport handles GET /api/v1/metrics.
func (s *Server) MetricsReport(w http.ResponseWriter, r *http.Request) {
	report, err := s.stats.Report(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, statsToResponse(report))
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, ErrorResponse{Detail: detail})
}

// validationDetail returns the client-facing part of a validation error:
// the text following the innermost ErrValidation prefix.
func validationDetail(err error) string {
	prefix := domain.ErrValidation.Error() + ": "
	msg := err.Error()
	i := strings.LastIndex(msg, prefix)
	if i < 0 {
		return detailInvalidRequest
	}
	detail := msg[i+len(prefix):]
	if strings.HasPrefix(detail, "decode body") {
		return detailInvalidRequest
	}
	return detail
}

func validationHandler(w http.ResponseWriter, err error) bool {
	if !errors.Is(err, domain.ErrValidation) {
		return false
	}
	writeError(w, http.StatusBadRequest, validationDetail(err))
	return true
}

func bodyTooLargeHandler(w http.ResponseWriter, err error) bool {
	var mbe *http.MaxBytesError
	if !errors.As(err, &mbe) {
		return false
	}
	writeError(w, http.StatusRequestEntityTooLarge, detailBodyTooLarge)
	return true
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, detail string) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, detail)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := s.logger.With(zap.String("request_id", chiMiddleware.GetReqID(r.Context())))
	for _, h := range s.errorHandlers {
		if h(w, err) {
			log.Debug("request rejected", zap.Error(err))
			return
		}
	}
	// Engine diagnostics stay in the log.
	log.Error("internal error", zap.String("path", r.URL.Path), zap.Error(err))
	writeError(w, http.StatusInternalServerError, detailInternal)
}
