package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/yujingwu/knwl-platform/internal/clock"
	"github.com/yujingwu/knwl-platform/internal/config"
	"github.com/yujingwu/knwl-platform/internal/db/sqlite"
	logpkg "github.com/yujingwu/knwl-platform/internal/logger"
	"github.com/yujingwu/knwl-platform/internal/metrics"
	documentrepo "github.com/yujingwu/knwl-platform/internal/repository/document"
	chiTransport "github.com/yujingwu/knwl-platform/internal/transport/chi"
	documentuc "github.com/yujingwu/knwl-platform/internal/usecase/document"
	healthuc "github.com/yujingwu/knwl-platform/internal/usecase/health"
	searchuc "github.com/yujingwu/knwl-platform/internal/usecase/search"
	statsuc "github.com/yujingwu/knwl-platform/internal/usecase/stats"
	"github.com/yujingwu/knwl-platform/internal/version"
)

func main() {
	// Registered first so it runs after every other deferred cleanup.
	exitCode := 0
	defer func() {
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	}()

	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting knwl API server",
		zap.String("version", version.String()),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("db_path", cfg.Database.Path),
		zap.Int("api_keys", len(cfg.Auth.APIKeys)),
	)
	if len(cfg.Auth.APIKeys) == 0 {
		logger.Warn("No API keys configured; every tenant request will be rejected")
	}

	// One storage handle for the process lifetime
	ctx := context.Background()
	store, err := sqlite.Open(ctx, sqlite.Config{
		Path:          cfg.Database.Path,
		BusyTimeoutMS: cfg.Database.BusyTimeoutMS,
		WAL:           cfg.Database.WALEnabled(),
	})
	if err != nil {
		logger.Fatal("Failed to open database", zap.Error(err))
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("Failed to close database", zap.Error(err))
		}
	}()
	logger.Info("Database ready", zap.String("path", cfg.Database.Path))

	limits := cfg.Limits.Domain()
	clk := clock.System{}
	agg := metrics.NewAggregator(cfg.Metrics.MaxTenants)

	docRepo := documentrepo.New(store, clk)
	prometheus.MustRegister(metrics.NewDocumentsCollector(docRepo, logger))

	docSvc := documentuc.New(docRepo).WithLimits(limits)
	searchSvc := searchuc.New(docRepo).WithPagination(limits.DefaultPageSize, limits.MaxPageSize)
	healthSvc := healthuc.New(store, clk)
	statsSvc := statsuc.New(agg, docRepo)

	server := chiTransport.NewServer(docSvc, searchSvc, healthSvc, statsSvc, logger).
		WithMaxBodySize(cfg.HTTP.MaxBodyBytes())
	auth := chiTransport.TenantAuthMiddleware(chiTransport.NewAuthorizer(cfg.Auth.APIKeys))

	r := chi.NewRouter()
	r.Use(chiTransport.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(metrics.Observe(agg))
	// Inside Observe so recovered panics are recorded as 500s.
	r.Use(jsonRecoverer(logger))
	server.Register(r, auth)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadTimeout:       time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		ReadHeaderTimeout: time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout:      time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	if err := serve(srv, quit, time.Duration(cfg.HTTP.ShutdownSec)*time.Second, logger); err != nil {
		logger.Error("HTTP server error", zap.Error(err))
		exitCode = 1
		return
	}

	logger.Info("Server stopped gracefully")
}

// serve runs srv until it fails or a signal arrives on quit, then drains it
// within shutdownTimeout. A listener failure is returned to the caller.
func serve(srv *http.Server, quit <-chan os.Signal, shutdownTimeout time.Duration, logger *zap.Logger) error {
	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("listen: %w", err)
	case <-quit:
		logger.Info("Received shutdown signal")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}
	return nil
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					if rvr == http.ErrAbortHandler {
						panic(rvr)
					}
					logger.Error("panic recovered",
						zap.String("request_id", chiMiddleware.GetReqID(r.Context())),
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(chiTransport.ErrorResponse{Detail: "Internal Server Error"})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)
			ctx, extra := logpkg.ContextWithFields(ctx)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line, one per request
			fields := append([]zap.Field{
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Float64("latency_ms", float64(time.Since(start))/float64(time.Millisecond)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			}, extra.List()...)
			reqLogger.Info("http_request", fields...)
		})
	}
}
