package knwl

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/yujingwu/knwl-platform/internal/domain"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	path          string
	busyTimeoutMS int
	wal           bool

	limits domain.Limits

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

func defaultConfig() *clientConfig {
	return &clientConfig{
		path:          "./data/app.db",
		busyTimeoutMS: 5000,
		wal:           true,
		limits:        domain.DefaultLimits(),
	}
}

// WithPath sets the database file. ":memory:" keeps everything in memory.
func WithPath(path string) Option {
	return optionFunc(func(c *clientConfig) {
		c.path = path
	})
}

// WithBusyTimeout sets how long the engine waits on a locked database file.
func WithBusyTimeout(ms int) Option {
	return optionFunc(func(c *clientConfig) {
		c.busyTimeoutMS = ms
	})
}

// WithoutWAL keeps the rollback journal instead of write-ahead logging.
func WithoutWAL() Option {
	return optionFunc(func(c *clientConfig) {
		c.wal = false
	})
}

// WithLimits sets payload and paging bounds. Zero fields keep their defaults.
func WithLimits(l Limits) Option {
	return optionFunc(func(c *clientConfig) {
		if l.MaxTitleLen > 0 {
			c.limits.MaxTitleLen = l.MaxTitleLen
		}
		if l.MaxContentLen > 0 {
			c.limits.MaxContentLen = l.MaxContentLen
		}
		if l.MaxTags > 0 {
			c.limits.MaxTags = l.MaxTags
		}
		if l.DefaultPageSize > 0 {
			c.limits.DefaultPageSize = l.DefaultPageSize
		}
		if l.MaxPageSize > 0 {
			c.limits.MaxPageSize = l.MaxPageSize
		}
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
