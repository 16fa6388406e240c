package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	_ "modernc.org/sqlite" // pure Go sqlite driver with FTS5

	"github.com/yujingwu/knwl-platform/internal/db"
)

// Compile-time check: Store implements db.Store.
var _ db.Store = (*Store)(nil)

// Config holds parameters for opening the database file.
type Config struct {
	Path          string
	BusyTimeoutMS int
	WAL           bool
}

// Store owns the single connection to the embedded engine and serializes
// every statement issued through it behind one mutex.
type Store struct {
	mu     sync.Mutex
	db     *sql.DB
	closed bool
}

// Open creates the parent directory if needed, opens the database, and applies
// pending schema migrations.
func Open(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("database path is required")
	}
	if !isMemory(cfg.Path) {
		if dir := filepath.Dir(cfg.Path); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o750); err != nil {
				return nil, &db.Error{Op: db.OpOpen, Err: err}
			}
		}
	}

	dsn := cfg.Path
	if !isMemory(dsn) && !strings.HasPrefix(dsn, "file:") {
		dsn = "file:" + dsn
	}
	dsn = EnsurePragmas(dsn, cfg.WAL, cfg.BusyTimeoutMS)

	sqldb, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, &db.Error{Op: db.OpOpen, Err: err}
	}
	// One long-lived connection; the pool must never open a second one.
	sqldb.SetMaxOpenConns(1)
	sqldb.SetMaxIdleConns(1)
	sqldb.SetConnMaxLifetime(0)
	sqldb.SetConnMaxIdleTime(0)

	if err := sqldb.PingContext(ctx); err != nil {
		_ = sqldb.Close()
		return nil, &db.Error{Op: db.OpOpen, Err: err}
	}
	if err := migrateUp(sqldb); err != nil {
		_ = sqldb.Close()
		return nil, &db.Error{Op: db.OpMigrate, Err: err}
	}

	return &Store{db: sqldb}, nil
}

// Ping checks that the connection is usable.
func (s *Store) Ping(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return &db.Error{Op: db.OpPing, Err: db.ErrClosed}
	}
	if err := s.db.PingContext(ctx); err != nil {
		return &db.Error{Op: db.OpPing, Err: err}
	}
	return nil
}

// Read runs fn against the connection while holding the lock.
// Caller cancellation is ignored once the operation is submitted.
func (s *Store) Read(ctx context.Context, fn func(ctx context.Context, q db.Querier) error) error {
	ctx = context.WithoutCancel(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return &db.Error{Op: db.OpRead, Err: db.ErrClosed}
	}
	return fn(ctx, s.db)
}

// Write runs fn inside one transaction while holding the lock. The transaction
// commits only if fn succeeds; otherwise every statement fn issued is rolled back.
func (s *Store) Write(ctx context.Context, fn func(ctx context.Context, q db.Querier) error) error {
	ctx = context.WithoutCancel(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return &db.Error{Op: db.OpWrite, Err: db.ErrClosed}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return &db.Error{Op: db.OpBegin, Err: err}
	}
	if err := fn(ctx, tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w (%w)", err, &db.Error{Op: db.OpRollback, Err: rbErr})
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return &db.Error{Op: db.OpCommit, Err: err}
	}
	return nil
}

// Close releases the connection. Calling Close more than once is a no-op.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	if err := s.db.Close(); err != nil {
		return &db.Error{Op: db.OpClose, Err: err}
	}
	return nil
}

func isMemory(path string) bool {
	lower := strings.ToLower(path)
	return path == ":memory:" || strings.HasPrefix(lower, "file::memory:")
}
