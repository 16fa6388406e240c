package db

import (
	"context"
	"database/sql"
)

// Store is the storage engine handle: one connection, one serialization point.
type Store interface {
	Pinger
	Serializer
	Close() error
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Querier is satisfied by both *sql.DB and *sql.Tx.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Serializer runs one logical operation at a time against the connection.
// Write runs fn inside a transaction that is rolled back when fn fails.
type Serializer interface {
	Read(ctx context.Context, fn func(ctx context.Context, q Querier) error) error
	Write(ctx context.Context, fn func(ctx context.Context, q Querier) error) error
}
