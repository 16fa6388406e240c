package db

import "errors"

// ErrClosed is returned by operations on a closed store.
var ErrClosed = errors.New("db: store closed")

// Op names the storage step that failed.
const (
	OpOpen     = "open"
	OpPing     = "ping"
	OpMigrate  = "migrate"
	OpBegin    = "begin"
	OpCommit   = "commit"
	OpRollback = "rollback"
	OpRead     = "read"
	OpWrite    = "write"
	OpClose    = "close"
)

// Error wraps an underlying error with the operation name for diagnostics.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }
