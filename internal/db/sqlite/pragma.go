package sqlite

import (
	"fmt"
	"strings"
)

// EnsurePragmas appends SQLite pragmas to the DSN when missing.
// Journal mode is left alone for in-memory databases.
func EnsurePragmas(dsn string, wal bool, busyTimeoutMS int) string {
	if dsn == "" {
		return dsn
	}
	lower := strings.ToLower(dsn)
	inMemory := dsn == ":memory:" || strings.HasPrefix(lower, "file::memory:") ||
		strings.Contains(lower, "mode=memory")
	if wal && !inMemory && !strings.Contains(lower, "_pragma=journal_mode") {
		dsn = addParam(dsn, "_pragma=journal_mode(WAL)")
	}
	if busyTimeoutMS > 0 && !strings.Contains(lower, "_pragma=busy_timeout") {
		dsn = addParam(dsn, fmt.Sprintf("_pragma=busy_timeout(%d)", busyTimeoutMS))
	}
	if !strings.Contains(lower, "_txlock=") {
		// Writers take the RESERVED lock up front instead of upgrading mid-transaction.
		dsn = addParam(dsn, "_txlock=immediate")
	}
	return dsn
}

func addParam(dsn, param string) string {
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + param
}
