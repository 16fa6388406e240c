package health

import "context"

// DBPinger checks database availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// Clock supplies the report timestamp.
type Clock interface {
	Now() string
}
