package stats

import (
	"context"

	"github.com/yujingwu/knwl-platform/internal/metrics"
)

// SnapshotSource provides request metrics.
type SnapshotSource interface {
	Snapshot() metrics.Snapshot
}

// DocumentCounter reports stored documents per tenant.
type DocumentCounter interface {
	CountsByTenant(ctx context.Context) (map[string]int, error)
}
