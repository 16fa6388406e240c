package stats

import (
	"context"
	"fmt"

	"github.com/yujingwu/knwl-platform/internal/metrics"
)

// Report is the operational metrics view: request metrics plus stored
// document counts per tenant.
type Report struct {
	metrics.Snapshot
	DocumentsByTenant map[string]int
}

// Service builds operational reports.
type Service struct {
	snapshots SnapshotSource
	documents DocumentCounter
}

// New creates a stats service.
func New(snapshots SnapshotSource, documents DocumentCounter) *Service {
	return &Service{snapshots: snapshots, documents: documents}
}

// Report combines the current request metrics with document counts.
func (s *Service) Report(ctx context.Context) (Report, error) {
	snap := s.snapshots.Snapshot()

	counts, err := s.documents.CountsByTenant(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("count documents by tenant: %w", err)
	}

	return Report{Snapshot: snap, DocumentsByTenant: counts}, nil
}
