package document

import (
	"context"

	domdoc "github.com/yujingwu/knwl-platform/internal/domain/document"
)

// Repository defines the storage contract for documents.
type Repository interface {
	Insert(ctx context.Context, tenantID string, draft domdoc.Draft) (domdoc.IngestResult, error)
}
