package document

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/yujingwu/knwl-platform/internal/db"
	"github.com/yujingwu/knwl-platform/internal/db/sqlite"
	"github.com/yujingwu/knwl-platform/internal/domain"
	domdoc "github.com/yujingwu/knwl-platform/internal/domain/document"
)

const testTimestamp = "2024-01-02T03:04:05Z"

// seqClock issues ordered ids so tie-breaks are predictable.
type seqClock struct {
	mu sync.Mutex
	n  int
}

func (c *seqClock) NewID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.n++
	return fmt.Sprintf("doc-%04d", c.n)
}

func (c *seqClock) Now() string { return testTimestamp }

// mockStore implements the consumer interface for failure paths.
type mockStore struct {
	readFn  func(ctx context.Context, fn func(ctx context.Context, q db.Querier) error) error
	writeFn func(ctx context.Context, fn func(ctx context.Context, q db.Querier) error) error
}

func (m *mockStore) Read(ctx context.Context, fn func(ctx context.Context, q db.Querier) error) error {
	if m.readFn != nil {
		return m.readFn(ctx, fn)
	}
	return nil
}

func (m *mockStore) Write(ctx context.Context, fn func(ctx context.Context, q db.Querier) error) error {
	if m.writeFn != nil {
		return m.writeFn(ctx, fn)
	}
	return nil
}

func newTestRepo(t *testing.T) *Repo {
	t.Helper()
	s, err := sqlite.Open(context.Background(), sqlite.Config{
		Path: filepath.Join(t.TempDir(), "app.db"),
		WAL:  true,
	})
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return New(s, &seqClock{})
}

func mustInsert(t *testing.T, r *Repo, tenantID, title, content string, tags ...string) domdoc.IngestResult {
	t.Helper()
	draft, err := domdoc.NewDraft(title, content, tags, domain.DefaultLimits())
	if err != nil {
		t.Fatalf("NewDraft: %v", err)
	}
	res, err := r.Insert(context.Background(), tenantID, draft)
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	return res
}
