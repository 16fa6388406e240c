package document

import (
	"errors"
	"strings"
	"testing"

	"github.com/yujingwu/knwl-platform/internal/domain"
)

func TestNewDraft_Valid(t *testing.T) {
	d, err := NewDraft("Doc One", "Hello world", []string{"b", "a"}, domain.DefaultLimits())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Title() != "Doc One" {
		t.Errorf("Title() = %q", d.Title())
	}
	if d.Content() != "Hello world" {
		t.Errorf("Content() = %q", d.Content())
	}
	if got := strings.Join(d.Tags(), ","); got != "b,a" {
		t.Errorf("Tags() = %q, want order preserved", got)
	}
}

func TestNewDraft_NilTags(t *testing.T) {
	d, err := NewDraft("t", "c", nil, domain.DefaultLimits())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Tags() == nil || len(d.Tags()) != 0 {
		t.Errorf("Tags() = %#v, want empty non-nil slice", d.Tags())
	}
}

func TestNewDraft_ClonesTags(t *testing.T) {
	tags := []string{"x"}
	d, _ := NewDraft("t", "c", tags, domain.DefaultLimits())

	tags[0] = "mutated"

	if d.Tags()[0] != "x" {
		t.Error("tag mutation leaked into draft")
	}
}

func TestNewDraft_Invalid(t *testing.T) {
	limits := domain.Limits{MaxTitleLen: 5, MaxContentLen: 10, MaxTags: 2}

	tests := []struct {
		name    string
		title   string
		content string
		tags    []string
		wantMsg string
	}{
		{"empty title", "", "c", nil, "title is required"},
		{"empty content", "t", "", nil, "content is required"},
		{"long title", "abcdef", "c", nil, "Title too long"},
		{"long content", "t", "01234567890", nil, "Content too long"},
		{"too many tags", "t", "c", []string{"a", "b", "c"}, "Too many tags"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewDraft(tc.title, tc.content, tc.tags, limits)
			if !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
			if !strings.Contains(err.Error(), tc.wantMsg) {
				t.Errorf("error %q does not mention %q", err.Error(), tc.wantMsg)
			}
		})
	}
}

func TestNewDraft_CountsCharactersNotBytes(t *testing.T) {
	limits := domain.Limits{MaxTitleLen: 3}

	if _, err := NewDraft("äöü", "c", nil, limits); err != nil {
		t.Fatalf("3 characters should fit MaxTitleLen=3: %v", err)
	}
}

func TestStamp(t *testing.T) {
	d, _ := NewDraft("t", "c", []string{"k"}, domain.DefaultLimits())
	doc := Stamp("t1", d, "id-1", "2024-01-01T00:00:00Z")

	if doc.TenantID() != "t1" || doc.ID() != "id-1" {
		t.Errorf("identity = (%q, %q)", doc.TenantID(), doc.ID())
	}
	if doc.CreatedAt() != doc.UpdatedAt() {
		t.Errorf("CreatedAt %q != UpdatedAt %q", doc.CreatedAt(), doc.UpdatedAt())
	}
	if doc.Title() != "t" || doc.Content() != "c" || doc.Tags()[0] != "k" {
		t.Errorf("payload not carried over: %+v", doc)
	}
}
