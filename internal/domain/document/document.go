package document

import (
	"fmt"
	"slices"
	"unicode/utf8"

	"github.com/yujingwu/knwl-platform/internal/domain"
)

// Draft is a validated document payload that has not been stored yet.
type Draft struct {
	title   string
	content string
	tags    []string
}

// NewDraft validates a payload against limits.
// Title and content must be non-empty; lengths are counted in characters.
func NewDraft(title, content string, tags []string, limits domain.Limits) (Draft, error) {
	if title == "" {
		return Draft{}, fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if content == "" {
		return Draft{}, fmt.Errorf("%w: content is required", domain.ErrValidation)
	}
	if limits.MaxTitleLen > 0 && utf8.RuneCountInString(title) > limits.MaxTitleLen {
		return Draft{}, fmt.Errorf("%w: Title too long", domain.ErrValidation)
	}
	if limits.MaxContentLen > 0 && utf8.RuneCountInString(content) > limits.MaxContentLen {
		return Draft{}, fmt.Errorf("%w: Content too long", domain.ErrValidation)
	}
	if limits.MaxTags > 0 && len(tags) > limits.MaxTags {
		return Draft{}, fmt.Errorf("%w: Too many tags", domain.ErrValidation)
	}
	if tags == nil {
		tags = []string{}
	}
	return Draft{title: title, content: content, tags: slices.Clone(tags)}, nil
}

// Title returns the document title.
func (d *Draft) Title() string { return d.title }

// Content returns the document body.
func (d *Draft) Content() string { return d.content }

// Tags returns the tags in submission order.
func (d *Draft) Tags() []string { return d.tags }

// Document is a stored document.
type Document struct {
	tenantID  string
	id        string
	title     string
	content   string
	tags      []string
	createdAt string
	updatedAt string
}

// Stamp turns a draft into a Document owned by tenantID. A new document has
// updatedAt equal to createdAt.
func Stamp(tenantID string, d Draft, id, createdAt string) Document {
	return Document{
		tenantID:  tenantID,
		id:        id,
		title:     d.title,
		content:   d.content,
		tags:      d.tags,
		createdAt: createdAt,
		updatedAt: createdAt,
	}
}

// TenantID returns the owning tenant.
func (d *Document) TenantID() string { return d.tenantID }

// ID returns the document identifier.
func (d *Document) ID() string { return d.id }

// Title returns the document title.
func (d *Document) Title() string { return d.title }

// Content returns the document body.
func (d *Document) Content() string { return d.content }

// Tags returns the ordered tag list.
func (d *Document) Tags() []string { return d.tags }

// CreatedAt returns the creation timestamp.
func (d *Document) CreatedAt() string { return d.createdAt }

// UpdatedAt returns the last modification timestamp.
func (d *Document) UpdatedAt() string { return d.updatedAt }

// IngestResult is returned to the caller after a successful insert.
type IngestResult struct {
	DocumentID string
	TenantID   string
	CreatedAt  string
}
