package article

import (
	"fmt"

	"github.com/yazarlar/articlekit/internal/domain"
)

// MaxContentSize is the maximum document content size in bytes.
const MaxContentSize = 1 << 20 // 1MB

// Document is an article handed to the core by the caller.
// Metadata (title, author, ...) is carried through untouched and never read.
type Document struct {
	id       string
	content  string
	metadata map[string]any
}

// New validates and creates a Document. Content may be empty: empty text is a
// degenerate input, not an error, for every operation that consumes documents.
func New(id, content string, metadata map[string]any) (Document, error) {
	if len(content) > MaxContentSize {
		return Document{}, fmt.Errorf("%w: content too large (max %d bytes)", domain.ErrInvalidDocument, MaxContentSize)
	}
	return Document{id: id, content: content, metadata: metadata}, nil
}

// Reconstruct creates a Document without validation.
func Reconstruct(id, content string, metadata map[string]any) Document {
	return Document{id: id, content: content, metadata: metadata}
}

// ID returns the caller-defined identifier.
func (d *Document) ID() string { return d.id }

// Content returns the text content.
func (d *Document) Content() string { return d.content }

// Metadata returns the caller metadata as it was supplied.
func (d *Document) Metadata() map[string]any { return d.metadata }
