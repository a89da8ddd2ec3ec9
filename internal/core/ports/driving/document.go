package driving

import (
	"context"

	"github.com/divami-labs/docpipe-cli/internal/core/domain"
)

// DocumentReader is the operator-facing read surface over the store.
type DocumentReader interface {
	// List returns all known records sorted by document ID.
	List(ctx context.Context) ([]domain.DocumentRecord, error)

	// URL returns the source URL recorded for a document.
	// Returns domain.ErrNotFound when no URL was recorded.
	URL(ctx context.Context, docID string) (string, error)

	// Download re-resolves a document's original bytes through its source
	// connector and returns them with the original filename.
	Download(ctx context.Context, docID string) ([]byte, string, error)
}
