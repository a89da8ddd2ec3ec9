package driven

import (
	"context"

	"github.com/divami-labs/docpipe-cli/internal/core/domain"
)

// MetadataStore is a durable mapping from document ID to DocumentRecord.
// Backed by one JSON file per document on local disk.
//
// Writes must be atomic from an external reader's point of view: a reader
// observes either the fully-old or the fully-new record, never a partial
// write. I/O failures surface wrapped in domain.ErrStorage and are fatal
// for the run.
type MetadataStore interface {
	// ListIDs returns all known document IDs. Only fully-written records
	// are reflected; in-flight temporary files are invisible.
	ListIDs(ctx context.Context) ([]string, error)

	// Read retrieves the record for id.
	// Returns domain.ErrNotFound if no record exists.
	Read(ctx context.Context, id string) (*domain.DocumentRecord, error)

	// Upsert writes the full record for id, replacing any prior value.
	Upsert(ctx context.Context, id string, rec *domain.DocumentRecord) error
}
