package driven

import (
	"context"

	"github.com/divami-labs/docpipe-cli/internal/core/domain"
)

// RawTextArchive is the append-only audit trail of extracted text, one
// file per document, independent of the metadata store.
type RawTextArchive interface {
	// WriteRawText stores the extracted text for a document.
	WriteRawText(ctx context.Context, docID, text string) error
}

// SnapshotWriter emits a denormalised read-only projection of a processed
// record for downstream consumers. Snapshots are never read back by the
// pipeline; the metadata store stays authoritative.
type SnapshotWriter interface {
	// WriteSnapshot exports the processed record.
	WriteSnapshot(ctx context.Context, rec *domain.DocumentRecord) error
}
