package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/divami-labs/docpipe-cli/internal/core/domain"
	"github.com/divami-labs/docpipe-cli/internal/core/ports/driven"
)

// Ensure SnapshotWriter implements the interface.
var _ driven.SnapshotWriter = (*SnapshotWriter)(nil)

// SnapshotWriter emits one denormalised JSON projection per processed
// document into an exports/ subdirectory of the metadata directory. The
// _export suffix and the subdirectory keep snapshots from ever colliding
// with the authoritative <document_id>.json records.
type SnapshotWriter struct {
	dir string
}

// snapshotPayload is the exported projection consumed downstream.
type snapshotPayload struct {
	DocumentID         string `json:"document_id"`
	SourceSystem       string `json:"source_system"`
	OriginalFilename   string `json:"original_filename"`
	Format             string `json:"format"`
	DateCreated        string `json:"date_created"`
	LastModified       string `json:"last_modified"`
	DateReceived       string `json:"date_received"`
	IngestedAt         string `json:"ingested_at"`
	Status             string `json:"status"`
	Summary            string `json:"summary"`
	EmbeddingReference string `json:"embedding_reference"`
	FileURL            string `json:"file_url"`
}

// NewSnapshotWriter creates the writer under metadataDir/exports.
func NewSnapshotWriter(metadataDir string) (*SnapshotWriter, error) {
	if metadataDir == "" {
		return nil, fmt.Errorf("%w: metadata directory is required", domain.ErrInvalidInput)
	}
	dir := filepath.Join(metadataDir, "exports")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("%w: create exports dir: %v", domain.ErrStorage, err)
	}
	return &SnapshotWriter{dir: dir}, nil
}

// WriteSnapshot exports the processed record.
func (w *SnapshotWriter) WriteSnapshot(_ context.Context, rec *domain.DocumentRecord) error {
	if rec == nil {
		return fmt.Errorf("%w: snapshot requires a record", domain.ErrInvalidInput)
	}

	payload := snapshotPayload{
		DocumentID:         rec.DocumentID,
		SourceSystem:       string(rec.SourceSystem),
		OriginalFilename:   rec.OriginalFilename,
		Format:             rec.Format,
		DateCreated:        rec.DateCreated,
		LastModified:       rec.LastModified,
		DateReceived:       rec.DateReceived,
		IngestedAt:         rec.IngestedAt,
		Status:             rec.Status.String(),
		Summary:            rec.Summary,
		EmbeddingReference: rec.EmbeddingReference,
		FileURL:            rec.FileURL,
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode snapshot for %s: %v", domain.ErrStorage, rec.DocumentID, err)
	}

	path := filepath.Join(w.dir, rec.DocumentID+"_export.json")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("%w: write snapshot for %s: %v", domain.ErrStorage, rec.DocumentID, err)
	}
	return nil
}
