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

// Ensure RawTextArchive implements the interface.
var _ driven.RawTextArchive = (*RawTextArchive)(nil)

// RawTextArchive stores extracted text as <document_id>_raw.json under its
// own directory, one file per document. It is an audit trail independent
// of the metadata store and is never read back by the pipeline.
type RawTextArchive struct {
	dir string
}

// rawPayload is the persisted shape of one archive entry.
type rawPayload struct {
	DocumentID string `json:"document_id"`
	RawText    string `json:"raw_text"`
}

// NewRawTextArchive creates the archive, creating dir if needed.
func NewRawTextArchive(dir string) (*RawTextArchive, error) {
	if dir == "" {
		return nil, fmt.Errorf("%w: raw-text directory is required", domain.ErrInvalidInput)
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("%w: create raw-text dir: %v", domain.ErrStorage, err)
	}
	return &RawTextArchive{dir: dir}, nil
}

// WriteRawText stores the extracted text for a document.
func (a *RawTextArchive) WriteRawText(_ context.Context, docID, text string) error {
	data, err := json.MarshalIndent(rawPayload{DocumentID: docID, RawText: text}, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode raw text for %s: %v", domain.ErrStorage, docID, err)
	}

	path := filepath.Join(a.dir, docID+"_raw.json")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("%w: write raw text for %s: %v", domain.ErrStorage, docID, err)
	}
	return nil
}
