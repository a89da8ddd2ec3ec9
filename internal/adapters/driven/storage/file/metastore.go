package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/divami-labs/docpipe-cli/internal/core/domain"
	"github.com/divami-labs/docpipe-cli/internal/core/ports/driven"
)

// Ensure MetadataStore implements the interface.
var _ driven.MetadataStore = (*MetadataStore)(nil)

const (
	recordExt = ".json"
	tmpExt    = ".json.tmp"
)

// MetadataStore persists one JSON file per document under dir.
// The file's base name is the document ID.
//
// Upsert writes to a temporary file in the same directory and renames it
// into place, so a concurrent reader observes either the fully-old or the
// fully-new record. ListIDs only reflects fully-written records because
// temporary files carry a different extension.
type MetadataStore struct {
	dir string
}

// NewMetadataStore creates the store, creating dir if needed.
func NewMetadataStore(dir string) (*MetadataStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("%w: metadata directory is required", domain.ErrInvalidInput)
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("%w: create metadata dir: %v", domain.ErrStorage, err)
	}
	return &MetadataStore{dir: dir}, nil
}

// Dir returns the directory backing the store.
func (s *MetadataStore) Dir() string { return s.dir }

// ListIDs returns all known document IDs.
func (s *MetadataStore) ListIDs(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("%w: list metadata dir: %v", domain.ErrStorage, err)
	}

	var ids []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasSuffix(name, tmpExt) || !strings.HasSuffix(name, recordExt) {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, recordExt))
	}
	return ids, nil
}

// Read retrieves the record for id, or domain.ErrNotFound.
func (s *MetadataStore) Read(_ context.Context, id string) (*domain.DocumentRecord, error) {
	data, err := os.ReadFile(s.recordPath(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: document %s", domain.ErrNotFound, id)
		}
		return nil, fmt.Errorf("%w: read %s: %v", domain.ErrStorage, id, err)
	}

	var rec domain.DocumentRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", domain.ErrStorage, id, err)
	}
	return &rec, nil
}

// Upsert writes the full record for id, replacing any prior value.
func (s *MetadataStore) Upsert(_ context.Context, id string, rec *domain.DocumentRecord) error {
	if id == "" || rec == nil {
		return fmt.Errorf("%w: upsert requires an id and a record", domain.ErrInvalidInput)
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode %s: %v", domain.ErrStorage, id, err)
	}

	tmp := filepath.Join(s.dir, id+tmpExt)
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("%w: write %s: %v", domain.ErrStorage, id, err)
	}
	if err := os.Rename(tmp, s.recordPath(id)); err != nil {
		return fmt.Errorf("%w: replace %s: %v", domain.ErrStorage, id, err)
	}
	return nil
}

func (s *MetadataStore) recordPath(id string) string {
	return filepath.Join(s.dir, id+recordExt)
}
