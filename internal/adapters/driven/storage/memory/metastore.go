// Package memory provides in-memory storage adapters used in tests.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/divami-labs/docpipe-cli/internal/core/domain"
	"github.com/divami-labs/docpipe-cli/internal/core/ports/driven"
)

// Ensure MetadataStore implements the interface.
var _ driven.MetadataStore = (*MetadataStore)(nil)

// MetadataStore is an in-memory implementation of driven.MetadataStore.
type MetadataStore struct {
	mu      sync.RWMutex
	records map[string]domain.DocumentRecord
}

// NewMetadataStore creates a new in-memory metadata store.
func NewMetadataStore() *MetadataStore {
	return &MetadataStore{records: make(map[string]domain.DocumentRecord)}
}

// ListIDs returns all known document IDs.
func (s *MetadataStore) ListIDs(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.records))
	for id := range s.records {
		ids = append(ids, id)
	}
	return ids, nil
}

// Read retrieves the record for id, or domain.ErrNotFound.
func (s *MetadataStore) Read(_ context.Context, id string) (*domain.DocumentRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[id]
	if !ok {
		return nil, fmt.Errorf("%w: document %s", domain.ErrNotFound, id)
	}
	return &rec, nil
}

// Upsert writes the full record for id, replacing any prior value.
func (s *MetadataStore) Upsert(_ context.Context, id string, rec *domain.DocumentRecord) error {
	if id == "" || rec == nil {
		return fmt.Errorf("%w: upsert requires an id and a record", domain.ErrInvalidInput)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[id] = *rec
	return nil
}
