package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/divami-labs/docpipe-cli/internal/core/domain"
	"github.com/divami-labs/docpipe-cli/internal/core/ports/driven"
	"github.com/divami-labs/docpipe-cli/internal/core/ports/driving"
)

// Ensure DocumentService implements the interface.
var _ driving.DocumentReader = (*DocumentService)(nil)

// DocumentService is the operator-facing read surface over the store.
type DocumentService struct {
	store      driven.MetadataStore
	connectors driven.ConnectorSet
}

// NewDocumentService creates a document service.
func NewDocumentService(store driven.MetadataStore, connectors driven.ConnectorSet) *DocumentService {
	return &DocumentService{store: store, connectors: connectors}
}

// List returns all known records sorted by document ID.
func (s *DocumentService) List(ctx context.Context) ([]domain.DocumentRecord, error) {
	ids, err := s.store.ListIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	sort.Strings(ids)

	records := make([]domain.DocumentRecord, 0, len(ids))
	for _, id := range ids {
		rec, err := s.store.Read(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("read record %s: %w", id, err)
		}
		records = append(records, *rec)
	}
	return records, nil
}

// URL returns the source URL recorded for a document.
func (s *DocumentService) URL(ctx context.Context, docID string) (string, error) {
	rec, err := s.store.Read(ctx, docID)
	if err != nil {
		return "", err
	}
	if rec.FileURL == "" {
		return "", fmt.Errorf("%w: no URL recorded for %s", domain.ErrNotFound, docID)
	}
	return rec.FileURL, nil
}

// Download re-resolves a document's original bytes through its source
// connector, matching by original filename, and returns them with the
// filename.
func (s *DocumentService) Download(ctx context.Context, docID string) ([]byte, string, error) {
	rec, err := s.store.Read(ctx, docID)
	if err != nil {
		return nil, "", err
	}

	connector, ok := s.connectors[rec.SourceSystem]
	if !ok {
		return nil, "", fmt.Errorf("%w: no connector configured for %s", domain.ErrInvalidInput, rec.SourceSystem)
	}

	items, err := connector.Enumerate(ctx, nil)
	if err != nil {
		return nil, "", fmt.Errorf("enumerate %s: %w", rec.SourceSystem, err)
	}

	for _, item := range items {
		if item.Name == rec.OriginalFilename {
			return item.Content, item.Name, nil
		}
	}
	return nil, "", fmt.Errorf("%w: no source item matches %q", domain.ErrNotFound, rec.OriginalFilename)
}
