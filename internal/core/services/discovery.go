package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/divami-labs/docpipe-cli/internal/core/domain"
	"github.com/divami-labs/docpipe-cli/internal/core/ports/driven"
	"github.com/divami-labs/docpipe-cli/internal/core/ports/driving"
	"github.com/divami-labs/docpipe-cli/internal/logger"
)

// Ensure DiscoveryService implements the interface.
var _ driving.DiscoveryController = (*DiscoveryService)(nil)

// DiscoveryService registers newly found source items as Pending records.
type DiscoveryService struct {
	store      driven.MetadataStore
	connectors driven.ConnectorSet
	idPrefix   string
}

// NewDiscoveryService creates a discovery service. An empty idPrefix
// falls back to the default.
func NewDiscoveryService(store driven.MetadataStore, connectors driven.ConnectorSet, idPrefix string) *DiscoveryService {
	if idPrefix == "" {
		idPrefix = domain.DefaultIDPrefix
	}
	return &DiscoveryService{
		store:      store,
		connectors: connectors,
		idPrefix:   idPrefix,
	}
}

// Discover enumerates every configured connector and registers each item
// not yet represented in the store. Rerunning with unchanged sources
// produces zero new records. A failure enumerating one connector is
// reported but does not abort the others.
func (s *DiscoveryService) Discover(ctx context.Context) (*driving.DiscoveryReport, error) {
	report := &driving.DiscoveryReport{
		RunID:        uuid.NewString(),
		SourceErrors: make(map[domain.SourceSystem]error),
	}

	knownDocIDs, knownSourceIDs, err := s.loadKnownSets(ctx)
	if err != nil {
		return nil, err
	}

	logger.Info("Discovery run %s: %d records known", report.RunID, len(knownDocIDs))

	for system, connector := range s.connectors {
		items, err := connector.Enumerate(ctx, knownSourceIDs)
		if err != nil {
			logger.Error("Discovery: enumerating %s failed: %v", system, err)
			report.SourceErrors[system] = err
			continue
		}

		for _, item := range items {
			// Connectors are expected to honour the known set, but the
			// controller re-filters defensively.
			if _, seen := knownSourceIDs[item.ID]; seen {
				continue
			}

			docID := domain.NextDocumentID(s.idPrefix, knownDocIDs)
			rec := newPendingRecord(docID, item)

			if err := s.store.Upsert(ctx, docID, rec); err != nil {
				// Recoverable by re-running discovery; skip this item only.
				logger.Error("Discovery: persisting %s (%s) failed: %v", docID, item.Name, err)
				continue
			}

			knownDocIDs[docID] = struct{}{}
			knownSourceIDs[item.ID] = struct{}{}

			report.Discovered = append(report.Discovered, driving.DiscoveredDocument{
				DocumentID:       docID,
				SourceID:         item.ID,
				SourceSystem:     item.SourceSystem,
				OriginalFilename: item.Name,
			})
			logger.Info("Discovered %s: %s (%s)", docID, item.Name, item.SourceSystem)
		}
	}

	if len(report.Discovered) == 0 {
		logger.Info("Discovery run %s: no new items", report.RunID)
	} else {
		logger.Info("Discovery run %s: %d new items", report.RunID, len(report.Discovered))
	}
	return report, nil
}

// loadKnownSets reads every record and builds the known document-ID and
// source-ID sets. Records lacking a source ID are skipped for dedup but
// still occupy their document ID.
func (s *DiscoveryService) loadKnownSets(ctx context.Context) (docIDs, sourceIDs map[string]struct{}, err error) {
	ids, err := s.store.ListIDs(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("list records: %w", err)
	}

	docIDs = make(map[string]struct{}, len(ids))
	sourceIDs = make(map[string]struct{}, len(ids))
	for _, id := range ids {
		docIDs[id] = struct{}{}

		rec, err := s.store.Read(ctx, id)
		if err != nil {
			return nil, nil, fmt.Errorf("read record %s: %w", id, err)
		}
		if rec.SourceID != "" {
			sourceIDs[rec.SourceID] = struct{}{}
		}
	}
	return docIDs, sourceIDs, nil
}

// newPendingRecord builds the initial record for a discovered item. All
// NLP-derived fields stay empty until processing.
func newPendingRecord(docID string, item domain.SourceItem) *domain.DocumentRecord {
	return &domain.DocumentRecord{
		DocumentID:       docID,
		SourceID:         item.ID,
		SourceSystem:     item.SourceSystem,
		OriginalFilename: item.Name,
		Format:           domain.FormatFromFilename(item.Name),
		DateCreated:      item.DateCreated,
		LastModified:     item.LastModified,
		DateReceived:     time.Now().UTC().Format(time.RFC3339),
		Status:           domain.Pending(),
		FileURL:          item.URL,
		MIMEType:         item.MIMEType,
	}
}
