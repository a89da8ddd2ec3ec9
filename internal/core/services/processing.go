package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/divami-labs/docpipe-cli/internal/core/domain"
	"github.com/divami-labs/docpipe-cli/internal/core/ports/driven"
	"github.com/divami-labs/docpipe-cli/internal/core/ports/driving"
	"github.com/divami-labs/docpipe-cli/internal/logger"
)

// Ensure ProcessingService implements the interface.
var _ driving.ProcessingController = (*ProcessingService)(nil)

// ProcessingService advances Pending records through extraction,
// summarisation, embedding and indexing.
type ProcessingService struct {
	store      driven.MetadataStore
	connectors driven.ConnectorSet
	extractor  driven.TextExtractor
	summariser driven.Summariser
	embedder   driven.EmbeddingService
	index      driven.VectorIndex
	rawArchive driven.RawTextArchive
	snapshots  driven.SnapshotWriter
}

// NewProcessingService creates a processing service.
func NewProcessingService(
	store driven.MetadataStore,
	connectors driven.ConnectorSet,
	extractor driven.TextExtractor,
	summariser driven.Summariser,
	embedder driven.EmbeddingService,
	index driven.VectorIndex,
	rawArchive driven.RawTextArchive,
	snapshots driven.SnapshotWriter,
) *ProcessingService {
	return &ProcessingService{
		store:      store,
		connectors: connectors,
		extractor:  extractor,
		summariser: summariser,
		embedder:   embedder,
		index:      index,
		rawArchive: rawArchive,
		snapshots:  snapshots,
	}
}

// ProcessPending scans every record and advances the Pending ones. The
// status check is the only gate: records already Processed, Needs OCR or
// Error are skipped. Collaborator failures are converted into a status
// update on the affected record; metadata store failures abort the run.
func (s *ProcessingService) ProcessPending(ctx context.Context) (*driving.ProcessingReport, error) {
	ids, err := s.store.ListIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	sort.Strings(ids)

	report := &driving.ProcessingReport{}

	var pending []*domain.DocumentRecord
	for _, id := range ids {
		rec, err := s.store.Read(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("read record %s: %w", id, err)
		}
		report.Scanned++
		if rec.Status.IsPending() {
			pending = append(pending, rec)
		}
	}

	if len(pending) == 0 {
		logger.Info("Processing: no pending records")
		return report, nil
	}
	logger.Info("Processing: %d of %d records pending", len(pending), report.Scanned)

	// Raw bytes are not persisted at discovery, so each source with
	// pending records is enumerated once more and items are matched back
	// by filename.
	resolved := s.resolveSources(ctx, pending)

	for _, rec := range pending {
		if err := s.processRecord(ctx, rec, resolved, report); err != nil {
			return nil, err
		}
	}

	logger.Info("Processing done: %d processed, %d need OCR, %d failed",
		report.Processed, report.NeedsOCR, report.Failed)
	return report, nil
}

// resolveSources re-enumerates every source system that has pending
// records and returns the items keyed by system and filename. A failed
// enumeration leaves its system absent; its records then fail
// re-resolution individually.
func (s *ProcessingService) resolveSources(ctx context.Context, pending []*domain.DocumentRecord) map[domain.SourceSystem]map[string]domain.SourceItem {
	needed := make(map[domain.SourceSystem]bool)
	for _, rec := range pending {
		needed[rec.SourceSystem] = true
	}

	resolved := make(map[domain.SourceSystem]map[string]domain.SourceItem)
	for system := range needed {
		connector, ok := s.connectors[system]
		if !ok {
			logger.Warn("Processing: no connector configured for %s", system)
			continue
		}

		// The known set is deliberately empty: previously seen items
		// must be returned again to recover their bytes.
		items, err := connector.Enumerate(ctx, nil)
		if err != nil {
			logger.Error("Processing: enumerating %s failed: %v", system, err)
			continue
		}

		byName := make(map[string]domain.SourceItem, len(items))
		for _, item := range items {
			byName[item.Name] = item
		}
		resolved[system] = byName
	}
	return resolved
}

// processRecord advances one record through the pipeline. Only metadata
// store failures return an error; everything else becomes a status.
func (s *ProcessingService) processRecord(
	ctx context.Context,
	rec *domain.DocumentRecord,
	resolved map[domain.SourceSystem]map[string]domain.SourceItem,
	report *driving.ProcessingReport,
) error {
	item, ok := resolved[rec.SourceSystem][rec.OriginalFilename]
	if !ok {
		logger.Warn("Processing %s: no source item matches %q", rec.DocumentID, rec.OriginalFilename)
		return s.fail(ctx, rec, report, "cannot fetch bytes")
	}

	text := s.extractor.ExtractText(ctx, &item)
	if text == "" {
		logger.Info("Processing %s: no text extracted, needs OCR", rec.DocumentID)
		rec.Status = domain.NeedsOCR()
		if err := s.store.Upsert(ctx, rec.DocumentID, rec); err != nil {
			return fmt.Errorf("persist %s: %w", rec.DocumentID, err)
		}
		report.NeedsOCR++
		return nil
	}

	if err := s.rawArchive.WriteRawText(ctx, rec.DocumentID, text); err != nil {
		logger.Error("Processing %s: raw text archive failed: %v", rec.DocumentID, err)
		return s.fail(ctx, rec, report, "raw text archive write failed")
	}

	summary, err := s.summariser.Summarise(ctx, text)
	if err != nil {
		logger.Error("Processing %s: summarisation failed: %v", rec.DocumentID, err)
		return s.fail(ctx, rec, report, "summarisation failed")
	}

	// The summary is embedded, not the raw text.
	vector, err := s.embedder.Embed(ctx, summary)
	if err != nil {
		logger.Error("Processing %s: embedding failed: %v", rec.DocumentID, err)
		return s.fail(ctx, rec, report, "embedding failed")
	}

	reference := ""
	if len(vector) > 0 {
		if err := s.index.Upsert(ctx, rec.DocumentID, vector, indexMetadata(rec)); err != nil {
			logger.Error("Processing %s: index upsert failed: %v", rec.DocumentID, err)
			return s.fail(ctx, rec, report, "vector index upsert failed")
		}
		reference = s.index.Name() + "/" + rec.DocumentID
	} else {
		logger.Warn("Processing %s: empty embedding, skipping index upsert", rec.DocumentID)
	}

	rec.Status = domain.Processed()
	rec.IngestedAt = time.Now().UTC().Format(time.RFC3339)
	rec.Summary = summary
	rec.EmbeddingReference = reference
	if err := s.store.Upsert(ctx, rec.DocumentID, rec); err != nil {
		return fmt.Errorf("persist %s: %w", rec.DocumentID, err)
	}

	// The snapshot is a projection for downstream consumers; failing to
	// write it does not invalidate the processed record.
	if err := s.snapshots.WriteSnapshot(ctx, rec); err != nil {
		logger.Warn("Processing %s: snapshot export failed: %v", rec.DocumentID, err)
	}

	report.Processed++
	logger.Info("Processed %s: %s", rec.DocumentID, rec.OriginalFilename)
	return nil
}

// fail records a per-record error status and keeps the run going.
func (s *ProcessingService) fail(ctx context.Context, rec *domain.DocumentRecord, report *driving.ProcessingReport, reason string) error {
	rec.Status = domain.Errorf("%s", reason)
	if err := s.store.Upsert(ctx, rec.DocumentID, rec); err != nil {
		return fmt.Errorf("persist %s: %w", rec.DocumentID, err)
	}
	report.Failed++
	return nil
}

// indexMetadata is the record projection stored alongside the vector.
func indexMetadata(rec *domain.DocumentRecord) map[string]string {
	return map[string]string{
		"document_id":       rec.DocumentID,
		"source_system":     string(rec.SourceSystem),
		"original_filename": rec.OriginalFilename,
		"format":            rec.Format,
		"file_url":          rec.FileURL,
	}
}
