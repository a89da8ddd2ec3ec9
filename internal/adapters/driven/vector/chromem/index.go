// Package chromem provides a local, file-backed vector index using
// chromem-go. It needs no external service and suits single-operator
// installs.
package chromem

import (
	"context"
	"fmt"
	"os"

	chromemgo "github.com/philippgille/chromem-go"

	"github.com/divami-labs/docpipe-cli/internal/core/ports/driven"
)

// Ensure Index implements the interface.
var _ driven.VectorIndex = (*Index)(nil)

// Config holds configuration for the local index.
type Config struct {
	// Path is the directory the database persists to (required).
	Path string

	// IndexName names the collection and labels embedding references.
	IndexName string

	// Compress gzips persisted records.
	Compress bool
}

// Index stores and queries vectors in a persistent chromem-go collection.
type Index struct {
	db         *chromemgo.DB
	collection *chromemgo.Collection
	name       string
}

// New opens (or creates) the database at cfg.Path.
func New(cfg Config) (*Index, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("chromem: path is required")
	}
	if cfg.IndexName == "" {
		return nil, fmt.Errorf("chromem: index name is required")
	}

	if err := os.MkdirAll(cfg.Path, 0o755); err != nil {
		return nil, fmt.Errorf("create index directory: %w", err)
	}

	db, err := chromemgo.NewPersistentDB(cfg.Path, cfg.Compress)
	if err != nil {
		return nil, fmt.Errorf("open chromem db: %w", err)
	}

	// Vectors are always supplied by the caller, so the embedding
	// function must never run.
	embeddingFunc := func(ctx context.Context, text string) ([]float32, error) {
		return nil, fmt.Errorf("chromem: no embedding function configured")
	}

	collection, err := db.GetOrCreateCollection(cfg.IndexName, nil, embeddingFunc)
	if err != nil {
		return nil, fmt.Errorf("open collection %s: %w", cfg.IndexName, err)
	}

	return &Index{db: db, collection: collection, name: cfg.IndexName}, nil
}

// Name returns the index name.
func (i *Index) Name() string {
	return i.name
}

// Upsert inserts or replaces the vector stored under docID.
func (i *Index) Upsert(ctx context.Context, docID string, vector []float32, metadata map[string]string) error {
	doc := chromemgo.Document{
		ID:        docID,
		Metadata:  metadata,
		Embedding: vector,
	}
	if err := i.collection.AddDocument(ctx, doc); err != nil {
		return fmt.Errorf("upsert %s: %w", docID, err)
	}
	return nil
}

// Query returns the topK most similar entries to the query vector.
func (i *Index) Query(ctx context.Context, vector []float32, topK int) ([]driven.VectorMatch, error) {
	// chromem rejects result counts above the collection size.
	if count := i.collection.Count(); topK > count {
		topK = count
	}
	if topK == 0 {
		return nil, nil
	}

	results, err := i.collection.QueryEmbedding(ctx, vector, topK, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}

	matches := make([]driven.VectorMatch, 0, len(results))
	for _, r := range results {
		matches = append(matches, driven.VectorMatch{
			DocumentID: r.ID,
			Score:      float64(r.Similarity),
			Metadata:   r.Metadata,
		})
	}
	return matches, nil
}

// Close releases resources. The database persists on every write, so
// there is nothing to flush.
func (i *Index) Close() error {
	return nil
}
