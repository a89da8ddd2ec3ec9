package driven

import "context"

// VectorIndex stores document embeddings for similarity retrieval.
// Backed by Pinecone or a local chromem-go collection.
type VectorIndex interface {
	// Name returns the index name, used to build embedding references
	// of the form "<index-name>/<document_id>".
	Name() string

	// Upsert inserts or replaces the vector for a document, attaching
	// the given metadata.
	Upsert(ctx context.Context, docID string, vector []float32, metadata map[string]string) error

	// Query returns the topK most similar entries to the query vector.
	Query(ctx context.Context, vector []float32, topK int) ([]VectorMatch, error)

	// Close releases resources.
	Close() error
}

// VectorMatch is a single similarity search result.
type VectorMatch struct {
	// DocumentID is the matched document.
	DocumentID string

	// Score is the similarity score reported by the index.
	Score float64

	// Metadata is the metadata stored alongside the vector.
	Metadata map[string]string
}
