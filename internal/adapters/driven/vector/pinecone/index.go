// Package pinecone provides a vector index adapter backed by the Pinecone
// REST API.
package pinecone

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/divami-labs/docpipe-cli/internal/core/ports/driven"
)

// Ensure Index implements the interface.
var _ driven.VectorIndex = (*Index)(nil)

// DefaultTimeout bounds individual API calls.
const DefaultTimeout = 30 * time.Second

// Config holds configuration for the Pinecone index.
type Config struct {
	// Host is the index endpoint, e.g. "my-index-abc123.svc.us-east-1.pinecone.io".
	Host string

	// APIKey authenticates requests (required).
	APIKey string

	// IndexName labels the index in embedding references.
	IndexName string

	// Timeout is the per-request timeout (default: 30s).
	Timeout time.Duration
}

// Index stores and queries vectors in a Pinecone index.
type Index struct {
	client  *http.Client
	baseURL string
	apiKey  string
	name    string
}

type upsertRequest struct {
	Vectors []pineconeVector `json:"vectors"`
}

type pineconeVector struct {
	ID       string            `json:"id"`
	Values   []float32         `json:"values"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

type queryRequest struct {
	Vector          []float32 `json:"vector"`
	TopK            int       `json:"topK"`
	IncludeMetadata bool      `json:"includeMetadata"`
}

type queryResponse struct {
	Matches []struct {
		ID       string            `json:"id"`
		Score    float64           `json:"score"`
		Metadata map[string]string `json:"metadata"`
	} `json:"matches"`
}

// New creates a Pinecone index client.
func New(cfg Config) (*Index, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("pinecone: host is required")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("pinecone: API key is required")
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	baseURL := cfg.Host
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		baseURL = "https://" + baseURL
	}
	baseURL = strings.TrimSuffix(baseURL, "/")

	return &Index{
		client:  &http.Client{Timeout: cfg.Timeout},
		baseURL: baseURL,
		apiKey:  cfg.APIKey,
		name:    cfg.IndexName,
	}, nil
}

// Name returns the index name.
func (i *Index) Name() string {
	return i.name
}

// Upsert inserts or replaces the vector stored under docID.
func (i *Index) Upsert(ctx context.Context, docID string, vector []float32, metadata map[string]string) error {
	req := upsertRequest{
		Vectors: []pineconeVector{{
			ID:       docID,
			Values:   vector,
			Metadata: metadata,
		}},
	}
	return i.post(ctx, "/vectors/upsert", req, nil)
}

// Query returns the topK most similar entries to the query vector.
func (i *Index) Query(ctx context.Context, vector []float32, topK int) ([]driven.VectorMatch, error) {
	req := queryRequest{
		Vector:          vector,
		TopK:            topK,
		IncludeMetadata: true,
	}

	var resp queryResponse
	if err := i.post(ctx, "/query", req, &resp); err != nil {
		return nil, err
	}

	matches := make([]driven.VectorMatch, 0, len(resp.Matches))
	for _, m := range resp.Matches {
		matches = append(matches, driven.VectorMatch{
			DocumentID: m.ID,
			Score:      m.Score,
			Metadata:   m.Metadata,
		})
	}
	return matches, nil
}

// Close releases resources.
func (i *Index) Close() error {
	i.client.CloseIdleConnections()
	return nil
}

func (i *Index) post(ctx context.Context, path string, payload, out any) error {
	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, i.baseURL+path, bytes.NewReader(jsonBody))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Api-Key", i.apiKey)

	resp, err := i.client.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("pinecone error (status %d): %s", resp.StatusCode, string(body))
	}

	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
