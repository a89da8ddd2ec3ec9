package driven

import (
	"context"

	"github.com/divami-labs/docpipe-cli/internal/core/domain"
)

// Connector enumerates items in one source system and returns their raw
// bytes plus minimal metadata. One implementation exists per source
// (Google Drive, Notion).
//
// Enumerate receives the set of already-known source IDs so the connector
// can skip fetching bytes for previously seen items. Honouring the set is
// an optimisation, not a guarantee: the discovery controller re-filters
// defensively. An empty result is not an error. Transient upstream
// failures (rate limiting, server errors) are retried internally where
// the source supports it and surfaced to the caller once retries are
// exhausted.
type Connector interface {
	// System identifies this connector's source system.
	System() domain.SourceSystem

	// Enumerate returns every reachable item whose source ID is not in known.
	Enumerate(ctx context.Context, known map[string]struct{}) ([]domain.SourceItem, error)
}

// ConnectorSet maps each configured source system to its connector.
// Connectors are independent: a failure in one must not block the others.
type ConnectorSet map[domain.SourceSystem]Connector
