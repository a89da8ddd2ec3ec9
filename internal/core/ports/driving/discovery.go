package driving

import (
	"context"

	"github.com/divami-labs/docpipe-cli/internal/core/domain"
)

// DiscoveryController finds source items not yet represented in the store
// and registers each as a new Pending record.
//
// Discovery is idempotent: rerunning with unchanged sources produces zero
// new records. A failure enumerating one connector does not abort the
// others; per-connector failures are collected in the report.
type DiscoveryController interface {
	Discover(ctx context.Context) (*DiscoveryReport, error)
}

// DiscoveryReport summarises one discovery run.
type DiscoveryReport struct {
	// RunID uniquely identifies this run in logs and reports.
	RunID string

	// Discovered lists the newly registered documents, in registration order.
	Discovered []DiscoveredDocument

	// SourceErrors holds the enumeration failures per source system.
	SourceErrors map[domain.SourceSystem]error
}

// DiscoveredDocument is one newly registered document.
type DiscoveredDocument struct {
	DocumentID       string
	SourceID         string
	SourceSystem     domain.SourceSystem
	OriginalFilename string
}
