// Package domain contains the core business entities for the document
// ingestion pipeline: document records, their status lifecycle, source
// items produced by connectors, and the sequential document-ID allocator.
//
// Domain types have no dependencies on adapters or external services.
package domain
