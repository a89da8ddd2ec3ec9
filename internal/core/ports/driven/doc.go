// Package driven provides interfaces for infrastructure adapters
// (secondary/outbound ports): the metadata store, source connectors,
// text extraction, summarisation, embeddings, and the vector index.
package driven
