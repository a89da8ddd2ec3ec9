// Package file provides the flat-file storage adapters: the JSON-per-document
// metadata store with atomic write semantics, the raw extracted-text archive,
// and the export snapshot writer.
package file
