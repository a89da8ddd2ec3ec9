// Package plaintext extracts text from formats that already are text.
package plaintext

import (
	"context"

	"github.com/divami-labs/docpipe-cli/internal/core/domain"
)

// Extractor handles plain-text formats.
type Extractor struct{}

// New creates a new plain text extractor.
func New() *Extractor {
	return &Extractor{}
}

// Extensions returns the handled filename extensions.
func (e *Extractor) Extensions() []string {
	return []string{"txt", "md", "csv"}
}

// Extract returns the bytes decoded as UTF-8 text.
func (e *Extractor) Extract(_ context.Context, item *domain.SourceItem) (string, error) {
	return string(item.Content), nil
}
