package extractors

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/divami-labs/docpipe-cli/internal/core/domain"
	"github.com/divami-labs/docpipe-cli/internal/core/ports/driven"
	"github.com/divami-labs/docpipe-cli/internal/extractors/office"
	"github.com/divami-labs/docpipe-cli/internal/extractors/pdf"
	"github.com/divami-labs/docpipe-cli/internal/extractors/plaintext"
	"github.com/divami-labs/docpipe-cli/internal/extractors/sheet"
	"github.com/divami-labs/docpipe-cli/internal/logger"
)

// Ensure Registry implements the interface.
var _ driven.TextExtractor = (*Registry)(nil)

// Extractor converts one format's bytes into plain text.
type Extractor interface {
	// Extensions returns the lower-case filename extensions handled,
	// without the leading dot.
	Extensions() []string

	// Extract returns the plain text content.
	Extract(ctx context.Context, item *domain.SourceItem) (string, error)
}

// Registry routes extraction by filename extension.
type Registry struct {
	byExt map[string]Extractor
}

// NewRegistry creates a registry with the given extractors.
func NewRegistry(extractors ...Extractor) *Registry {
	r := &Registry{byExt: make(map[string]Extractor)}
	for _, e := range extractors {
		for _, ext := range e.Extensions() {
			r.byExt[ext] = e
		}
	}
	return r
}

// NewDefaultRegistry creates a registry covering every supported format.
func NewDefaultRegistry() *Registry {
	return NewRegistry(
		plaintext.New(),
		pdf.New(),
		office.New(),
		sheet.New(),
	)
}

// ExtractText never fails: unsupported formats and extraction errors both
// yield empty text.
func (r *Registry) ExtractText(ctx context.Context, item *domain.SourceItem) string {
	if item == nil {
		return ""
	}

	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(item.Name)), ".")
	extractor, ok := r.byExt[ext]
	if !ok {
		logger.Debug("no extractor for %q (extension %q)", item.Name, ext)
		return ""
	}

	text, err := extractor.Extract(ctx, item)
	if err != nil {
		logger.Warn("extraction failed for %s: %v", item.Name, err)
		return ""
	}
	return text
}
