package driven

import (
	"context"

	"github.com/divami-labs/docpipe-cli/internal/core/domain"
)

// TextExtractor converts a source item's bytes into plain text.
//
// ExtractText never fails: on an unsupported format or any internal
// extraction error it returns empty text, which the processing controller
// records as Needs OCR.
type TextExtractor interface {
	ExtractText(ctx context.Context, item *domain.SourceItem) string
}
