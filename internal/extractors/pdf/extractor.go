// Package pdf extracts text from PDF documents.
package pdf

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/dslipak/pdf"

	"github.com/divami-labs/docpipe-cli/internal/core/domain"
)

// Extractor handles PDF documents.
type Extractor struct{}

// New creates a new PDF extractor.
func New() *Extractor {
	return &Extractor{}
}

// Extensions returns the handled filename extensions.
func (e *Extractor) Extensions() []string {
	return []string{"pdf"}
}

// Extract concatenates the plain text of every page. Pages that fail to
// parse are skipped; a document where every page fails yields empty text.
func (e *Extractor) Extract(_ context.Context, item *domain.SourceItem) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(item.Content), int64(len(item.Content)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	var pages []string
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := extractPage(page)
		if err != nil {
			continue
		}
		pages = append(pages, content)
	}

	return strings.Join(pages, "\n"), nil
}

// extractPage guards against panics inside the pdf library on malformed
// content streams.
func extractPage(page pdf.Page) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("page extraction panicked: %v", r)
		}
	}()
	return page.GetPlainText(nil)
}
