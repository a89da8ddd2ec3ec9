// Package office extracts text from word-processor documents
// (DOCX, ODT, RTF).
package office

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/lu4p/cat"

	"github.com/divami-labs/docpipe-cli/internal/core/domain"
)

// Extractor handles word-processor documents via lu4p/cat.
type Extractor struct{}

// New creates a new office-document extractor.
func New() *Extractor {
	return &Extractor{}
}

// Extensions returns the handled filename extensions.
func (e *Extractor) Extensions() []string {
	return []string{"docx", "odt", "rtf"}
}

// Extract converts the document to plain text. The cat library reads from
// a path, so the bytes are staged in a temporary file for the call.
func (e *Extractor) Extract(_ context.Context, item *domain.SourceItem) (string, error) {
	tmp, err := stageTempFile(item)
	if err != nil {
		return "", err
	}
	defer os.Remove(tmp)

	text, err := cat.File(tmp)
	if err != nil {
		return "", fmt.Errorf("convert %s: %w", item.Name, err)
	}
	return text, nil
}

func stageTempFile(item *domain.SourceItem) (string, error) {
	ext := filepath.Ext(item.Name)
	f, err := os.CreateTemp("", "docpipe-*"+ext)
	if err != nil {
		return "", fmt.Errorf("stage temp file: %w", err)
	}
	if _, err := f.Write(item.Content); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("stage temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("stage temp file: %w", err)
	}
	return f.Name(), nil
}
