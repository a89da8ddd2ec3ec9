package extractors

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/divami-labs/docpipe-cli/internal/core/domain"
)

// stubExtractor returns a fixed text or error for its extensions.
type stubExtractor struct {
	exts []string
	text string
	err  error
}

func (s *stubExtractor) Extensions() []string { return s.exts }

func (s *stubExtractor) Extract(_ context.Context, _ *domain.SourceItem) (string, error) {
	return s.text, s.err
}

func TestRegistry_RoutesByExtension(t *testing.T) {
	r := NewRegistry(
		&stubExtractor{exts: []string{"txt"}, text: "plain"},
		&stubExtractor{exts: []string{"pdf"}, text: "portable"},
	)

	ctx := context.Background()
	assert.Equal(t, "plain", r.ExtractText(ctx, &domain.SourceItem{Name: "a.txt"}))
	assert.Equal(t, "portable", r.ExtractText(ctx, &domain.SourceItem{Name: "b.PDF"}))
}

func TestRegistry_UnknownExtensionYieldsEmpty(t *testing.T) {
	r := NewRegistry(&stubExtractor{exts: []string{"txt"}, text: "plain"})

	assert.Empty(t, r.ExtractText(context.Background(), &domain.SourceItem{Name: "image.png"}))
	assert.Empty(t, r.ExtractText(context.Background(), &domain.SourceItem{Name: "no-extension"}))
}

func TestRegistry_ExtractionErrorYieldsEmpty(t *testing.T) {
	r := NewRegistry(&stubExtractor{exts: []string{"pdf"}, err: errors.New("corrupt")})

	assert.Empty(t, r.ExtractText(context.Background(), &domain.SourceItem{Name: "bad.pdf"}))
}

func TestRegistry_NilItemYieldsEmpty(t *testing.T) {
	r := NewDefaultRegistry()
	assert.Empty(t, r.ExtractText(context.Background(), nil))
}

func TestDefaultRegistry_CoversExpectedFormats(t *testing.T) {
	r := NewDefaultRegistry()

	for _, ext := range []string{"txt", "md", "csv", "pdf", "docx", "odt", "rtf", "xlsx"} {
		_, ok := r.byExt[ext]
		assert.True(t, ok, "expected extractor for %s", ext)
	}
}
