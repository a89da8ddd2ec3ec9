package plaintext

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/divami-labs/docpipe-cli/internal/core/domain"
)

func TestExtract(t *testing.T) {
	e := New()

	item := &domain.SourceItem{
		Name:    "notes.txt",
		Content: []byte("line one\nline two"),
	}

	text, err := e.Extract(context.Background(), item)
	require.NoError(t, err)
	assert.Equal(t, "line one\nline two", text)
}

func TestExtract_EmptyContent(t *testing.T) {
	e := New()

	text, err := e.Extract(context.Background(), &domain.SourceItem{Name: "empty.md"})
	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestExtensions(t *testing.T) {
	assert.ElementsMatch(t, []string{"txt", "md", "csv"}, New().Extensions())
}
