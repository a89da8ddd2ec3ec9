package services

import (
	"context"
	"strings"

	"github.com/divami-labs/docpipe-cli/internal/core/domain"
	"github.com/divami-labs/docpipe-cli/internal/core/ports/driven"
)

// Every fake must satisfy the port the services consume it through.
var (
	_ driven.Connector        = (*fakeConnector)(nil)
	_ driven.TextExtractor    = (*fakeExtractor)(nil)
	_ driven.Summariser       = (*fakeSummariser)(nil)
	_ driven.EmbeddingService = (*fakeEmbedder)(nil)
	_ driven.VectorIndex      = (*fakeIndex)(nil)
	_ driven.RawTextArchive   = (*fakeArchive)(nil)
	_ driven.SnapshotWriter   = (*fakeSnapshots)(nil)
)

// fakeConnector returns a fixed item list, recording the known sets it
// was handed.
type fakeConnector struct {
	system    domain.SourceSystem
	items     []domain.SourceItem
	err       error
	calls     int
	knownSeen []map[string]struct{}
}

func (f *fakeConnector) System() domain.SourceSystem { return f.system }

func (f *fakeConnector) Enumerate(_ context.Context, known map[string]struct{}) ([]domain.SourceItem, error) {
	f.calls++
	f.knownSeen = append(f.knownSeen, known)
	if f.err != nil {
		return nil, f.err
	}

	var items []domain.SourceItem
	for _, item := range f.items {
		if _, seen := known[item.ID]; seen {
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

// fakeExtractor maps filenames to extracted text; unlisted names yield "".
type fakeExtractor struct {
	texts map[string]string
	calls int
}

func (f *fakeExtractor) ExtractText(_ context.Context, item *domain.SourceItem) string {
	f.calls++
	return f.texts[item.Name]
}

// fakeSummariser prefixes the input, or fails.
type fakeSummariser struct {
	err   error
	calls int
}

func (f *fakeSummariser) Summarise(_ context.Context, text string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return "summary of: " + firstWords(text, 3), nil
}

func firstWords(text string, n int) string {
	words := strings.Fields(text)
	if len(words) > n {
		words = words[:n]
	}
	return strings.Join(words, " ")
}

// fakeEmbedder returns a fixed vector, or an empty one when empty is set.
type fakeEmbedder struct {
	vector []float32
	err    error
	empty  bool
	calls  int
}

func (f *fakeEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if f.empty || text == "" {
		return nil, nil
	}
	if f.vector != nil {
		return f.vector, nil
	}
	return []float32{0.1, 0.2}, nil
}

func (f *fakeEmbedder) Dimensions() int   { return 2 }
func (f *fakeEmbedder) ModelName() string { return "fake-embed" }
func (f *fakeEmbedder) Close() error      { return nil }

// fakeIndex records upserts in order.
type fakeIndex struct {
	name     string
	err      error
	upserted []indexedVector
}

type indexedVector struct {
	docID    string
	vector   []float32
	metadata map[string]string
}

func (f *fakeIndex) Name() string { return f.name }

func (f *fakeIndex) Upsert(_ context.Context, docID string, vector []float32, metadata map[string]string) error {
	if f.err != nil {
		return f.err
	}
	f.upserted = append(f.upserted, indexedVector{docID: docID, vector: vector, metadata: metadata})
	return nil
}

func (f *fakeIndex) Query(_ context.Context, _ []float32, _ int) ([]driven.VectorMatch, error) {
	return nil, nil
}

func (f *fakeIndex) Close() error { return nil }

// fakeArchive records raw text writes.
type fakeArchive struct {
	err     error
	written map[string]string
}

func (f *fakeArchive) WriteRawText(_ context.Context, docID, text string) error {
	if f.err != nil {
		return f.err
	}
	if f.written == nil {
		f.written = make(map[string]string)
	}
	f.written[docID] = text
	return nil
}

// fakeSnapshots records snapshot exports.
type fakeSnapshots struct {
	err      error
	exported []string
}

func (f *fakeSnapshots) WriteSnapshot(_ context.Context, rec *domain.DocumentRecord) error {
	if f.err != nil {
		return f.err
	}
	f.exported = append(f.exported, rec.DocumentID)
	return nil
}
