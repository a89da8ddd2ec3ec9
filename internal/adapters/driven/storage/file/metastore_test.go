package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/divami-labs/docpipe-cli/internal/core/domain"
)

func newTestStore(t *testing.T) *MetadataStore {
	t.Helper()
	store, err := NewMetadataStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func sampleRecord(id string) *domain.DocumentRecord {
	return &domain.DocumentRecord{
		DocumentID:       id,
		SourceID:         "drive-" + id,
		SourceSystem:     domain.SourceDrive,
		OriginalFilename: "report.pdf",
		Format:           "PDF",
		LastModified:     "2026-08-01T12:00:00Z",
		DateReceived:     "2026-08-02T08:30:00Z",
		Status:           domain.Pending(),
		FileURL:          "https://drive.google.com/file/d/abc/view",
		MIMEType:         "application/pdf",
	}
}

func TestNewMetadataStore_RequiresDir(t *testing.T) {
	_, err := NewMetadataStore("")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestMetadataStore_UpsertReadRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	rec := sampleRecord("DIVAMI_001")
	require.NoError(t, store.Upsert(ctx, "DIVAMI_001", rec))

	got, err := store.Read(ctx, "DIVAMI_001")
	require.NoError(t, err)
	assert.Equal(t, rec, got)
}

func TestMetadataStore_ReadAbsent(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Read(context.Background(), "DIVAMI_404")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMetadataStore_UpsertReplaces(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	rec := sampleRecord("DIVAMI_001")
	require.NoError(t, store.Upsert(ctx, "DIVAMI_001", rec))

	updated := *rec
	updated.Status = domain.Processed()
	updated.Summary = "a summary"
	updated.IngestedAt = "2026-08-02T09:00:00Z"
	require.NoError(t, store.Upsert(ctx, "DIVAMI_001", &updated))

	got, err := store.Read(ctx, "DIVAMI_001")
	require.NoError(t, err)
	assert.Equal(t, domain.Processed(), got.Status)
	assert.Equal(t, "a summary", got.Summary)
}

func TestMetadataStore_ListIDs(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Upsert(ctx, "DIVAMI_001", sampleRecord("DIVAMI_001")))
	require.NoError(t, store.Upsert(ctx, "DIVAMI_002", sampleRecord("DIVAMI_002")))

	ids, err := store.ListIDs(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"DIVAMI_001", "DIVAMI_002"}, ids)
}

func TestMetadataStore_ListIDs_IgnoresPartialWrites(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Upsert(ctx, "DIVAMI_001", sampleRecord("DIVAMI_001")))

	// Simulate a crashed write: a leftover temporary file and a stray
	// non-record file must not surface as document IDs.
	require.NoError(t, os.WriteFile(filepath.Join(store.Dir(), "DIVAMI_002.json.tmp"), []byte("{"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(store.Dir(), "notes.txt"), []byte("x"), 0o600))

	ids, err := store.ListIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"DIVAMI_001"}, ids)
}

func TestMetadataStore_ListIDs_IgnoresSubdirectories(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, os.MkdirAll(filepath.Join(store.Dir(), "exports"), 0o700))
	require.NoError(t, store.Upsert(ctx, "DIVAMI_001", sampleRecord("DIVAMI_001")))

	ids, err := store.ListIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"DIVAMI_001"}, ids)
}

func TestMetadataStore_NoTempFileLeftBehind(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Upsert(ctx, "DIVAMI_001", sampleRecord("DIVAMI_001")))

	entries, err := os.ReadDir(store.Dir())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "DIVAMI_001.json", entries[0].Name())
}
