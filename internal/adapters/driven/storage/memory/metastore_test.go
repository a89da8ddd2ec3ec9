package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/divami-labs/docpipe-cli/internal/core/domain"
)

func TestMetadataStore_UpsertReadRoundTrip(t *testing.T) {
	store := NewMetadataStore()
	ctx := context.Background()

	rec := &domain.DocumentRecord{
		DocumentID:       "DIVAMI_001",
		SourceID:         "src-1",
		SourceSystem:     domain.SourceNotes,
		OriginalFilename: "Project_Notes.txt",
		Format:           "TXT",
		Status:           domain.Pending(),
	}
	require.NoError(t, store.Upsert(ctx, "DIVAMI_001", rec))

	got, err := store.Read(ctx, "DIVAMI_001")
	require.NoError(t, err)
	assert.Equal(t, rec, got)

	// Mutating the returned copy must not affect the stored record.
	got.Status = domain.Processed()
	again, err := store.Read(ctx, "DIVAMI_001")
	require.NoError(t, err)
	assert.Equal(t, domain.Pending(), again.Status)
}

func TestMetadataStore_ReadAbsent(t *testing.T) {
	store := NewMetadataStore()
	_, err := store.Read(context.Background(), "DIVAMI_404")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMetadataStore_ListIDs(t *testing.T) {
	store := NewMetadataStore()
	ctx := context.Background()

	ids, err := store.ListIDs(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)

	require.NoError(t, store.Upsert(ctx, "DIVAMI_001", &domain.DocumentRecord{DocumentID: "DIVAMI_001"}))
	require.NoError(t, store.Upsert(ctx, "DIVAMI_002", &domain.DocumentRecord{DocumentID: "DIVAMI_002"}))

	ids, err = store.ListIDs(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"DIVAMI_001", "DIVAMI_002"}, ids)
}
