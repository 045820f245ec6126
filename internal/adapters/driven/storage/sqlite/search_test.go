package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/margin-cli/internal/core/domain"
)

func seedSearchAnchors(t *testing.T, store *Store) {
	t.Helper()
	ctx := context.Background()
	annotations := store.AnnotationStore()

	anchors := []domain.Anchor{
		{
			ID: "a1", CopyID: "copy-1", Kind: domain.KindComment, Page: 2,
			Text: "orbital mechanics", Body: "review gravity assist before exam",
			CreatedAt: time.Now().UTC().Add(-2 * time.Hour),
		},
		{
			ID: "a2", CopyID: "copy-1", Kind: domain.KindHighlight, Page: 9,
			Text: "gravity wells deepen", Color: domain.ColorYellow,
			CreatedAt: time.Now().UTC().Add(-time.Hour),
		},
		{
			ID: "a3", CopyID: "copy-2", Kind: domain.KindHighlight, Page: 1,
			Text: "gravity elsewhere", Color: domain.ColorYellow,
			CreatedAt: time.Now().UTC(),
		},
	}
	for _, anchor := range anchors {
		_, err := annotations.Create(ctx, anchor)
		require.NoError(t, err)
	}
}

func TestSearchIndex_Query(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	seedSearchAnchors(t, store)

	results, err := store.SearchIndex().Query(context.Background(), "gravity", domain.SearchOptions{
		CopyID: "copy-1",
	})

	require.NoError(t, err)
	require.Len(t, results, 2)

	// Body match outranks span-text match.
	assert.InDelta(t, 1.0, results[0].Score, 0.001)
	assert.Equal(t, 2, results[0].Page)
	assert.Equal(t, "review gravity assist before exam", results[0].Excerpt)

	assert.InDelta(t, 0.5, results[1].Score, 0.001)
	assert.Equal(t, 9, results[1].Page)
	assert.Equal(t, "gravity wells deepen", results[1].Excerpt)
}

func TestSearchIndex_CopyIsolation(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	seedSearchAnchors(t, store)

	results, err := store.SearchIndex().Query(context.Background(), "gravity", domain.SearchOptions{
		CopyID: "copy-2",
	})

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "gravity elsewhere", results[0].Excerpt)
}

func TestSearchIndex_Limit(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	seedSearchAnchors(t, store)

	results, err := store.SearchIndex().Query(context.Background(), "gravity", domain.SearchOptions{
		Limit: 1,
	})

	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestSearchIndex_NoMatches(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	seedSearchAnchors(t, store)

	results, err := store.SearchIndex().Query(context.Background(), "phlogiston", domain.SearchOptions{})

	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearchIndex_WildcardsEscaped(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	seedSearchAnchors(t, store)

	results, err := store.SearchIndex().Query(context.Background(), "%", domain.SearchOptions{})

	require.NoError(t, err)
	assert.Empty(t, results)
}
