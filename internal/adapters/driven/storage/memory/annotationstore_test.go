package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/margin-cli/internal/core/domain"
)

func TestNewAnnotationStore(t *testing.T) {
	store := NewAnnotationStore()
	require.NotNil(t, store)
	assert.NotNil(t, store.anchors)
}

func TestAnnotationStore_CreateAssignsID(t *testing.T) {
	store := NewAnnotationStore()
	ctx := context.Background()

	created, err := store.Create(ctx, domain.Anchor{
		CopyID: "copy-1",
		Kind:   domain.KindComment,
		Page:   4,
		Text:   "span",
		Body:   "note",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())
}

func TestAnnotationStore_ListNewestFirst(t *testing.T) {
	store := NewAnnotationStore()
	ctx := context.Background()

	_, err := store.Create(ctx, domain.Anchor{CopyID: "copy-1", Text: "first"})
	require.NoError(t, err)
	_, err = store.Create(ctx, domain.Anchor{CopyID: "copy-1", Text: "second"})
	require.NoError(t, err)

	anchors, err := store.List(ctx, "copy-1")
	require.NoError(t, err)
	require.Len(t, anchors, 2)
	assert.Equal(t, "second", anchors[0].Text)
	assert.Equal(t, "first", anchors[1].Text)
}

func TestAnnotationStore_ListIsolatesCopies(t *testing.T) {
	store := NewAnnotationStore()
	ctx := context.Background()

	_, err := store.Create(ctx, domain.Anchor{CopyID: "copy-1", Text: "one"})
	require.NoError(t, err)
	_, err = store.Create(ctx, domain.Anchor{CopyID: "copy-2", Text: "two"})
	require.NoError(t, err)

	anchors, err := store.List(ctx, "copy-1")
	require.NoError(t, err)
	require.Len(t, anchors, 1)
	assert.Equal(t, "one", anchors[0].Text)
}

func TestAnnotationStore_Delete(t *testing.T) {
	store := NewAnnotationStore()
	ctx := context.Background()

	created, err := store.Create(ctx, domain.Anchor{CopyID: "copy-1", Text: "span"})
	require.NoError(t, err)

	err = store.Delete(ctx, created.ID)
	require.NoError(t, err)

	anchors, err := store.List(ctx, "copy-1")
	require.NoError(t, err)
	assert.Empty(t, anchors)
}

func TestAnnotationStore_DeleteUnknownIDIsNoOp(t *testing.T) {
	store := NewAnnotationStore()
	ctx := context.Background()

	err := store.Delete(ctx, "never-existed")
	assert.NoError(t, err)
}

func TestProgressStore_LastWriteWins(t *testing.T) {
	store := NewProgressStore()
	ctx := context.Background()

	err := store.SaveProgress(ctx, domain.ReadingPosition{CopyID: "copy-1", CurrentPage: 3, TotalPages: 10})
	require.NoError(t, err)
	err = store.SaveProgress(ctx, domain.ReadingPosition{CopyID: "copy-1", CurrentPage: 7, TotalPages: 10})
	require.NoError(t, err)

	pos, err := store.Position(ctx, "copy-1")
	require.NoError(t, err)
	assert.Equal(t, 7, pos.CurrentPage)
}

func TestProgressStore_PositionNotFound(t *testing.T) {
	store := NewProgressStore()

	_, err := store.Position(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSearchIndex_Query(t *testing.T) {
	store := NewAnnotationStore()
	ctx := context.Background()

	_, err := store.Create(ctx, domain.Anchor{
		CopyID: "copy-1", Kind: domain.KindComment, Page: 2,
		Text: "orbital mechanics", Body: "review before exam",
	})
	require.NoError(t, err)
	_, err = store.Create(ctx, domain.Anchor{
		CopyID: "copy-1", Kind: domain.KindHighlight, Page: 9,
		Text: "Hohmann transfer orbit",
	})
	require.NoError(t, err)

	index := NewSearchIndex(store)
	results, err := index.Query(ctx, "orbit", domain.SearchOptions{CopyID: "copy-1"})

	require.NoError(t, err)
	require.Len(t, results, 2)
	// Both are text matches, equal score; pages cover both anchors.
	pages := []int{results[0].Page, results[1].Page}
	assert.ElementsMatch(t, []int{2, 9}, pages)
}

func TestSearchIndex_BodyOutranksText(t *testing.T) {
	store := NewAnnotationStore()
	ctx := context.Background()

	_, err := store.Create(ctx, domain.Anchor{
		CopyID: "copy-1", Page: 1, Text: "gravity assist",
	})
	require.NoError(t, err)
	_, err = store.Create(ctx, domain.Anchor{
		CopyID: "copy-1", Page: 5, Text: "unrelated", Body: "check gravity chapter",
	})
	require.NoError(t, err)

	index := NewSearchIndex(store)
	results, err := index.Query(ctx, "gravity", domain.SearchOptions{CopyID: "copy-1"})

	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, 5, results[0].Page)
	assert.Equal(t, "check gravity chapter", results[0].Excerpt)
}

func TestSearchIndex_Limit(t *testing.T) {
	store := NewAnnotationStore()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := store.Create(ctx, domain.Anchor{CopyID: "copy-1", Page: i + 1, Text: "delta-v"})
		require.NoError(t, err)
	}

	index := NewSearchIndex(store)
	results, err := index.Query(ctx, "delta", domain.SearchOptions{CopyID: "copy-1", Limit: 2})

	require.NoError(t, err)
	assert.Len(t, results, 2)
}
