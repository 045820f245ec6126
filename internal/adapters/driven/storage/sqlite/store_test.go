package sqlite

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/margin-cli/internal/core/domain"
)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) (*Store, func()) {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "margin-test-*")
	require.NoError(t, err)

	store, err := NewStore(tempDir)
	require.NoError(t, err)
	require.NotNil(t, store)

	cleanup := func() {
		assert.NoError(t, store.Close())
		assert.NoError(t, os.RemoveAll(tempDir))
	}

	return store, cleanup
}

func testAnchor(copyID string, page int) domain.Anchor {
	return domain.Anchor{
		CopyID: copyID,
		Kind:   domain.KindComment,
		Page:   page,
		Position: domain.Rect{
			Left: 53.3, Top: 106.7, Width: 66.7, Height: 13.3,
		},
		Text:  "anchored span",
		Body:  "reader note",
		Color: domain.ColorYellow,
	}
}

func TestNewStore_RunsMigrations(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	var version int
	row := store.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	require.NoError(t, row.Scan(&version))
	assert.GreaterOrEqual(t, version, 1)
}

func TestNewStore_ReopenIsIdempotent(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "margin-test-*")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)

	store, err := NewStore(tempDir)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	// Re-opening must not re-run applied migrations.
	store, err = NewStore(tempDir)
	require.NoError(t, err)
	assert.NoError(t, store.Close())
}

func TestAnnotationStore_CreateAndList(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	annotations := store.AnnotationStore()

	created, err := annotations.Create(ctx, testAnchor("copy-1", 3))
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	anchors, err := annotations.List(ctx, "copy-1")
	require.NoError(t, err)
	require.Len(t, anchors, 1)
	assert.Equal(t, created.ID, anchors[0].ID)
	assert.Equal(t, domain.KindComment, anchors[0].Kind)
	assert.Equal(t, 3, anchors[0].Page)
	assert.InDelta(t, 53.3, anchors[0].Position.Left, 0.0001)
	assert.InDelta(t, 13.3, anchors[0].Position.Height, 0.0001)
	assert.Equal(t, "reader note", anchors[0].Body)
	assert.Equal(t, domain.ColorYellow, anchors[0].Color)
}

func TestAnnotationStore_ListNewestFirst(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	annotations := store.AnnotationStore()

	older := testAnchor("copy-1", 1)
	older.CreatedAt = time.Now().UTC().Add(-time.Hour)
	older.Text = "older"
	_, err := annotations.Create(ctx, older)
	require.NoError(t, err)

	newer := testAnchor("copy-1", 2)
	newer.Text = "newer"
	_, err = annotations.Create(ctx, newer)
	require.NoError(t, err)

	anchors, err := annotations.List(ctx, "copy-1")
	require.NoError(t, err)
	require.Len(t, anchors, 2)
	assert.Equal(t, "newer", anchors[0].Text)
	assert.Equal(t, "older", anchors[1].Text)
}

func TestAnnotationStore_ListEmptyCopy(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	anchors, err := store.AnnotationStore().List(context.Background(), "unknown")
	require.NoError(t, err)
	assert.Empty(t, anchors)
}

func TestAnnotationStore_CreateUpsertsKnownID(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	annotations := store.AnnotationStore()

	anchor := testAnchor("copy-1", 3)
	anchor.ID = "srv-1"
	_, err := annotations.Create(ctx, anchor)
	require.NoError(t, err)

	anchor.Body = "amended note"
	_, err = annotations.Create(ctx, anchor)
	require.NoError(t, err)

	anchors, err := annotations.List(ctx, "copy-1")
	require.NoError(t, err)
	require.Len(t, anchors, 1)
	assert.Equal(t, "amended note", anchors[0].Body)
}

func TestAnnotationStore_Delete(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	annotations := store.AnnotationStore()

	created, err := annotations.Create(ctx, testAnchor("copy-1", 3))
	require.NoError(t, err)

	require.NoError(t, annotations.Delete(ctx, created.ID))

	anchors, err := annotations.List(ctx, "copy-1")
	require.NoError(t, err)
	assert.Empty(t, anchors)

	// Repeat delete of a removed id is success.
	assert.NoError(t, annotations.Delete(ctx, created.ID))
}

func TestProgressStore_SaveAndLoad(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	progress := store.ProgressStore()

	err := progress.SaveProgress(ctx, domain.ReadingPosition{
		CopyID: "copy-1", CurrentPage: 42, TotalPages: 120, Zoom: 1.25,
	})
	require.NoError(t, err)

	pos, err := store.Position(ctx, "copy-1")
	require.NoError(t, err)
	assert.Equal(t, 42, pos.CurrentPage)
	assert.Equal(t, 120, pos.TotalPages)
	assert.InDelta(t, 1.25, pos.Zoom, 0.0001)
	assert.False(t, pos.SavedAt.IsZero())
}

func TestProgressStore_LastWriteWins(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	progress := store.ProgressStore()

	require.NoError(t, progress.SaveProgress(ctx, domain.ReadingPosition{
		CopyID: "copy-1", CurrentPage: 10, TotalPages: 120,
	}))
	require.NoError(t, progress.SaveProgress(ctx, domain.ReadingPosition{
		CopyID: "copy-1", CurrentPage: 55, TotalPages: 120,
	}))

	pos, err := store.Position(ctx, "copy-1")
	require.NoError(t, err)
	assert.Equal(t, 55, pos.CurrentPage)
}

func TestProgressStore_PositionNotFound(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	_, err := store.Position(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
