package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/margin-cli/internal/core/domain"
)

// mockProgressStore implements driven.ProgressStore for testing.
type mockProgressStore struct {
	mu      sync.Mutex
	saves   []domain.ReadingPosition
	saveErr error
}

func (m *mockProgressStore) SaveProgress(_ context.Context, pos domain.ReadingPosition) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves = append(m.saves, pos)
	return nil
}

func (m *mockProgressStore) Saves() []domain.ReadingPosition {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.ReadingPosition, len(m.saves))
	copy(out, m.saves)
	return out
}

// waitForSaves polls until the store has seen want saves or the
// deadline passes. Keeps the debounce tests free of fixed sleeps.
func waitForSaves(t *testing.T, store *mockProgressStore, want int) []domain.ReadingPosition {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if saves := store.Saves(); len(saves) >= want {
			return saves
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %d saves, have %d", want, len(store.Saves()))
	return nil
}

// TestProgressTracker_DebounceCoalesces tests that N observations
// within the quiet window produce exactly one save with the Nth state.
func TestProgressTracker_DebounceCoalesces(t *testing.T) {
	store := &mockProgressStore{}
	tracker := NewProgressTracker(store, "copy-1", 30*time.Millisecond)
	defer tracker.Stop()

	for page := 1; page <= 5; page++ {
		tracker.Observe(page, 100, 1.0)
	}

	saves := waitForSaves(t, store, 1)

	// Let any stray extra timer fire before asserting the count.
	time.Sleep(80 * time.Millisecond)
	saves = store.Saves()
	require.Len(t, saves, 1)
	assert.Equal(t, 5, saves[0].CurrentPage)
	assert.Equal(t, 100, saves[0].TotalPages)
	assert.Equal(t, "copy-1", saves[0].CopyID)
}

// TestProgressTracker_SeparatedObservationsSaveSeparately tests that
// observations outside the quiet window each persist.
func TestProgressTracker_SeparatedObservationsSaveSeparately(t *testing.T) {
	store := &mockProgressStore{}
	tracker := NewProgressTracker(store, "copy-1", 20*time.Millisecond)
	defer tracker.Stop()

	tracker.Observe(1, 10, 1.0)
	waitForSaves(t, store, 1)

	tracker.Observe(2, 10, 1.0)
	saves := waitForSaves(t, store, 2)

	assert.Equal(t, 1, saves[0].CurrentPage)
	assert.Equal(t, 2, saves[1].CurrentPage)
}

// TestProgressTracker_SaveFailureIsSwallowed tests best-effort
// semantics: a failing store never surfaces to navigation.
func TestProgressTracker_SaveFailureIsSwallowed(t *testing.T) {
	store := &mockProgressStore{saveErr: errors.New("offline")}
	tracker := NewProgressTracker(store, "copy-1", 10*time.Millisecond)
	defer tracker.Stop()

	tracker.Observe(4, 10, 1.25)
	time.Sleep(60 * time.Millisecond)

	// Nothing persisted, nothing panicked; latest state still readable.
	assert.Empty(t, store.Saves())
	assert.Equal(t, 4, tracker.Position().CurrentPage)
}

// TestProgressTracker_FlushSavesImmediately tests shutdown flushing
func TestProgressTracker_FlushSavesImmediately(t *testing.T) {
	store := &mockProgressStore{}
	tracker := NewProgressTracker(store, "copy-1", time.Hour)
	defer tracker.Stop()

	tracker.Observe(7, 10, 2.0)
	require.NoError(t, tracker.Flush(context.Background()))

	saves := store.Saves()
	require.Len(t, saves, 1)
	assert.Equal(t, 7, saves[0].CurrentPage)
	assert.Equal(t, 2.0, saves[0].Zoom)
}

// TestProgressTracker_FlushWithoutObservation tests that an untouched
// tracker flushes to nothing.
func TestProgressTracker_FlushWithoutObservation(t *testing.T) {
	store := &mockProgressStore{}
	tracker := NewProgressTracker(store, "copy-1", time.Hour)

	require.NoError(t, tracker.Flush(context.Background()))
	assert.Empty(t, store.Saves())
}

// TestProgressTracker_StopCancelsPending tests that Stop kills the timer
func TestProgressTracker_StopCancelsPending(t *testing.T) {
	store := &mockProgressStore{}
	tracker := NewProgressTracker(store, "copy-1", 20*time.Millisecond)

	tracker.Observe(3, 10, 1.0)
	tracker.Stop()
	tracker.Observe(4, 10, 1.0) // ignored after Stop

	time.Sleep(80 * time.Millisecond)
	assert.Empty(t, store.Saves())
	assert.Equal(t, 3, tracker.Position().CurrentPage)
}

// TestProgressTracker_DefaultQuietWindow tests the default selection
func TestProgressTracker_DefaultQuietWindow(t *testing.T) {
	tracker := NewProgressTracker(&mockProgressStore{}, "copy-1", 0)
	assert.Equal(t, DefaultQuietWindow, tracker.quiet)
}
