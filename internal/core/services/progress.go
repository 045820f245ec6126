package services

import (
	"context"
	"sync"
	"time"

	"github.com/custodia-labs/margin-cli/internal/core/domain"
	"github.com/custodia-labs/margin-cli/internal/core/ports/driven"
	"github.com/custodia-labs/margin-cli/internal/core/ports/driving"
	"github.com/custodia-labs/margin-cli/internal/logger"
)

// Ensure ProgressTracker implements the interface.
var _ driving.ProgressTracker = (*ProgressTracker)(nil)

// DefaultQuietWindow is the debounce window for progress saves.
const DefaultQuietWindow = time.Second

// saveTimeout bounds a single remote progress save.
const saveTimeout = 10 * time.Second

// ProgressTracker persists the reading position on a debounce. Every
// observation resets the single pending timer, so only the latest state
// within the quiet window is sent. A save already in flight is not
// cancelled; a newer observation simply starts a fresh timer, and
// last write wins (acceptable for single-reader state).
//
// The timer is one field owned by this instance. A session with
// several open documents runs one tracker per document, never a
// process-wide timer.
type ProgressTracker struct {
	store  driven.ProgressStore
	copyID string
	quiet  time.Duration

	mu      sync.Mutex
	pos     domain.ReadingPosition
	timer   *time.Timer
	stopped bool
}

// NewProgressTracker creates a tracker for one document copy.
// quiet at or below zero selects DefaultQuietWindow.
func NewProgressTracker(store driven.ProgressStore, copyID string, quiet time.Duration) *ProgressTracker {
	if quiet <= 0 {
		quiet = DefaultQuietWindow
	}
	return &ProgressTracker{
		store:  store,
		copyID: copyID,
		quiet:  quiet,
	}
}

// Observe records a page or zoom mutation and restarts the quiet-window
// timer. It never blocks on the network.
func (t *ProgressTracker) Observe(page, totalPages int, zoom float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped {
		return
	}

	t.pos = domain.ReadingPosition{
		CopyID:      t.copyID,
		CurrentPage: page,
		TotalPages:  totalPages,
		Zoom:        zoom,
	}

	if t.timer != nil {
		t.timer.Stop()
	}
	t.timer = time.AfterFunc(t.quiet, t.fire)
}

// Position returns the latest observed reading position.
func (t *ProgressTracker) Position() domain.ReadingPosition {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.pos
}

// fire runs when the quiet window elapses with no new observation.
func (t *ProgressTracker) fire() {
	t.mu.Lock()
	if t.stopped {
		t.mu.Unlock()
		return
	}
	pos := t.pos
	t.timer = nil
	t.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()
	t.save(ctx, pos)
}

// save persists one position. Reading position is best effort: errors
// are logged and swallowed, navigation is never blocked.
func (t *ProgressTracker) save(ctx context.Context, pos domain.ReadingPosition) {
	if err := t.store.SaveProgress(ctx, pos); err != nil {
		logger.Warn("progress save failed for %s: %v", pos.CopyID, err)
		return
	}
	logger.Debug("progress saved: copy=%s page=%d/%d zoom=%.2f",
		pos.CopyID, pos.CurrentPage, pos.TotalPages, pos.Zoom)
}

// Flush cancels the pending timer and saves the latest state now.
// Used on shutdown so the final position beats the quiet window.
func (t *ProgressTracker) Flush(ctx context.Context) error {
	t.mu.Lock()
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	pos := t.pos
	t.mu.Unlock()

	if pos.CopyID == "" {
		return nil // nothing observed yet
	}
	return t.store.SaveProgress(ctx, pos)
}

// Stop cancels the pending timer. Further observations are ignored.
func (t *ProgressTracker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopped = true
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}
