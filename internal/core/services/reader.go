package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/custodia-labs/margin-cli/internal/core/ports/driven"
	"github.com/custodia-labs/margin-cli/internal/core/ports/driving"
	"github.com/custodia-labs/margin-cli/internal/logger"
)

// Ensure ReaderSession implements the interface.
var _ driving.ReaderSession = (*ReaderSession)(nil)

// ReaderSession coordinates navigation for one open document copy.
// Every page or zoom change is forwarded to the progress tracker (for
// the debounced save) and to the selection controller (which forcibly
// clears any stale candidate).
type ReaderSession struct {
	copyID    string
	pages     driven.PageSource
	progress  driving.ProgressTracker
	selection driving.SelectionController

	mu         sync.Mutex
	page       int
	zoom       float64
	totalPages int
}

// NewReaderSession opens a session on a document copy. The page count
// is read once from the renderer; a renderer that cannot report it
// fails the open rather than yielding a session with no pages.
func NewReaderSession(
	ctx context.Context,
	copyID string,
	pages driven.PageSource,
	progress driving.ProgressTracker,
	selection driving.SelectionController,
) (*ReaderSession, error) {
	total, err := pages.PageCount(ctx)
	if err != nil {
		return nil, fmt.Errorf("open document copy %s: %w", copyID, err)
	}
	if total < 1 {
		return nil, fmt.Errorf("open document copy %s: no pages", copyID)
	}

	return &ReaderSession{
		copyID:     copyID,
		pages:      pages,
		progress:   progress,
		selection:  selection,
		page:       1,
		zoom:       1.0,
		totalPages: total,
	}, nil
}

// CopyID returns the document copy this session reads.
func (r *ReaderSession) CopyID() string { return r.copyID }

// TotalPages returns the page count reported by the renderer.
func (r *ReaderSession) TotalPages() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.totalPages
}

// CurrentPage returns the 1-based page being displayed.
func (r *ReaderSession) CurrentPage() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.page
}

// Zoom returns the current scale factor.
func (r *ReaderSession) Zoom() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.zoom
}

// GoToPage navigates to a page, clamped into [1, TotalPages].
func (r *ReaderSession) GoToPage(page int) {
	r.mu.Lock()
	if page < 1 {
		page = 1
	}
	if page > r.totalPages {
		page = r.totalPages
	}
	if page == r.page {
		r.mu.Unlock()
		return
	}
	r.page = page
	pageNow, zoomNow, total := r.page, r.zoom, r.totalPages
	r.mu.Unlock()

	logger.Debug("goToPage %d/%d", pageNow, total)
	r.notify(pageNow, total, zoomNow)
}

// SetZoom changes the scale factor. Values at or below zero are ignored.
func (r *ReaderSession) SetZoom(zoom float64) {
	if zoom <= 0 {
		return
	}
	r.mu.Lock()
	if zoom == r.zoom {
		r.mu.Unlock()
		return
	}
	r.zoom = zoom
	pageNow, zoomNow, total := r.page, r.zoom, r.totalPages
	r.mu.Unlock()

	logger.Debug("zoom %.2f", zoomNow)
	r.notify(pageNow, total, zoomNow)
}

// notify fans a navigation change out to the tracker and the selection
// controller.
func (r *ReaderSession) notify(page, total int, zoom float64) {
	if r.progress != nil {
		r.progress.Observe(page, total, zoom)
	}
	if r.selection != nil {
		r.selection.Navigated(page, zoom)
	}
}

// PageText returns the text of the current page from the renderer.
func (r *ReaderSession) PageText(ctx context.Context) (string, error) {
	r.mu.Lock()
	page := r.page
	r.mu.Unlock()
	return r.pages.PageText(ctx, page)
}

// Close flushes pending progress so the final position survives the
// quiet window, then stops the tracker.
func (r *ReaderSession) Close(ctx context.Context) error {
	if r.progress == nil {
		return nil
	}
	err := r.progress.Flush(ctx)
	r.progress.Stop()
	return err
}
