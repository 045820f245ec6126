package driving

import "context"

// ReaderSession coordinates navigation for one open document copy. It
// exposes the page-navigation callback consumed by the rendering
// collaborator and feeds every page/zoom change into the progress
// tracker and the selection controller.
type ReaderSession interface {
	// CopyID returns the document copy this session reads.
	CopyID() string

	// TotalPages returns the page count reported by the renderer.
	TotalPages() int

	// CurrentPage returns the 1-based page being displayed.
	CurrentPage() int

	// Zoom returns the current scale factor.
	Zoom() float64

	// GoToPage navigates to a page, clamped into [1, TotalPages].
	GoToPage(page int)

	// SetZoom changes the scale factor. Values at or below zero are
	// ignored.
	SetZoom(zoom float64)

	// PageText returns the text of the current page from the renderer.
	PageText(ctx context.Context) (string, error)

	// Close flushes pending progress and releases resources.
	Close(ctx context.Context) error
}
