package driving

import (
	"context"

	"github.com/custodia-labs/margin-cli/internal/core/domain"
)

// ProgressTracker persists reading positions without saturating the
// network: observations within the quiet window coalesce into a single
// save carrying the latest state.
type ProgressTracker interface {
	// Observe records a page/zoom mutation and (re)starts the debounce
	// timer. Never blocks.
	Observe(page, totalPages int, zoom float64)

	// Position returns the latest observed reading position.
	Position() domain.ReadingPosition

	// Flush saves any pending observation immediately. Used on
	// shutdown so the last state is not lost to the quiet window.
	Flush(ctx context.Context) error

	// Stop cancels the pending timer. Further observations are ignored.
	Stop()
}
