package driving

import (
	"context"

	"github.com/custodia-labs/margin-cli/internal/core/domain"
)

// AnnotationService manages the client-side anchor collection for one
// document copy, reconciling it against the remote store.
type AnnotationService interface {
	// Load fetches all anchors for the copy, replacing the in-memory
	// list. On failure the list is empty and the error is recoverable:
	// the viewer stays usable.
	Load(ctx context.Context, copyID string) ([]domain.Anchor, error)

	// Create commits a selection candidate as a new anchor. The anchor
	// is appended to the FRONT of the list on success (newest first).
	// No local mutation happens on failure.
	Create(ctx context.Context, candidate domain.SelectionCandidate, kind domain.AnchorKind, body, color string) (*domain.Anchor, error)

	// Remove deletes an anchor optimistically: the local list drops it
	// immediately, then the remote delete is issued. A failed remote
	// delete does not resurrect the item; callers reload to resync.
	Remove(ctx context.Context, id string) error

	// All returns the current in-memory list, newest first.
	All() []domain.Anchor

	// ForPage returns anchors on one page only. Cross-page geometry is
	// never rendered.
	ForPage(page int) []domain.Anchor
}
