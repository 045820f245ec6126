package driven

import (
	"context"

	"github.com/custodia-labs/margin-cli/internal/core/domain"
)

// AnnotationStore persists anchors on the remote annotation service.
//
// Contract notes: List is idempotent and safe to retry. Create is NOT
// idempotent and must never be retried silently (a duplicate anchor
// would be created); failures are surfaced to the user for manual
// retry. Delete is idempotent: implementations treat deleting an
// already-removed id as success.
type AnnotationStore interface {
	// List fetches all anchors for a document copy.
	List(ctx context.Context, copyID string) ([]domain.Anchor, error)

	// Create persists a new anchor and returns it with the
	// server-assigned ID filled in.
	Create(ctx context.Context, anchor domain.Anchor) (*domain.Anchor, error)

	// Delete removes an anchor by id. A repeat delete of an
	// already-removed id returns nil.
	Delete(ctx context.Context, id string) error
}
