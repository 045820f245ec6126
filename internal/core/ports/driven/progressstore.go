package driven

import (
	"context"

	"github.com/custodia-labs/margin-cli/internal/core/domain"
)

// ProgressStore persists reading positions on the remote service.
// Save is idempotent: safe to retry or drop (last write wins).
type ProgressStore interface {
	// SaveProgress persists the reading position for its document copy.
	SaveProgress(ctx context.Context, pos domain.ReadingPosition) error
}
