package driven

import (
	"context"

	"github.com/custodia-labs/margin-cli/internal/core/domain"
)

// SearchIndex is the external semantic index, consumed as a remote call.
// Query is idempotent. Ranking is owned entirely by the index; the core
// only orders and windows what comes back.
type SearchIndex interface {
	// Query returns scored matches for the query text.
	Query(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.SearchResult, error)
}
