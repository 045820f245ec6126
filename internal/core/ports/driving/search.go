package driving

import (
	"context"

	"github.com/custodia-labs/margin-cli/internal/core/domain"
)

// SearchService queries the external knowledge index.
//
// There is no transport-level cancellation: issuing a new query while
// one is pending does not abort the old request, but any response that
// no longer matches the current query text resolves with
// domain.ErrStaleResponse so stale results are never rendered.
type SearchService interface {
	// Search returns scored matches for the query. An empty query
	// short-circuits to an empty result set without a network call.
	Search(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.SearchResult, error)
}
