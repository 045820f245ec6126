package memory

import (
	"context"
	"sort"

	"github.com/custodia-labs/margin-cli/internal/core/domain"
	"github.com/custodia-labs/margin-cli/internal/core/ports/driven"
)

// Ensure SearchIndex implements the interface.
var _ driven.SearchIndex = (*SearchIndex)(nil)

// SearchIndex answers queries from an in-memory annotation store.
// It stands in for the remote knowledge index during offline sessions.
type SearchIndex struct {
	store *AnnotationStore
}

// NewSearchIndex creates a search index over an annotation store.
func NewSearchIndex(store *AnnotationStore) *SearchIndex {
	return &SearchIndex{store: store}
}

// Query returns substring matches ordered by descending score.
func (s *SearchIndex) Query(_ context.Context, query string, opts domain.SearchOptions) ([]domain.SearchResult, error) {
	results := s.store.Search(opts.CopyID, query)
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if opts.Limit > 0 && len(results) > opts.Limit {
		results = results[:opts.Limit]
	}
	return results, nil
}
