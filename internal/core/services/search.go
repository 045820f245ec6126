package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/custodia-labs/margin-cli/internal/core/domain"
	"github.com/custodia-labs/margin-cli/internal/core/ports/driven"
	"github.com/custodia-labs/margin-cli/internal/core/ports/driving"
	"github.com/custodia-labs/margin-cli/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// SearchService queries the external knowledge index with cooperative
// stale-response detection: there is no transport-level abort, but a
// response whose query no longer matches the latest issued query
// resolves with domain.ErrStaleResponse and is never rendered.
type SearchService struct {
	index driven.SearchIndex

	mu           sync.Mutex
	currentQuery string
}

// NewSearchService creates a search service over the knowledge index.
func NewSearchService(index driven.SearchIndex) *SearchService {
	return &SearchService{index: index}
}

// Search performs a semantic query.
//
// An empty query short-circuits to an empty result set without a
// network call. Issuing a new query while one is pending does not
// cancel the old request; the old response is discarded on arrival.
func (s *SearchService) Search(
	ctx context.Context, query string, opts domain.SearchOptions,
) ([]domain.SearchResult, error) {
	logger.Section("Knowledge Query")

	query = strings.TrimSpace(query)
	if query == "" {
		logger.Debug("Empty query, returning no results")
		return []domain.SearchResult{}, nil
	}

	s.mu.Lock()
	s.currentQuery = query
	s.mu.Unlock()

	logger.Debug("Query: %q (copy=%s, limit=%d)", query, opts.CopyID, opts.Limit)
	results, err := s.index.Query(ctx, query, opts)

	s.mu.Lock()
	stale := s.currentQuery != query
	s.mu.Unlock()
	if stale {
		logger.Debug("Discarding out-of-order response for %q", query)
		return nil, fmt.Errorf("query %q: %w", query, domain.ErrStaleResponse)
	}

	if err != nil {
		logger.Warn("Search failed: %v", err)
		return nil, fmt.Errorf("search: %w", err)
	}

	logger.Info("Results: %d", len(results))
	return results, nil
}
