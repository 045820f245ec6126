package mcp

import (
	"context"

	"github.com/custodia-labs/margin-cli/internal/core/domain"
)

// mockSearchService is a mock implementation of driving.SearchService.
type mockSearchService struct {
	results   []domain.SearchResult
	lastQuery string
	lastOpts  domain.SearchOptions
	err       error
}

func (m *mockSearchService) Search(
	_ context.Context,
	query string,
	opts domain.SearchOptions,
) ([]domain.SearchResult, error) {
	m.lastQuery = query
	m.lastOpts = opts
	return m.results, m.err
}

// mockAnnotationService is a mock implementation of driving.AnnotationService.
type mockAnnotationService struct {
	anchors    []domain.Anchor
	lastCopyID string
	err        error
}

func (m *mockAnnotationService) Load(_ context.Context, copyID string) ([]domain.Anchor, error) {
	m.lastCopyID = copyID
	if m.err != nil {
		return []domain.Anchor{}, m.err
	}
	return m.anchors, nil
}

func (m *mockAnnotationService) Create(
	_ context.Context, _ domain.SelectionCandidate, _ domain.AnchorKind, _, _ string,
) (*domain.Anchor, error) {
	return nil, m.err
}

func (m *mockAnnotationService) Remove(_ context.Context, _ string) error {
	return m.err
}

func (m *mockAnnotationService) All() []domain.Anchor {
	return m.anchors
}

func (m *mockAnnotationService) ForPage(page int) []domain.Anchor {
	var result []domain.Anchor
	for _, a := range m.anchors {
		if a.Page == page {
			result = append(result, a)
		}
	}
	return result
}
