// Package memory provides in-memory implementations of the driven
// storage ports. Used for offline sessions and as fakes in tests.
package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/margin-cli/internal/core/domain"
	"github.com/custodia-labs/margin-cli/internal/core/ports/driven"
)

// Ensure AnnotationStore implements the interface.
var _ driven.AnnotationStore = (*AnnotationStore)(nil)

// AnnotationStore is an in-memory implementation of driven.AnnotationStore.
type AnnotationStore struct {
	mu      sync.RWMutex
	anchors map[string][]domain.Anchor // copyID -> newest-first
}

// NewAnnotationStore creates a new in-memory annotation store.
func NewAnnotationStore() *AnnotationStore {
	return &AnnotationStore{
		anchors: make(map[string][]domain.Anchor),
	}
}

// List returns all anchors for a copy, newest first.
func (s *AnnotationStore) List(_ context.Context, copyID string) ([]domain.Anchor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stored := s.anchors[copyID]
	result := make([]domain.Anchor, len(stored))
	copy(result, stored)
	return result, nil
}

// Create stores a new anchor, assigning an id and creation time when
// the caller left them empty.
func (s *AnnotationStore) Create(_ context.Context, anchor domain.Anchor) (*domain.Anchor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if anchor.ID == "" {
		anchor.ID = uuid.NewString()
	}
	if anchor.CreatedAt.IsZero() {
		anchor.CreatedAt = time.Now()
	}
	s.anchors[anchor.CopyID] = append([]domain.Anchor{anchor}, s.anchors[anchor.CopyID]...)
	return &anchor, nil
}

// Delete removes an anchor by id. Deleting an unknown id is a no-op,
// matching the idempotent delete contract.
func (s *AnnotationStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for copyID, stored := range s.anchors {
		for i, anchor := range stored {
			if anchor.ID == id {
				s.anchors[copyID] = append(stored[:i:i], stored[i+1:]...)
				return nil
			}
		}
	}
	return nil
}

// Search scans stored anchors for a case-insensitive substring match
// against the anchored text and comment body. It backs the in-memory
// SearchIndex so offline sessions still answer queries.
func (s *AnnotationStore) Search(copyID, query string) []domain.SearchResult {
	s.mu.RLock()
	defer s.mu.RUnlock()

	needle := strings.ToLower(query)
	var results []domain.SearchResult
	for id, stored := range s.anchors {
		if copyID != "" && id != copyID {
			continue
		}
		for _, anchor := range stored {
			excerpt, score := matchAnchor(anchor, needle)
			if score > 0 {
				results = append(results, domain.SearchResult{
					Score:   score,
					Page:    anchor.Page,
					Kind:    anchor.Kind,
					Excerpt: excerpt,
				})
			}
		}
	}
	return results
}

// matchAnchor scores one anchor against a lowercased needle. Body
// matches outrank text matches so a reader's own words surface first.
func matchAnchor(anchor domain.Anchor, needle string) (string, float64) {
	if strings.Contains(strings.ToLower(anchor.Body), needle) {
		return anchor.Body, 1.0
	}
	if strings.Contains(strings.ToLower(anchor.Text), needle) {
		return anchor.Text, 0.5
	}
	return "", 0
}
