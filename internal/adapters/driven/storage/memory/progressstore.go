package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/margin-cli/internal/core/domain"
	"github.com/custodia-labs/margin-cli/internal/core/ports/driven"
)

// Ensure ProgressStore implements the interface.
var _ driven.ProgressStore = (*ProgressStore)(nil)

// ProgressStore is an in-memory implementation of driven.ProgressStore.
// Last write wins per copy.
type ProgressStore struct {
	mu        sync.RWMutex
	positions map[string]domain.ReadingPosition
}

// NewProgressStore creates a new in-memory progress store.
func NewProgressStore() *ProgressStore {
	return &ProgressStore{
		positions: make(map[string]domain.ReadingPosition),
	}
}

// SaveProgress stores the reading position for its copy.
func (s *ProgressStore) SaveProgress(_ context.Context, pos domain.ReadingPosition) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.positions[pos.CopyID] = pos
	return nil
}

// Position retrieves the last saved position for a copy.
func (s *ProgressStore) Position(_ context.Context, copyID string) (*domain.ReadingPosition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	pos, ok := s.positions[copyID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &pos, nil
}
