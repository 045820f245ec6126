package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/custodia-labs/margin-cli/internal/core/domain"
	"github.com/custodia-labs/margin-cli/internal/core/ports/driven"
	"github.com/custodia-labs/margin-cli/internal/core/ports/driving"
	"github.com/custodia-labs/margin-cli/internal/logger"
)

// Ensure AnnotationService implements the interface.
var _ driving.AnnotationService = (*AnnotationService)(nil)

// AnnotationService holds the client-side anchor collection for the
// open document copy and reconciles it against the remote store.
//
// Ordering invariant: the list is newest first; consumers rely on it
// for "recently added" displays. Creates are never optimistic (an
// anchor without a server id could not be deleted later); deletes are
// optimistic, with reconciliation left to a caller-triggered reload.
type AnnotationService struct {
	store    driven.AnnotationStore
	measurer driven.ViewportMeasurer

	mu      sync.RWMutex
	copyID  string
	anchors []domain.Anchor
}

// NewAnnotationService creates an annotation service.
// The measurer is optional (can be nil): without it, geometry degrades
// to approximate placement instead of being lost.
func NewAnnotationService(store driven.AnnotationStore, measurer driven.ViewportMeasurer) *AnnotationService {
	return &AnnotationService{store: store, measurer: measurer}
}

// Load fetches all anchors for a document copy. On failure the list is
// emptied and the error is returned for a dismissible notification;
// the viewer itself stays usable.
func (s *AnnotationService) Load(ctx context.Context, copyID string) ([]domain.Anchor, error) {
	logger.Section("Annotation Load")
	logger.Debug("Copy: %s", copyID)

	anchors, err := s.store.List(ctx, copyID)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.copyID = copyID
	if err != nil {
		s.anchors = nil
		logger.Warn("Load failed: %v", err)
		return []domain.Anchor{}, fmt.Errorf("load annotations: %w", err)
	}

	s.anchors = anchors
	logger.Info("Loaded %d anchors", len(anchors))
	return s.snapshotLocked(), nil
}

// Create commits a selection candidate as a new anchor. Geometry is
// normalised into unscaled document units using the container origin
// measured for the candidate's page, when available.
//
// A create that resolves after the reader switched to another document
// copy is not spliced into the list; the anchor is persisted remotely
// and appears on the next Load.
func (s *AnnotationService) Create(
	ctx context.Context, candidate domain.SelectionCandidate, kind domain.AnchorKind, body, color string,
) (*domain.Anchor, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: unknown anchor kind %q", domain.ErrInvalidInput, kind)
	}
	if kind == domain.KindComment && CleanSelectionText(body) == "" {
		return nil, domain.ErrEmptyBody
	}

	s.mu.RLock()
	copyID := s.copyID
	s.mu.RUnlock()
	if copyID == "" {
		return nil, fmt.Errorf("%w: no document copy loaded", domain.ErrInvalidInput)
	}

	var origin *domain.Point
	if s.measurer != nil {
		if p, ok := s.measurer.Origin(candidate.Page); ok {
			origin = &p
		}
	}

	anchor := domain.Anchor{
		CopyID:    copyID,
		Kind:      kind,
		Page:      candidate.Page,
		Position:  candidate.Bounds.Normalize(origin, candidate.Scale),
		Text:      candidate.Text,
		Body:      body,
		Color:     color,
		CreatedAt: time.Now(),
	}

	logger.Debug("Create %s on page %d: %q", kind, anchor.Page, anchor.Text)
	created, err := s.store.Create(ctx, anchor)
	if err != nil {
		logger.Warn("Create failed: %v", err)
		return nil, fmt.Errorf("create annotation: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.copyID != copyID {
		// Reader navigated to another copy mid-request. Persisted
		// remotely; surfaces on the next Load.
		logger.Debug("Create resolved after copy switch, not inserted locally")
		return created, nil
	}

	s.anchors = append([]domain.Anchor{*created}, s.anchors...)
	return created, nil
}

// Remove deletes an anchor. The in-memory list drops it immediately;
// the remote delete follows. Delete is idempotent remotely, so an
// unknown id is a successful no-op. A failed remote delete does not
// resurrect the item - silently restoring a user-deleted entry is
// worse than a stale list, and the next Load resynchronises.
func (s *AnnotationService) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	kept := s.anchors[:0]
	for _, a := range s.anchors {
		if a.ID != id {
			kept = append(kept, a)
		}
	}
	s.anchors = kept
	s.mu.Unlock()

	if err := s.store.Delete(ctx, id); err != nil {
		logger.Warn("Remote delete of %s failed: %v (reload to resync)", id, err)
		return fmt.Errorf("delete annotation: %w", err)
	}
	return nil
}

// All returns the current in-memory list, newest first.
func (s *AnnotationService) All() []domain.Anchor {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// ForPage returns anchors on one page only.
func (s *AnnotationService) ForPage(page int) []domain.Anchor {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.Anchor, 0)
	for _, a := range s.anchors {
		if a.Page == page {
			result = append(result, a)
		}
	}
	return result
}

// snapshotLocked copies the anchor list. Callers hold at least a read lock.
func (s *AnnotationService) snapshotLocked() []domain.Anchor {
	out := make([]domain.Anchor, len(s.anchors))
	copy(out, s.anchors)
	return out
}
