package services

import (
	"context"
	"sync"
	"time"

	"github.com/custodia-labs/margin-cli/internal/core/domain"
	"github.com/custodia-labs/margin-cli/internal/core/ports/driving"
	"github.com/custodia-labs/margin-cli/internal/logger"
)

// Ensure SelectionMachine implements the interface.
var _ driving.SelectionController = (*SelectionMachine)(nil)

// DefaultAuthoringGrace is how long the authoring mutex outlives entry
// into AuthoringLocked. The grace absorbs the burst of selection and
// click events the authoring surface's own mount triggers.
const DefaultAuthoringGrace = 300 * time.Millisecond

// SelectionMachine owns the selection lifecycle and the single current
// candidate. Transitions are strictly event-ordered under one mutex;
// no other component mutates the candidate directly.
//
// While AuthoringLocked, and for a grace period after entering it, all
// selection-change and click-outside handling is suppressed. Opening an
// authoring surface therefore never causes the candidate or popover to
// be cleared by an unrelated DOM event.
type SelectionMachine struct {
	validator   *Validator
	annotations driving.AnnotationService

	grace time.Duration
	now   func() time.Time

	mu              sync.Mutex
	state           domain.SelectionState
	candidate       *domain.SelectionCandidate
	suppressedUntil time.Time
	currentPage     int
}

// NewSelectionMachine creates the selection controller for one viewer.
func NewSelectionMachine(validator *Validator, annotations driving.AnnotationService) *SelectionMachine {
	if validator == nil {
		validator = NewValidator()
	}
	return &SelectionMachine{
		validator:   validator,
		annotations: annotations,
		grace:       DefaultAuthoringGrace,
		now:         time.Now,
		state:       domain.SelectionIdle,
		currentPage: 1,
	}
}

// WithClock overrides the time source. Used by tests.
func (m *SelectionMachine) WithClock(now func() time.Time) *SelectionMachine {
	m.now = now
	return m
}

// WithGrace overrides the authoring grace period.
func (m *SelectionMachine) WithGrace(grace time.Duration) *SelectionMachine {
	m.grace = grace
	return m
}

// State returns the current lifecycle phase.
func (m *SelectionMachine) State() domain.SelectionState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Candidate returns a copy of the current candidate, or nil.
func (m *SelectionMachine) Candidate() *domain.SelectionCandidate {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.candidate == nil {
		return nil
	}
	c := *m.candidate
	return &c
}

// locked reports whether the authoring mutex suppresses events.
// Callers must hold m.mu.
func (m *SelectionMachine) locked() bool {
	return m.state == domain.SelectionAuthoringLocked || m.now().Before(m.suppressedUntil)
}

// PointerDown moves to Selecting, clearing any prior popover.
func (m *SelectionMachine) PointerDown() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.locked() {
		logger.Debug("pointerDown suppressed: authoring lock held")
		return
	}
	m.state = domain.SelectionSelecting
	m.candidate = nil
}

// PointerUp runs the validator over the released selection. Accepted
// selections show the popover; rejected ones return to Idle.
func (m *SelectionMachine) PointerUp(raw domain.RawSelection) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.locked() {
		logger.Debug("pointerUp suppressed: authoring lock held")
		return false
	}
	if m.state != domain.SelectionSelecting {
		return false
	}
	if !m.accept(raw) {
		// Selecting --reject--> Idle per the transition table.
		m.state = domain.SelectionIdle
		m.candidate = nil
		return false
	}
	return true
}

// SelectionChanged handles selectionchange events outside the pointer
// cycle. A rejection here produces NO transition: a duplicate re-fire
// of the text already in the popover must not clear it.
func (m *SelectionMachine) SelectionChanged(raw domain.RawSelection) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.locked() {
		logger.Debug("selectionChange suppressed: authoring lock held")
		return false
	}
	return m.accept(raw)
}

// accept validates raw and moves to Popover when genuine. Rejections
// leave the state untouched; PointerUp layers its own Idle transition
// on top. Callers hold m.mu.
func (m *SelectionMachine) accept(raw domain.RawSelection) bool {
	candidate, err := m.validator.Validate(raw, m.currentPage)
	if err != nil {
		return false
	}
	m.state = domain.SelectionPopover
	m.candidate = candidate
	return true
}

// ClickOutside dismisses the popover unless the mutex is held.
func (m *SelectionMachine) ClickOutside() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.locked() {
		logger.Debug("clickOutside suppressed: authoring lock held")
		return
	}
	m.toIdleLocked()
}

// RequestAuthoring moves Popover -> AuthoringLocked and acquires the
// mutex for at least the grace period.
func (m *SelectionMachine) RequestAuthoring() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != domain.SelectionPopover || m.candidate == nil {
		return domain.ErrNoCandidate
	}
	m.state = domain.SelectionAuthoringLocked
	m.suppressedUntil = m.now().Add(m.grace)
	logger.Debug("authoring lock acquired for %q", m.candidate.Text)
	return nil
}

// Commit persists the candidate as an anchor.
//
// A commit with no candidate is a no-op error, never a crash. An empty
// comment body is rejected locally with the lock retained. A remote
// failure returns to Popover with the candidate intact so the user can
// retry without re-selecting; the typed text is the caller's to keep.
func (m *SelectionMachine) Commit(ctx context.Context, kind domain.AnchorKind, body, color string) (*domain.Anchor, error) {
	m.mu.Lock()
	if m.candidate == nil {
		m.mu.Unlock()
		return nil, domain.ErrNoCandidate
	}
	if kind == domain.KindComment && CleanSelectionText(body) == "" {
		m.mu.Unlock()
		return nil, domain.ErrEmptyBody
	}
	candidate := *m.candidate
	m.mu.Unlock()

	// The remote call runs outside the state lock: transitions stay
	// event-ordered, the network does not serialise behind the mutex.
	anchor, err := m.annotations.Create(ctx, candidate, kind, body, color)

	m.mu.Lock()
	defer m.mu.Unlock()
	if err != nil {
		m.state = domain.SelectionPopover
		logger.Warn("commit failed, candidate retained: %v", err)
		return nil, err
	}

	m.toIdleLocked()
	return anchor, nil
}

// CancelAuthoring abandons the authoring surface. The mutex keeps
// suppressing events until the grace period from entry has elapsed.
func (m *SelectionMachine) CancelAuthoring() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != domain.SelectionAuthoringLocked {
		return
	}
	m.toIdleLocked()
}

// Navigated forces Idle from any state, lock included: a candidate's
// page and position context is meaningless after page or zoom changes.
func (m *SelectionMachine) Navigated(page int, zoom float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if page > 0 {
		m.currentPage = page
	}
	m.state = domain.SelectionIdle
	m.candidate = nil
	m.suppressedUntil = time.Time{}
	m.validator.ResetMemo()
}

// toIdleLocked clears the candidate and the duplicate memo so the next
// genuine selection is not rejected. Callers hold m.mu.
func (m *SelectionMachine) toIdleLocked() {
	m.state = domain.SelectionIdle
	m.candidate = nil
	m.validator.ResetMemo()
}
