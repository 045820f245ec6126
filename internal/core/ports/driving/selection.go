package driving

import (
	"context"

	"github.com/custodia-labs/margin-cli/internal/core/domain"
)

// SelectionController owns the selection lifecycle:
// Idle -> Selecting -> Popover -> AuthoringLocked -> Idle.
//
// It is the single writer of the current candidate. All UI layers
// request transitions through these methods; none may mutate the
// candidate directly.
type SelectionController interface {
	// State returns the current lifecycle phase.
	State() domain.SelectionState

	// Candidate returns the current selection candidate, or nil.
	Candidate() *domain.SelectionCandidate

	// PointerDown signals a pointer press inside the viewer. Clears any
	// prior popover and moves to Selecting. Suppressed while the
	// authoring mutex is held.
	PointerDown()

	// PointerUp delivers the raw selection at pointer release. Returns
	// true when the validator accepted it and the popover is showing.
	PointerUp(raw domain.RawSelection) bool

	// SelectionChanged delivers a browser-style selectionchange event.
	// Duplicate re-fires of the same text are suppressed, as are all
	// events while the authoring mutex is held.
	SelectionChanged(raw domain.RawSelection) bool

	// ClickOutside dismisses the popover. Suppressed while the
	// authoring mutex is held so an authoring surface's own mount
	// events can never clear the candidate.
	ClickOutside()

	// RequestAuthoring moves Popover -> AuthoringLocked, acquiring the
	// authoring mutex. Returns domain.ErrNoCandidate if no popover is
	// showing.
	RequestAuthoring() error

	// Commit persists the candidate as an anchor. Empty body for a
	// comment is rejected locally (domain.ErrEmptyBody, lock retained).
	// A remote failure returns to Popover with the candidate intact so
	// the user can retry without re-selecting.
	Commit(ctx context.Context, kind domain.AnchorKind, body, color string) (*domain.Anchor, error)

	// CancelAuthoring abandons the authoring surface and returns to
	// Idle, releasing the mutex after the grace period.
	CancelAuthoring()

	// Navigated signals a page or zoom change. Forces Idle from any
	// state: stale candidates never survive a navigation.
	Navigated(page int, zoom float64)
}
