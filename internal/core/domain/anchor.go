package domain

import "time"

// AnchorKind distinguishes the two persisted annotation types.
type AnchorKind string

const (
	// KindComment is a free-text note anchored to a span.
	KindComment AnchorKind = "comment"

	// KindHighlight is a colour tag anchored to a span.
	KindHighlight AnchorKind = "highlight"
)

// Valid reports whether the kind is one of the known annotation types.
func (k AnchorKind) Valid() bool {
	return k == KindComment || k == KindHighlight
}

// Default highlight colours offered by the authoring surface.
const (
	ColorYellow = "yellow"
	ColorGreen  = "green"
	ColorBlue   = "blue"
	ColorPink   = "pink"
)

// Anchor is a persisted annotation tied to an exact text span on a page.
// Anchors are created on commit of a SelectionCandidate and deleted
// explicitly; they are never mutated in place.
type Anchor struct {
	// ID is the server-assigned identifier.
	ID string `json:"id"`

	// CopyID is the owning document copy.
	CopyID string `json:"copyId"`

	// Kind is comment or highlight.
	Kind AnchorKind `json:"kind"`

	// Page is the 1-based page number the span lives on.
	Page int `json:"page"`

	// Position is the anchored span in unscaled document units.
	// Display geometry at zoom z is Position.Scaled(z).
	Position Rect `json:"position"`

	// Text is the exact selected text the anchor points at.
	Text string `json:"text"`

	// Body is the free-text note. Comments only.
	Body string `json:"body,omitempty"`

	// Color is the highlight colour tag.
	Color string `json:"color,omitempty"`

	// CreatedAt is when the anchor was committed.
	CreatedAt time.Time `json:"createdAt"`
}
