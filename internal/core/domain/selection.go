package domain

import "time"

// SelectionState is a phase in the selection lifecycle. The selection
// controller owns the single instance of this state; every other
// component requests transitions, never direct mutation.
type SelectionState int

const (
	// SelectionIdle means no selection is in progress.
	SelectionIdle SelectionState = iota

	// SelectionSelecting means the pointer is down inside the viewer.
	SelectionSelecting

	// SelectionPopover means a validated candidate exists and the
	// annotation popover is showing.
	SelectionPopover

	// SelectionAuthoringLocked means an authoring surface is open and
	// selection processing is suppressed (the authoring mutex).
	SelectionAuthoringLocked
)

// String returns a human-readable state name.
func (s SelectionState) String() string {
	switch s {
	case SelectionIdle:
		return "idle"
	case SelectionSelecting:
		return "selecting"
	case SelectionPopover:
		return "popover"
	case SelectionAuthoringLocked:
		return "authoring-locked"
	default:
		return "unknown"
	}
}

// RawSelection is an unvalidated selection as reported by the capture
// layer (the rendered page surface). It carries viewport-space geometry
// and whatever page context the capture layer could resolve.
type RawSelection struct {
	// Text is the selected text, uncleaned.
	Text string

	// Bounds is the selection's bounding rectangle in viewport pixels.
	Bounds Rect

	// Page is the page number resolved from the nearest page marker,
	// or 0 if the capture layer found none.
	Page int

	// Scale is the zoom factor in effect at capture time.
	Scale float64

	// InsideViewer reports whether the selection's common ancestor
	// lies within the document viewer surface.
	InsideViewer bool
}

// SelectionCandidate is a validated selection under consideration for
// annotation. It is ephemeral: discarded on the next selection change,
// page navigation, zoom change, or successful commit.
type SelectionCandidate struct {
	// Text is the cleaned selected text.
	Text string

	// Bounds is the bounding rectangle in viewport pixels at capture.
	Bounds Rect

	// Page is the resolved page number.
	Page int

	// Scale is the zoom factor at capture time, needed to normalise
	// Bounds into unscaled document units on commit.
	Scale float64

	// CapturedAt is when the selection was validated.
	CapturedAt time.Time
}
