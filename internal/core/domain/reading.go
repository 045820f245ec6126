package domain

import "time"

// ReadingPosition is the per-copy navigation state: one exists for each
// open document copy. Mutated by page and zoom actions, persisted
// asynchronously on a debounce.
type ReadingPosition struct {
	// CopyID is the owning document copy.
	CopyID string `json:"copyId"`

	// CurrentPage is the 1-based page being displayed.
	CurrentPage int `json:"currentPage"`

	// TotalPages is the page count reported by the renderer.
	TotalPages int `json:"totalPages"`

	// Zoom is the current scale factor.
	Zoom float64 `json:"zoom"`

	// SavedAt is when the position was last persisted.
	SavedAt time.Time `json:"savedAt,omitempty"`
}

// PercentComplete returns reading progress as currentPage/totalPages*100,
// clamped to [0, 100]. Zero total pages yields zero.
func (p ReadingPosition) PercentComplete() float64 {
	if p.TotalPages <= 0 {
		return 0
	}
	pct := float64(p.CurrentPage) / float64(p.TotalPages) * 100
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}
