package services

import (
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/custodia-labs/margin-cli/internal/core/domain"
	"github.com/custodia-labs/margin-cli/internal/logger"
)

// Validation thresholds. Selections outside these bounds are classified
// as incidental rather than intentional annotation targets.
const (
	// minSelectionLength is the minimum cleaned text length.
	minSelectionLength = 2

	// maxSelectionLines is the maximum number of non-blank lines before
	// a selection is treated as an accidental whole-page grab.
	maxSelectionLines = 3

	// maxWhitespaceRatio is the maximum share of whitespace before a
	// selection is treated as a layout-gap grab.
	maxWhitespaceRatio = 0.5
)

// Validator classifies raw selections as genuine annotation targets or
// noise, before any UI is triggered. It remembers the last accepted
// text so redundant re-fires of the same browser event are suppressed.
type Validator struct {
	mu       sync.Mutex
	lastText string
}

// NewValidator creates a selection validator.
func NewValidator() *Validator {
	return &Validator{}
}

// CleanSelectionText normalises raw selection text: embedded newlines
// become spaces, runs of whitespace collapse to a single space, and the
// ends are trimmed. Pure function.
func CleanSelectionText(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// Validate classifies a raw selection. On success it returns a
// SelectionCandidate with the page resolved from the capture's page
// marker, defaulting to currentPage when the marker is missing.
// Rejections return domain.ErrNoiseSelection; they are expected and
// produce no disruptive UI.
func (v *Validator) Validate(raw domain.RawSelection, currentPage int) (*domain.SelectionCandidate, error) {
	if !raw.InsideViewer {
		logger.Debug("Selection rejected: outside viewer subtree")
		return nil, domain.ErrNoiseSelection
	}

	cleaned := CleanSelectionText(raw.Text)
	if len(cleaned) < minSelectionLength {
		logger.Debug("Selection rejected: too short (%d chars)", len(cleaned))
		return nil, domain.ErrNoiseSelection
	}

	if n := countNonBlankLines(raw.Text); n > maxSelectionLines {
		logger.Debug("Selection rejected: spans %d non-blank lines", n)
		return nil, domain.ErrNoiseSelection
	}

	if r := whitespaceRatio(raw.Text); r > maxWhitespaceRatio {
		logger.Debug("Selection rejected: whitespace ratio %.2f", r)
		return nil, domain.ErrNoiseSelection
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if cleaned == v.lastText {
		logger.Debug("Selection rejected: duplicate re-fire of %q", cleaned)
		return nil, domain.ErrNoiseSelection
	}
	v.lastText = cleaned

	page := raw.Page
	if page <= 0 {
		page = currentPage
	}

	scale := raw.Scale
	if scale <= 0 {
		scale = 1
	}

	logger.Debug("Selection accepted: %q on page %d", cleaned, page)
	return &domain.SelectionCandidate{
		Text:       cleaned,
		Bounds:     raw.Bounds,
		Page:       page,
		Scale:      scale,
		CapturedAt: time.Now(),
	}, nil
}

// ResetMemo clears the last-seen-text memo so the next genuine
// selection of the same text is not rejected as a duplicate. Called
// after commit, cancel, and navigation.
func (v *Validator) ResetMemo() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.lastText = ""
}

// countNonBlankLines counts lines in the raw text containing at least
// one non-space character.
func countNonBlankLines(text string) int {
	n := 0
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			n++
		}
	}
	return n
}

// whitespaceRatio returns the share of whitespace runes in text.
// Empty text counts as all whitespace.
func whitespaceRatio(text string) float64 {
	if len(text) == 0 {
		return 1
	}
	total, spaces := 0, 0
	for _, r := range text {
		total++
		if unicode.IsSpace(r) {
			spaces++
		}
	}
	return float64(spaces) / float64(total)
}
