package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/margin-cli/internal/core/domain"
)

func rawSelection(text string) domain.RawSelection {
	return domain.RawSelection{
		Text:         text,
		Bounds:       domain.Rect{Left: 100, Top: 200, Width: 80, Height: 14},
		Page:         3,
		Scale:        1.5,
		InsideViewer: true,
	}
}

// TestCleanSelectionText tests the pure cleaning function
func TestCleanSelectionText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"collapses runs", "hello    world", "hello world"},
		{"trims ends", "  hello world  ", "hello world"},
		{"folds newlines", "hello\nworld", "hello world"},
		{"mixed whitespace", " a\t b\n\nc ", "a b c"},
		{"empty", "   \n\t ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanSelectionText(tt.in))
		})
	}
}

// TestValidator_AcceptsShortGenuineSelection tests the happy path:
// a one-line, ten-character selection is accepted.
func TestValidator_AcceptsShortGenuineSelection(t *testing.T) {
	v := NewValidator()

	candidate, err := v.Validate(rawSelection("hello text"), 1)

	require.NoError(t, err)
	assert.Equal(t, "hello text", candidate.Text)
	assert.Equal(t, 3, candidate.Page)
	assert.Equal(t, 1.5, candidate.Scale)
	assert.False(t, candidate.CapturedAt.IsZero())
}

// TestValidator_RejectsOutsideViewer tests the DOM-subtree rule
func TestValidator_RejectsOutsideViewer(t *testing.T) {
	v := NewValidator()
	raw := rawSelection("hello text")
	raw.InsideViewer = false

	_, err := v.Validate(raw, 1)

	assert.ErrorIs(t, err, domain.ErrNoiseSelection)
}

// TestValidator_RejectsTooShort tests the minimum-length rule
func TestValidator_RejectsTooShort(t *testing.T) {
	v := NewValidator()

	for _, text := range []string{"", " ", "a", "a \n"} {
		_, err := v.Validate(rawSelection(text), 1)
		assert.ErrorIs(t, err, domain.ErrNoiseSelection, "text %q", text)
	}
}

// TestValidator_RejectsFourNonBlankLines tests the accidental
// whole-page-selection heuristic: 4+ non-blank lines are rejected.
func TestValidator_RejectsFourNonBlankLines(t *testing.T) {
	v := NewValidator()

	_, err := v.Validate(rawSelection("one\ntwo\nthree\nfour"), 1)
	assert.ErrorIs(t, err, domain.ErrNoiseSelection)

	// Blank lines do not count.
	candidate, err := v.Validate(rawSelection("one\n\ntwo\n\nthree"), 1)
	require.NoError(t, err)
	assert.Equal(t, "one two three", candidate.Text)
}

// TestValidator_RejectsWhitespaceHeavy tests the layout-gap heuristic
func TestValidator_RejectsWhitespaceHeavy(t *testing.T) {
	v := NewValidator()

	_, err := v.Validate(rawSelection("ab      \t   "), 1)
	assert.ErrorIs(t, err, domain.ErrNoiseSelection)
}

// TestValidator_SuppressesDuplicateReFire tests that the same text
// twice in succession yields exactly one acceptance.
func TestValidator_SuppressesDuplicateReFire(t *testing.T) {
	v := NewValidator()

	_, err := v.Validate(rawSelection("Hello world"), 1)
	require.NoError(t, err)

	_, err = v.Validate(rawSelection("Hello world"), 1)
	assert.ErrorIs(t, err, domain.ErrNoiseSelection)

	// A different selection is accepted again.
	_, err = v.Validate(rawSelection("Another span"), 1)
	assert.NoError(t, err)
}

// TestValidator_ResetMemo tests that clearing the memo re-enables the
// same text.
func TestValidator_ResetMemo(t *testing.T) {
	v := NewValidator()

	_, err := v.Validate(rawSelection("Hello world"), 1)
	require.NoError(t, err)

	v.ResetMemo()

	_, err = v.Validate(rawSelection("Hello world"), 1)
	assert.NoError(t, err)
}

// TestValidator_FallsBackToCurrentPage tests page resolution when the
// capture layer found no page marker.
func TestValidator_FallsBackToCurrentPage(t *testing.T) {
	v := NewValidator()
	raw := rawSelection("hello text")
	raw.Page = 0

	candidate, err := v.Validate(raw, 7)

	require.NoError(t, err)
	assert.Equal(t, 7, candidate.Page)
}

// TestValidator_DefaultsScale tests that a missing capture scale is 1
func TestValidator_DefaultsScale(t *testing.T) {
	v := NewValidator()
	raw := rawSelection("hello text")
	raw.Scale = 0

	candidate, err := v.Validate(raw, 1)

	require.NoError(t, err)
	assert.Equal(t, 1.0, candidate.Scale)
}
