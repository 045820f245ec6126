// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/margin-cli/internal/core/domain"
)

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewReader is the page reading and selection view.
	ViewReader ViewType = iota
	// ViewAnnotations is the windowed annotation list.
	ViewAnnotations
	// ViewSearch is the knowledge index search view.
	ViewSearch
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewReader:
		return "reader"
	case ViewAnnotations:
		return "annotations"
	case ViewSearch:
		return "search"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// PageTextLoaded carries a page's extracted text back to the reader.
type PageTextLoaded struct {
	Page int
	Text string
	Err  error
}

// AnchorsLoaded carries the anchor list for the open copy.
type AnchorsLoaded struct {
	Anchors []domain.Anchor
	Err     error
}

// AnchorCommitted signals a commit of the current candidate finished.
type AnchorCommitted struct {
	Anchor *domain.Anchor
	Err    error
}

// AnchorRemoved signals an anchor delete finished.
type AnchorRemoved struct {
	ID  string
	Err error
}

// SearchCompleted carries search results back to the model. Query is
// the text the request was issued for, so stale responses can be told
// apart from current ones.
type SearchCompleted struct {
	Query   string
	Results []domain.SearchResult
	Err     error
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
