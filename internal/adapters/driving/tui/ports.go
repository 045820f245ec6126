// Package tui provides the interactive terminal reader for Margin.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/margin-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Reader is the session on the open document copy.
	Reader driving.ReaderSession

	// Selection drives the selection-to-anchor pipeline.
	Selection driving.SelectionController

	// Annotations manages the anchor collection.
	Annotations driving.AnnotationService

	// Search queries the knowledge index.
	Search driving.SearchService
}

// Validate ensures all required ports are set.
// Returns an error if any port is nil.
func (p *Ports) Validate() error {
	if p.Reader == nil {
		return ErrMissingReaderSession
	}
	if p.Selection == nil {
		return ErrMissingSelectionController
	}
	if p.Annotations == nil {
		return ErrMissingAnnotationService
	}
	if p.Search == nil {
		return ErrMissingSearchService
	}
	return nil
}
