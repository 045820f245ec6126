package mcp

import (
	"github.com/custodia-labs/margin-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Search queries the knowledge index.
	Search driving.SearchService

	// Annotations manages the anchor collection.
	Annotations driving.AnnotationService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Search == nil {
		return ErrMissingSearchService
	}
	if p.Annotations == nil {
		return ErrMissingAnnotationService
	}
	return nil
}
