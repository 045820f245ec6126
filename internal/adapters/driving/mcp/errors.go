// Package mcp provides an MCP (Model Context Protocol) server adapter for Margin.
// It enables AI assistants to search and list the reader's annotations.
package mcp

import "errors"

// ErrMissingSearchService is returned when the search service is not provided.
var ErrMissingSearchService = errors.New("mcp: search service is required")

// ErrMissingAnnotationService is returned when the annotation service is not provided.
var ErrMissingAnnotationService = errors.New("mcp: annotation service is required")
