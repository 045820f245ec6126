package mcp

import (
	"context"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/margin-cli/internal/core/domain"
)

// SearchInput is the input schema for the search_annotations tool.
type SearchInput struct {
	Query  string `json:"query" jsonschema:"the search query to find annotations"`
	CopyID string `json:"copy_id,omitempty" jsonschema:"restrict results to one document copy"`
	Limit  int    `json:"limit,omitempty" jsonschema:"maximum number of results to return (default 10)"`
}

// SearchOutput is the output schema for the search_annotations tool.
type SearchOutput struct {
	Results []SearchResultOutput `json:"results"`
	Count   int                  `json:"count"`
}

// SearchResultOutput represents a single search result.
type SearchResultOutput struct {
	Score   float64 `json:"score"`
	Page    int     `json:"page"`
	Kind    string  `json:"kind"`
	Excerpt string  `json:"excerpt,omitempty"`
}

// ListInput is the input schema for the list_annotations tool.
type ListInput struct {
	CopyID string `json:"copy_id" jsonschema:"the document copy to list annotations for"`
	Page   int    `json:"page,omitempty" jsonschema:"only annotations on this document page"`
}

// ListOutput is the output schema for the list_annotations tool.
type ListOutput struct {
	Annotations []AnnotationOutput `json:"annotations"`
	Count       int                `json:"count"`
}

// AnnotationOutput represents a single annotation, newest first.
type AnnotationOutput struct {
	ID        string `json:"id"`
	Kind      string `json:"kind"`
	Page      int    `json:"page"`
	Text      string `json:"text"`
	Body      string `json:"body,omitempty"`
	Color     string `json:"color,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_annotations",
		Description: "Search annotations and anchored text spans in the knowledge index",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_annotations",
		Description: "List annotations on a document copy, newest first",
	}, s.handleList)
}

// handleSearch handles the search_annotations tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = 10
	}

	opts := domain.SearchOptions{CopyID: input.CopyID, Limit: limit}
	results, err := s.ports.Search.Search(ctx, input.Query, opts)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Results: make([]SearchResultOutput, len(results)),
		Count:   len(results),
	}

	for i := range results {
		output.Results[i] = SearchResultOutput{
			Score:   results[i].Score,
			Page:    results[i].Page,
			Kind:    string(results[i].Kind),
			Excerpt: results[i].Excerpt,
		}
	}

	return nil, output, nil
}

// handleList handles the list_annotations tool invocation.
func (s *Server) handleList(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListInput,
) (*mcp.CallToolResult, ListOutput, error) {
	anchors, err := s.ports.Annotations.Load(ctx, input.CopyID)
	if err != nil {
		return nil, ListOutput{}, err
	}

	if input.Page > 0 {
		anchors = s.ports.Annotations.ForPage(input.Page)
	}

	output := ListOutput{
		Annotations: make([]AnnotationOutput, len(anchors)),
		Count:       len(anchors),
	}

	for i := range anchors {
		out := AnnotationOutput{
			ID:    anchors[i].ID,
			Kind:  string(anchors[i].Kind),
			Page:  anchors[i].Page,
			Text:  anchors[i].Text,
			Body:  anchors[i].Body,
			Color: anchors[i].Color,
		}
		if !anchors[i].CreatedAt.IsZero() {
			out.CreatedAt = anchors[i].CreatedAt.Format(time.RFC3339)
		}
		output.Annotations[i] = out
	}

	return nil, output, nil
}
