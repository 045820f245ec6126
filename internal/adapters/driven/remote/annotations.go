package remote

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/custodia-labs/margin-cli/internal/core/domain"
	"github.com/custodia-labs/margin-cli/internal/core/ports/driven"
	"github.com/custodia-labs/margin-cli/internal/logger"
)

// Ensure the client implements the driven ports.
var (
	_ driven.AnnotationStore = (*Client)(nil)
	_ driven.ProgressStore   = (*Client)(nil)
	_ driven.SearchIndex     = (*Client)(nil)
)

// List fetches all anchors for a document copy. Idempotent, safe to retry.
func (c *Client) List(ctx context.Context, copyID string) ([]domain.Anchor, error) {
	var anchors []domain.Anchor
	path := fmt.Sprintf("/copies/%s/annotations", url.PathEscape(copyID))
	if err := c.do(ctx, http.MethodGet, path, nil, &anchors); err != nil {
		return nil, err
	}
	return anchors, nil
}

// Create persists a new anchor. NOT idempotent: never retried here;
// failures surface to the user for manual retry.
func (c *Client) Create(ctx context.Context, anchor domain.Anchor) (*domain.Anchor, error) {
	var created domain.Anchor
	path := fmt.Sprintf("/copies/%s/annotations", url.PathEscape(anchor.CopyID))
	if err := c.do(ctx, http.MethodPost, path, anchor, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Delete removes an anchor. The contract makes delete idempotent: a
// 404 means the anchor is already gone and is reported as success.
func (c *Client) Delete(ctx context.Context, id string) error {
	path := fmt.Sprintf("/annotations/%s", url.PathEscape(id))
	err := c.do(ctx, http.MethodDelete, path, nil, nil)
	if errors.Is(err, domain.ErrNotFound) {
		logger.Debug("delete %s: already removed", id)
		return nil
	}
	return err
}

// SaveProgress persists a reading position. Idempotent, safe to retry
// or drop; the payload carries the derived completion percentage for
// service-side display.
func (c *Client) SaveProgress(ctx context.Context, pos domain.ReadingPosition) error {
	payload := struct {
		CurrentPage     int     `json:"currentPage"`
		TotalPages      int     `json:"totalPages"`
		Zoom            float64 `json:"zoom"`
		PercentComplete float64 `json:"percentComplete"`
	}{
		CurrentPage:     pos.CurrentPage,
		TotalPages:      pos.TotalPages,
		Zoom:            pos.Zoom,
		PercentComplete: pos.PercentComplete(),
	}
	path := fmt.Sprintf("/copies/%s/progress", url.PathEscape(pos.CopyID))
	return c.do(ctx, http.MethodPut, path, payload, nil)
}

// Query runs a semantic search against the knowledge index.
func (c *Client) Query(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.SearchResult, error) {
	payload := struct {
		Query  string `json:"query"`
		CopyID string `json:"copyId,omitempty"`
		Limit  int    `json:"limit,omitempty"`
	}{Query: query, CopyID: opts.CopyID, Limit: opts.Limit}

	var results []domain.SearchResult
	if err := c.do(ctx, http.MethodPost, "/search", payload, &results); err != nil {
		return nil, err
	}
	return results, nil
}
