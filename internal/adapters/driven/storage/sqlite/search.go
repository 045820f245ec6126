package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/margin-cli/internal/core/domain"
	"github.com/custodia-labs/margin-cli/internal/core/ports/driven"
)

// searchIndex implements driven.SearchIndex over the local cache with
// substring matching. Body matches outrank span-text matches.
type searchIndex struct {
	store *Store
}

var _ driven.SearchIndex = (*searchIndex)(nil)

// SearchIndex returns the knowledge index over the local cache.
func (s *Store) SearchIndex() driven.SearchIndex {
	return &searchIndex{store: s}
}

// Query matches the query text against anchor bodies and span texts.
func (i *searchIndex) Query(
	ctx context.Context, query string, opts domain.SearchOptions,
) ([]domain.SearchResult, error) {
	pattern := "%" + escapeLike(strings.ToLower(query)) + "%"

	q := `
		SELECT kind, page, text, body,
		       CASE WHEN LOWER(body) LIKE ? ESCAPE '\' THEN 1.0 ELSE 0.5 END AS score
		FROM anchors
		WHERE (LOWER(body) LIKE ? ESCAPE '\' OR LOWER(text) LIKE ? ESCAPE '\')
	`
	args := []any{pattern, pattern, pattern}
	if opts.CopyID != "" {
		q += " AND copy_id = ?"
		args = append(args, opts.CopyID)
	}
	q += " ORDER BY score DESC, created_at DESC"
	if opts.Limit > 0 {
		q += " LIMIT ?"
		args = append(args, opts.Limit)
	}

	rows, err := i.store.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("querying index: %w", err)
	}
	defer rows.Close()

	results := []domain.SearchResult{}
	for rows.Next() {
		var kind domain.AnchorKind
		var page int
		var text, body string
		var score float64
		if err := rows.Scan(&kind, &page, &text, &body, &score); err != nil {
			return nil, fmt.Errorf("scanning result: %w", err)
		}

		excerpt := body
		if score < 1.0 || excerpt == "" {
			excerpt = text
		}
		results = append(results, domain.SearchResult{
			Score:   score,
			Page:    page,
			Kind:    kind,
			Excerpt: excerpt,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating results: %w", err)
	}

	return results, nil
}

// escapeLike escapes LIKE wildcards in user input.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	s = strings.ReplaceAll(s, "_", `\_`)
	return s
}
