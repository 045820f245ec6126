package domain

// SearchResult is a scored hit from the knowledge index. Results are
// ephemeral: discarded when the query changes or the panel closes.
type SearchResult struct {
	// Score is the relevance score assigned by the index.
	Score float64 `json:"score"`

	// Page is the source anchor's page number.
	Page int `json:"page"`

	// Kind is the content type of the source anchor.
	Kind AnchorKind `json:"kind"`

	// Excerpt is a text snippet of the matched content.
	Excerpt string `json:"excerpt"`
}

// SearchOptions controls a knowledge index query.
type SearchOptions struct {
	// CopyID restricts results to one document copy when set.
	CopyID string

	// Limit caps the number of results. Zero means the index default.
	Limit int
}
