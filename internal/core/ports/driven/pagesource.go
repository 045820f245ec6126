package driven

import "context"

// PageSource is the document renderer consumed as a black box: it
// reports the total page count and yields the text of a given page.
// Rendering fidelity is explicitly out of scope for the core.
type PageSource interface {
	// PageCount returns the total number of pages.
	PageCount(ctx context.Context) (int, error)

	// PageText returns the extracted text of a 1-based page.
	PageText(ctx context.Context, page int) (string, error)
}
