package domain

// Window is a pagination view over an ordered list. PageIndex is always
// clamped into [1, max(1, TotalPages)], so switching to a shorter source
// list never leaves the window pointing past the end. Callers switching
// the source list entirely construct a fresh window at page 1.
type Window[T any] struct {
	// Slice is the visible portion of the source list.
	Slice []T

	// PageIndex is the 1-based page after clamping.
	PageIndex int

	// TotalPages is ceil(len(items)/pageSize), at least 1.
	TotalPages int
}

// Paginate slices items into a fixed-size window. pageSize below 1 is
// treated as 1. The function is pure; it never mutates items.
func Paginate[T any](items []T, pageIndex, pageSize int) Window[T] {
	if pageSize < 1 {
		pageSize = 1
	}

	totalPages := (len(items) + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}

	if pageIndex < 1 {
		pageIndex = 1
	}
	if pageIndex > totalPages {
		pageIndex = totalPages
	}

	start := (pageIndex - 1) * pageSize
	end := start + pageSize
	if start > len(items) {
		start = len(items)
	}
	if end > len(items) {
		end = len(items)
	}

	return Window[T]{
		Slice:      items[start:end],
		PageIndex:  pageIndex,
		TotalPages: totalPages,
	}
}
