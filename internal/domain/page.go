package domain

// PaginationParams carries page/limit values from the HTTP layer down to the
// repo layer. Page is 1-indexed. Limit is capped at 100 by NewPaginationParams.
type PaginationParams struct {
	// Page is the current page number, starting at 1.
	Page int
	// Limit is the maximum number of items to return.
	Limit int
}

// NewPaginationParams builds a PaginationParams from optional HTTP query params.
// Nil pointers fall back to sane defaults (page=1, limit=20).
// The limit is capped at 100 to prevent runaway queries.
func NewPaginationParams(page, limit *int) PaginationParams {
	p := PaginationParams{Page: 1, Limit: 20}
	if page != nil && *page >= 1 {
		p.Page = *page
	}
	if limit != nil && *limit >= 1 {
		p.Limit = *limit
		if p.Limit > 100 {
			p.Limit = 100
		}
	}
	return p
}

// Offset returns the zero-based row offset for a SQL OFFSET clause.
func (p PaginationParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Page is one page of results plus the total row count across all pages.
type Page[T any] struct {
	Content       []T   `json:"content"`
	TotalElements int64 `json:"totalElements"`
}

// PageOf slices an already-ordered in-memory result set into one page.
// Services use this when ordering happens in Go (relevance ranking, distance
// sorting) rather than in SQL. The returned content is never nil.
func PageOf[T any](items []T, p PaginationParams) Page[T] {
	page := Page[T]{Content: []T{}, TotalElements: int64(len(items))}
	lo := p.Offset()
	if lo >= len(items) {
		return page
	}
	hi := lo + p.Limit
	if hi > len(items) {
		hi = len(items)
	}
	page.Content = append(page.Content, items[lo:hi]...)
	return page
}
