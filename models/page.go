package models

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// PageRequest is keyset pagination input: at most First items with an id
// strictly greater than After.
type PageRequest struct {
	First int    `json:"first,omitempty"`
	After *int64 `json:"after,omitempty"`
}

// Limit returns First clamped to [1, MaxPageSize], DefaultPageSize when unset.
func (p PageRequest) Limit() int {
	switch {
	case p.First <= 0:
		return DefaultPageSize
	case p.First > MaxPageSize:
		return MaxPageSize
	default:
		return p.First
	}
}

// PageInfo describes where a page ends.
type PageInfo struct {
	HasNextPage bool   `json:"hasNextPage"`
	EndCursor   *int64 `json:"endCursor,omitempty"`
}

// Page is one slice of a keyset-paginated listing.
type Page[T any] struct {
	Items    []T      `json:"items"`
	PageInfo PageInfo `json:"pageInfo"`
}

// NewPage trims items fetched with limit+1 rows down to limit and fills the
// page info. cursor returns the keyset id of an item.
func NewPage[T any](items []T, limit int, cursor func(T) int64) Page[T] {
	page := Page[T]{Items: items}
	if len(items) > limit {
		page.Items = items[:limit]
		page.PageInfo.HasNextPage = true
	}
	if page.Items == nil {
		page.Items = []T{}
	}
	if n := len(page.Items); n > 0 {
		end := cursor(page.Items[n-1])
		page.PageInfo.EndCursor = &end
	}
	return page
}
