package domain

// Page is the paginated payload returned by every list endpoint.
type Page[T any] struct {
	Records      []T `json:"records"`
	Page         int `json:"page"`
	Limit        int `json:"limit"`
	TotalPages   int `json:"totalPages"`
	TotalRecords int `json:"totalRecords"`
}

// HasNext reports whether a later page exists.
func (p *Page[T]) HasNext() bool {
	return p != nil && p.Page < p.TotalPages
}

// HasPrevious reports whether an earlier page exists.
func (p *Page[T]) HasPrevious() bool {
	return p != nil && p.Page > 1
}

// Len is the number of records on this page.
func (p *Page[T]) Len() int {
	if p == nil {
		return 0
	}
	return len(p.Records)
}
