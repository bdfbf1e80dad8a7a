package shared

import "math"

// DefaultPerPage is used when no positive page size is supplied.
const DefaultPerPage = 10

// Pagination contains metadata for paginated listings. Page is zero-based and
// always within [0, TotalPages-1]; an empty listing still has one page.
type Pagination struct {
	Page       int
	PerPage    int
	Total      int
	TotalPages int
}

// NewPagination computes pagination metadata, clamping page into range.
func NewPagination(page, perPage, total int) Pagination {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	if total < 0 {
		total = 0
	}
	totalPages := int(math.Ceil(float64(total) / float64(perPage)))
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 0 {
		page = 0
	}
	if page > totalPages-1 {
		page = totalPages - 1
	}
	return Pagination{Page: page, PerPage: perPage, Total: total, TotalPages: totalPages}
}

// Offset returns the index of the first item on the current page.
func (p Pagination) Offset() int {
	return p.Page * p.PerPage
}

// End returns the exclusive index of the last item on the current page.
func (p Pagination) End() int {
	return min(p.Offset()+p.PerPage, p.Total)
}

// Number is the one-based page number for display.
func (p Pagination) Number() int {
	return p.Page + 1
}

// HasPrev reports whether a previous page exists.
func (p Pagination) HasPrev() bool {
	return p.Page > 0
}

// HasNext reports whether a following page exists.
func (p Pagination) HasNext() bool {
	return p.Page < p.TotalPages-1
}
