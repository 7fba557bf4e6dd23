package shared

import (
	"math"
	"net/url"
	"strconv"
)

// PageKey is the query key carrying the page number of list views.
const PageKey = "page"

// Pagination contains metadata for paginated listings.
type Pagination struct {
	Page       int
	PerPage    int
	Total      int
	TotalPages int
}

// NewPagination computes pagination metadata.
func NewPagination(page, perPage, total int) Pagination {
	if perPage <= 0 {
		perPage = 20
	}
	if page <= 0 {
		page = 1
	}
	totalPages := int(math.Ceil(float64(total) / float64(perPage)))
	return Pagination{Page: page, PerPage: perPage, Total: total, TotalPages: totalPages}
}

// PageFromQuery reads the page number; anything but a positive integer is page 1.
func PageFromQuery(values url.Values) int {
	page, err := strconv.Atoi(values.Get(PageKey))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// Offset returns the number of rows before the current page.
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// HasPrev reports whether a previous page exists.
func (p Pagination) HasPrev() bool { return p.Page > 1 }

// HasNext reports whether a next page exists.
func (p Pagination) HasNext() bool { return p.Page < p.TotalPages }

// PageQuery returns values with the page key set to page. Page 1 drops the key.
func PageQuery(values url.Values, page int) string {
	out := make(url.Values, len(values))
	for k, vs := range values {
		out[k] = vs
	}
	if page <= 1 {
		out.Del(PageKey)
	} else {
		out.Set(PageKey, strconv.Itoa(page))
	}
	return out.Encode()
}
