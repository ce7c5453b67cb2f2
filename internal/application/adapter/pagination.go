// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

// PageSize is the fixed number of items returned per page by list operations.
const PageSize = 10

// Pagination defines pagination options.
type Pagination struct {
	Page  int
	Limit int
}

// NewPagination returns a pagination for the given page with the fixed page size.
// Pages start at 1; anything lower is treated as the first page.
func NewPagination(page int) Pagination {
	if page < 1 {
		page = 1
	}
	return Pagination{Page: page, Limit: PageSize}
}

// Offset returns the number of rows to skip.
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}

// TotalPages returns how many pages are needed for total rows.
func (p Pagination) TotalPages(total int64) int {
	if p.Limit <= 0 {
		return 0
	}
	return int((total + int64(p.Limit) - 1) / int64(p.Limit))
}
