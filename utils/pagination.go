// utils/pagination.go
package utils

// Pagination describes one page of a listing. NextPage/PrevPage are nil when
// there is no adjacent page, which serialises to null.
type Pagination struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalCount  int64 `json:"totalCount"`
	Limit       int   `json:"limit"`
	HasNextPage bool  `json:"hasNextPage"`
	HasPrevPage bool  `json:"hasPrevPage"`
	NextPage    *int  `json:"nextPage"`
	PrevPage    *int  `json:"prevPage"`
}

// ClampPage forces page to at least 1.
func ClampPage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

// ClampLimit forces limit into [1, 100].
func ClampLimit(limit int) int {
	if limit < 1 {
		return 1
	}
	if limit > 100 {
		return 100
	}
	return limit
}

// NewPagination derives the page bookkeeping from a total row count. page and
// limit are assumed already clamped.
func NewPagination(page, limit int, totalCount int64) Pagination {
	totalPages := int((totalCount + int64(limit) - 1) / int64(limit))

	p := Pagination{
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalCount:  totalCount,
		Limit:       limit,
		HasNextPage: page < totalPages,
		HasPrevPage: page > 1,
	}
	if p.HasNextPage {
		next := page + 1
		p.NextPage = &next
	}
	if p.HasPrevPage {
		prev := page - 1
		p.PrevPage = &prev
	}
	return p
}
