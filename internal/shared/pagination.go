package shared

// Pagination contains metadata for paginated listings.
type Pagination struct {
	Page   int
	Limit  int
	Offset int
}

// NewPagination normalizes page/limit to the listing defaults. Values
// that were absent or non-numeric arrive here as zero and fall back to
// page 1, limit 10.
func NewPagination(page, limit int) Pagination {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	return Pagination{Page: page, Limit: limit, Offset: (page - 1) * limit}
}
