package models

// ListOptions paginates listing queries.
type ListOptions struct {
	Page     int
	PageSize int
}

// Normalize applies the default page size and clamps out-of-range values.
func (o ListOptions) Normalize() ListOptions {
	if o.Page < 1 {
		o.Page = 1
	}
	if o.PageSize <= 0 || o.PageSize > 100 {
		o.PageSize = 20
	}
	return o
}

// Offset returns the row offset of the page.
func (o ListOptions) Offset() int {
	n := o.Normalize()
	return (n.Page - 1) * n.PageSize
}

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}
