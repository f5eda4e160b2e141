package models

import "gorm.io/gorm"

// DefaultPageSize is the shared page-size contract for every list endpoint.
const DefaultPageSize = 20

type Pagination struct {
	Page     int
	PageSize int
}

// Normalize applies the shared defaults. Non-positive values fall back rather
// than erroring; list endpoints are deliberately permissive about paging.
func (p Pagination) Normalize() Pagination {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.PageSize <= 0 {
		p.PageSize = DefaultPageSize
	}
	return p
}

func (p Pagination) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// TotalPages returns the page count for a filtered total.
func TotalPages(total int64, pageSize int) int {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	pages := int(total) / pageSize
	if int(total)%pageSize != 0 {
		pages++
	}
	return pages
}

// Paginate is a gorm scope applying the normalized page window.
func Paginate(p Pagination) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(p.Offset()).Limit(p.PageSize)
	}
}
