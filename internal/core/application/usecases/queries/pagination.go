package queries

import (
	"laundry/internal/pkg/errs"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
	// MaxPage keeps the row offset well inside the range of a SQL integer.
	MaxPage = 1_000_000
)

// PageRequest is a 1-based page of at most MaxLimit rows.
type PageRequest struct {
	Page  int
	Limit int
}

// NewPageRequest applies the defaults to zero values and rejects the rest
// of the out-of-range input.
func NewPageRequest(page, limit int) (PageRequest, error) {
	if page == 0 {
		page = DefaultPage
	}
	if limit == 0 {
		limit = DefaultLimit
	}
	if page < 1 || page > MaxPage {
		return PageRequest{}, errs.NewValueIsOutOfRangeError("page", page, 1, MaxPage)
	}
	if limit < 1 || limit > MaxLimit {
		return PageRequest{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxLimit)
	}
	return PageRequest{Page: page, Limit: limit}, nil
}

func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Pagination describes where a page sits in the filtered result set.
type Pagination struct {
	Page     int
	Limit    int
	Total    int64
	Pages    int
	NextPage *int
	PrevPage *int
}

func paginate(p PageRequest, total int64) Pagination {
	result := Pagination{
		Page:  p.Page,
		Limit: p.Limit,
		Total: total,
		Pages: int((total + int64(p.Limit) - 1) / int64(p.Limit)),
	}
	if int64(p.Page*p.Limit) < total {
		next := p.Page + 1
		result.NextPage = &next
	}
	if p.Page > 1 {
		prev := p.Page - 1
		result.PrevPage = &prev
	}
	return result
}
