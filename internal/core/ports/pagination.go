package ports

import (
	"math"

	"fastfeet/internal/pkg/errs"
)

const (
	// PageSize is the fixed number of orders per page.
	PageSize = 20

	// MaxPage keeps Offset within 32 bits on every platform.
	MaxPage = math.MaxInt32 / PageSize
)

// PaginationParams selects a 1-indexed page of PageSize items.
type PaginationParams struct {
	page int
}

// NewPaginationParams rejects pages outside 1..MaxPage with an
// *errs.ValueIsOutOfRangeError. Pages past the last order are valid and yield
// empty results.
func NewPaginationParams(page int) (PaginationParams, error) {
	if page < 1 || page > MaxPage {
		return PaginationParams{}, errs.NewValueIsOutOfRangeError("page", page, 1, MaxPage)
	}
	return PaginationParams{page: page}, nil
}

func (p PaginationParams) Page() int {
	return p.page
}

// Offset is the index of the first item of the page.
func (p PaginationParams) Offset() int {
	return (p.page - 1) * PageSize
}

func (p PaginationParams) Limit() int {
	return PageSize
}
