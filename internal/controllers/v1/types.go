package v1

import (
	"math"

	ez_uuid "github.com/expense-tracker/backend/internal/uuid"
)

type URIID struct {
	ID ez_uuid.UUID `uri:"id" binding:"required" format:"UUID"` // ID of the resource
}

// Default and maximum page size for lists
const (
	defaultLimit = 50
	maxLimit     = 1000
)

type Pagination struct {
	Page  int   `json:"page" example:"2"`   // The current page, starting at 1
	Limit int   `json:"limit" example:"10"` // Maximum number of resources per page
	Total int64 `json:"total" example:"25"` // Total number of resources matching the filter
	Pages int   `json:"pages" example:"3"`  // Number of pages
}

func newPagination(page, limit int, total int64) Pagination {
	return Pagination{
		Page:  page,
		Limit: limit,
		Total: total,
		Pages: int(math.Ceil(float64(total) / float64(limit))),
	}
}
