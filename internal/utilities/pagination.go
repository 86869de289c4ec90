package utilities

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"

	"jobboard-backend/internal/model"
)

// Pagination defaults
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// Pagination is a parsed page request
type Pagination struct {
	Page  int
	Limit int
}

// ParsePagination reads page and limit query parameters.
// Missing, non-numeric and non-positive values fall back to the defaults,
// limit is capped at MaxLimit and page at the last one whose offset fits in an int.
func ParsePagination(c *gin.Context) Pagination {
	p := Pagination{
		Page:  positiveOr(c.Query("page"), DefaultPage),
		Limit: positiveOr(c.Query("limit"), DefaultLimit),
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	if maxPage := math.MaxInt / p.Limit; p.Page > maxPage {
		p.Page = maxPage
	}
	return p
}

func positiveOr(raw string, def int) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

// Offset is the number of rows skipped before this page
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Meta builds the envelope fields for a result of total rows
func (p Pagination) Meta(total int64) model.PageMeta {
	return model.PageMeta{
		Page:       p.Page,
		Limit:      p.Limit,
		Total:      total,
		TotalPages: TotalPages(total, p.Limit),
	}
}

// TotalPages is ceil(total / limit)
func TotalPages(total int64, limit int) int {
	if limit <= 0 || total <= 0 {
		return 0
	}
	l := int64(limit)
	return int((total + l - 1) / l)
}
