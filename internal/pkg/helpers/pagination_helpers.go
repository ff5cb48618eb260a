package helpers

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/alumnihub/alumnihub/internal/app/models/dto"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
	DefaultPage     = 1 // Pages are 1-based
)

// CalculateOffsetLimit calculates the offset and limit for SQL queries based on 1-based page index.
func CalculateOffsetLimit(page, limit int) (offset uint64, size int) {
	if limit <= 0 || limit > MaxPageSize {
		size = DefaultPageSize
	} else {
		size = limit
	}

	if page < 1 {
		page = DefaultPage
	}

	offset = uint64((page - 1) * size)
	return offset, size
}

// NewPageMeta creates the standard pagination metadata block.
// hasMore is true while page*limit has not yet covered the total.
func NewPageMeta(total int64, page, limit int) dto.PageMeta {
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if page < 1 {
		page = DefaultPage
	}

	pages := 0
	if total > 0 {
		pages = int(math.Ceil(float64(total) / float64(limit)))
	}

	return dto.PageMeta{
		Page:    page,
		Pages:   pages,
		Total:   total,
		HasMore: int64(page)*int64(limit) < total,
	}
}

// ParsePaginationParams extracts and validates pagination parameters from the request
func ParsePaginationParams(c *gin.Context) (page, limit int) {
	pageStr := c.DefaultQuery("page", "1")
	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		page = DefaultPage
	}

	limitStr := c.DefaultQuery("limit", "10")
	limit, err = strconv.Atoi(limitStr)
	if err != nil || limit <= 0 || limit > MaxPageSize {
		limit = DefaultPageSize
	}

	return page, limit
}
