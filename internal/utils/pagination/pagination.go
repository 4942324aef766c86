package pagination

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

type Pagination struct {
	Page   int
	Size   int
	Offset int
	Total  int64
}

// ParseFromRequest handles pagination parameters from Fiber context.
// Pages are zero-based, matching the rest of the platform's APIs.
func ParseFromRequest(c *fiber.Ctx) Pagination {
	page, _ := strconv.Atoi(c.Query("page", "0"))
	if page < 0 {
		page = 0
	}
	size, _ := strconv.Atoi(c.Query("size", "10"))
	if size <= 0 {
		size = 10
	}
	return Pagination{
		Page:   page,
		Size:   size,
		Offset: page * size,
	}
}

// Response creates a standardized pagination response
func Response(p Pagination, data interface{}) fiber.Map {
	totalPages := p.Total / int64(p.Size)
	if p.Total%int64(p.Size) > 0 {
		totalPages++
	}

	return fiber.Map{
		"content": data,
		"meta": fiber.Map{
			"page":        p.Page,
			"size":        p.Size,
			"total_items": p.Total,
			"total_pages": totalPages,
		},
	}
}
