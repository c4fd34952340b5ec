package utils

import "github.com/gofiber/fiber/v2"

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// GetPaginationParams reads page and limit from the query string and clamps
// them to sane values. Page numbering starts at 1.
func GetPaginationParams(c *fiber.Ctx) (page, limit, offset int) {
	page = c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	limit = c.QueryInt("limit", DefaultPageSize)
	if limit < 1 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	return page, limit, (page - 1) * limit
}
