package utils

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// PageSize is the fixed page size for every list endpoint.
const PageSize = 20

// Page is the envelope returned by paginated list endpoints.
type Page struct {
	Count    int64       `json:"count"`
	Page     int         `json:"page"`
	PageSize int         `json:"page_size"`
	Results  interface{} `json:"results"`
}

// PageParam reads the 1-based ?page= query parameter, defaulting to 1.
func PageParam(c *fiber.Ctx) int {
	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	return page
}

// PageOffset converts a 1-based page number into a row offset.
func PageOffset(page int) int {
	return (page - 1) * PageSize
}
