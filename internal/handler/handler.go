package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Helpers shared by the handlers.

// currentUserID returns the caller identity set by the auth middleware.
func currentUserID(c *fiber.Ctx) uuid.UUID {
	if id, ok := c.Locals("user_id").(uuid.UUID); ok {
		return id
	}
	return uuid.Nil
}

func parseUUID(id string) (uuid.UUID, error) {
	return uuid.Parse(id)
}

// normalizePaging clamps client-supplied pagination values. The repositories
// apply the same floor to their own copy of the options, so the values used
// for the query and for the response meta must be normalized here, once.
func normalizePaging(page, limit, defaultLimit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultLimit
	}
	return page, limit
}

// listMeta is the pagination envelope of every paginated list response.
type listMeta struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

func newListMeta(total int64, page, limit int) listMeta {
	pages := int(total) / limit
	if int(total)%limit != 0 {
		pages++
	}
	return listMeta{Total: total, Page: page, Limit: limit, TotalPages: pages}
}
