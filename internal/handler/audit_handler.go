package handler

import (
	"go-inventory-pos/internal/repository"

	"github.com/gofiber/fiber/v2"
)

type AuditHandler struct {
	repo repository.AuditLogRepository
}

func NewAuditHandler(repo repository.AuditLogRepository) *AuditHandler {
	return &AuditHandler{repo: repo}
}

// GetAuditLogs lists audit entries, newest first
// GET /api/v1/audit-logs  (ADMIN)
func (h *AuditHandler) GetAuditLogs(c *fiber.Ctx) error {
	page, limit := normalizePaging(c.QueryInt("page", 1), c.QueryInt("limit", 20), 20)
	opts := repository.AuditListOptions{
		Page:   page,
		Limit:  limit,
		Action: c.Query("action"),
		UserID: c.Query("userId"),
		Search: c.Query("search"),
	}

	logs, total, err := h.repo.List(opts)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Error fetching audit logs", "detail": err.Error()})
	}

	return c.JSON(fiber.Map{
		"data": logs,
		"meta": newListMeta(total, opts.Page, opts.Limit),
	})
}
