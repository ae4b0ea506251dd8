package handler

import (
	"time"

	"go-inventory-pos/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type DashboardHandler struct {
	service service.ReportService
}

func NewDashboardHandler(s service.ReportService) *DashboardHandler {
	return &DashboardHandler{service: s}
}

// GetSummary returns the overview stats
// GET /api/v1/dashboard/summary
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.service.Summary()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Error fetching dashboard stats", "detail": err.Error()})
	}
	return c.JSON(summary)
}

// GetProfitLoss returns the profit/loss report over a date range
// GET /api/v1/dashboard/profit-loss?startDate&endDate&categoryId
func (h *DashboardHandler) GetProfitLoss(c *fiber.Ctx) error {
	start := time.Unix(0, 0)
	end := time.Now()

	if startStr := c.Query("startDate"); startStr != "" {
		parsed, err := parseDateParam(startStr)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid startDate"})
		}
		start = parsed
	}
	if endStr := c.Query("endDate"); endStr != "" {
		parsed, err := parseDateParam(endStr)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid endDate"})
		}
		// A bare date means the whole day.
		if len(endStr) == len("2006-01-02") {
			parsed = parsed.Add(24*time.Hour - time.Nanosecond)
		}
		end = parsed
	}

	var categoryID *uuid.UUID
	if raw := c.Query("categoryId"); raw != "" && raw != "ALL" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid categoryId"})
		}
		categoryID = &parsed
	}

	result, err := h.service.ProfitLoss(start, end, categoryID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Error fetching profit/loss stats", "detail": err.Error()})
	}
	return c.JSON(result)
}

func parseDateParam(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}
