package handler

import (
	"errors"
	"time"

	"go-inventory-pos/internal/repository"
	"go-inventory-pos/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ExpenseHandler struct {
	service service.ExpenseService
}

func NewExpenseHandler(s service.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{service: s}
}

// GetExpenses lists expenses, optionally constrained to a date range
// GET /api/v1/expenses
func (h *ExpenseHandler) GetExpenses(c *fiber.Ctx) error {
	page, limit := normalizePaging(c.QueryInt("page", 1), c.QueryInt("limit", 10), 10)
	opts := repository.ExpenseListOptions{
		Page:  page,
		Limit: limit,
	}

	if startStr, endStr := c.Query("startDate"), c.Query("endDate"); startStr != "" && endStr != "" {
		start, err := time.Parse(time.RFC3339, startStr)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid startDate"})
		}
		end, err := time.Parse(time.RFC3339, endStr)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid endDate"})
		}
		opts.Start = &start
		opts.End = &end
	}

	expenses, total, err := h.service.ListExpenses(opts)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Error fetching expenses", "detail": err.Error()})
	}

	return c.JSON(fiber.Map{
		"data": expenses,
		"meta": newListMeta(total, opts.Page, opts.Limit),
	})
}

// CreateExpense records an operating cost
// POST /api/v1/expenses  (ADMIN)
func (h *ExpenseHandler) CreateExpense(c *fiber.Ctx) error {
	var req service.CreateExpenseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	expense, err := h.service.CreateExpense(&req, currentUserID(c))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(201).JSON(expense)
}

// DeleteExpense removes an expense
// DELETE /api/v1/expenses/:id  (ADMIN)
func (h *ExpenseHandler) DeleteExpense(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid expense ID"})
	}

	if err := h.service.DeleteExpense(id, currentUserID(c)); err != nil {
		if errors.Is(err, service.ErrExpenseNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Expense not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Error deleting expense", "detail": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "Expense deleted"})
}
