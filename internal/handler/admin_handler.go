package handler

import (
	"errors"

	"go-inventory-pos/internal/service"

	"github.com/gofiber/fiber/v2"
)

type AdminHandler struct {
	service service.AdminService
}

func NewAdminHandler(s service.AdminService) *AdminHandler {
	return &AdminHandler{service: s}
}

// ClearData wipes transactions, products, categories and audit logs after
// password re-entry
// POST /api/v1/admin/clear-data  (ADMIN)
func (h *AdminHandler) ClearData(c *fiber.Ctx) error {
	var req struct {
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if req.Password == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Password is required"})
	}

	if err := h.service.ClearAllData(currentUserID(c), req.Password); err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			return c.Status(404).JSON(fiber.Map{"error": "User not found"})
		case errors.Is(err, service.ErrWrongPassword):
			return c.Status(401).JSON(fiber.Map{"error": "Invalid password"})
		default:
			return c.Status(500).JSON(fiber.Map{"error": "Error clearing data", "detail": err.Error()})
		}
	}
	return c.JSON(fiber.Map{"message": "All data cleared successfully"})
}
