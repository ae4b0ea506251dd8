package handler

import (
	"errors"

	"go-inventory-pos/internal/service"

	"github.com/gofiber/fiber/v2"
)

type CategoryHandler struct {
	service service.CategoryService
}

func NewCategoryHandler(s service.CategoryService) *CategoryHandler {
	return &CategoryHandler{service: s}
}

type categoryRequest struct {
	Name string `json:"name"`
}

// GetCategories lists categories with product counts
// GET /api/v1/categories
func (h *CategoryHandler) GetCategories(c *fiber.Ctx) error {
	categories, err := h.service.ListCategories()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Error fetching categories", "detail": err.Error()})
	}
	return c.JSON(categories)
}

// CreateCategory creates a category
// POST /api/v1/categories  (ADMIN)
func (h *CategoryHandler) CreateCategory(c *fiber.Ctx) error {
	var req categoryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if req.Name == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Name is required"})
	}

	category, err := h.service.CreateCategory(req.Name, currentUserID(c))
	if err != nil {
		if errors.Is(err, service.ErrCategoryNameUsed) {
			return c.Status(400).JSON(fiber.Map{"error": "Category already exists"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Error creating category", "detail": err.Error()})
	}
	return c.Status(201).JSON(category)
}

// UpdateCategory renames a category
// PUT /api/v1/categories/:id  (ADMIN)
func (h *CategoryHandler) UpdateCategory(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid category ID"})
	}

	var req categoryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if req.Name == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Name is required"})
	}

	category, err := h.service.UpdateCategory(id, req.Name, currentUserID(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCategoryNotFound):
			return c.Status(404).JSON(fiber.Map{"error": "Category not found"})
		case errors.Is(err, service.ErrCategoryNameUsed):
			return c.Status(400).JSON(fiber.Map{"error": "Category name already exists"})
		default:
			return c.Status(500).JSON(fiber.Map{"error": "Error updating category", "detail": err.Error()})
		}
	}
	return c.JSON(category)
}

// DeleteCategory removes a category with no products
// DELETE /api/v1/categories/:id  (ADMIN)
func (h *CategoryHandler) DeleteCategory(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid category ID"})
	}

	if err := h.service.DeleteCategory(id, currentUserID(c)); err != nil {
		switch {
		case errors.Is(err, service.ErrCategoryNotFound):
			return c.Status(404).JSON(fiber.Map{"error": "Category not found"})
		case errors.Is(err, service.ErrCategoryInUse):
			return c.Status(400).JSON(fiber.Map{"error": "Cannot delete category with associated products"})
		default:
			return c.Status(500).JSON(fiber.Map{"error": "Error deleting category", "detail": err.Error()})
		}
	}
	return c.JSON(fiber.Map{"message": "Category deleted"})
}
