package handler

import (
	"errors"

	"go-inventory-pos/internal/repository"
	"go-inventory-pos/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ProductHandler struct {
	service service.InventoryService
}

func NewProductHandler(s service.InventoryService) *ProductHandler {
	return &ProductHandler{service: s}
}

// GetProducts lists products with pagination, search and filters
// GET /api/v1/products
func (h *ProductHandler) GetProducts(c *fiber.Ctx) error {
	page, limit := normalizePaging(c.QueryInt("page", 1), c.QueryInt("limit", 10), 10)
	opts := repository.ProductListOptions{
		Page:      page,
		Limit:     limit,
		Search:    c.Query("search"),
		Category:  c.Query("category"),
		Status:    c.Query("status"),
		SortBy:    c.Query("sortBy", "created_at"),
		SortOrder: c.Query("sortOrder", "desc"),
	}

	products, total, err := h.service.ListProducts(opts)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Error fetching products", "detail": err.Error()})
	}

	return c.JSON(fiber.Map{
		"data": products,
		"meta": newListMeta(total, opts.Page, opts.Limit),
	})
}

// GetProduct returns a single product
// GET /api/v1/products/:id
func (h *ProductHandler) GetProduct(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	product, err := h.service.GetProduct(id)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Product not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Error fetching product", "detail": err.Error()})
	}
	return c.JSON(product)
}

// CreateProduct creates one product
// POST /api/v1/products  (ADMIN)
func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	var req service.CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	product, err := h.service.CreateProduct(&req, currentUserID(c))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(201).JSON(product)
}

// BatchCreateProducts bulk-imports products, skipping duplicate SKUs
// POST /api/v1/products/batch  (ADMIN)
func (h *ProductHandler) BatchCreateProducts(c *fiber.Ctx) error {
	var body struct {
		Products []service.CreateProductRequest `json:"products"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if len(body.Products) == 0 {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid products array"})
	}

	imported, err := h.service.BatchImport(body.Products, currentUserID(c))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Error batch creating products", "detail": err.Error()})
	}
	return c.Status(201).JSON(fiber.Map{
		"message":  "Import finished",
		"imported": imported,
	})
}

// UpdateProduct applies a partial update, deriving ledger movements from
// quantity changes
// PATCH /api/v1/products/:id
func (h *ProductHandler) UpdateProduct(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	var req service.UpdateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	product, err := h.service.UpdateProduct(id, &req, currentUserID(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			return c.Status(404).JSON(fiber.Map{"error": "Product not found"})
		case errors.Is(err, service.ErrSKUConflict):
			return c.Status(400).JSON(fiber.Map{"error": "SKU already exists"})
		default:
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}
	}
	return c.JSON(product)
}

// DeleteProduct removes a product
// DELETE /api/v1/products/:id  (ADMIN)
func (h *ProductHandler) DeleteProduct(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	if err := h.service.DeleteProduct(id, currentUserID(c)); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Product not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Error deleting product", "detail": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "Product deleted"})
}
