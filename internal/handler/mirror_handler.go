package handler

import (
	"errors"
	"strconv"

	"go-phoneshop-pos/internal/mirror"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// MirrorHandler serves the offline aggregate catalog. The mirror has no
// per-user scoping; it is a single-tenant view.
type MirrorHandler struct {
	store *mirror.Store
}

func NewMirrorHandler(store *mirror.Store) *MirrorHandler {
	return &MirrorHandler{store: store}
}

type mirrorEditRequest struct {
	Name      string  `json:"name"`
	SalePrice float64 `json:"sale_price"`
	Stock     int     `json:"stock"`
}

// GetProducts lists the offline catalog.
// GET /api/v1/mirror/products
func (h *MirrorHandler) GetProducts(c *fiber.Ctx) error {
	products, err := h.store.List()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch catalog"})
	}
	return c.JSON(products)
}

// CreateProduct adds a model line to the offline catalog.
// POST /api/v1/mirror/products
func (h *MirrorHandler) CreateProduct(c *fiber.Ctx) error {
	var product mirror.Product
	if err := c.BodyParser(&product); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if product.Name == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Name is required"})
	}

	if err := h.store.Create(&product); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create catalog entry"})
	}
	return c.Status(201).JSON(fiber.Map{"message": "Catalog entry created", "data": product})
}

// EditProduct applies a name/price/stock edit, merging into an existing
// line when the new name collides case-insensitively.
// PUT /api/v1/mirror/products/:id
func (h *MirrorHandler) EditProduct(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	var req mirrorEditRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	product, err := h.store.Edit(uint(id), req.Name, req.SalePrice, req.Stock)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return c.Status(404).JSON(fiber.Map{"error": "Catalog entry not found"})
		case errors.Is(err, gorm.ErrInvalidData):
			return c.Status(400).JSON(fiber.Map{"error": "Name is required"})
		default:
			return c.Status(500).JSON(fiber.Map{"error": "Failed to update catalog entry"})
		}
	}
	return c.JSON(fiber.Map{"message": "Catalog entry updated", "data": product})
}

// DeleteProduct removes a model line from the offline catalog.
// DELETE /api/v1/mirror/products/:id
func (h *MirrorHandler) DeleteProduct(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	if err := h.store.Delete(uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Catalog entry not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to delete catalog entry"})
	}
	return c.JSON(fiber.Map{"message": "Catalog entry deleted"})
}

// GetLowStock lists lines running low.
// GET /api/v1/mirror/low-stock?threshold=5
func (h *MirrorHandler) GetLowStock(c *fiber.Ctx) error {
	threshold, err := strconv.Atoi(c.Query("threshold", "5"))
	if err != nil || threshold <= 0 {
		threshold = 5
	}

	products, err := h.store.LowStock(threshold)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch low stock"})
	}
	return c.JSON(products)
}
