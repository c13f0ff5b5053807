package handler

import (
	"go-phoneshop-pos/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type InventoryHandler struct {
	service service.InventoryService
}

func NewInventoryHandler(s service.InventoryService) *InventoryHandler {
	return &InventoryHandler{service: s}
}

// StockIn records a new device into inventory.
// POST /api/v1/products
func (h *InventoryHandler) StockIn(c *fiber.Ctx) error {
	var req service.IntakeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	product, err := h.service.StockIn(ownerID(c), userName(c), &req)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Device stocked", "data": product})
}

// GetProducts lists the caller's inventory, newest first.
// GET /api/v1/products
func (h *InventoryHandler) GetProducts(c *fiber.Ctx) error {
	products, err := h.service.GetProducts(ownerID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(products)
}

// GetGroupedStock lists inventory grouped by model with derived counts.
// GET /api/v1/products/grouped
func (h *InventoryHandler) GetGroupedStock(c *fiber.Ctx) error {
	groups, err := h.service.GetGroupedStock(ownerID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(groups)
}

// DeleteProduct removes one device from inventory.
// DELETE /api/v1/products/:id
func (h *InventoryHandler) DeleteProduct(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	if err := h.service.DeleteProduct(ownerID(c), userName(c), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Device removed"})
}
