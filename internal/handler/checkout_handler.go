package handler

import (
	"go-phoneshop-pos/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type CheckoutHandler struct {
	service service.CheckoutService
}

func NewCheckoutHandler(s service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{service: s}
}

type addToCartRequest struct {
	ProductID string  `json:"product_id"`
	SalePrice float64 `json:"sale_price"`
}

// GetCart returns the caller's current cart.
// GET /api/v1/cart
func (h *CheckoutHandler) GetCart(c *fiber.Ctx) error {
	cart, err := h.service.GetCart(ownerID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(cart)
}

// AddToCart places one device in the cart with its agreed sale price.
// POST /api/v1/cart
func (h *CheckoutHandler) AddToCart(c *fiber.Ctx) error {
	var req addToCartRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	cart, err := h.service.AddToCart(ownerID(c), productID, req.SalePrice)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Added to cart", "data": cart})
}

// RemoveFromCart drops one line by IMEI.
// DELETE /api/v1/cart/:imei
func (h *CheckoutHandler) RemoveFromCart(c *fiber.Ctx) error {
	cart, err := h.service.RemoveFromCart(ownerID(c), c.Params("imei"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Removed from cart", "data": cart})
}

// Checkout converts the cart into sales and clears sold units from stock.
// POST /api/v1/checkout
func (h *CheckoutHandler) Checkout(c *fiber.Ctx) error {
	result, err := h.service.Checkout(ownerID(c), userName(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Sale completed", "data": result})
}

// VoidSale deletes a sale record. With ?restock=true the unit is also
// returned to inventory.
// DELETE /api/v1/sales/:id
func (h *CheckoutHandler) VoidSale(c *fiber.Ctx) error {
	saleID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid sale ID"})
	}

	if c.QueryBool("restock") {
		err = h.service.VoidSaleAndRestock(ownerID(c), userName(c), saleID)
	} else {
		err = h.service.VoidSale(ownerID(c), userName(c), saleID)
	}
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Sale voided"})
}
