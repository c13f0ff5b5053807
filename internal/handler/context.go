package handler

import (
	"errors"

	"go-phoneshop-pos/internal/model"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// ownerID extracts the authenticated user's id set by the auth middleware.
// Returns uuid.Nil when the request carries no identity, which the
// services reject with an auth error.
func ownerID(c *fiber.Ctx) uuid.UUID {
	raw := c.Locals("user_id")
	if raw == nil {
		return uuid.Nil
	}
	id, err := uuid.Parse(raw.(string))
	if err != nil {
		return uuid.Nil
	}
	return id
}

func userName(c *fiber.Ctx) string {
	name := c.Locals("user_name")
	if name == nil {
		return "Unknown"
	}
	return name.(string)
}

// respondError maps the workflow error taxonomy to HTTP statuses.
func respondError(c *fiber.Ctx, err error) error {
	var validation *model.ValidationError
	var conflict *model.ConflictError
	var store *model.StoreError

	switch {
	case errors.As(err, &validation):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": validation.Error()})
	case errors.Is(err, model.ErrAuthRequired):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, model.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.As(err, &conflict), errors.Is(err, model.ErrCheckoutInFlight):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case errors.As(err, &store):
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": store.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
}
