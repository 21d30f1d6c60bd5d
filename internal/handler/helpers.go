package handler

import (
	"errors"

	"casetrack/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Helpers to pull user info from the JWT context (set by auth middleware)
func getUserID(c *fiber.Ctx) string {
	userID := c.Locals("user_id")
	if userID == nil {
		return "system"
	}
	return userID.(string)
}

func getUsername(c *fiber.Ctx) string {
	username := c.Locals("username")
	if username == nil {
		return "Unknown"
	}
	return username.(string)
}

// fail maps service error kinds onto HTTP status codes.
func fail(c *fiber.Ctx, err error) error {
	status := 500
	switch {
	case errors.Is(err, service.ErrValidation), errors.Is(err, service.ErrInvalidItemType):
		status = 400
	case errors.Is(err, service.ErrInsufficientQuantity):
		status = 409
	case errors.Is(err, service.ErrInvalidCredentials):
		status = 401
	case errors.Is(err, service.ErrPermissionDenied), errors.Is(err, service.ErrSetupComplete):
		status = 403
	case errors.Is(err, service.ErrNotFound):
		status = 404
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}
