package middleware

import (
	"github.com/gofiber/fiber/v2"

	"photodesk/models"
)

// RequireElevated gates a route to admins and managers. Must run after
// Protected.
func RequireElevated() fiber.Handler {
	return func(c *fiber.Ctx) error {
		profile := c.Locals("profile").(*models.Profile)
		if !profile.Elevated() {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Forbidden",
			})
		}
		return c.Next()
	}
}
