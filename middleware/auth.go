package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"photodesk/models"
	"photodesk/utils"
)

// Protected resolves the caller's session and organization profile.
// On success the request carries the profile in Locals; every failure mode
// is distinct: missing/invalid token (401), missing profile row (403 with a
// profile-specific message), deactivated profile (403).
func Protected(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Try to get token from Authorization header first
		var token string
		authHeader := c.Get("Authorization")
		if authHeader != "" {
			tokenParts := strings.Split(authHeader, " ")
			if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": "Invalid authorization format",
				})
			}
			token = tokenParts[1]
		} else {
			// Fall back to the session cookie
			token = c.Cookies("access_token")
			if token == "" {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": "Authorization required",
				})
			}
		}

		claims, err := utils.ParseSessionToken(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid or expired token",
			})
		}

		// Load the caller's organization profile
		var profile models.Profile
		if err := db.Where("user_id = ?", claims.UserID).First(&profile).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
					"error": "No workspace profile exists for this account",
				})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Unable to load profile",
			})
		}

		if !profile.IsActive {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Account is not active",
			})
		}

		c.Locals("profile", &profile)
		c.Locals("userID", profile.UserID)
		c.Locals("email", claims.Email)

		return c.Next()
	}
}

// CurrentProfile returns the profile resolved by Protected.
func CurrentProfile(c *fiber.Ctx) *models.Profile {
	return c.Locals("profile").(*models.Profile)
}
