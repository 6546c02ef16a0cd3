package controller

import (
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"photodesk/config"
	"photodesk/middleware"
	"photodesk/models"
	"photodesk/utils"
)

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthController struct {
	DB       *gorm.DB
	Logger   *logrus.Logger
	Identity *utils.IdentityClient
}

func NewAuthController(db *gorm.DB, logger *logrus.Logger, identity *utils.IdentityClient) *AuthController {
	return &AuthController{DB: db, Logger: logger, Identity: identity}
}

// Login verifies credentials against the hosted auth service, then admits
// the session only when the caller holds an elevated workspace profile.
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := utils.ValidateStruct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	authUser, err := ac.Identity.SignInWithPassword(c.Context(), req.Email, req.Password)
	if err != nil {
		ac.Logger.WithError(err).WithField("email", req.Email).Warn("Sign-in rejected by auth service")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid email or password",
		})
	}

	// The console admits only elevated profiles
	var profile models.Profile
	if err := ac.DB.Where("user_id = ?", authUser.ID).First(&profile).Error; err != nil || !profile.Elevated() {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	token, err := utils.GenerateSessionToken(authUser.ID, authUser.Email)
	if err != nil {
		ac.Logger.WithError(err).Error("Failed to generate session token")
		sentry.CaptureException(err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to establish session",
		})
	}

	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    token,
		Expires:  time.Now().Add(12 * time.Hour),
		HTTPOnly: true,
		Secure:   config.AppConfig.Environment == "production",
		SameSite: "Lax",
		Path:     "/",
	})

	return c.JSON(fiber.Map{"success": true})
}

// Logout clears the session cookie.
func (ac *AuthController) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Path:     "/",
	})
	return c.JSON(fiber.Map{"success": true})
}

// Me returns the caller's resolved profile. The legacy is_admin flag is
// derived from the role for older clients.
func (ac *AuthController) Me(c *fiber.Ctx) error {
	profile := middleware.CurrentProfile(c)
	return c.JSON(utils.SuccessResponse(fiber.Map{
		"user_id":    profile.UserID,
		"email":      c.Locals("email"),
		"org_id":     profile.OrgID,
		"role":       profile.Role,
		"name":       profile.FullName(),
		"is_active":  profile.IsActive,
		"is_admin":   profile.Elevated(),
		"created_at": profile.CreatedAt,
	}))
}
