package controller

import (
	"strings"

	"github.com/badoux/checkmail"
	"github.com/getsentry/sentry-go"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"photodesk/middleware"
	"photodesk/models"
	"photodesk/utils"
)

type UserController struct {
	DB       *gorm.DB
	Logger   *logrus.Logger
	Identity *utils.IdentityClient
}

func NewUserController(db *gorm.DB, logger *logrus.Logger, identity *utils.IdentityClient) *UserController {
	return &UserController{DB: db, Logger: logger, Identity: identity}
}

// InviteRequest is one invitation. A request body carries either these
// fields directly or a batch under "invites".
type InviteRequest struct {
	Email     string  `json:"email"`
	Role      string  `json:"role"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	IsActive  *bool   `json:"isActive"`
}

type invitePayload struct {
	InviteRequest
	Invites []InviteRequest `json:"invites"`
}

type memberView struct {
	models.Profile
	Name         string  `json:"name"`
	Email        *string `json:"email"`
	LastSignInAt *string `json:"last_sign_in_at"`
}

// List returns the org's members. Emails and last sign-in times come from
// the identity directory; without a service key they stay hidden and a
// warning is logged.
func (uc *UserController) List(c *fiber.Ctx) error {
	profile := middleware.CurrentProfile(c)

	var profiles []models.Profile
	if err := uc.DB.Where("org_id = ?", profile.OrgID).
		Order("created_at desc").Find(&profiles).Error; err != nil {
		uc.Logger.WithError(err).Error("Failed to load organization members")
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Unable to load organization members", err)
	}

	directory := make(map[string]utils.AuthUser)
	if uc.Identity.HasDirectory() {
		users, err := uc.Identity.ListUsers(c.Context(), 1, 1000)
		if err != nil {
			uc.Logger.WithError(err).Error("Failed to fetch auth users for members view")
		} else {
			for _, user := range users {
				directory[user.ID] = user
			}
		}
	} else {
		uc.Logger.Warn("Identity service role key not configured; user emails will be hidden")
	}

	members := make([]memberView, 0, len(profiles))
	for _, p := range profiles {
		view := memberView{Profile: p, Name: p.FullName()}
		if meta, ok := directory[p.UserID]; ok {
			email := meta.Email
			view.Email = &email
			view.LastSignInAt = meta.LastSignInAt
		}
		members = append(members, view)
	}

	return c.JSON(utils.SuccessResponse(fiber.Map{
		"members": members,
	}))
}

// Invite processes a single invitation or a batch. Every invite is
// attempted independently; one failure never aborts the rest. The response
// is 207 with per-email outcomes when any item failed.
func (uc *UserController) Invite(c *fiber.Ctx) error {
	profile := middleware.CurrentProfile(c)

	var payload invitePayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	invites := payload.Invites
	if len(invites) == 0 && payload.Email != "" {
		invites = []InviteRequest{payload.InviteRequest}
	}

	// Drop entries with empty emails before processing
	normalized := make([]InviteRequest, 0, len(invites))
	for _, invite := range invites {
		invite.Email = strings.ToLower(strings.TrimSpace(invite.Email))
		if invite.Email == "" {
			continue
		}
		if invite.Role == "" {
			invite.Role = string(models.RoleStandard)
		}
		normalized = append(normalized, invite)
	}
	if len(normalized) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "At least one email is required",
		})
	}

	if !uc.Identity.HasDirectory() {
		uc.Logger.Error("Invite rejected: identity service role key not configured")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Server configuration error",
		})
	}

	outcomes := make([]utils.BatchOutcome, 0, len(normalized))
	for _, invite := range normalized {
		if err := uc.processInvite(c, profile, invite); err != nil {
			outcomes = append(outcomes, utils.BatchOutcome{Item: invite.Email, OK: false, Error: err.Error()})
			continue
		}
		outcomes = append(outcomes, utils.BatchOutcome{Item: invite.Email, OK: true})
	}

	status := fiber.StatusOK
	if utils.AnyFailed(outcomes) {
		status = fiber.StatusMultiStatus
	}
	return c.Status(status).JSON(fiber.Map{
		"success": !utils.AnyFailed(outcomes),
		"results": outcomes,
	})
}

func (uc *UserController) processInvite(c *fiber.Ctx, inviter *models.Profile, invite InviteRequest) error {
	if err := checkmail.ValidateFormat(invite.Email); err != nil {
		return errInvalidEmail
	}
	if !models.ValidRole(invite.Role) {
		return errInvalidRole
	}

	isActive := true
	if invite.IsActive != nil {
		isActive = *invite.IsActive
	}

	userID, err := uc.Identity.InviteByEmail(c.Context(), invite.Email, utils.InviteMetadata{
		OrgID:     inviter.OrgID,
		Role:      invite.Role,
		FirstName: invite.FirstName,
		LastName:  invite.LastName,
		IsActive:  isActive,
	})
	if err != nil {
		uc.Logger.WithError(err).WithField("email", invite.Email).Error("Failed to invite user")
		sentry.CaptureException(err)
		return errInviteFailed
	}

	newProfile := models.Profile{
		UserID:    userID,
		OrgID:     inviter.OrgID,
		Role:      models.Role(invite.Role),
		FirstName: invite.FirstName,
		LastName:  invite.LastName,
		IsActive:  isActive,
	}
	if err := uc.DB.Create(&newProfile).Error; err != nil {
		uc.Logger.WithError(err).WithField("email", invite.Email).Error("Invite succeeded but profile creation failed")
		return errProfileFailed
	}
	return nil
}

var (
	errInvalidEmail  = fiber.NewError(fiber.StatusBadRequest, "invalid email address")
	errInvalidRole   = fiber.NewError(fiber.StatusBadRequest, "invalid role")
	errInviteFailed  = fiber.NewError(fiber.StatusBadGateway, "unable to invite user")
	errProfileFailed = fiber.NewError(fiber.StatusBadGateway, "invited but profile creation failed")
)
