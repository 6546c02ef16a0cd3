package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"photodesk/middleware"
	"photodesk/models"
	"photodesk/utils"
)

type GroupController struct {
	DB     *gorm.DB
	Logger *logrus.Logger
}

func NewGroupController(db *gorm.DB, logger *logrus.Logger) *GroupController {
	return &GroupController{DB: db, Logger: logger}
}

type CreateGroupRequest struct {
	Name      string   `json:"name"`
	MemberIDs []string `json:"memberIds"`
}

// List returns the org's groups with member profiles, plus the org's
// profiles for the membership picker.
func (gc *GroupController) List(c *fiber.Ctx) error {
	profile := middleware.CurrentProfile(c)

	var groups []models.Group
	if err := gc.DB.Preload("Members.Profile").
		Where("org_id = ?", profile.OrgID).
		Order("created_at desc").Find(&groups).Error; err != nil {
		gc.Logger.WithError(err).Error("Failed to load groups")
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Unable to load groups", err)
	}

	var profiles []models.Profile
	if err := gc.DB.Where("org_id = ?", profile.OrgID).
		Order("first_name asc").Find(&profiles).Error; err != nil {
		gc.Logger.WithError(err).Error("Failed to load profiles for groups view")
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Unable to load members", err)
	}

	return c.JSON(utils.SuccessResponse(fiber.Map{
		"groups":            groups,
		"profiles":          profiles,
		"can_manage_groups": profile.Elevated(),
	}))
}

// Create inserts a group, then adds the optional members one by one. The
// group row is kept even when member inserts fail; those failures surface
// as a 207 with per-member outcomes.
func (gc *GroupController) Create(c *fiber.Ctx) error {
	profile := middleware.CurrentProfile(c)

	var req CreateGroupRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Group name cannot be empty",
		})
	}

	memberIDs := make([]string, 0, len(req.MemberIDs))
	for _, id := range req.MemberIDs {
		if id != "" {
			memberIDs = append(memberIDs, id)
		}
	}

	group := models.Group{
		ID:        uuid.NewString(),
		Name:      name,
		OrgID:     profile.OrgID,
		CreatedBy: profile.UserID,
	}
	if err := gc.DB.Create(&group).Error; err != nil {
		gc.Logger.WithError(err).Error("Failed to create group")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create group",
		})
	}

	outcomes := make([]utils.BatchOutcome, 0, len(memberIDs))
	for _, userID := range memberIDs {
		member := models.GroupMember{GroupID: group.ID, UserID: userID}
		if err := gc.DB.Create(&member).Error; err != nil {
			gc.Logger.WithError(err).WithFields(logrus.Fields{
				"group_id": group.ID,
				"user_id":  userID,
			}).Error("Failed to add group member")
			outcomes = append(outcomes, utils.BatchOutcome{Item: userID, OK: false, Error: "failed to add member"})
			continue
		}
		outcomes = append(outcomes, utils.BatchOutcome{Item: userID, OK: true})
	}

	if utils.AnyFailed(outcomes) {
		return c.Status(fiber.StatusMultiStatus).JSON(fiber.Map{
			"success": false,
			"groupId": group.ID,
			"error":   "Group created but failed to add some members",
			"members": outcomes,
		})
	}

	return c.JSON(fiber.Map{"success": true, "groupId": group.ID, "members": outcomes})
}
