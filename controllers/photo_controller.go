package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"photodesk/middleware"
	"photodesk/models"
	"photodesk/utils"
)

type PhotoController struct {
	DB      *gorm.DB
	Logger  *logrus.Logger
	Storage *utils.StorageClient
}

func NewPhotoController(db *gorm.DB, logger *logrus.Logger, storage *utils.StorageClient) *PhotoController {
	return &PhotoController{DB: db, Logger: logger, Storage: storage}
}

// List builds the photos view. Non-elevated callers see their own photos,
// further limited to unassigned ones or those in projects they can access.
func (pc *PhotoController) List(c *fiber.Ctx) error {
	profile := middleware.CurrentProfile(c)
	scope := utils.ScopeFor(profile)

	var projects []models.Project
	if err := scope.Apply(pc.DB.Model(&models.Project{})).
		Order("name asc").Find(&projects).Error; err != nil {
		pc.Logger.WithError(err).Error("Failed to load projects for photos view")
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Unable to load projects", err)
	}

	var photos []models.Photo
	if err := scope.Apply(pc.DB.Model(&models.Photo{})).
		Order("created_at desc").Find(&photos).Error; err != nil {
		pc.Logger.WithError(err).Error("Failed to load photos")
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Unable to load photos", err)
	}

	pc.Storage.ResolveSignedURLs(c.Context(), photos)

	visiblePhotos := photos
	if !profile.Elevated() {
		accessible := make(map[string]bool, len(projects))
		for _, project := range projects {
			accessible[project.ID] = true
		}
		visiblePhotos = make([]models.Photo, 0, len(photos))
		for _, photo := range photos {
			if photo.ProjectID == nil || *photo.ProjectID == "" || accessible[*photo.ProjectID] {
				visiblePhotos = append(visiblePhotos, photo)
			}
		}
	}

	return c.JSON(utils.SuccessResponse(fiber.Map{
		"photos":   visiblePhotos,
		"projects": projects,
		"can_edit": profile.Elevated(),
	}))
}

// ensureAccess re-checks access for one specific photo: it must exist in the
// caller's organization and, for non-elevated callers, be created by them.
// Cross-org rows are indistinguishable from missing ones (404).
func (pc *PhotoController) ensureAccess(c *fiber.Ctx, photoID string) (*models.Photo, error) {
	profile := middleware.CurrentProfile(c)

	query := pc.DB.Where("id = ?", photoID)
	if !profile.Elevated() {
		query = query.Where("created_by = ?", profile.UserID)
	}

	var photo models.Photo
	if err := query.First(&photo).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			pc.Logger.WithError(err).WithField("photo_id", photoID).Error("Failed to verify photo ownership")
		}
		return nil, c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Photo not found",
		})
	}

	if photo.OrgID != profile.OrgID {
		return nil, c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Photo not found",
		})
	}

	return &photo, nil
}

// Patch updates a photo's tags and notes. Tags arrive as a list or a
// comma-separated string; both are normalized to a trimmed list.
func (pc *PhotoController) Patch(c *fiber.Ctx) error {
	photo, errResp := pc.ensureAccess(c, c.Params("id"))
	if photo == nil {
		return errResp
	}

	var payload struct {
		Tags  interface{} `json:"tags"`
		Notes *string     `json:"notes"`
	}
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	updates := map[string]interface{}{
		"tags":  models.StringList(utils.NormalizeTags(payload.Tags)),
		"notes": utils.NormalizeNotes(payload.Notes),
	}

	if err := pc.DB.Model(&models.Photo{}).Where("id = ?", photo.ID).Updates(updates).Error; err != nil {
		pc.Logger.WithError(err).WithField("photo_id", photo.ID).Error("Failed to update photo metadata")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to update photo metadata",
		})
	}

	return c.JSON(fiber.Map{"success": true})
}

// Delete removes a photo permanently. There is no soft delete.
func (pc *PhotoController) Delete(c *fiber.Ctx) error {
	photo, errResp := pc.ensureAccess(c, c.Params("id"))
	if photo == nil {
		return errResp
	}

	if err := pc.DB.Delete(&models.Photo{}, "id = ?", photo.ID).Error; err != nil {
		pc.Logger.WithError(err).WithField("photo_id", photo.ID).Error("Failed to delete photo")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to delete photo",
		})
	}

	return c.JSON(fiber.Map{"success": true})
}
