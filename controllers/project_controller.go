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

type ProjectController struct {
	DB      *gorm.DB
	Logger  *logrus.Logger
	Storage *utils.StorageClient
}

func NewProjectController(db *gorm.DB, logger *logrus.Logger, storage *utils.StorageClient) *ProjectController {
	return &ProjectController{DB: db, Logger: logger, Storage: storage}
}

type CreateProjectRequest struct {
	Name string `json:"name" validate:"required"`
}

// List builds the projects view: scoped project rows, their photos with
// signed URLs, the upload-status histogram and per-project photo counts.
func (pc *ProjectController) List(c *fiber.Ctx) error {
	profile := middleware.CurrentProfile(c)
	scope := utils.ScopeFor(profile)

	var projects []models.Project
	if err := scope.Apply(pc.DB.Model(&models.Project{})).
		Order("name asc").Find(&projects).Error; err != nil {
		pc.Logger.WithError(err).Error("Failed to load projects")
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Unable to load projects", err)
	}

	var photos []models.Photo
	if err := scope.Apply(pc.DB.Model(&models.Photo{})).
		Order("created_at desc").Find(&photos).Error; err != nil {
		pc.Logger.WithError(err).Error("Failed to load photos for projects view")
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Unable to load photos", err)
	}

	pc.Storage.ResolveSignedURLs(c.Context(), photos)

	statusSummary := utils.SummarizeUploadStatus(photos)
	photoCounts := utils.CountPhotosByProject(photos)

	// Non-elevated callers only see photos attached to their own projects
	visiblePhotos := photos
	if !profile.Elevated() {
		managed := make(map[string]bool, len(projects))
		for _, project := range projects {
			managed[project.ID] = true
		}
		visiblePhotos = make([]models.Photo, 0, len(photos))
		for _, photo := range photos {
			if photo.ProjectID != nil && managed[*photo.ProjectID] {
				visiblePhotos = append(visiblePhotos, photo)
			}
		}
	}

	return c.JSON(utils.SuccessResponse(fiber.Map{
		"projects":               projects,
		"photos":                 visiblePhotos,
		"status_summary":         statusSummary,
		"photo_count_by_project": photoCounts,
		"can_manage_org":         profile.Elevated(),
	}))
}

// Detail returns one project with its checklists (summarized) and photos.
func (pc *ProjectController) Detail(c *fiber.Ctx) error {
	profile := middleware.CurrentProfile(c)
	scope := utils.ScopeFor(profile)
	projectID := c.Params("id")

	var project models.Project
	if err := scope.Apply(pc.DB.Model(&models.Project{})).
		Where("id = ?", projectID).First(&project).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Project not found",
		})
	}

	var checklists []models.Checklist
	if err := pc.DB.Preload("Items").
		Where("project_id = ?", project.ID).
		Order("created_at desc").Find(&checklists).Error; err != nil {
		pc.Logger.WithError(err).Error("Failed to load project checklists")
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Unable to load checklists", err)
	}

	checklistViews := make([]fiber.Map, 0, len(checklists))
	for _, checklist := range checklists {
		summary := utils.SummarizeChecklist(checklist.Items)
		checklistViews = append(checklistViews, fiber.Map{
			"checklist": checklist,
			"summary":   summary,
		})
	}

	var photos []models.Photo
	if err := pc.DB.Where("project_id = ?", project.ID).
		Order("created_at desc").Find(&photos).Error; err != nil {
		pc.Logger.WithError(err).Error("Failed to load project photos")
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Unable to load photos", err)
	}
	pc.Storage.ResolveSignedURLs(c.Context(), photos)

	return c.JSON(utils.SuccessResponse(fiber.Map{
		"project":    project,
		"checklists": checklistViews,
		"photos":     photos,
	}))
}

// Create inserts a project. The id is allocated here, before the insert, so
// the response can always name the new row.
func (pc *ProjectController) Create(c *fiber.Ctx) error {
	profile := middleware.CurrentProfile(c)

	var req CreateProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Project name cannot be empty",
		})
	}

	project := models.Project{
		ID:        uuid.NewString(),
		Name:      name,
		OrgID:     profile.OrgID,
		CreatedBy: profile.UserID,
	}

	if err := pc.DB.Create(&project).Error; err != nil {
		pc.Logger.WithError(err).Error("Failed to create project")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to create project",
		})
	}

	return c.JSON(fiber.Map{"success": true, "projectId": project.ID})
}
