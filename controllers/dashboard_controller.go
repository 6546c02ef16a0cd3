package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"photodesk/middleware"
	"photodesk/models"
	"photodesk/utils"
)

type DashboardController struct {
	DB     *gorm.DB
	Logger *logrus.Logger
}

func NewDashboardController(db *gorm.DB, logger *logrus.Logger) *DashboardController {
	return &DashboardController{DB: db, Logger: logger}
}

type DashboardStats struct {
	TotalProjects    int            `json:"total_projects"`
	TotalPhotos      int            `json:"total_photos"`
	UnassignedPhotos int            `json:"unassigned_photos"`
	StatusSummary    map[string]int `json:"status_summary"`
	OpenChecklists   int            `json:"open_checklists"`
	ClosedChecklists int            `json:"closed_checklists"`
}

// Overview assembles the workspace dashboard from the caller's scoped rows.
func (dc *DashboardController) Overview(c *fiber.Ctx) error {
	profile := middleware.CurrentProfile(c)
	scope := utils.ScopeFor(profile)

	var projects []models.Project
	if err := scope.Apply(dc.DB.Model(&models.Project{})).Find(&projects).Error; err != nil {
		dc.Logger.WithError(err).Error("Failed to load projects for dashboard")
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Unable to load dashboard", err)
	}

	var photos []models.Photo
	if err := scope.Apply(dc.DB.Model(&models.Photo{})).Find(&photos).Error; err != nil {
		dc.Logger.WithError(err).Error("Failed to load photos for dashboard")
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Unable to load dashboard", err)
	}

	var checklists []models.Checklist
	if err := scope.Apply(dc.DB.Model(&models.Checklist{})).
		Preload("Items").Find(&checklists).Error; err != nil {
		dc.Logger.WithError(err).Error("Failed to load checklists for dashboard")
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Unable to load dashboard", err)
	}

	photoCounts := utils.CountPhotosByProject(photos)

	stats := DashboardStats{
		TotalProjects:    len(projects),
		TotalPhotos:      len(photos),
		UnassignedPhotos: photoCounts[utils.UnassignedBucket],
		StatusSummary:    utils.SummarizeUploadStatus(photos),
	}
	for _, checklist := range checklists {
		if utils.SummarizeChecklist(checklist.Items).Finished {
			stats.ClosedChecklists++
		} else {
			stats.OpenChecklists++
		}
	}

	return c.JSON(utils.SuccessResponse(fiber.Map{
		"stats":                  stats,
		"photo_count_by_project": photoCounts,
	}))
}
