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

type ReportController struct {
	DB     *gorm.DB
	Logger *logrus.Logger
}

func NewReportController(db *gorm.DB, logger *logrus.Logger) *ReportController {
	return &ReportController{DB: db, Logger: logger}
}

type CreateReportRequest struct {
	Title     string `json:"title" validate:"required"`
	ProjectID string `json:"projectId" validate:"required"`
}

// List returns the org's reports, newest first.
func (rc *ReportController) List(c *fiber.Ctx) error {
	profile := middleware.CurrentProfile(c)
	scope := utils.ScopeFor(profile)

	var reports []models.Report
	if err := scope.Apply(rc.DB.Model(&models.Report{})).
		Order("created_at desc").Find(&reports).Error; err != nil {
		rc.Logger.WithError(err).Error("Failed to load reports")
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Unable to load reports", err)
	}

	return c.JSON(utils.SuccessResponse(fiber.Map{
		"reports": reports,
	}))
}

// Detail returns one report.
func (rc *ReportController) Detail(c *fiber.Ctx) error {
	profile := middleware.CurrentProfile(c)
	scope := utils.ScopeFor(profile)

	var report models.Report
	if err := scope.Apply(rc.DB.Model(&models.Report{})).
		Where("id = ?", c.Params("id")).First(&report).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Report not found",
		})
	}

	return c.JSON(utils.SuccessResponse(fiber.Map{
		"report": report,
	}))
}

// Create inserts a report. New reports are always drafts; the PDF object
// key stays null until rendering exists.
func (rc *ReportController) Create(c *fiber.Ctx) error {
	profile := middleware.CurrentProfile(c)

	var req CreateReportRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	title := strings.TrimSpace(req.Title)
	projectID := strings.TrimSpace(req.ProjectID)
	if title == "" || projectID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Title and project are required",
		})
	}

	report := models.Report{
		ID:        uuid.NewString(),
		Title:     title,
		ProjectID: projectID,
		OrgID:     profile.OrgID,
		CreatedBy: profile.UserID,
		Status:    models.ReportDraft,
	}

	if err := rc.DB.Create(&report).Error; err != nil {
		rc.Logger.WithError(err).Error("Failed to create report")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to create report",
		})
	}

	return c.JSON(fiber.Map{"success": true, "reportId": report.ID})
}
