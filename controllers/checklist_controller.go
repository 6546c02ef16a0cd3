package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"photodesk/middleware"
	"photodesk/models"
	"photodesk/utils"
)

type ChecklistController struct {
	DB     *gorm.DB
	Logger *logrus.Logger
}

func NewChecklistController(db *gorm.DB, logger *logrus.Logger) *ChecklistController {
	return &ChecklistController{DB: db, Logger: logger}
}

type checklistView struct {
	ID          string                 `json:"id"`
	Name        string                 `json:"name"`
	ProjectID   string                 `json:"project_id"`
	ProjectName string                 `json:"project_name"`
	CreatedAt   interface{}            `json:"created_at"`
	CreatedBy   string                 `json:"created_by"`
	Summary     utils.ChecklistSummary `json:"summary"`
}

// List returns the org's checklists with derived completion summaries.
func (cc *ChecklistController) List(c *fiber.Ctx) error {
	profile := middleware.CurrentProfile(c)
	scope := utils.ScopeFor(profile)

	var checklists []models.Checklist
	if err := scope.Apply(cc.DB.Model(&models.Checklist{})).
		Preload("Items").
		Order("created_at desc").Find(&checklists).Error; err != nil {
		cc.Logger.WithError(err).Error("Failed to load checklists")
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Unable to load checklists", err)
	}

	projectNames := cc.projectNames(profile.OrgID)

	views := make([]checklistView, 0, len(checklists))
	for _, checklist := range checklists {
		name, ok := projectNames[checklist.ProjectID]
		if !ok || name == "" {
			name = "Untitled Project"
		}
		views = append(views, checklistView{
			ID:          checklist.ID,
			Name:        checklist.Name,
			ProjectID:   checklist.ProjectID,
			ProjectName: name,
			CreatedAt:   checklist.CreatedAt,
			CreatedBy:   checklist.CreatedBy,
			Summary:     utils.SummarizeChecklist(checklist.Items),
		})
	}

	return c.JSON(utils.SuccessResponse(fiber.Map{
		"checklists": views,
	}))
}

// Detail returns one checklist with its items and summary.
func (cc *ChecklistController) Detail(c *fiber.Ctx) error {
	profile := middleware.CurrentProfile(c)
	scope := utils.ScopeFor(profile)

	var checklist models.Checklist
	if err := scope.Apply(cc.DB.Model(&models.Checklist{})).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position asc") }).
		Where("id = ?", c.Params("id")).First(&checklist).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Checklist not found",
		})
	}

	return c.JSON(utils.SuccessResponse(fiber.Map{
		"checklist": checklist,
		"summary":   utils.SummarizeChecklist(checklist.Items),
	}))
}

func (cc *ChecklistController) projectNames(orgID string) map[string]string {
	var projects []models.Project
	if err := cc.DB.Where("org_id = ?", orgID).Find(&projects).Error; err != nil {
		cc.Logger.WithError(err).Error("Failed to load project names for checklists")
		return map[string]string{}
	}
	names := make(map[string]string, len(projects))
	for _, project := range projects {
		names[project.ID] = project.Name
	}
	return names
}
